package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/projection"
)

// Flags shared by the project subcommands
var (
	projectOutputFormat string
	projectOutputFile   string
)

// Flags for project retirement
var (
	retirementCurrentAge    int
	retirementAge           int
	retirementMonthly       float64
	retirementReturnRate    float64
	retirementCurrentCorpus float64
	retirementInflation     float64
)

// Flags for project roundup
var (
	roundupExpenses   []float64
	roundupBase       float64
	roundupReturnRate float64
	roundupYears      int
	roundupInflation  float64
)

// projectCmd groups the corpus projection subcommands
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project corpus growth over an investment horizon",
	Long: `Project estimates a future corpus from recurring investing, either a
fixed monthly amount held until retirement or the round-up differences of
recurring monthly expenses. Both report the nominal corpus and its
inflation-adjusted value.`,
}

var projectRetirementCmd = &cobra.Command{
	Use:   "retirement",
	Short: "Project a retirement corpus from monthly investing",
	Long: `Retirement compounds the current corpus and a fixed monthly investment
monthly until the retirement age, then deflates the result by inflation.

Examples:
  savings project retirement --current-age 30 --retirement-age 60 --monthly 5000 --return-rate 12
  savings project retirement --current-age 45 --retirement-age 60 --monthly 10000 --return-rate 8 --corpus 500000 --inflation 6`,

	PreRunE: validateRetirementFlags,
	RunE:    runProjectRetirement,
}

var projectRoundupCmd = &cobra.Command{
	Use:   "roundup",
	Short: "Project a corpus funded by expense round-ups",
	Long: `Roundup rounds each recurring monthly expense up to the next multiple of
the base, invests the differences every month over the horizon, and
reports the nominal and inflation-adjusted corpus.

Examples:
  savings project roundup --expense 120.50 --expense 89.99 --base 100 --return-rate 10 --years 10
  savings project roundup --expense 450 --base 100 --return-rate 12 --years 20 --inflation 5`,

	PreRunE: validateRoundupFlags,
	RunE:    runProjectRoundup,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectRetirementCmd)
	projectCmd.AddCommand(projectRoundupCmd)

	projectCmd.PersistentFlags().StringVarP(&projectOutputFormat, "output-format", "f", "console", "output format: console, json")
	projectCmd.PersistentFlags().StringVarP(&projectOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	projectRetirementCmd.Flags().IntVar(&retirementCurrentAge, "current-age", 0, "current age in years (required)")
	projectRetirementCmd.Flags().IntVar(&retirementAge, "retirement-age", 0, "target retirement age in years (required)")
	projectRetirementCmd.Flags().Float64Var(&retirementMonthly, "monthly", 0, "monthly investment amount (required)")
	projectRetirementCmd.Flags().Float64Var(&retirementReturnRate, "return-rate", 0, "annual return rate in percent (required)")
	projectRetirementCmd.Flags().Float64Var(&retirementCurrentCorpus, "corpus", 0, "already accumulated corpus")
	projectRetirementCmd.Flags().Float64Var(&retirementInflation, "inflation", 0, "annual inflation rate in percent")

	projectRetirementCmd.MarkFlagRequired("current-age")
	projectRetirementCmd.MarkFlagRequired("retirement-age")
	projectRetirementCmd.MarkFlagRequired("monthly")
	projectRetirementCmd.MarkFlagRequired("return-rate")

	projectRoundupCmd.Flags().Float64SliceVar(&roundupExpenses, "expense", nil, "recurring monthly expense, repeatable (required)")
	projectRoundupCmd.Flags().Float64Var(&roundupBase, "base", 100, "round-up base multiple")
	projectRoundupCmd.Flags().Float64Var(&roundupReturnRate, "return-rate", 0, "annual return rate in percent (required)")
	projectRoundupCmd.Flags().IntVar(&roundupYears, "years", 0, "investment horizon in years (required)")
	projectRoundupCmd.Flags().Float64Var(&roundupInflation, "inflation", 0, "annual inflation rate in percent")

	projectRoundupCmd.MarkFlagRequired("expense")
	projectRoundupCmd.MarkFlagRequired("return-rate")
	projectRoundupCmd.MarkFlagRequired("years")
}

func validateRetirementFlags(cmd *cobra.Command, args []string) error {
	if retirementCurrentAge < 0 || retirementCurrentAge > config.MaxAge {
		return fmt.Errorf("current-age must be in [0, %d], got %d", config.MaxAge, retirementCurrentAge)
	}
	if retirementAge <= retirementCurrentAge || retirementAge > config.MaxAge {
		return fmt.Errorf("retirement-age must be greater than current-age and at most %d, got %d", config.MaxAge, retirementAge)
	}

	for name, v := range map[string]float64{
		"monthly":     retirementMonthly,
		"return-rate": retirementReturnRate,
		"corpus":      retirementCurrentCorpus,
		"inflation":   retirementInflation,
	} {
		if err := models.ValidateFinite(name, v); err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

func validateRoundupFlags(cmd *cobra.Command, args []string) error {
	if len(roundupExpenses) == 0 {
		return fmt.Errorf("at least one expense is required")
	}
	if roundupYears <= 0 {
		return fmt.Errorf("years must be greater than 0, got %d", roundupYears)
	}
	if err := models.ValidateFinite("base", roundupBase); err != nil {
		return err
	}
	if roundupBase <= 0 {
		return fmt.Errorf("base must be greater than 0, got %v", roundupBase)
	}

	for name, v := range map[string]float64{
		"return-rate": roundupReturnRate,
		"inflation":   roundupInflation,
	} {
		if err := models.ValidateFinite(name, v); err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}

	for _, expense := range roundupExpenses {
		if err := models.ValidateFinite("expense", expense); err != nil {
			return err
		}
		if expense < 0 {
			return fmt.Errorf("expense must not be negative, got %v", expense)
		}
	}
	return nil
}

func runProjectRetirement(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	result := projection.ProjectRetirement(projection.RetirementInput{
		CurrentAge:        retirementCurrentAge,
		RetirementAge:     retirementAge,
		MonthlyInvestment: decimal.NewFromFloat(retirementMonthly),
		AnnualReturnRate:  decimal.NewFromFloat(retirementReturnRate),
		CurrentCorpus:     decimal.NewFromFloat(retirementCurrentCorpus),
		InflationRate:     decimal.NewFromFloat(retirementInflation),
	})

	rep, err := config.CreateReporter(projectOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(projectOutputFile, result))
}

func runProjectRoundup(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	expenses := make([]decimal.Decimal, 0, len(roundupExpenses))
	for _, expense := range roundupExpenses {
		expenses = append(expenses, decimal.NewFromFloat(expense))
	}

	result := projection.ProjectRoundup(projection.RoundupInput{
		MonthlyExpenses:  expenses,
		RoundupBase:      decimal.NewFromFloat(roundupBase),
		AnnualReturnRate: decimal.NewFromFloat(roundupReturnRate),
		Years:            roundupYears,
		InflationRate:    decimal.NewFromFloat(roundupInflation),
	})

	rep, err := config.CreateReporter(projectOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(projectOutputFile, result))
}
