package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/parsers"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
)

// Flags for the parse command
var (
	parseExpensesFile  string
	parseInputFile     string
	parseRoundMultiple float64
	parseOutputFormat  string
	parseOutputFile    string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse expense records into round-up transactions",
	Long: `Parse normalizes raw expense rows into transactions whose ceiling is the
amount rounded up to the next round multiple, with the difference recorded
as the remanent available for investment.

Expenses can be supplied either as a CSV file (--expenses-file) or as a
JSON request payload (--input, "-" for stdin).

Examples:
  savings parse --expenses-file expenses.csv
  savings parse --expenses-file expenses.csv --round-multiple 50 --output-format json
  savings parse --input request.json --output-file transactions.json`,

	PreRunE: validateParseFlags,
	RunE:    runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpensesFile, "expenses-file", "e", "", "path to expense CSV file")
	parseCmd.Flags().StringVarP(&parseInputFile, "input", "i", "", "path to JSON request payload (\"-\" for stdin)")
	parseCmd.Flags().Float64VarP(&parseRoundMultiple, "round-multiple", "m", 100, "round-up multiple")
	parseCmd.Flags().StringVarP(&parseOutputFormat, "output-format", "f", "console", "output format: console, json")
	parseCmd.Flags().StringVarP(&parseOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	viper.BindPFlag("parse.round-multiple", parseCmd.Flags().Lookup("round-multiple"))
}

func validateParseFlags(cmd *cobra.Command, args []string) error {
	if parseExpensesFile == "" && parseInputFile == "" {
		return fmt.Errorf("either --expenses-file or --input is required")
	}
	if parseExpensesFile != "" && parseInputFile != "" {
		return fmt.Errorf("--expenses-file and --input are mutually exclusive")
	}
	if err := models.ValidateFinite("round-multiple", parseRoundMultiple); err != nil {
		return err
	}
	if parseRoundMultiple <= 0 {
		return fmt.Errorf("round-multiple must be greater than zero")
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	request := &pipeline.ParseRequest{
		RoundMultiple: decimal.NewFromFloat(parseRoundMultiple),
	}

	if parseInputFile != "" {
		if err := parsers.LoadRequest(parseInputFile, request); err != nil {
			return exitWith(handler, err)
		}
		if request.RoundMultiple.IsZero() {
			request.RoundMultiple = decimal.NewFromFloat(parseRoundMultiple)
		}
	} else {
		parser := parsers.NewExpenseParser(nil)
		expenses, stats, err := parser.ParseFile(parseExpensesFile)
		if err != nil {
			return exitWith(handler, err)
		}
		if stats.SkippedRows > 0 && viper.GetBool("verbose") {
			for _, parseErr := range stats.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", parseErr)
			}
		}
		request.Expenses = expenses
	}

	if err := config.ValidateParseRequest(request); err != nil {
		return exitWith(handler, err)
	}

	result := pipeline.NewService().BuildTransactions(request)

	rep, err := config.CreateReporter(parseOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(parseOutputFile, result))
}
