package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/parsers"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/returns"
)

// Flags for the returns command
var (
	returnsInputFile    string
	returnsScheme       string
	returnsOutputFormat string
	returnsOutputFile   string
)

// returnsCmd represents the returns command
var returnsCmd = &cobra.Command{
	Use:   "returns",
	Short: "Calculate inflation-adjusted returns per reporting window",
	Long: `Returns runs the full pipeline: sanitize, apply temporal rules, aggregate
effective remanents per k window, then grow each window's sum over the
investment horizon and deflate by inflation. The nps scheme additionally
reports the progressive-tax deduction benefit; the index scheme uses a
higher growth rate and no tax benefit.

Examples:
  savings returns --input request.json --scheme nps
  savings returns --input request.json --scheme index --output-format json`,

	PreRunE: validateReturnsFlags,
	RunE:    runReturns,
}

func init() {
	rootCmd.AddCommand(returnsCmd)

	returnsCmd.Flags().StringVarP(&returnsInputFile, "input", "i", "", "path to JSON request payload (\"-\" for stdin, required)")
	returnsCmd.Flags().StringVarP(&returnsScheme, "scheme", "s", "index", "investment scheme: nps, index")
	returnsCmd.Flags().StringVarP(&returnsOutputFormat, "output-format", "f", "console", "output format: console, json")
	returnsCmd.Flags().StringVarP(&returnsOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	returnsCmd.MarkFlagRequired("input")
}

func validateReturnsFlags(cmd *cobra.Command, args []string) error {
	if returnsInputFile == "" {
		return fmt.Errorf("input is required")
	}
	if !returns.Scheme(returnsScheme).IsValid() {
		return fmt.Errorf("invalid scheme '%s'. Valid schemes: nps, index", returnsScheme)
	}
	return nil
}

func runReturns(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	request := &pipeline.ReturnsRequest{}
	if err := parsers.LoadRequest(returnsInputFile, request); err != nil {
		return exitWith(handler, err)
	}

	if err := config.ValidateReturnsRequest(request); err != nil {
		return exitWith(handler, err)
	}

	result := pipeline.NewService().Returns(request, returns.Scheme(returnsScheme))

	rep, err := config.CreateReporter(returnsOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(returnsOutputFile, result))
}
