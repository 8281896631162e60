package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/parsers"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
)

// Flags for the validate command
var (
	validateInputFile    string
	validateOutputFormat string
	validateOutputFile   string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate transaction consistency and detect duplicates",
	Long: `Validate partitions a transaction payload into valid, structurally
invalid, and duplicate sets. Each rejected transaction carries the reason
it failed. An optional maxInvestmentAmount in the payload caps the
remanent of otherwise valid transactions.

Examples:
  savings validate --input request.json
  savings validate --input - < request.json
  savings validate --input request.json --output-format json --output-file result.json`,

	PreRunE: validateValidateFlags,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInputFile, "input", "i", "", "path to JSON request payload (\"-\" for stdin, required)")
	validateCmd.Flags().StringVarP(&validateOutputFormat, "output-format", "f", "console", "output format: console, json")
	validateCmd.Flags().StringVarP(&validateOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	validateCmd.MarkFlagRequired("input")
}

func validateValidateFlags(cmd *cobra.Command, args []string) error {
	if validateInputFile == "" {
		return fmt.Errorf("input is required")
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	request := &pipeline.ValidateRequest{}
	if err := parsers.LoadRequest(validateInputFile, request); err != nil {
		return exitWith(handler, err)
	}

	if err := config.ValidateValidateRequest(request); err != nil {
		return exitWith(handler, err)
	}

	result := pipeline.NewService().Validate(request)

	rep, err := config.CreateReporter(validateOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(validateOutputFile, result))
}
