package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/parsers"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
)

// Flags for the filter command
var (
	filterInputFile    string
	filterOutputFormat string
	filterOutputFile   string
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply temporal override rules and window filtering",
	Long: `Filter sanitizes the transaction payload, resolves the fixed-override (q)
and additive-extra (p) rule periods into a per-transaction effective
remanent, and keeps only transactions dated inside the union of the k
windows. With no k windows supplied, all processed transactions are kept.

Examples:
  savings filter --input request.json
  savings filter --input request.json --output-format json --output-file filtered.json`,

	PreRunE: validateFilterFlags,
	RunE:    runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterInputFile, "input", "i", "", "path to JSON request payload (\"-\" for stdin, required)")
	filterCmd.Flags().StringVarP(&filterOutputFormat, "output-format", "f", "console", "output format: console, json")
	filterCmd.Flags().StringVarP(&filterOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	filterCmd.MarkFlagRequired("input")
}

func validateFilterFlags(cmd *cobra.Command, args []string) error {
	if filterInputFile == "" {
		return fmt.Errorf("input is required")
	}
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	request := &pipeline.FilterRequest{}
	if err := parsers.LoadRequest(filterInputFile, request); err != nil {
		return exitWith(handler, err)
	}

	if err := config.ValidateFilterRequest(request); err != nil {
		return exitWith(handler, err)
	}

	result := pipeline.NewService().Filter(request)

	rep, err := config.CreateReporter(filterOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(filterOutputFile, result))
}
