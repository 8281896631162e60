package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
)

// Flags for the perf command
var (
	perfOutputFormat string
	perfOutputFile   string
)

// perfCmd represents the perf command
var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Report process runtime metrics",
	Long: `Perf reports elapsed startup time, current heap usage, and the number
of live goroutines for the running process.

Examples:
  savings perf
  savings perf --output-format json`,

	RunE: runPerf,
}

func init() {
	rootCmd.AddCommand(perfCmd)

	perfCmd.Flags().StringVarP(&perfOutputFormat, "output-format", "f", "console", "output format: console, json")
	perfCmd.Flags().StringVarP(&perfOutputFile, "output-file", "o", "", "output file path (default: stdout)")
}

func runPerf(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	report := pipeline.BuildPerformanceReport(startTime)

	rep, err := config.CreateReporter(perfOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(perfOutputFile, report))
}
