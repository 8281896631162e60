package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ayushs1043/blackrock-savings-challenge/cmd/savings/config"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/parsers"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/solver"
	apperrors "github.com/Ayushs1043/blackrock-savings-challenge/pkg/errors"
)

// Flags for the solve command
var (
	solveInputFile    string
	solveOutputFormat string
	solveOutputFile   string
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a generic utility operation",
	Long: `Solve dispatches a utility operation from a JSON request. Supported
operations: reverse_text, retirement_projection, roundup_projection.
The request must carry the payload field matching its operation.

Examples:
  savings solve --input request.json
  echo '{"operation":"reverse_text","text":"hello"}' | savings solve --input -`,

	PreRunE: validateSolveFlags,
	RunE:    runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveInputFile, "input", "i", "", "path to JSON request payload (\"-\" for stdin, required)")
	solveCmd.Flags().StringVarP(&solveOutputFormat, "output-format", "f", "json", "output format: console, json")
	solveCmd.Flags().StringVarP(&solveOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	solveCmd.MarkFlagRequired("input")
}

func validateSolveFlags(cmd *cobra.Command, args []string) error {
	if solveInputFile == "" {
		return fmt.Errorf("input is required")
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	request := &solver.Request{}
	if err := parsers.LoadRequest(solveInputFile, request); err != nil {
		return exitWith(handler, err)
	}

	response, err := solver.Solve(request)
	if err != nil {
		return exitWith(handler, apperrors.ComputationError(apperrors.CodeInvalidOperation, string(request.Operation), err).
			WithSuggestion("supported operations: reverse_text, retirement_projection, roundup_projection"))
	}

	rep, err := config.CreateReporter(solveOutputFormat)
	if err != nil {
		return exitWith(handler, err)
	}

	return exitWith(handler, rep.WriteFile(solveOutputFile, response))
}
