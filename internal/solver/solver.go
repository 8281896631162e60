// Package solver dispatches the generic utility operations to their
// implementations.
package solver

import (
	"fmt"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/projection"
)

// Operation identifies a solvable utility operation.
type Operation string

const (
	OperationReverseText          Operation = "reverse_text"
	OperationRetirementProjection Operation = "retirement_projection"
	OperationRoundupProjection    Operation = "roundup_projection"
)

// IsValid checks if the operation is supported
func (o Operation) IsValid() bool {
	switch o {
	case OperationReverseText, OperationRetirementProjection, OperationRoundupProjection:
		return true
	default:
		return false
	}
}

// Request selects an operation and carries its payload. Exactly the payload
// matching the operation must be present.
type Request struct {
	Operation  Operation                   `json:"operation"`
	Text       string                      `json:"text,omitempty"`
	Retirement *projection.RetirementInput `json:"retirement,omitempty"`
	Roundup    *projection.RoundupInput    `json:"roundup,omitempty"`
}

// Validate checks that the request carries the payload its operation needs.
func (r *Request) Validate() error {
	switch r.Operation {
	case OperationReverseText:
		if r.Text == "" {
			return fmt.Errorf("text is required when operation is %s", OperationReverseText)
		}
	case OperationRetirementProjection:
		if r.Retirement == nil {
			return fmt.Errorf("retirement is required when operation is %s", OperationRetirementProjection)
		}
	case OperationRoundupProjection:
		if r.Roundup == nil {
			return fmt.Errorf("roundup is required when operation is %s", OperationRoundupProjection)
		}
	default:
		return fmt.Errorf("unsupported operation '%s'", r.Operation)
	}
	return nil
}

// Response pairs the operation with its result payload.
type Response struct {
	Operation Operation   `json:"operation"`
	Result    interface{} `json:"result"`
}

// Solve routes the request to the matching computation.
func Solve(req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Operation {
	case OperationReverseText:
		return &Response{Operation: req.Operation, Result: reverse(req.Text)}, nil
	case OperationRetirementProjection:
		return &Response{Operation: req.Operation, Result: projection.ProjectRetirement(*req.Retirement)}, nil
	case OperationRoundupProjection:
		return &Response{Operation: req.Operation, Result: projection.ProjectRoundup(*req.Roundup)}, nil
	}

	// Unreachable after Validate, kept for future operations.
	return &Response{Operation: req.Operation, Result: map[string]interface{}{}}, nil
}

// reverse reverses a string rune-wise.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
