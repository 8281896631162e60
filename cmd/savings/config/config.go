// Package config validates CLI inputs against the payload bounds and
// assembles component configurations for the commands.
package config

import (
	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/pipeline"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/reporter"
	apperrors "github.com/Ayushs1043/blackrock-savings-challenge/pkg/errors"
)

// Payload bounds shared with the request schemas.
var (
	maxAmount        = decimal.NewFromInt(500_000)
	maxWage          = decimal.NewFromInt(50_000_000)
	maxInflation     = decimal.NewFromInt(100)
	maxRoundMultiple = decimal.NewFromInt(100_000)
)

// MaxAge is the upper bound for the investor age parameter.
const MaxAge = 120

// CreateReporter builds a reporter for the requested output format.
func CreateReporter(format string) (*reporter.Reporter, error) {
	return reporter.NewReporter(reporter.OutputFormat(format))
}

// ValidateParseRequest checks the expense parsing payload bounds.
func ValidateParseRequest(req *pipeline.ParseRequest) error {
	if !req.RoundMultiple.IsZero() {
		if req.RoundMultiple.IsNegative() || req.RoundMultiple.GreaterThan(maxRoundMultiple) {
			return apperrors.ValidationError(apperrors.CodeOutOfRange, "roundMultiple", req.RoundMultiple.String(), nil).
				WithSuggestion("roundMultiple must be greater than 0 and at most 100000")
		}
	}

	for _, expense := range req.Expenses {
		if expense.Amount.IsNegative() || expense.Amount.GreaterThanOrEqual(maxAmount) {
			return apperrors.ValidationError(apperrors.CodeOutOfRange, "amount", expense.Amount.String(), nil).
				WithSuggestion("expense amounts must be in [0, 500000)")
		}
	}

	return nil
}

// ValidateValidateRequest checks the transaction validation payload bounds.
func ValidateValidateRequest(req *pipeline.ValidateRequest) error {
	if req.Wage.IsNegative() || req.Wage.GreaterThanOrEqual(maxWage) {
		return apperrors.ValidationError(apperrors.CodeOutOfRange, "wage", req.Wage.String(), nil).
			WithSuggestion("wage must be in [0, 50000000)")
	}

	if req.MaxInvestmentAmount != nil {
		if req.MaxInvestmentAmount.IsNegative() || req.MaxInvestmentAmount.GreaterThan(maxAmount) {
			return apperrors.ValidationError(apperrors.CodeOutOfRange, "maxInvestmentAmount", req.MaxInvestmentAmount.String(), nil).
				WithSuggestion("maxInvestmentAmount must be in [0, 500000]")
		}
	}

	return nil
}

// ValidateFilterRequest checks the filter payload's period bounds.
func ValidateFilterRequest(req *pipeline.FilterRequest) error {
	for _, q := range req.Q {
		if err := q.Range().Validate(); err != nil {
			return apperrors.ValidationError(apperrors.CodeInvalidDate, "q", q.Range().String(), err)
		}
		if q.Fixed.IsNegative() || q.Fixed.GreaterThanOrEqual(maxAmount) {
			return apperrors.ValidationError(apperrors.CodeOutOfRange, "fixed", q.Fixed.String(), nil)
		}
	}
	for _, p := range req.P {
		if err := p.Range().Validate(); err != nil {
			return apperrors.ValidationError(apperrors.CodeInvalidDate, "p", p.Range().String(), err)
		}
		if p.Extra.IsNegative() || p.Extra.GreaterThanOrEqual(maxAmount) {
			return apperrors.ValidationError(apperrors.CodeOutOfRange, "extra", p.Extra.String(), nil)
		}
	}
	for _, k := range req.K {
		if err := k.Validate(); err != nil {
			return apperrors.ValidationError(apperrors.CodeInvalidDate, "k", k.String(), err)
		}
	}
	return nil
}

// ValidateReturnsRequest checks the returns payload's scalar and period
// bounds.
func ValidateReturnsRequest(req *pipeline.ReturnsRequest) error {
	if req.Age < 0 || req.Age > MaxAge {
		return apperrors.ValidationError(apperrors.CodeOutOfRange, "age", req.Age, nil).
			WithSuggestion("age must be in [0, 120]")
	}
	if req.Wage.IsNegative() || req.Wage.GreaterThanOrEqual(maxWage) {
		return apperrors.ValidationError(apperrors.CodeOutOfRange, "wage", req.Wage.String(), nil).
			WithSuggestion("wage must be in [0, 50000000)")
	}
	if req.Inflation.IsNegative() || req.Inflation.GreaterThan(maxInflation) {
		return apperrors.ValidationError(apperrors.CodeOutOfRange, "inflation", req.Inflation.String(), nil).
			WithSuggestion("inflation must be in [0, 100]")
	}

	return ValidateFilterRequest(&pipeline.FilterRequest{
		Q:            req.Q,
		P:            req.P,
		K:            req.K,
		Transactions: req.Transactions,
	})
}
