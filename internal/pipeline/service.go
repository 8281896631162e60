// Package pipeline wires the processing stages into the operations exposed
// by the CLI: expense parsing, transaction validation, temporal filtering,
// and windowed return calculation.
//
// Data flows strictly downward through the stages: the sanitizer's valid
// partition feeds the temporal rule engine, whose output feeds the window
// aggregator, whose sums feed the return calculator. Every call constructs
// its intermediate state from scratch and discards it on return; the
// service itself is stateless and safe for concurrent use across requests.
package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/returns"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/sanitize"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/temporal"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/windows"
	"github.com/Ayushs1043/blackrock-savings-challenge/pkg/logger"
)

// Service executes the savings processing operations.
type Service struct {
	logger logger.Logger
}

// NewService creates a pipeline service.
func NewService() *Service {
	return &Service{
		logger: logger.GetGlobalLogger().WithComponent("pipeline"),
	}
}

// ParseRequest is the input payload for expense parsing.
type ParseRequest struct {
	Expenses      []models.Expense `json:"expenses"`
	RoundMultiple decimal.Decimal  `json:"roundMultiple"`
}

// ParseResult carries the normalized transactions plus their totals.
type ParseResult struct {
	Transactions  []*models.Transaction `json:"transactions"`
	TotalAmount   decimal.Decimal       `json:"transactionsTotalAmount"`
	TotalCeiling  decimal.Decimal       `json:"transactionsTotalCeiling"`
	TotalRemanent decimal.Decimal       `json:"transactionsTotalRemanent"`
}

// ValidateRequest is the input payload for transaction validation.
type ValidateRequest struct {
	Wage                decimal.Decimal       `json:"wage"`
	MaxInvestmentAmount *decimal.Decimal      `json:"maxInvestmentAmount,omitempty"`
	Transactions        []*models.Transaction `json:"transactions"`
}

// ValidateResult carries the sanitizer's three partitions.
type ValidateResult struct {
	Valid      []*models.Transaction        `json:"valid"`
	Invalid    []*models.InvalidTransaction `json:"invalid"`
	Duplicates []*models.InvalidTransaction `json:"duplicates"`
}

// FilterRequest is the input payload for temporal rule application and
// window filtering.
type FilterRequest struct {
	Q            []models.FixedPeriod  `json:"q"`
	P            []models.ExtraPeriod  `json:"p"`
	K            []models.DateRange    `json:"k"`
	Transactions []*models.Transaction `json:"transactions"`
}

// FilterResult carries the processed in-window transactions and every
// rejected record with its reason.
type FilterResult struct {
	Valid   []*models.ProcessedTransaction `json:"valid"`
	Invalid []*models.InvalidTransaction   `json:"invalid"`
}

// ReturnsRequest is the input payload for the return calculators.
type ReturnsRequest struct {
	Age          int                   `json:"age"`
	Wage         decimal.Decimal       `json:"wage"`
	Inflation    decimal.Decimal       `json:"inflation"`
	Q            []models.FixedPeriod  `json:"q"`
	P            []models.ExtraPeriod  `json:"p"`
	K            []models.DateRange    `json:"k"`
	Transactions []*models.Transaction `json:"transactions"`
}

// ReturnsResult carries per-window savings projections plus input totals.
type ReturnsResult struct {
	TotalAmount    decimal.Decimal        `json:"transactionsTotalAmount"`
	TotalCeiling   decimal.Decimal        `json:"transactionsTotalCeiling"`
	SavingsByDates []models.SavingsByDate `json:"savingsByDates"`
}

// BuildTransactions rounds every expense up to the next multiple of the
// round multiple, deriving ceiling and remanent, and accumulates the totals.
func (s *Service) BuildTransactions(req *ParseRequest) *ParseResult {
	roundMultiple := req.RoundMultiple
	if roundMultiple.IsZero() {
		roundMultiple = models.RoundingBase
	}

	result := &ParseResult{
		Transactions:  make([]*models.Transaction, 0, len(req.Expenses)),
		TotalAmount:   decimal.Zero,
		TotalCeiling:  decimal.Zero,
		TotalRemanent: decimal.Zero,
	}

	totalAmount := decimal.Zero
	totalCeiling := decimal.Zero
	totalRemanent := decimal.Zero

	for _, expense := range req.Expenses {
		ceiling := expense.Amount.Div(roundMultiple).Ceil().Mul(roundMultiple)
		remanent := ceiling.Sub(expense.Amount)
		if remanent.IsNegative() {
			remanent = decimal.Zero
		}

		tx := models.NewTransaction(
			expense.Timestamp,
			models.Round2(expense.Amount),
			models.Round2(ceiling),
			models.Round2(remanent),
		)

		result.Transactions = append(result.Transactions, tx)
		totalAmount = totalAmount.Add(tx.Amount)
		totalCeiling = totalCeiling.Add(tx.Ceiling)
		totalRemanent = totalRemanent.Add(tx.Remanent)
	}

	result.TotalAmount = models.Round2(totalAmount)
	result.TotalCeiling = models.Round2(totalCeiling)
	result.TotalRemanent = models.Round2(totalRemanent)

	s.logger.WithFields(logger.Fields{
		"expenses":       len(req.Expenses),
		"round_multiple": roundMultiple.String(),
	}).Debug("Built transactions from expenses")

	return result
}

// Validate partitions the transactions, honoring the optional investment cap.
func (s *Service) Validate(req *ValidateRequest) *ValidateResult {
	split := sanitize.Split(req.Transactions, req.MaxInvestmentAmount)

	s.logger.WithFields(logger.Fields{
		"valid":      len(split.Valid),
		"invalid":    len(split.Invalid),
		"duplicates": len(split.Duplicates),
	}).Info("Validated transactions")

	return &ValidateResult{
		Valid:      split.Valid,
		Invalid:    split.Invalid,
		Duplicates: split.Duplicates,
	}
}

// Filter sanitizes the transactions, resolves the temporal rules, and
// applies the k-window filter. The invalid output pools the structural
// rejects, duplicates, and out-of-window demotions, in that order.
func (s *Service) Filter(req *FilterRequest) *FilterResult {
	split := sanitize.Split(req.Transactions, nil)
	processed := temporal.ApplyRules(split.Valid, req.Q, req.P)

	invalid := make([]*models.InvalidTransaction, 0, len(split.Invalid)+len(split.Duplicates))
	invalid = append(invalid, split.Invalid...)
	invalid = append(invalid, split.Duplicates...)

	valid, outOfRange := windows.Filter(processed, req.K)
	invalid = append(invalid, outOfRange...)

	s.logger.WithFields(logger.Fields{
		"valid":   len(valid),
		"invalid": len(invalid),
		"windows": len(req.K),
	}).Info("Filtered transactions")

	return &FilterResult{Valid: valid, Invalid: invalid}
}

// Returns runs the full pipeline and projects each reporting window's
// aggregate under the selected scheme.
func (s *Service) Returns(req *ReturnsRequest, scheme returns.Scheme) *ReturnsResult {
	split := sanitize.Split(req.Transactions, nil)
	processed := temporal.ApplyRules(split.Valid, req.Q, req.P)
	sums := windows.SumByWindows(processed, req.K)

	savings := returns.Compute(sums, returns.Input{
		Age:       req.Age,
		Wage:      req.Wage,
		Inflation: req.Inflation,
		Scheme:    scheme,
	})

	totalAmount := decimal.Zero
	totalCeiling := decimal.Zero
	for _, tx := range split.Valid {
		totalAmount = totalAmount.Add(tx.Amount)
		totalCeiling = totalCeiling.Add(tx.Ceiling)
	}

	s.logger.WithFields(logger.Fields{
		"scheme":  string(scheme),
		"windows": len(req.K),
		"valid":   len(split.Valid),
	}).Info("Calculated returns")

	return &ReturnsResult{
		TotalAmount:    models.Round2(totalAmount),
		TotalCeiling:   models.Round2(totalCeiling),
		SavingsByDates: savings,
	}
}
