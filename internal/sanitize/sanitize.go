// Package sanitize partitions raw transactions into valid, structurally
// invalid, and duplicate sets.
//
// Transactions are processed in input order with a single pass over the
// stream: a set of normalized timestamps catches duplicates (the first
// occurrence of a timestamp always wins), and a fixed sequence of guard
// checks short-circuits on the first structural failure. Failures are data,
// not errors: rejected transactions land in the invalid or duplicate
// collections with a human-readable reason and the call never aborts.
package sanitize

import (
	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/pkg/logger"
)

// Rejection messages, matched verbatim by downstream consumers.
const (
	MsgDuplicateDate    = "Duplicate transaction date."
	MsgCeilingBelow     = "ceiling must be greater than or equal to amount."
	MsgCeilingMultiple  = "ceiling must be a multiple of 100."
	MsgRemanentMismatch = "remanent must be equal to ceiling - amount."
	MsgRemanentCapped   = "remanent exceeds maxInvestmentAmount."
)

// Result holds the three partitions produced by Split. Each slice preserves
// the relative input order of its members.
type Result struct {
	Valid      []*models.Transaction
	Invalid    []*models.InvalidTransaction
	Duplicates []*models.InvalidTransaction
}

// Split validates transactions in input order. maxInvestment, when non-nil,
// additionally caps the remanent of otherwise valid transactions. The input
// slice is never mutated.
func Split(transactions []*models.Transaction, maxInvestment *decimal.Decimal) *Result {
	result := &Result{
		Valid:      make([]*models.Transaction, 0, len(transactions)),
		Invalid:    []*models.InvalidTransaction{},
		Duplicates: []*models.InvalidTransaction{},
	}

	seen := make(map[int64]struct{}, len(transactions))

	for _, tx := range transactions {
		key := tx.Date.Unix()
		if _, dup := seen[key]; dup {
			result.Duplicates = append(result.Duplicates, models.NewInvalidTransaction(tx, MsgDuplicateDate))
			continue
		}
		seen[key] = struct{}{}

		if msg := check(tx, maxInvestment); msg != "" {
			result.Invalid = append(result.Invalid, models.NewInvalidTransaction(tx, msg))
			continue
		}

		result.Valid = append(result.Valid, tx)
	}

	if len(result.Invalid) > 0 || len(result.Duplicates) > 0 {
		logger.WithComponent("sanitize").WithFields(logger.Fields{
			"valid":      len(result.Valid),
			"invalid":    len(result.Invalid),
			"duplicates": len(result.Duplicates),
		}).Debug("Partitioned transactions")
	}

	return result
}

// check runs the structural guards in their fixed priority order and returns
// the first failure message, or "" when the transaction is valid.
func check(tx *models.Transaction, maxInvestment *decimal.Decimal) string {
	// ceiling + epsilon < amount means the ceiling genuinely undercuts
	// the amount; values within epsilon are treated as equal.
	if tx.Ceiling.Add(models.Epsilon).LessThan(tx.Amount) {
		return MsgCeilingBelow
	}

	if !models.IsMultipleOfBase(tx.Ceiling) {
		return MsgCeilingMultiple
	}

	expected := tx.Ceiling.Sub(tx.Amount)
	if expected.Sub(tx.Remanent).Abs().GreaterThan(models.RemanentTolerance) {
		return MsgRemanentMismatch
	}

	if maxInvestment != nil && tx.Remanent.GreaterThan(*maxInvestment) {
		return MsgRemanentCapped
	}

	return ""
}
