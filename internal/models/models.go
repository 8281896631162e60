package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateTimeFormat is the canonical timestamp layout used across all payloads.
const DateTimeFormat = "2006-01-02 15:04:05"

// acceptedTimeFormats lists the input layouts tolerated when parsing
// timestamps from expense exports and request payloads.
var acceptedTimeFormats = []string{
	DateTimeFormat,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
}

// RoundingBase is the multiple every transaction ceiling must align to.
var RoundingBase = decimal.NewFromInt(100)

// Epsilon absorbs binary floating-point drift in upstream-produced values.
// It is also added before rounding so values conceptually equal to x.xx5
// round upward instead of falling back to an x.xx4999... representation.
var Epsilon = decimal.New(1, -9) // 1e-9

// RemanentTolerance is the allowed absolute difference between the supplied
// remanent and ceiling - amount.
var RemanentTolerance = decimal.New(1, -2) // 0.01

// Round2 rounds a monetary value to two decimal places after nudging it up
// by Epsilon, the convention applied to every monetary output.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Add(Epsilon).Round(2)
}

// NormalizeTime strips a timestamp down to UTC second precision. Two
// timestamps are equal only if they match exactly at this precision;
// duplicate detection relies on it.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// ParseTime attempts to parse a timestamp string using the accepted layouts
// and returns the normalized result.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("timestamp cannot be empty")
	}

	var lastErr error
	for _, layout := range acceptedTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeTime(t), nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse timestamp '%s': %w", s, lastErr)
}

// FormatTime renders a timestamp in the canonical payload layout.
func FormatTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// ParseAmount parses a monetary value from string with validation. Non-finite
// tokens produced by lossy upstream encoders are rejected explicitly so they
// cannot propagate NaN through downstream prefix sums.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	switch strings.ToLower(s) {
	case "nan", "+inf", "-inf", "inf", "infinity", "-infinity":
		return decimal.Zero, fmt.Errorf("amount must be finite, got '%s'", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': %w", s, err)
	}

	return d, nil
}

// ValidateFinite rejects NaN and infinite float inputs arriving through
// CLI flags before they are converted to decimals.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	return nil
}

// IsMultipleOfBase reports whether a ceiling aligns to the rounding base,
// tolerating Epsilon on either side of the boundary.
func IsMultipleOfBase(d decimal.Decimal) bool {
	rem := d.Mod(RoundingBase).Abs()
	return rem.LessThanOrEqual(Epsilon) || RoundingBase.Sub(rem).LessThanOrEqual(Epsilon)
}

// Transaction is a normalized round-up savings record. The remanent is the
// leftover after rounding the spent amount up to its ceiling, and is the
// baseline candidate for investment. Immutable once constructed.
type Transaction struct {
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Ceiling  decimal.Decimal `json:"ceiling"`
	Remanent decimal.Decimal `json:"remanent"`
}

// NewTransaction creates a Transaction with a normalized timestamp.
func NewTransaction(date time.Time, amount, ceiling, remanent decimal.Decimal) *Transaction {
	return &Transaction{
		Date:     NormalizeTime(date),
		Amount:   amount,
		Ceiling:  ceiling,
		Remanent: remanent,
	}
}

// String returns a string representation of the Transaction
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{Date: %s, Amount: %s, Ceiling: %s, Remanent: %s}",
		FormatTime(t.Date), t.Amount.String(), t.Ceiling.String(), t.Remanent.String())
}

// MarshalJSON implements custom JSON marshaling for Transaction
func (t *Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Date string `json:"date"`
		*Alias
	}{
		Date:  FormatTime(t.Date),
		Alias: (*Alias)(t),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Transaction
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type Alias Transaction
	aux := &struct {
		Date string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(t),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	parsed, err := ParseTime(aux.Date)
	if err != nil {
		return fmt.Errorf("invalid transaction date: %w", err)
	}
	t.Date = parsed

	return nil
}

// Equals compares two Transaction instances for equality
func (t *Transaction) Equals(other *Transaction) bool {
	if other == nil {
		return false
	}

	return t.Date.Equal(other.Date) &&
		t.Amount.Equal(other.Amount) &&
		t.Ceiling.Equal(other.Ceiling) &&
		t.Remanent.Equal(other.Remanent)
}

// InvalidTransaction is a Transaction paired with the reason it was rejected
// or flagged as a duplicate. Produced only by the sanitizer and the window
// filter; never mutated afterwards.
type InvalidTransaction struct {
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Ceiling  decimal.Decimal `json:"ceiling"`
	Remanent decimal.Decimal `json:"remanent"`
	Message  string          `json:"message"`
}

// NewInvalidTransaction copies the transaction fields and attaches the
// rejection reason.
func NewInvalidTransaction(t *Transaction, message string) *InvalidTransaction {
	return &InvalidTransaction{
		Date:     t.Date,
		Amount:   t.Amount,
		Ceiling:  t.Ceiling,
		Remanent: t.Remanent,
		Message:  message,
	}
}

// MarshalJSON implements custom JSON marshaling for InvalidTransaction
func (it *InvalidTransaction) MarshalJSON() ([]byte, error) {
	type Alias InvalidTransaction
	return json.Marshal(&struct {
		Date string `json:"date"`
		*Alias
	}{
		Date:  FormatTime(it.Date),
		Alias: (*Alias)(it),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for InvalidTransaction
func (it *InvalidTransaction) UnmarshalJSON(data []byte) error {
	type Alias InvalidTransaction
	aux := &struct {
		Date string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(it),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	parsed, err := ParseTime(aux.Date)
	if err != nil {
		return fmt.Errorf("invalid transaction date: %w", err)
	}
	it.Date = parsed

	return nil
}

// ProcessedTransaction is a Transaction carrying the effective remanent that
// results from temporal rule resolution. Produced only by the rule engine.
type ProcessedTransaction struct {
	Date              time.Time       `json:"date"`
	Amount            decimal.Decimal `json:"amount"`
	Ceiling           decimal.Decimal `json:"ceiling"`
	Remanent          decimal.Decimal `json:"remanent"`
	EffectiveRemanent decimal.Decimal `json:"effectiveRemanent"`
}

// NewProcessedTransaction copies the transaction fields and attaches the
// resolved effective remanent.
func NewProcessedTransaction(t *Transaction, effective decimal.Decimal) *ProcessedTransaction {
	return &ProcessedTransaction{
		Date:              t.Date,
		Amount:            t.Amount,
		Ceiling:           t.Ceiling,
		Remanent:          t.Remanent,
		EffectiveRemanent: effective,
	}
}

// AsTransaction returns the transaction fields without the effective value.
func (pt *ProcessedTransaction) AsTransaction() *Transaction {
	return &Transaction{
		Date:     pt.Date,
		Amount:   pt.Amount,
		Ceiling:  pt.Ceiling,
		Remanent: pt.Remanent,
	}
}

// MarshalJSON implements custom JSON marshaling for ProcessedTransaction
func (pt *ProcessedTransaction) MarshalJSON() ([]byte, error) {
	type Alias ProcessedTransaction
	return json.Marshal(&struct {
		Date string `json:"date"`
		*Alias
	}{
		Date:  FormatTime(pt.Date),
		Alias: (*Alias)(pt),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for ProcessedTransaction
func (pt *ProcessedTransaction) UnmarshalJSON(data []byte) error {
	type Alias ProcessedTransaction
	aux := &struct {
		Date string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(pt),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	parsed, err := ParseTime(aux.Date)
	if err != nil {
		return fmt.Errorf("invalid transaction date: %w", err)
	}
	pt.Date = parsed

	return nil
}

// DateRange is an inclusive temporal window used both for filtering
// transactions and for aggregating sums per reporting period.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange creates a DateRange with normalized bounds.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: NormalizeTime(start), End: NormalizeTime(end)}
}

// Validate checks that the range bounds are ordered.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("start must be less than or equal to end")
	}
	return nil
}

// Contains reports whether a timestamp falls inside the inclusive bounds.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// String returns a string representation of the DateRange
func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", FormatTime(r.Start), FormatTime(r.End))
}

// MarshalJSON implements custom JSON marshaling for DateRange
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: FormatTime(r.Start),
		End:   FormatTime(r.End),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for DateRange
func (r *DateRange) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	start, err := ParseTime(aux.Start)
	if err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	end, err := ParseTime(aux.End)
	if err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}

	r.Start = start
	r.End = end
	return nil
}

// FixedPeriod (q) replaces a transaction's base remanent with a constant
// value while active. When several are active, the one with the latest start
// wins; among identical starts the one listed first in the input wins.
type FixedPeriod struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Fixed decimal.Decimal `json:"fixed"`
}

// Range returns the period's inclusive window.
func (p FixedPeriod) Range() DateRange {
	return DateRange{Start: p.Start, End: p.End}
}

// MarshalJSON implements custom JSON marshaling for FixedPeriod
func (p FixedPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Start string          `json:"start"`
		End   string          `json:"end"`
		Fixed decimal.Decimal `json:"fixed"`
	}{
		Start: FormatTime(p.Start),
		End:   FormatTime(p.End),
		Fixed: p.Fixed,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for FixedPeriod
func (p *FixedPeriod) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Start string          `json:"start"`
		End   string          `json:"end"`
		Fixed decimal.Decimal `json:"fixed"`
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	start, err := ParseTime(aux.Start)
	if err != nil {
		return fmt.Errorf("invalid period start: %w", err)
	}
	end, err := ParseTime(aux.End)
	if err != nil {
		return fmt.Errorf("invalid period end: %w", err)
	}

	p.Start = start
	p.End = end
	p.Fixed = aux.Fixed
	return nil
}

// ExtraPeriod (p) contributes a constant additive amount to the effective
// remanent while active. Concurrently active periods stack.
type ExtraPeriod struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Extra decimal.Decimal `json:"extra"`
}

// Range returns the period's inclusive window.
func (p ExtraPeriod) Range() DateRange {
	return DateRange{Start: p.Start, End: p.End}
}

// MarshalJSON implements custom JSON marshaling for ExtraPeriod
func (p ExtraPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Start string          `json:"start"`
		End   string          `json:"end"`
		Extra decimal.Decimal `json:"extra"`
	}{
		Start: FormatTime(p.Start),
		End:   FormatTime(p.End),
		Extra: p.Extra,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for ExtraPeriod
func (p *ExtraPeriod) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Start string          `json:"start"`
		End   string          `json:"end"`
		Extra decimal.Decimal `json:"extra"`
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	start, err := ParseTime(aux.Start)
	if err != nil {
		return fmt.Errorf("invalid period start: %w", err)
	}
	end, err := ParseTime(aux.End)
	if err != nil {
		return fmt.Errorf("invalid period end: %w", err)
	}

	p.Start = start
	p.End = end
	p.Extra = aux.Extra
	return nil
}

// SavingsByDate is the return calculator's output unit: one reporting window
// with its aggregated investment, inflation-adjusted return, profit, and tax
// benefit.
type SavingsByDate struct {
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	Amount       decimal.Decimal `json:"amount"`
	Profits      decimal.Decimal `json:"profits"`
	TaxBenefit   decimal.Decimal `json:"taxBenefit"`
	ReturnAmount decimal.Decimal `json:"returnAmount"`
}

// MarshalJSON implements custom JSON marshaling for SavingsByDate
func (s SavingsByDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Start        string          `json:"start"`
		End          string          `json:"end"`
		Amount       decimal.Decimal `json:"amount"`
		Profits      decimal.Decimal `json:"profits"`
		TaxBenefit   decimal.Decimal `json:"taxBenefit"`
		ReturnAmount decimal.Decimal `json:"returnAmount"`
	}{
		Start:        FormatTime(s.Start),
		End:          FormatTime(s.End),
		Amount:       s.Amount,
		Profits:      s.Profits,
		TaxBenefit:   s.TaxBenefit,
		ReturnAmount: s.ReturnAmount,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for SavingsByDate
func (s *SavingsByDate) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Start        string          `json:"start"`
		End          string          `json:"end"`
		Amount       decimal.Decimal `json:"amount"`
		Profits      decimal.Decimal `json:"profits"`
		TaxBenefit   decimal.Decimal `json:"taxBenefit"`
		ReturnAmount decimal.Decimal `json:"returnAmount"`
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	start, err := ParseTime(aux.Start)
	if err != nil {
		return fmt.Errorf("invalid savings start: %w", err)
	}
	end, err := ParseTime(aux.End)
	if err != nil {
		return fmt.Errorf("invalid savings end: %w", err)
	}

	s.Start = start
	s.End = end
	s.Amount = aux.Amount
	s.Profits = aux.Profits
	s.TaxBenefit = aux.TaxBenefit
	s.ReturnAmount = aux.ReturnAmount
	return nil
}

// Expense is a raw spend record before round-up normalization.
type Expense struct {
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}

// MarshalJSON implements custom JSON marshaling for Expense
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Timestamp string          `json:"timestamp"`
		Amount    decimal.Decimal `json:"amount"`
	}{
		Timestamp: FormatTime(e.Timestamp),
		Amount:    e.Amount,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Expense. The
// timestamp field also accepts the "date" key used by older exports.
func (e *Expense) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Timestamp string          `json:"timestamp"`
		Date      string          `json:"date"`
		Amount    decimal.Decimal `json:"amount"`
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := aux.Timestamp
	if raw == "" {
		raw = aux.Date
	}

	parsed, err := ParseTime(raw)
	if err != nil {
		return fmt.Errorf("invalid expense timestamp: %w", err)
	}

	e.Timestamp = parsed
	e.Amount = aux.Amount
	return nil
}
