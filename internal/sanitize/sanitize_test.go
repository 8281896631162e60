package sanitize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
)

func tx(day int, amount, ceiling, remanent float64) *models.Transaction {
	return models.NewTransaction(
		time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(amount),
		decimal.NewFromFloat(ceiling),
		decimal.NewFromFloat(remanent),
	)
}

func TestSplit_AllValid(t *testing.T) {
	input := []*models.Transaction{
		tx(1, 55.50, 100, 44.50),
		tx(2, 120, 200, 80),
		tx(3, 100, 100, 0),
	}

	result := Split(input, nil)

	if len(result.Valid) != 3 {
		t.Errorf("Expected 3 valid, got %d", len(result.Valid))
	}
	if len(result.Invalid) != 0 {
		t.Errorf("Expected 0 invalid, got %d", len(result.Invalid))
	}
	if len(result.Duplicates) != 0 {
		t.Errorf("Expected 0 duplicates, got %d", len(result.Duplicates))
	}
}

func TestSplit_DuplicateDates(t *testing.T) {
	first := tx(1, 55.50, 100, 44.50)
	second := tx(1, 20, 100, 80) // same timestamp, different values

	result := Split([]*models.Transaction{first, second}, nil)

	if len(result.Valid) != 1 {
		t.Fatalf("Expected 1 valid, got %d", len(result.Valid))
	}
	if !result.Valid[0].Amount.Equal(first.Amount) {
		t.Errorf("Expected first occurrence to win, got amount %s", result.Valid[0].Amount.String())
	}
	if len(result.Duplicates) != 1 {
		t.Fatalf("Expected 1 duplicate, got %d", len(result.Duplicates))
	}
	if result.Duplicates[0].Message != MsgDuplicateDate {
		t.Errorf("Expected message %q, got %q", MsgDuplicateDate, result.Duplicates[0].Message)
	}
}

func TestSplit_DuplicateNotValidated(t *testing.T) {
	// A duplicate of a valid transaction is a duplicate even when its own
	// fields are structurally broken.
	first := tx(1, 55.50, 100, 44.50)
	broken := tx(1, 500, 100, 7)

	result := Split([]*models.Transaction{first, broken}, nil)

	if len(result.Invalid) != 0 {
		t.Errorf("Expected 0 invalid, got %d", len(result.Invalid))
	}
	if len(result.Duplicates) != 1 {
		t.Errorf("Expected 1 duplicate, got %d", len(result.Duplicates))
	}
}

func TestSplit_GuardOrder(t *testing.T) {
	tests := []struct {
		name     string
		tx       *models.Transaction
		expected string
	}{
		{
			name:     "ceiling below amount",
			tx:       tx(1, 150, 100, 0),
			expected: MsgCeilingBelow,
		},
		{
			name:     "ceiling not a multiple",
			tx:       tx(2, 100, 150, 50),
			expected: MsgCeilingMultiple,
		},
		{
			name:     "remanent mismatch",
			tx:       tx(3, 55.50, 100, 10),
			expected: MsgRemanentMismatch,
		},
		{
			name: "ceiling check outranks remanent check",
			// both guards would fail; only the first fires
			tx:       tx(4, 250, 100, 5),
			expected: MsgCeilingBelow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Split([]*models.Transaction{tt.tx}, nil)
			if len(result.Invalid) != 1 {
				t.Fatalf("Expected 1 invalid, got %d", len(result.Invalid))
			}
			if got := result.Invalid[0].Message; got != tt.expected {
				t.Errorf("Expected message %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSplit_RemanentTolerance(t *testing.T) {
	// 100 - 55.50 = 44.50; a remanent within 0.01 of it passes.
	within := tx(1, 55.50, 100, 44.51)
	beyond := tx(2, 55.50, 100, 44.52)

	result := Split([]*models.Transaction{within, beyond}, nil)

	if len(result.Valid) != 1 {
		t.Errorf("Expected 1 valid, got %d", len(result.Valid))
	}
	if len(result.Invalid) != 1 {
		t.Fatalf("Expected 1 invalid, got %d", len(result.Invalid))
	}
	if result.Invalid[0].Message != MsgRemanentMismatch {
		t.Errorf("Expected message %q, got %q", MsgRemanentMismatch, result.Invalid[0].Message)
	}
}

func TestSplit_CeilingEqualsAmount(t *testing.T) {
	result := Split([]*models.Transaction{tx(1, 100, 100, 0)}, nil)
	if len(result.Valid) != 1 {
		t.Errorf("Expected zero-remanent transaction to be valid, got %d valid", len(result.Valid))
	}
}

func TestSplit_MaxInvestmentCap(t *testing.T) {
	cap := decimal.NewFromInt(50)

	under := tx(1, 60, 100, 40)
	over := tx(2, 20, 100, 80)

	result := Split([]*models.Transaction{under, over}, &cap)

	if len(result.Valid) != 1 {
		t.Fatalf("Expected 1 valid, got %d", len(result.Valid))
	}
	if !result.Valid[0].Date.Equal(under.Date) {
		t.Errorf("Expected the capped transaction to be rejected, kept %v", result.Valid[0].Date)
	}
	if len(result.Invalid) != 1 || result.Invalid[0].Message != MsgRemanentCapped {
		t.Errorf("Expected %q rejection, got %+v", MsgRemanentCapped, result.Invalid)
	}
}

func TestSplit_MaxInvestmentCapInclusive(t *testing.T) {
	cap := decimal.NewFromInt(80)
	result := Split([]*models.Transaction{tx(1, 20, 100, 80)}, &cap)
	if len(result.Valid) != 1 {
		t.Errorf("Expected remanent equal to cap to pass, got %d valid", len(result.Valid))
	}
}

func TestSplit_NoCapWithoutMaxInvestment(t *testing.T) {
	result := Split([]*models.Transaction{tx(1, 20, 100, 80)}, nil)
	if len(result.Valid) != 1 {
		t.Errorf("Expected no cap when maxInvestment is nil, got %d valid", len(result.Valid))
	}
}

func TestSplit_PreservesInputOrder(t *testing.T) {
	input := []*models.Transaction{
		tx(5, 10, 100, 90),
		tx(1, 10, 100, 90),
		tx(3, 10, 100, 90),
	}

	result := Split(input, nil)

	if len(result.Valid) != 3 {
		t.Fatalf("Expected 3 valid, got %d", len(result.Valid))
	}
	for i, want := range []int{5, 1, 3} {
		if result.Valid[i].Date.Day() != want {
			t.Errorf("Position %d: expected day %d, got %d", i, want, result.Valid[i].Date.Day())
		}
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	result := Split(nil, nil)
	if len(result.Valid) != 0 || len(result.Invalid) != 0 || len(result.Duplicates) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}
