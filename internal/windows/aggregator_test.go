package windows

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/temporal"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func rng(start, end int) models.DateRange {
	return models.DateRange{Start: day(start), End: day(end)}
}

func processedAt(date time.Time, effective float64) *models.ProcessedTransaction {
	tx := models.NewTransaction(date, decimal.NewFromFloat(100-effective), decimal.NewFromInt(100), decimal.NewFromFloat(effective))
	return models.NewProcessedTransaction(tx, decimal.NewFromFloat(effective))
}

func TestFilter_EmptyWindowsDisablesFiltering(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(1), 10),
		processedAt(day(25), 20),
	}

	valid, invalid := Filter(input, nil)

	if len(valid) != 2 {
		t.Errorf("Expected all transactions valid, got %d", len(valid))
	}
	if len(invalid) != 0 {
		t.Errorf("Expected 0 invalid, got %d", len(invalid))
	}
}

func TestFilter_SplitsInsideAndOutside(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(2), 10),
		processedAt(day(8), 20),
		processedAt(day(15), 30),
	}
	k := []models.DateRange{rng(1, 5), rng(12, 20)}

	valid, invalid := Filter(input, k)

	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid, got %d", len(valid))
	}
	if !valid[0].Date.Equal(day(2)) || !valid[1].Date.Equal(day(15)) {
		t.Errorf("Unexpected valid set: %v, %v", valid[0].Date, valid[1].Date)
	}
	if len(invalid) != 1 {
		t.Fatalf("Expected 1 invalid, got %d", len(invalid))
	}
	if invalid[0].Message != MsgOutsideWindows {
		t.Errorf("Expected message %q, got %q", MsgOutsideWindows, invalid[0].Message)
	}
}

func TestFilter_InclusiveBoundaries(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(5), 10),
		processedAt(day(10), 20),
	}

	valid, invalid := Filter(input, []models.DateRange{rng(5, 10)})

	if len(valid) != 2 {
		t.Errorf("Expected boundary transactions to pass, got %d valid, %d invalid", len(valid), len(invalid))
	}
}

func TestFilter_OverlappingWindowsCountOnce(t *testing.T) {
	input := []*models.ProcessedTransaction{processedAt(day(7), 10)}
	k := []models.DateRange{rng(1, 10), rng(5, 15)}

	valid, invalid := Filter(input, k)

	if len(valid) != 1 || len(invalid) != 0 {
		t.Errorf("Expected single valid transaction, got %d valid, %d invalid", len(valid), len(invalid))
	}
}

func TestFilter_OutputOrderFollowsInput(t *testing.T) {
	// Input out of time order; the outputs keep the caller's order.
	input := []*models.ProcessedTransaction{
		processedAt(day(20), 10),
		processedAt(day(2), 20),
		processedAt(day(9), 30),
	}
	k := []models.DateRange{rng(1, 10)}

	valid, invalid := Filter(input, k)

	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid, got %d", len(valid))
	}
	if !valid[0].Date.Equal(day(2)) || !valid[1].Date.Equal(day(9)) {
		t.Errorf("Valid order broken: %v, %v", valid[0].Date, valid[1].Date)
	}
	if len(invalid) != 1 || !invalid[0].Date.Equal(day(20)) {
		t.Errorf("Unexpected invalid set: %+v", invalid)
	}
}

func TestFilter_RepeatedCallsIndependent(t *testing.T) {
	// A second call with earlier dates must not inherit cursor state from
	// the first.
	late := []*models.ProcessedTransaction{processedAt(day(25), 10)}
	early := []*models.ProcessedTransaction{processedAt(day(2), 10)}
	k := []models.DateRange{rng(1, 5), rng(20, 28)}

	if valid, _ := Filter(late, k); len(valid) != 1 {
		t.Fatalf("First call: expected 1 valid, got %d", len(valid))
	}
	if valid, _ := Filter(early, k); len(valid) != 1 {
		t.Errorf("Second call: expected 1 valid, got %d", len(valid))
	}
}

func TestSumByWindows_Basic(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(2), 10),
		processedAt(day(8), 20),
		processedAt(day(15), 30),
	}
	k := []models.DateRange{rng(1, 10), rng(12, 20)}

	sums := SumByWindows(input, k)

	if len(sums) != 2 {
		t.Fatalf("Expected 2 sums, got %d", len(sums))
	}
	if !sums[0].Sum.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Window 0 sum = %s, want 30", sums[0].Sum.String())
	}
	if !sums[1].Sum.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Window 1 sum = %s, want 30", sums[1].Sum.String())
	}
}

func TestSumByWindows_InclusiveBoundaries(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(5), 10),
		processedAt(day(10), 20),
	}

	sums := SumByWindows(input, []models.DateRange{rng(5, 10)})

	if !sums[0].Sum.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Sum = %s, want 30 (boundaries inclusive)", sums[0].Sum.String())
	}
}

func TestSumByWindows_OverlapAndRepeatAnsweredIndependently(t *testing.T) {
	input := []*models.ProcessedTransaction{processedAt(day(7), 10)}
	k := []models.DateRange{rng(1, 10), rng(5, 15), rng(1, 10)}

	sums := SumByWindows(input, k)

	if len(sums) != 3 {
		t.Fatalf("Expected 3 sums, got %d", len(sums))
	}
	for i, ws := range sums {
		if !ws.Sum.Equal(decimal.NewFromInt(10)) {
			t.Errorf("Window %d sum = %s, want 10", i, ws.Sum.String())
		}
	}
}

func TestSumByWindows_EmptyWindowYieldsZero(t *testing.T) {
	input := []*models.ProcessedTransaction{processedAt(day(7), 10)}

	sums := SumByWindows(input, []models.DateRange{rng(20, 25)})

	if !sums[0].Sum.Equal(decimal.Zero) {
		t.Errorf("Sum = %s, want 0", sums[0].Sum.String())
	}
}

func TestSumByWindows_CallerOrderPreserved(t *testing.T) {
	input := []*models.ProcessedTransaction{
		processedAt(day(2), 10),
		processedAt(day(20), 40),
	}
	k := []models.DateRange{rng(15, 25), rng(1, 5)}

	sums := SumByWindows(input, k)

	if !sums[0].Range.Start.Equal(day(15)) || !sums[1].Range.Start.Equal(day(1)) {
		t.Errorf("Window order broken: %v, %v", sums[0].Range, sums[1].Range)
	}
	if !sums[0].Sum.Equal(decimal.NewFromInt(40)) || !sums[1].Sum.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Sums = %s, %s; want 40, 10", sums[0].Sum.String(), sums[1].Sum.String())
	}
}

func TestSumByWindows_NoWindows(t *testing.T) {
	sums := SumByWindows([]*models.ProcessedTransaction{processedAt(day(1), 10)}, nil)
	if len(sums) != 0 {
		t.Errorf("Expected empty result, got %d", len(sums))
	}
}

func TestPipelineScenario(t *testing.T) {
	// Two expenses rounding up to 100 each; one sits inside a q period
	// fixing the remanent at 10, the other additionally accumulates a p
	// extra of 5.
	t1 := models.NewTransaction(day(3), decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.NewFromInt(99))
	t2 := models.NewTransaction(day(8), decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.NewFromInt(99))

	q := []models.FixedPeriod{{Start: day(1), End: day(10), Fixed: decimal.NewFromInt(10)}}
	p := []models.ExtraPeriod{{Start: day(6), End: day(10), Extra: decimal.NewFromInt(5)}}

	processed := temporal.ApplyRules([]*models.Transaction{t1, t2}, q, p)

	sums := SumByWindows(processed, []models.DateRange{rng(1, 10)})

	// t1: fixed 10; t2: fixed 10 + extra 5 = 15.
	if !sums[0].Sum.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Window sum = %s, want 25", sums[0].Sum.String())
	}
}
