// Package windows groups processed transactions into caller-specified date
// windows.
//
// Two operations are provided. Filtering demotes transactions falling
// outside the merged union of the supplied windows; aggregation answers a
// sum query per window using prefix sums over the date-sorted transactions.
// Filtering merges its windows first, aggregation deliberately does not:
// reporting windows may overlap or repeat and each is answered
// independently in caller order.
package windows

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/temporal"
)

// MsgOutsideWindows is the rejection reason attached to transactions
// excluded by the filter.
const MsgOutsideWindows = "Transaction outside provided k date ranges."

// WindowSum pairs a reporting window with the sum of effective remanents of
// the transactions dated inside it.
type WindowSum struct {
	Range models.DateRange
	Sum   decimal.Decimal
}

// Filter splits processed transactions into those inside the union of the
// supplied windows and those outside it, the latter annotated with a
// rejection reason. Order within each output slice follows the input. An
// empty window set disables filtering entirely: every transaction is valid.
//
// The scan is two-pointer linear: windows are merged and sorted, the
// transactions visited in time order, and a single monotone cursor advanced
// over the merged windows. The cursor is local to this call and always
// begins at the first merged window.
func Filter(processed []*models.ProcessedTransaction, windows []models.DateRange) ([]*models.ProcessedTransaction, []*models.InvalidTransaction) {
	if len(windows) == 0 {
		return processed, []*models.InvalidTransaction{}
	}

	merged := temporal.MergeRanges(windows)

	order := make([]int, len(processed))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return processed[order[a]].Date.Before(processed[order[b]].Date)
	})

	inRange := make([]bool, len(processed))
	cursor := 0
	for _, idx := range order {
		date := processed[idx].Date
		for cursor < len(merged) && merged[cursor].End.Before(date) {
			cursor++
		}
		inRange[idx] = cursor < len(merged) && merged[cursor].Contains(date)
	}

	valid := make([]*models.ProcessedTransaction, 0, len(processed))
	invalid := []*models.InvalidTransaction{}
	for i, tx := range processed {
		if inRange[i] {
			valid = append(valid, tx)
			continue
		}
		invalid = append(invalid, models.NewInvalidTransaction(tx.AsTransaction(), MsgOutsideWindows))
	}

	return valid, invalid
}

// SumByWindows answers one effective-remanent sum per requested window.
// Windows are queried independently in caller order, without merging or
// deduplication, so overlapping and repeated windows are answered
// separately. Bounds are inclusive: a transaction dated exactly at a
// window's start or end is counted.
func SumByWindows(processed []*models.ProcessedTransaction, windows []models.DateRange) []WindowSum {
	if len(windows) == 0 {
		return []WindowSum{}
	}

	sorted := make([]*models.ProcessedTransaction, len(processed))
	copy(sorted, processed)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Date.Before(sorted[b].Date)
	})

	dates := make([]time.Time, len(sorted))
	prefix := make([]decimal.Decimal, len(sorted)+1)
	prefix[0] = decimal.Zero
	for i, tx := range sorted {
		dates[i] = tx.Date
		prefix[i+1] = prefix[i].Add(tx.EffectiveRemanent)
	}

	sums := make([]WindowSum, 0, len(windows))
	for _, window := range windows {
		// First index with date >= window start, first with date > window end.
		lo := sort.Search(len(dates), func(i int) bool {
			return !dates[i].Before(window.Start)
		})
		hi := sort.Search(len(dates), func(i int) bool {
			return dates[i].After(window.End)
		})

		sums = append(sums, WindowSum{
			Range: window,
			Sum:   prefix[hi].Sub(prefix[lo]),
		})
	}

	return sums
}
