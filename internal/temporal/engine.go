// Package temporal resolves time-windowed override rules against a
// transaction stream.
//
// Two rule families apply while their inclusive window contains a
// transaction's date:
//
//   - fixed periods (q) replace the transaction's base remanent with a
//     constant; when several overlap, the most recently started one wins,
//     and ties on start time fall back to input order (first listed wins)
//   - extra periods (p) add a constant on top; concurrently active extras
//     stack
//
// Resolution is a single forward sweep over the transactions in time order.
// Each rule family is tracked in its own priority queue with lazy eviction
// of expired entries, so the whole pass costs O(n log n) including the
// sorts. All state is allocated per call; the engine holds nothing between
// invocations and is safe to run concurrently across requests.
package temporal

import (
	"container/heap"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/pkg/logger"
)

// fixedEntry is a q period admitted to the active heap, retaining the
// original input position for the tie-break.
type fixedEntry struct {
	start      time.Time
	end        time.Time
	fixed      decimal.Decimal
	inputIndex int
}

// fixedHeap orders active q periods by latest start first; ties resolve to
// the earliest original input position.
type fixedHeap []fixedEntry

func (h fixedHeap) Len() int { return len(h) }

func (h fixedHeap) Less(i, j int) bool {
	if !h[i].start.Equal(h[j].start) {
		return h[i].start.After(h[j].start)
	}
	return h[i].inputIndex < h[j].inputIndex
}

func (h fixedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *fixedHeap) Push(x interface{}) { *h = append(*h, x.(fixedEntry)) }

func (h *fixedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// extraEntry is a p period admitted to the active heap.
type extraEntry struct {
	end   time.Time
	extra decimal.Decimal
}

// extraHeap orders active p periods by earliest end first so expired
// entries surface at the top for eviction.
type extraHeap []extraEntry

func (h extraHeap) Len() int { return len(h) }

func (h extraHeap) Less(i, j int) bool { return h[i].end.Before(h[j].end) }

func (h extraHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *extraHeap) Push(x interface{}) { *h = append(*h, x.(extraEntry)) }

func (h *extraHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ApplyRules resolves the effective remanent of every transaction under the
// supplied fixed and extra periods. The result has the same cardinality and
// order as the input; internally the transactions are visited in time order
// and the answers are written back to their original positions. With no
// periods supplied every effective remanent equals the base remanent.
func ApplyRules(
	transactions []*models.Transaction,
	fixedPeriods []models.FixedPeriod,
	extraPeriods []models.ExtraPeriod,
) []*models.ProcessedTransaction {

	// Time order for the sweep, original positions for the output.
	order := make([]int, len(transactions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return transactions[order[a]].Date.Before(transactions[order[b]].Date)
	})

	sortedFixed := make([]fixedEntry, 0, len(fixedPeriods))
	for i, p := range fixedPeriods {
		sortedFixed = append(sortedFixed, fixedEntry{
			start:      p.Start,
			end:        p.End,
			fixed:      p.Fixed,
			inputIndex: i,
		})
	}
	sort.SliceStable(sortedFixed, func(a, b int) bool {
		return sortedFixed[a].start.Before(sortedFixed[b].start)
	})

	sortedExtra := make([]models.ExtraPeriod, len(extraPeriods))
	copy(sortedExtra, extraPeriods)
	sort.SliceStable(sortedExtra, func(a, b int) bool {
		if !sortedExtra[a].Start.Equal(sortedExtra[b].Start) {
			return sortedExtra[a].Start.Before(sortedExtra[b].Start)
		}
		return sortedExtra[a].End.Before(sortedExtra[b].End)
	})

	activeFixed := &fixedHeap{}
	activeExtra := &extraHeap{}
	extraSum := decimal.Zero

	fixedIdx := 0
	extraIdx := 0

	results := make([]*models.ProcessedTransaction, len(transactions))

	for _, originalIndex := range order {
		tx := transactions[originalIndex]
		now := tx.Date

		// Admit every q period whose start has been reached.
		for fixedIdx < len(sortedFixed) && !sortedFixed[fixedIdx].start.After(now) {
			heap.Push(activeFixed, sortedFixed[fixedIdx])
			fixedIdx++
		}

		// Evict expired q periods. Eviction is driven purely by expiry:
		// an entry's start may still rank it on top after its end passed.
		for activeFixed.Len() > 0 && (*activeFixed)[0].end.Before(now) {
			heap.Pop(activeFixed)
		}

		// Admit newly active p periods, accumulating their extras.
		for extraIdx < len(sortedExtra) && !sortedExtra[extraIdx].Start.After(now) {
			p := sortedExtra[extraIdx]
			heap.Push(activeExtra, extraEntry{end: p.End, extra: p.Extra})
			extraSum = extraSum.Add(p.Extra)
			extraIdx++
		}

		// Evict expired p periods, returning their extras.
		for activeExtra.Len() > 0 && (*activeExtra)[0].end.Before(now) {
			expired := heap.Pop(activeExtra).(extraEntry)
			extraSum = extraSum.Sub(expired.extra)
		}

		base := tx.Remanent
		if activeFixed.Len() > 0 {
			base = (*activeFixed)[0].fixed
		}

		effective := base.Add(extraSum)
		if effective.IsNegative() {
			effective = decimal.Zero
		}

		results[originalIndex] = models.NewProcessedTransaction(tx, models.Round2(effective))
	}

	if len(fixedPeriods) > 0 || len(extraPeriods) > 0 {
		logger.WithComponent("temporal").WithFields(logger.Fields{
			"transactions":  len(transactions),
			"fixed_periods": len(fixedPeriods),
			"extra_periods": len(extraPeriods),
		}).Debug("Applied temporal rules")
	}

	return results
}
