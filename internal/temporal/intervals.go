package temporal

import (
	"sort"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
)

// MergeRanges collapses a set of inclusive date ranges into the minimal
// sorted set of disjoint ranges covering the same instants. Ranges that
// touch or overlap are merged; the fold is stable under reordering of
// equal-start inputs and merging an already merged set is a no-op.
func MergeRanges(ranges []models.DateRange) []models.DateRange {
	if len(ranges) == 0 {
		return []models.DateRange{}
	}

	sorted := make([]models.DateRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	merged := make([]models.DateRange, 0, len(sorted))
	merged = append(merged, sorted[0])

	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
			continue
		}
		merged = append(merged, current)
	}

	return merged
}
