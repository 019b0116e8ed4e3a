package spending

import (
	"sort"

	"github.com/milad/energyusage/internal/domain"
)

// BuildIntervals derives spending intervals from raw readings. Exact
// duplicates are collapsed and readings are ordered by time before pairing.
//
// A decrease between consecutive readings is consumption and yields an
// interval carrying the difference. An increase marks a meter reset and
// yields nothing. Readings sharing a timestamp never form an interval.
func BuildIntervals(readings []domain.Reading) []domain.Interval {
	if len(readings) < 2 {
		return nil
	}

	sorted := make([]domain.Reading, len(readings))
	for i, r := range readings {
		sorted[i] = domain.Reading{Time: r.Time.UTC(), Value: r.Value}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Time.Equal(sorted[j].Time) {
			return sorted[i].Time.Before(sorted[j].Time)
		}
		return sorted[i].Value.Cmp(sorted[j].Value) < 0
	})

	unique := sorted[:1]
	for _, r := range sorted[1:] {
		if !r.Equal(unique[len(unique)-1]) {
			unique = append(unique, r)
		}
	}

	var out []domain.Interval
	for i := 1; i < len(unique); i++ {
		prev, curr := unique[i-1], unique[i]
		if !curr.Time.After(prev.Time) {
			continue
		}
		if curr.Value.Cmp(prev.Value) > 0 {
			continue
		}
		iv, err := domain.NewInterval(prev.Time, curr.Time, prev.Value.Sub(curr.Value))
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}
