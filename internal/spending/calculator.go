package spending

import (
	"sort"
	"time"

	"github.com/milad/energyusage/internal/domain"
)

// IntervalSource yields the intervals intersecting a closed window.
type IntervalSource interface {
	Between(start, end time.Time) []domain.Interval
}

var _ IntervalSource = (*Store)(nil)

// Between returns the usage accrued in [start, end]. Intervals partially
// inside the window contribute linearly by the share of their duration that
// overlaps it. The window is echoed back unchanged; with no matching
// intervals the usage is zero.
func Between(src IntervalSource, start, end time.Time) (domain.Spending, error) {
	start, end = start.UTC(), end.UTC()
	if start.After(end) {
		return domain.Spending{}, invalidRange(start, end)
	}
	result := domain.Spending{Start: start, End: end}

	matched := src.Between(start, end)
	if len(matched) == 0 {
		return result, nil
	}
	sorted := make([]domain.Interval, len(matched))
	copy(sorted, matched)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	first, last := sorted[0], sorted[len(sorted)-1]
	usage := prorate(first, start, end)
	if len(sorted) > 1 {
		for _, iv := range sorted[1 : len(sorted)-1] {
			usage = usage.Add(iv.Usage)
		}
		usage = usage.Add(prorate(last, start, end))
	}
	result.Usage = usage
	return result, nil
}

// prorate scales iv's usage by the fraction of its duration inside [start, end].
func prorate(iv domain.Interval, start, end time.Time) domain.Decimal {
	total := iv.Duration()
	if total <= 0 {
		return domain.Decimal{}
	}
	from, to := iv.Start, iv.End
	if start.After(from) {
		from = start
	}
	if end.Before(to) {
		to = end
	}
	overlap := to.Sub(from)
	switch {
	case overlap <= 0:
		return domain.Decimal{}
	case overlap >= total:
		return iv.Usage
	}
	fraction := float64(overlap) / float64(total)
	return iv.Usage.Mul(domain.NewDecimalFromFloat64(fraction))
}
