package spending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milad/energyusage/internal/domain"
)

var epoch = time.Unix(0, 0).UTC()

// at returns epoch plus the given days and hours.
func at(days, hours int) time.Time {
	return epoch.Add(time.Duration(days)*day + time.Duration(hours)*time.Hour)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, start, end time.Time, usage string) domain.Interval {
	t.Helper()
	iv, err := domain.NewInterval(start, end, domain.MustDecimal(usage))
	require.NoError(t, err)
	return iv
}

func newStore(t *testing.T, intervals ...domain.Interval) *Store {
	t.Helper()
	s, err := NewStore(intervals)
	require.NoError(t, err)
	return s
}

// threeDays is 1d->2d, 2d->3d, 3d->4d with usage 10 each.
func threeDays(t *testing.T) *Store {
	t.Helper()
	return newStore(t,
		interval(t, at(1, 0), at(2, 0), "10"),
		interval(t, at(2, 0), at(3, 0), "10"),
		interval(t, at(3, 0), at(4, 0), "10"),
	)
}

func rounded(d domain.Decimal) string {
	return d.Round(2).String()
}

func sum(results []domain.Spending) domain.Decimal {
	var total domain.Decimal
	for _, r := range results {
		total = total.Add(r.Usage)
	}
	return total
}
