package spending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milad/energyusage/internal/domain"
)

func TestAverageDaily(t *testing.T) {
	s := threeDays(t)

	tests := []struct {
		name       string
		start, end time.Time
		periods    int
		total      string
	}{
		{"same instant", at(1, 0), at(1, 0), 0, "0.00"},
		{"half a day", at(1, 0), at(1, 12), 0, "0.00"},
		{"one day", at(1, 0), at(2, 0), 1, "10.00"},
		{"two days", at(1, 0), at(3, 0), 2, "20.00"},
		{"three days", at(1, 0), at(4, 0), 3, "30.00"},
		{"normalized to midnight", at(1, 15), at(3, 9), 2, "20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageDaily(s, tt.start, tt.end)
			require.NoError(t, err)
			assert.Len(t, got, tt.periods)
			assert.Equal(t, tt.total, rounded(sum(got)))
		})
	}
}

func TestAverageDailyTenDays(t *testing.T) {
	var intervals []domain.Interval
	for d := 1; d <= 10; d++ {
		intervals = append(intervals, interval(t, at(d, 0), at(d+1, 0), "10"))
	}
	s := newStore(t, intervals...)

	got, err := AverageDaily(s, at(1, 0), at(11, 0))
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "100.00", rounded(sum(got)))
	for i, p := range got {
		assert.Equal(t, at(1+i, 0), p.Start)
		assert.Equal(t, at(2+i, 0), p.End)
		assert.Equal(t, "10.00", rounded(p.Usage))
	}
}

func TestAverageOverGap(t *testing.T) {
	s := threeDays(t)

	t.Run("drops trailing remainder", func(t *testing.T) {
		got, err := AverageOverGap(s, at(1, 0), at(4, 0), 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at(3, 0), got[0].End)
		assert.Equal(t, "10.00", rounded(got[0].Usage))
	})

	t.Run("window shorter than gap", func(t *testing.T) {
		got, err := AverageOverGap(s, at(1, 0), at(2, 0), 2)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := AverageOverGap(s, at(4, 0), at(1, 0), 1)
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("non-positive gap", func(t *testing.T) {
		_, err := AverageOverGap(s, at(1, 0), at(4, 0), 0)
		require.ErrorIs(t, err, ErrInvalidDayGap)
	})

	t.Run("does not normalize", func(t *testing.T) {
		got, err := AverageOverGap(s, at(1, 12), at(3, 12), 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, at(1, 12), got[0].Start)
	})
}

func TestTotalOverGap(t *testing.T) {
	got, err := TotalOverGap(threeDays(t), at(1, 0), at(4, 0), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "30.00", rounded(got[0].Usage))
}

func crossYear(t *testing.T, end time.Time) *Store {
	t.Helper()
	return newStore(t, interval(t, date(1970, time.December, 22), end, "90"))
}

func TestAverageWeekly(t *testing.T) {
	s := crossYear(t, date(1971, time.January, 19))

	got, err := AverageWeekly(s, date(1970, time.December, 22), date(1971, time.January, 19))
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, p := range got {
		assert.Equal(t, date(1970, time.December, 22).AddDate(0, 0, 7*i), p.Start)
		assert.Equal(t, "3.21", rounded(p.Usage))
	}

	_, err = AverageWeekly(s, date(1971, time.January, 19), date(1970, time.December, 22))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestTotalWeekly(t *testing.T) {
	s := crossYear(t, date(1971, time.January, 19))

	got, err := TotalWeekly(s, date(1970, time.December, 22).Add(5*time.Hour), date(1971, time.January, 19))
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "22.50", rounded(got[0].Usage))
	assert.Equal(t, "90.00", rounded(sum(got)))
}

func TestAverageMonthly(t *testing.T) {
	t.Run("cross year", func(t *testing.T) {
		s := crossYear(t, date(1971, time.January, 21))

		got, err := AverageMonthly(s, date(1970, time.December, 22), date(1971, time.January, 21))
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, date(1970, time.December, 22), got[0].Start)
		assert.Equal(t, time.Date(1970, time.December, 31, 23, 59, 59, 999999999, time.UTC), got[0].End)
		assert.Equal(t, "3.00", got[0].Usage.String())

		assert.Equal(t, date(1971, time.January, 1), got[1].Start)
		assert.Equal(t, date(1971, time.January, 21), got[1].End)
		assert.Equal(t, "3.00", got[1].Usage.String())
	})

	t.Run("interior months are whole", func(t *testing.T) {
		s := newStore(t, interval(t, date(2024, time.January, 15), date(2024, time.April, 15), "91"))

		got, err := AverageMonthly(s, date(2024, time.January, 15), date(2024, time.April, 15))
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, date(2024, time.February, 1), got[1].Start)
		assert.Equal(t, EndOfMonth(date(2024, time.February, 1)), got[1].End)
		for _, p := range got {
			assert.Equal(t, "1.00", p.Usage.String())
		}
	})

	t.Run("same month divides by day difference", func(t *testing.T) {
		s := threeDays(t)
		got, err := AverageMonthly(s, at(1, 0), at(4, 0))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at(1, 0), got[0].Start)
		assert.Equal(t, "10.00", rounded(got[0].Usage))
	})

	t.Run("same day clamps divisor", func(t *testing.T) {
		s := threeDays(t)
		got, err := AverageMonthly(s, at(1, 0), at(1, 12))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "5.00", rounded(got[0].Usage))
	})

	t.Run("ends on a month boundary", func(t *testing.T) {
		s := crossYear(t, date(1971, time.January, 1))
		got, err := AverageMonthly(s, date(1970, time.December, 22), date(1971, time.January, 1))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "9.00", got[0].Usage.String())
		assert.Equal(t, "0.00", got[1].Usage.String())
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := AverageMonthly(threeDays(t), at(4, 0), at(1, 0))
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestTotalMonthly(t *testing.T) {
	s := crossYear(t, date(1971, time.January, 21))

	got, err := TotalMonthly(s, date(1970, time.December, 22), date(1971, time.January, 21))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "30.00", rounded(got[0].Usage))
	assert.Equal(t, "60.00", rounded(got[1].Usage))
	assert.Equal(t, "90.00", rounded(sum(got)))

	same, err := TotalMonthly(s, date(1971, time.January, 1), date(1971, time.January, 11))
	require.NoError(t, err)
	require.Len(t, same, 1)
	assert.Equal(t, "30.00", rounded(same[0].Usage))

	_, err = TotalMonthly(s, date(1971, time.January, 21), date(1970, time.December, 22))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestPeriodError(t *testing.T) {
	err := error(&PeriodError{Start: at(1, 0), End: at(2, 0), Err: ErrInvalidRange})
	require.ErrorIs(t, err, ErrInvalidRange)
	assert.Contains(t, err.Error(), "1970-01-02T00:00:00Z")
}
