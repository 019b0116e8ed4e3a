package spending

import (
	"fmt"
	"time"

	"github.com/milad/energyusage/internal/domain"
)

var nanosPerDay = domain.NewDecimalFromInt64(int64(day))

// AverageOverGap walks [start, end] in consecutive blocks of gapDays days and
// reports each block's usage divided by gapDays. A trailing remainder shorter
// than gapDays is dropped, so windows shorter than one block yield no
// results.
func AverageOverGap(src IntervalSource, start, end time.Time, gapDays int) ([]domain.Spending, error) {
	perDay := domain.NewDecimalFromInt64(int64(gapDays))
	return overGap(src, start, end, gapDays, func(d domain.Decimal) domain.Decimal {
		return d.Div(perDay)
	})
}

// TotalOverGap is AverageOverGap without the division: each block carries
// its prorated total.
func TotalOverGap(src IntervalSource, start, end time.Time, gapDays int) ([]domain.Spending, error) {
	return overGap(src, start, end, gapDays, func(d domain.Decimal) domain.Decimal { return d })
}

// AverageDaily averages per calendar day between the midnights of start and end.
func AverageDaily(src IntervalSource, start, end time.Time) ([]domain.Spending, error) {
	return AverageOverGap(src, StartOfDay(start), StartOfDay(end), 1)
}

// AverageWeekly averages per day over 7-day blocks starting at start's midnight.
func AverageWeekly(src IntervalSource, start, end time.Time) ([]domain.Spending, error) {
	return AverageOverGap(src, StartOfDay(start), StartOfDay(end), 7)
}

// TotalWeekly totals 7-day blocks starting at start's midnight.
func TotalWeekly(src IntervalSource, start, end time.Time) ([]domain.Spending, error) {
	return TotalOverGap(src, StartOfDay(start), StartOfDay(end), 7)
}

// AverageMonthly reports per-day averages for each calendar month touched by
// [start, end], rounded half-up to 2 decimals. When start and end share a
// month a single unrounded result is returned, divided by the day-of-month
// difference.
func AverageMonthly(src IntervalSource, start, end time.Time) ([]domain.Spending, error) {
	start, end = start.UTC(), end.UTC()
	if start.After(end) {
		return nil, invalidRange(start, end)
	}

	if sameMonth(start, end) {
		s, err := Between(src, start, end)
		if err != nil {
			return nil, &PeriodError{Start: start, End: end, Err: err}
		}
		days := end.Day() - start.Day()
		if days < 1 {
			days = 1
		}
		s.Usage = s.Usage.Div(domain.NewDecimalFromInt64(int64(days)))
		return []domain.Spending{s}, nil
	}

	return overMonths(src, start, end, func(s domain.Spending) domain.Decimal {
		nanos := s.End.Sub(s.Start)
		if nanos <= 0 {
			return domain.Decimal{}.Round(2)
		}
		return s.Usage.Mul(nanosPerDay).Div(domain.NewDecimalFromInt64(int64(nanos))).Round(2)
	})
}

// TotalMonthly reports the prorated total for each calendar month touched by
// [start, end].
func TotalMonthly(src IntervalSource, start, end time.Time) ([]domain.Spending, error) {
	start, end = start.UTC(), end.UTC()
	if start.After(end) {
		return nil, invalidRange(start, end)
	}
	return overMonths(src, start, end, func(s domain.Spending) domain.Decimal { return s.Usage })
}

func overGap(src IntervalSource, start, end time.Time, gapDays int, scale func(domain.Decimal) domain.Decimal) ([]domain.Spending, error) {
	start, end = start.UTC(), end.UTC()
	if start.After(end) {
		return nil, invalidRange(start, end)
	}
	if gapDays <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayGap, gapDays)
	}

	var out []domain.Spending
	for cursor := start; wholeDays(cursor, end) >= gapDays; {
		next := cursor.AddDate(0, 0, gapDays)
		s, err := Between(src, cursor, next)
		if err != nil {
			return nil, &PeriodError{Start: cursor, End: next, Err: err}
		}
		s.Usage = scale(s.Usage)
		out = append(out, s)
		cursor = next
	}
	return out, nil
}

func overMonths(src IntervalSource, start, end time.Time, value func(domain.Spending) domain.Decimal) ([]domain.Spending, error) {
	windows := monthWindows(start, end)
	out := make([]domain.Spending, 0, len(windows))
	for _, w := range windows {
		s, err := Between(src, w.Start, w.End)
		if err != nil {
			return nil, &PeriodError{Start: w.Start, End: w.End, Err: err}
		}
		s.Usage = value(s)
		out = append(out, s)
	}
	return out, nil
}
