package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

// Interval is usage accrued between two consecutive readings.
type Interval struct {
	Start time.Time
	End   time.Time
	Usage Decimal
}

// NewInterval returns an interval over [start, end]. start must be strictly
// before end and usage must not be negative.
func NewInterval(start, end time.Time, usage Decimal) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}
	if usage.Sign() < 0 {
		return Interval{}, fmt.Errorf("%w: negative usage %s", ErrInvalidInterval, usage)
	}
	return Interval{Start: start.UTC(), End: end.UTC(), Usage: usage}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
