package spending

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange         = errors.New("invalid range")
	ErrEmptyStore           = errors.New("empty store")
	ErrInvalidDayGap        = errors.New("invalid day gap")
	ErrOverlappingIntervals = errors.New("overlapping intervals")
)

// PeriodError reports a failure for one sub-window of a periodic query.
type PeriodError struct {
	Start time.Time
	End   time.Time
	Err   error
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("period %s..%s: %v",
		e.Start.Format(time.RFC3339Nano), e.End.Format(time.RFC3339Nano), e.Err)
}

func (e *PeriodError) Unwrap() error {
	return e.Err
}

func invalidRange(start, end time.Time) error {
	return fmt.Errorf("%w: start %s is after end %s",
		ErrInvalidRange, start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
}
