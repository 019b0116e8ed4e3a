package spending

import (
	"fmt"
	"sort"
	"time"

	"github.com/milad/energyusage/internal/domain"
)

// Store is an immutable, start-ordered set of non-overlapping intervals.
// It is safe for concurrent readers.
type Store struct {
	intervals []domain.Interval
}

// NewStore copies and sorts intervals. Adjacent intervals may touch but must
// not overlap.
func NewStore(intervals []domain.Interval) (*Store, error) {
	cp := make([]domain.Interval, 0, len(intervals))
	for _, iv := range intervals {
		checked, err := domain.NewInterval(iv.Start, iv.End, iv.Usage)
		if err != nil {
			return nil, err
		}
		cp = append(cp, checked)
	}
	sort.Slice(cp, func(i, j int) bool { return cp[i].Start.Before(cp[j].Start) })

	for i := 1; i < len(cp); i++ {
		if cp[i].Start.Before(cp[i-1].End) {
			return nil, fmt.Errorf("%w: %s..%s and %s..%s", ErrOverlappingIntervals,
				cp[i-1].Start.Format(time.RFC3339Nano), cp[i-1].End.Format(time.RFC3339Nano),
				cp[i].Start.Format(time.RFC3339Nano), cp[i].End.Format(time.RFC3339Nano))
		}
	}
	return &Store{intervals: cp}, nil
}

// FromReadings builds intervals from readings and stores them.
func FromReadings(readings []domain.Reading) (*Store, error) {
	return NewStore(BuildIntervals(readings))
}

func (s *Store) Len() int {
	return len(s.intervals)
}

// Intervals returns a copy of every stored interval.
func (s *Store) Intervals() []domain.Interval {
	out := make([]domain.Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Between returns the intervals that intersect [start, end], bounds included,
// ordered by start. Intervals that merely touch the window are returned too.
func (s *Store) Between(start, end time.Time) []domain.Interval {
	// Ends are ordered like starts because intervals never overlap.
	i := sort.Search(len(s.intervals), func(i int) bool {
		return !s.intervals[i].End.Before(start)
	})
	var out []domain.Interval
	for ; i < len(s.intervals) && !s.intervals[i].Start.After(end); i++ {
		out = append(out, s.intervals[i])
	}
	return out
}

// Earliest returns the start of the first interval.
func (s *Store) Earliest() (time.Time, error) {
	if len(s.intervals) == 0 {
		return time.Time{}, ErrEmptyStore
	}
	return s.intervals[0].Start, nil
}

// Latest returns the end of the last interval.
func (s *Store) Latest() (time.Time, error) {
	if len(s.intervals) == 0 {
		return time.Time{}, ErrEmptyStore
	}
	return s.intervals[len(s.intervals)-1].End, nil
}

// Bounds returns the covered window, or false when the store holds no data.
func (s *Store) Bounds() (Window, bool) {
	if len(s.intervals) == 0 {
		return Window{}, false
	}
	return Window{Start: s.intervals[0].Start, End: s.intervals[len(s.intervals)-1].End}, true
}
