package repo

import (
	"context"
	"time"

	"github.com/milad/energyusage/internal/domain"
)

// ReadingRepository provides access to cumulative meter readings.
type ReadingRepository interface {
	// List returns readings in ascending time order, optionally filtered by [start, end).
	// The returned slice must be treated as read-only by callers.
	List(ctx context.Context, startInclusive *time.Time, endExclusive *time.Time) ([]domain.Reading, error)
}

// ReadingWriter stores readings. Exact duplicates are ignored and do not
// count as inserted.
type ReadingWriter interface {
	Add(ctx context.Context, readings ...domain.Reading) (int, error)
}
