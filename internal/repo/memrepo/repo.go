package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/repo"
)

var (
	_ repo.ReadingRepository = (*Repo)(nil)
	_ repo.ReadingWriter     = (*Repo)(nil)
)

// Repo is an in-memory reading repository.
type Repo struct {
	mu       sync.RWMutex
	readings []domain.Reading // sorted ascending by Time
}

func New(readings []domain.Reading) *Repo {
	r := &Repo{}
	for _, rd := range readings {
		r.insert(rd)
	}
	return r
}

func (r *Repo) Add(ctx context.Context, readings ...domain.Reading) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, rd := range readings {
		if r.insert(rd) {
			inserted++
		}
	}
	return inserted, nil
}

// insert keeps readings ordered and skips exact duplicates. Callers hold mu.
func (r *Repo) insert(rd domain.Reading) bool {
	rd.Time = rd.Time.UTC()
	i := sort.Search(len(r.readings), func(i int) bool { return !r.readings[i].Time.Before(rd.Time) })
	for j := i; j < len(r.readings) && r.readings[j].Time.Equal(rd.Time); j++ {
		if r.readings[j].Equal(rd) {
			return false
		}
		i = j + 1
	}
	r.readings = append(r.readings, domain.Reading{})
	copy(r.readings[i+1:], r.readings[i:])
	r.readings[i] = rd
	return true
}

func (r *Repo) List(ctx context.Context, startInclusive *time.Time, endExclusive *time.Time) ([]domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	readings := r.readings
	if startInclusive != nil {
		start := *startInclusive
		i := sort.Search(len(readings), func(i int) bool { return !readings[i].Time.Before(start) })
		readings = readings[i:]
	}
	if endExclusive != nil {
		end := *endExclusive
		j := sort.Search(len(readings), func(i int) bool { return !readings[i].Time.Before(end) })
		readings = readings[:j]
	}

	out := append([]domain.Reading(nil), readings...)
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readings), nil
}
