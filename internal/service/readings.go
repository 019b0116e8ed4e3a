package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/spending"
)

var ErrInvalidPagination = errors.New("invalid pagination")

const (
	DefaultPageSize = 500
	MaxPageSize     = 5_000
)

type ReadingsPage struct {
	Readings      []domain.Reading
	NextPageToken string
}

// ListReadings returns stored readings in [start, end) one page at a time.
// The page token is the offset of the first reading of the next page.
func (s *SpendingService) ListReadings(
	ctx context.Context,
	startInclusive *time.Time,
	endExclusive *time.Time,
	pageSize int,
	pageToken string,
) (page ReadingsPage, err error) {
	defer s.track(ctx, "readings", time.Now(), &err)

	if startInclusive != nil && endExclusive != nil && !startInclusive.Before(*endExclusive) {
		return ReadingsPage{}, fmt.Errorf("%w: start must be before end", spending.ErrInvalidRange)
	}
	switch {
	case pageSize < 0:
		return ReadingsPage{}, fmt.Errorf("%w: page_size must be >= 0", ErrInvalidPagination)
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		return ReadingsPage{}, fmt.Errorf("%w: page_size too large (max %d)", ErrInvalidPagination, MaxPageSize)
	}
	offset := 0
	if pageToken != "" {
		offset, err = strconv.Atoi(pageToken)
		if err != nil || offset < 0 {
			return ReadingsPage{}, fmt.Errorf("%w: invalid page_token", ErrInvalidPagination)
		}
	}

	readings, err := s.repo.List(ctx, startInclusive, endExclusive)
	if err != nil {
		return ReadingsPage{}, fmt.Errorf("list readings: %w", err)
	}
	if offset > len(readings) {
		return ReadingsPage{}, fmt.Errorf("%w: page_token out of range", ErrInvalidPagination)
	}

	end := min(offset+pageSize, len(readings))
	page = ReadingsPage{Readings: readings[offset:end]}
	if end < len(readings) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}
