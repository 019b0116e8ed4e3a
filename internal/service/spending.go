package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/logger"
	"github.com/milad/energyusage/internal/repo"
	"github.com/milad/energyusage/internal/spending"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Period selects how a history is split for averages and totals.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodGap     Period = "gap"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodGap:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// PeriodQuery describes an averages or totals request. Nil bounds default to
// the edges of the recorded history.
type PeriodQuery struct {
	Period  Period
	GapDays int // PeriodGap only
	Start   *time.Time
	End     *time.Time
}

type Option func(*SpendingService)

func WithLogger(l *zap.Logger) Option {
	return func(s *SpendingService) { s.log = l }
}

// WithClock replaces time.Now for open-ended fallbacks.
func WithClock(now func() time.Time) Option {
	return func(s *SpendingService) { s.now = now }
}

// SpendingService answers spending queries over the readings held by a repository.
type SpendingService struct {
	repo repo.ReadingRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewSpendingService(r repo.ReadingRepository, opts ...Option) *SpendingService {
	s := &SpendingService{repo: r, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store loads every reading and derives an interval store from them.
func (s *SpendingService) Store(ctx context.Context) (*spending.Store, error) {
	readings, err := s.repo.List(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	st, err := spending.FromReadings(readings)
	if err != nil {
		return nil, fmt.Errorf("build intervals: %w", err)
	}
	return st, nil
}

// Spending dispatches on which bounds are set: none, start only, end only or both.
func (s *SpendingService) Spending(ctx context.Context, start, end *time.Time) (domain.Spending, error) {
	switch {
	case start == nil && end == nil:
		return s.AllSpending(ctx)
	case end == nil:
		return s.SpendingFrom(ctx, *start)
	case start == nil:
		return s.SpendingUntil(ctx, *end)
	default:
		return s.SpendingBetween(ctx, *start, *end)
	}
}

// AllSpending covers the whole recorded history. With no data it reports zero
// usage from the Unix epoch to now.
func (s *SpendingService) AllSpending(ctx context.Context) (res domain.Spending, err error) {
	defer s.track(ctx, "all", time.Now(), &err)

	st, err := s.Store(ctx)
	if err != nil {
		return domain.Spending{}, err
	}
	w, ok := st.Bounds()
	if !ok {
		s.fallback(ctx, "all")
		return domain.Spending{Start: time.Unix(0, 0).UTC(), End: s.now().UTC()}, nil
	}
	return spending.Between(st, w.Start, w.End)
}

// SpendingFrom covers start to the end of the recorded history.
func (s *SpendingService) SpendingFrom(ctx context.Context, start time.Time) (res domain.Spending, err error) {
	defer s.track(ctx, "from", time.Now(), &err)

	st, err := s.Store(ctx)
	if err != nil {
		return domain.Spending{}, err
	}
	start = start.UTC()
	w, ok := st.Bounds()
	if !ok {
		s.fallback(ctx, "from")
		return domain.Spending{Start: start, End: s.now().UTC()}, nil
	}
	if start.After(w.End) {
		return domain.Spending{Start: start, End: w.End}, nil
	}
	return spending.Between(st, start, w.End)
}

// SpendingUntil covers the start of the recorded history to end.
func (s *SpendingService) SpendingUntil(ctx context.Context, end time.Time) (res domain.Spending, err error) {
	defer s.track(ctx, "until", time.Now(), &err)

	st, err := s.Store(ctx)
	if err != nil {
		return domain.Spending{}, err
	}
	end = end.UTC()
	w, ok := st.Bounds()
	if !ok {
		s.fallback(ctx, "until")
		return domain.Spending{Start: time.Unix(0, 0).UTC(), End: end}, nil
	}
	if end.Before(w.Start) {
		return domain.Spending{Start: w.Start, End: end}, nil
	}
	return spending.Between(st, w.Start, end)
}

func (s *SpendingService) SpendingBetween(ctx context.Context, start, end time.Time) (res domain.Spending, err error) {
	defer s.track(ctx, "between", time.Now(), &err)

	st, err := s.Store(ctx)
	if err != nil {
		return domain.Spending{}, err
	}
	return spending.Between(st, start, end)
}

// Averages returns per-day averages for each period of the query window.
func (s *SpendingService) Averages(ctx context.Context, q PeriodQuery) (res []domain.Spending, err error) {
	defer s.track(ctx, "average_"+string(q.Period), time.Now(), &err)

	var calc func(spending.IntervalSource, time.Time, time.Time) ([]domain.Spending, error)
	switch q.Period {
	case PeriodDaily:
		calc = spending.AverageDaily
	case PeriodWeekly:
		calc = spending.AverageWeekly
	case PeriodMonthly:
		calc = spending.AverageMonthly
	case PeriodGap:
		gap := q.GapDays
		calc = func(src spending.IntervalSource, start, end time.Time) ([]domain.Spending, error) {
			return spending.AverageOverGap(src, start, end, gap)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, q.Period)
	}
	return s.periods(ctx, q, calc)
}

// Totals returns the prorated total for each weekly or monthly period.
func (s *SpendingService) Totals(ctx context.Context, q PeriodQuery) (res []domain.Spending, err error) {
	defer s.track(ctx, "total_"+string(q.Period), time.Now(), &err)

	var calc func(spending.IntervalSource, time.Time, time.Time) ([]domain.Spending, error)
	switch q.Period {
	case PeriodWeekly:
		calc = spending.TotalWeekly
	case PeriodMonthly:
		calc = spending.TotalMonthly
	default:
		return nil, fmt.Errorf("%w: totals support weekly and monthly, got %q", ErrInvalidPeriod, q.Period)
	}
	return s.periods(ctx, q, calc)
}

func (s *SpendingService) AverageOverGap(ctx context.Context, gapDays int) ([]domain.Spending, error) {
	return s.Averages(ctx, PeriodQuery{Period: PeriodGap, GapDays: gapDays})
}

func (s *SpendingService) AverageDaily(ctx context.Context) ([]domain.Spending, error) {
	return s.Averages(ctx, PeriodQuery{Period: PeriodDaily})
}

func (s *SpendingService) AverageWeekly(ctx context.Context) ([]domain.Spending, error) {
	return s.Averages(ctx, PeriodQuery{Period: PeriodWeekly})
}

func (s *SpendingService) AverageMonthly(ctx context.Context) ([]domain.Spending, error) {
	return s.Averages(ctx, PeriodQuery{Period: PeriodMonthly})
}

func (s *SpendingService) TotalWeekly(ctx context.Context) ([]domain.Spending, error) {
	return s.Totals(ctx, PeriodQuery{Period: PeriodWeekly})
}

func (s *SpendingService) TotalMonthly(ctx context.Context) ([]domain.Spending, error) {
	return s.Totals(ctx, PeriodQuery{Period: PeriodMonthly})
}

func (s *SpendingService) periods(
	ctx context.Context,
	q PeriodQuery,
	calc func(spending.IntervalSource, time.Time, time.Time) ([]domain.Spending, error),
) ([]domain.Spending, error) {
	st, err := s.Store(ctx)
	if err != nil {
		return nil, err
	}
	if q.Start != nil && q.End != nil {
		return calc(st, *q.Start, *q.End)
	}

	w, ok := st.Bounds()
	if !ok {
		s.fallback(ctx, string(q.Period))
		return nil, nil
	}
	if q.Start != nil {
		w.Start = *q.Start
	}
	if q.End != nil {
		w.End = *q.End
	}
	return calc(st, w.Start, w.End)
}

func (s *SpendingService) track(ctx context.Context, query string, began time.Time, errp *error) {
	dur := time.Since(began)
	observeQuery(query, *errp, dur)

	log := logger.FromContext(ctx, s.log)
	if *errp != nil {
		log.Debug("spending query failed", zap.String("query", query), zap.Error(*errp))
		return
	}
	log.Debug("spending query", zap.String("query", query), zap.Duration("took", dur))
}

func (s *SpendingService) fallback(ctx context.Context, query string) {
	fallbacksTotal.WithLabelValues(query).Inc()
	logger.FromContext(ctx, s.log).Warn("no readings recorded, answering with default window",
		zap.String("query", query))
}
