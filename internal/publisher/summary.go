package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/report"
	"github.com/milad/energyusage/internal/service"
)

// SummarySource answers the queries a summary is built from.
type SummarySource interface {
	AllSpending(ctx context.Context) (domain.Spending, error)
	Averages(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error)
}

// BuildSummary collects the all-time spending and the whole-history averages
// for each named period.
func BuildSummary(ctx context.Context, src SummarySource, periods []string, now time.Time) (report.Summary, error) {
	total, err := src.AllSpending(ctx)
	if err != nil {
		return report.Summary{}, fmt.Errorf("all-time spending: %w", err)
	}

	s := report.Summary{
		GeneratedAt: report.FormatInstant(now),
		Total:       report.NewSpendingView(total),
		Periods:     make(map[string][]report.SpendingView, len(periods)),
	}
	for _, name := range periods {
		period, err := service.ParsePeriod(name)
		if err != nil {
			return report.Summary{}, err
		}
		list, err := src.Averages(ctx, service.PeriodQuery{Period: period})
		if err != nil {
			return report.Summary{}, fmt.Errorf("%s averages: %w", name, err)
		}
		s.Periods[name] = report.NewSpendingViews(list)
	}
	return s, nil
}
