// Package report formats spending results for display and JSON output.
package report

import (
	"time"

	"github.com/milad/energyusage/internal/domain"
)

const instantLayout = "2006-01-02 15:04:05"

// FormatInstant renders t in UTC with second precision.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

// FormatUsage renders d rounded half-up to two decimals.
func FormatUsage(d domain.Decimal) string {
	return d.Round(2).String()
}

// SpendingView is the presentation shape of a spending result.
type SpendingView struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Usage     string `json:"usage"`
}

func NewSpendingView(s domain.Spending) SpendingView {
	return SpendingView{
		StartDate: FormatInstant(s.Start),
		EndDate:   FormatInstant(s.End),
		Usage:     FormatUsage(s.Usage),
	}
}

func NewSpendingViews(list []domain.Spending) []SpendingView {
	out := make([]SpendingView, 0, len(list))
	for _, s := range list {
		out = append(out, NewSpendingView(s))
	}
	return out
}

// Summary groups the results published for one run.
type Summary struct {
	GeneratedAt string                    `json:"generatedAt"`
	Total       SpendingView              `json:"total"`
	Periods     map[string][]SpendingView `json:"periods,omitempty"`
}
