package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/milad/energyusage/internal/domain"
)

func TestFormatInstant(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2024, time.May, 1, 2, 30, 15, 999, loc)
	if got, want := FormatInstant(in), "2024-04-30 23:30:15"; got != want {
		t.Fatalf("FormatInstant=%q want %q", got, want)
	}
}

func TestFormatUsage(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"0", "0.00"},
		{"2.5", "2.50"},
		{"3.214285", "3.21"},
		{"1.005", "1.01"},
		{"29.999999999999964", "30.00"},
	}
	for _, tt := range tests {
		if got := FormatUsage(domain.MustDecimal(tt.in)); got != tt.want {
			t.Fatalf("FormatUsage(%s)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpendingViewJSON(t *testing.T) {
	t.Parallel()

	v := NewSpendingView(domain.Spending{
		Start: time.Date(1970, time.January, 2, 6, 0, 0, 0, time.UTC),
		End:   time.Date(1970, time.January, 2, 12, 0, 0, 0, time.UTC),
		Usage: domain.MustDecimal("2.5"),
	})
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"startDate":"1970-01-02 06:00:00","endDate":"1970-01-02 12:00:00","usage":"2.50"}`
	if got := string(b); got != want {
		t.Fatalf("json=%s want %s", got, want)
	}
}

func TestNewSpendingViews(t *testing.T) {
	t.Parallel()

	if got := NewSpendingViews(nil); got == nil || len(got) != 0 {
		t.Fatalf("NewSpendingViews(nil)=%v want empty non-nil", got)
	}
}
