package main

import (
	"bytes"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/repo/memrepo"
	"github.com/milad/energyusage/internal/report"
	"github.com/milad/energyusage/internal/service"
	grpcserver "github.com/milad/energyusage/internal/transport/grpc"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T06:30:00Z", time.Date(2024, time.March, 1, 6, 30, 0, 0, time.UTC)},
		{"2024-03-01T06:30:00.5+02:00", time.Date(2024, time.March, 1, 4, 30, 0, 500_000_000, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.in)
		if err != nil {
			t.Fatalf("parseTime(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parseTime(%q)=%s want %s", tt.in, got, tt.want)
		}
	}
	if _, err := parseTime("yesterday"); err == nil {
		t.Fatal("expected error")
	}
	if got, err := parseOptionalTime(""); err != nil || got != nil {
		t.Fatalf("parseOptionalTime(\"\")=%v, %v", got, err)
	}
}

// execute runs the CLI with fresh flag state and returns its stdout.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	readingAt, readingValue, readingsFrom, readingsTo = "", "", "", ""
	spendingFrom, spendingTo = "", ""
	averageFrom, averageTo, averageDays = "", "", 0
	totalFrom, totalTo = "", ""
	jsonOutput, serverAddr = false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	base := []string{"--config", filepath.Join(filepath.Dir(db), "missing.yaml"), "--db", db}
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "data", "readings.db")

	for i, v := range []string{"40", "30", "20", "10"} {
		at := time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if _, err := execute(t, db, "readings", "add", "--at", at, "--value", v); err != nil {
			t.Fatalf("readings add: %v", err)
		}
	}
	out, err := execute(t, db, "readings", "add", "--at", "2024-01-01", "--value", "40")
	if err != nil {
		t.Fatalf("readings add duplicate: %v", err)
	}
	if !strings.Contains(out, "already stored") {
		t.Fatalf("duplicate output=%q", out)
	}

	out, err = execute(t, db, "readings", "list")
	if err != nil {
		t.Fatalf("readings list: %v", err)
	}
	if !strings.Contains(out, "4 shown, 4 stored") {
		t.Fatalf("list output=%q", out)
	}

	out, err = execute(t, db, "--json", "spending", "--from", "2024-01-01T06:00:00Z", "--to", "2024-01-01T12:00:00Z")
	if err != nil {
		t.Fatalf("spending: %v", err)
	}
	var view report.SpendingView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got, want := view.Usage, "2.50"; got != want {
		t.Fatalf("usage=%s want %s", got, want)
	}

	out, err = execute(t, db, "--json", "average", "daily")
	if err != nil {
		t.Fatalf("average daily: %v", err)
	}
	var views []report.SpendingView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got, want := len(views), 3; got != want {
		t.Fatalf("len(daily)=%d want %d", got, want)
	}

	out, err = execute(t, db, "total", "monthly")
	if err != nil {
		t.Fatalf("total monthly: %v", err)
	}
	if !strings.Contains(out, "30.00") {
		t.Fatalf("total output=%q", out)
	}

	if _, err := execute(t, db, "average", "gap"); err == nil {
		t.Fatal("expected error for gap without --days")
	}
	if _, err := execute(t, db, "spending", "--from", "2024-01-03", "--to", "2024-01-02"); err == nil {
		t.Fatal("expected error for inverted window")
	}
}

func TestCLI_Remote(t *testing.T) {
	var readings []domain.Reading
	for i, v := range []string{"40", "30", "20", "10"} {
		readings = append(readings, domain.Reading{
			Time:  time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			Value: domain.MustDecimal(v),
		})
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := grpc.NewServer()
	grpcserver.RegisterSpendingServiceServer(s, grpcserver.New(service.NewSpendingService(memrepo.New(readings))))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	db := filepath.Join(t.TempDir(), "unused.db")
	addr := lis.Addr().String()

	out, err := execute(t, db, "--addr", addr, "--json", "spending", "--from", "2024-01-01T06:00:00Z", "--to", "2024-01-01T12:00:00Z")
	if err != nil {
		t.Fatalf("spending: %v", err)
	}
	var view report.SpendingView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got, want := view.Usage, "2.50"; got != want {
		t.Fatalf("usage=%s want %s", got, want)
	}

	out, err = execute(t, db, "--addr", addr, "total", "monthly")
	if err != nil {
		t.Fatalf("total monthly: %v", err)
	}
	if !strings.Contains(out, "30.00") {
		t.Fatalf("total output=%q", out)
	}

	if _, err := execute(t, db, "--addr", addr, "spending", "--from", "2024-01-03", "--to", "2024-01-02"); err == nil {
		t.Fatal("expected error for inverted window")
	}
}
