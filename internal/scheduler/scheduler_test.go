package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func noop(context.Context) error { return nil }

func TestScheduler_EmptyScheduleIsNoop(t *testing.T) {
	t.Parallel()

	s := New("", noop, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("scheduler should not run without a schedule")
	}
	if s.NextRun() != nil {
		t.Fatal("NextRun should be nil")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	t.Parallel()

	if err := New("whenever", noop, nil).Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	s := New("0 6 * * *", noop, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("expected running")
	}
	next := s.NextRun()
	if next == nil {
		t.Fatal("expected next run")
	}
	if got, want := next.UTC().Hour(), 6; got != want {
		t.Fatalf("next run hour=%d want %d", got, want)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error on second Start")
	}

	s.Stop()
	if s.IsRunning() {
		t.Fatal("expected stopped")
	}
	s.Stop()
}

func TestScheduler_StopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := New("@every 1h", noop, nil)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler did not stop after cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_RunLogsFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	var calls atomic.Int32
	s := New("@every 1h", func(context.Context) error {
		calls.Add(1)
		return errors.New("broker down")
	}, zap.New(core))

	s.run(context.Background())
	if got, want := calls.Load(), int32(1); got != want {
		t.Fatalf("calls=%d want %d", got, want)
	}
	if got, want := logs.Len(), 1; got != want {
		t.Fatalf("error logs=%d want %d", got, want)
	}
}
