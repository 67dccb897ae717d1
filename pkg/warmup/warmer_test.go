package warmup

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewWarmer_Defaults(t *testing.T) {
	w := NewWarmer(Config{})
	if w.config.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", w.config.MaxConcurrency)
	}
	if w.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", w.config.Timeout)
	}
}

func TestWarmer_RunAllTasks(t *testing.T) {
	var calls atomic.Int32
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{
			Name: string(rune('a' + i)),
			Run: func(ctx context.Context) error {
				calls.Add(1)
				return nil
			},
		}
	}

	results, err := NewWarmer(Config{MaxConcurrency: 3, Timeout: time.Second}).Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 10 {
		t.Errorf("len(results) = %d, want 10", len(results))
	}
	if calls.Load() != 10 {
		t.Errorf("calls = %d, want 10", calls.Load())
	}
}

func TestWarmer_BoundedConcurrency(t *testing.T) {
	var active, peak atomic.Int32
	tasks := make([]Task, 12)
	for i := range tasks {
		tasks[i] = Task{
			Name: string(rune('a' + i)),
			Run: func(ctx context.Context) error {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				active.Add(-1)
				return nil
			},
		}
	}

	if _, err := NewWarmer(Config{MaxConcurrency: 2, Timeout: time.Second}).Run(context.Background(), tasks); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestWarmer_CollectsFailures(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		{Name: "ok", Run: func(ctx context.Context) error { return nil }},
		{Name: "bad", Run: func(ctx context.Context) error { return boom }},
	}

	results, err := NewWarmer(DefaultConfig()).Run(context.Background(), tasks)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "bad:") {
		t.Errorf("error %q should name the failed task", err)
	}
	if results["ok"].Err != nil {
		t.Errorf("ok task error = %v", results["ok"].Err)
	}
	if !errors.Is(results["bad"].Err, boom) {
		t.Errorf("bad task error = %v", results["bad"].Err)
	}
}

func TestWarmer_TaskTimeout(t *testing.T) {
	tasks := []Task{{
		Name: "slow",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}}

	results, err := NewWarmer(Config{MaxConcurrency: 1, Timeout: 20 * time.Millisecond}).Run(context.Background(), tasks)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want deadline exceeded", err)
	}
	if !errors.Is(results["slow"].Err, context.DeadlineExceeded) {
		t.Errorf("slow task error = %v", results["slow"].Err)
	}
}

func TestWarmer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	tasks := []Task{
		{Name: "a", Run: func(ctx context.Context) error { calls.Add(1); return nil }},
		{Name: "b", Run: func(ctx context.Context) error { calls.Add(1); return nil }},
	}

	results, err := NewWarmer(DefaultConfig()).Run(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", calls.Load())
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
}

func TestWarmer_NoTasks(t *testing.T) {
	results, err := NewWarmer(DefaultConfig()).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("not a schedule", NewWarmer(DefaultConfig()), nil, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestScheduler_RunNowAndStop(t *testing.T) {
	var calls atomic.Int32
	tasks := []Task{{Name: "posts", Run: func(ctx context.Context) error { calls.Add(1); return nil }}}

	s, err := NewScheduler("@every 1h", NewWarmer(DefaultConfig()), tasks, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	s.Start()
	s.Start()

	if _, err := s.RunNow(context.Background()); err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}
