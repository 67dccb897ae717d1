package warmup

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sternrassler/placeholder-proxy/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs a Warmer on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	warmer  *Warmer
	tasks   []Task
	logger  zerolog.Logger
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that runs tasks on spec
// (standard five-field cron syntax or descriptors such as "@every 30m").
func NewScheduler(spec string, warmer *Warmer, tasks []Task, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		warmer: warmer,
		tasks:  tasks,
		logger: logger.With().Str("component", "warmup-scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid warm-up schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start starts the cron loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Warn().Msg("Scheduler is already running")
		return
	}
	s.logger.Info().Msg("Starting warm-up scheduler")
	s.cron.Start()
	s.running = true
}

// Stop stops the cron loop and waits for a running warm-up to finish
// or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.logger.Info().Msg("Stopping warm-up scheduler")
	s.running = false

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow performs one warm-up synchronously.
func (s *Scheduler) RunNow(ctx context.Context) (map[string]Result, error) {
	results, err := s.warmer.Run(ctx, s.tasks)
	metrics.ObserveWarmup(err)
	return results, err
}

func (s *Scheduler) runOnce() {
	_, err := s.warmer.Run(context.Background(), s.tasks)
	metrics.ObserveWarmup(err)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled warm-up finished with errors")
	}
}
