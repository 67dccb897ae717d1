package warmup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/logging"
	"github.com/rs/zerolog"
)

// Config holds warmer configuration.
type Config struct {
	// MaxConcurrency is the maximum number of parallel tasks
	MaxConcurrency int
	// Timeout per task
	Timeout time.Duration
}

// DefaultConfig returns the default warmer configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 4,
		Timeout:        30 * time.Second,
	}
}

// Task is one named loader.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one task.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Warmer runs tasks on a bounded worker pool.
type Warmer struct {
	config Config
	logger zerolog.Logger
}

// NewWarmer creates a new warmer.
func NewWarmer(config Config) *Warmer {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Warmer{config: config, logger: logging.NewLogger("warmup")}
}

// Run executes all tasks and returns their results keyed by task name.
// The error joins every task failure; results are complete either way.
func (w *Warmer) Run(ctx context.Context, tasks []Task) (map[string]Result, error) {
	start := time.Now()
	results := make(map[string]Result, len(tasks))
	if len(tasks) == 0 {
		return results, nil
	}

	queue := make(chan Task, len(tasks))
	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	out := make(chan Result, len(tasks))

	workers := min(w.config.MaxConcurrency, len(tasks))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go w.worker(ctx, queue, out, &wg, i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var errs []error
	for result := range out {
		results[result.Name] = result
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Name, result.Err))
		}
	}

	w.logger.Info().
		Int("tasks", len(tasks)).
		Int("failed", len(errs)).
		Dur("duration", time.Since(start)).
		Msg("Cache warm-up complete")

	return results, errors.Join(errs...)
}

// worker processes tasks from the queue
func (w *Warmer) worker(ctx context.Context, queue <-chan Task, out chan<- Result, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for task := range queue {
		if err := ctx.Err(); err != nil {
			out <- Result{Name: task.Name, Err: err}
			continue
		}

		taskCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
		started := time.Now()
		err := task.Run(taskCtx)
		cancel()

		if err != nil {
			w.logger.Warn().
				Err(err).
				Int("worker_id", workerID).
				Str("task", task.Name).
				Msg("Warm-up task failed")
		}

		out <- Result{Name: task.Name, Err: err, Duration: time.Since(started)}
		processed++
	}

	if processed > 0 {
		w.logger.Debug().
			Int("worker_id", workerID).
			Int("tasks_processed", processed).
			Msg("Worker completed")
	}
}
