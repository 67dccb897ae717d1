// Package warmup pre-populates the upstream cache in the background.
//
// A Warmer runs a set of loader tasks on a bounded worker pool; the
// Scheduler triggers it on a cron schedule so list endpoints are usually
// answered from cache.
//
// Example usage:
//
//	warmer := warmup.NewWarmer(warmup.DefaultConfig())
//	results, err := warmer.Run(ctx, warmup.ResourceTasks(api))
//
// The warmer:
//   - Queues every task and spawns the worker pool (default 4 workers)
//   - Bounds each task with its own timeout
//   - Collects one Result per task, failed ones included
//   - Returns the joined task errors after all tasks finished
package warmup
