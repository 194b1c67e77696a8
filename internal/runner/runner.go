// Package runner drains the work queue one file at a time. Between two
// conversions it hands control to a Waiter, which may cancel the rest of the
// queue. A conversion that has started always runs to completion.
package runner

import (
	"context"

	"go.uber.org/zap"

	"convertts/internal/queue"
	"convertts/internal/tui"
	"convertts/internal/worker"
)

type Converter interface {
	Convert(ctx context.Context, path string) (worker.Result, error)
}

type Waiter interface {
	Wait(ctx context.Context, remaining int) (tui.Decision, error)
}

// Summary aggregates a run.
type Summary struct {
	Queued    int
	Processed int
	Converted int
	Skipped   int
	Failed    int

	// Cancelled is set when the user dropped the rest of the queue;
	// Interrupted when the context ended the run.
	Cancelled   bool
	Interrupted bool
	Dropped     int

	BytesIn  int64
	BytesOut int64

	Results []worker.Result
}

// SpaceSaved is the byte difference over converted files. Positive means
// the outputs are smaller.
func (s Summary) SpaceSaved() int64 {
	return s.BytesIn - s.BytesOut
}

func (s *Summary) add(res worker.Result) {
	s.Processed++
	s.Results = append(s.Results, res)
	switch res.Outcome {
	case worker.Converted:
		s.Converted++
		s.BytesIn += res.OriginalSize
		s.BytesOut += res.NewSize
	case worker.Skipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

type Runner struct {
	worker Converter
	waiter Waiter
	logger *zap.Logger
}

func New(w Converter, waiter Waiter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{worker: w, waiter: waiter, logger: logger}
}

// Run processes q until it is empty, cancelled, or ctx ends. The returned
// error comes from the worker and means the run could not go on.
func (r *Runner) Run(ctx context.Context, q *queue.Queue) (Summary, error) {
	summary := Summary{Queued: q.Len()}

	for {
		if ctx.Err() != nil {
			summary.Interrupted = true
			summary.Dropped = q.Clear()
			r.logger.Warn("run interrupted", zap.Int("dropped", summary.Dropped))
			return summary, nil
		}

		path, ok := q.Pop()
		if !ok {
			return summary, nil
		}

		res, err := r.worker.Convert(ctx, path)
		summary.add(res)
		if err != nil {
			return summary, err
		}

		if q.Len() == 0 {
			return summary, nil
		}

		decision, err := r.waiter.Wait(ctx, q.Len())
		if err != nil {
			if ctx.Err() == nil {
				r.logger.Warn("prompt failed, continuing", zap.Error(err))
			}
			continue
		}
		if decision == tui.Cancel {
			summary.Cancelled = true
			summary.Dropped = q.Clear()
			r.logger.Info("remaining work cancelled", zap.Int("dropped", summary.Dropped))
			return summary, nil
		}
	}
}
