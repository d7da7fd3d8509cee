package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Func is one attempt. attempt starts at 1.
type Func func(ctx context.Context, attempt int) error

// ExhaustedError is returned when every attempt failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Runner calls a Func until it succeeds, waiting Schedule[i] after the
// (i+1)th failure. A schedule of n waits allows n+1 attempts.
type Runner struct {
	Schedule []time.Duration
	Logger   *slog.Logger
	// Sleep waits for d or until ctx is done. Defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run executes fn according to the schedule.
func (r *Runner) Run(ctx context.Context, fn Func) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = wait
	}

	attempts := len(r.Schedule) + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("retry_succeeded", "attempt", attempt)
			}
			return nil
		}

		if attempt == attempts {
			break
		}

		delay := r.Schedule[attempt-1]
		logger.Warn("retry_wait",
			"attempt", humanize.Ordinal(attempt),
			"remaining", attempts-attempt,
			"delay", delay.String(),
			"error", lastErr,
		)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	logger.Error("retry_exhausted", "attempts", attempts, "error", lastErr)
	return &ExhaustedError{Attempts: attempts, Err: lastErr}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
