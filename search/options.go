package search

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultTimeBudget is the number of minutes available when no
// WithTimeBudget option is given.
const DefaultTimeBudget = 30

// Option configures a Solver via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by NewSolver.
type Option func(*Options)

// Options holds the Solver configuration.
type Options struct {
	// Ctx cancels a running search; checked every 4096 expanded states.
	Ctx context.Context

	// Logger receives a debug summary of every run.
	Logger *slog.Logger

	// TimeBudget is the total number of minutes.
	TimeBudget int

	// Parallelism > 1 shards the children of the initial state across
	// that many goroutines. 1 runs sequentially.
	Parallelism int

	// Memoize enables dominance pruning: a state is dropped when another
	// state with the same position, open set and elapsed time already
	// reached at least its score. The optimum is unchanged.
	Memoize bool

	err error
}

// DefaultOptions returns a sequential, exhaustive configuration with a
// DefaultTimeBudget budget.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		Logger:      slog.Default(),
		TimeBudget:  DefaultTimeBudget,
		Parallelism: 1,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTimeBudget sets the number of minutes. Zero is valid and always
// scores 0; negative values are rejected.
func WithTimeBudget(minutes int) Option {
	return func(o *Options) {
		if minutes < 0 {
			o.err = fmt.Errorf("%w: time budget cannot be negative (%d)", ErrOptionViolation, minutes)
			return
		}
		o.TimeBudget = minutes
	}
}

// WithParallelism sets the number of concurrent shards.
//
//	n > 1: parallel
//	n == 0 or 1: sequential
//	n < 0: ErrOptionViolation
func WithParallelism(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: parallelism cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Parallelism = 1
		default:
			o.Parallelism = n
		}
	}
}

// WithMemoization turns on dominance pruning.
func WithMemoization() Option {
	return func(o *Options) { o.Memoize = true }
}
