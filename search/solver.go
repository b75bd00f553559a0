package search

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/valveflow/distance"
)

// Solver runs the valve search over a fixed compact valve set.
// A Solver is read-only after NewSolver and safe for concurrent Run calls;
// every run owns its own frontier.
type Solver struct {
	valves []Valve
	opts   Options
}

// NewSolver validates valves and options and returns a ready Solver.
// Distances are copied, so later changes to the caller's slices do not
// affect the Solver.
//
// Errors:
//   - ErrNoValves, ErrNegativeFlowRate, ErrDimensionMismatch.
//   - ErrScoreOverflow when rates × budget could exceed the int range.
//   - distance.ErrNonZeroDiagonal / distance.ErrNegativeDistance for bad rows.
//   - ErrOptionViolation for invalid options.
func NewSolver(valves []Valve, opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := len(valves)
	if n == 0 {
		return nil, ErrNoValves
	}
	rows := make([][]int, n)
	own := make([]Valve, n)
	ceiling := 0 // upper bound on any score: Σ rate × budget
	for i, v := range valves {
		if v.FlowRate < 0 {
			return nil, fmt.Errorf("%w: valve %d has rate %d", ErrNegativeFlowRate, i, v.FlowRate)
		}
		if v.FlowRate > 0 && o.TimeBudget > 0 {
			if v.FlowRate > (math.MaxInt-ceiling)/o.TimeBudget {
				return nil, fmt.Errorf("%w: valve %d rate %d with budget %d", ErrScoreOverflow, i, v.FlowRate, o.TimeBudget)
			}
			ceiling += v.FlowRate * o.TimeBudget
		}
		if len(v.Distances) != n {
			return nil, fmt.Errorf("%w: valve %d has %d distances, want %d", ErrDimensionMismatch, i, len(v.Distances), n)
		}
		rows[i] = make([]int, n)
		copy(rows[i], v.Distances)
		own[i] = Valve{FlowRate: v.FlowRate, Distances: rows[i]}
	}
	if err := distance.Validate(rows); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return &Solver{valves: own, opts: o}, nil
}

// TimeBudget returns the configured number of minutes.
func (s *Solver) TimeBudget() int { return s.opts.TimeBudget }

// Solve returns the maximum score reachable from valve start.
func (s *Solver) Solve(start int) (int, error) {
	res, err := s.Run(start)
	if err != nil {
		return 0, err
	}

	return res.Score, nil
}

// InitialState returns the root of the search from start: nothing
// elapsed, no score, zero-rate valves pre-opened.
func (s *Solver) InitialState(start int) (State, error) {
	if start < 0 || start >= len(s.valves) {
		return State{}, fmt.Errorf("%w: %d (valves: %d)", ErrStartOutOfRange, start, len(s.valves))
	}

	return State{
		Worker: Worker{Position: start},
		Opened: NewOpenSet(s.valves),
	}, nil
}

// Run explores every legal sequence of valve openings from start and
// returns the best score with its path and search statistics.
//
// Errors:
//   - ErrStartOutOfRange for a bad start.
//   - ctx.Err() when the configured context is cancelled mid-search.
func (s *Solver) Run(start int) (Result, error) {
	root, err := s.InitialState(start)
	if err != nil {
		return Result{}, err
	}

	began := time.Now()
	var (
		best  State
		stats Stats
	)
	if s.opts.Parallelism > 1 {
		best, stats, err = s.runParallel(root)
	} else {
		e := newEngine(s.opts.Ctx, s.valves, s.opts.TimeBudget, s.opts.Memoize)
		best, err = e.explore(root)
		stats = e.stats
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Score:   best.Worker.Score,
		Path:    best.Path(),
		Elapsed: best.Worker.Elapsed,
		Stats:   stats,
	}
	s.opts.Logger.Debug("search finished",
		slog.Int("start", start),
		slog.Int("time_budget", s.opts.TimeBudget),
		slog.Int("score", res.Score),
		slog.Int("expanded", stats.Expanded),
		slog.Int("generated", stats.Generated),
		slog.Int("pruned", stats.Pruned),
		slog.Int("peak_frontier", stats.PeakFrontier),
		slog.Int("parallelism", s.opts.Parallelism),
		slog.Bool("memoize", s.opts.Memoize),
		slog.Duration("took", time.Since(began)),
	)

	return res, nil
}

// shard is the outcome of exploring one child of the root.
type shard struct {
	best  State
	stats Stats
}

// runParallel expands the root once, then drains each child's subtree in
// its own goroutine and reduces the shard bests by max. Ties resolve to
// the lowest shard, so repeated runs report the same path.
func (s *Solver) runParallel(root State) (State, Stats, error) {
	rootEngine := newEngine(s.opts.Ctx, s.valves, s.opts.TimeBudget, false)
	if err := rootEngine.cancelled(); err != nil {
		return root, Stats{}, err
	}
	children, err := rootEngine.expand(root, nil)
	if err != nil {
		return root, Stats{}, err
	}
	stats := rootEngine.stats
	stats.Expanded++

	// Children waiting for a goroutine still sit on the frontier.
	gauge := &frontierGauge{}
	gauge.add(len(children))

	shards := make([]shard, len(children))
	g, gctx := errgroup.WithContext(s.opts.Ctx)
	g.SetLimit(s.opts.Parallelism)
	for i, child := range children {
		i, child := i, child
		g.Go(func() error {
			e := newEngine(gctx, s.valves, s.opts.TimeBudget, s.opts.Memoize)
			e.gauge = gauge
			best, err := e.explore(child)
			if err != nil {
				return err
			}
			shards[i] = shard{best: best, stats: e.stats}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return root, Stats{}, err
	}

	best := root
	var work Stats
	for _, sh := range shards {
		if sh.best.Worker.Score > best.Worker.Score {
			best = sh.best
		}
		work.merge(sh.stats)
	}
	stats.Expanded += work.Expanded
	stats.Generated += work.Generated
	stats.Pruned += work.Pruned
	stats.PeakFrontier = gauge.Peak()

	return best, stats, nil
}

// Options returns a copy of the solver configuration.
func (s *Solver) Options() Options {
	o := s.opts
	o.err = nil

	return o
}

// Valves returns a deep copy of the compact valve set.
func (s *Solver) Valves() []Valve {
	out := make([]Valve, len(s.valves))
	for i, v := range s.valves {
		d := make([]int, len(v.Distances))
		copy(d, v.Distances)
		out[i] = Valve{FlowRate: v.FlowRate, Distances: d}
	}

	return out
}
