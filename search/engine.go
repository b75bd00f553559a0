package search

import (
	"context"
	"fmt"
	"sync/atomic"
)

// memoKey identifies states whose futures are identical.
type memoKey struct {
	position int
	elapsed  int
	opened   string
}

// engine holds the search data and policies for one frontier.
// Parallel runs create one engine per shard; nothing is shared.
type engine struct {
	valves []Valve
	budget int
	ctx    context.Context

	memo  map[memoKey]int // nil unless memoization is on
	steps int             // sparse cancellation checks counter
	gauge *frontierGauge  // shared live count in parallel runs, else nil

	stats Stats
}

func newEngine(ctx context.Context, valves []Valve, budget int, memoize bool) *engine {
	e := &engine{valves: valves, budget: budget, ctx: ctx}
	if memoize {
		e.memo = make(map[memoKey]int)
	}

	return e
}

// frontierGauge tracks the number of unexpanded states alive across
// concurrently running shards and the highest value it reached.
type frontierGauge struct {
	live atomic.Int64
	peak atomic.Int64
}

// add applies delta to the live count and raises peak when exceeded.
func (g *frontierGauge) add(delta int) {
	cur := g.live.Add(int64(delta))
	for {
		p := g.peak.Load()
		if cur <= p || g.peak.CompareAndSwap(p, cur) {
			return
		}
	}
}

// Peak returns the highest live count observed.
func (g *frontierGauge) Peak() int { return int(g.peak.Load()) }

// cancelled performs a rare context test (every 4096 expansions).
func (e *engine) cancelled() error {
	check := e.steps&4095 == 0
	e.steps++
	if !check {
		return nil
	}

	return e.ctx.Err()
}

// expand appends to frontier one child per closed valve that can be
// reached and opened before the budget runs out.
func (e *engine) expand(cur State, frontier []State) ([]State, error) {
	var (
		v, cost int
		w       Worker
		err     error
		row     = e.valves[cur.Worker.Position].Distances
	)
	for v = range e.valves {
		if cur.Opened.IsOpen(v) {
			continue
		}
		// row[v] may be arbitrarily large; compare before adding the minute.
		if row[v] >= e.budget-cur.Worker.Elapsed-1 {
			continue
		}
		cost = 1 + row[v]
		w, err = cur.Worker.MoveTo(cost, v, e.valves[v].FlowRate, e.budget)
		if err != nil {
			return frontier, fmt.Errorf("search: expand valve %d: %w", v, err)
		}
		child := State{
			Worker: w,
			Opened: cur.Opened.With(v),
			trail:  &trail{valve: v, prev: cur.trail},
		}
		if e.dominated(child) {
			e.stats.Pruned++
			continue
		}
		frontier = append(frontier, child)
		e.stats.Generated++
	}

	return frontier, nil
}

// dominated reports whether an equivalent state already scored at least
// as much, recording child otherwise. Always false without memoization.
func (e *engine) dominated(child State) bool {
	if e.memo == nil {
		return false
	}
	k := memoKey{position: child.Worker.Position, elapsed: child.Worker.Elapsed, opened: child.Opened.Key()}
	if best, seen := e.memo[k]; seen && best >= child.Worker.Score {
		return true
	}
	e.memo[k] = child.Worker.Score

	return false
}

// explore drains a depth-first frontier seeded with seed and returns the
// highest-scoring state popped. Every popped state competes, not only
// leaves, since stopping early is always allowed. Ties keep the first.
func (e *engine) explore(seed State) (State, error) {
	var (
		best     = seed
		frontier = []State{seed}
		cur      State
		err      error
		reported = 1 // the seed is already counted by the gauge owner
	)
	if e.gauge != nil {
		defer func() { e.gauge.add(-reported) }()
	}
	for len(frontier) > 0 {
		if err = e.cancelled(); err != nil {
			return best, err
		}
		cur = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		e.stats.Expanded++

		if frontier, err = e.expand(cur, frontier); err != nil {
			return best, err
		}
		if len(frontier) > e.stats.PeakFrontier {
			e.stats.PeakFrontier = len(frontier)
		}
		if e.gauge != nil {
			e.gauge.add(len(frontier) - reported)
			reported = len(frontier)
		}
		if cur.Worker.Score > best.Worker.Score {
			best = cur
		}
	}

	return best, nil
}
