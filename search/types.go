package search

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the search engine.
var (
	// ErrNoValves is returned when the valve list is empty.
	ErrNoValves = errors.New("search: no valves")

	// ErrDimensionMismatch is returned when a valve's distance row does not
	// have one entry per valve.
	ErrDimensionMismatch = errors.New("search: distance row length mismatch")

	// ErrNegativeFlowRate is returned for a valve with a rate below zero.
	ErrNegativeFlowRate = errors.New("search: negative flow rate")

	// ErrStartOutOfRange is returned when the start index is not a valve.
	ErrStartOutOfRange = errors.New("search: start index out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrScoreOverflow is returned when rate × budget summed over all
	// valves does not fit in an int.
	ErrScoreOverflow = errors.New("search: score may overflow int")

	// ErrIllegalMove is returned by Worker.MoveTo when the move would reach
	// or pass the time budget. The engine checks CanMove first, so seeing
	// this from Run means a programming error.
	ErrIllegalMove = errors.New("search: move exceeds time budget")
)

// Valve is one entry of the compact valve set. Its identity is its index
// in the slice handed to NewSolver; Distances is indexed the same way.
type Valve struct {
	// FlowRate is the reward per remaining minute once opened.
	FlowRate int

	// Distances[j] is the tunnel count from this valve to valve j.
	Distances []int
}

// Worker is an immutable snapshot of the agent: elapsed minutes, current
// valve, accumulated score. Moves return a new Worker.
type Worker struct {
	Elapsed  int
	Position int
	Score    int
}

// CanMove reports whether a move costing cost minutes finishes strictly
// before budget. The last minute is never usable: a valve opened then
// would release nothing. Negative costs are illegal, and the comparison
// cannot overflow for any cost.
func (w Worker) CanMove(cost, budget int) bool {
	return cost >= 0 && cost < budget-w.Elapsed
}

// MoveTo walks to valve and opens it. cost must already include the minute
// spent opening (distance + 1). The opened valve releases flowRate for
// every minute left after the move.
func (w Worker) MoveTo(cost, valve, flowRate, budget int) (Worker, error) {
	if !w.CanMove(cost, budget) {
		return w, fmt.Errorf("%w: elapsed %d + cost %d >= budget %d", ErrIllegalMove, w.Elapsed, cost, budget)
	}
	elapsed := w.Elapsed + cost

	return Worker{
		Elapsed:  elapsed,
		Position: valve,
		Score:    w.Score + flowRate*(budget-elapsed),
	}, nil
}

// OpenSet marks, per valve index, whether the valve is already open.
// Bits only ever flip false→true; With returns a fresh copy.
type OpenSet []bool

// NewOpenSet returns the initial set for valves: every zero-rate valve is
// pre-marked open so it is never chosen as a target.
func NewOpenSet(valves []Valve) OpenSet {
	s := make(OpenSet, len(valves))
	for i, v := range valves {
		s[i] = v.FlowRate == 0
	}

	return s
}

// IsOpen reports whether valve i is open.
func (s OpenSet) IsOpen(i int) bool { return s[i] }

// With returns a copy of s with valve i opened.
func (s OpenSet) With(i int) OpenSet {
	out := make(OpenSet, len(s))
	copy(out, s)
	out[i] = true

	return out
}

// Closed returns the number of valves still closed.
func (s OpenSet) Closed() int {
	n := 0
	for _, open := range s {
		if !open {
			n++
		}
	}

	return n
}

// Key packs the set into a compact string, eight valves per byte.
func (s OpenSet) Key() string {
	var b strings.Builder
	b.Grow((len(s) + 7) / 8)
	var cur byte
	for i, open := range s {
		if open {
			cur |= 1 << (i % 8)
		}
		if i%8 == 7 {
			b.WriteByte(cur)
			cur = 0
		}
	}
	if len(s)%8 != 0 {
		b.WriteByte(cur)
	}

	return b.String()
}

// trail is a persistent list of opened valves, newest first. Children
// share their parent's tail, so recording the path costs one node per state.
type trail struct {
	valve int
	prev  *trail
}

func (t *trail) path() []int {
	var out []int
	for cur := t; cur != nil; cur = cur.prev {
		out = append(out, cur.valve)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// State is one node of the search tree. It is created by expansion and
// never mutated afterwards.
type State struct {
	Worker Worker
	Opened OpenSet

	trail *trail
}

// Path returns the valves opened to reach this state, in order.
func (s State) Path() []int { return s.trail.path() }

// Stats counts search work. PeakFrontier is the largest number of
// unexpanded states alive at once, across all shards when parallel.
type Stats struct {
	Expanded     int
	Generated    int
	Pruned       int
	PeakFrontier int
}

func (s *Stats) merge(o Stats) {
	s.Expanded += o.Expanded
	s.Generated += o.Generated
	s.Pruned += o.Pruned
}

// Result is the outcome of Solver.Run.
type Result struct {
	// Score is the best score seen on any state.
	Score int

	// Path lists the valves opened by the best state, in order.
	Path []int

	// Elapsed is the minute at which the best state opened its last valve.
	Elapsed int

	Stats Stats
}
