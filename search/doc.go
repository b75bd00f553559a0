// Package search finds the best score one worker can collect by walking
// between valves and opening them within a fixed time budget.
//
// Model
//
//   - Valve:  flow rate plus a row of tunnel distances to every other valve.
//   - Worker: elapsed minutes, current valve, accumulated score (immutable).
//   - OpenSet: one bool per valve; zero-rate valves start out open.
//   - State:  Worker + OpenSet, one node of the search tree.
//
// Opening valve v from position p costs 1 + dist(p,v) minutes and is legal
// only if the worker finishes strictly before the budget. The score grows
// by rate(v) × (budget − elapsed after the move).
//
// Search
//
//	Depth-first over an explicit stack. Every popped state is a candidate
//	answer, because stopping early is always allowed. The search is
//	exhaustive: no two orderings are merged unless WithMemoization is set,
//	in which case a state is dropped when another with the same position,
//	open set and elapsed minute already scored at least as much.
//
//	WithParallelism(n) expands the initial state once and explores each
//	child's subtree in its own goroutine (errgroup, at most n at a time),
//	reducing the shard results by max.
//
// Complexity
//
//	Worst case is the number of ordered subsets of reachable valves, so
//	the frontier size is the main memory cost. Memoization bounds it by
//	the number of distinct (position, open set, minute) triples.
//
// Errors
//
//   - ErrNoValves, ErrDimensionMismatch, ErrNegativeFlowRate and the
//     distance package sentinels for malformed input.
//   - ErrStartOutOfRange for a bad start index.
//   - ErrOptionViolation for a negative time budget or parallelism.
//   - ErrIllegalMove from Worker.MoveTo.
//   - ctx.Err() when the configured context is cancelled.
package search
