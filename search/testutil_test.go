package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/search"
)

const (
	// budget30 is the standard time budget used across tests.
	budget30 = 30

	// sampleBest is the reference score of the four-valve fixture:
	// open B (t=2, 13×28), C (t=4, 9×26), D (t=6, 7×24).
	sampleBest = 364 + 234 + 168
)

// sampleValves is the four-valve fixture A(0) B(13) C(9) D(7) laid out
// on a line A–B–C–D.
func sampleValves() []search.Valve {
	return []search.Valve{
		{FlowRate: 0, Distances: []int{0, 1, 2, 3}},
		{FlowRate: 13, Distances: []int{1, 0, 1, 2}},
		{FlowRate: 9, Distances: []int{2, 1, 0, 1}},
		{FlowRate: 7, Distances: []int{3, 2, 1, 0}},
	}
}

// mustSolver builds a solver or fails the test.
func mustSolver(t testing.TB, valves []search.Valve, opts ...search.Option) *search.Solver {
	t.Helper()
	s, err := search.NewSolver(valves, opts...)
	require.NoError(t, err)

	return s
}

// randomValves places n valves on a small grid (Manhattan distances are
// a proper metric) with rates in [0,maxRate]. Valve 0 always has rate 0.
func randomValves(rng *rand.Rand, n, maxRate int) []search.Valve {
	xs := make([]int, n)
	ys := make([]int, n)
	for i := range xs {
		xs[i], ys[i] = rng.Intn(5), rng.Intn(5)
	}
	valves := make([]search.Valve, n)
	for i := range valves {
		d := make([]int, n)
		for j := range d {
			d[j] = abs(xs[i]-xs[j]) + abs(ys[i]-ys[j])
		}
		rate := 0
		if i > 0 {
			rate = rng.Intn(maxRate + 1)
		}
		valves[i] = search.Valve{FlowRate: rate, Distances: d}
	}

	return valves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// bruteForce is an independent recursive reference for the best score.
func bruteForce(valves []search.Valve, pos, elapsed, budget int, opened []bool) int {
	best := 0
	for v := range valves {
		if opened[v] || valves[v].FlowRate == 0 {
			continue
		}
		t := elapsed + valves[pos].Distances[v] + 1
		if t >= budget {
			continue
		}
		opened[v] = true
		got := valves[v].FlowRate*(budget-t) + bruteForce(valves, v, t, budget, opened)
		opened[v] = false
		if got > best {
			best = got
		}
	}

	return best
}
