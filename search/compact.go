package search

import (
	"fmt"

	"github.com/katalvlaran/valveflow/cave"
	"github.com/katalvlaran/valveflow/distance"
)

// Compact turns a cave and its distance matrix into the compact valve set
// the Solver consumes. Valve i is m.IDs()[i]; the start index is m.Start().
func Compact(g *cave.Graph, m *distance.Matrix) ([]Valve, error) {
	if g == nil || m == nil {
		return nil, fmt.Errorf("search: compact: nil input")
	}
	ids := m.IDs()
	valves := make([]Valve, len(ids))
	for i, id := range ids {
		rate, err := g.FlowRate(id)
		if err != nil {
			return nil, fmt.Errorf("search: compact %q: %w", id, err)
		}
		row, err := m.Row(i)
		if err != nil {
			return nil, fmt.Errorf("search: compact %q: %w", id, err)
		}
		valves[i] = Valve{FlowRate: rate, Distances: row}
	}

	return valves, nil
}

// FromCave builds the distance matrix for g from start, compacts it and
// returns a Solver plus the matrix (for mapping indices back to labels).
// The solver's context and logger are reused for the matrix build.
func FromCave(g *cave.Graph, start string, opts ...Option) (*Solver, *distance.Matrix, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, nil, o.err
	}
	m, err := distance.Build(g, start, distance.WithContext(o.Ctx), distance.WithLogger(o.Logger))
	if err != nil {
		return nil, nil, err
	}
	valves, err := Compact(g, m)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSolver(valves, opts...)
	if err != nil {
		return nil, nil, err
	}

	return s, m, nil
}
