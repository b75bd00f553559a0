// File: methods.go
// Role: Valve lifecycle, tunnel queries and structural validation.
//
// Determinism:
//   - Valves() and Tunnels() return IDs sorted lexicographically ascending.
package cave

import (
	"fmt"
	"sort"
)

// AddValve registers a valve with its flow rate and outgoing tunnels.
// Tunnel targets need not exist yet; Validate checks them once the whole
// cave has been described.
//
// Errors:
//   - ErrEmptyValveID if id == "" or any tunnel target is "".
//   - ErrNegativeFlowRate if flowRate < 0.
//   - ErrDuplicateValve if id was already added.
//
// Complexity: O(len(tunnels)).
func (g *Graph) AddValve(id string, flowRate int, tunnels ...string) error {
	if id == "" {
		return ErrEmptyValveID
	}
	if flowRate < 0 {
		return fmt.Errorf("%w: valve %q has rate %d", ErrNegativeFlowRate, id, flowRate)
	}
	for _, to := range tunnels {
		if to == "" {
			return fmt.Errorf("%w: tunnel from %q", ErrEmptyValveID, id)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.valves[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateValve, id)
	}

	// copy so later mutation of the caller's slice does not leak in
	ts := make([]string, len(tunnels))
	copy(ts, tunnels)
	g.valves[id] = &Valve{ID: id, FlowRate: flowRate, Tunnels: ts}

	if g.undirected {
		for _, to := range ts {
			if g.reverse[to] == nil {
				g.reverse[to] = make(map[string]struct{})
			}
			g.reverse[to][id] = struct{}{}
		}
	}

	return nil
}

// HasValve reports whether the valve ID exists (empty ID ⇒ false).
func (g *Graph) HasValve(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.valves[id]

	return ok
}

// FlowRate returns the flow rate of id.
func (g *Graph) FlowRate(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyValveID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.valves[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrValveNotFound, id)
	}

	return v.FlowRate, nil
}

// Valves returns all valve IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Valves() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.valves))
	for id := range g.valves {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// ValveCount returns the number of valves.
func (g *Graph) ValveCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.valves)
}

// Tunnels returns the unique IDs reachable from id in one step, sorted
// ascending. In an undirected graph this includes valves whose own tunnel
// list names id. Targets are returned even if they do not exist; callers
// that need consistency run Validate first.
//
// Complexity: O(d log d).
func (g *Graph) Tunnels(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyValveID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.valves[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrValveNotFound, id)
	}

	seen := make(map[string]struct{}, len(v.Tunnels)+len(g.reverse[id]))
	out := make([]string, 0, len(v.Tunnels)+len(g.reverse[id]))
	for _, to := range v.Tunnels {
		if _, dup := seen[to]; dup {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	for from := range g.reverse[id] {
		if _, dup := seen[from]; dup {
			continue
		}
		seen[from] = struct{}{}
		out = append(out, from)
	}
	sort.Strings(out)

	return out, nil
}

// Validate checks that every tunnel target names an existing valve.
// The first offending tunnel (in sorted valve order) is reported.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.valves))
	for id := range g.valves {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, to := range g.valves[id].Tunnels {
			if _, ok := g.valves[to]; !ok {
				return fmt.Errorf("%w: %q -> %q", ErrDanglingTunnel, id, to)
			}
		}
	}

	return nil
}

// PointsOfInterest returns, sorted ascending, every valve with a positive
// flow rate plus start. These are the only nodes the search ever visits.
func (g *Graph) PointsOfInterest(start string) ([]string, error) {
	if start == "" {
		return nil, ErrEmptyValveID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.valves[start]; !ok {
		return nil, fmt.Errorf("%w: start %q", ErrValveNotFound, start)
	}
	ids := make([]string, 0, len(g.valves))
	for id, v := range g.valves {
		if v.FlowRate > 0 || id == start {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids, nil
}
