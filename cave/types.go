// Package cave defines the tunnel Graph that feeds the distance builder:
// named valves, each with a flow rate and a list of unit-cost tunnels.
//
// All Graph methods are safe for concurrent use; a single sync.RWMutex
// guards the valve catalog.
//
// Errors:
//
//	ErrEmptyValveID     - valve ID is the empty string.
//	ErrValveNotFound    - requested valve does not exist.
//	ErrDuplicateValve   - AddValve called twice with the same ID.
//	ErrNegativeFlowRate - flow rate below zero.
//	ErrDanglingTunnel   - a tunnel points at a valve that was never added.
package cave

import (
	"errors"
	"sync"
)

// Sentinel errors for cave graph operations.
var (
	// ErrEmptyValveID indicates that the provided valve ID is empty.
	ErrEmptyValveID = errors.New("cave: valve ID is empty")

	// ErrValveNotFound indicates an operation referenced a non-existent valve.
	ErrValveNotFound = errors.New("cave: valve not found")

	// ErrDuplicateValve indicates a second AddValve for an existing ID.
	ErrDuplicateValve = errors.New("cave: duplicate valve")

	// ErrNegativeFlowRate indicates a flow rate below zero.
	ErrNegativeFlowRate = errors.New("cave: negative flow rate")

	// ErrDanglingTunnel indicates a tunnel whose target valve is missing.
	ErrDanglingTunnel = errors.New("cave: tunnel leads to unknown valve")
)

// Valve is one node of the cave.
//
// FlowRate is the reward per remaining minute once the valve is open.
// Tunnels lists the valves reachable in one minute, in input order.
type Valve struct {
	ID       string
	FlowRate int
	Tunnels  []string
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithUndirected makes every tunnel walkable in both directions,
// regardless of which end listed it.
func WithUndirected() GraphOption {
	return func(g *Graph) { g.undirected = true }
}

// Graph is the in-memory cave description.
//
// valves maps ID → Valve; reverse holds mirrored tunnels and is only
// populated when the graph is undirected.
type Graph struct {
	mu sync.RWMutex

	undirected bool

	valves  map[string]*Valve
	reverse map[string]map[string]struct{}
}

// NewGraph creates an empty Graph. By default tunnels are one-way,
// exactly as listed by AddValve.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		valves:  make(map[string]*Valve),
		reverse: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Undirected reports whether tunnels are mirrored.
func (g *Graph) Undirected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.undirected
}
