package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/valveflow/cave"
)

// ErrNeighbors is returned when a tunnel cannot be followed, most often
// because it leads to a valve that does not exist.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// queueItem pairs a valve ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *cave.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors (wrapping
// cave.ErrDanglingTunnel) for a tunnel to a missing valve, or any
// user-supplied hook error.
func BFS(g *cave.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasValve(startID) {
		return nil, ErrStartVertexNotFound
	}

	n := g.ValveCount()
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}

	w.enqueue(startID, 0, "")

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records its parent, and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors follows every tunnel out of item, honoring MaxDepth,
// and enqueues each unseen valve. A tunnel to a missing valve is fatal.
func (w *walker) enqueueNeighbors(item queueItem) error {
	tunnels, err := w.graph.Tunnels(item.id)
	if err != nil {
		return fmt.Errorf("%w: tunnels of %q: %w", ErrNeighbors, item.id, err)
	}
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range tunnels {
		if w.visited[nbr] {
			continue
		}
		if !w.graph.HasValve(nbr) {
			return fmt.Errorf("%w: %w: %q -> %q", ErrNeighbors, cave.ErrDanglingTunnel, item.id, nbr)
		}
		w.enqueue(nbr, nextDepth, item.id)
	}

	return nil
}
