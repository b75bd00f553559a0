// SPDX-License-Identifier: MIT
// Package: distance
//
// Purpose:
//   - All-pairs hop counts restricted to the points of interest (valves with
//     a positive flow rate plus the start), remapped to dense ids 0..N-1.
//   - One queue-based BFS per point of interest: O(P·(V+E)) time.
//
// Contract:
//   - Tunnels are unit cost. This is not a weighted shortest-path routine.
//   - A dangling tunnel or an unreachable point of interest fails the build.

package distance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/valveflow/bfs"
	"github.com/katalvlaran/valveflow/cave"
)

// Option configures Build.
type Option func(*options)

type options struct {
	ctx    context.Context
	logger *slog.Logger
}

// WithContext sets a context that cancels the per-source traversals.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build computes the distance Matrix for g as seen from start.
//
// Stages:
//  1. Validate the cave (every tunnel target exists).
//  2. Collect points of interest in sorted label order; start keeps its
//     sorted position and is reported by Matrix.Start.
//  3. BFS from each point and copy the depths of the other points into its row.
//
// Errors:
//   - ErrGraphNil, ErrStartNotFound.
//   - cave.ErrDanglingTunnel for malformed tunnel lists.
//   - ErrUnreachable when some point cannot reach another.
//   - ctx.Err() on cancellation.
func Build(g *cave.Graph, start string, opts ...Option) (*Matrix, error) {
	o := options{ctx: context.Background(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasValve(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("distance: %w", err)
	}

	poi, err := g.PointsOfInterest(start)
	if err != nil {
		return nil, fmt.Errorf("distance: %w", err)
	}

	startIdx := 0
	for i, id := range poi {
		if id == start {
			startIdx = i
			break
		}
	}
	m := newMatrix(poi, startIdx)

	var (
		i, j int
		res  *bfs.Result
		d    int
		ok   bool
	)
	for i = 0; i < m.n; i++ {
		res, err = bfs.BFS(g, m.ids[i], bfs.WithContext(o.ctx))
		if err != nil {
			return nil, fmt.Errorf("distance: from %q: %w", m.ids[i], err)
		}
		for j = 0; j < m.n; j++ {
			d, ok = res.Depth[m.ids[j]]
			if !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrUnreachable, m.ids[i], m.ids[j])
			}
			m.data[i*m.n+j] = d
		}
	}

	o.logger.Debug("distance matrix built",
		slog.Int("valves", g.ValveCount()),
		slog.Int("points_of_interest", m.n),
		slog.String("start", start),
	)

	return m, nil
}
