package main

import (
	"context"
	"fmt"

	"github.com/katalvlaran/valveflow/bfs"
	"github.com/katalvlaran/valveflow/cave"
)

// walkRoute expands an opening order into every valve walked through,
// start included, using BFS parent links for each leg.
func walkRoute(ctx context.Context, g *cave.Graph, start string, opened []string) ([]string, error) {
	route := []string{start}
	from := start
	for _, to := range opened {
		res, err := bfs.BFS(g, from, bfs.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("route from %q: %w", from, err)
		}
		leg, err := res.PathTo(to)
		if err != nil {
			return nil, fmt.Errorf("route %q -> %q: %w", from, to, err)
		}
		route = append(route, leg[1:]...)
		from = to
	}

	return route, nil
}
