// Package bfs provides a breadth-first search over a cave.Graph,
// returning unit-cost shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore valves in non-decreasing distance (tunnel count) from a start valve.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from valve → distance (tunnels) from start
//   - Parent: map from valve → its predecessor in the BFS tree
//   - OnVisit hook may abort the walk with an error.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//
// Why
//
//	Every tunnel costs exactly one minute, so BFS depth is the shortest
//	distance. The distance package runs one BFS per point of interest to
//	fill its matrix. Do not reuse this for weighted tunnels.
//
// Determinism
//
//	cave.Graph.Tunnels returns neighbors sorted by ID and BFS enqueues them
//	in that order, so the visit sequence is fully reproducible.
//
// Complexity (V = |Valves|, E = |Tunnels|)
//
//   - Time:   O(V + E·log d) (tunnel lists are sorted on read)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start valve does not exist.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - ErrNeighbors            wrapping cave.ErrDanglingTunnel when a tunnel
//     leads to a missing valve.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
