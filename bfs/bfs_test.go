package bfs_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/bfs"
	"github.com/katalvlaran/valveflow/cave"
)

// ring builds the undirected cycle A–B–C–D–A.
func ring(t testing.TB) *cave.Graph {
	g := cave.NewGraph(cave.WithUndirected())
	require.NoError(t, g.AddValve("A", 0, "B"))
	require.NoError(t, g.AddValve("B", 1, "C"))
	require.NoError(t, g.AddValve("C", 1, "D"))
	require.NoError(t, g.AddValve("D", 1, "A"))

	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	g := cave.NewGraph()
	_, err = bfs.BFS(g, "missing")
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	require.NoError(t, g.AddValve("A", 0))
	_, err = bfs.BFS(g, "A", bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_SingleValve(t *testing.T) {
	g := cave.NewGraph()
	require.NoError(t, g.AddValve("A", 0))

	res, err := bfs.BFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, res.Order)
	assert.Equal(t, 0, res.Depth["A"])
}

// TestBFS_CycleDepths covers a four-valve cycle and checks depths.
func TestBFS_CycleDepths(t *testing.T) {
	res, err := bfs.BFS(ring(t), "A")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "D", "C"}, res.Order)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "D": 1, "C": 2}, res.Depth)

	path, err := res.PathTo("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, path)

	_, err = res.PathTo("Z")
	assert.Error(t, err)
}

// TestBFS_Directed ensures one-way tunnels are only followed forwards.
func TestBFS_Directed(t *testing.T) {
	g := cave.NewGraph()
	require.NoError(t, g.AddValve("A", 0, "B"))
	require.NoError(t, g.AddValve("B", 0, "C"))
	require.NoError(t, g.AddValve("C", 0))

	res, err := bfs.BFS(g, "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, res.Order)

	res, err = bfs.BFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Depth["C"])
}

func TestBFS_MaxDepth(t *testing.T) {
	g := cave.NewGraph(cave.WithUndirected())
	require.NoError(t, g.AddValve("A", 0, "B"))
	require.NoError(t, g.AddValve("B", 0, "C"))
	require.NoError(t, g.AddValve("C", 0))

	res, err := bfs.BFS(g, "A", bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Order)

	res, err = bfs.BFS(g, "A", bfs.WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Order)
}

// TestBFS_DanglingTunnel checks that a missing valve is fatal, not skipped.
func TestBFS_DanglingTunnel(t *testing.T) {
	g := cave.NewGraph()
	require.NoError(t, g.AddValve("A", 0, "B"))
	require.NoError(t, g.AddValve("B", 0, "GHOST"))

	_, err := bfs.BFS(g, "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, bfs.ErrNeighbors)
	assert.ErrorIs(t, err, cave.ErrDanglingTunnel)
}

func TestBFS_OnVisitAbort(t *testing.T) {
	stop := errors.New("stop")
	var seen []string
	_, err := bfs.BFS(ring(t), "A", bfs.WithOnVisit(func(id string, d int) error {
		seen = append(seen, id+"@"+strconv.Itoa(d))
		if id == "D" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"A@0", "B@1", "D@1"}, seen)
}

func TestBFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bfs.BFS(ring(t), "A", bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
