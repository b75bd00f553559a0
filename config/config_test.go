package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/cave"
	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/search"
)

const caveYAML = `
search:
  time_budget: 26
  start: AA
  parallelism: 2
  memoize: true
log:
  level: debug
  format: json
cave:
  undirected: true
  valves:
    - id: AA
      flow_rate: 0
      tunnels: [BB]
    - id: BB
      flow_rate: 13
      tunnels: [CC]
    - id: CC
      flow_rate: 9
      tunnels: [DD]
    - id: DD
      flow_rate: 7
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "valves.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, search.DefaultTimeBudget, cfg.Search.TimeBudget)

	g, err := cfg.BuildCave()
	require.NoError(t, err)
	assert.Equal(t, cave.Sample().Valves(), g.Valves())
}

func TestLoad_File(t *testing.T) {
	cfg, err := config.Load(writeFile(t, caveYAML))
	require.NoError(t, err)

	assert.Equal(t, config.SearchConfig{TimeBudget: 26, Start: "AA", Parallelism: 2, Memoize: true}, cfg.Search)
	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	g, err := cfg.BuildCave()
	require.NoError(t, err)
	assert.True(t, g.Undirected())
	got, err := g.Tunnels("BB")
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "CC"}, got)

	s, m, err := search.FromCave(g, cfg.Search.Start, cfg.SearchOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 26, s.TimeBudget())
	assert.True(t, s.Options().Memoize)
	assert.Equal(t, 2, s.Options().Parallelism)
	score, err := s.Solve(m.Start())
	require.NoError(t, err)
	// B at t=2 (13×24), C at t=4 (9×22), D at t=6 (7×20)
	assert.Equal(t, 312+198+140, score)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VALVES_TIME_BUDGET", "12")
	t.Setenv("VALVES_START", "BB")
	t.Setenv("VALVES_PARALLELISM", "3")
	t.Setenv("VALVES_MEMOIZE", "1")
	t.Setenv("VALVES_LOG_LEVEL", "warn")

	cfg, err := config.Load(writeFile(t, caveYAML))
	require.NoError(t, err)
	assert.Equal(t, config.SearchConfig{TimeBudget: 12, Start: "BB", Parallelism: 3, Memoize: true}, cfg.Search)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "search: [not, a, map]"))
	assert.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"negative budget", "search: {time_budget: -1}"},
		{"negative parallelism", "search: {parallelism: -1}"},
		{"empty start", "search: {start: \"\"}"},
		{"bad level", "log: {level: loud}"},
		{"bad format", "log: {format: xml}"},
		{"valve without id", "cave: {valves: [{flow_rate: 3}]}"},
		{"duplicate valve", "cave: {valves: [{id: AA}, {id: AA}]}"},
		{"negative rate", "cave: {valves: [{id: AA, flow_rate: -4}]}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tc.body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestBuildCave_DirectedKeepsDanglingForBuilder(t *testing.T) {
	cfg := config.Default()
	cfg.Cave.Valves = []config.ValveEntry{{ID: "AA", Tunnels: []string{"ZZ"}}}

	g, err := cfg.BuildCave()
	require.NoError(t, err)
	assert.False(t, g.Undirected())
	assert.ErrorIs(t, g.Validate(), cave.ErrDanglingTunnel)
}
