// Package config loads run settings and the cave description for the
// valves binary from a YAML file, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valveflow/cave"
	"github.com/katalvlaran/valveflow/search"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level file layout.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	Cave   CaveConfig   `yaml:"cave"`
}

// SearchConfig mirrors the search.Option set.
type SearchConfig struct {
	TimeBudget  int    `yaml:"time_budget"`
	Start       string `yaml:"start"`
	Parallelism int    `yaml:"parallelism"`
	Memoize     bool   `yaml:"memoize"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// CaveConfig describes the tunnel graph.
type CaveConfig struct {
	Undirected bool         `yaml:"undirected"`
	Valves     []ValveEntry `yaml:"valves"`
}

// ValveEntry is one valve with its outgoing tunnels.
type ValveEntry struct {
	ID       string   `yaml:"id"`
	FlowRate int      `yaml:"flow_rate"`
	Tunnels  []string `yaml:"tunnels"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: SearchConfig{
			TimeBudget:  search.DefaultTimeBudget,
			Start:       cave.SampleStart,
			Parallelism: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies VALVES_*
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VALVES_TIME_BUDGET"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Search.TimeBudget = i
		}
	}
	if v := os.Getenv("VALVES_START"); v != "" {
		cfg.Search.Start = v
	}
	if v := os.Getenv("VALVES_PARALLELISM"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Search.Parallelism = i
		}
	}
	if v := os.Getenv("VALVES_MEMOIZE"); v != "" {
		cfg.Search.Memoize = v == "true" || v == "1"
	}
	if v := os.Getenv("VALVES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks value ranges. Cave consistency (dangling tunnels) is
// left to the distance builder, which reports the offending tunnel.
func (c Config) Validate() error {
	if c.Search.TimeBudget < 0 {
		return fmt.Errorf("%w: time_budget must be >= 0", ErrInvalid)
	}
	if c.Search.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be >= 0", ErrInvalid)
	}
	if c.Search.Start == "" {
		return fmt.Errorf("%w: start must be set", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	seen := make(map[string]bool, len(c.Cave.Valves))
	for i, v := range c.Cave.Valves {
		if v.ID == "" {
			return fmt.Errorf("%w: valve #%d has no id", ErrInvalid, i)
		}
		if seen[v.ID] {
			return fmt.Errorf("%w: valve %q listed twice", ErrInvalid, v.ID)
		}
		seen[v.ID] = true
		if v.FlowRate < 0 {
			return fmt.Errorf("%w: valve %q has negative flow_rate", ErrInvalid, v.ID)
		}
	}

	return nil
}

// SlogLevel maps Log.Level to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
}

// BuildCave materializes the cave section. An empty section yields the
// built-in sample cave.
func (c Config) BuildCave() (*cave.Graph, error) {
	if len(c.Cave.Valves) == 0 {
		return cave.Sample(), nil
	}
	var opts []cave.GraphOption
	if c.Cave.Undirected {
		opts = append(opts, cave.WithUndirected())
	}
	g := cave.NewGraph(opts...)
	for _, v := range c.Cave.Valves {
		if err := g.AddValve(v.ID, v.FlowRate, v.Tunnels...); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return g, nil
}

// SearchOptions converts the search section into solver options.
func (c Config) SearchOptions() []search.Option {
	opts := []search.Option{
		search.WithTimeBudget(c.Search.TimeBudget),
		search.WithParallelism(c.Search.Parallelism),
	}
	if c.Search.Memoize {
		opts = append(opts, search.WithMemoization())
	}

	return opts
}
