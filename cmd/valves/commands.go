package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/cave"
	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/search"
)

type solveFlags struct {
	configPath string
	start      string
	timeBudget int
	parallel   int
	memo       bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "valves",
		Short:         "Plan which valves to open and in what order",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSolveCmd(), newExampleCmd())

	return rootCmd
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the cave described by a YAML config",
		Long: `Loads the cave and search settings from --config (or the built-in
sample cave when omitted), applies VALVES_* environment overrides and
flag overrides, then prints the best score and opening order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("start") {
				cfg.Search.Start = f.start
			}
			if flags.Changed("time") {
				cfg.Search.TimeBudget = f.timeBudget
			}
			if flags.Changed("parallel") {
				cfg.Search.Parallelism = f.parallel
			}
			if flags.Changed("memo") {
				cfg.Search.Memoize = f.memo
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = f.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&f.start, "start", "s", cave.SampleStart, "Starting valve label")
	cmd.Flags().IntVarP(&f.timeBudget, "time", "t", search.DefaultTimeBudget, "Time budget in minutes")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "Number of concurrent search shards")
	cmd.Flags().BoolVar(&f.memo, "memo", false, "Prune dominated states")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Solve the built-in four valve sample cave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), config.Default())
		},
	}
}

func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func runSolve(ctx context.Context, out, logOut io.Writer, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := newLogger(logOut, cfg.Log)
	if err != nil {
		return err
	}

	g, err := cfg.BuildCave()
	if err != nil {
		return err
	}
	opts := append(cfg.SearchOptions(), search.WithContext(ctx), search.WithLogger(logger))
	s, m, err := search.FromCave(g, cfg.Search.Start, opts...)
	if err != nil {
		return err
	}
	logger.Info("solving",
		slog.String("start", cfg.Search.Start),
		slog.Int("valves", m.Size()),
		slog.Int("time_budget", s.TimeBudget()))

	res, err := s.Run(m.Start())
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(res.Path))
	for _, i := range res.Path {
		id, err := m.ID(i)
		if err != nil {
			return err
		}
		labels = append(labels, id)
	}
	path := strings.Join(labels, " -> ")
	if path == "" {
		path = "(none)"
	}

	route, err := walkRoute(ctx, g, cfg.Search.Start, labels)
	if err != nil {
		return err
	}
	logger.Debug("best route",
		slog.Int("tunnels", len(route)-1),
		slog.String("route", strings.Join(route, " ")))

	fmt.Fprintf(out, "score: %d\n", res.Score)
	fmt.Fprintf(out, "path: %s\n", path)
	fmt.Fprintf(out, "elapsed: %d/%d\n", res.Elapsed, s.TimeBudget())
	fmt.Fprintf(out, "stats: expanded=%d generated=%d pruned=%d peak_frontier=%d\n",
		res.Stats.Expanded, res.Stats.Generated, res.Stats.Pruned, res.Stats.PeakFrontier)

	return nil
}
