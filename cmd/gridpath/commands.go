package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/server"
)

// errUsage marks flag errors already reported by the flag set.
var errUsage = errors.New("usage error")

// parse runs fs over args, folding flag errors into errUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(path string, fs *flag.FlagSet, apply func(name string, cfg *config.Config)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) { apply(f.Name, &cfg) })
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runSearch animates one search in the terminal.
func runSearch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file")
	board := fs.String("board", "", "text board file")
	strategy := fs.String("strategy", "", "dijkstra or astar")
	interval := fs.Duration("interval", 0, "delay between steps")
	maxSteps := fs.Int("max-steps", 0, "stop after this many steps (0 = unlimited)")
	quiet := fs.Bool("quiet", false, "print only the final board and metrics")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, fs, func(name string, c *config.Config) {
		switch name {
		case "board":
			c.Board, c.Rows = *board, nil
		case "strategy":
			c.Strategy = *strategy
		case "interval":
			c.StepInterval = *interval
		case "max-steps":
			c.MaxSteps = *maxSteps
		}
	})
	if err != nil {
		return err
	}
	log, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	start, end, err := g.Endpoints()
	if err != nil {
		return err
	}
	s, err := cfg.SearchStrategy()
	if err != nil {
		return err
	}
	if !g.Reachable(start, end) {
		log.Warn("end is not reachable from start; the search will exhaust the board",
			slog.String("start", start.String()),
			slog.String("end", end.String()),
		)
	}

	eng, err := search.NewEngine(g, start, end, s, search.WithLogger(log))
	if err != nil {
		return err
	}
	opts := driver.Options{
		Interval:   cfg.StepInterval,
		MaxSteps:   cfg.MaxSteps,
		MaxRuntime: cfg.MaxRuntime,
		Logger:     log,
	}
	if *quiet {
		opts.Interval = 0
	} else {
		opts.OnFrame = func(f driver.Frame) { drawFrame(stdout, f) }
	}

	res, err := driver.Run(ctx, eng, opts)
	if err != nil {
		fmt.Fprintln(stdout, eng.Grid())
		return err
	}
	if *quiet {
		fmt.Fprintln(stdout, res.Grid)
	}
	printMetrics(stdout, s, res)
	return nil
}

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

func drawFrame(w io.Writer, f driver.Frame) {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	for _, line := range f.Board {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "step %d  %s  visited %d\n", f.Seq, f.State, f.Metrics.NodesVisited)
	_, _ = io.WriteString(w, sb.String())
}

func printMetrics(w io.Writer, s search.Strategy, res search.Result) {
	fmt.Fprintf(w, "strategy=%s state=%s found=%t path_length=%d path_cells=%d nodes_visited=%d runtime=%s\n",
		s, res.State, res.Found,
		res.Metrics.PathLength, res.Metrics.PathCells, res.Metrics.NodesVisited,
		res.Metrics.Runtime.Round(time.Microsecond),
	)
}

// runServe starts the viewer server until ctx is done.
func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file")
	listen := fs.String("listen", "", "listen address")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath, fs, func(name string, c *config.Config) {
		if name == "listen" {
			c.Listen = *listen
		}
	})
	if err != nil {
		return err
	}
	log, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	srv := server.NewServer(
		server.WithLogger(log),
		server.WithLimits(server.Limits{
			MaxSteps:        cfg.MaxSteps,
			MaxRuntime:      cfg.MaxRuntime,
			DefaultInterval: cfg.StepInterval,
		}),
	)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	raw, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = stdout.Write(raw)
	return err
}

// runGen prints a random board, retrying seeds until one is solvable when
// -solvable is set.
func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rows := fs.Int("rows", 15, "board rows")
	cols := fs.Int("cols", 30, "board columns")
	walls := fs.Float64("walls", 0.25, "wall probability in [0,1]")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	solvable := fs.Bool("solvable", true, "retry until end is reachable")
	if err := parse(fs, args); err != nil {
		return err
	}

	const maxTries = 100
	rng := rand.New(rand.NewSource(*seed))
	for try := 0; try < maxTries; try++ {
		g, err := grid.Random(*rows, *cols, *walls, rng)
		if err != nil {
			return err
		}
		start, end, _ := g.Endpoints()
		if *solvable && !g.Reachable(start, end) {
			continue
		}
		_, err = fmt.Fprintln(stdout, g)
		return err
	}
	return fmt.Errorf("no solvable %dx%d board with walls=%.2f after %d tries", *rows, *cols, *walls, maxTries)
}
