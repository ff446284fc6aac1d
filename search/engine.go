package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/gridpath/frontier"
	"github.com/katalvlaran/gridpath/grid"
)

// Engine holds the mutable state of one search. It is driven by Step and is
// not safe for concurrent use; every field is owned by the engine alone.
type Engine struct {
	origin   *grid.Grid // private clone of the caller's grid
	current  *grid.Grid // latest snapshot
	start    grid.Coordinate
	end      grid.Coordinate
	strategy Strategy
	opts     Options
	log      *slog.Logger

	state    State
	dist     map[grid.Coordinate]int             // missing key = +inf
	prev     map[grid.Coordinate]grid.Coordinate // best-known parent
	visited  map[grid.Coordinate]bool
	frontier frontier.Frontier
	metrics  Metrics
	began    time.Time
	steps    int
	result   *Result
}

// NewEngine validates the input and returns an engine in the Initialized
// state. The caller's grid is cloned; later edits to it do not affect the
// search.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. options must be valid (ErrOptionViolation).
//  3. strategy must be UniformCost or Heuristic (ErrUnknownStrategy).
//  4. start and end must lie within g (ErrInvalidBounds).
//  5. g must hold exactly one start and one end cell, at start and end
//     (ErrMissingEndpoint).
func NewEngine(g *grid.Grid, start, end grid.Coordinate, strategy Strategy, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
	for _, c := range []grid.Coordinate{start, end} {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: %v not in %dx%d", ErrInvalidBounds, c, g.Rows(), g.Cols())
		}
	}
	gs, ge, err := g.Endpoints()
	if err != nil {
		return nil, wrapEndpoint(err)
	}
	if gs != start || ge != end {
		return nil, fmt.Errorf("%w: grid endpoints %v→%v, requested %v→%v", ErrMissingEndpoint, gs, ge, start, end)
	}

	e := &Engine{
		origin:   g.Clone(),
		start:    start,
		end:      end,
		strategy: strategy,
		opts:     cfg,
		log: cfg.Logger.With(
			slog.String("strategy", strategy.String()),
			slog.String("start", start.String()),
			slog.String("end", end.String()),
		),
	}
	e.init()

	return e, nil
}

// wrapEndpoint tags a grid endpoint error with ErrMissingEndpoint while
// keeping grid.ErrMissingEndpoint reachable through errors.Is.
func wrapEndpoint(err error) error {
	return fmt.Errorf("%w: %w", ErrMissingEndpoint, err)
}

// init seeds distances and the frontier with the start coordinate and
// records the start time.
func (e *Engine) init() {
	capacity := e.origin.Rows() * e.origin.Cols()
	e.current = e.origin
	e.state = Initialized
	e.dist = map[grid.Coordinate]int{e.start: 0}
	e.prev = make(map[grid.Coordinate]grid.Coordinate, capacity)
	e.visited = make(map[grid.Coordinate]bool, capacity)
	e.metrics = Metrics{}
	e.steps = 0
	e.result = nil

	switch e.strategy {
	case Heuristic:
		e.frontier = frontier.NewMinKey(capacity)
	default:
		e.frontier = frontier.NewFIFO(capacity)
	}
	e.frontier.Push(e.start, e.strategy.estimate(e.start, e.end))
	e.began = e.opts.Clock()

	e.log.Debug("search initialized",
		slog.Int("rows", e.origin.Rows()),
		slog.Int("cols", e.origin.Cols()),
	)
}

// Reset discards all search state and returns the engine to Initialized on
// the grid it was created with. The runtime clock restarts.
func (e *Engine) Reset() {
	e.init()
}

// Step performs one pop-and-expand unit of work:
//
//  1. Empty frontier → Exhausted; OnComplete with Found == false.
//  2. Pop the best coordinate under the strategy.
//  3. Goal popped → PathFound; reconstruct, finalize metrics, OnComplete.
//  4. Otherwise mark it visited in a fresh snapshot (not for the start and
//     not twice), count it and call OnStep.
//  5. Relax every walkable neighbour with cost dist+1.
//
// Returns ErrFinished if the engine is already in a terminal state.
func (e *Engine) Step() (StepResult, error) {
	if e.state.Terminal() {
		return StepResult{State: e.state, Snapshot: e.current, Result: e.result}, ErrFinished
	}
	if e.state == Initialized {
		e.state = Stepping
		e.log.Debug("search stepping")
	}
	e.steps++

	cur, ok := e.frontier.PopBest()
	if !ok {
		res := e.finish(nil)
		return StepResult{State: e.state, Snapshot: res.Grid, Result: res}, nil
	}
	if cur == e.end {
		res := e.finish(&cur)
		return StepResult{State: e.state, Current: cur, Snapshot: res.Grid, Result: res}, nil
	}

	out := StepResult{State: e.state, Current: cur}
	if cur != e.start && !e.visited[cur] {
		next, err := e.current.WithVisited(cur)
		if err != nil {
			return StepResult{}, fmt.Errorf("search: mark %v visited: %w", cur, err)
		}
		e.visited[cur] = true
		e.current = next
		e.metrics.NodesVisited++
		out.Visited = true
		e.opts.OnStep(next)
	}
	e.relax(cur)

	out.Snapshot = e.current
	out.FrontierLen = e.frontier.Len()
	return out, nil
}

// relax tries to improve the distance of every walkable neighbour of cur.
// The live distance of cur is used, so stale queue entries cost nothing.
func (e *Engine) relax(cur grid.Coordinate) {
	alt := e.dist[cur] + 1
	for _, n := range e.current.NeighborsOf(cur) {
		if !e.walkable(n) {
			continue
		}
		if d, seen := e.dist[n]; seen && alt >= d {
			continue
		}
		e.dist[n] = alt
		e.prev[n] = cur
		key := alt + e.strategy.estimate(n, e.end)
		if !e.frontier.Contains(n) {
			e.frontier.Push(n, key)
		} else {
			e.frontier.Update(n, key)
		}
	}
}

// walkable treats the engine's own endpoints as open regardless of flags.
func (e *Engine) walkable(c grid.Coordinate) bool {
	return c == e.start || c == e.end || e.current.IsWalkable(c)
}

// finish moves the engine to its terminal state. goal is nil when the
// frontier was exhausted.
func (e *Engine) finish(goal *grid.Coordinate) *Result {
	e.metrics.Runtime = e.opts.Clock().Sub(e.began)
	res := &Result{Grid: e.current}

	if goal == nil {
		e.state = Exhausted
		res.State = Exhausted
	} else {
		marked, route := reconstruct(e.current, e.prev, e.start, e.end)
		e.current = marked
		e.state = PathFound
		if len(route) > 0 {
			e.metrics.PathLength = len(route) - 1
		}
		if len(route) > 2 {
			e.metrics.PathCells = len(route) - 2
		}
		res.State = PathFound
		res.Found = route != nil
		res.Grid = marked
		res.Path = route
	}
	res.Metrics = e.metrics
	e.result = res

	e.log.Info("search finished",
		slog.String("state", e.state.String()),
		slog.Int("path_length", e.metrics.PathLength),
		slog.Int("nodes_visited", e.metrics.NodesVisited),
		slog.Int("steps", e.steps),
		slog.Duration("runtime", e.metrics.Runtime),
	)
	e.opts.OnComplete(*res)

	return res
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Strategy returns the strategy the engine was built with.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Start returns the start coordinate.
func (e *Engine) Start() grid.Coordinate { return e.start }

// End returns the end coordinate.
func (e *Engine) End() grid.Coordinate { return e.end }

// Grid returns the latest snapshot. It is never mutated afterwards.
func (e *Engine) Grid() *grid.Grid { return e.current }

// Steps returns how many times Step has advanced the search.
func (e *Engine) Steps() int { return e.steps }

// Metrics returns a copy of the metrics gathered so far. Runtime is only
// set once the search has terminated.
func (e *Engine) Metrics() Metrics { return e.metrics }

// Distance returns the best-known distance of c from the start.
// ok is false while c has not been reached.
func (e *Engine) Distance(c grid.Coordinate) (d int, ok bool) {
	d, ok = e.dist[c]
	return d, ok
}

// Result returns the terminal result; ok is false until the engine has
// reached PathFound or Exhausted.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}
