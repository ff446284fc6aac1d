package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the search package.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrInvalidBounds indicates a start or end coordinate outside the grid.
	ErrInvalidBounds = errors.New("search: coordinate outside grid bounds")

	// ErrMissingEndpoint indicates the grid does not hold exactly one start and
	// one end cell matching the requested coordinates. It wraps
	// grid.ErrMissingEndpoint when the grid itself is malformed.
	ErrMissingEndpoint = errors.New("search: missing or mismatched endpoint")

	// ErrUnknownStrategy indicates a Strategy value outside the known set.
	ErrUnknownStrategy = errors.New("search: unknown strategy")

	// ErrOptionViolation indicates an invalid Option argument.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrFinished indicates Step was called after the search terminated.
	ErrFinished = errors.New("search: search already finished")
)

// Strategy selects the expansion order of a search.
type Strategy int

const (
	// UniformCost expands by distance from the start (Dijkstra).
	UniformCost Strategy = iota
	// Heuristic expands by distance plus Manhattan estimate (A*).
	Heuristic
)

// String returns the canonical name: "dijkstra" or "astar".
func (s Strategy) String() string {
	switch s {
	case UniformCost:
		return "dijkstra"
	case Heuristic:
		return "astar"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a name to a Strategy. Accepted (case-insensitive):
// "dijkstra", "uniform-cost", "ucs", "astar", "a*", "heuristic".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra", "uniform-cost", "uniformcost", "ucs":
		return UniformCost, nil
	case "astar", "a*", "a-star", "heuristic":
		return Heuristic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Strategy) valid() bool { return s == UniformCost || s == Heuristic }

// estimate returns the heuristic part of a frontier key.
func (s Strategy) estimate(from, goal grid.Coordinate) int {
	if s == Heuristic {
		return from.Manhattan(goal)
	}
	return 0
}

// State is the engine's position in its state machine.
type State int

const (
	// Initialized: seeded, no step taken yet.
	Initialized State = iota
	// Stepping: at least one step taken, not finished.
	Stepping
	// PathFound: the goal was popped; terminal.
	PathFound
	// Exhausted: the frontier ran dry before reaching the goal; terminal.
	Exhausted
)

// String returns a lower-case state name.
func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case PathFound:
		return "path_found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s is PathFound or Exhausted.
func (s State) Terminal() bool { return s == PathFound || s == Exhausted }

// Metrics summarises one search.
//
// PathLength counts moves from start to end, so on an open board it equals
// the Manhattan distance. PathCells counts the cells flagged as path, which
// excludes both endpoints and is PathLength-1 for any route of one or more
// moves.
type Metrics struct {
	PathLength   int           `json:"path_length"`
	PathCells    int           `json:"path_cells"`
	NodesVisited int           `json:"nodes_visited"`
	Runtime      time.Duration `json:"-"`
}

// RuntimeSeconds returns Runtime in seconds.
func (m Metrics) RuntimeSeconds() float64 { return m.Runtime.Seconds() }

// Result is the terminal report of a search.
//
// Grid is the final snapshot: visited marks plus Path flags on the cells
// strictly between start and end. Path lists the route from start to end
// inclusive and is nil when Found is false.
type Result struct {
	State   State
	Found   bool
	Grid    *grid.Grid
	Path    []grid.Coordinate
	Metrics Metrics
}

// StepResult describes what a single Step did.
type StepResult struct {
	// State after the step.
	State State
	// Current is the coordinate popped by this step; zero when the frontier was empty.
	Current grid.Coordinate
	// Visited is true when Current was newly marked visited.
	Visited bool
	// Snapshot is the grid after the step.
	Snapshot *grid.Grid
	// FrontierLen is the number of queued entries after the step.
	FrontierLen int
	// Result is set on the step that reached a terminal state.
	Result *Result
}

// StepFunc receives the snapshot produced by each visit.
type StepFunc func(snapshot *grid.Grid)

// CompleteFunc receives the terminal Result exactly once.
type CompleteFunc func(result Result)

// Options configures an Engine.
type Options struct {
	// OnStep is called once per newly visited coordinate.
	OnStep StepFunc
	// OnComplete is called once when the search terminates.
	OnComplete CompleteFunc
	// Logger receives state transitions at Debug and outcomes at Info.
	Logger *slog.Logger
	// Clock supplies wall time for the Runtime metric.
	Clock func() time.Time

	// internal error recorded during option parsing
	err error
}

// Option configures an Engine via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with no-op callbacks, a discarding logger
// and time.Now as clock.
func DefaultOptions() Options {
	return Options{
		OnStep:     func(*grid.Grid) {},
		OnComplete: func(Result) {},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:      time.Now,
	}
}

// WithOnStep registers the per-visit callback. nil keeps the default.
func WithOnStep(fn StepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// WithOnComplete registers the terminal callback. nil keeps the default.
func WithOnComplete(fn CompleteFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnComplete = fn
		}
	}
}

// WithLogger sets the structured logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock overrides the wall clock used for Runtime.
// A nil clock is recorded as ErrOptionViolation.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now == nil {
			o.err = fmt.Errorf("%w: clock cannot be nil", ErrOptionViolation)
			return
		}
		o.Clock = now
	}
}
