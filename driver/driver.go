package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

var (
	// ErrNilEngine indicates Run was called with a nil engine.
	ErrNilEngine = errors.New("driver: engine is nil")

	// ErrOptionViolation indicates a negative interval or ceiling.
	ErrOptionViolation = errors.New("driver: invalid option supplied")

	// ErrStepLimit indicates the search was stopped after MaxSteps steps.
	ErrStepLimit = errors.New("driver: step limit reached")

	// ErrDeadline indicates the search was stopped after MaxRuntime.
	ErrDeadline = errors.New("driver: runtime ceiling reached")
)

// Frame is one observable point of a driven search.
type Frame struct {
	Seq         int               `json:"seq"`
	State       string            `json:"state"`
	Current     grid.Coordinate   `json:"current"`
	Visited     bool              `json:"visited"`
	FrontierLen int               `json:"frontier_len"`
	Board       []string          `json:"board"`
	Metrics     search.Metrics    `json:"metrics"`
	Final       bool              `json:"final"`
	Found       bool              `json:"found"`
	Path        []grid.Coordinate `json:"path,omitempty"`
}

// NewFrame renders a step into a Frame. Metrics are the engine's so far;
// on the terminal step they are the final ones.
func NewFrame(seq int, step search.StepResult, metrics search.Metrics) Frame {
	f := Frame{
		Seq:         seq,
		State:       step.State.String(),
		Current:     step.Current,
		Visited:     step.Visited,
		FrontierLen: step.FrontierLen,
		Metrics:     metrics,
	}
	if step.Snapshot != nil {
		f.Board = step.Snapshot.Lines()
	}
	if step.Result != nil {
		f.Final = true
		f.Found = step.Result.Found
		f.Path = step.Result.Path
		f.Metrics = step.Result.Metrics
	}
	return f
}

// Options configures Run.
type Options struct {
	// Interval between steps; zero steps back to back.
	Interval time.Duration
	// MaxSteps caps the number of Step calls; zero means unlimited.
	MaxSteps int
	// MaxRuntime caps wall time; zero means unlimited.
	MaxRuntime time.Duration
	// Logger receives ceilings and cancellation at Warn, the outcome at Info.
	Logger *slog.Logger
	// OnFrame receives every step that produced a new snapshot.
	OnFrame func(Frame)
}

// DefaultOptions returns Options with no cadence, no ceilings, a discarding
// logger and a no-op OnFrame.
func DefaultOptions() Options {
	return Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnFrame: func(Frame) {},
	}
}

func (o *Options) normalize() error {
	switch {
	case o.Interval < 0:
		return fmt.Errorf("%w: interval %v", ErrOptionViolation, o.Interval)
	case o.MaxSteps < 0:
		return fmt.Errorf("%w: max steps %d", ErrOptionViolation, o.MaxSteps)
	case o.MaxRuntime < 0:
		return fmt.Errorf("%w: max runtime %v", ErrOptionViolation, o.MaxRuntime)
	}
	def := DefaultOptions()
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	if o.OnFrame == nil {
		o.OnFrame = def.OnFrame
	}
	return nil
}

// Run steps eng until it terminates, ctx is done or a ceiling is hit, and
// returns the terminal result. On any error the result is the zero value and
// the engine keeps its last state, so a caller may inspect eng.Grid().
//
// Complexity: one engine Step per tick plus O(R·C) to render each frame.
func Run(ctx context.Context, eng *search.Engine, opts Options) (search.Result, error) {
	if eng == nil {
		return search.Result{}, ErrNilEngine
	}
	if err := opts.normalize(); err != nil {
		return search.Result{}, err
	}
	log := opts.Logger.With(slog.String("strategy", eng.Strategy().String()))

	runCtx := ctx
	if opts.MaxRuntime > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.MaxRuntime)
		defer cancel()
	}

	r := &runner{eng: eng, opts: opts, log: log}
	var err error
	if opts.Interval > 0 {
		err = r.paced(runCtx)
	} else {
		err = r.eager(runCtx)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %v after %d steps", ErrDeadline, opts.MaxRuntime, eng.Steps())
		}
		log.Warn("search stopped", slog.Int("steps", eng.Steps()), slog.Any("err", err))
		return search.Result{}, err
	}

	res, _ := eng.Result()
	log.Info("search driven to completion",
		slog.String("state", res.State.String()),
		slog.Int("frames", r.seq),
		slog.Int("steps", eng.Steps()),
	)
	return res, nil
}

// runner holds per-run state for Run.
type runner struct {
	eng  *search.Engine
	opts Options
	log  *slog.Logger
	seq  int
}

// eager steps without waiting, checking ctx between steps.
func (r *runner) eager(ctx context.Context) error {
	for !r.eng.State().Terminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.step(); err != nil {
			return err
		}
	}
	return nil
}

// paced performs one step per tick.
func (r *runner) paced(ctx context.Context) error {
	ticks := channerics.NewTicker(ctx.Done(), r.opts.Interval)
	for !r.eng.State().Terminal() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return ctx.Err()
			}
			if err := r.step(); err != nil {
				return err
			}
		}
	}
	return nil
}

// step advances the engine once, enforcing MaxSteps and emitting a frame
// when the snapshot changed.
func (r *runner) step() error {
	if r.opts.MaxSteps > 0 && r.eng.Steps() >= r.opts.MaxSteps {
		return fmt.Errorf("%w: %d", ErrStepLimit, r.opts.MaxSteps)
	}
	st, err := r.eng.Step()
	if err != nil {
		return err
	}
	if st.Visited || st.Result != nil {
		r.seq++
		r.opts.OnFrame(NewFrame(r.seq, st, r.eng.Metrics()))
	}
	return nil
}
