package search

import (
	"context"

	"github.com/katalvlaran/gridpath/grid"
)

// Search runs a complete search from start to end on g with the given
// strategy. onStep is invoked once per newly visited cell with a fresh
// snapshot; onComplete is invoked exactly once with the terminal Result.
// Either callback may be nil.
//
// Search steps the engine back to back; callers that need a cadence between
// steps should drive an Engine themselves (see package driver). ctx is checked
// between steps: a cancelled search simply stops, onComplete is not called
// and ctx.Err() is returned.
//
// Validation errors are those of NewEngine and are returned before any step
// executes. An unreachable goal is reported through Result.Found, not an error.
func Search(
	ctx context.Context,
	g *grid.Grid,
	start, end grid.Coordinate,
	strategy Strategy,
	onStep StepFunc,
	onComplete CompleteFunc,
	opts ...Option,
) (Result, error) {
	all := make([]Option, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, WithOnStep(onStep), WithOnComplete(onComplete))

	eng, err := NewEngine(g, start, end, strategy, all...)
	if err != nil {
		return Result{}, err
	}
	for !eng.State().Terminal() {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err = eng.Step(); err != nil {
			return Result{}, err
		}
	}
	res, _ := eng.Result()

	return res, nil
}

// SearchGrid is Search with the endpoints taken from the grid's own start
// and end cells.
func SearchGrid(
	ctx context.Context,
	g *grid.Grid,
	strategy Strategy,
	onStep StepFunc,
	onComplete CompleteFunc,
	opts ...Option,
) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGrid
	}
	start, end, err := g.Endpoints()
	if err != nil {
		return Result{}, wrapEndpoint(err)
	}
	return Search(ctx, g, start, end, strategy, onStep, onComplete, opts...)
}
