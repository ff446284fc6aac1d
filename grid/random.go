package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidProbability indicates a wall probability outside [0,1].
	ErrInvalidProbability = errors.New("grid: wall probability must lie in [0,1]")

	// ErrNeedRandSource indicates a nil random source for 0 < p < 1.
	ErrNeedRandSource = errors.New("grid: random source is required")
)

// Random returns a rows×cols board where every cell except the corners is a
// wall with independent probability p. Start is (0,0), end is
// (rows-1,cols-1). rng may be nil only when p is 0 or 1.
//
// Trials run in row-major order, so a fixed seed gives a fixed board.
// The board is not guaranteed to be solvable; see Reachable.
//
// Complexity: O(R·C) time and space.
func Random(rows, cols int, p float64, rng *rand.Rand) (*Grid, error) {
	if rows < 1 || cols < 1 || rows*cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d needs two cells", ErrEmptyGrid, rows, cols)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: p=%.4f", ErrInvalidProbability, p)
	}
	if rng == nil && p > 0 && p < 1 {
		return nil, ErrNeedRandSource
	}

	start, end := Coordinate{}, Coordinate{Row: rows - 1, Col: cols - 1}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			at := Coordinate{Row: r, Col: c}
			switch {
			case at == start:
				cells[r][c].Start = true
			case at == end:
				cells[r][c].End = true
			case p == 1:
				cells[r][c].Wall = true
			case p > 0:
				cells[r][c].Wall = rng.Float64() < p
			}
		}
	}
	return FromCells(cells)
}
