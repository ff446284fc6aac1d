package grid

import (
	"fmt"
)

// New returns a rows×cols grid of open cells with no endpoints.
// Returns ErrEmptyGrid if either dimension is below one.
// Complexity: O(R×C) time and memory.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyGrid
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// FromCells constructs a Grid from a non-empty, rectangular 2D slice of cells.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(R×C) time and memory.
func FromCells(values [][]Cell) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([][]Cell, h)
	for r := 0; r < h; r++ {
		cells[r] = make([]Cell, w)
		copy(cells[r], values[r])
	}
	g := &Grid{rows: h, cols: w, cells: cells}
	g.scanEndpoints()

	return g, nil
}

// Parse builds a Grid from a text board, one string per row.
// See the package documentation for the symbol alphabet.
// Parse does not require endpoints; call Validate for that.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	values := make([][]Cell, len(lines))
	for r, line := range lines {
		row := make([]Cell, 0, len(line))
		for c, ch := range line {
			var cell Cell
			switch ch {
			case SymbolOpen, SymbolVisited, SymbolPath:
			case SymbolWall:
				cell.Wall = true
			case SymbolStart:
				cell.Start = true
			case SymbolEnd:
				cell.End = true
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrBadSymbol, ch, r, c)
			}
			row = append(row, cell)
		}
		values[r] = row
	}

	return FromCells(values)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns a copy of the cell at c. Returns ErrOutOfBounds for
// coordinates outside the grid.
func (g *Grid) At(c Coordinate) (Cell, error) {
	if !g.InBounds(c) {
		return Cell{}, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return g.cells[c.Row][c.Col], nil
}

// Endpoints returns the start and end coordinates.
// Returns ErrMissingEndpoint unless the grid holds exactly one of each.
func (g *Grid) Endpoints() (start, end Coordinate, err error) {
	if err = g.Validate(); err != nil {
		return Coordinate{}, Coordinate{}, err
	}
	return g.start, g.end, nil
}

// Validate checks that the grid holds exactly one start and one end cell.
func (g *Grid) Validate() error {
	if g.nStart != 1 || g.nEnd != 1 {
		return fmt.Errorf("%w: found %d start and %d end cells", ErrMissingEndpoint, g.nStart, g.nEnd)
	}
	return nil
}

// IsWalkable reports whether the search may enter c: in bounds and not a
// wall. Start and end cells are always walkable, whatever their wall flag.
// Complexity: O(1).
func (g *Grid) IsWalkable(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	cell := g.cells[c.Row][c.Col]
	if cell.Start || cell.End {
		return true
	}
	return !cell.Wall
}

// NeighborsOf returns the in-bounds orthogonal neighbors of c in
// up, down, left, right order. Walls are not filtered; see IsWalkable.
func (g *Grid) NeighborsOf(c Coordinate) []Coordinate {
	return Neighbors(c, g.rows, g.cols)
}

// Clone returns a deep copy of g that shares no rows with it.
// Complexity: O(R×C) time and memory.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.rows)
	for r := range cells {
		cells[r] = make([]Cell, g.cols)
		copy(cells[r], g.cells[r])
	}
	out := *g
	out.cells = cells

	return &out
}

// WithCell returns a new Grid in which the cell at c has been edited by fn.
// Only row c.Row is copied; all other rows are shared with g, which is left
// untouched. Returns ErrOutOfBounds for coordinates outside the grid.
// Complexity: O(R + C); O(R×C) when fn flips a Start or End flag.
func (g *Grid) WithCell(c Coordinate, fn func(*Cell)) (*Grid, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	cells := make([][]Cell, g.rows)
	copy(cells, g.cells)
	row := make([]Cell, g.cols)
	copy(row, g.cells[c.Row])

	before := row[c.Col]
	fn(&row[c.Col])
	cells[c.Row] = row

	out := *g
	out.cells = cells
	if before.Start != row[c.Col].Start || before.End != row[c.Col].End {
		out.scanEndpoints()
	}

	return &out, nil
}

// WithVisited returns a copy of g with c marked visited.
func (g *Grid) WithVisited(c Coordinate) (*Grid, error) {
	return g.WithCell(c, func(cell *Cell) { cell.Visited = true })
}

// WithWall returns a copy of g with the wall flag of c set to wall.
func (g *Grid) WithWall(c Coordinate, wall bool) (*Grid, error) {
	return g.WithCell(c, func(cell *Cell) { cell.Wall = wall })
}

// WithPath returns a copy of g whose Path flags are exactly the coordinates
// in path; every other Path flag is cleared. Coordinates outside the grid
// are reported as ErrOutOfBounds.
// Complexity: O(R×C + len(path)).
func (g *Grid) WithPath(path []Coordinate) (*Grid, error) {
	out := g.Clone()
	for r := range out.cells {
		for c := range out.cells[r] {
			out.cells[r][c].Path = false
		}
	}
	for _, p := range path {
		if !out.InBounds(p) {
			return nil, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.rows, g.cols)
		}
		out.cells[p.Row][p.Col].Path = true
	}

	return out, nil
}

// Count returns how many cells satisfy pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if pred(cell) {
				n++
			}
		}
	}
	return n
}

// Cells returns a deep copy of the cell matrix, indexed [row][col].
func (g *Grid) Cells() [][]Cell {
	return g.Clone().cells
}

// scanEndpoints refreshes the cached start/end coordinates and counts.
func (g *Grid) scanEndpoints() {
	g.nStart, g.nEnd = 0, 0
	for r, row := range g.cells {
		for c, cell := range row {
			if cell.Start {
				g.nStart++
				g.start = Coordinate{Row: r, Col: c}
			}
			if cell.End {
				g.nEnd++
				g.end = Coordinate{Row: r, Col: c}
			}
		}
	}
}
