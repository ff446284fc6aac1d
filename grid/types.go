package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrMissingEndpoint indicates the grid does not hold exactly one start and one end cell.
	ErrMissingEndpoint = errors.New("grid: grid must contain exactly one start and one end cell")
	// ErrOutOfBounds indicates a coordinate outside [0,Rows)×[0,Cols).
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrBadSymbol indicates an unknown character in a text board.
	ErrBadSymbol = errors.New("grid: unknown board symbol")
)

// Board symbols understood by Parse and produced by String.
const (
	SymbolOpen    = '.'
	SymbolWall    = '#'
	SymbolStart   = 'S'
	SymbolEnd     = 'E'
	SymbolVisited = 'o'
	SymbolPath    = '*'
)

// Coordinate identifies a cell by row and column. It is compared and hashed
// by value and is the key of every per-search map.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the coordinate as "(row,col)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns |Δrow| + |Δcol| between c and o.
func (c Coordinate) Manhattan(o Coordinate) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cell holds the state flags of a single grid cell.
// A cell carries both Start and End when the search starts on its goal. Wall on an endpoint is
// tolerated and ignored by IsWalkable.
type Cell struct {
	Wall    bool `json:"wall,omitempty"`
	Start   bool `json:"start,omitempty"`
	End     bool `json:"end,omitempty"`
	Visited bool `json:"visited,omitempty"`
	Path    bool `json:"path,omitempty"`
}

// Grid is an immutable rectangular board of cells.
// Rows and columns are fixed at construction; cells[r][c] holds the flags of (r,c).
// The endpoint fields cache the last start/end seen by a scan and how many
// of each the grid holds; they are refreshed whenever an endpoint flag changes.
type Grid struct {
	rows, cols   int
	cells        [][]Cell
	start, end   Coordinate
	nStart, nEnd int
}
