// Package grid models the 2D board searched by the engine: a fixed-size,
// rectangular array of cells that are open or walled, with exactly one start
// and one end cell.
//
// What:
//
//   - Grid wraps a rectangular [][]Cell; its shape never changes after construction.
//   - Cells carry Wall/Start/End/Visited/Path flags.
//   - Coordinates are (Row, Col) value pairs, usable as map keys.
//   - Neighbors yields the in-bounds orthogonal neighbors of a coordinate.
//   - Regions groups walkable cells into connected components (reachability pre-check).
//
// Copy-on-write:
//
//	A Grid is never mutated in place. WithCell returns a new Grid that shares
//	every untouched row with its parent and copies only the edited row, so a
//	snapshot handed to a caller stays valid while the search keeps going.
//
// Walkability:
//
//	IsWalkable reports !Wall, except that the start and end cells are always
//	walkable. Board editors may leave a wall flag on an endpoint; the search
//	never becomes unsolvable because of it.
//
// Text boards:
//
//	Parse reads rows of '.', '#', 'S' and 'E' (and the rendering marks 'o' and
//	'*' as open cells). String renders the same alphabet back. Read and
//	ReadFile load boards from text streams and files; Random samples a
//	seeded board with a given wall probability.
//
// Complexity:
//
//   - Parse, Clone, Validate: O(R×C) time and memory.
//   - WithCell: O(R + C) time and memory (row header slice + one row).
//   - Neighbors, IsWalkable, At: O(1).
//   - Regions: O(R×C) time and memory.
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrMissingEndpoint: not exactly one start and one end cell.
//   - ErrOutOfBounds: coordinate outside the grid.
//   - ErrBadSymbol: unknown character in a text board.
//   - ErrInvalidProbability, ErrNeedRandSource: bad Random arguments.
package grid
