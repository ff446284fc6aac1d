// Package search finds shortest paths on a grid.Grid with one of two
// strategies and exposes the search one expansion at a time.
//
// Overview:
//
//   - UniformCost (Dijkstra) expands coordinates in order of distance from the
//     start. On a unit-weight grid this is breadth-first order, so the frontier
//     is a FIFO queue.
//   - Heuristic (A*) expands the coordinate with the lowest cost + Manhattan
//     distance to the goal. The heuristic is admissible and consistent for
//     4-directional unit moves, so the path stays optimal while fewer cells are
//     expanded.
//
// Execution model:
//
//	An Engine is a small state machine:
//
//	    Initialized ──Step──▶ Stepping ──Step──▶ PathFound | Exhausted
//
//	Each call to Step pops exactly one coordinate, marks it visited in a new
//	grid snapshot, reports that snapshot through OnStep and relaxes its
//	neighbours. The caller decides when (and whether) to call Step again, which
//	makes the engine suitable for animation drivers and debuggers. Search wraps
//	the loop for callers that just want the result.
//
// Conventions:
//
//   - Walls on the start or end cell are ignored.
//   - The start's own pop and the goal pop are not counted in NodesVisited,
//     and neither cell is marked Visited or Path.
//   - PathLength is the number of moves from start to end (path cells from the
//     start inclusive to the goal exclusive); it equals the Manhattan distance
//     on open grids and is 0 when start == end or when no path exists.
//     PathCells counts only the cells flagged Path, endpoints excluded.
//   - Snapshots are copy-on-write: a grid passed to OnStep never changes
//     afterwards.
//
// Complexity:
//
//   - Time:  O(R·C) per search for UniformCost, O(R·C·log(R·C)) for Heuristic.
//   - Space: O(R·C) for distance, predecessor and frontier state.
//   - Step:  O(R + C) for the snapshot copy plus O(log N) frontier work.
//
// Errors (sentinel):
//
//   - ErrNilGrid:         grid pointer is nil.
//   - ErrInvalidBounds:   start or end lies outside the grid.
//   - ErrMissingEndpoint: grid does not hold exactly one start and one end
//     cell, or they do not match the given coordinates.
//   - ErrUnknownStrategy: strategy value is not UniformCost or Heuristic.
//   - ErrOptionViolation: an Option received an invalid argument.
//   - ErrFinished:        Step called after a terminal state.
//
// An unreachable goal is not an error: the search ends in Exhausted and the
// Result reports Found == false.
package search
