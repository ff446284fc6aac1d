// Package frontier holds the pending coordinates of a grid search.
//
// Two policies implement Frontier:
//
//   - FIFO: insertion order is expansion order. Used by uniform-cost search on
//     unit-weight grids, where it is equivalent to a priority queue and costs
//     O(1) per operation. Keys are accepted but do not reorder entries; the
//     engine reads the live distance of a coordinate when it pops it.
//   - MinKey: a binary min-heap keyed by cost+heuristic (A*). Ties are broken
//     by insertion order, first pushed wins, so runs are deterministic.
//
// Both track membership so callers can skip redundant pushes and keep the
// frontier bounded by the number of cells.
//
// Complexity:
//
//   - FIFO:   Push/PopBest/Contains O(1) amortized.
//   - MinKey: Push/PopBest/Update O(log N), Contains O(1).
//   - Memory: O(N) for N queued coordinates.
package frontier

import (
	"github.com/katalvlaran/gridpath/grid"
)

// Frontier is an ordered collection of coordinates awaiting expansion.
type Frontier interface {
	// Push queues c with priority key. Duplicates are allowed.
	Push(c grid.Coordinate, key int)
	// Update lowers the key of a queued coordinate. Policies that do not
	// order by key ignore it. Returns false if c is not queued.
	Update(c grid.Coordinate, key int) bool
	// PopBest removes and returns the next coordinate under the policy.
	// ok is false when the frontier is empty.
	PopBest() (c grid.Coordinate, ok bool)
	// Contains reports whether c is currently queued.
	Contains(c grid.Coordinate) bool
	// Len returns the number of queued entries, duplicates included.
	Len() int
	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool
}
