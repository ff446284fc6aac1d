package frontier

import "github.com/katalvlaran/gridpath/grid"

// FIFO is a first-in, first-out frontier with membership counts.
type FIFO struct {
	queue  []grid.Coordinate
	head   int
	queued map[grid.Coordinate]int
}

// NewFIFO returns an empty FIFO sized for capacity entries.
func NewFIFO(capacity int) *FIFO {
	return &FIFO{
		queue:  make([]grid.Coordinate, 0, capacity),
		queued: make(map[grid.Coordinate]int, capacity),
	}
}

// Push appends c. The key is ignored.
func (f *FIFO) Push(c grid.Coordinate, _ int) {
	f.queue = append(f.queue, c)
	f.queued[c]++
}

// Update leaves the position of c unchanged.
func (f *FIFO) Update(c grid.Coordinate, _ int) bool {
	return f.queued[c] > 0
}

// PopBest removes the oldest entry.
func (f *FIFO) PopBest() (grid.Coordinate, bool) {
	if f.IsEmpty() {
		return grid.Coordinate{}, false
	}
	c := f.queue[f.head]
	f.head++
	// compact once the consumed prefix dominates the backing array
	if f.head > len(f.queue)/2 && f.head > 32 {
		f.queue = append(f.queue[:0], f.queue[f.head:]...)
		f.head = 0
	}
	if n := f.queued[c]; n > 1 {
		f.queued[c] = n - 1
	} else {
		delete(f.queued, c)
	}
	return c, true
}

// Contains reports whether c is queued.
func (f *FIFO) Contains(c grid.Coordinate) bool { return f.queued[c] > 0 }

// Len returns the number of queued entries.
func (f *FIFO) Len() int { return len(f.queue) - f.head }

// IsEmpty reports whether the queue is drained.
func (f *FIFO) IsEmpty() bool { return f.Len() == 0 }
