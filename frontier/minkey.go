package frontier

import (
	"container/heap"

	"github.com/katalvlaran/gridpath/grid"
)

// MinKey is a lowest-key-first frontier backed by container/heap.
// A coordinate pushed while already queued adds a duplicate entry; Update
// re-keys the most recently pushed entry for c in place.
type MinKey struct {
	pq     entryPQ
	seq    uint64
	queued map[grid.Coordinate]*entry
	counts map[grid.Coordinate]int
}

// NewMinKey returns an empty MinKey sized for capacity entries.
func NewMinKey(capacity int) *MinKey {
	m := &MinKey{
		pq:     make(entryPQ, 0, capacity),
		queued: make(map[grid.Coordinate]*entry, capacity),
		counts: make(map[grid.Coordinate]int, capacity),
	}
	heap.Init(&m.pq)
	return m
}

// Push queues c with the given key.
func (m *MinKey) Push(c grid.Coordinate, key int) {
	e := &entry{coord: c, key: key, seq: m.seq}
	m.seq++
	heap.Push(&m.pq, e)
	m.queued[c] = e
	m.counts[c]++
}

// Update lowers the key of c if it is queued and key is smaller.
func (m *MinKey) Update(c grid.Coordinate, key int) bool {
	e, ok := m.queued[c]
	if !ok {
		return false
	}
	if key < e.key {
		e.key = key
		heap.Fix(&m.pq, e.index)
	}
	return true
}

// PopBest removes the entry with the smallest key, earliest push first on ties.
func (m *MinKey) PopBest() (grid.Coordinate, bool) {
	if m.pq.Len() == 0 {
		return grid.Coordinate{}, false
	}
	e := heap.Pop(&m.pq).(*entry)
	if n := m.counts[e.coord]; n > 1 {
		m.counts[e.coord] = n - 1
		if m.queued[e.coord] == e {
			m.queued[e.coord] = m.newestOf(e.coord)
		}
	} else {
		delete(m.counts, e.coord)
		delete(m.queued, e.coord)
	}
	return e.coord, true
}

// Contains reports whether c is queued.
func (m *MinKey) Contains(c grid.Coordinate) bool { return m.counts[c] > 0 }

// Len returns the number of queued entries.
func (m *MinKey) Len() int { return m.pq.Len() }

// IsEmpty reports whether no entries remain.
func (m *MinKey) IsEmpty() bool { return m.pq.Len() == 0 }

// newestOf scans for the latest remaining entry of c. Only reached when
// duplicates of one coordinate are queued.
func (m *MinKey) newestOf(c grid.Coordinate) *entry {
	var best *entry
	for _, e := range m.pq {
		if e.coord == c && (best == nil || e.seq > best.seq) {
			best = e
		}
	}
	return best
}

// entry is a queued coordinate with its priority key and push sequence.
type entry struct {
	coord grid.Coordinate
	key   int
	seq   uint64 // tie-break: lower sequence pops first
	index int    // position in the heap, maintained by Swap
}

// entryPQ is a min-heap of *entry ordered by (key, seq).
type entryPQ []*entry

// Len returns the number of items in the heap.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders by key, then by push order.
func (pq entryPQ) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements and keeps their indices current.
func (pq entryPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x, which must be an *entry. Called by heap.Push.
func (pq *entryPQ) Push(x interface{}) {
	e := x.(*entry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}

// Pop removes the last element. Called by heap.Pop.
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]

	return e
}
