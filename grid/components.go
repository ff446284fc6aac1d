package grid

// Regions finds all contiguous regions of walkable cells (see IsWalkable)
// under orthogonal connectivity. Returns a slice of regions; each region
// lists its coordinates in breadth-first discovery order, and regions are
// ordered by their first cell in row-major order.
//
// Time:   O(R·C·4).
// Memory: O(R·C) for seen flags and output.
func (g *Grid) Regions() [][]Coordinate {
	seen := make([][]bool, g.rows)
	for r := range seen {
		seen[r] = make([]bool, g.cols)
	}
	var regions [][]Coordinate

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			origin := Coordinate{Row: r, Col: c}
			if seen[r][c] || !g.IsWalkable(origin) {
				continue
			}
			seen[r][c] = true
			queue := []Coordinate{origin}
			for qi := 0; qi < len(queue); qi++ {
				for _, n := range g.NeighborsOf(queue[qi]) {
					if seen[n.Row][n.Col] || !g.IsWalkable(n) {
						continue
					}
					seen[n.Row][n.Col] = true
					queue = append(queue, n)
				}
			}
			regions = append(regions, queue)
		}
	}
	return regions
}

// Reachable reports whether b can be reached from a by orthogonal moves
// through walkable cells. Out-of-bounds coordinates are never reachable.
// Complexity: O(R·C) worst case.
func (g *Grid) Reachable(a, b Coordinate) bool {
	if !g.IsWalkable(a) || !g.IsWalkable(b) {
		return false
	}
	if a == b {
		return true
	}
	seen := map[Coordinate]bool{a: true}
	queue := []Coordinate{a}
	for qi := 0; qi < len(queue); qi++ {
		for _, n := range g.NeighborsOf(queue[qi]) {
			if seen[n] || !g.IsWalkable(n) {
				continue
			}
			if n == b {
				return true
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return false
}
