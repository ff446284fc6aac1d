package grid

// offsets lists the orthogonal moves in the fixed expansion order
// up, down, left, right. The order shapes tie-breaks, not optimality.
var offsets = [4]Coordinate{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// Neighbors returns the coordinates one unit away from c along exactly one
// axis, filtered to [0,rows)×[0,cols). No diagonal moves are produced.
// Complexity: O(1).
func Neighbors(c Coordinate, rows, cols int) []Coordinate {
	out := make([]Coordinate, 0, len(offsets))
	for _, d := range offsets {
		n := Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
			continue
		}
		out = append(out, n)
	}
	return out
}
