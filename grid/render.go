package grid

import "strings"

// String renders the grid as text, one line per row, using the board
// alphabet. Endpoints win over walls, path over visited.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r, line := range g.Lines() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// Lines renders the grid as one string per row; Parse accepts the result.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for r, row := range g.cells {
		for c, cell := range row {
			buf[c] = symbol(cell)
		}
		lines[r] = string(buf)
	}
	return lines
}

func symbol(cell Cell) byte {
	switch {
	case cell.Start:
		return SymbolStart
	case cell.End:
		return SymbolEnd
	case cell.Wall:
		return SymbolWall
	case cell.Path:
		return SymbolPath
	case cell.Visited:
		return SymbolVisited
	default:
		return SymbolOpen
	}
}
