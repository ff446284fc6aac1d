package search

import "github.com/katalvlaran/gridpath/grid"

// reconstruct walks prev backwards from end to start and returns a snapshot
// with Path set on every cell strictly between them, plus the route from
// start to end inclusive.
//
// The walk stops early when a coordinate has no predecessor; the route is
// then nil and only the cells walked so far are marked. PathFound is only
// reported after end was popped, so that branch is defensive.
// The walk is bounded by len(prev) hops.
func reconstruct(g *grid.Grid, prev map[grid.Coordinate]grid.Coordinate, start, end grid.Coordinate) (*grid.Grid, []grid.Coordinate) {
	if start == end {
		marked, _ := g.WithPath(nil)
		return marked, []grid.Coordinate{start}
	}

	var between []grid.Coordinate
	reached := false
	cur := end
	for hops := 0; hops <= len(prev); hops++ {
		p, ok := prev[cur]
		if !ok {
			break
		}
		if p == start {
			reached = true
			break
		}
		between = append(between, p)
		cur = p
	}

	// reverse to get start → end order
	for i, j := 0, len(between)-1; i < j; i, j = i+1, j-1 {
		between[i], between[j] = between[j], between[i]
	}
	// every coordinate came from the grid's own neighbour generator
	marked, _ := g.WithPath(between)

	if !reached {
		return marked, nil
	}
	route := make([]grid.Coordinate, 0, len(between)+2)
	route = append(route, start)
	route = append(route, between...)
	route = append(route, end)

	return marked, route
}
