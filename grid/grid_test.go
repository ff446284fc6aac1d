package grid_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestParse_Errors verifies that Parse rejects empty, ragged or unknown input.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		err   error
	}{
		{"EmptyRows", []string{}, grid.ErrEmptyGrid},
		{"EmptyCols", []string{""}, grid.ErrEmptyGrid},
		{"NonRectangular", []string{"S..", "E."}, grid.ErrNonRectangular},
		{"BadSymbol", []string{"S?E"}, grid.ErrBadSymbol},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Parse(tc.lines)
			if !errors.Is(err, tc.err) {
				t.Errorf("Parse(%q) error = %v; want %v", tc.lines, err, tc.err)
			}
		})
	}
}

func TestNew_Dimensions(t *testing.T) {
	_, err := grid.New(0, 3)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	g, err := grid.New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, "...\n...", g.String())
	assert.ErrorIs(t, g.Validate(), grid.ErrMissingEndpoint)
}

// TestValidate_Endpoints checks the exactly-one-start, exactly-one-end rule.
func TestValidate_Endpoints(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		ok    bool
	}{
		{"Valid", []string{"S.E"}, true},
		{"NoStart", []string{"..E"}, false},
		{"NoEnd", []string{"S.."}, false},
		{"TwoStarts", []string{"S.S", "..E"}, false},
		{"TwoEnds", []string{"S.E", "..E"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := grid.Parse(tc.lines)
			require.NoError(t, err)
			err = g.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, grid.ErrMissingEndpoint)
		})
	}
}

func TestEndpoints(t *testing.T) {
	g, err := grid.Parse([]string{
		"...",
		".S.",
		"..E",
	})
	require.NoError(t, err)

	start, end, err := g.Endpoints()
	require.NoError(t, err)
	assert.Equal(t, grid.Coordinate{Row: 1, Col: 1}, start)
	assert.Equal(t, grid.Coordinate{Row: 2, Col: 2}, end)
}

func TestInBoundsAndAt(t *testing.T) {
	g, err := grid.Parse([]string{"S#", ".E"})
	require.NoError(t, err)

	valid := []grid.Coordinate{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}}
	for _, c := range valid {
		assert.True(t, g.InBounds(c), "InBounds(%v)", c)
	}
	invalid := []grid.Coordinate{{Row: -1, Col: 0}, {Row: 2, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: -1}}
	for _, c := range invalid {
		assert.False(t, g.InBounds(c), "InBounds(%v)", c)
		_, err := g.At(c)
		assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	}

	cell, err := g.At(grid.Coordinate{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.True(t, cell.Wall)
}

//----------------------------------------------------------------------------//
// Walkability and neighbors
//----------------------------------------------------------------------------//

// TestIsWalkable_EndpointsIgnoreWalls covers the editing artifact where an
// endpoint also carries a wall flag.
func TestIsWalkable_EndpointsIgnoreWalls(t *testing.T) {
	g, err := grid.FromCells([][]grid.Cell{
		{{Start: true, Wall: true}, {Wall: true}},
		{{}, {End: true, Wall: true}},
	})
	require.NoError(t, err)

	assert.True(t, g.IsWalkable(grid.Coordinate{Row: 0, Col: 0}))
	assert.True(t, g.IsWalkable(grid.Coordinate{Row: 1, Col: 1}))
	assert.False(t, g.IsWalkable(grid.Coordinate{Row: 0, Col: 1}))
	assert.True(t, g.IsWalkable(grid.Coordinate{Row: 1, Col: 0}))
	assert.False(t, g.IsWalkable(grid.Coordinate{Row: 5, Col: 0}))
}

func TestNeighbors_OrderAndBounds(t *testing.T) {
	cases := []struct {
		name string
		c    grid.Coordinate
		want []grid.Coordinate
	}{
		{"Center", grid.Coordinate{Row: 1, Col: 1}, []grid.Coordinate{
			{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2},
		}},
		{"TopLeft", grid.Coordinate{Row: 0, Col: 0}, []grid.Coordinate{
			{Row: 1, Col: 0}, {Row: 0, Col: 1},
		}},
		{"BottomRight", grid.Coordinate{Row: 2, Col: 2}, []grid.Coordinate{
			{Row: 1, Col: 2}, {Row: 2, Col: 1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, grid.Neighbors(tc.c, 3, 3))
		})
	}

	assert.Empty(t, grid.Neighbors(grid.Coordinate{}, 1, 1))
}

func TestManhattan(t *testing.T) {
	a := grid.Coordinate{Row: 0, Col: 0}
	b := grid.Coordinate{Row: 2, Col: 3}
	assert.Equal(t, 5, a.Manhattan(b))
	assert.Equal(t, 5, b.Manhattan(a))
	assert.Equal(t, 0, a.Manhattan(a))
}

//----------------------------------------------------------------------------//
// Copy-on-write
//----------------------------------------------------------------------------//

// TestWithCell_DoesNotAlias ensures an edit never leaks into the parent grid
// or into earlier snapshots.
func TestWithCell_DoesNotAlias(t *testing.T) {
	g0, err := grid.Parse([]string{
		"S..",
		"...",
		"..E",
	})
	require.NoError(t, err)

	g1, err := g0.WithVisited(grid.Coordinate{Row: 1, Col: 1})
	require.NoError(t, err)
	g2, err := g1.WithVisited(grid.Coordinate{Row: 1, Col: 2})
	require.NoError(t, err)

	assert.Equal(t, "S..\n...\n..E", g0.String())
	assert.Equal(t, "S..\n.o.\n..E", g1.String())
	assert.Equal(t, "S..\n.oo\n..E", g2.String())

	_, err = g0.WithVisited(grid.Coordinate{Row: 3, Col: 0})
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestWithCell_MovingEndpointRescans(t *testing.T) {
	g, err := grid.Parse([]string{"S.E"})
	require.NoError(t, err)

	g, err = g.WithCell(grid.Coordinate{Row: 0, Col: 2}, func(c *grid.Cell) { c.End = false })
	require.NoError(t, err)
	assert.ErrorIs(t, g.Validate(), grid.ErrMissingEndpoint)

	g, err = g.WithCell(grid.Coordinate{Row: 0, Col: 1}, func(c *grid.Cell) { c.End = true })
	require.NoError(t, err)
	_, end, err := g.Endpoints()
	require.NoError(t, err)
	assert.Equal(t, grid.Coordinate{Row: 0, Col: 1}, end)
}

func TestWithPath_ReplacesPreviousPath(t *testing.T) {
	g, err := grid.Parse([]string{"S..", "..E"})
	require.NoError(t, err)

	g1, err := g.WithPath([]grid.Coordinate{{Row: 0, Col: 1}, {Row: 0, Col: 2}})
	require.NoError(t, err)
	g2, err := g1.WithPath([]grid.Coordinate{{Row: 1, Col: 0}})
	require.NoError(t, err)

	assert.Equal(t, "S**\n..E", g1.String())
	assert.Equal(t, "S..\n*.E", g2.String())
	assert.Equal(t, 1, g2.Count(func(c grid.Cell) bool { return c.Path }))
}

func TestClone_Independent(t *testing.T) {
	g, err := grid.Parse([]string{"S#E"})
	require.NoError(t, err)
	clone := g.Clone()
	cells := clone.Cells()
	cells[0][1].Wall = false

	assert.Equal(t, g.String(), clone.String())
	assert.Equal(t, "S#E", clone.String())
}

func TestLines_RoundTrip(t *testing.T) {
	lines := []string{
		"S.#.",
		".o#*",
		"...E",
	}
	g, err := grid.Parse(lines)
	require.NoError(t, err)

	again, err := grid.Parse(g.Lines())
	require.NoError(t, err)
	assert.Equal(t, []string{"S.#.", "..#.", "...E"}, again.Lines())
}

func TestRead(t *testing.T) {
	board := "S.#\r\n\n..E  \n\n"
	g, err := grid.Read(strings.NewReader(board))
	require.NoError(t, err)
	assert.Equal(t, []string{"S.#", "..E"}, g.Lines())

	_, err = grid.Read(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.Read(strings.NewReader("S.\n..E\n"))
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte("S..\n.#.\n..E\n"), 0o600))

	g, err := grid.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, g.Validate())
	assert.Equal(t, 3, g.Rows())

	_, err = grid.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("S?E\n"), 0o600))
	_, err = grid.ReadFile(bad)
	assert.ErrorIs(t, err, grid.ErrBadSymbol)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestRandom(t *testing.T) {
	_, err := grid.Random(1, 1, 0, nil)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.Random(3, 3, 1.5, nil)
	assert.ErrorIs(t, err, grid.ErrInvalidProbability)
	_, err = grid.Random(3, 3, 0.3, nil)
	assert.ErrorIs(t, err, grid.ErrNeedRandSource)

	open, err := grid.Random(2, 3, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"S..", "..E"}, open.Lines())

	full, err := grid.Random(2, 3, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"S##", "##E"}, full.Lines())

	a, err := grid.Random(20, 30, 0.3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := grid.Random(20, 30, 0.3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.NoError(t, a.Validate())

	walls := a.Count(func(c grid.Cell) bool { return c.Wall })
	assert.InDelta(t, 0.3*598, walls, 60)
}
