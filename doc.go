// Package gridpath is a stepwise shortest-path engine for 2D boards, with
// Dijkstra and A* behind one cooperative Step contract.
//
// What is in the box?
//
//	• Grid model: immutable, copy-on-write snapshots of open/wall cells
//	• Frontier policies: FIFO (uniform cost) and a keyed binary heap (A*)
//	• Search engine: one pop-and-expand unit per Step, snapshot after each visit
//	• Driver: cadence, step and runtime ceilings around an engine
//	• Viewer: websocket server streaming frames to a browser
//
// Under the hood everything is organized in small packages:
//
//	grid/     - Coordinate, Cell, Grid, text boards, regions
//	frontier/ - FIFO and MinKey frontier policies
//	search/   - Engine, Search, Result and Metrics
//	driver/   - Run, Frame and the ceilings ErrStepLimit / ErrDeadline
//	config/   - YAML + environment settings for the command
//	server/   - REST + websocket live viewer
//	cmd/      - the gridpath command
//
// Quick ASCII example (uniform cost on a 3×3 board):
//
//	S..      Soo
//	...  →   *oo     path_length=4  nodes_visited=7
//	..E      **E
//
//	go run ./cmd/gridpath run -board boards/maze.txt -strategy astar
package gridpath
