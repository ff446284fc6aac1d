package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBoard(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: gridpath")

	code, _, stderr = runCLI("fly")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "fly"`)

	code, _, _ = runCLI("run", "-bogus")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("run", "extra")
	assert.Equal(t, exitUsage, code)

	code, stdout, _ := runCLI("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "commands:")
}

func TestRun_QuietSearch(t *testing.T) {
	board := writeBoard(t, "S..\n...\n..E\n")
	code, stdout, stderr := runCLI("run", "-quiet", "-board", board, "-strategy", "dijkstra")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "Soo\n*oo\n**E\n")
	assert.Contains(t, stdout, "strategy=dijkstra state=path_found found=true path_length=4 path_cells=3 nodes_visited=7")
}

func TestRun_AnimatesFrames(t *testing.T) {
	board := writeBoard(t, "S.E\n")
	code, stdout, stderr := runCLI("run", "-board", board, "-interval", "1ms")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, clearScreen+"SoE\nstep 1  stepping  visited 1\n")
	assert.Contains(t, stdout, "S*E\nstep 2  path_found  visited 1\n")
	assert.Contains(t, stdout, "strategy=astar")
}

func TestRun_UnreachableWarns(t *testing.T) {
	board := writeBoard(t, "S#E\n")
	code, stdout, stderr := runCLI("run", "-quiet", "-board", board)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "end is not reachable")
	assert.Contains(t, stdout, "state=exhausted found=false path_length=0")
}

func TestRun_Failures(t *testing.T) {
	code, _, stderr := runCLI("run", "-board", filepath.Join(t.TempDir(), "none.txt"))
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "open board")

	code, _, stderr = runCLI("run", "-board", writeBoard(t, "S..\n"))
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "exactly one start")

	code, _, stderr = runCLI("run", "-board", writeBoard(t, "SE\n"), "-strategy", "bfs")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "unknown strategy")

	board := writeBoard(t, "S.........\n.........E\n")
	code, stdout, stderr := runCLI("run", "-quiet", "-board", board, "-max-steps", "2")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "step limit")
	assert.Contains(t, stdout, "S.........\no........E")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: dijkstra\nmax_steps: 9\n"), 0o600))

	code, stdout, stderr := runCLI("config", "-config", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "strategy: dijkstra")
	assert.Contains(t, stdout, "max_steps: 9")
}

func TestGenCommand(t *testing.T) {
	code, stdout, stderr := runCLI("gen", "-rows", "4", "-cols", "6", "-walls", "0.3", "-seed", "11")
	require.Equal(t, exitOK, code, stderr)
	board := writeBoard(t, stdout)

	code, again, _ := runCLI("gen", "-rows", "4", "-cols", "6", "-walls", "0.3", "-seed", "11")
	require.Equal(t, exitOK, code)
	assert.Equal(t, stdout, again)

	code, out, stderr := runCLI("run", "-quiet", "-board", board)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, out, "found=true")

	code, _, stderr = runCLI("gen", "-rows", "3", "-cols", "3", "-walls", "1")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "no solvable")

	code, _, _ = runCLI("gen", "-walls", "2")
	assert.Equal(t, exitFail, code)
}
