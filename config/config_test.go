package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/search"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gridpath.yaml", `
board: boards/maze.txt
strategy: dijkstra
step_interval: 5ms
max_steps: 400
max_runtime: 2s
listen: 127.0.0.1:9000
log:
  level: debug
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "boards", "maze.txt"), cfg.Board)
	assert.Equal(t, "dijkstra", cfg.Strategy)
	assert.Equal(t, 5*time.Millisecond, cfg.StepInterval)
	assert.Equal(t, 400, cfg.MaxSteps)
	assert.Equal(t, 2*time.Second, cfg.MaxRuntime)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, config.Log{Level: "debug", Format: "json"}, cfg.Log)

	s, err := cfg.SearchStrategy()
	require.NoError(t, err)
	assert.Equal(t, search.UniformCost, s)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gridpath.yaml", "strategy: dijkstra\nmax_steps: 10\n")
	t.Setenv("GRIDPATH_STRATEGY", "astar")
	t.Setenv("GRIDPATH_LOG_LEVEL", "warn")
	t.Setenv("GRIDPATH_STEP_INTERVAL", "1s")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "astar", cfg.Strategy)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.StepInterval)
	assert.Equal(t, 10, cfg.MaxSteps)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gridpath.yaml", "strategy: dijkstra\n")
	writeFile(t, dir, ".env", "GRIDPATH_MAX_STEPS=77\nGRIDPATH_LISTEN=:7000\n")
	// godotenv sets process variables; register them so they are restored.
	t.Setenv("GRIDPATH_MAX_STEPS", "")
	os.Unsetenv("GRIDPATH_MAX_STEPS")
	t.Setenv("GRIDPATH_LISTEN", ":7001")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.MaxSteps)
	// variables already set win over .env
	assert.Equal(t, ":7001", cfg.Listen)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"UnknownStrategy", "strategy: bfs\n"},
		{"NegativeInterval", "step_interval: -1s\n"},
		{"NegativeSteps", "max_steps: -3\n"},
		{"BadLevel", "log:\n  level: chatty\n"},
		{"BadFormat", "log:\n  format: xml\n"},
		{"BadDuration", "max_runtime: soon\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name+".yaml", tc.body)
			_, err := config.Load(path)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Grid(t *testing.T) {
	dir := t.TempDir()
	board := writeFile(t, dir, "board.txt", "S.#\n..E\n")

	cfg := config.Default()
	_, err := cfg.Grid()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg.Board = board
	g, err := cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, []string{"S.#", "..E"}, g.Lines())

	cfg.Rows = []string{"SE"}
	g, err = cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Cols())
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Rows = []string{"S.", ".E"}
	cfg.MaxRuntime = 3 * time.Second

	raw, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "strategy: astar")
	assert.Contains(t, string(raw), "max_runtime: 3s")

	path := writeFile(t, t.TempDir(), "out.yaml", string(raw))
	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLog_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.Log{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, err = config.Log{Level: "DEBUG", Format: "text"}.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")

	_, err = config.Log{Level: "loud"}.NewLogger(&buf)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
