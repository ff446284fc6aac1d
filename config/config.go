// Package config loads run settings for the gridpath command.
//
// Settings come from, in increasing precedence: built-in defaults, a YAML
// file, an optional .env file next to it and GRIDPATH_* environment
// variables (nested keys use '_', e.g. GRIDPATH_LOG_LEVEL).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRIDPATH"

// ErrInvalidConfig indicates a setting that cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every setting of a run.
type Config struct {
	// Board is the path of a text board. Ignored when Rows is set.
	Board string `mapstructure:"board"`
	// Rows is an inline text board.
	Rows []string `mapstructure:"rows"`
	// Strategy is "dijkstra" or "astar" (see search.ParseStrategy).
	Strategy string `mapstructure:"strategy"`
	// StepInterval is the delay between animated steps.
	StepInterval time.Duration `mapstructure:"step_interval"`
	// MaxSteps caps a run; 0 means unlimited.
	MaxSteps int `mapstructure:"max_steps"`
	// MaxRuntime caps a run; 0 means unlimited.
	MaxRuntime time.Duration `mapstructure:"max_runtime"`
	// Listen is the viewer server address.
	Listen string `mapstructure:"listen"`
	Log    Log    `mapstructure:"log"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strategy:     search.Heuristic.String(),
		StepInterval: 20 * time.Millisecond,
		Listen:       ":8080",
		Log:          Log{Level: "info", Format: "text"},
	}
}

// Load reads settings from the YAML file at path. An empty path loads
// defaults and environment overrides only. A .env file in the directory of
// path (or the working directory) is applied when present; variables that
// are already set win over it.
func Load(path string) (Config, error) {
	envFile := ".env"
	if path != "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	vp := viper.New()
	def := Default()
	vp.SetDefault("board", def.Board)
	vp.SetDefault("strategy", def.Strategy)
	vp.SetDefault("step_interval", def.StepInterval)
	vp.SetDefault("max_steps", def.MaxSteps)
	vp.SetDefault("max_runtime", def.MaxRuntime)
	vp.SetDefault("listen", def.Listen)
	vp.SetDefault("log.level", def.Log.Level)
	vp.SetDefault("log.format", def.Log.Format)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Board != "" && path != "" && !filepath.IsAbs(cfg.Board) {
		cfg.Board = filepath.Join(filepath.Dir(path), cfg.Board)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting that has a fixed domain.
func (c Config) Validate() error {
	if _, err := search.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.StepInterval < 0:
		return fmt.Errorf("%w: step_interval %v is negative", ErrInvalidConfig, c.StepInterval)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: max_steps %d is negative", ErrInvalidConfig, c.MaxSteps)
	case c.MaxRuntime < 0:
		return fmt.Errorf("%w: max_runtime %v is negative", ErrInvalidConfig, c.MaxRuntime)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// SearchStrategy returns the parsed Strategy.
func (c Config) SearchStrategy() (search.Strategy, error) {
	s, err := search.ParseStrategy(c.Strategy)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return s, nil
}

// Grid loads the configured board: Rows when set, the Board file otherwise.
func (c Config) Grid() (*grid.Grid, error) {
	switch {
	case len(c.Rows) > 0:
		return grid.Parse(c.Rows)
	case c.Board != "":
		return grid.ReadFile(c.Board)
	default:
		return nil, fmt.Errorf("%w: neither board nor rows set", ErrInvalidConfig)
	}
}

// fileView is the YAML shape of Config with durations spelled as text.
type fileView struct {
	Board        string   `yaml:"board,omitempty"`
	Rows         []string `yaml:"rows,omitempty"`
	Strategy     string   `yaml:"strategy"`
	StepInterval string   `yaml:"step_interval"`
	MaxSteps     int      `yaml:"max_steps"`
	MaxRuntime   string   `yaml:"max_runtime"`
	Listen       string   `yaml:"listen"`
	Log          struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Marshal renders the effective settings as YAML; Load accepts the result.
func (c Config) Marshal() ([]byte, error) {
	v := fileView{
		Board:        c.Board,
		Rows:         c.Rows,
		Strategy:     c.Strategy,
		StepInterval: c.StepInterval.String(),
		MaxSteps:     c.MaxSteps,
		MaxRuntime:   c.MaxRuntime.String(),
		Listen:       c.Listen,
	}
	v.Log.Level = c.Log.Level
	v.Log.Format = c.Log.Format
	return yaml.Marshal(v)
}

// NewLogger builds a slog logger writing to w.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, l.Level)
	}
	return level, nil
}
