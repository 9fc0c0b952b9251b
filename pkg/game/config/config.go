// Package config holds the generator run settings, read from an optional YAML
// file and overridden by command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"wavecollapse/pkg/engine/input"
)

// Config holds all run configuration
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Tileset TilesetConfig `yaml:"tileset"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`

	// Keys rebinds controls by name, e.g. "add-row: n"
	Keys map[string]string `yaml:"keys"`

	LogLevel string `yaml:"log_level"`
	Locale   string `yaml:"locale"`
}

// GridConfig holds the grid dimensions; 0 means fit the terminal
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TilesetConfig selects the tile catalog. An empty Path uses a built-in set.
type TilesetConfig struct {
	Path    string `yaml:"path"`
	Wangset string `yaml:"wangset"`
	Builtin string `yaml:"builtin"`
}

// RunConfig holds generation settings
type RunConfig struct {
	Seed        int64 `yaml:"seed"` // 0 picks a seed from the clock
	TPS         int   `yaml:"tps"`  // iterations per second in interactive mode
	Rows        int   `yaml:"rows"` // rows to scroll in after the grid completes
	Interactive bool  `yaml:"interactive"`
	GUI         bool  `yaml:"gui"` // open an Ebiten window (needs the ebiten build tag)
}

// OutputConfig holds optional artifacts written after a run
type OutputConfig struct {
	PNG      string `yaml:"png"`
	Dump     string `yaml:"dump"`
	CellSize int    `yaml:"cell_size"` // PNG pixels per cell
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Run.TPS <= 0 {
		c.Run.TPS = 60
	}
	if c.Output.CellSize <= 0 {
		c.Output.CellSize = 16
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Locale == "" {
		c.Locale = "en_GB"
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("grid size %dx%d must not be negative", c.Grid.Width, c.Grid.Height)
	}
	if c.Run.Rows < 0 {
		return fmt.Errorf("rows %d must not be negative", c.Run.Rows)
	}
	if c.Run.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.Run.TPS)
	}
	if c.Output.CellSize <= 0 {
		return fmt.Errorf("cell size %d must be positive", c.Output.CellSize)
	}
	for name := range c.Keys {
		if _, ok := input.ParseKey(name); !ok {
			return fmt.Errorf("keys: unknown control %q", name)
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// Bind registers flags that override the loaded values. Call before fs.Parse.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Grid.Width, "width", c.Grid.Width, "grid width in cells (0 fits the terminal)")
	fs.IntVar(&c.Grid.Height, "height", c.Grid.Height, "grid height in cells (0 fits the terminal)")
	fs.StringVar(&c.Tileset.Path, "tileset", c.Tileset.Path, "Tiled .tsj tileset (empty uses the demo tiles)")
	fs.StringVar(&c.Tileset.Wangset, "wangset", c.Tileset.Wangset, "wang set name (empty uses the last one)")
	fs.StringVar(&c.Tileset.Builtin, "builtin", c.Tileset.Builtin, "built-in tile set when no tileset is given (pipes, corners)")
	fs.Int64Var(&c.Run.Seed, "seed", c.Run.Seed, "random seed (0 uses the clock)")
	fs.IntVar(&c.Run.TPS, "tps", c.Run.TPS, "iterations per second in interactive mode")
	fs.IntVar(&c.Run.Rows, "rows", c.Run.Rows, "rows to scroll in after completion")
	fs.BoolVar(&c.Run.Interactive, "interactive", c.Run.Interactive, "render every step and read keys")
	fs.BoolVar(&c.Run.GUI, "gui", c.Run.GUI, "open a window instead of drawing in the terminal")
	fs.StringVar(&c.Output.PNG, "png", c.Output.PNG, "write the final grid to this PNG file")
	fs.StringVar(&c.Output.Dump, "dump", c.Output.Dump, "write a text dump of the final grid to this file")
	fs.IntVar(&c.Output.CellSize, "cell-size", c.Output.CellSize, "PNG pixels per cell")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Locale, "locale", c.Locale, "locale for status messages")
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
