// Package config loads the gridroute configuration from YAML and checks it.
//
// Precedence: Default() < YAML file < command-line flags (applied by the
// caller before Validate).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridroute/astar"
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/snapshot"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Grid   GridConfig   `yaml:"grid"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig locates the event data.
type SourceConfig struct {
	Shapefile string `yaml:"shapefile" validate:"required"`
}

// GridConfig shapes the grid. A threshold outside [0,1] is not rejected; it
// falls back to the default when the grid is classified.
type GridConfig struct {
	CellSize  float64 `yaml:"cell_size" validate:"gt=0"`
	Threshold float64 `yaml:"threshold"`
}

// SearchConfig tunes the router.
type SearchConfig struct {
	TimeLimit time.Duration `yaml:"time_limit" validate:"gt=0"`
	Heuristic string        `yaml:"heuristic" validate:"oneof=cell raw"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration. Source.Shapefile is left
// empty and must be supplied.
func Default() Config {
	return Config{
		Grid: GridConfig{
			CellSize:  0.002,
			Threshold: density.DefaultThreshold,
		},
		Search: SearchConfig{
			TimeLimit: astar.DefaultTimeLimit,
			Heuristic: astar.HeuristicCell.String(),
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over Default(). Fields missing from the
// file keep their defaults. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Snapshot returns the grid part as a snapshot.Config.
func (c Config) Snapshot() snapshot.Config {
	return snapshot.Config{CellSize: c.Grid.CellSize, Threshold: c.Grid.Threshold}
}

// SearchOptions converts the search section to astar options.
func (c Config) SearchOptions() ([]astar.Option, error) {
	h, err := astar.ParseHeuristic(c.Search.Heuristic)
	if err != nil {
		return nil, err
	}
	return []astar.Option{astar.WithTimeLimit(c.Search.TimeLimit), astar.WithHeuristic(h)}, nil
}

// Logger builds a logrus logger from the log section.
func (c Config) Logger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	l := logrus.New()
	l.SetLevel(lvl)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
