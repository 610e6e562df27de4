package engine

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hailam/fourplay/internal/board"
)

var ErrInvalidConfig = errors.New("invalid engine config")

// maxPlies is the longest possible game and so the deepest useful search.
const maxPlies = board.Rows * board.Cols

// Config selects and bounds an engine.
type Config struct {
	// Engine is "minimax" or "mcts".
	Engine Kind `yaml:"engine"`

	// MaxDepth is the deepest minimax iteration.
	MaxDepth int `yaml:"max_depth"`

	// Iterations caps MCTS iterations. Zero means no cap.
	Iterations int `yaml:"iterations"`

	// TimeLimit caps MCTS wall time, e.g. "8s". Zero means no limit.
	TimeLimit time.Duration `yaml:"time_limit"`
}

// DefaultConfig returns minimax at depth 8, and MCTS bounds of 5000
// iterations or 8 seconds.
func DefaultConfig() Config {
	return Config{
		Engine:     KindMinimax,
		MaxDepth:   DefaultMaxDepth,
		Iterations: DefaultIterations,
		TimeLimit:  DefaultTimeLimit,
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path (if
// path is non-empty and exists) and then FOURPLAY_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if cfg, err = ParseConfig(data); err != nil {
				return cfg, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults. Fields missing from data
// keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FOURPLAY_ENGINE"); v != "" {
		k, err := ParseKind(v)
		if err != nil {
			return fmt.Errorf("FOURPLAY_ENGINE: %w", err)
		}
		c.Engine = k
	}
	if v := os.Getenv("FOURPLAY_MAX_DEPTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOURPLAY_MAX_DEPTH: %w", err)
		}
		c.MaxDepth = i
	}
	if v := os.Getenv("FOURPLAY_ITERATIONS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOURPLAY_ITERATIONS: %w", err)
		}
		c.Iterations = i
	}
	if v := os.Getenv("FOURPLAY_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FOURPLAY_TIME_LIMIT: %w", err)
		}
		c.TimeLimit = d
	}
	return nil
}

// Validate checks the bounds. MCTS needs at least one of Iterations and
// TimeLimit so that a search terminates.
func (c Config) Validate() error {
	if c.Engine != KindMinimax && c.Engine != KindMCTS {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrUnknownKind)
	}
	if c.MaxDepth < 1 || c.MaxDepth > maxPlies {
		return fmt.Errorf("%w: max_depth must be between 1 and %d", ErrInvalidConfig, maxPlies)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0", ErrInvalidConfig)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit must be >= 0", ErrInvalidConfig)
	}
	if c.Iterations == 0 && c.TimeLimit == 0 {
		return fmt.Errorf("%w: iterations and time_limit cannot both be zero", ErrInvalidConfig)
	}
	return nil
}
