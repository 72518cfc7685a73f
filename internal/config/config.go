package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultProgressInterval = 100 * time.Millisecond
	defaultMaxWalkDepth     = 32
	envProgressInterval     = "DBUSLS_PROGRESS_INTERVAL"
	envMaxWalkDepth         = "DBUSLS_MAX_DEPTH"
)

// Config aggregates the tunables of an enumeration run.
type Config struct {
	// ProgressInterval is the frame interval of the stderr spinner.
	ProgressInterval time.Duration
	// MaxWalkDepth bounds the recursive introspection walk.
	MaxWalkDepth int
}

// Load builds a Config from an optional JSON file path plus environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		ProgressInterval: defaultProgressInterval,
		MaxWalkDepth:     defaultMaxWalkDepth,
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if fileCfg.ProgressInterval != 0 {
			cfg.ProgressInterval = fileCfg.ProgressInterval
		}
		if fileCfg.MaxWalkDepth != 0 {
			cfg.MaxWalkDepth = fileCfg.MaxWalkDepth
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envProgressInterval); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
			cfg.ProgressInterval = dur
		} else {
			log.Warnf("invalid %s value %q", envProgressInterval, v)
		}
	}

	if v := os.Getenv(envMaxWalkDepth); v != "" {
		if depth, err := strconv.Atoi(v); err == nil && depth > 0 {
			cfg.MaxWalkDepth = depth
		} else {
			log.Warnf("invalid %s value %q", envMaxWalkDepth, v)
		}
	}
}

type fileConfig struct {
	ProgressInterval string `json:"progress_interval"`
	// A pointer so an explicit 0 is distinguishable from the field
	// being absent.
	MaxWalkDepth *int `json:"max_walk_depth"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.ProgressInterval != "" {
		dur, err := time.ParseDuration(raw.ProgressInterval)
		if err != nil {
			return cfg, fmt.Errorf("parse progress_interval: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("progress_interval must be > 0")
		}
		cfg.ProgressInterval = dur
	}
	if raw.MaxWalkDepth != nil {
		if *raw.MaxWalkDepth <= 0 {
			return cfg, errors.New("max_walk_depth must be > 0")
		}
		cfg.MaxWalkDepth = *raw.MaxWalkDepth
	}

	return cfg, nil
}
