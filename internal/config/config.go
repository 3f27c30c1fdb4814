// Package config loads and validates the TOML configuration consumed by
// cmd/pathfinder: remote endpoints, on-disk store locations, search bounds,
// and harness (optimizer/benchmark) settings.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	pathfindererrors "github.com/kraklabs/bipass-pathfinder/internal/errors"
)

// Config is the full set of keys enumerated in the external interfaces
// contract: remote API base URLs, the four store locations, the search
// entity limit, the query corpus paths, and the harness settings.
type Config struct {
	WembedAPI   string `toml:"wembed_api"`
	WikidataAPI string `toml:"wikidata_api"`

	LabelMappingPath    string `toml:"label_mapping_path"`
	DescMappingPath     string `toml:"desc_mapping_path"`
	DistanceMappingPath string `toml:"distance_mapping_path"`
	AdjacencyListPath   string `toml:"adjacency_list_path"`

	EntityLimit int `toml:"entity_limit"`

	QueryFilePaths []string `toml:"query_file_paths"`

	OptimizerSamplePercentage float64 `toml:"optimizer_sample_percentage"`
	OptimizerIterations       int     `toml:"optimizer_iterations"`
	OptimizerResultsPath      string  `toml:"optimizer_results_path"`

	BenchmarkResultsPath string `toml:"benchmark_results_path"`
}

// NewConfig returns a Config populated with conservative defaults, mirroring
// the teacher's NewConfig entry point: callers overlay a TOML file and
// environment variables on top of this baseline.
func NewConfig() *Config {
	return &Config{
		WembedAPI:                 "http://localhost:8000/distance",
		WikidataAPI:               "http://localhost:8001",
		LabelMappingPath:          "data/labels.db",
		DescMappingPath:           "data/descriptions.db",
		DistanceMappingPath:       "data/distances.db",
		AdjacencyListPath:         "data/adjacency.db",
		EntityLimit:               5000,
		QueryFilePaths:            nil,
		OptimizerSamplePercentage: 0.1,
		OptimizerIterations:       50,
		OptimizerResultsPath:      "results/optimizer.csv",
		BenchmarkResultsPath:      "results/benchmark",
	}
}

// Load reads a TOML file at path, overlays it onto the defaults, applies
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile decodes the TOML document at path onto cfg, so only the keys
// present in the file override the defaults already on cfg.
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pathfindererrors.New(
				pathfindererrors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file not found: %s", path),
				err,
			)
		}
		return pathfindererrors.ConfigError(fmt.Sprintf("cannot read config file %s", path), err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return pathfindererrors.ConfigError(fmt.Sprintf("cannot parse config file %s", path), err)
	}

	return nil
}

// applyEnvOverrides lets PATHFINDER_* environment variables override the
// file/default values, following the teacher's merge-then-override order.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PATHFINDER_WEMBED_API"); v != "" {
		c.WembedAPI = v
	}
	if v := os.Getenv("PATHFINDER_WIKIDATA_API"); v != "" {
		c.WikidataAPI = v
	}
	if v := os.Getenv("PATHFINDER_ENTITY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EntityLimit = n
		}
	}
	if v := os.Getenv("PATHFINDER_OPTIMIZER_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OptimizerIterations = n
		}
	}
}

// Validate checks the configuration satisfies the invariants the search and
// harness components rely on (positive entity limit, sample percentage in
// [0,1]).
func (c *Config) Validate() error {
	if c.EntityLimit <= 0 {
		return pathfindererrors.ConfigError(
			fmt.Sprintf("entity_limit must be positive, got %d", c.EntityLimit), nil)
	}
	if c.OptimizerSamplePercentage < 0 || c.OptimizerSamplePercentage > 1 {
		return pathfindererrors.ConfigError(
			fmt.Sprintf("optimizer_sample_percentage must be in [0,1], got %f", c.OptimizerSamplePercentage), nil)
	}
	if c.OptimizerIterations < 0 {
		return pathfindererrors.ConfigError(
			fmt.Sprintf("optimizer_iterations must be non-negative, got %d", c.OptimizerIterations), nil)
	}
	if c.WembedAPI == "" {
		return pathfindererrors.ConfigError("wembed_api must not be empty", nil)
	}
	if c.WikidataAPI == "" {
		return pathfindererrors.ConfigError("wikidata_api must not be empty", nil)
	}
	return nil
}

// WriteTOML serializes the configuration back to a TOML file that Load can
// read.
func (c *Config) WriteTOML(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return pathfindererrors.ConfigError("cannot marshal config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pathfindererrors.ConfigError(fmt.Sprintf("cannot write config file %s", path), err)
	}
	return nil
}
