// Package config provides unified configuration loading for mrgc.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no explicit
// config path is given.
const DefaultConfigFile = "mrgc.yaml"

// Config contains all mrgc configuration settings.
type Config struct {
	// Experiment holds the simulation parameters.
	Experiment ExperimentConfig `json:"experiment" yaml:"experiment"`

	// Output controls where run results are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ExperimentConfig holds the parameters of one experiment run.
type ExperimentConfig struct {
	// Agents is the number of agents (graph nodes).
	Agents int `json:"agents" yaml:"agents"`

	// Slots is the number of shared resource slots.
	Slots int `json:"slots" yaml:"slots"`

	// Episodes is the number of simulation rounds.
	Episodes int `json:"episodes" yaml:"episodes"`

	// MaxEdges is the largest random degree drawn per node. Must be < Agents.
	MaxEdges int `json:"max_edges" yaml:"max_edges"`

	// Seed is the base seed; episode i uses Seed+i for its graphs.
	Seed int64 `json:"seed" yaml:"seed"`
}

// String implements fmt.Stringer for compact log output.
func (c ExperimentConfig) String() string {
	return fmt.Sprintf("ExperimentConfig{Agents:%d, Slots:%d, Episodes:%d, MaxEdges:%d, Seed:%d}",
		c.Agents, c.Slots, c.Episodes, c.MaxEdges, c.Seed)
}

// Validate checks that the parameters can produce a run. Errors wrap
// models.ErrInvalidConfiguration.
func (c ExperimentConfig) Validate() error {
	if c.Agents < 2 {
		return fmt.Errorf("agents must be at least 2, got %d: %w", c.Agents, models.ErrInvalidConfiguration)
	}
	if c.Slots <= 0 {
		return fmt.Errorf("slots must be positive, got %d: %w", c.Slots, models.ErrInvalidConfiguration)
	}
	if c.Episodes < 1 {
		return fmt.Errorf("episodes must be at least 1, got %d: %w", c.Episodes, models.ErrInvalidConfiguration)
	}
	if c.MaxEdges < 1 || c.MaxEdges >= c.Agents {
		return fmt.Errorf("max_edges must be in [1, agents), got %d with %d agents: %w", c.MaxEdges, c.Agents, models.ErrInvalidConfiguration)
	}
	return nil
}

// OutputConfig configures result persistence.
type OutputConfig struct {
	// CSVPath is the results CSV written by the run command.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// DBPath is an optional SQLite database that accumulates runs. Empty disables it.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// TraceDir receives trace.jsonl at debug and trace log levels.
	TraceDir string `json:"trace_dir,omitempty" yaml:"trace_dir,omitempty"`
}

// LoggingConfig configures mrgc's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the per-record trace file in Output.TraceDir.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the reference experiment parameters.
func Default() *Config {
	return &Config{
		Experiment: ExperimentConfig{
			Agents:   constants.DefaultAgents,
			Slots:    constants.DefaultSlots,
			Episodes: constants.DefaultEpisodes,
			MaxEdges: constants.DefaultMaxEdges,
			Seed:     constants.DefaultSeed,
		},
		Output: OutputConfig{
			CSVPath: constants.DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, or from ./mrgc.yaml when path is
// empty and that file exists, then applies environment variables.
// Order: defaults -> config file -> environment variables
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Output.CSVPath = os.ExpandEnv(config.Output.CSVPath)
	config.Output.DBPath = os.ExpandEnv(config.Output.DBPath)
	config.Output.TraceDir = os.ExpandEnv(config.Output.TraceDir)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Experiment.Validate(); err != nil {
		return err
	}

	if c.Output.CSVPath == "" {
		return fmt.Errorf("output csv_path must not be empty: %w", models.ErrInvalidConfiguration)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Malformed numeric values are reported rather than ignored.
func applyEnvOverrides(config *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"MRGC_AGENTS", &config.Experiment.Agents},
		{"MRGC_SLOTS", &config.Experiment.Slots},
		{"MRGC_EPISODES", &config.Experiment.Episodes},
		{"MRGC_MAX_EDGES", &config.Experiment.MaxEdges},
	}
	for _, e := range ints {
		if v := os.Getenv(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", e.name, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("MRGC_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing MRGC_SEED: %w", err)
		}
		config.Experiment.Seed = n
	}

	if v := os.Getenv("MRGC_OUTPUT"); v != "" {
		config.Output.CSVPath = v
	}

	if v := os.Getenv("MRGC_DB_PATH"); v != "" {
		config.Output.DBPath = v
	}

	if v := os.Getenv("MRGC_TRACE_DIR"); v != "" {
		config.Output.TraceDir = v
	}

	if v := os.Getenv("MRGC_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	return nil
}
