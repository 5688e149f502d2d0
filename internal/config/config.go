package config

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variables overriding the configuration file
const (
	// EnvOutputDir sets the directory the transcript file is written into
	EnvOutputDir = "PARKINGLOT_OUTPUT_DIR"

	// EnvOutputFile sets the transcript file name inside the output directory
	EnvOutputFile = "PARKINGLOT_OUTPUT_FILE"

	// EnvLogLevel sets the diagnostic log level (debug, info, warn, error)
	EnvLogLevel = "PARKINGLOT_LOG_LEVEL"

	// EnvLogFormat sets the diagnostic log format (text, json)
	EnvLogFormat = "PARKINGLOT_LOG_FORMAT"

	// EnvColor sets console coloring (auto, always, never)
	EnvColor = "PARKINGLOT_COLOR"

	// EnvHaltOnInvalidCapacity controls whether a rejected lot creation ends the session
	EnvHaltOnInvalidCapacity = "PARKINGLOT_HALT_ON_INVALID_CAPACITY"

	// EnvMetricsFile sets the Prometheus textfile written when the session ends
	EnvMetricsFile = "PARKINGLOT_METRICS_FILE"
)

// Console color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	supportedLogLevels  = []string{"debug", "info", "warn", "error"}
	supportedLogFormats = []string{"text", "json"}
	supportedColorModes = []string{ColorAuto, ColorAlways, ColorNever}
)

// Config represents the runtime configuration
type Config struct {
	// OutputDir is the directory the transcript file is written into
	OutputDir string `toml:"output_dir"`

	// OutputFile is the transcript file name, resolved inside OutputDir
	OutputFile string `toml:"output_file"`

	// LogLevel is the minimum level of diagnostic logs written to stderr
	LogLevel string `toml:"log_level"`

	// LogFormat selects the diagnostic log handler ("text" or "json")
	LogFormat string `toml:"log_format"`

	// Color controls styling of console results ("auto", "always", "never")
	Color string `toml:"color"`

	// HaltOnInvalidCapacity ends the session when a lot is created with a non-positive capacity
	HaltOnInvalidCapacity bool `toml:"halt_on_invalid_capacity"`

	// MetricsFile, when set, receives a Prometheus textfile dump at the end of the session
	MetricsFile string `toml:"metrics_file"`

	// Prompt is shown before each command in interactive mode
	Prompt string `toml:"prompt"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir:             ".",
		OutputFile:            "output.txt",
		LogLevel:              "info",
		LogFormat:             "text",
		Color:                 ColorAuto,
		HaltOnInvalidCapacity: true,
		MetricsFile:           "",
		Prompt:                "$ ",
	}
}

// Load builds the configuration from defaults, the optional TOML file at path and
// the environment, in that order of increasing precedence
func Load(path string, getenv func(key string) string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unknown keys in config file %q: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields with the environment variables that are set
func (c *Config) applyEnv(getenv func(key string) string) error {
	if getenv == nil {
		return nil
	}

	overrides := []struct {
		key    string
		target *string
	}{
		{EnvOutputDir, &c.OutputDir},
		{EnvOutputFile, &c.OutputFile},
		{EnvLogLevel, &c.LogLevel},
		{EnvLogFormat, &c.LogFormat},
		{EnvColor, &c.Color},
		{EnvMetricsFile, &c.MetricsFile},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.target = v
		}
	}

	if v := getenv(EnvHaltOnInvalidCapacity); v != "" {
		halt, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvHaltOnInvalidCapacity, v, err)
		}
		c.HaltOnInvalidCapacity = halt
	}

	return nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs field.ErrorList

	if c.OutputDir == "" {
		errs = append(errs, field.Required(field.NewPath("output_dir"), "transcript directory must be set"))
	}
	if c.OutputFile == "" {
		errs = append(errs, field.Required(field.NewPath("output_file"), "transcript file name must be set"))
	}
	if !slices.Contains(supportedLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, field.NotSupported(field.NewPath("log_level"), c.LogLevel, supportedLogLevels))
	}
	if !slices.Contains(supportedLogFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, field.NotSupported(field.NewPath("log_format"), c.LogFormat, supportedLogFormats))
	}
	if !slices.Contains(supportedColorModes, c.Color) {
		errs = append(errs, field.NotSupported(field.NewPath("color"), c.Color, supportedColorModes))
	}

	return errs.ToAggregate()
}
