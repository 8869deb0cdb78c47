package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brettbedarf/memfs/internal/util"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Verbosity levels accepted from the CLI and config files.
// Values outside the range are clamped.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Prompt modes. See [Config.PromptMode].
const (
	PromptAuto   = "auto"
	PromptAlways = "always"
	PromptNever  = "never"
)

// EnvPrefix is prepended to every environment override key
const EnvPrefix = "MEMFS_"

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl        = util.WarnLevel
	DefaultPromptMode    = PromptAuto
	DefaultColor         = true
	DefaultSeedFile      = ""
	DefaultMaxTreeDepth  = 32
	DefaultDefaultOrigin = "text/plain"
)

// Config contains runtime configuration values for the shell and filesystem.
type Config struct {
	LogLvl        util.LogLevel // Internal log level (Default warn)
	PromptMode    string        // "auto" prints a prompt only on a terminal, "always" or "never" force it (Default auto)
	Color         bool          // Style shell output when writing to a terminal (Default true)
	SeedFile      string        // JSON/YAML node definitions loaded into the tree at startup (Default none)
	MaxTreeDepth  int           // Deepest level rendered by the tree command (Default 32)
	DefaultOrigin string        // Media type attached to files created from the shell (Default text/plain)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// LogLvl is a verbosity between 1 (error) and 5 (trace), not a [util.LogLevel]
	LogLvl        *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	PromptMode    *string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Color         *bool   `yaml:"color,omitempty" json:"color,omitempty"`
	SeedFile      *string `yaml:"seed_file,omitempty" json:"seed_file,omitempty"`
	MaxTreeDepth  *int    `yaml:"max_tree_depth,omitempty" json:"max_tree_depth,omitempty"`
	DefaultOrigin *string `yaml:"default_origin,omitempty" json:"default_origin,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		PromptMode:    DefaultPromptMode,
		Color:         DefaultColor,
		SeedFile:      DefaultSeedFile,
		MaxTreeDepth:  DefaultMaxTreeDepth,
		DefaultOrigin: DefaultDefaultOrigin,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerbosityToLogLevel(*override.LogLvl)
	}
	if override.PromptMode != nil {
		c.PromptMode = *override.PromptMode
	}
	if override.Color != nil {
		c.Color = *override.Color
	}
	if override.SeedFile != nil {
		c.SeedFile = *override.SeedFile
	}
	if override.MaxTreeDepth != nil {
		c.MaxTreeDepth = *override.MaxTreeDepth
	}
	if override.DefaultOrigin != nil {
		c.DefaultOrigin = *override.DefaultOrigin
	}
}

// VerbosityToLogLevel maps a CLI verbosity (1 error .. 5 trace) to a
// [util.LogLevel], clamping out of range values.
func VerbosityToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(TraceVerbose, verbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// Validate reports settings that cannot be used as is.
func (c *Config) Validate() error {
	switch c.PromptMode {
	case PromptAuto, PromptAlways, PromptNever:
	default:
		return fmt.Errorf("invalid prompt mode %q: must be one of %s, %s, %s", c.PromptMode, PromptAuto, PromptAlways, PromptNever)
	}
	if c.MaxTreeDepth < 1 {
		return fmt.Errorf("max tree depth must be positive, got %d", c.MaxTreeDepth)
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}

// ReadEnvFile parses KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return vars, nil
}

// EnvLookup returns a lookup that prefers lookup and falls back to vars, so
// variables already set in the environment win over an env file.
func EnvLookup(lookup func(string) (string, bool), vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

// LoadEnvOverride builds a ConfigOverride from MEMFS_* environment variables.
// lookup is usually os.LookupEnv; unset variables leave the field nil.
func LoadEnvOverride(lookup func(string) (string, bool)) (*ConfigOverride, error) {
	var override ConfigOverride

	if v, ok := lookup(EnvPrefix + "VERBOSE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sVERBOSE: %w", EnvPrefix, err)
		}
		override.LogLvl = &n
	}
	if v, ok := lookup(EnvPrefix + "PROMPT"); ok {
		override.PromptMode = &v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sCOLOR: %w", EnvPrefix, err)
		}
		override.Color = &b
	}
	if v, ok := lookup(EnvPrefix + "SEED_FILE"); ok {
		override.SeedFile = &v
	}
	if v, ok := lookup(EnvPrefix + "MAX_TREE_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sMAX_TREE_DEPTH: %w", EnvPrefix, err)
		}
		override.MaxTreeDepth = &n
	}
	if v, ok := lookup(EnvPrefix + "DEFAULT_ORIGIN"); ok {
		override.DefaultOrigin = &v
	}

	return &override, nil
}
