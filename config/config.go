// Package config provides YAML configuration parsing for scanboard.
//
// This package lets the scanboard command-line tool (and embedding
// applications) describe the palette, feature domain, default parameters and
// URL binding in a file instead of code.
//
// Example configuration:
//
//	palette: ["#E69F00", "#93CEF1"]
//
//	features:
//	  - key: thickness
//	    name: Cartilage Thickness
//	    long: Mean cartilage thickness across the joint surface
//	  - shape
//
//	parameters:
//	  leftBiomarker: ${LEFT_BIOMARKER:-age}
//
//	url:
//	  param: state
//	  base: https://scans.example.com/population
//
//	reentrancy: queue
//	log_level: info
//
//	queries:
//	  - name: full
//	    expr: len(selected) == capacity
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/scanboard"
	"github.com/jpalmerr/scanboard/query"
)

// defaultURLParam is the query parameter used when url.param is not set.
const defaultURLParam = "state"

// Config is the root configuration structure for scanboard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Palette lists the slot colours. Its length is the selection capacity.
	// Defaults to the built-in two-colour palette.
	Palette []string `yaml:"palette"`

	// Features defines the feature domain views can be bound to, in order.
	// The first feature is the default binding. Defaults to the built-in set.
	Features []FeatureConfig `yaml:"features"`

	// Parameters are initial plot parameter values.
	// Values support environment variable substitution: ${VAR} or ${VAR:-default}
	Parameters map[string]string `yaml:"parameters"`

	// URL configures where the encoded state lives.
	URL URLConfig `yaml:"url"`

	// Reentrancy is "queue" (default) or "reject".
	Reentrancy string `yaml:"reentrancy"`

	// LogLevel is debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	// Queries are named expr-lang expressions evaluated against the state.
	Queries []QueryConfig `yaml:"queries"`
}

// FeatureConfig defines one feature of the domain.
//
// It supports two formats in YAML:
//
// Shorthand string (key only):
//
//	- shape
//
// Structured object:
//
//	- key: shape
//	  name: Bone Shape
//	  long: Bone surface shape score
type FeatureConfig struct {
	Key  string
	Name string
	Long string
}

// URLConfig configures the URL binding.
type URLConfig struct {
	// Param is the query parameter holding the encoded state. Defaults to "state".
	Param string `yaml:"param"`

	// Base is the page URL shareable links are built from.
	// Supports environment variable substitution.
	Base string `yaml:"base"`
}

// QueryConfig is a named expression.
type QueryConfig struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// UnmarshalYAML implements yaml.Unmarshaler for FeatureConfig.
func (f *FeatureConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		f.Key = strings.TrimSpace(s)
		return nil
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Key  string `yaml:"key"`
			Name string `yaml:"name"`
			Long string `yaml:"long"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		f.Key = raw.Key
		f.Name = raw.Name
		f.Long = raw.Long
		return nil
	}

	return fmt.Errorf("feature must be a string or object, got %v", node.Kind)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in palette entries, parameter values and
// url.base. Defaults are applied for url.param, reentrancy and log_level.
// An empty document is a valid configuration that uses every default.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.URL.Param == "" {
		cfg.URL.Param = defaultURLParam
	}
	if cfg.Reentrancy == "" {
		cfg.Reentrancy = scanboard.ReentrancyQueue.String()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	seenSlots := make(map[string]struct{}, len(c.Palette))
	for i, slot := range c.Palette {
		expanded, err := expandEnvVars(slot)
		if err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
		if expanded == "" {
			return fmt.Errorf("palette[%d]: slot cannot be empty", i)
		}
		if _, exists := seenSlots[expanded]; exists {
			return fmt.Errorf("palette[%d]: duplicate slot %q", i, expanded)
		}
		seenSlots[expanded] = struct{}{}
		c.Palette[i] = expanded
	}

	seenFeatures := make(map[string]struct{}, len(c.Features))
	for i, f := range c.Features {
		if f.Key == "" {
			return fmt.Errorf("features[%d]: key is required", i)
		}
		if _, exists := seenFeatures[f.Key]; exists {
			return fmt.Errorf("features[%d]: duplicate key %q", i, f.Key)
		}
		seenFeatures[f.Key] = struct{}{}
	}

	for k, v := range c.Parameters {
		if k == "" {
			return fmt.Errorf("parameters: name cannot be empty")
		}
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("parameters[%s]: %w", k, err)
		}
		c.Parameters[k] = expanded
	}

	if c.URL.Base != "" {
		expanded, err := expandEnvVars(c.URL.Base)
		if err != nil {
			return fmt.Errorf("url.base: %w", err)
		}
		parsed, err := url.Parse(expanded)
		if err != nil {
			return fmt.Errorf("url.base: invalid url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("url.base: scheme must be http or https, got %q", parsed.Scheme)
		}
		c.URL.Base = expanded
	}
	if url.QueryEscape(c.URL.Param) != c.URL.Param {
		return fmt.Errorf("url.param: %q must not need escaping", c.URL.Param)
	}

	if _, err := scanboard.ParseReentrancyPolicy(c.Reentrancy); err != nil {
		return fmt.Errorf("reentrancy: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	seenQueries := make(map[string]struct{}, len(c.Queries))
	for i, q := range c.Queries {
		if q.Name == "" {
			return fmt.Errorf("queries[%d]: name is required", i)
		}
		if _, exists := seenQueries[q.Name]; exists {
			return fmt.Errorf("queries[%d]: duplicate name %q", i, q.Name)
		}
		seenQueries[q.Name] = struct{}{}

		// fail fast before the CLI tries to evaluate it
		if _, err := query.Compile(q.Expr); err != nil {
			return fmt.Errorf("queries[%d] (%s): %w", i, q.Name, err)
		}
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}
