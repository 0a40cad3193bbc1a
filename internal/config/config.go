// Package config loads the optional YAML configuration of the collection
// generator and applies defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"collection-generator/internal/common"
	"collection-generator/internal/marker"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".collection-generator.yaml"

// DefaultOutputFile is the name of the generated file in each package.
const DefaultOutputFile = "zz_generated.collections.go"

const (
	currentVersion = "1"
	defaultWorkers = 4
)

// Config is the generator configuration.
type Config struct {
	Version       string   `yaml:"version"`
	MarkerPrefix  string   `yaml:"marker_prefix"`
	OutputFile    string   `yaml:"output_file"`
	DefaultDerive []string `yaml:"default_derive,omitempty"`
	Workers       int      `yaml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads the configuration at path. A missing file yields the
// defaults unless mustExist is set.
func LoadFile(path string, mustExist bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML data into a Config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = currentVersion
	}

	if cfg.MarkerPrefix == "" {
		cfg.MarkerPrefix = marker.DefaultPrefix
	}

	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}

	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != currentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if c.MarkerPrefix == "" {
		errs = append(errs, errors.New("marker_prefix must not be empty"))
	} else if strings.ContainsAny(c.MarkerPrefix, " \t:=+") {
		errs = append(errs, fmt.Errorf("marker_prefix %q must not contain spaces or any of \":=+\"", c.MarkerPrefix))
	}

	if filepath.Base(c.OutputFile) != c.OutputFile || filepath.Ext(c.OutputFile) != ".go" {
		errs = append(errs, fmt.Errorf("output_file %q must be a plain .go file name", c.OutputFile))
	} else if strings.HasSuffix(c.OutputFile, "_test.go") {
		errs = append(errs, fmt.Errorf("output_file %q must not be a test file", c.OutputFile))
	}

	for _, d := range c.DefaultDerive {
		if !common.IsIdentifier(d) {
			errs = append(errs, fmt.Errorf("default_derive entry %q is not an identifier", d))
		}
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
