package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configDefaults []byte

type (
	// SnippetsConfig describes where snippet definitions come from. Tables
	// are flat YAML "key: definition" files applied in order, later tables
	// override earlier ones; inline defines override everything.
	SnippetsConfig struct {
		Tables []string          `yaml:"tables,omitempty"`
		Define map[string]string `yaml:"define,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version"`
		Snippets  SnippetsConfig `yaml:"snippets"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// We want to accept only fields we defined so we cannot use
	// yaml.Unmarshal directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported configuration version %d", cfg.Version)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposing its values on top of embedded defaults. Empty path means
// defaults only.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(configDefaults, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns default embedded configuration as a byte slice.
func Prepare() ([]byte, error) {
	return bytes.Clone(configDefaults), nil
}

// Dump serializes active configuration.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize configuration: %w", err)
	}
	return data, nil
}

// DumpTable serializes a merged snippet table, keys sorted.
func DumpTable(defs map[string]string) ([]byte, error) {
	data, err := yaml.Marshal(defs)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize snippet table: %w", err)
	}
	return data, nil
}

// Definitions merges the builtin table (may be empty), configured table files
// and inline defines, in that order.
func (c *SnippetsConfig) Definitions(builtin []byte) (map[string]string, error) {
	defs := make(map[string]string)
	if len(builtin) > 0 {
		if err := decodeTable(builtin, defs); err != nil {
			return nil, fmt.Errorf("bad builtin snippet table: %w", err)
		}
	}
	for _, path := range c.Tables {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read snippet table: %w", err)
		}
		if err := decodeTable(data, defs); err != nil {
			return nil, fmt.Errorf("bad snippet table '%s': %w", path, err)
		}
	}
	maps.Copy(defs, c.Define)
	return defs, nil
}

func decodeTable(data []byte, into map[string]string) error {
	table := make(map[string]string)
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			// empty table
			return nil
		}
		return err
	}
	maps.Copy(into, table)
	return nil
}
