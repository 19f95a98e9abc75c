package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Decode parses configuration bytes, choosing the format from the file
// extension. Unrecognized extensions are treated as YAML.
func Decode(path string, data []byte) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FromTOML(data)
	default:
		return FromYAML(data)
	}
}

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// normalize fills zero-valued fields with defaults after decoding.
func (c *Config) normalize() {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	if c.Format.LineLength <= 0 {
		c.Format.LineLength = 100
	}
	if c.Format.IndentType == "" {
		c.Format.IndentType = IndentTabs
	}
	if c.Format.IndentSize <= 0 {
		c.Format.IndentSize = 4
	}
	if c.SeverityDefault == "" {
		c.SeverityDefault = string(SeverityWarning)
	}
	if c.Output == "" {
		c.Output = FormatText
	}
}
