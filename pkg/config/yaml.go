package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration after a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration. Keys absent from data keep their zero
// value; merge with defaults separately.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Diagnostics == nil {
		cfg.Diagnostics = make(map[string]DiagnosticConfig)
	}

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	if c.Diagnostics != nil {
		clone.Diagnostics = make(map[string]DiagnosticConfig, len(c.Diagnostics))
		for k, v := range c.Diagnostics {
			clone.Diagnostics[k] = v.clone()
		}
	}

	return &clone
}

func (dc DiagnosticConfig) clone() DiagnosticConfig {
	var out DiagnosticConfig
	if dc.Enabled != nil {
		enabled := *dc.Enabled
		out.Enabled = &enabled
	}
	if dc.Severity != nil {
		severity := *dc.Severity
		out.Severity = &severity
	}
	return out
}

// YAMLIndent returns the YAML indentation used for generated files.
func YAMLIndent() int {
	return 2
}
