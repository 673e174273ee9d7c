package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crablint/crablint"
)

// DefaultConfigName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultConfigName = ".crablint.yaml"

// Config controls which rules run.  Restriction rules are opt-in, so an
// empty config runs nothing at all.
type Config struct {
	Rules map[string]bool `yaml:"rules"`
}

// LoadConfig reads a yaml config file and validates every rule name
// against the catalogue, so a typo fails loudly instead of silently
// disabling a rule.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name := range cfg.Rules {
		if _, ok := crablint.Lookup(name); !ok {
			return nil, fmt.Errorf("%s: unknown rule %q", path, name)
		}
	}
	return &cfg, nil
}

// Enable turns a rule on, validating the name against the catalogue.
func (c *Config) Enable(name string) error {
	if _, ok := crablint.Lookup(name); !ok {
		return fmt.Errorf("unknown rule %q", name)
	}
	if c.Rules == nil {
		c.Rules = map[string]bool{}
	}
	c.Rules[name] = true
	return nil
}

// Enabled reports whether the named rule should run.
func (c *Config) Enabled(name string) bool {
	if c == nil {
		return false
	}
	return c.Rules[name]
}
