// Package config loads the engine's two open-question knobs (spec §9)
// from a YAML document, the way funvibe-funxy and sunholo-data-ailang load
// their own runtime configuration with yaml.v3, and validates a
// user-supplied lifetime-name convention with a backtracking regex the
// way the teacher's VM falls back to regexp2 for patterns Go's RE2 engine
// can't express.
package config

import (
	"fmt"
	"os"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// Config controls the two behaviors spec §9 leaves as open questions,
// plus a naming convention for declared lifetime parameters the driver
// may want to enforce before handing an AST to the checker.
type Config struct {
	// LoopFixedPoint selects between a single refinement pass over a
	// while body (false, the default) and re-checking until the exit
	// environment stabilizes (true). See checker.Config.
	LoopFixedPoint bool `yaml:"loopFixedPoint"`

	// NormalizationDepthCap bounds nominal-unfolding depth during DNF
	// normalization; 0 means unbounded, the default.
	NormalizationDepthCap int `yaml:"normalizationDepthCap"`

	// LifetimeNamePattern, if non-empty, is a regexp2 pattern every
	// declared lifetime name must fully match. Left empty, no convention
	// is enforced.
	LifetimeNamePattern string `yaml:"lifetimeNamePattern"`

	compiledLifetimePattern *regexp2.Regexp
}

// Default returns the engine's default configuration (spec §9: single
// refinement pass, unbounded normalization, no lifetime naming
// convention).
func Default() *Config {
	return &Config{LoopFixedPoint: false, NormalizationDepthCap: 0}
}

// Load reads and validates a YAML configuration document from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and returns the configuration encoded in data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) compile() error {
	if c.LifetimeNamePattern == "" {
		return nil
	}
	re, err := regexp2.Compile(c.LifetimeNamePattern, regexp2.None)
	if err != nil {
		return fmt.Errorf("config: compiling lifetimeNamePattern %q: %w", c.LifetimeNamePattern, err)
	}
	c.compiledLifetimePattern = re
	return nil
}

// ValidateLifetimeName reports whether name fully matches the configured
// lifetime naming convention. Always true when no pattern was configured.
func (c *Config) ValidateLifetimeName(name string) (bool, error) {
	if c.compiledLifetimePattern == nil {
		return true, nil
	}
	m, err := c.compiledLifetimePattern.FindStringMatch(name)
	if err != nil {
		return false, fmt.Errorf("config: matching lifetime name %q: %w", name, err)
	}
	return m != nil && m.String() == name, nil
}
