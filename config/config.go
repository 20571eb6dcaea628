// Package config holds the run configuration of the latent CLI.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds configurable parameters for sampling, replay and evaluation.
// Keys missing from a config file keep their default; keys set to zero stay
// zero.
type Config struct {
	// Seed of the root random engine.
	Seed uint64 `yaml:"seed"`

	Mixture     Mixture     `yaml:"mixture"`
	Categorical Categorical `yaml:"categorical"`
	Pool        Pool        `yaml:"pool"`
	Gap         Gap         `yaml:"gap"`
	Output      Output      `yaml:"output"`
}

// Mixture configures the Gaussian mixture sampler.
type Mixture struct {
	NumClasses int       `yaml:"num_classes"`
	TotalSize  int       `yaml:"total_size"`
	Dim        int       `yaml:"dim"`
	StdDev     float64   `yaml:"std_dev"`
	Weights    []float64 `yaml:"weights"`
	BatchSize  int       `yaml:"batch_size"`
}

// Categorical configures the Gaussian/categorical sampler.
type Categorical struct {
	NumClasses int     `yaml:"num_classes"`
	TotalSize  int     `yaml:"total_size"`
	Dim        int     `yaml:"dim"`
	StdDev     float64 `yaml:"std_dev"`
	Scale      float64 `yaml:"scale"`
}

// Pool configures the replay pool.
type Pool struct {
	Capacity int `yaml:"capacity"`
	// Steps is the number of batches pushed by the replay command.
	Steps int `yaml:"steps"`
}

// Gap configures the gap statistic.
type Gap struct {
	KMax        int `yaml:"k_max"`
	NReferences int `yaml:"n_references"`
	// Delimiter of the embedding file: "tab" or "comma".
	Delimiter string `yaml:"delimiter"`
	Header    *bool  `yaml:"header"`
	Index     *bool  `yaml:"index_column"`
}

// Output configures where artifacts are written.
type Output struct {
	Dir string `yaml:"dir"`
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a YAML config file. An empty path returns Defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes YAML over Defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Defaults()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	// An explicit null clears a pointer; restore its default.
	d := Defaults()
	if c.Gap.Header == nil {
		c.Gap.Header = d.Gap.Header
	}
	if c.Gap.Index == nil {
		c.Gap.Index = d.Gap.Index
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Seed == 0 {
		c.Seed = 1024
	}
	if c.Mixture.NumClasses == 0 {
		c.Mixture.NumClasses = 10
	}
	if c.Mixture.TotalSize == 0 {
		c.Mixture.TotalSize = 10000
	}
	if c.Mixture.Dim == 0 {
		c.Mixture.Dim = 2
	}
	if c.Mixture.StdDev == 0 {
		c.Mixture.StdDev = 0.5
	}
	if c.Mixture.BatchSize == 0 {
		c.Mixture.BatchSize = 64
	}
	if c.Categorical.NumClasses == 0 {
		c.Categorical.NumClasses = 10
	}
	if c.Categorical.TotalSize == 0 {
		c.Categorical.TotalSize = 10000
	}
	if c.Categorical.Dim == 0 {
		c.Categorical.Dim = 20
	}
	if c.Categorical.StdDev == 0 {
		c.Categorical.StdDev = 1
	}
	if c.Categorical.Scale == 0 {
		c.Categorical.Scale = 1
	}
	if c.Pool.Capacity == 0 {
		c.Pool.Capacity = 50
	}
	if c.Pool.Steps == 0 {
		c.Pool.Steps = 200
	}
	if c.Gap.KMax == 0 {
		c.Gap.KMax = 10
	}
	if c.Gap.NReferences == 0 {
		c.Gap.NReferences = 100
	}
	if c.Gap.Delimiter == "" {
		c.Gap.Delimiter = "tab"
	}
	if c.Gap.Header == nil {
		t := true
		c.Gap.Header = &t
	}
	if c.Gap.Index == nil {
		t := true
		c.Gap.Index = &t
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
}

// Validate rejects values no component accepts.
func (c *Config) Validate() error {
	switch {
	case c.Mixture.NumClasses < 1:
		return errors.Errorf("mixture.num_classes must be >= 1, got %d", c.Mixture.NumClasses)
	case c.Mixture.Dim < 1:
		return errors.Errorf("mixture.dim must be >= 1, got %d", c.Mixture.Dim)
	case c.Mixture.TotalSize < 0:
		return errors.Errorf("mixture.total_size must be >= 0, got %d", c.Mixture.TotalSize)
	case c.Mixture.BatchSize < 1:
		return errors.Errorf("mixture.batch_size must be >= 1, got %d", c.Mixture.BatchSize)
	case c.Pool.Capacity < 1:
		return errors.Errorf("pool.capacity must be >= 1, got %d", c.Pool.Capacity)
	case c.Pool.Steps < 0:
		return errors.Errorf("pool.steps must be >= 0, got %d", c.Pool.Steps)
	case c.Gap.KMax < 2:
		return errors.Errorf("gap.k_max must be >= 2, got %d", c.Gap.KMax)
	case c.Gap.NReferences < 1:
		return errors.Errorf("gap.n_references must be >= 1, got %d", c.Gap.NReferences)
	case c.Gap.Delimiter != "tab" && c.Gap.Delimiter != "comma":
		return errors.Errorf("gap.delimiter must be tab or comma, got %q", c.Gap.Delimiter)
	}
	return nil
}

// Comma returns the rune for Gap.Delimiter.
func (g Gap) Comma() rune {
	if g.Delimiter == "comma" {
		return ','
	}
	return '\t'
}
