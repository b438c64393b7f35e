package graingrowth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"grain-ca/internal/grain"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Nucleation method names.
const (
	NucleationUniform      = "uniform"
	NucleationRandom       = "random"
	NucleationRandomRadius = "random-radius"
)

// defaultCriticalPool is the total stored energy above which a boundary cell
// may nucleate recrystallization, before it is shared out per cell.
const defaultCriticalPool = 4215840142323.42

// NucleationConfig selects how the first grains are placed.
type NucleationConfig struct {
	Method  string `yaml:"method"`
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
	Count   int    `yaml:"count"`
	Radius  int    `yaml:"radius"`
}

// AnnealingConfig controls the Monte Carlo boundary smoothing phase.
type AnnealingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	KT         float64 `yaml:"kt"`
	Iterations int     `yaml:"iterations"`
}

// DislocationConfig controls the dislocation accumulation phase.
type DislocationConfig struct {
	Enabled            bool    `yaml:"enabled"`
	A                  float64 `yaml:"a"`
	B                  float64 `yaml:"b"`
	Duration           float64 `yaml:"duration"`
	Dt                 float64 `yaml:"dt"`
	FirstSetPercentage float64 `yaml:"first_set_percentage"`
}

// RecrystallizationConfig controls the recrystallization phase.
type RecrystallizationConfig struct {
	Enabled bool `yaml:"enabled"`
	// CriticalPool is divided by the cell count to get the per-cell
	// critical density.
	CriticalPool float64 `yaml:"critical_pool"`
	// MaxSteps bounds front propagation; zero means until it stalls.
	MaxSteps int `yaml:"max_steps"`
}

// Config is a complete grain growth scenario.
type Config struct {
	Width    int            `yaml:"width"`
	Height   int            `yaml:"height"`
	Seed     int64          `yaml:"seed"`
	Topology grain.Topology `yaml:"topology"`
	Boundary grain.Boundary `yaml:"boundary"`
	Radius   int            `yaml:"radius"`

	Nucleation        NucleationConfig        `yaml:"nucleation"`
	Annealing         AnnealingConfig         `yaml:"annealing"`
	Dislocations      DislocationConfig       `yaml:"dislocations"`
	Recrystallization RecrystallizationConfig `yaml:"recrystallization"`
}

// DefaultConfig returns the standard scenario.
func DefaultConfig() Config {
	return Config{
		Width:    200,
		Height:   200,
		Seed:     1337,
		Topology: grain.Moore,
		Boundary: grain.Periodic,
		Radius:   2,
		Nucleation: NucleationConfig{
			Method:  NucleationRandom,
			Columns: 5,
			Rows:    5,
			Count:   60,
			Radius:  6,
		},
		Annealing: AnnealingConfig{
			Enabled:    true,
			KT:         0.6,
			Iterations: 10,
		},
		Dislocations: DislocationConfig{
			Enabled:            true,
			A:                  86710969050178.5,
			B:                  9.41268203527779,
			Duration:           0.2,
			Dt:                 0.001,
			FirstSetPercentage: 30,
		},
		Recrystallization: RecrystallizationConfig{
			Enabled:      true,
			CriticalPool: defaultCriticalPool,
		},
	}
}

// Layout returns the grid layout described by the config.
func (c Config) Layout() grain.Layout {
	return grain.Layout{
		Columns:  c.Width,
		Rows:     c.Height,
		Topology: c.Topology,
		Boundary: c.Boundary,
		Radius:   c.Radius,
	}
}

// CriticalDensity returns the per-cell recrystallization threshold.
func (c Config) CriticalDensity() float64 {
	cells := c.Width * c.Height
	if cells <= 0 {
		return 0
	}
	return c.Recrystallization.CriticalPool / float64(cells)
}

// Validate reports the first setting that would make a run fail.
func (c Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	n := c.Nucleation
	switch n.Method {
	case NucleationUniform:
		if n.Columns < 1 || n.Rows < 1 {
			return fmt.Errorf("%w: uniform nucleation needs columns and rows >= 1", ErrInvalidConfig)
		}
	case NucleationRandom:
		if n.Count < 1 || n.Count > c.Width*c.Height {
			return fmt.Errorf("%w: random nucleation count %d outside 1..%d", ErrInvalidConfig, n.Count, c.Width*c.Height)
		}
	case NucleationRandomRadius:
		if n.Count < 1 {
			return fmt.Errorf("%w: nucleation count %d must be positive", ErrInvalidConfig, n.Count)
		}
		if n.Radius <= 0 || n.Radius > c.Width/2 || n.Radius > c.Height/2 {
			return fmt.Errorf("%w: nucleation radius %d outside 1..min(%d, %d)", ErrInvalidConfig, n.Radius, c.Width/2, c.Height/2)
		}
	default:
		return fmt.Errorf("%w: unknown nucleation method %q", ErrInvalidConfig, n.Method)
	}
	if a := c.Annealing; a.Enabled && (a.KT <= 0 || a.Iterations < 0) {
		return fmt.Errorf("%w: annealing needs kt > 0 and iterations >= 0", ErrInvalidConfig)
	}
	if d := c.Dislocations; d.Enabled {
		if d.B <= 0 || d.Dt <= 0 || d.Duration < d.Dt {
			return fmt.Errorf("%w: dislocations need b > 0, dt > 0 and duration >= dt", ErrInvalidConfig)
		}
		if d.FirstSetPercentage < 0 || d.FirstSetPercentage > 100 {
			return fmt.Errorf("%w: first_set_percentage %v outside [0, 100]", ErrInvalidConfig, d.FirstSetPercentage)
		}
	}
	if r := c.Recrystallization; r.Enabled && (r.CriticalPool < 0 || r.MaxSteps < 0) {
		return fmt.Errorf("%w: recrystallization needs critical_pool >= 0 and max_steps >= 0", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a YAML scenario on top of the defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML scenario on top of the defaults and validates
// it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). A "config" key loads a YAML scenario first; the remaining keys
// override it. Malformed values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if path, ok := cfg["config"]; ok && path != "" {
		if loaded, err := LoadConfig(path); err == nil {
			c = loaded
		}
	}
	return c.Apply(cfg)
}

// Apply returns c with the flag-style overrides in cfg applied. Unknown keys
// and malformed values are ignored.
func (c Config) Apply(cfg map[string]string) Config {
	setInt(cfg, "w", &c.Width, 1)
	setInt(cfg, "h", &c.Height, 1)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["topology"]; ok {
		if parsed, err := grain.ParseTopology(v); err == nil {
			c.Topology = parsed
		}
	}
	if v, ok := cfg["boundary"]; ok {
		if parsed, err := grain.ParseBoundary(v); err == nil {
			c.Boundary = parsed
		}
	}
	setInt(cfg, "radius", &c.Radius, 1)
	if v, ok := cfg["nucleation"]; ok {
		switch v {
		case NucleationUniform, NucleationRandom, NucleationRandomRadius:
			c.Nucleation.Method = v
		}
	}
	setInt(cfg, "nuclei", &c.Nucleation.Count, 1)
	setInt(cfg, "nuclei_columns", &c.Nucleation.Columns, 1)
	setInt(cfg, "nuclei_rows", &c.Nucleation.Rows, 1)
	setInt(cfg, "nucleus_radius", &c.Nucleation.Radius, 1)
	setBool(cfg, "anneal", &c.Annealing.Enabled)
	setFloat(cfg, "kt", &c.Annealing.KT)
	setInt(cfg, "mc_iterations", &c.Annealing.Iterations, 0)
	setBool(cfg, "dislocations", &c.Dislocations.Enabled)
	setFloat(cfg, "disloc_a", &c.Dislocations.A)
	setFloat(cfg, "disloc_b", &c.Dislocations.B)
	setFloat(cfg, "disloc_duration", &c.Dislocations.Duration)
	setFloat(cfg, "disloc_dt", &c.Dislocations.Dt)
	setFloat(cfg, "disloc_first_set", &c.Dislocations.FirstSetPercentage)
	setBool(cfg, "recrystallize", &c.Recrystallization.Enabled)
	setFloat(cfg, "critical_pool", &c.Recrystallization.CriticalPool)
	setInt(cfg, "recrystallize_steps", &c.Recrystallization.MaxSteps, 0)
	return c
}

func setInt(cfg map[string]string, key string, dst *int, min int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
			*dst = parsed
		}
	}
}

func setFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setBool(cfg map[string]string, key string, dst *bool) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}
