package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	SPS      int
	Seed     int64
	HUDWidth int
	Scenario string
	LogLevel string
	Options  map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "graingrowth",
		Scale:    3,
		TPS:      60,
		SPS:      30,
		Seed:     42,
		HUDWidth: 240,
		LogLevel: "info",
		Options:  map[string]string{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.SPS, "sps", c.SPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel, 0 to hide")
	fs.StringVar(&c.Scenario, "config", c.Scenario, "YAML scenario file")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.Func("set", "simulation option as key=value, repeatable", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("option %q is not key=value", s)
		}
		c.Options[key] = value
		return nil
	})
}

// SimOptions returns the option map handed to the sim factory. The scenario
// file and seed are folded in; explicit -set values win.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{"seed": fmt.Sprint(c.Seed)}
	if c.Scenario != "" {
		opts["config"] = c.Scenario
	}
	for k, v := range c.Options {
		opts[k] = v
	}
	return opts
}
