// Command grainsim runs grain growth scenarios without a window.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"grain-ca/internal/sims/graingrowth"
)

var (
	scenarioPath string            // YAML scenario, layered over the defaults
	seed         int64             // overrides the scenario seed when non-zero
	logLevel     string            // logrus level name
	overrides    map[string]string // factory-style key=value overrides
)

var rootCmd = &cobra.Command{
	Use:   "grainsim",
	Short: "Headless grain growth and recrystallization simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "config", "", "YAML scenario file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 keeps the scenario seed)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringToStringVar(&overrides, "set", nil, "scenario overrides as key=value (w, h, topology, nuclei, ...)")
	rootCmd.AddCommand(runCmd, sweepCmd)
}

// loadScenario resolves the scenario from --config, --set and --seed.
func loadScenario() (graingrowth.Config, error) {
	cfg := graingrowth.DefaultConfig()
	if scenarioPath != "" {
		loaded, err := graingrowth.LoadConfig(scenarioPath)
		if err != nil {
			return graingrowth.Config{}, err
		}
		cfg = loaded
	}
	cfg = cfg.Apply(overrides)
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
