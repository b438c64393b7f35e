package graingrowth

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

// smallConfig is a fast scenario that exercises every phase.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 20
	cfg.Seed = 7
	cfg.Nucleation.Count = 8
	cfg.Annealing.Iterations = 2
	cfg.Dislocations.Duration = 0.01
	cfg.Recrystallization.CriticalPool = 0
	return cfg
}
