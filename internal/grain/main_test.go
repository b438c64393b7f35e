package grain

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	// Set DEBUG_TESTS=1 to see engine logs.
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func mustGrid(t testing.TB, layout Layout, seed int64) *Grid {
	t.Helper()
	g, err := New(layout, WithSeed(seed))
	if err != nil {
		t.Fatalf("New(%+v): %v", layout, err)
	}
	return g
}

// paint assigns grains from a row-major id matrix, registering grains as
// needed. It bypasses nucleation so tests can build exact configurations.
func paint(t testing.TB, g *Grid, ids [][]GrainID) {
	t.Helper()
	g.Clear()
	for r, row := range ids {
		for c, id := range row {
			if id == Sentinel {
				continue
			}
			for GrainID(len(g.grains.grains)) <= id {
				g.grains.add(g.rng, false)
			}
			g.lat.cells[g.lat.ext.Index(c, r)].Grain = id
			g.populated++
		}
	}
}

func cellAt(g *Grid, row, col int) *Cell {
	return &g.lat.cells[g.lat.ext.Index(col, row)]
}
