package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grain-ca/internal/grain"
	"grain-ca/internal/sims/graingrowth"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func tinyScenario() graingrowth.Config {
	cfg := graingrowth.DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.Seed = 3
	cfg.Nucleation.Count = 5
	cfg.Annealing.Iterations = 1
	cfg.Dislocations.Duration = 0.005
	cfg.Recrystallization.CriticalPool = 0
	return cfg
}

func TestRunScenario(t *testing.T) {
	res, trace, err := runScenario(context.Background(), tinyScenario())
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Seed)
	assert.Equal(t, 5, res.Nuclei)
	assert.Equal(t, 256, res.Stats.Populated)
	assert.Len(t, trace, 5)

	var buf bytes.Buffer
	writeSummary(&buf, res)
	assert.Contains(t, buf.String(), "nuclei          5")
	buf.Reset()
	writeTrace(&buf, trace)
	assert.Equal(t, 7, strings.Count(buf.String(), "\n"))
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := runScenario(ctx, tinyScenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenarioReportsTimeout(t *testing.T) {
	cfg := tinyScenario()
	cfg.Dislocations.Duration = 1000
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := runScenario(ctx, cfg)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSweepSeedsMatchesSequentialRuns(t *testing.T) {
	cfg := tinyScenario()
	results, err := sweepSeeds(context.Background(), cfg, 4, 3)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		want, _, err := runScenario(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, c.Seed, r.Seed)
		assert.Equal(t, want.Stats, r.Stats, "seed %d", c.Seed)
	}

	var buf bytes.Buffer
	writeTable(&buf, results)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "seed"))
}

func TestSweepSeedsRejectsZeroRuns(t *testing.T) {
	_, err := sweepSeeds(context.Background(), tinyScenario(), 0, 1)
	assert.Error(t, err)
}

func TestLoadScenarioLayersFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 40\nheight: 30\nboundary: absorbing\n"), 0o644))

	scenarioPath, seed, overrides = path, 77, map[string]string{"topology": "von-neumann"}
	t.Cleanup(func() { scenarioPath, seed, overrides = "", 0, nil })

	cfg, err := loadScenario()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, grain.Absorbing, cfg.Boundary)
	assert.Equal(t, grain.VonNeumann, cfg.Topology)
	assert.EqualValues(t, 77, cfg.Seed)
}

func TestLoadScenarioReportsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: red\n"), 0o644))
	scenarioPath = path
	t.Cleanup(func() { scenarioPath = "" })

	_, err := loadScenario()
	assert.Error(t, err)
}
