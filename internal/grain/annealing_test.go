package grain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothAbsorbsSingleCellIsland(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 5, Rows: 5, Topology: Moore, Boundary: Periodic}, 3)
	ids := make([][]GrainID, 5)
	for r := range ids {
		ids[r] = []GrainID{1, 1, 1, 1, 1}
	}
	ids[2][2] = 2
	paint(t, g, ids)

	require.NoError(t, g.SmoothWithMonteCarlo(context.Background(), 0.01, 1))
	for _, c := range g.lat.cells {
		assert.Equal(t, GrainID(1), c.Grain, "cell (%d,%d)", c.Row, c.Column)
	}
	assert.Equal(t, 25, g.PopulatedCount())
}

func TestSmoothOnlyUsesExistingGrains(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 6, Rows: 6, Topology: Moore, Boundary: Periodic}, 4)
	ids := make([][]GrainID, 6)
	for r := range ids {
		ids[r] = []GrainID{1, 1, 1, 2, 2, 2}
	}
	paint(t, g, ids)

	require.NoError(t, g.SmoothWithMonteCarlo(context.Background(), 2, 3))
	for _, c := range g.lat.cells {
		assert.Contains(t, []GrainID{1, 2}, c.Grain)
	}
	assert.Equal(t, 36, g.PopulatedCount())
	assert.Equal(t, 2, g.GrainCount())
}

func TestSmoothSkipsInteriorCells(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 5, Rows: 5, Topology: Moore, Boundary: Periodic}, 4)
	ids := make([][]GrainID, 5)
	for r := range ids {
		ids[r] = []GrainID{1, 1, 1, 1, 1}
	}
	// A diagonal neighbor of grain 2 sees it through the Moore ring but not
	// across an orthogonal edge, so it is not a boundary cell.
	ids[0][0] = 2
	paint(t, g, ids)
	assert.False(t, g.lat.onBoundary(g.lat.ext.Index(1, 1)))
	assert.True(t, g.lat.onBoundary(g.lat.ext.Index(1, 0)))
}

func TestSmoothStraightBoundaryIsStableAtLowTemperature(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 8, Rows: 8, Topology: VonNeumann, Boundary: Periodic}, 5)
	ids := make([][]GrainID, 8)
	for r := range ids {
		ids[r] = []GrainID{1, 1, 1, 1, 2, 2, 2, 2}
	}
	paint(t, g, ids)
	before := g.Snapshot().Cells()

	// A flip on a straight VonNeumann boundary raises the energy from 1 to 3.
	require.NoError(t, g.SmoothWithMonteCarlo(context.Background(), 1e-6, 5))
	assert.Equal(t, before, g.Snapshot().Cells())
}

func TestSmoothValidation(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 4, Rows: 4, Topology: Moore}, 1)
	require.NoError(t, g.NucleateRandom(4))
	ctx := context.Background()
	assert.ErrorIs(t, g.SmoothWithMonteCarlo(ctx, 0, 1), ErrInvalidArgument)
	assert.ErrorIs(t, g.SmoothWithMonteCarlo(ctx, -1, 1), ErrInvalidArgument)
	assert.ErrorIs(t, g.SmoothWithMonteCarlo(ctx, 1, -1), ErrInvalidArgument)
	assert.NoError(t, g.SmoothWithMonteCarlo(ctx, 1, 0))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, g.SmoothWithMonteCarlo(cancelled, 1, 3), context.Canceled)
}

func TestBoundaryEnergyIgnoresSentinel(t *testing.T) {
	nb := Neighborhood{Counts: map[GrainID]int{Sentinel: 3, 1: 2, 2: 3}}
	assert.Equal(t, 3, boundaryEnergy(nb, 1))
	assert.Equal(t, 2, boundaryEnergy(nb, 2))
	assert.Equal(t, 5, boundaryEnergy(nb, 4))
}
