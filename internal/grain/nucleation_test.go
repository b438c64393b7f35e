package grain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nucleiOf(g *Grid) []Cell {
	var out []Cell
	for _, c := range g.lat.cells {
		if c.Grain != Sentinel {
			out = append(out, c)
		}
	}
	return out
}

func TestNucleateUniformPositions(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 10, Rows: 9, Topology: Moore}, 1)
	require.NoError(t, g.NucleateUniform(1, 2))

	// One nucleus across the width (step 5), two down the height (step 3).
	assert.Equal(t, 2, g.PopulatedCount())
	assert.NotEqual(t, Sentinel, cellAt(g, 3, 5).Grain)
	assert.NotEqual(t, Sentinel, cellAt(g, 6, 5).Grain)
	assert.NotEqual(t, cellAt(g, 3, 5).Grain, cellAt(g, 6, 5).Grain)
	assert.Equal(t, 2, g.GrainCount())
}

func TestNucleateUniformRejectsBadCounts(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 10, Rows: 10, Topology: Moore}, 1)
	require.NoError(t, g.NucleateRandom(5))

	for _, counts := range [][2]int{{0, 3}, {3, 0}, {-1, -1}} {
		err := g.NucleateUniform(counts[0], counts[1])
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
	assert.Equal(t, 5, g.PopulatedCount(), "failed nucleation must not clear the grid")
	assert.Equal(t, 5, g.GrainCount())
}

func TestNucleateRandom(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 8, Rows: 8, Topology: Moore}, 7)
	require.NoError(t, g.NucleateRandom(20))
	assert.Equal(t, 20, g.PopulatedCount())
	assert.Len(t, nucleiOf(g), 20)

	// Clearing and re-nucleating resets the registry to the new grains.
	require.NoError(t, g.NucleateRandom(3))
	assert.Equal(t, 3, g.PopulatedCount())
	assert.Equal(t, 3, g.GrainCount())
	ids := map[GrainID]bool{}
	for _, c := range nucleiOf(g) {
		ids[c.Grain] = true
	}
	assert.Equal(t, map[GrainID]bool{1: true, 2: true, 3: true}, ids)

	assert.ErrorIs(t, g.NucleateRandom(0), ErrInvalidArgument)
	assert.ErrorIs(t, g.NucleateRandom(65), ErrInvalidArgument)
	assert.Equal(t, 3, g.PopulatedCount())

	require.NoError(t, g.NucleateRandom(64))
	assert.True(t, g.IsFullyPopulated())
}

func TestNucleateRandomWithRadiusKeepsDistance(t *testing.T) {
	for _, boundary := range []Boundary{Absorbing, Periodic} {
		t.Run(boundary.String(), func(t *testing.T) {
			g := mustGrid(t, Layout{Columns: 30, Rows: 20, Topology: Moore, Boundary: boundary}, 11)
			placed, err := g.NucleateRandomWithRadius(15, 3)
			require.NoError(t, err)
			assert.Equal(t, 15, placed)

			nuclei := nucleiOf(g)
			require.Len(t, nuclei, placed)
			assert.Equal(t, placed, g.PopulatedCount())
			layout := g.Layout()
			for i := range nuclei {
				for j := i + 1; j < len(nuclei); j++ {
					d := layout.Distance(nuclei[i].Row, nuclei[i].Column, nuclei[j].Row, nuclei[j].Column)
					assert.Greater(t, d, 3.0)
				}
			}
		})
	}
}

func TestNucleateRandomWithRadiusReportsPartialResult(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 10, Rows: 10, Topology: Moore, Boundary: Periodic}, 5)
	placed, err := g.NucleateRandomWithRadius(50, 5)
	require.NoError(t, err)
	assert.Less(t, placed, 50)
	assert.GreaterOrEqual(t, placed, 1)
	assert.Equal(t, placed, g.PopulatedCount())
	assert.Equal(t, placed, g.GrainCount())
	assert.Empty(t, g.roomWithin(5), "early stop only when no room is left")
}

func TestNucleateRandomWithRadiusValidation(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 10, Rows: 6, Topology: Moore}, 5)
	require.True(t, g.PlaceNucleusAt(1, 1))
	for _, args := range [][2]int{{5, 0}, {5, 4}, {0, 2}} {
		_, err := g.NucleateRandomWithRadius(args[0], args[1])
		assert.ErrorIs(t, err, ErrInvalidArgument, "args %v", args)
	}
	assert.Equal(t, 1, g.PopulatedCount())
}

func TestPlaceNucleusAt(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 4, Rows: 3, Topology: VonNeumann}, 2)
	assert.True(t, g.PlaceNucleusAt(2, 3))
	assert.False(t, g.PlaceNucleusAt(2, 3), "occupied")
	assert.False(t, g.PlaceNucleusAt(3, 0), "row out of range")
	assert.False(t, g.PlaceNucleusAt(0, -1), "column out of range")
	assert.Equal(t, 1, g.PopulatedCount())
}

func TestGrainColorsAreUnique(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 40, Rows: 40, Topology: Moore}, 3)
	require.NoError(t, g.NucleateRandom(1200))
	seen := map[Color]GrainID{}
	for _, gr := range g.Snapshot().Grains()[1:] {
		assert.NotEqual(t, SentinelColor, gr.Color)
		if prev, dup := seen[gr.Color]; dup {
			t.Fatalf("grains %d and %d share color %s", prev, gr.ID, gr.Color)
		}
		seen[gr.Color] = gr.ID
	}
	assert.Len(t, seen, 1200)
}

func TestNucleationIsDeterministicForSeed(t *testing.T) {
	layout := Layout{Columns: 16, Rows: 16, Topology: Moore}
	a := mustGrid(t, layout, 99)
	b := mustGrid(t, layout, 99)
	_, err := a.NucleateRandomWithRadius(10, 2)
	require.NoError(t, err)
	_, err = b.NucleateRandomWithRadius(10, 2)
	require.NoError(t, err)
	assert.Equal(t, a.Snapshot().Cells(), b.Snapshot().Cells())
}

func TestSampleEmptyRedrawsClaimedCells(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 3, Rows: 3, Topology: Moore}, 8)
	paint(t, g, [][]GrainID{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	hole := g.lat.ext.Index(1, 1)
	for i := 0; i < 20; i++ {
		idx, free := g.sampleEmpty(1)
		require.Equal(t, hole, idx, "only the empty cell may be drawn")
		assert.False(t, free, "the hole touches claimed cells")
	}

	paint(t, g, [][]GrainID{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	idx, free := g.sampleEmpty(1)
	assert.Equal(t, -1, idx)
	assert.False(t, free)
}

func TestSampleEmptyReportsFreeCells(t *testing.T) {
	g := mustGrid(t, Layout{Columns: 9, Rows: 9, Topology: Moore, Boundary: Absorbing}, 3)
	require.True(t, g.PlaceNucleusAt(0, 0))
	for i := 0; i < 50; i++ {
		idx, free := g.sampleEmpty(2)
		require.NotEqual(t, 0, idx)
		c := g.lat.cells[idx]
		near := c.Row*c.Row+c.Column*c.Column <= 6
		assert.Equal(t, !near, free, "cell (%d, %d)", c.Row, c.Column)
	}
}
