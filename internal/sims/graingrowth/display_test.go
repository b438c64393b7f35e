package graingrowth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grain-ca/internal/grain"
)

func pixel(buf []byte, i int) [4]byte {
	return [4]byte{buf[4*i], buf[4*i+1], buf[4*i+2], buf[4*i+3]}
}

func TestPaintGrainsUsesGrainColors(t *testing.T) {
	w, err := New(smallConfig())
	require.NoError(t, err)
	buf := make([]byte, 4*20*20)
	w.Paint(buf)

	snap := w.Grid().Snapshot()
	for i := 0; i < snap.Len(); i++ {
		c := snap.At(i)
		want := [4]byte{c.Color.R, c.Color.G, c.Color.B, 255}
		require.Equal(t, want, pixel(buf, i), "cell %d", i)
		if c.Grain == grain.Sentinel {
			require.Equal(t, [4]byte{255, 255, 255, 255}, pixel(buf, i))
		}
	}
}

func TestPaintRecrystallizedView(t *testing.T) {
	w, err := New(smallConfig())
	require.NoError(t, err)
	require.NoError(t, w.Run(context.Background()))
	w.SetView(ViewRecrystallized)

	buf := make([]byte, 4*20*20)
	w.Paint(buf)
	snap := w.Grid().Snapshot()
	red, grey := 0, 0
	for i := 0; i < snap.Len(); i++ {
		switch pixel(buf, i) {
		case [4]byte{recrystallizedColor.R, recrystallizedColor.G, recrystallizedColor.B, 255}:
			red++
			assert.True(t, snap.At(i).Recrystallized)
		case [4]byte{deformedColor.R, deformedColor.G, deformedColor.B, 255}:
			grey++
			assert.False(t, snap.At(i).Recrystallized)
		}
	}
	assert.Equal(t, snap.Len(), red+grey)
	assert.Equal(t, w.Grid().Stats().Recrystallized, red)
}

func TestPaintBoundariesMarksMask(t *testing.T) {
	cfg := smallConfig()
	cfg.Annealing.Enabled = false
	cfg.Dislocations.Enabled = false
	cfg.Recrystallization.Enabled = false
	w, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, w.Run(context.Background()))
	w.SetView(ViewBoundaries)

	buf := make([]byte, 4*20*20)
	w.Paint(buf)
	for i, onBoundary := range w.BoundaryMask() {
		if onBoundary {
			assert.Equal(t, [4]byte{0, 0, 0, 255}, pixel(buf, i))
		}
	}
}

func TestDensityMaskIsClamped(t *testing.T) {
	cfg := smallConfig()
	cfg.Recrystallization.Enabled = false
	cfg.Recrystallization.CriticalPool = 1
	w, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, w.Run(context.Background()))

	mask := w.DensityMask()
	require.Len(t, mask, 400)
	for _, v := range mask {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	buf := make([]byte, 4*20*20)
	w.SetView(ViewDensity)
	w.Paint(buf)
	assert.Equal(t, byte(255), buf[3])
}

func TestCycleView(t *testing.T) {
	w, err := New(smallConfig())
	require.NoError(t, err)
	assert.Equal(t, ViewGrains, w.View())
	for _, want := range []View{ViewDensity, ViewRecrystallized, ViewBoundaries, ViewGrains} {
		w.CycleView()
		assert.Equal(t, want, w.View())
	}

	w.SetView(View(99))
	assert.Equal(t, ViewGrains, w.View())
}

func TestParametersReportState(t *testing.T) {
	w, err := New(smallConfig())
	require.NoError(t, err)

	snap := w.Parameters()
	p, ok := snap.Lookup("phase")
	require.True(t, ok)
	assert.Equal(t, "growth", p.Value)
	p, ok = snap.Lookup("topology")
	require.True(t, ok)
	assert.Equal(t, "moore", p.Value)
	p, ok = snap.Lookup("populated")
	require.True(t, ok)
	assert.Equal(t, "8", p.Value)

	require.NoError(t, w.Run(context.Background()))
	p, _ = w.Parameters().Lookup("phase")
	assert.Equal(t, "done", p.Value)
}
