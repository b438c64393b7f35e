package graingrowth

import (
	"image/color"

	"grain-ca/internal/grain"
	"grain-ca/internal/render"
)

// View selects what Paint renders.
type View int

const (
	ViewGrains View = iota
	ViewDensity
	ViewRecrystallized
	ViewBoundaries
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewGrains:
		return "grains"
	case ViewDensity:
		return "density"
	case ViewRecrystallized:
		return "recrystallized"
	case ViewBoundaries:
		return "boundaries"
	}
	return "unknown"
}

var (
	boundaryColor       = color.RGBA{A: 255}
	recrystallizedColor = color.RGBA{R: 200, G: 30, B: 40, A: 255}
	deformedColor       = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// View returns the active view.
func (w *World) View() View { return w.view }

// SetView selects the view Paint renders.
func (w *World) SetView(v View) {
	if v < 0 || v >= viewCount {
		v = ViewGrains
	}
	w.view = v
}

// CycleView advances to the next view.
func (w *World) CycleView() {
	w.view = (w.view + 1) % viewCount
	w.log.WithField("view", w.view.String()).Debug("view changed")
}

// Paint renders the current view as RGBA pixels.
func (w *World) Paint(buf []byte) {
	if w.grid == nil {
		return
	}
	snap := w.grid.Snapshot()
	switch w.view {
	case ViewDensity:
		paintDensity(buf, snap, w.cfg.CriticalDensity())
	case ViewRecrystallized:
		for i := 0; i < snap.Len(); i++ {
			c := snap.At(i)
			switch {
			case c.Recrystallized:
				render.PutRGBA(buf, i, recrystallizedColor)
			case c.Grain == grain.Sentinel:
				render.PutRGBA(buf, i, rgba(grain.SentinelColor))
			default:
				render.PutRGBA(buf, i, deformedColor)
			}
		}
	case ViewBoundaries:
		for i := 0; i < snap.Len(); i++ {
			c := snap.At(i)
			if snap.OnBoundary(c.Row, c.Column) {
				render.PutRGBA(buf, i, boundaryColor)
				continue
			}
			render.PutRGBA(buf, i, rgba(c.Color))
		}
	default:
		for i := 0; i < snap.Len(); i++ {
			render.PutRGBA(buf, i, rgba(snap.At(i).Color))
		}
	}
}

// paintDensity scales densities against the critical density, so red marks
// cells that can nucleate.
func paintDensity(buf []byte, snap *grain.Snapshot, critical float64) {
	scale := critical
	if scale <= 0 {
		for i := 0; i < snap.Len(); i++ {
			if d := snap.At(i).Density; d > scale {
				scale = d
			}
		}
	}
	for i := 0; i < snap.Len(); i++ {
		c := snap.At(i)
		if c.Recrystallized {
			render.PutRGBA(buf, i, recrystallizedColor)
			continue
		}
		t := 0.0
		if scale > 0 {
			t = c.Density / scale
		}
		render.PutRGBA(buf, i, render.Heat(t))
	}
}

func rgba(c grain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// BoundaryMask flags grain boundary cells for overlays.
func (w *World) BoundaryMask() []bool {
	if w.grid == nil {
		return nil
	}
	return w.grid.BoundaryMask()
}

// DensityMask returns each cell's density relative to the critical density,
// clamped to [0, 1]. Recrystallized cells report zero.
func (w *World) DensityMask() []float32 {
	if w.grid == nil {
		return nil
	}
	snap := w.grid.Snapshot()
	critical := w.cfg.CriticalDensity()
	mask := make([]float32, snap.Len())
	if critical <= 0 {
		return mask
	}
	for i := range mask {
		c := snap.At(i)
		if c.Recrystallized {
			continue
		}
		mask[i] = float32(min(c.Density/critical, 1))
	}
	return mask
}
