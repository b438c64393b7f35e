//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"grain-ca/internal/core"
)

// GridPainter keeps one image per grid and refreshes it from a sim's pixels.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit paints sim into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, sim core.Sim, scale int) {
	if s := sim.Size(); s.W != gp.w || s.H != gp.h {
		return
	}
	sim.Paint(gp.buf)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
