//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"grain-ca/internal/core"
)

type boundaryProvider interface {
	BoundaryMask() []bool
}

type densityProvider interface {
	DensityMask() []float32
}

// Overlay draws optional masks on top of the base simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showBoundary bool
	showDensity  bool
	maskImg      *ebiten.Image
	maskBuf      []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles the masks: B for grain boundaries, D for stored energy.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBoundary = !o.showBoundary
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDensity = !o.showDensity
	}
}

// Draw renders the enabled masks onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 || (!o.showBoundary && !o.showDensity) {
		return
	}
	if o.maskImg == nil || len(o.maskBuf) != 4*total {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	if o.showDensity {
		if p, ok := o.sim.(densityProvider); ok {
			mask := p.DensityMask()
			if len(mask) == total {
				for i, v := range mask {
					o.put(i, color.RGBA{R: 255, G: 120, B: 40}, maskAlpha(float64(v), 160))
				}
				o.blit(screen)
			}
		}
	}
	if o.showBoundary {
		if p, ok := o.sim.(boundaryProvider); ok {
			mask := p.BoundaryMask()
			if len(mask) == total {
				for i, on := range mask {
					a := uint8(0)
					if on {
						a = 200
					}
					o.put(i, color.RGBA{}, a)
				}
				o.blit(screen)
			}
		}
	}
}

// put stores a premultiplied pixel.
func (o *Overlay) put(i int, c color.RGBA, alpha uint8) {
	base := i * 4
	o.maskBuf[base+0] = uint8(uint16(c.R) * uint16(alpha) / 255)
	o.maskBuf[base+1] = uint8(uint16(c.G) * uint16(alpha) / 255)
	o.maskBuf[base+2] = uint8(uint16(c.B) * uint16(alpha) / 255)
	o.maskBuf[base+3] = alpha
}

func (o *Overlay) blit(screen *ebiten.Image) {
	o.maskImg.WritePixels(o.maskBuf)
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
