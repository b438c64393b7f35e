//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"grain-ca/internal/core"
)

const (
	panelPadding = 12
	lineHeight   = 15
	titleHeight  = 24
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hintColor  = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot
	title    string
	status   string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
}

// Update refreshes the cached parameter snapshot. status is shown under the
// title, typically the pause state and step rate.
func (h *HUD) Update(status string) {
	if h == nil {
		return
	}
	h.status = status
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
		return
	}
	h.snapshot = core.ParameterSnapshot{}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + 10
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	if h.status != "" {
		y += lineHeight
		text.Draw(h.panel, h.status, face, panelPadding, y, hintColor)
	}
	y += titleHeight
	for _, line := range panelLines(h.snapshot) {
		if y > height-len(keyHints)*lineHeight-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
		y += lineHeight
	}
	y = height - panelPadding - (len(keyHints)-1)*lineHeight
	for _, hint := range keyHints {
		text.Draw(h.panel, hint, face, panelPadding, y, hintColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
