//go:build ebiten

package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"grain-ca/internal/core"
	"grain-ca/internal/render"
	"grain-ca/internal/ui"
)

type viewCycler interface {
	CycleView()
}

type nucleusPlacer interface {
	PlaceNucleusAt(row, col int) bool
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		timer:    core.NewFixedStep(cfg.SPS),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.timer.Reset()
	logrus.WithField("seed", seed).Info("simulation reset")
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if c, ok := g.sim.(viewCycler); ok {
			c.CycleView()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.timer.SetRate(g.timer.Rate() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.timer.SetRate(max(g.timer.Rate()/2, 1))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.placeNucleus(ebiten.CursorPosition())
	}

	g.overlay.Update()

	if g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	} else if !g.paused && !g.sim.Done() && g.timer.ShouldStep() {
		g.sim.Step()
	}
	g.hud.Update(g.status())
	return nil
}

func (g *Game) placeNucleus(x, y int) {
	p, ok := g.sim.(nucleusPlacer)
	if !ok || g.scale <= 0 {
		return
	}
	row, col := y/g.scale, x/g.scale
	if p.PlaceNucleusAt(row, col) {
		logrus.WithFields(logrus.Fields{"row": row, "col": col}).Debug("nucleus placed")
	}
}

func (g *Game) status() string {
	switch {
	case g.sim.Done():
		return "finished"
	case g.paused:
		return "paused"
	}
	return fmt.Sprintf("%d steps/s", g.timer.Rate())
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
