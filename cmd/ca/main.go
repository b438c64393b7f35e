//go:build ebiten

package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"grain-ca/internal/app"
	"grain-ca/internal/core"
	_ "grain-ca/internal/sims/graingrowth"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logrus.Fatalf("unknown sim %q, available: %v", cfg.Sim, core.SimNames())
	}

	sim := factory(cfg.SimOptions())
	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("grain-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logrus.Fatal(err)
	}
}
