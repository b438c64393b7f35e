package grain

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"grain-ca/internal/core"
)

// SmoothWithMonteCarlo relaxes grain boundaries with the Metropolis
// algorithm. Each iteration visits every cell once in random order; cells on
// a boundary try switching to a random neighboring grain and keep the switch
// when it does not raise the boundary energy, or otherwise with probability
// exp(-dE/kT). The context is checked between iterations.
func (g *Grid) SmoothWithMonteCarlo(ctx context.Context, kT float64, iterations int) error {
	if kT <= 0 || math.IsNaN(kT) || math.IsInf(kT, 0) {
		return fmt.Errorf("monte carlo kT %v: %w", kT, ErrInvalidArgument)
	}
	if iterations < 0 {
		return fmt.Errorf("monte carlo iterations %d: %w", iterations, ErrInvalidArgument)
	}
	topo := g.lat.layout.Topology
	for it := 0; it < iterations; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		flips := 0
		for _, idx := range g.rng.Perm(len(g.lat.cells)) {
			c := &g.lat.cells[idx]
			if c.Grain == Sentinel || !g.lat.onBoundary(idx) {
				continue
			}
			nb := g.lat.neighborhood(c.Row, c.Column, topo, g.rng)
			candidates := nb.Grains()
			candidates = removeGrain(candidates, c.Grain)
			if len(candidates) == 0 {
				continue
			}
			old := c.Grain
			before := boundaryEnergy(nb, old)
			proposed := core.Pick(g.rng, candidates)
			after := boundaryEnergy(nb, proposed)
			delta := float64(after - before)
			if delta <= 0 || core.Chance(g.rng, math.Exp(-delta/kT)) {
				c.Grain = proposed
				flips++
			}
		}
		g.log.WithFields(logrus.Fields{"iteration": it + 1, "flips": flips}).Debug("monte carlo sweep")
	}
	return nil
}

// boundaryEnergy counts neighbors owned by a real grain other than own.
func boundaryEnergy(nb Neighborhood, own GrainID) int {
	e := 0
	for g, n := range nb.Counts {
		if g != Sentinel && g != own {
			e += n
		}
	}
	return e
}

func removeGrain(ids []GrainID, id GrainID) []GrainID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
