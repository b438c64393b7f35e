package grain

import (
	"context"

	"grain-ca/internal/core"
)

type adoption struct {
	idx   int
	grain GrainID
}

// Evolve advances growth by one synchronous generation and returns the
// number of cells claimed. Every unclaimed cell takes the grain that occupies
// most of its neighbors in the previous generation, with ties broken at
// random. It is a no-op once the grid is fully populated.
func (g *Grid) Evolve() int {
	if g.IsFullyPopulated() {
		return 0
	}
	prev := g.Snapshot()
	topo := g.lat.layout.Topology
	var next []adoption
	for i := range prev.lat.cells {
		c := &prev.lat.cells[i]
		if c.Grain != Sentinel {
			continue
		}
		winners := prev.lat.neighborhood(c.Row, c.Column, topo, g.rng).Dominant()
		if len(winners) == 0 {
			continue
		}
		next = append(next, adoption{idx: i, grain: core.Pick(g.rng, winners)})
	}
	for _, a := range next {
		g.lat.cells[a.idx].Grain = a.grain
	}
	g.populated += len(next)
	if len(next) > 0 {
		g.generation++
	}
	g.log.WithField("generation", g.generation).WithField("claimed", len(next)).Debug("evolved grid")
	return len(next)
}

// Grow calls Evolve until the grid is full, a generation claims nothing, or
// maxGenerations have run (maxGenerations <= 0 means no limit). The context
// is checked between generations. It returns the number of generations that
// claimed cells.
func (g *Grid) Grow(ctx context.Context, maxGenerations int) (int, error) {
	ran := 0
	for !g.IsFullyPopulated() {
		if maxGenerations > 0 && ran >= maxGenerations {
			break
		}
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		if g.Evolve() == 0 {
			break
		}
		ran++
	}
	return ran, nil
}
