package grain

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"grain-ca/internal/core"
)

// NucleateRecrystallized turns every boundary cell whose dislocation density
// exceeds criticalDensity into the nucleus of a new recrystallized grain. The
// nucleus keeps criticalDensity as its density. Cells are selected from a
// snapshot so earlier conversions in the pass do not change later decisions.
// It returns the number of nuclei created.
func (g *Grid) NucleateRecrystallized(criticalDensity float64) (int, error) {
	if !(criticalDensity >= 0) || math.IsInf(criticalDensity, 0) {
		return 0, fmt.Errorf("critical density %v: %w", criticalDensity, ErrInvalidArgument)
	}
	prev := g.Snapshot()
	var nuclei []int
	for i := range prev.lat.cells {
		if prev.lat.cells[i].Density > criticalDensity && prev.lat.onBoundary(i) {
			nuclei = append(nuclei, i)
		}
	}
	for _, idx := range nuclei {
		g.claim(idx, true)
		c := &g.lat.cells[idx]
		c.Recrystallized = true
		c.Density = criticalDensity
	}
	g.log.WithFields(logrus.Fields{"critical": criticalDensity, "nuclei": len(nuclei)}).Info("recrystallization nucleated")
	return len(nuclei), nil
}

// Recrystallize advances recrystallization fronts by one synchronous step. A
// cell converts when at least one neighbor is recrystallized and no
// unconverted neighbor holds less stored energy than the cell itself; it
// joins the recrystallized grain most common among its neighbors and drops
// its density to zero. It returns the number of converted cells. Nothing is
// changed when an error is returned.
func (g *Grid) Recrystallize() (int, error) {
	prev := g.Snapshot()
	topo := g.lat.layout.Topology
	var next []adoption
	for i := range prev.lat.cells {
		c := &prev.lat.cells[i]
		if c.Recrystallized {
			continue
		}
		nb := prev.lat.neighborhood(c.Row, c.Column, topo, g.rng)
		tally := make(map[GrainID]int)
		recrystallized := 0
		eligible := true
		for _, idx := range nb.Indices {
			if idx == VirtualIndex {
				continue
			}
			n := &prev.lat.cells[idx]
			if n.Recrystallized {
				recrystallized++
				if n.Grain != Sentinel {
					tally[n.Grain]++
				}
				continue
			}
			if n.Density < c.Density {
				eligible = false
				break
			}
		}
		if !eligible || recrystallized == 0 {
			continue
		}
		winners := Neighborhood{Counts: tally}.Dominant()
		if len(winners) == 0 {
			return 0, fmt.Errorf("cell (%d, %d) has %d recrystallized neighbors but no recrystallized grain: %w",
				c.Row, c.Column, recrystallized, ErrInvariantViolation)
		}
		next = append(next, adoption{idx: i, grain: core.Pick(g.rng, winners)})
	}
	for _, a := range next {
		c := &g.lat.cells[a.idx]
		if c.Grain == Sentinel {
			g.populated++
		}
		c.Grain = a.grain
		c.Recrystallized = true
		c.Density = 0
	}
	g.log.WithField("converted", len(next)).Debug("recrystallization step")
	return len(next), nil
}

// RecrystallizeAll repeats Recrystallize until a step converts nothing or
// maxSteps steps have run (maxSteps <= 0 means no limit). It returns the
// number of steps that converted cells.
func (g *Grid) RecrystallizeAll(ctx context.Context, maxSteps int) (int, error) {
	ran := 0
	for maxSteps <= 0 || ran < maxSteps {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		n, err := g.Recrystallize()
		if err != nil {
			return ran, err
		}
		if n == 0 {
			break
		}
		ran++
	}
	return ran, nil
}
