package grain

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"grain-ca/internal/core"
)

const (
	boundaryAcceptance = 0.8
	interiorAcceptance = 0.2
	// stepEpsilon absorbs float error when counting dt steps in a duration.
	stepEpsilon = 1e-9
)

// PoolSample is one point of the dislocation pool curve.
type PoolSample struct {
	Time float64
	Pool float64
}

// PoolSink receives the pool curve while SpreadDislocations runs.
type PoolSink interface {
	RecordPool(t, pool float64)
}

// PoolTrace collects pool samples in memory.
type PoolTrace struct {
	Samples []PoolSample
}

// RecordPool appends a sample.
func (p *PoolTrace) RecordPool(t, pool float64) {
	p.Samples = append(p.Samples, PoolSample{Time: t, Pool: pool})
}

// DislocationPool evaluates the accumulated dislocation pool at time t:
// A/B + (1 - A/B) * exp(-B*t).
func DislocationPool(a, b, t float64) float64 {
	ratio := a / b
	return ratio + (1-ratio)*math.Exp(-b*t)
}

// SpreadDislocations resets every density to zero and then accumulates the
// dislocation pool over [dt, duration] in steps of dt. Each step's pool
// increment is split: firstSetPercentage percent goes to every cell in equal
// shares, the rest is dealt out in random packages that stick to boundary
// cells more readily than to grain interiors. The context is checked between
// time steps.
func (g *Grid) SpreadDislocations(ctx context.Context, a, b, duration, dt, firstSetPercentage float64) error {
	switch {
	case !(b > 0) || math.IsInf(b, 0):
		return fmt.Errorf("dislocation B %v must be positive: %w", b, ErrInvalidArgument)
	case math.IsNaN(a) || math.IsInf(a, 0):
		return fmt.Errorf("dislocation A %v: %w", a, ErrInvalidArgument)
	case !(dt > 0):
		return fmt.Errorf("dislocation dt %v must be positive: %w", dt, ErrInvalidArgument)
	case !(duration >= dt):
		return fmt.Errorf("dislocation duration %v shorter than dt %v: %w", duration, dt, ErrInvalidArgument)
	case !(firstSetPercentage >= 0 && firstSetPercentage <= 100):
		return fmt.Errorf("dislocation first set percentage %v outside [0, 100]: %w", firstSetPercentage, ErrInvalidArgument)
	}

	for i := range g.lat.cells {
		g.lat.cells[i].Density = 0
	}
	boundary := g.BoundaryMask()
	steps := int(math.Floor(duration/dt + stepEpsilon))
	prev := DislocationPool(a, b, 0)
	for k := 1; k <= steps; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := float64(k) * dt
		pool := DislocationPool(a, b, t)
		if g.sink != nil {
			g.sink.RecordPool(t, pool)
		}
		increment := pool - prev
		prev = pool
		if increment <= 0 {
			continue
		}
		shared := increment * firstSetPercentage / 100
		g.shareEvenly(shared)
		g.dealPackages(increment-shared, boundary)
		g.log.WithFields(logrus.Fields{"t": t, "pool": pool, "increment": increment}).Debug("dislocation step")
	}
	return nil
}

func (g *Grid) shareEvenly(amount float64) {
	if amount <= 0 {
		return
	}
	each := amount / float64(len(g.lat.cells))
	for i := range g.lat.cells {
		g.lat.cells[i].Density += each
	}
}

// dealPackages hands out amount in packages averaging one cell's fair share.
// A package offered to a cell is kept with probability 0.8 on a boundary and
// 0.2 inside a grain; rejected packages are offered again elsewhere.
func (g *Grid) dealPackages(amount float64, boundary []bool) {
	total := len(g.lat.cells)
	maxPackage := 2 * amount / float64(total)
	for remaining := amount; remaining > 0; {
		pkg := math.Min(remaining, g.rng.Float64()*maxPackage)
		idx := g.rng.IntN(total)
		p := interiorAcceptance
		if boundary[idx] {
			p = boundaryAcceptance
		}
		if !core.Chance(g.rng, p) {
			continue
		}
		g.lat.cells[idx].Density += pkg
		remaining -= pkg
	}
}
