package grain

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"grain-ca/internal/core"
)

// Grid owns a cell matrix, its layout and the grains registered on it.
type Grid struct {
	lat       lattice
	grains    *registry
	populated int
	// generation counts Evolve calls that changed the grid since the last
	// Clear.
	generation int

	rng  *rand.Rand
	log  logrus.FieldLogger
	sink PoolSink
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithRand injects the generator used for every random decision.
func WithRand(r *rand.Rand) Option {
	return func(g *Grid) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds a fresh deterministic generator.
func WithSeed(seed int64) Option {
	return func(g *Grid) { g.rng = core.NewRand(seed) }
}

// WithLogger routes grid diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// WithPoolSink receives the (time, pool) samples of SpreadDislocations.
func WithPoolSink(s PoolSink) Option {
	return func(g *Grid) { g.sink = s }
}

// New builds an empty grid. Every cell starts on the sentinel grain with zero
// density and receives its fixed mass offset.
func New(layout Layout, opts ...Option) (*Grid, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		lat: lattice{
			layout: layout,
			ext:    core.NewExtent(layout.Columns, layout.Rows),
			cells:  make([]Cell, layout.CellCount()),
		},
		grains: newRegistry(),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = core.NewRand(1)
	}
	g.log = g.log.WithField("component", "grain")
	for i := range g.lat.cells {
		col, row := g.lat.ext.Coords(i)
		g.lat.cells[i] = Cell{
			Row:    row,
			Column: col,
			Grain:  Sentinel,
			MassOffset: Offset{
				X: g.rng.Float64() - 0.5,
				Y: g.rng.Float64() - 0.5,
			},
		}
	}
	return g, nil
}

// Layout returns the grid's fixed configuration.
func (g *Grid) Layout() Layout { return g.lat.layout }

// PopulatedCount returns the number of cells owned by a real grain.
func (g *Grid) PopulatedCount() int { return g.populated }

// IsFullyPopulated reports whether every cell belongs to a real grain.
func (g *Grid) IsFullyPopulated() bool { return g.populated == len(g.lat.cells) }

// Generation returns the number of growth generations since the last Clear.
func (g *Grid) Generation() int { return g.generation }

// Cell returns a copy of the cell at (row, col).
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.lat.ext.Contains(col, row) {
		return Cell{}, false
	}
	return g.lat.cells[g.lat.ext.Index(col, row)], true
}

// Grain looks up a registered grain.
func (g *Grid) Grain(id GrainID) (Grain, bool) { return g.grains.get(id) }

// GrainCount returns the number of registered grains, the sentinel excluded.
func (g *Grid) GrainCount() int { return len(g.grains.grains) - 1 }

// Clear resets every cell to the sentinel grain, zero density and not
// recrystallized, and drops every registered grain. Mass offsets survive.
func (g *Grid) Clear() {
	for i := range g.lat.cells {
		c := &g.lat.cells[i]
		c.Grain = Sentinel
		c.Density = 0
		c.Recrystallized = false
	}
	g.grains.reset()
	g.populated = 0
	g.generation = 0
}

// Snapshot freezes the current state.
func (g *Grid) Snapshot() *Snapshot {
	return &Snapshot{
		lat: lattice{
			layout: g.lat.layout,
			ext:    g.lat.ext,
			cells:  append([]Cell(nil), g.lat.cells...),
		},
		grains: g.grains.clone(),
	}
}

// BoundaryMask flags every cell that touches a different grain across an
// orthogonal neighbor.
func (g *Grid) BoundaryMask() []bool {
	mask := make([]bool, len(g.lat.cells))
	for i := range g.lat.cells {
		mask[i] = g.lat.onBoundary(i)
	}
	return mask
}

// Stats summarizes a grid for progress reporting.
type Stats struct {
	Generation     int
	Populated      int
	Cells          int
	Grains         int
	Recrystallized int
	BoundaryCells  int
	MeanDensity    float64
	MaxDensity     float64
	TotalDensity   float64
}

// Stats computes summary statistics over the current state.
func (g *Grid) Stats() Stats {
	s := Stats{
		Generation: g.generation,
		Populated:  g.populated,
		Cells:      len(g.lat.cells),
		Grains:     g.GrainCount(),
	}
	densities := make([]float64, len(g.lat.cells))
	for i := range g.lat.cells {
		c := &g.lat.cells[i]
		densities[i] = c.Density
		if c.Recrystallized {
			s.Recrystallized++
		}
		if g.lat.onBoundary(i) {
			s.BoundaryCells++
		}
	}
	if len(densities) > 0 {
		s.TotalDensity = floats.Sum(densities)
		s.MeanDensity = s.TotalDensity / float64(len(densities))
		s.MaxDensity = floats.Max(densities)
	}
	return s
}

// claim assigns a freshly registered grain to the cell at idx.
func (g *Grid) claim(idx int, recrystallized bool) GrainID {
	id := g.grains.add(g.rng, recrystallized)
	c := &g.lat.cells[idx]
	if c.Grain == Sentinel {
		g.populated++
	}
	c.Grain = id
	return id
}
