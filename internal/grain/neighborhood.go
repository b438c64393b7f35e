package grain

import (
	"math"
	"math/rand/v2"
	"slices"

	"grain-ca/internal/core"
)

// Moore ring positions, clockwise from the top, as (row, column) deltas.
const (
	ringTop = iota
	ringTopRight
	ringRight
	ringBottomRight
	ringBottom
	ringBottomLeft
	ringLeft
	ringTopLeft
	ringSize
)

var ringDeltas = [ringSize][2]int{
	ringTop:         {-1, 0},
	ringTopRight:    {-1, 1},
	ringRight:       {0, 1},
	ringBottomRight: {1, 1},
	ringBottom:      {1, 0},
	ringBottomLeft:  {1, -1},
	ringLeft:        {0, -1},
	ringTopLeft:     {-1, -1},
}

var (
	vonNeumannRing = []int{ringTop, ringRight, ringBottom, ringLeft}
	mooreRing      = []int{ringTop, ringTopRight, ringRight, ringBottomRight, ringBottom, ringBottomLeft, ringLeft, ringTopLeft}
	leftHexRing    = []int{ringTop, ringTopRight, ringRight, ringBottom, ringBottomLeft, ringLeft}
	rightHexRing   = []int{ringLeft, ringTopLeft, ringTop, ringRight, ringBottomRight, ringBottom}

	// Five consecutive ring positions covering the top, right, bottom and
	// left half of the Moore ring.
	pentagonalRings = [4][]int{
		{ringLeft, ringTopLeft, ringTop, ringTopRight, ringRight},
		{ringTop, ringTopRight, ringRight, ringBottomRight, ringBottom},
		{ringRight, ringBottomRight, ringBottom, ringBottomLeft, ringLeft},
		{ringBottom, ringBottomLeft, ringLeft, ringTopLeft, ringTop},
	}
)

// VirtualIndex marks the shared out-of-range cell in a Neighborhood under the
// Absorbing boundary.
const VirtualIndex = -1

// Neighborhood is the resolved neighbor set of one cell.
type Neighborhood struct {
	// Indices are row-major cell indices; VirtualIndex stands for the
	// out-of-range sentinel cell.
	Indices []int
	// Counts maps each grain to the number of neighbors it occupies,
	// including the sentinel.
	Counts map[GrainID]int
}

// Len returns the number of neighbors, virtual ones included.
func (n Neighborhood) Len() int { return len(n.Indices) }

// Real returns the neighbor count excluding virtual cells.
func (n Neighborhood) Real() int {
	c := 0
	for _, idx := range n.Indices {
		if idx != VirtualIndex {
			c++
		}
	}
	return c
}

// Dominant returns the non-sentinel grains sharing the highest count, in
// ascending ID order. It is empty when only the sentinel is present.
func (n Neighborhood) Dominant() []GrainID {
	best := 0
	var winners []GrainID
	for g, c := range n.Counts {
		if g == Sentinel {
			continue
		}
		switch {
		case c > best:
			best = c
			winners = append(winners[:0], g)
		case c == best:
			winners = append(winners, g)
		}
	}
	slices.Sort(winners)
	return winners
}

// Grains returns the distinct non-sentinel grains present, ascending.
func (n Neighborhood) Grains() []GrainID {
	out := make([]GrainID, 0, len(n.Counts))
	for g := range n.Counts {
		if g != Sentinel {
			out = append(out, g)
		}
	}
	slices.Sort(out)
	return out
}

// lattice is a cell matrix plus the layout needed to navigate it. Grids own a
// mutable lattice; snapshots hold a private copy.
type lattice struct {
	layout Layout
	ext    core.Extent
	cells  []Cell
}

func (l *lattice) cell(idx int) *Cell {
	if idx == VirtualIndex {
		v := virtualCell
		return &v
	}
	return &l.cells[idx]
}

func (l *lattice) grainAt(idx int) GrainID {
	if idx == VirtualIndex {
		return Sentinel
	}
	return l.cells[idx].Grain
}

// locate resolves the cell at (row+dr, col+dc) according to the boundary
// condition, returning VirtualIndex for absorbed positions.
func (l *lattice) locate(row, col, dr, dc int) int {
	r, c := row+dr, col+dc
	if !l.ext.Contains(c, r) {
		if l.layout.Boundary != Periodic {
			return VirtualIndex
		}
		c, r = l.ext.Wrap(c, r)
	}
	return l.ext.Index(c, r)
}

// neighborhood resolves the neighbors of (row, col) under topo. rng is only
// drawn from by the random topologies.
func (l *lattice) neighborhood(row, col int, topo Topology, rng *rand.Rand) Neighborhood {
	var indices []int
	switch topo {
	case Radial, RadialWithMass:
		indices = l.radialIndices(row, col, topo == RadialWithMass)
	default:
		ring := ringFor(topo, rng)
		indices = make([]int, len(ring))
		for i, pos := range ring {
			d := ringDeltas[pos]
			indices[i] = l.locate(row, col, d[0], d[1])
		}
	}
	counts := make(map[GrainID]int, len(indices))
	for _, idx := range indices {
		counts[l.grainAt(idx)]++
	}
	return Neighborhood{Indices: indices, Counts: counts}
}

func ringFor(topo Topology, rng *rand.Rand) []int {
	switch topo {
	case VonNeumann:
		return vonNeumannRing
	case RandomPentagonal:
		return pentagonalRings[rng.IntN(len(pentagonalRings))]
	case LeftHexagonal:
		return leftHexRing
	case RightHexagonal:
		return rightHexRing
	case RandomHexagonal:
		if rng.IntN(2) == 0 {
			return leftHexRing
		}
		return rightHexRing
	default:
		return mooreRing
	}
}

// radialIndices returns every cell of the (2r+1) window around (row, col),
// center excluded, within reach of the radius. A periodic window that spans
// a whole axis lists each wrapped cell once.
func (l *lattice) radialIndices(row, col int, withMass bool) []int {
	r := l.layout.Radius
	limit := reach(r)
	center := l.cell(l.ext.Index(col, row)).MassOffset
	indices := make([]int, 0, (2*r+1)*(2*r+1))
	var seen map[int]bool
	if l.layout.Boundary == Periodic && (2*r >= l.ext.W || 2*r >= l.ext.H) {
		seen = make(map[int]bool)
	}
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			idx := l.locate(row, col, dr, dc)
			y, x := float64(dr), float64(dc)
			if withMass {
				off := l.cell(idx).MassOffset
				y += off.Y - center.Y
				x += off.X - center.X
			}
			if x*x+y*y > limit {
				continue
			}
			if seen != nil {
				if seen[idx] {
					continue
				}
				seen[idx] = true
			}
			indices = append(indices, idx)
		}
	}
	return indices
}

// reach is the squared distance threshold for a radius. The half-cell slack
// makes a radius-r disc include the lattice points a human would draw as
// inside it.
func reach(radius int) float64 {
	d := float64(radius) + 0.5
	return d * d
}

// onBoundary reports whether the cell at idx touches a different grain across
// one of its four orthogonal neighbors. The sentinel is ignored, so absorbing
// walls and unclaimed cells do not create boundaries.
func (l *lattice) onBoundary(idx int) bool {
	c := &l.cells[idx]
	own := c.Grain
	for _, pos := range vonNeumannRing {
		d := ringDeltas[pos]
		g := l.grainAt(l.locate(c.Row, c.Column, d[0], d[1]))
		if g == Sentinel || g == own {
			continue
		}
		if own == Sentinel {
			own = g
			continue
		}
		return true
	}
	return false
}

// populatedWithin reports whether any claimed cell lies within radius of
// (row, col), the center included.
func (l *lattice) populatedWithin(row, col, radius int) bool {
	limit := reach(radius)
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if float64(dr*dr+dc*dc) > limit {
				continue
			}
			idx := l.locate(row, col, dr, dc)
			if idx != VirtualIndex && l.cells[idx].Grain != Sentinel {
				return true
			}
		}
	}
	return false
}

// Distance returns the lattice distance between two cells, measured along
// the shortest wrapped path under the Periodic boundary.
func (l Layout) Distance(r1, c1, r2, c2 int) float64 {
	dr, dc := r2-r1, c2-c1
	if l.Boundary == Periodic {
		dr = core.WrapDelta(dr, l.Rows)
		dc = core.WrapDelta(dc, l.Columns)
	}
	return math.Hypot(float64(dr), float64(dc))
}

// Resolve returns the neighborhood of (row, col) in a frozen snapshot under
// topo. rng feeds the random topologies and may be nil for the others.
func Resolve(s *Snapshot, row, col int, topo Topology, rng *rand.Rand) Neighborhood {
	return s.lat.neighborhood(row, col, topo, rng)
}
