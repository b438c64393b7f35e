// Package grain simulates grain growth, Monte Carlo boundary smoothing,
// dislocation accumulation and static recrystallization on a 2D cellular
// grid.
//
// A Grid is mutated in place by its operations and is not safe for
// concurrent use. All randomness comes from the generator injected with
// WithRand or WithSeed, so runs with the same seed and call sequence are
// reproducible.
package grain

import (
	"fmt"
	"math/rand/v2"
)

// GrainID identifies a grain within one grid. IDs are dense: a grid's
// registry stores grain n at index n.
type GrainID int

// Sentinel is the grain of every cell that has not been claimed yet, and of
// the virtual cell that stands in for out-of-range neighbors.
const Sentinel GrainID = 0

// Color is an opaque RGB display color.
type Color struct {
	R, G, B uint8
}

// SentinelColor is reserved for unclaimed cells; real grains never use it.
var SentinelColor = Color{R: 255, G: 255, B: 255}

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Grain is a registered grain identity.
type Grain struct {
	ID    GrainID
	Color Color
	// Recrystallized marks grains created by recrystallization nucleation.
	Recrystallized bool
}

// registry hands out grain IDs and keeps colors unique until reset.
type registry struct {
	grains []Grain
	colors map[Color]struct{}
}

func newRegistry() *registry {
	r := &registry{}
	r.reset()
	return r
}

func (r *registry) reset() {
	r.grains = append(r.grains[:0], Grain{ID: Sentinel, Color: SentinelColor})
	r.colors = map[Color]struct{}{SentinelColor: {}}
}

// add registers a new grain with a color distinct from every grain already
// registered, regenerating on collision.
func (r *registry) add(rng *rand.Rand, recrystallized bool) GrainID {
	id := GrainID(len(r.grains))
	c := randomColor(rng)
	for {
		if _, taken := r.colors[c]; !taken {
			break
		}
		c = randomColor(rng)
	}
	r.colors[c] = struct{}{}
	r.grains = append(r.grains, Grain{ID: id, Color: c, Recrystallized: recrystallized})
	return id
}

func (r *registry) get(id GrainID) (Grain, bool) {
	if id < 0 || int(id) >= len(r.grains) {
		return Grain{}, false
	}
	return r.grains[id], true
}

func (r *registry) clone() []Grain {
	return append([]Grain(nil), r.grains...)
}

func randomColor(rng *rand.Rand) Color {
	v := rng.Uint32()
	return Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
}

// Offset is a sub-cell displacement of a cell's center of mass.
type Offset struct {
	X, Y float64
}

// Cell is one lattice site.
type Cell struct {
	Row, Column    int
	Grain          GrainID
	Density        float64
	Recrystallized bool
	// MassOffset is fixed when the grid is built and only used by the
	// RadialWithMass topology.
	MassOffset Offset
}

// virtualCell stands in for every out-of-range neighbor under the Absorbing
// boundary.
var virtualCell = Cell{Row: -1, Column: -1, Grain: Sentinel}
