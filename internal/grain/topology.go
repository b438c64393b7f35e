package grain

import (
	"fmt"
	"strings"
)

// Topology selects which cells count as the neighbors of a cell.
type Topology int

const (
	VonNeumann Topology = iota
	Moore
	RandomPentagonal
	LeftHexagonal
	RightHexagonal
	RandomHexagonal
	Radial
	RadialWithMass
)

var topologyNames = map[Topology]string{
	VonNeumann:       "von-neumann",
	Moore:            "moore",
	RandomPentagonal: "random-pentagonal",
	LeftHexagonal:    "left-hexagonal",
	RightHexagonal:   "right-hexagonal",
	RandomHexagonal:  "random-hexagonal",
	Radial:           "radial",
	RadialWithMass:   "radial-mass",
}

// Topologies lists every topology in declaration order.
func Topologies() []Topology {
	return []Topology{VonNeumann, Moore, RandomPentagonal, LeftHexagonal, RightHexagonal, RandomHexagonal, Radial, RadialWithMass}
}

func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return fmt.Sprintf("topology(%d)", int(t))
}

// IsRadial reports whether the topology is sized by a radius.
func (t Topology) IsRadial() bool { return t == Radial || t == RadialWithMass }

// Valid reports whether t is one of the declared topologies.
func (t Topology) Valid() bool {
	_, ok := topologyNames[t]
	return ok
}

// ParseTopology maps a name produced by String back to a Topology. Matching is
// case-insensitive and accepts underscores in place of dashes.
func ParseTopology(s string) (Topology, error) {
	key := normalizeName(s)
	for t, name := range topologyNames {
		if name == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown topology %q: %w", s, ErrInvalidArgument)
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("topology %d: %w", int(t), ErrInvalidArgument)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(b []byte) error {
	parsed, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Boundary is the policy for neighbors that fall outside the grid.
type Boundary int

const (
	// Absorbing treats every out-of-range position as a permanently empty
	// cell.
	Absorbing Boundary = iota
	// Periodic wraps rows and columns around the grid.
	Periodic
)

func (b Boundary) String() string {
	switch b {
	case Absorbing:
		return "absorbing"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// Valid reports whether b is a declared boundary condition.
func (b Boundary) Valid() bool { return b == Absorbing || b == Periodic }

// ParseBoundary maps "absorbing" or "periodic" to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch normalizeName(s) {
	case "absorbing":
		return Absorbing, nil
	case "periodic":
		return Periodic, nil
	}
	return 0, fmt.Errorf("unknown boundary condition %q: %w", s, ErrInvalidArgument)
}

// MarshalText implements encoding.TextMarshaler.
func (b Boundary) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("boundary %d: %w", int(b), ErrInvalidArgument)
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Boundary) UnmarshalText(text []byte) error {
	parsed, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}

// Layout fixes the shape and neighborhood rules of a grid.
type Layout struct {
	Columns  int
	Rows     int
	Topology Topology
	Boundary Boundary
	// Radius is only consulted by the radial topologies.
	Radius int
}

// Validate checks the layout before a grid is built from it.
func (l Layout) Validate() error {
	if l.Columns < 1 || l.Rows < 1 {
		return fmt.Errorf("grid size %dx%d: %w", l.Columns, l.Rows, ErrInvalidArgument)
	}
	if !l.Topology.Valid() {
		return fmt.Errorf("topology %d: %w", int(l.Topology), ErrInvalidArgument)
	}
	if !l.Boundary.Valid() {
		return fmt.Errorf("boundary %d: %w", int(l.Boundary), ErrInvalidArgument)
	}
	if l.Topology.IsRadial() {
		if err := l.checkRadius(l.Radius); err != nil {
			return fmt.Errorf("%s neighborhood: %w", l.Topology, err)
		}
	}
	return nil
}

// checkRadius rejects radii that are not positive or exceed half of either
// grid dimension.
func (l Layout) checkRadius(radius int) error {
	if radius <= 0 || radius > l.Rows/2 || radius > l.Columns/2 {
		return fmt.Errorf("radius %d outside 1..min(%d, %d): %w", radius, l.Columns/2, l.Rows/2, ErrInvalidArgument)
	}
	return nil
}

// CellCount returns Columns*Rows.
func (l Layout) CellCount() int { return l.Columns * l.Rows }
