package grain

// Snapshot is an immutable copy of a grid's cells and grains. Growth and
// recrystallization read neighbor state from a snapshot so that every cell of
// a pass sees the same previous generation.
type Snapshot struct {
	lat    lattice
	grains []Grain
}

// CellView is the read-only projection of a cell handed to renderers.
type CellView struct {
	Row, Column    int
	Grain          GrainID
	Color          Color
	Density        float64
	Recrystallized bool
}

// Layout returns the layout of the grid the snapshot was taken from.
func (s *Snapshot) Layout() Layout { return s.lat.layout }

// Len returns the number of cells.
func (s *Snapshot) Len() int { return len(s.lat.cells) }

// Cell returns the view of the cell at (row, col).
func (s *Snapshot) Cell(row, col int) (CellView, bool) {
	if !s.lat.ext.Contains(col, row) {
		return CellView{}, false
	}
	return s.view(s.lat.ext.Index(col, row)), true
}

// At returns the view of the cell with row-major index idx.
func (s *Snapshot) At(idx int) CellView { return s.view(idx) }

// Cells returns the views of all cells in row-major order.
func (s *Snapshot) Cells() []CellView {
	out := make([]CellView, len(s.lat.cells))
	for i := range s.lat.cells {
		out[i] = s.view(i)
	}
	return out
}

// Grain looks up a grain registered when the snapshot was taken.
func (s *Snapshot) Grain(id GrainID) (Grain, bool) {
	if id < 0 || int(id) >= len(s.grains) {
		return Grain{}, false
	}
	return s.grains[id], true
}

// Grains returns every registered grain, the sentinel first.
func (s *Snapshot) Grains() []Grain { return append([]Grain(nil), s.grains...) }

// OnBoundary reports whether the cell at (row, col) touches another grain
// across an orthogonal neighbor.
func (s *Snapshot) OnBoundary(row, col int) bool {
	if !s.lat.ext.Contains(col, row) {
		return false
	}
	return s.lat.onBoundary(s.lat.ext.Index(col, row))
}

func (s *Snapshot) view(idx int) CellView {
	c := s.lat.cells[idx]
	v := CellView{
		Row:            c.Row,
		Column:         c.Column,
		Grain:          c.Grain,
		Color:          SentinelColor,
		Density:        c.Density,
		Recrystallized: c.Recrystallized,
	}
	if gr, ok := s.Grain(c.Grain); ok {
		v.Color = gr.Color
	}
	return v
}
