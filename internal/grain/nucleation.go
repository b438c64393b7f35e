package grain

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// maxRadiusMisses is the number of consecutive rejected candidates after which
// radius nucleation stops sampling blindly and scans the grid for room.
const maxRadiusMisses = 10

// NucleateUniform clears the grid and places colCount nuclei across the width
// and rowCount down the height at evenly spaced positions.
func (g *Grid) NucleateUniform(colCount, rowCount int) error {
	if colCount < 1 || rowCount < 1 {
		return fmt.Errorf("uniform nucleation %dx%d: counts must be at least 1: %w", colCount, rowCount, ErrInvalidArgument)
	}
	g.Clear()
	layout := g.lat.layout
	colStep := float64(layout.Columns) / float64(colCount+1)
	rowStep := float64(layout.Rows) / float64(rowCount+1)
	for i := 1; i <= rowCount; i++ {
		row := int(float64(i) * rowStep)
		for j := 1; j <= colCount; j++ {
			col := int(float64(j) * colStep)
			g.PlaceNucleusAt(row, col)
		}
	}
	g.log.WithFields(logrus.Fields{
		"method":  "uniform",
		"columns": colCount,
		"rows":    rowCount,
		"placed":  g.populated,
	}).Info("nucleated grid")
	return nil
}

// NucleateRandom clears the grid and places n nuclei on uniformly random
// empty cells.
func (g *Grid) NucleateRandom(n int) error {
	total := len(g.lat.cells)
	if n < 1 || n > total {
		return fmt.Errorf("random nucleation of %d nuclei on %d cells: %w", n, total, ErrInvalidArgument)
	}
	g.Clear()
	for placed := 0; placed < n; {
		idx := g.rng.IntN(total)
		if g.lat.cells[idx].Grain != Sentinel {
			continue
		}
		g.claim(idx, false)
		placed++
	}
	g.log.WithFields(logrus.Fields{"method": "random", "placed": n}).Info("nucleated grid")
	return nil
}

// NucleateRandomWithRadius clears the grid and places up to n nuclei at random
// so that no two lie within radius of each other. When the grid runs out of
// room it stops early; the returned count is the number actually placed.
func (g *Grid) NucleateRandomWithRadius(n, radius int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("radius nucleation of %d nuclei: %w", n, ErrInvalidArgument)
	}
	if err := g.lat.layout.checkRadius(radius); err != nil {
		return 0, fmt.Errorf("radius nucleation: %w", err)
	}
	g.Clear()
	misses := 0
	placed := 0
	for placed < n {
		if misses > maxRadiusMisses {
			room := g.roomWithin(radius)
			if len(room) == 0 {
				break
			}
			g.claim(room[g.rng.IntN(len(room))], false)
			placed++
			misses = 0
			continue
		}
		idx, free := g.sampleEmpty(radius)
		if idx < 0 {
			break
		}
		if !free {
			misses++
			continue
		}
		g.claim(idx, false)
		placed++
		misses = 0
	}
	entry := g.log.WithFields(logrus.Fields{
		"method":    "random-radius",
		"radius":    radius,
		"requested": n,
		"placed":    placed,
	})
	if placed < n {
		entry.Info("grid ran out of room for nuclei")
	} else {
		entry.Info("nucleated grid")
	}
	return placed, nil
}

// sampleEmpty draws uniformly random cells until it finds an empty one and
// reports whether that cell has no claimed cell within radius. Draws that
// land on claimed cells are redrawn. It returns -1 when no cell is empty.
func (g *Grid) sampleEmpty(radius int) (int, bool) {
	total := len(g.lat.cells)
	if g.populated >= total {
		return -1, false
	}
	for {
		idx := g.rng.IntN(total)
		c := &g.lat.cells[idx]
		if c.Grain != Sentinel {
			continue
		}
		return idx, !g.lat.populatedWithin(c.Row, c.Column, radius)
	}
}

// roomWithin lists every cell with no claimed cell within radius.
func (g *Grid) roomWithin(radius int) []int {
	var room []int
	for i := range g.lat.cells {
		c := &g.lat.cells[i]
		if !g.lat.populatedWithin(c.Row, c.Column, radius) {
			room = append(room, i)
		}
	}
	return room
}

// PlaceNucleusAt claims the cell at (row, col) for a new grain. It reports
// false when the position is outside the grid or already claimed.
func (g *Grid) PlaceNucleusAt(row, col int) bool {
	if !g.lat.ext.Contains(col, row) {
		return false
	}
	idx := g.lat.ext.Index(col, row)
	if g.lat.cells[idx].Grain != Sentinel {
		return false
	}
	g.claim(idx, false)
	return true
}
