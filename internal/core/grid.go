package core

// Extent describes a rectangular lattice stored in row-major order.
type Extent struct {
	W, H int
}

// NewExtent returns an extent with both dimensions clamped to at least one.
func NewExtent(w, h int) Extent {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Extent{W: w, H: h}
}

// Len returns the number of cells covered by the extent.
func (e Extent) Len() int { return e.W * e.H }

// Index returns the linear slice index for column x and row y.
func (e Extent) Index(x, y int) int { return y*e.W + x }

// Coords is the inverse of Index.
func (e Extent) Coords(idx int) (x, y int) { return idx % e.W, idx / e.W }

// Contains reports whether (x, y) lies inside the extent.
func (e Extent) Contains(x, y int) bool {
	return x >= 0 && x < e.W && y >= 0 && y < e.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (e Extent) Wrap(x, y int) (int, int) {
	x = (x%e.W + e.W) % e.W
	y = (y%e.H + e.H) % e.H
	return x, y
}

// WrapDelta folds a displacement along an axis of length n onto the shortest
// image, so the result lies in [-n/2, n/2].
func WrapDelta(d, n int) int {
	if n <= 0 {
		return d
	}
	d %= n
	if d > n/2 {
		d -= n
	} else if d < -n/2 {
		d += n
	}
	return d
}
