package render

import (
	"image/color"
	"math"
)

// PutRGBA writes c into the pixel at index i of an RGBA buffer.
func PutRGBA(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

// Fill paints the first n pixels of buf with c.
func Fill(buf []byte, n int, c color.RGBA) {
	for i := 0; i < n; i++ {
		PutRGBA(buf, i, c)
	}
}

// heatStops runs from cold blue through yellow to hot red.
var heatStops = []color.RGBA{
	{R: 20, G: 24, B: 82, A: 255},
	{R: 40, G: 120, B: 200, A: 255},
	{R: 240, G: 220, B: 70, A: 255},
	{R: 220, G: 50, B: 30, A: 255},
}

// Heat maps t in [0, 1] onto the heat ramp. Values outside the range are
// clamped and NaN maps to the coldest color.
func Heat(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return heatStops[0]
	}
	if t >= 1 {
		return heatStops[len(heatStops)-1]
	}
	pos := t * float64(len(heatStops)-1)
	i := int(pos)
	return Blend(heatStops[i], heatStops[i+1], pos-float64(i))
}

// Blend mixes a and b, w being the weight of b.
func Blend(a, b color.RGBA, w float64) color.RGBA {
	if w <= 0 {
		return a
	}
	if w >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-w) + float64(y)*w))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
