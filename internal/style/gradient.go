package style

import "image/color"

// Gradient maps a scalar onto a sequence of color stops with arbitrary
// positions. Values below the first stop or above the last clamp to it.
type Gradient struct {
	colors []color.NRGBA
	stops  []float64
}

// NewGradient pairs colors with stop positions. Stops must be ascending and
// the slices equal length; the zero gradient resolves everything to black.
func NewGradient(colors []color.NRGBA, stops []float64) Gradient {
	if len(colors) != len(stops) {
		panic("style: gradient colors and stops must pair up")
	}
	return Gradient{colors: colors, stops: stops}
}

// At interpolates the gradient at v.
func (g Gradient) At(v float64) color.NRGBA {
	if len(g.colors) == 0 {
		return color.NRGBA{A: 255}
	}
	if v <= g.stops[0] {
		return g.colors[0]
	}
	last := len(g.stops) - 1
	if v >= g.stops[last] {
		return g.colors[last]
	}
	i := 1
	for v > g.stops[i] {
		i++
	}
	t := (v - g.stops[i-1]) / (g.stops[i] - g.stops[i-1])
	return lerpColor(g.colors[i-1], g.colors[i], t)
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Ramp scales a base color from black up to the color and on to white as
// val runs 0..1. Used by the time-unit and age styles.
func Ramp(c color.NRGBA, val float64) color.NRGBA {
	if val < 0 {
		val = 0
	}
	if val > 1 {
		val = 1
	}
	if val < 0.5 {
		t := val * 2
		return color.NRGBA{
			R: uint8(float64(c.R) * t),
			G: uint8(float64(c.G) * t),
			B: uint8(float64(c.B) * t),
			A: 255,
		}
	}
	t := (val - 0.5) * 2
	return color.NRGBA{
		R: uint8(float64(c.R) + float64(255-c.R)*t),
		G: uint8(float64(c.G) + float64(255-c.G)*t),
		B: uint8(float64(c.B) + float64(255-c.B)*t),
		A: 255,
	}
}
