package main

import "glkit/core"

// skyKey is the clear color at one normalised time of day.
type skyKey struct {
	t   float32 // 0..1, wraps
	sky core.Color
}

// skyKeys is ordered by t.
var skyKeys = []skyKey{
	{0.00, core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1}}, // noon
	{0.22, core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1}}, // golden hour
	{0.30, core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1}}, // dusk
	{0.50, core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1}}, // midnight
	{0.70, core.Color{R: 0.40, G: 0.18, B: 0.24, A: 1}}, // pre-dawn
	{0.80, core.Color{R: 0.85, G: 0.60, B: 0.45, A: 1}}, // sunrise
}

// skyAt returns the sky color at time t, interpolating between keys.
func skyAt(t float32) core.Color {
	t -= float32(int(t))
	if t < 0 {
		t++
	}
	for i := range skyKeys {
		a := skyKeys[i]
		b := skyKeys[(i+1)%len(skyKeys)]
		end := b.t
		if end <= a.t {
			end++ // wrap to the first key
		}
		if t >= a.t && t < end {
			return lerpColor(a.sky, b.sky, (t-a.t)/(end-a.t))
		}
	}
	return skyKeys[0].sky
}

func lerpColor(a, b core.Color, f float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}
