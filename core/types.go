package core

import "glkit/gfx"

// Color is an RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// Vec4 returns the color as four floats, the layout of a vec4 uniform.
func (c Color) Vec4() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

// Clear clears the color and depth buffers of the bound framebuffer to c.
func Clear(gl gfx.GL, c Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gfx.COLOR_BUFFER_BIT | gfx.DEPTH_BUFFER_BIT)
}
