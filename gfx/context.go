package gfx

// ApplyDefaults puts a freshly created context into the state the rest of
// this package assumes for 3D rendering: counter-clockwise front faces with
// back faces culled, depth testing with LESS, a viewport covering the
// surface and an opaque black clear color.
func ApplyDefaults(gl GL, width, height int) {
	gl.FrontFace(CCW)
	gl.Enable(CULL_FACE)
	gl.CullFace(BACK) // FRONT can help shadow-map passes; callers switch it per pass.
	gl.Enable(DEPTH_TEST)
	gl.DepthFunc(LESS)
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0, 0, 0, 1)
}
