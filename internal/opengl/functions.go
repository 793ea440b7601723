// Package opengl implements gfx.GL on OpenGL 4.1 core.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"glkit/gfx"
)

// Functions implements gfx.GL on top of the desktop OpenGL 4.1 core
// bindings.
type Functions struct {
	Version  string
	Renderer string
}

// New loads the OpenGL function pointers.
// Must be called after the GLFW window context is made current.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	f := &Functions{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	gfx.Logger().Info("OpenGL initialized", "version", f.Version, "renderer", f.Renderer)
	return f, nil
}

var _ gfx.GL = (*Functions)(nil)

// ── State ─────────────────────────────────────────────────────────────────────

func (f *Functions) Enable(c gfx.Enum) { gl.Enable(uint32(c)) }
func (f *Functions) FrontFace(mode gfx.Enum) { gl.FrontFace(uint32(mode)) }
func (f *Functions) CullFace(mode gfx.Enum) { gl.CullFace(uint32(mode)) }
func (f *Functions) DepthFunc(fn gfx.Enum) { gl.DepthFunc(uint32(fn)) }
func (f *Functions) Clear(mask gfx.Enum) { gl.Clear(uint32(mask)) }

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (f *Functions) GetInteger(pname gfx.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

// ── Shaders and programs ──────────────────────────────────────────────────────

func (f *Functions) CreateShader(ty gfx.Enum) gfx.Shader {
	return gfx.Shader{V: gl.CreateShader(uint32(ty))}
}

func (f *Functions) ShaderSource(s gfx.Shader, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s.V, 1, csrc, nil)
	free()
}

func (f *Functions) CompileShader(s gfx.Shader) { gl.CompileShader(s.V) }

func (f *Functions) GetShaderi(s gfx.Shader, pname gfx.Enum) int {
	var v int32
	gl.GetShaderiv(s.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gfx.Shader) string {
	var logLen int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(s.V, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) DeleteShader(s gfx.Shader) { gl.DeleteShader(s.V) }

func (f *Functions) CreateProgram() gfx.Program { return gfx.Program{V: gl.CreateProgram()} }

func (f *Functions) AttachShader(p gfx.Program, s gfx.Shader) { gl.AttachShader(p.V, s.V) }
func (f *Functions) DetachShader(p gfx.Program, s gfx.Shader) { gl.DetachShader(p.V, s.V) }
func (f *Functions) LinkProgram(p gfx.Program) { gl.LinkProgram(p.V) }
func (f *Functions) ValidateProgram(p gfx.Program) { gl.ValidateProgram(p.V) }
func (f *Functions) UseProgram(p gfx.Program) { gl.UseProgram(p.V) }
func (f *Functions) DeleteProgram(p gfx.Program) { gl.DeleteProgram(p.V) }

func (f *Functions) GetProgrami(p gfx.Program, pname gfx.Enum) int {
	var v int32
	gl.GetProgramiv(p.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p gfx.Program) string {
	var logLen int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(p.V, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) GetAttribLocation(p gfx.Program, name string) int {
	return int(gl.GetAttribLocation(p.V, gl.Str(name+"\x00")))
}

func (f *Functions) GetUniformLocation(p gfx.Program, name string) gfx.Uniform {
	return gfx.Uniform{V: gl.GetUniformLocation(p.V, gl.Str(name+"\x00"))}
}

// ── Uniforms ──────────────────────────────────────────────────────────────────

func (f *Functions) Uniform1f(u gfx.Uniform, v float32) { gl.Uniform1f(u.V, v) }
func (f *Functions) Uniform1i(u gfx.Uniform, v int32) { gl.Uniform1i(u.V, v) }

func (f *Functions) Uniform1fv(u gfx.Uniform, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(u.V, int32(len(v)), &v[0])
	}
}

func (f *Functions) Uniform2fv(u gfx.Uniform, v []float32) {
	if len(v) >= 2 {
		gl.Uniform2fv(u.V, int32(len(v)/2), &v[0])
	}
}

func (f *Functions) Uniform3fv(u gfx.Uniform, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(u.V, int32(len(v)/3), &v[0])
	}
}

func (f *Functions) Uniform4fv(u gfx.Uniform, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(u.V, int32(len(v)/4), &v[0])
	}
}

func (f *Functions) Uniform1iv(u gfx.Uniform, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(u.V, int32(len(v)), &v[0])
	}
}

func (f *Functions) Uniform2iv(u gfx.Uniform, v []int32) {
	if len(v) >= 2 {
		gl.Uniform2iv(u.V, int32(len(v)/2), &v[0])
	}
}

func (f *Functions) Uniform3iv(u gfx.Uniform, v []int32) {
	if len(v) >= 3 {
		gl.Uniform3iv(u.V, int32(len(v)/3), &v[0])
	}
}

func (f *Functions) Uniform4iv(u gfx.Uniform, v []int32) {
	if len(v) >= 4 {
		gl.Uniform4iv(u.V, int32(len(v)/4), &v[0])
	}
}

// matrices returns how many cols×rows matrices v holds, or 0.
func matrices(v []float32, cols, rows int) int32 {
	return int32(len(v) / (cols * rows))
}

func (f *Functions) UniformMatrix2fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 2, 2); n > 0 {
		gl.UniformMatrix2fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix3fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 3, 3); n > 0 {
		gl.UniformMatrix3fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix4fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 4, 4); n > 0 {
		gl.UniformMatrix4fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix2x3fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 2, 3); n > 0 {
		gl.UniformMatrix2x3fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix3x2fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 3, 2); n > 0 {
		gl.UniformMatrix3x2fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix2x4fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 2, 4); n > 0 {
		gl.UniformMatrix2x4fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix4x2fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 4, 2); n > 0 {
		gl.UniformMatrix4x2fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix3x4fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 3, 4); n > 0 {
		gl.UniformMatrix3x4fv(u.V, n, transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix4x3fv(u gfx.Uniform, transpose bool, v []float32) {
	if n := matrices(v, 4, 3); n > 0 {
		gl.UniformMatrix4x3fv(u.V, n, transpose, &v[0])
	}
}

// ── Buffers and vertex arrays ─────────────────────────────────────────────────

func (f *Functions) CreateBuffer() gfx.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return gfx.Buffer{V: id}
}

func (f *Functions) BindBuffer(target gfx.Enum, b gfx.Buffer) { gl.BindBuffer(uint32(target), b.V) }

func (f *Functions) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

func (f *Functions) DeleteBuffer(b gfx.Buffer) { gl.DeleteBuffers(1, &b.V) }

func (f *Functions) CreateVertexArray() gfx.VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return gfx.VertexArray{V: id}
}

func (f *Functions) BindVertexArray(a gfx.VertexArray) { gl.BindVertexArray(a.V) }
func (f *Functions) DeleteVertexArray(a gfx.VertexArray) { gl.DeleteVertexArrays(1, &a.V) }
func (f *Functions) EnableVertexAttribArray(a gfx.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(a gfx.Attrib, size int, ty gfx.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(a), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) VertexAttribIPointer(a gfx.Attrib, size int, ty gfx.Enum, stride, offset int) {
	gl.VertexAttribIPointer(uint32(a), int32(size), uint32(ty), int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) DrawElements(mode gfx.Enum, count int, ty gfx.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (f *Functions) CreateTexture() gfx.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return gfx.Texture{V: id}
}

func (f *Functions) ActiveTexture(unit gfx.Enum) { gl.ActiveTexture(uint32(unit)) }
func (f *Functions) BindTexture(target gfx.Enum, t gfx.Texture) { gl.BindTexture(uint32(target), t.V) }
func (f *Functions) TexParameteri(target, pname gfx.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

// TexImage2D allocates storage without uploading when data is empty.
func (f *Functions) TexImage2D(target gfx.Enum, level int, internalFormat gfx.Enum, width, height int, format, ty gfx.Enum, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), 0, uint32(format), uint32(ty), ptr)
}

func (f *Functions) DeleteTexture(t gfx.Texture) { gl.DeleteTextures(1, &t.V) }

// ── Framebuffers and renderbuffers ────────────────────────────────────────────

func (f *Functions) CreateFramebuffer() gfx.Framebuffer {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return gfx.Framebuffer{V: id}
}

func (f *Functions) BindFramebuffer(target gfx.Enum, fb gfx.Framebuffer) {
	gl.BindFramebuffer(uint32(target), fb.V)
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget gfx.Enum, rb gfx.Renderbuffer) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), rb.V)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gfx.Enum, t gfx.Texture, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t.V, int32(level))
}

func (f *Functions) CheckFramebufferStatus(target gfx.Enum) gfx.Enum {
	return gfx.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) DeleteFramebuffer(fb gfx.Framebuffer) { gl.DeleteFramebuffers(1, &fb.V) }

func (f *Functions) CreateRenderbuffer() gfx.Renderbuffer {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return gfx.Renderbuffer{V: id}
}

func (f *Functions) BindRenderbuffer(target gfx.Enum, rb gfx.Renderbuffer) {
	gl.BindRenderbuffer(uint32(target), rb.V)
}

func (f *Functions) RenderbufferStorageMultisample(target gfx.Enum, samples int, internalFormat gfx.Enum, width, height int) {
	gl.RenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalFormat), int32(width), int32(height))
}

func (f *Functions) DeleteRenderbuffer(rb gfx.Renderbuffer) { gl.DeleteRenderbuffers(1, &rb.V) }

func (f *Functions) ReadBuffer(src gfx.Enum) { gl.ReadBuffer(uint32(src)) }

func (f *Functions) DrawBuffers(bufs []gfx.Enum) {
	if len(bufs) == 0 {
		return
	}
	// gfx.Enum has the layout of GLenum.
	gl.DrawBuffers(int32(len(bufs)), (*uint32)(unsafe.Pointer(&bufs[0])))
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter gfx.Enum) {
	gl.BlitFramebuffer(
		int32(sx0), int32(sy0), int32(sx1), int32(sy1),
		int32(dx0), int32(dy0), int32(dx1), int32(dy1),
		uint32(mask), uint32(filter),
	)
}
