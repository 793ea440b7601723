// Package gfx builds shader programs, vertex arrays, framebuffers and
// textures on top of an OpenGL-class context passed explicitly as a GL.
//
// Every function must be called from the goroutine that owns the context.
package gfx

// Attrib is a vertex attribute location.
type Attrib uint32

// Enum is a GL enumerant.
type Enum uint32

// Object handles. Zero is the null object.
type (
	Buffer       struct{ V uint32 }
	Framebuffer  struct{ V uint32 }
	Program      struct{ V uint32 }
	Renderbuffer struct{ V uint32 }
	Shader       struct{ V uint32 }
	Texture      struct{ V uint32 }
	VertexArray  struct{ V uint32 }
)

// Uniform is a uniform location; -1 means the program has no such uniform.
type Uniform struct{ V int32 }

// Valid reports whether the handle names a GL object.
func (b Buffer) Valid() bool { return b.V != 0 }
func (f Framebuffer) Valid() bool { return f.V != 0 }
func (p Program) Valid() bool { return p.V != 0 }
func (r Renderbuffer) Valid() bool { return r.V != 0 }
func (s Shader) Valid() bool { return s.V != 0 }
func (t Texture) Valid() bool { return t.V != 0 }
func (a VertexArray) Valid() bool { return a.V != 0 }
func (u Uniform) Valid() bool { return u.V != -1 }

const (
	ARRAY_BUFFER          = 0x8892
	BACK                  = 0x0405
	CCW                   = 0x0901
	CLAMP_TO_EDGE         = 0x812F
	COLOR_ATTACHMENT0     = 0x8CE0
	COLOR_BUFFER_BIT      = 0x4000
	COMPILE_STATUS        = 0x8B81
	CULL_FACE             = 0x0B44
	DEPTH_ATTACHMENT      = 0x8D00
	DEPTH_BUFFER_BIT      = 0x0100
	DEPTH_COMPONENT       = 0x1902
	DEPTH_COMPONENT24     = 0x81A6
	DEPTH_TEST            = 0x0B71
	DRAW_FRAMEBUFFER      = 0x8CA9
	ELEMENT_ARRAY_BUFFER  = 0x8893
	FALSE                 = 0
	FLOAT                 = 0x1406
	FRAGMENT_SHADER       = 0x8B30
	FRAMEBUFFER           = 0x8D40
	FRAMEBUFFER_COMPLETE  = 0x8CD5
	INT                   = 0x1404
	LESS                  = 0x0201
	LINK_STATUS           = 0x8B82
	MAX_COLOR_ATTACHMENTS = 0x8CDF
	MAX_SAMPLES           = 0x8D57
	NEAREST               = 0x2600
	NONE                  = 0
	READ_FRAMEBUFFER      = 0x8CA8
	RENDERBUFFER          = 0x8D41
	RGBA                  = 0x1908
	RGBA8                 = 0x8058
	STATIC_DRAW           = 0x88E4
	TEXTURE0              = 0x84C0
	TEXTURE_2D            = 0x0DE1
	TEXTURE_MAG_FILTER    = 0x2800
	TEXTURE_MIN_FILTER    = 0x2801
	TEXTURE_WRAP_S        = 0x2802
	TEXTURE_WRAP_T        = 0x2803
	TRIANGLES             = 0x0004
	TRUE                  = 1
	UNSIGNED_BYTE         = 0x1401
	UNSIGNED_INT          = 0x1405
	VALIDATE_STATUS       = 0x8B83
	VERTEX_SHADER         = 0x8B31
)

// GL is the subset of the OpenGL (ES 3.0 / GL 4.1 core) function table used
// by this package. Every helper takes it explicitly; there is no hidden
// current-context state besides what the driver itself keeps.
//
// Implementations must only be called from the goroutine that owns the
// context. Create* methods return a zero (invalid) handle on failure.
type GL interface {
	// State
	Enable(cap Enum)
	FrontFace(mode Enum)
	CullFace(mode Enum)
	DepthFunc(fn Enum)
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	GetInteger(pname Enum) int

	// Shaders and programs
	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)
	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	ValidateProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)
	GetAttribLocation(p Program, name string) int
	GetUniformLocation(p Program, name string) Uniform

	// Uniform setters
	Uniform1f(u Uniform, v float32)
	Uniform1fv(u Uniform, v []float32)
	Uniform2fv(u Uniform, v []float32)
	Uniform3fv(u Uniform, v []float32)
	Uniform4fv(u Uniform, v []float32)
	Uniform1i(u Uniform, v int32)
	Uniform1iv(u Uniform, v []int32)
	Uniform2iv(u Uniform, v []int32)
	Uniform3iv(u Uniform, v []int32)
	Uniform4iv(u Uniform, v []int32)
	UniformMatrix2fv(u Uniform, transpose bool, v []float32)
	UniformMatrix3fv(u Uniform, transpose bool, v []float32)
	UniformMatrix4fv(u Uniform, transpose bool, v []float32)
	UniformMatrix2x3fv(u Uniform, transpose bool, v []float32)
	UniformMatrix3x2fv(u Uniform, transpose bool, v []float32)
	UniformMatrix2x4fv(u Uniform, transpose bool, v []float32)
	UniformMatrix4x2fv(u Uniform, transpose bool, v []float32)
	UniformMatrix3x4fv(u Uniform, transpose bool, v []float32)
	UniformMatrix4x3fv(u Uniform, transpose bool, v []float32)

	// Buffers and vertex arrays
	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, data []byte, usage Enum)
	DeleteBuffer(b Buffer)
	CreateVertexArray() VertexArray
	BindVertexArray(a VertexArray)
	DeleteVertexArray(a VertexArray)
	EnableVertexAttribArray(a Attrib)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(a Attrib, size int, ty Enum, stride, offset int)
	DrawElements(mode Enum, count int, ty Enum, offset int)

	// Textures
	CreateTexture() Texture
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	DeleteTexture(t Texture)

	// Framebuffers and renderbuffers
	CreateFramebuffer() Framebuffer
	BindFramebuffer(target Enum, fb Framebuffer)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	CheckFramebufferStatus(target Enum) Enum
	DeleteFramebuffer(fb Framebuffer)
	CreateRenderbuffer() Renderbuffer
	BindRenderbuffer(target Enum, rb Renderbuffer)
	RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int)
	DeleteRenderbuffer(rb Renderbuffer)
	ReadBuffer(src Enum)
	DrawBuffers(bufs []Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum)
}
