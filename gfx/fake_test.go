package gfx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"unsafe"
)

type call struct {
	name string
	args []any
}

// fakeGL records every call and answers queries from its configuration.
type fakeGL struct {
	calls []call
	next  uint32

	failCreate   map[string]bool
	attribLocs   map[string]int
	uniformLocs  map[string]int32
	compileOK    func(src string) bool
	compileLog   string
	linkFail     bool
	linkLog      string
	validateFail bool
	maxSamples   int
	fbStatus     Enum

	sources map[uint32]string
	status  map[uint32]int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		failCreate:  map[string]bool{},
		attribLocs:  map[string]int{},
		uniformLocs: map[string]int32{},
		compileOK:   func(src string) bool { return strings.HasPrefix(src, "#version") },
		compileLog:  "ERROR: 0:1: '' : syntax error",
		maxSamples:  4,
		fbStatus:    FRAMEBUFFER_COMPLETE,
		sources:     map[uint32]string{},
		status:      map[uint32]int{},
	}
}

func (f *fakeGL) rec(name string, args ...any) {
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeGL) handle(name string) uint32 {
	f.rec(name)
	if f.failCreate[name] {
		return 0
	}
	f.next++
	return f.next
}

// callsNamed returns the recorded calls with the given name, in order.
func (f *fakeGL) callsNamed(name string) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// names returns the sequence of call names.
func (f *fakeGL) names() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.name
	}
	return out
}

func (f *fakeGL) reset() { f.calls = nil }

func (f *fakeGL) Enable(c Enum) { f.rec("Enable", c) }
func (f *fakeGL) FrontFace(mode Enum) { f.rec("FrontFace", mode) }
func (f *fakeGL) CullFace(mode Enum) { f.rec("CullFace", mode) }
func (f *fakeGL) DepthFunc(fn Enum) { f.rec("DepthFunc", fn) }
func (f *fakeGL) Viewport(x, y, w, h int) { f.rec("Viewport", x, y, w, h) }
func (f *fakeGL) ClearColor(r, g, b, a float32) { f.rec("ClearColor", r, g, b, a) }
func (f *fakeGL) Clear(mask Enum) { f.rec("Clear", mask) }
func (f *fakeGL) GetInteger(pname Enum) int {
	f.rec("GetInteger", pname)
	if pname == MAX_SAMPLES {
		return f.maxSamples
	}
	return 0
}

func (f *fakeGL) CreateShader(ty Enum) Shader { return Shader{f.handle("CreateShader")} }
func (f *fakeGL) ShaderSource(s Shader, src string) {
	f.rec("ShaderSource", s, src)
	f.sources[s.V] = src
}
func (f *fakeGL) CompileShader(s Shader) {
	f.rec("CompileShader", s)
	if f.compileOK(f.sources[s.V]) {
		f.status[s.V] = TRUE
	} else {
		f.status[s.V] = FALSE
	}
}
func (f *fakeGL) GetShaderi(s Shader, pname Enum) int {
	f.rec("GetShaderi", s, pname)
	return f.status[s.V]
}
func (f *fakeGL) GetShaderInfoLog(s Shader) string {
	f.rec("GetShaderInfoLog", s)
	return f.compileLog
}
func (f *fakeGL) DeleteShader(s Shader) { f.rec("DeleteShader", s) }
func (f *fakeGL) CreateProgram() Program { return Program{f.handle("CreateProgram")} }
func (f *fakeGL) AttachShader(p Program, s Shader) { f.rec("AttachShader", p, s) }
func (f *fakeGL) DetachShader(p Program, s Shader) { f.rec("DetachShader", p, s) }
func (f *fakeGL) LinkProgram(p Program) { f.rec("LinkProgram", p) }
func (f *fakeGL) ValidateProgram(p Program) { f.rec("ValidateProgram", p) }
func (f *fakeGL) GetProgrami(p Program, pname Enum) int {
	f.rec("GetProgrami", p, pname)
	switch {
	case pname == LINK_STATUS && f.linkFail:
		return FALSE
	case pname == VALIDATE_STATUS && f.validateFail:
		return FALSE
	}
	return TRUE
}
func (f *fakeGL) GetProgramInfoLog(p Program) string {
	f.rec("GetProgramInfoLog", p)
	return f.linkLog
}
func (f *fakeGL) UseProgram(p Program) { f.rec("UseProgram", p) }
func (f *fakeGL) DeleteProgram(p Program) { f.rec("DeleteProgram", p) }
func (f *fakeGL) GetAttribLocation(p Program, name string) int {
	f.rec("GetAttribLocation", p, name)
	if loc, ok := f.attribLocs[name]; ok {
		return loc
	}
	return -1
}
func (f *fakeGL) GetUniformLocation(p Program, name string) Uniform {
	f.rec("GetUniformLocation", p, name)
	if loc, ok := f.uniformLocs[name]; ok {
		return Uniform{loc}
	}
	return Uniform{-1}
}

func (f *fakeGL) Uniform1f(u Uniform, v float32) { f.rec("Uniform1f", u, v) }
func (f *fakeGL) Uniform1fv(u Uniform, v []float32) { f.rec("Uniform1fv", u, v) }
func (f *fakeGL) Uniform2fv(u Uniform, v []float32) { f.rec("Uniform2fv", u, v) }
func (f *fakeGL) Uniform3fv(u Uniform, v []float32) { f.rec("Uniform3fv", u, v) }
func (f *fakeGL) Uniform4fv(u Uniform, v []float32) { f.rec("Uniform4fv", u, v) }
func (f *fakeGL) Uniform1i(u Uniform, v int32) { f.rec("Uniform1i", u, v) }
func (f *fakeGL) Uniform1iv(u Uniform, v []int32) { f.rec("Uniform1iv", u, v) }
func (f *fakeGL) Uniform2iv(u Uniform, v []int32) { f.rec("Uniform2iv", u, v) }
func (f *fakeGL) Uniform3iv(u Uniform, v []int32) { f.rec("Uniform3iv", u, v) }
func (f *fakeGL) Uniform4iv(u Uniform, v []int32) { f.rec("Uniform4iv", u, v) }
func (f *fakeGL) UniformMatrix2fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix2fv", u, t, v)
}
func (f *fakeGL) UniformMatrix3fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix3fv", u, t, v)
}
func (f *fakeGL) UniformMatrix4fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix4fv", u, t, v)
}
func (f *fakeGL) UniformMatrix2x3fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix2x3fv", u, t, v)
}
func (f *fakeGL) UniformMatrix3x2fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix3x2fv", u, t, v)
}
func (f *fakeGL) UniformMatrix2x4fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix2x4fv", u, t, v)
}
func (f *fakeGL) UniformMatrix4x2fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix4x2fv", u, t, v)
}
func (f *fakeGL) UniformMatrix3x4fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix3x4fv", u, t, v)
}
func (f *fakeGL) UniformMatrix4x3fv(u Uniform, t bool, v []float32) {
	f.rec("UniformMatrix4x3fv", u, t, v)
}

func (f *fakeGL) CreateBuffer() Buffer { return Buffer{f.handle("CreateBuffer")} }
func (f *fakeGL) BindBuffer(target Enum, b Buffer) { f.rec("BindBuffer", target, b) }
func (f *fakeGL) BufferData(target Enum, data []byte, usage Enum) {
	f.rec("BufferData", target, append([]byte(nil), data...), usage)
}
func (f *fakeGL) DeleteBuffer(b Buffer) { f.rec("DeleteBuffer", b) }
func (f *fakeGL) CreateVertexArray() VertexArray { return VertexArray{f.handle("CreateVertexArray")} }
func (f *fakeGL) BindVertexArray(a VertexArray) { f.rec("BindVertexArray", a) }
func (f *fakeGL) DeleteVertexArray(a VertexArray) {
	f.rec("DeleteVertexArray", a)
}
func (f *fakeGL) EnableVertexAttribArray(a Attrib) { f.rec("EnableVertexAttribArray", a) }
func (f *fakeGL) VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.rec("VertexAttribPointer", a, size, ty, normalized, stride, offset)
}
func (f *fakeGL) VertexAttribIPointer(a Attrib, size int, ty Enum, stride, offset int) {
	f.rec("VertexAttribIPointer", a, size, ty, stride, offset)
}
func (f *fakeGL) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.rec("DrawElements", mode, count, ty, offset)
}

func (f *fakeGL) CreateTexture() Texture { return Texture{f.handle("CreateTexture")} }
func (f *fakeGL) ActiveTexture(unit Enum) { f.rec("ActiveTexture", unit) }
func (f *fakeGL) BindTexture(target Enum, t Texture) { f.rec("BindTexture", target, t) }
func (f *fakeGL) TexParameteri(target, pname Enum, p int) { f.rec("TexParameteri", target, pname, p) }
func (f *fakeGL) TexImage2D(target Enum, level int, internalFormat Enum, w, h int, format, ty Enum, data []byte) {
	f.rec("TexImage2D", target, level, internalFormat, w, h, format, ty, append([]byte(nil), data...))
}
func (f *fakeGL) DeleteTexture(t Texture) { f.rec("DeleteTexture", t) }

func (f *fakeGL) CreateFramebuffer() Framebuffer { return Framebuffer{f.handle("CreateFramebuffer")} }
func (f *fakeGL) BindFramebuffer(target Enum, fb Framebuffer) {
	f.rec("BindFramebuffer", target, fb)
}
func (f *fakeGL) FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb Renderbuffer) {
	f.rec("FramebufferRenderbuffer", target, attachment, rbTarget, rb)
}
func (f *fakeGL) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.rec("FramebufferTexture2D", target, attachment, texTarget, t, level)
}
func (f *fakeGL) CheckFramebufferStatus(target Enum) Enum {
	f.rec("CheckFramebufferStatus", target)
	return f.fbStatus
}
func (f *fakeGL) DeleteFramebuffer(fb Framebuffer) { f.rec("DeleteFramebuffer", fb) }
func (f *fakeGL) CreateRenderbuffer() Renderbuffer {
	return Renderbuffer{f.handle("CreateRenderbuffer")}
}
func (f *fakeGL) BindRenderbuffer(target Enum, rb Renderbuffer) {
	f.rec("BindRenderbuffer", target, rb)
}
func (f *fakeGL) RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, w, h int) {
	f.rec("RenderbufferStorageMultisample", target, samples, internalFormat, w, h)
}
func (f *fakeGL) DeleteRenderbuffer(rb Renderbuffer) { f.rec("DeleteRenderbuffer", rb) }
func (f *fakeGL) ReadBuffer(src Enum) { f.rec("ReadBuffer", src) }
func (f *fakeGL) DrawBuffers(bufs []Enum) {
	f.rec("DrawBuffers", append([]Enum(nil), bufs...))
}
func (f *fakeGL) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum) {
	f.rec("BlitFramebuffer", sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
}

// captureLogs routes gfx warnings into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(orig) })
	return &buf
}

func float32s(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}

func int32s(b []byte) []int32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), len(b)/4)
}

func uint32s(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}
