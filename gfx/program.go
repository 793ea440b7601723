package gfx

import (
	"strings"
)

// ProgramBundle is a linked program together with the attributes and
// uniforms of its layout that the driver reported locations for.
type ProgramBundle struct {
	Program    Program
	Attributes ProgramAttributes
	Uniforms   ProgramUniforms
}

// CreateProgram compiles a combined GLSL source into a linked program.
//
// The source holds both stages. Its first line must be the #version
// directive; the rest is compiled twice, once with VERT defined and once
// with FRAG defined:
//
//	#version 410 core
//	// shared code
//	#ifdef VERT
//	// vertex shader
//	#endif
//	#ifdef FRAG
//	// fragment shader
//	#endif
//
// prelude, if non-empty, is inserted right after the stage define. The
// prelude line is always emitted so driver diagnostics keep the same line
// numbers whether or not a prelude is given.
//
// Names of the layout that have no location in the linked program are
// logged and left out of the bundle; this is not an error.
// Call this from the goroutine that owns the context.
func CreateProgram(gl GL, layout ProgramLayout, source, prelude string) (*ProgramBundle, error) {
	version, body, _ := strings.Cut(source, "\n")
	vertSrc := stageSource(version, "VERT", prelude, body)
	fragSrc := stageSource(version, "FRAG", prelude, body)

	vert := gl.CreateShader(VERTEX_SHADER)
	if !vert.Valid() {
		return nil, creationFailed("create vertex shader")
	}
	frag := gl.CreateShader(FRAGMENT_SHADER)
	if !frag.Valid() {
		return nil, creationFailed("create fragment shader")
	}
	prog := gl.CreateProgram()
	if !prog.Valid() {
		return nil, creationFailed("create program")
	}

	if err := compileShader(gl, vert, vertSrc, "vertex"); err != nil {
		return nil, err
	}
	if err := compileShader(gl, frag, fragSrc, "fragment"); err != nil {
		return nil, err
	}

	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	if gl.GetProgrami(prog, LINK_STATUS) == FALSE {
		return nil, &CompileError{Stage: "link", Log: gl.GetProgramInfoLog(prog)}
	}

	// Validation depends on the state current at the time of the call
	// (bound textures, samplers), so a failure here is only reported.
	gl.ValidateProgram(prog)
	if gl.GetProgrami(prog, VALIDATE_STATUS) == FALSE {
		Logger().Warn("program validation failed", "program", prog.V, "log", gl.GetProgramInfoLog(prog))
	}

	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	return &ProgramBundle{
		Program:    prog,
		Attributes: resolveAttributes(gl, prog, layout.Attributes),
		Uniforms:   resolveUniforms(gl, prog, layout.Uniforms),
	}, nil
}

// UseProgram makes the bundle's program current.
func UseProgram(gl GL, b *ProgramBundle) {
	gl.UseProgram(b.Program)
}

// DeleteProgram releases the program object. The bundle must not be used
// afterwards.
func DeleteProgram(gl GL, b *ProgramBundle) {
	if b.Program.Valid() {
		gl.DeleteProgram(b.Program)
		b.Program = Program{}
	}
}

func stageSource(version, stage, prelude, body string) string {
	return strings.Join([]string{version, "#define " + stage, prelude, body}, "\n")
}

func compileShader(gl GL, s Shader, src, stage string) error {
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if gl.GetShaderi(s, COMPILE_STATUS) == FALSE {
		return &CompileError{Stage: stage, Log: gl.GetShaderInfoLog(s)}
	}
	return nil
}

func resolveAttributes(gl GL, prog Program, layout AttributeLayout) ProgramAttributes {
	attrs := make(ProgramAttributes, 0, len(layout))
	for _, desc := range layout {
		loc := gl.GetAttribLocation(prog, desc.Name)
		if loc < 0 {
			Logger().Warn("ignored attribute: no location in program", "name", desc.Name, "program", prog.V)
			continue
		}
		attrs = append(attrs, AttributeBinding{Name: desc.Name, Location: Attrib(loc), Type: desc.Type})
	}
	return attrs
}

func resolveUniforms(gl GL, prog Program, layout UniformLayout) ProgramUniforms {
	uniforms := make(ProgramUniforms, 0, len(layout))
	for _, desc := range layout {
		loc := gl.GetUniformLocation(prog, desc.Name)
		if !loc.Valid() {
			Logger().Warn("ignored uniform: no location in program (or never used)", "name", desc.Name, "program", prog.V)
			continue
		}
		uniforms = append(uniforms, UniformBinding{Name: desc.Name, Location: loc, Type: desc.Type})
	}
	return uniforms
}
