package gfx

import (
	"fmt"
	"math"
)

// Atype describes a vertex attribute as a signed component count: positive
// values are float attributes, negative values integer attributes with
// abs(n) components.
type Atype int8

const (
	AttribFloat Atype = 1
	AttribVec2  Atype = 2
	AttribVec3  Atype = 3
	AttribVec4  Atype = 4
	AttribInt   Atype = -1
	AttribIVec2 Atype = -2
	AttribIVec3 Atype = -3
	AttribIVec4 Atype = -4
)

var atypeNames = map[Atype]string{
	AttribFloat: "float",
	AttribVec2:  "vec2",
	AttribVec3:  "vec3",
	AttribVec4:  "vec4",
	AttribInt:   "int",
	AttribIVec2: "ivec2",
	AttribIVec3: "ivec3",
	AttribIVec4: "ivec4",
}

// Components returns the number of values each vertex takes from the
// attribute's flat sequence.
func (a Atype) Components() int {
	if a < 0 {
		return int(-a)
	}
	return int(a)
}

// Integer reports whether the attribute goes through the integer path
// (VertexAttribIPointer with INT data).
func (a Atype) Integer() bool { return a < 0 }

func (a Atype) String() string {
	if s, ok := atypeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Atype(%d)", int8(a))
}

// ParseAtype maps a GLSL type name to its Atype.
func ParseAtype(name string) (Atype, error) {
	for a, s := range atypeNames {
		if s == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute type %q", name)
}

// Utype selects the setter used for a uniform. Send matrices in column-major
// order (the GLSL default); an array of N values of a type is sent as one
// flat slice, e.g. uniform vec3 v[2] takes six floats.
type Utype uint8

const (
	UniformFloat Utype = iota + 1
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
	UniformIVec2
	UniformIVec3
	UniformIVec4
	UniformFloatArray
	UniformIntArray
	UniformMat2
	UniformMat3
	UniformMat4
	UniformMat2x3
	UniformMat3x2
	UniformMat2x4
	UniformMat4x2
	UniformMat3x4
	UniformMat4x3
	// UniformSampler2D is set with Uniform1i: the value is a texture unit.
	UniformSampler2D
	// UniformBool is set with Uniform1i as 0 or 1.
	UniformBool
)

var utypeNames = [...]string{
	UniformFloat:      "float",
	UniformVec2:       "vec2",
	UniformVec3:       "vec3",
	UniformVec4:       "vec4",
	UniformInt:        "int",
	UniformIVec2:      "ivec2",
	UniformIVec3:      "ivec3",
	UniformIVec4:      "ivec4",
	UniformFloatArray: "floatvec",
	UniformIntArray:   "intvec",
	UniformMat2:       "mat2",
	UniformMat3:       "mat3",
	UniformMat4:       "mat4",
	UniformMat2x3:     "mat2x3",
	UniformMat3x2:     "mat3x2",
	UniformMat2x4:     "mat2x4",
	UniformMat4x2:     "mat4x2",
	UniformMat3x4:     "mat3x4",
	UniformMat4x3:     "mat4x3",
	UniformSampler2D:  "sampler2D",
	UniformBool:       "bool",
}

func (u Utype) String() string {
	if u > 0 && int(u) < len(utypeNames) {
		return utypeNames[u]
	}
	return fmt.Sprintf("Utype(%d)", uint8(u))
}

// ParseUtype maps a GLSL type name (or "floatvec"/"intvec" for plain
// arrays) to its Utype.
func ParseUtype(name string) (Utype, error) {
	for u := UniformFloat; u <= UniformBool; u++ {
		if utypeNames[u] == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown uniform type %q", name)
}

// IsMatrix reports whether the uniform is set with a UniformMatrix* call.
func (u Utype) IsMatrix() bool {
	return u >= UniformMat2 && u <= UniformMat4x3
}

// AttributeDesc declares one vertex attribute of a program.
type AttributeDesc struct {
	Name string
	Type Atype
}

// UniformDesc declares one uniform of a program.
type UniformDesc struct {
	Name string
	Type Utype
}

// AttributeLayout lists the attributes a program is expected to use, in
// declaration order.
type AttributeLayout []AttributeDesc

// UniformLayout lists the uniforms a program is expected to use, in
// declaration order.
type UniformLayout []UniformDesc

// ProgramLayout is declared once per shader and never modified afterwards.
type ProgramLayout struct {
	Attributes AttributeLayout
	Uniforms   UniformLayout
}

// AttributeBinding is an attribute the linked program actually exposes.
type AttributeBinding struct {
	Name     string
	Location Attrib
	Type     Atype
}

// UniformBinding is a uniform the linked program actually exposes.
type UniformBinding struct {
	Name     string
	Location Uniform
	Type     Utype
}

// ProgramAttributes holds the resolved attributes in layout order.
type ProgramAttributes []AttributeBinding

// Get returns the binding for name.
func (p ProgramAttributes) Get(name string) (AttributeBinding, bool) {
	for _, b := range p {
		if b.Name == name {
			return b, true
		}
	}
	return AttributeBinding{}, false
}

// ProgramUniforms holds the resolved uniforms in layout order.
type ProgramUniforms []UniformBinding

// Get returns the binding for name.
func (p ProgramUniforms) Get(name string) (UniformBinding, bool) {
	for _, b := range p {
		if b.Name == name {
			return b, true
		}
	}
	return UniformBinding{}, false
}

// IndexName is the reserved model key holding the element indices when a
// model is described as a plain name→values map.
const IndexName = "index"

// Model is one mesh in host memory: the element indices plus a flat value
// sequence per attribute name, laid out per vertex in the component order
// of the attribute's type. It is read once by CreateVAO and not retained.
type Model struct {
	Index      []uint32
	Attributes map[string][]float64
}

// ModelFromMap splits a name→values map into a Model, taking the "index"
// entry as the element indices. Indices must be whole numbers in the
// uint32 range.
func ModelFromMap(m map[string][]float64) (Model, error) {
	model := Model{Attributes: make(map[string][]float64, len(m))}
	for name, values := range m {
		if name == IndexName {
			model.Index = make([]uint32, len(values))
			for i, v := range values {
				if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
					return Model{}, fmt.Errorf("index %d: %v is not a valid vertex index", i, v)
				}
				model.Index[i] = uint32(v)
			}
			continue
		}
		model.Attributes[name] = values
	}
	return model, nil
}
