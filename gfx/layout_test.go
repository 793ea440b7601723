package gfx

import (
	"reflect"
	"strings"
	"testing"
)

func TestAtype(t *testing.T) {
	tests := []struct {
		name    string
		typ     Atype
		comps   int
		integer bool
	}{
		{"float", AttribFloat, 1, false},
		{"vec2", AttribVec2, 2, false},
		{"vec3", AttribVec3, 3, false},
		{"vec4", AttribVec4, 4, false},
		{"int", AttribInt, 1, true},
		{"ivec2", AttribIVec2, 2, true},
		{"ivec3", AttribIVec3, 3, true},
		{"ivec4", AttribIVec4, 4, true},
	}
	for _, tt := range tests {
		got, err := ParseAtype(tt.name)
		if err != nil || got != tt.typ {
			t.Errorf("ParseAtype(%q): expected %v, got %v (%v)", tt.name, tt.typ, got, err)
		}
		if s := tt.typ.String(); s != tt.name {
			t.Errorf("String: expected %q, got %q", tt.name, s)
		}
		if n := tt.typ.Components(); n != tt.comps {
			t.Errorf("%s components: expected %d, got %d", tt.name, tt.comps, n)
		}
		if tt.typ.Integer() != tt.integer {
			t.Errorf("%s integer: expected %v", tt.name, tt.integer)
		}
	}
	if _, err := ParseAtype("mat4"); err == nil {
		t.Error("mat4 is not an attribute type")
	}
}

func TestUtypeNames(t *testing.T) {
	for u := UniformFloat; u <= UniformBool; u++ {
		got, err := ParseUtype(u.String())
		if err != nil || got != u {
			t.Errorf("round trip %d: got %v (%v)", u, got, err)
		}
	}
	if _, err := ParseUtype("sampler3D"); err == nil {
		t.Error("expected an error for sampler3D")
	}
	if s := Utype(0).String(); s != "Utype(0)" {
		t.Errorf("zero Utype: got %q", s)
	}
	if UniformSampler2D.IsMatrix() || UniformVec4.IsMatrix() {
		t.Error("only mat* types are matrices")
	}
}

func TestModelFromMap(t *testing.T) {
	m, err := ModelFromMap(map[string][]float64{
		"index":    {0, 1, 2},
		"position": {0, 0, 1, 0, 0, 1},
		"id":       {4, 5, 6},
	})
	if err != nil {
		t.Fatalf("ModelFromMap: %v", err)
	}
	if !reflect.DeepEqual(m.Index, []uint32{0, 1, 2}) {
		t.Errorf("index: got %v", m.Index)
	}
	if _, ok := m.Attributes["index"]; ok {
		t.Error("index must not be an attribute")
	}
	if len(m.Attributes) != 2 {
		t.Errorf("expected 2 attributes, got %v", m.Attributes)
	}
}

func TestModelFromMapRejectsBadIndices(t *testing.T) {
	for _, v := range []float64{-1, 1.5, 1 << 33} {
		_, err := ModelFromMap(map[string][]float64{"index": {0, v}})
		if err == nil || !strings.Contains(err.Error(), "index 1") {
			t.Errorf("index %v: expected an error naming index 1, got %v", v, err)
		}
	}
}

func TestBindingsGet(t *testing.T) {
	attrs := ProgramAttributes{{Name: "a", Location: 1, Type: AttribVec2}}
	if _, ok := attrs.Get("b"); ok {
		t.Error("unexpected attribute b")
	}
	uniforms := ProgramUniforms{{Name: "u", Location: Uniform{0}, Type: UniformMat4}}
	if u, ok := uniforms.Get("u"); !ok || u.Type != UniformMat4 {
		t.Errorf("uniform u: got %+v, %v", u, ok)
	}
}
