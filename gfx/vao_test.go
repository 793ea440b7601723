package gfx

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCreateVAOQuad(t *testing.T) {
	gl := newFakeGL()
	attrs := ProgramAttributes{{Name: "position", Location: 0, Type: AttribVec2}}
	model := Model{
		Index:      []uint32{0, 1, 2, 2, 3, 0},
		Attributes: map[string][]float64{"position": {-1, -1, 1, -1, 1, 1, -1, 1}},
	}

	vao, err := CreateVAO(gl, attrs, model)
	if err != nil {
		t.Fatalf("CreateVAO: %v", err)
	}
	if vao.Count != 6 || vao.IndexType != UNSIGNED_INT || vao.Mode != TRIANGLES || vao.Offset != 0 {
		t.Errorf("unexpected draw parameters %+v", vao)
	}

	data := gl.callsNamed("BufferData")
	if len(data) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(data))
	}
	if data[0].args[0] != Enum(ELEMENT_ARRAY_BUFFER) {
		t.Errorf("first upload should be the index buffer, got target %v", data[0].args[0])
	}
	if got := uint32s(data[0].args[1].([]byte)); !reflect.DeepEqual(got, model.Index) {
		t.Errorf("indices: expected %v, got %v", model.Index, got)
	}
	want := []float32{-1, -1, 1, -1, 1, 1, -1, 1}
	if got := float32s(data[1].args[1].([]byte)); !reflect.DeepEqual(got, want) {
		t.Errorf("positions: expected %v, got %v", want, got)
	}

	ptr := gl.callsNamed("VertexAttribPointer")
	if len(ptr) != 1 {
		t.Fatalf("expected 1 VertexAttribPointer, got %d", len(ptr))
	}
	if !reflect.DeepEqual(ptr[0].args, []any{Attrib(0), 2, Enum(FLOAT), false, 0, 0}) {
		t.Errorf("VertexAttribPointer args: %v", ptr[0].args)
	}

	// The VAO is left unbound so later buffer binds do not alter it.
	binds := gl.callsNamed("BindVertexArray")
	if last := binds[len(binds)-1].args[0]; last != (VertexArray{}) {
		t.Errorf("expected the VAO to be unbound, last bind %v", last)
	}
}

func TestCreateVAOIntegerAttribute(t *testing.T) {
	gl := newFakeGL()
	attrs := ProgramAttributes{
		{Name: "cell", Location: 2, Type: AttribIVec3},
		{Name: "uv", Location: 1, Type: AttribVec2},
	}
	model := Model{
		Index: []uint32{0},
		Attributes: map[string][]float64{
			"cell": {1, -2, 3},
			"uv":   {0.25, 0.75},
		},
	}
	if _, err := CreateVAO(gl, attrs, model); err != nil {
		t.Fatalf("CreateVAO: %v", err)
	}

	ip := gl.callsNamed("VertexAttribIPointer")
	if len(ip) != 1 || !reflect.DeepEqual(ip[0].args, []any{Attrib(2), 3, Enum(INT), 0, 0}) {
		t.Errorf("VertexAttribIPointer: got %v", ip)
	}
	fp := gl.callsNamed("VertexAttribPointer")
	if len(fp) != 1 || fp[0].args[0] != Attrib(1) || fp[0].args[1] != 2 {
		t.Errorf("VertexAttribPointer: got %v", fp)
	}

	data := gl.callsNamed("BufferData")
	if got := int32s(data[1].args[1].([]byte)); !reflect.DeepEqual(got, []int32{1, -2, 3}) {
		t.Errorf("cell data: got %v", got)
	}
	if got := float32s(data[2].args[1].([]byte)); !reflect.DeepEqual(got, []float32{0.25, 0.75}) {
		t.Errorf("uv data: got %v", got)
	}
}

func TestCreateVAOMissingModelAttribute(t *testing.T) {
	logs := captureLogs(t)
	gl := newFakeGL()
	attrs := ProgramAttributes{
		{Name: "position", Location: 0, Type: AttribVec3},
		{Name: "normal", Location: 1, Type: AttribVec3},
	}
	model := Model{
		Index:      []uint32{0, 1, 2},
		Attributes: map[string][]float64{"position": make([]float64, 9)},
	}
	if _, err := CreateVAO(gl, attrs, model); err != nil {
		t.Fatalf("CreateVAO: %v", err)
	}

	for _, c := range gl.callsNamed("EnableVertexAttribArray") {
		if c.args[0] == Attrib(1) {
			t.Error("normal must stay disabled")
		}
	}
	if n := len(gl.callsNamed("CreateBuffer")); n != 2 {
		t.Errorf("expected 2 buffers (index, position), got %d", n)
	}
	if !strings.Contains(logs.String(), "name=normal") {
		t.Errorf("expected a warning naming normal, logs:\n%s", logs)
	}
}

func TestCreateVAOBufferFailure(t *testing.T) {
	gl := newFakeGL()
	gl.failCreate["CreateBuffer"] = true
	_, err := CreateVAO(gl, nil, Model{Index: []uint32{0}})
	if !errors.Is(err, ErrResourceCreation) {
		t.Errorf("expected ErrResourceCreation, got %v", err)
	}

	gl = newFakeGL()
	gl.failCreate["CreateVertexArray"] = true
	_, err = CreateVAO(gl, nil, Model{Index: []uint32{0}})
	if !errors.Is(err, ErrResourceCreation) {
		t.Errorf("expected ErrResourceCreation, got %v", err)
	}
}

func TestDrawAndDeleteVAO(t *testing.T) {
	gl := newFakeGL()
	attrs := ProgramAttributes{{Name: "position", Location: 0, Type: AttribVec2}}
	model, err := ModelFromMap(map[string][]float64{
		"index":    {0, 1, 2},
		"position": {0, 0, 1, 0, 0, 1},
	})
	if err != nil {
		t.Fatalf("ModelFromMap: %v", err)
	}
	vao, err := CreateVAO(gl, attrs, model)
	if err != nil {
		t.Fatalf("CreateVAO: %v", err)
	}
	gl.reset()

	Draw(gl, vao)
	want := []call{
		{"BindVertexArray", []any{vao.Handle}},
		{"DrawElements", []any{Enum(TRIANGLES), 3, Enum(UNSIGNED_INT), 0}},
	}
	if !reflect.DeepEqual(gl.calls, want) {
		t.Errorf("Draw: expected %v, got %v", want, gl.calls)
	}

	gl.reset()
	DeleteVAO(gl, vao)
	if n := len(gl.callsNamed("DeleteBuffer")); n != 2 {
		t.Errorf("expected 2 DeleteBuffer calls, got %d", n)
	}
	if n := len(gl.callsNamed("DeleteVertexArray")); n != 1 {
		t.Errorf("expected 1 DeleteVertexArray call, got %d", n)
	}
	DeleteVAO(gl, vao)
	if n := len(gl.callsNamed("DeleteVertexArray")); n != 1 {
		t.Errorf("second DeleteVAO must be a no-op, got %d calls", n)
	}
}
