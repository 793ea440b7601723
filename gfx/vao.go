package gfx

import (
	"unsafe"
)

// VAO is a vertex array object together with the parameters of its indexed
// draw call.
type VAO struct {
	Handle    VertexArray
	Mode      Enum
	Count     int
	IndexType Enum
	Offset    int

	buffers []Buffer
}

// CreateVAO uploads model into GPU buffers recorded in a new vertex array
// object, so it can be drawn later without re-sending the data.
//
// Indices are uploaded as uint32. For each resolved attribute, a positive
// type goes through VertexAttribPointer with float32 data and a negative
// type through VertexAttribIPointer with int32 data. An attribute the model
// has no data for is logged and left unbound; the shader then reads zeros.
// Call this from the goroutine that owns the context.
func CreateVAO(gl GL, attrs ProgramAttributes, model Model) (*VAO, error) {
	va := gl.CreateVertexArray()
	if !va.Valid() {
		return nil, creationFailed("create vertex array")
	}
	gl.BindVertexArray(va)

	indexBuf := gl.CreateBuffer()
	if !indexBuf.Valid() {
		gl.BindVertexArray(VertexArray{})
		return nil, creationFailed("create index buffer")
	}
	gl.BindBuffer(ELEMENT_ARRAY_BUFFER, indexBuf)
	gl.BufferData(ELEMENT_ARRAY_BUFFER, sliceBytes(model.Index), STATIC_DRAW)
	buffers := []Buffer{indexBuf}

	for _, a := range attrs {
		values, ok := model.Attributes[a.Name]
		if !ok {
			Logger().Warn("program has attribute but model does not; it will read empty data", "name", a.Name)
			continue
		}

		gl.EnableVertexAttribArray(a.Location)
		buf := gl.CreateBuffer()
		if !buf.Valid() {
			gl.BindVertexArray(VertexArray{})
			return nil, creationFailed("create buffer for attribute " + a.Name)
		}
		buffers = append(buffers, buf)
		gl.BindBuffer(ARRAY_BUFFER, buf)
		if a.Type.Integer() {
			gl.BufferData(ARRAY_BUFFER, sliceBytes(toInt32(values)), STATIC_DRAW)
			gl.VertexAttribIPointer(a.Location, a.Type.Components(), INT, 0, 0)
		} else {
			gl.BufferData(ARRAY_BUFFER, sliceBytes(toFloat32(values)), STATIC_DRAW)
			gl.VertexAttribPointer(a.Location, a.Type.Components(), FLOAT, false, 0, 0)
		}
	}
	gl.BindVertexArray(VertexArray{})

	return &VAO{
		Handle:    va,
		Mode:      TRIANGLES,
		Count:     len(model.Index),
		IndexType: UNSIGNED_INT,
		Offset:    0,
		buffers:   buffers,
	}, nil
}

// Draw binds vao and issues its draw call.
func Draw(gl GL, vao *VAO) {
	BindVAO(gl, vao)
	DrawVAO(gl, vao)
}

// BindVAO makes vao current. Use it with DrawVAO to issue several draws
// against one binding.
func BindVAO(gl GL, vao *VAO) {
	gl.BindVertexArray(vao.Handle)
}

// DrawVAO issues the indexed draw recorded in vao. It must be bound.
func DrawVAO(gl GL, vao *VAO) {
	gl.DrawElements(vao.Mode, vao.Count, vao.IndexType, vao.Offset)
}

// DeleteVAO releases the vertex array object and the buffers CreateVAO
// allocated for it.
func DeleteVAO(gl GL, vao *VAO) {
	if vao.Handle.Valid() {
		gl.DeleteVertexArray(vao.Handle)
		vao.Handle = VertexArray{}
	}
	for _, b := range vao.buffers {
		gl.DeleteBuffer(b)
	}
	vao.buffers = nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

func toInt32(v []float64) []int32 {
	out := make([]int32, len(v))
	for i, f := range v {
		out[i] = int32(f)
	}
	return out
}

// sliceBytes reinterprets a slice of 4-byte values as bytes in host order,
// which is what the driver expects for buffer uploads.
func sliceBytes[T uint32 | int32 | float32](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*4)
}
