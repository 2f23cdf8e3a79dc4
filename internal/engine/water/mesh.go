package water

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh is a static rectangle covering the simulated area, in pond pixel
// coordinates. Both water passes reuse it unchanged; the vertex shaders
// map it to clip space through their size/scale uniforms.
type Mesh struct {
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

// NewQuad builds the rectangle (0,0)..(width,height). A degenerate size
// yields an empty mesh whose Draw is a no-op.
func NewQuad(width, height float32) *Mesh {
	m := &Mesh{}
	if width <= 0 || height <= 0 {
		return m
	}

	vertices := []float32{
		0, 0,
		width, 0,
		width, height,
		0, height,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Both programs declare the position attribute at location 0.
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	m.count = int32(len(indices))

	return m
}

// Draw issues the quad as indexed triangles under the current program.
func (m *Mesh) Draw() {
	if m.vao == 0 || m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Release deletes the GL objects and empties the mesh.
func (m *Mesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.count = 0
}
