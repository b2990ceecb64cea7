package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lightlab/core"
	"lightlab/scene"
)

// GPUMesh is the vertex array and buffers backing one scene.Mesh.
type GPUMesh struct {
	VAO, VBO, EBO uint32
	IndexCount    int32
}

// vertexLayout lists the float attributes of core.Vertex in shader
// location order.
var vertexLayout = func() []struct {
	size   int32
	offset uintptr
} {
	var v core.Vertex
	return []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{4, unsafe.Offsetof(v.Color)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
}()

// meshCache uploads meshes on first draw and keeps them resident until
// released. Mesh data is assumed immutable once drawn.
type meshCache map[*scene.Mesh]*GPUMesh

func (c meshCache) get(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := c[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}
	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.BindVertexArray(gpu.VAO)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &gpu.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)
	for loc, a := range vertexLayout {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), a.size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.offset)))
	}

	if gpu.IndexCount > 0 {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}

	c[mesh] = gpu
	mesh.GPUData = gpu
	core.Logger().Debug("mesh uploaded", "name", mesh.Name, "vertices", len(mesh.Vertices), "indices", len(mesh.Indices))
	return gpu
}

// draw issues the draw call for an uploaded mesh.
func (gpu *GPUMesh) draw(vertexCount int) {
	gl.BindVertexArray(gpu.VAO)
	if gpu.IndexCount > 0 {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	}
	gl.BindVertexArray(0)
}

func (c meshCache) release(mesh *scene.Mesh) {
	gpu, ok := c[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(c, mesh)
	mesh.GPUData = nil
}

func (c meshCache) releaseAll() {
	for mesh := range c {
		c.release(mesh)
	}
}
