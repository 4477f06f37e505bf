package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/logger"
	"github.com/Faultbox/mars-globe/internal/scene"
)

// Attribute locations shared by all embedded shaders.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
)

// gpuGeometry is the uploaded form of a scene.Geometry.
type gpuGeometry struct {
	vao     uint32
	vbos    []uint32
	ebo     uint32
	count   int32
	indexed bool
}

// geometry returns the GPU buffers for geo, uploading them on first use.
// Geometries are immutable once added to the scene.
func (r *Renderer) geometry(geo *scene.Geometry) *gpuGeometry {
	if buf, ok := r.buffers[geo]; ok {
		return buf
	}
	buf := uploadGeometry(geo)
	r.buffers[geo] = buf
	logger.Debug("geometry uploaded",
		zap.Int("vertices", geo.VertexCount()),
		zap.Int("indices", len(geo.Indices)),
		zap.Uint32("vao", buf.vao),
	)
	return buf
}

func uploadGeometry(geo *scene.Geometry) *gpuGeometry {
	buf := &gpuGeometry{}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	buf.attribute(attribPosition, 3, geo.Positions)
	buf.attribute(attribNormal, 3, geo.Normals)
	buf.attribute(attribUV, 2, geo.UVs)

	if len(geo.Indices) > 0 {
		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, gl.Ptr(geo.Indices), gl.STATIC_DRAW)
		buf.count = int32(len(geo.Indices))
		buf.indexed = true
	} else {
		buf.count = int32(geo.VertexCount())
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return buf
}

func (b *gpuGeometry) attribute(location uint32, size int32, data []float32) {
	if len(data) == 0 {
		return
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, size*4, nil)
	gl.EnableVertexAttribArray(location)
	b.vbos = append(b.vbos, vbo)
}

func (b *gpuGeometry) draw(mode uint32) {
	gl.BindVertexArray(b.vao)
	if b.indexed {
		gl.DrawElements(mode, b.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, b.count)
	}
	gl.BindVertexArray(0)
}

func (b *gpuGeometry) delete() {
	if len(b.vbos) > 0 {
		gl.DeleteBuffers(int32(len(b.vbos)), &b.vbos[0])
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	gl.DeleteVertexArrays(1, &b.vao)
}
