package scene

// Geometry is a CPU-side vertex buffer. Positions, Normals and UVs are
// tightly packed (3, 3 and 2 floats per vertex). Indices may be empty
// for non-indexed draws.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in Positions.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Side selects which triangle faces are rasterized.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	default:
		return "front"
	}
}

// Blending selects how fragments are composited into the framebuffer.
type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

func (b Blending) String() string {
	if b == AdditiveBlending {
		return "additive"
	}
	return "normal"
}

// Uniform is a named material input. Value is one of float32, [3]float32,
// or a TextureSource.
type Uniform struct {
	Value any
}

// TextureSource resolves to a GPU texture handle. Handle reports false while
// the image has not been uploaded yet.
type TextureSource interface {
	Handle() (uint32, bool)
}

// Material pairs a shader program with its uniform values and render state.
type Material struct {
	Name           string
	VertexShader   string
	FragmentShader string
	Uniforms       map[string]Uniform
	Side           Side
	Blending       Blending
	Transparent    bool
	DepthWrite     bool
}

// NewMaterial returns an opaque, front-sided material with depth writes on.
func NewMaterial(name, vertexShader, fragmentShader string) *Material {
	return &Material{
		Name:           name,
		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,
		Uniforms:       make(map[string]Uniform),
		DepthWrite:     true,
	}
}

// Mesh draws a triangle geometry with a material.
type Mesh struct {
	Node
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a mesh node.
func NewMesh(name string, geo *Geometry, mat *Material) *Mesh {
	return &Mesh{Node: *NewNode(name), Geometry: geo, Material: mat}
}

// PointsMaterial renders each vertex as a fixed-color square point.
type PointsMaterial struct {
	Color           [3]float32
	Size            float32
	SizeAttenuation bool
}

// Points draws a geometry as a point cloud.
type Points struct {
	Node
	Geometry *Geometry
	Material *PointsMaterial
}

// NewPoints creates a point cloud node.
func NewPoints(name string, geo *Geometry, mat *PointsMaterial) *Points {
	return &Points{Node: *NewNode(name), Geometry: geo, Material: mat}
}
