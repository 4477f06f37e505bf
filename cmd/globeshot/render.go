package main

import (
	"image"
	stdmath "math"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/engine/lighting"
	"github.com/Faultbox/mars-globe/internal/globe"
	"github.com/Faultbox/mars-globe/internal/scene"
)

// marsColor shades the sphere when no texture is available.
var marsColor = fauxgl.HexColor("#C1440E")

type shotOptions struct {
	Width, Height int
	Supersample   int
	Rotation      float64 // degrees about Y
	SunLongitude  float32
	SunLatitude   float32
	Texture       fauxgl.Texture
}

// render draws the sphere as seen by the viewer's initial camera.
func render(cfg *config.Config, opts shotOptions) image.Image {
	scale := max(opts.Supersample, 1)
	width, height := max(opts.Width, 1), max(opts.Height, 1)

	mesh := sphereMesh(globe.NewSphereGeometry(cfg.Globe.Radius, cfg.Globe.WidthSegments, cfg.Globe.HeightSegments))
	if opts.Rotation != 0 {
		mesh.Transform(fauxgl.Rotate(fauxgl.V(0, 1, 0), fauxgl.Radians(opts.Rotation)))
	}

	var (
		eye    = fauxgl.V(0, 0, float64(cfg.Camera.Distance))
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 1, 0)
		sun    = lighting.SunDirection(opts.SunLongitude, opts.SunLatitude)
		light  = fauxgl.V(float64(sun.X), float64(sun.Y), float64(sun.Z))
		fovy   = float64(cfg.Camera.FOV)
		aspect = float64(width) / float64(height)
		near   = float64(cfg.Camera.Near)
		far    = float64(cfg.Camera.Far)
	)

	bg := cfg.Graphics.ClearColor
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1})

	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = marsColor
	shader.Texture = opts.Texture
	context.Shader = shader
	// closed mesh behind a depth test; winding is irrelevant
	context.Cull = fauxgl.CullNone
	context.DrawMesh(mesh)

	img := context.Image()
	if scale == 1 {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// sphereMesh converts an indexed geometry into fauxgl triangles.
func sphereMesh(geo *scene.Geometry) *fauxgl.Mesh {
	vertex := func(i uint32) fauxgl.Vertex {
		p, n, uv := geo.Positions[i*3:i*3+3], geo.Normals[i*3:i*3+3], geo.UVs[i*2:i*2+2]
		return fauxgl.Vertex{
			Position: fauxgl.V(float64(p[0]), float64(p[1]), float64(p[2])),
			Normal:   fauxgl.V(float64(n[0]), float64(n[1]), float64(n[2])),
			Texture:  fauxgl.V(float64(uv[0]), float64(uv[1]), 0),
		}
	}

	triangles := make([]*fauxgl.Triangle, 0, len(geo.Indices)/3)
	for i := 0; i+2 < len(geo.Indices); i += 3 {
		t := &fauxgl.Triangle{
			V1: vertex(geo.Indices[i]),
			V2: vertex(geo.Indices[i+1]),
			V3: vertex(geo.Indices[i+2]),
		}
		if degenerate(t) {
			continue
		}
		triangles = append(triangles, t)
	}
	return fauxgl.NewTriangleMesh(triangles)
}

func degenerate(t *fauxgl.Triangle) bool {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Length() < 1e-12 || stdmath.IsNaN(e1.X)
}
