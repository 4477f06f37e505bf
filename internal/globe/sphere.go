package globe

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mars-globe/internal/scene"
)

// NewSphereGeometry builds a UV sphere centered at the origin.
//
// Vertices are laid out row by row from the north pole (v=0) to the south
// pole (v=1), widthSegments+1 per row so the seam has duplicated vertices
// with u=0 and u=1. Pole rows get a half-segment u offset so each pole
// triangle samples the middle of its texel column.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *scene.Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	rows := heightSegments + 1
	cols := widthSegments + 1
	g := &scene.Geometry{
		Positions: make([]float32, 0, rows*cols*3),
		Normals:   make([]float32, 0, rows*cols*3),
		UVs:       make([]float32, 0, rows*cols*2),
		Indices:   make([]uint32, 0, 6*widthSegments*(heightSegments-1)),
	}

	grid := make([][]uint32, rows)
	var index uint32
	for iy := 0; iy < rows; iy++ {
		v := float32(iy) / float32(heightSegments)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		grid[iy] = make([]uint32, cols)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
		for ix := 0; ix < cols; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)

			x := -radius * cosPhi * sinTheta
			y := radius * cosTheta
			z := radius * sinPhi * sinTheta
			g.Positions = append(g.Positions, x, y, z)

			nx, ny, nz := x/radius, y/radius, z/radius
			g.Normals = append(g.Normals, nx, ny, nz)

			g.UVs = append(g.UVs, u+uOffset, 1-v)

			grid[iy][ix] = index
			index++
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// Pole rows collapse to a single triangle per quad.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}
