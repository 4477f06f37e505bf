package globe

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSphereGeometryCounts(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{50, 50},
		{8, 6},
		{3, 2},
	}
	for _, tt := range tests {
		g := NewSphereGeometry(5, tt.w, tt.h)

		wantVerts := (tt.w + 1) * (tt.h + 1)
		if g.VertexCount() != wantVerts {
			t.Errorf("%dx%d: vertices = %d, want %d", tt.w, tt.h, g.VertexCount(), wantVerts)
		}
		if len(g.Normals) != len(g.Positions) {
			t.Errorf("%dx%d: normals = %d, want %d", tt.w, tt.h, len(g.Normals), len(g.Positions))
		}
		if len(g.UVs) != wantVerts*2 {
			t.Errorf("%dx%d: uvs = %d, want %d", tt.w, tt.h, len(g.UVs), wantVerts*2)
		}
		wantIdx := 6 * tt.w * (tt.h - 1)
		if len(g.Indices) != wantIdx {
			t.Errorf("%dx%d: indices = %d, want %d", tt.w, tt.h, len(g.Indices), wantIdx)
		}
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	const radius = 5
	g := NewSphereGeometry(radius, 16, 12)

	for i := 0; i < g.VertexCount(); i++ {
		x, y, z := g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
		r := math32.Sqrt(x*x + y*y + z*z)
		if math32.Abs(r-radius) > 1e-4 {
			t.Fatalf("vertex %d at distance %f, want %d", i, r, radius)
		}
	}
}

func TestSpherePoles(t *testing.T) {
	g := NewSphereGeometry(5, 10, 10)

	if y := g.Positions[1]; math32.Abs(y-5) > 1e-5 {
		t.Errorf("first row y = %f, want north pole 5", y)
	}
	last := g.VertexCount() - 1
	if y := g.Positions[last*3+1]; math32.Abs(y+5) > 1e-5 {
		t.Errorf("last row y = %f, want south pole -5", y)
	}
	if v := g.UVs[1]; v != 1 {
		t.Errorf("north pole v = %f, want 1", v)
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	g := NewSphereGeometry(1, 12, 9)
	n := uint32(g.VertexCount())
	for i, idx := range g.Indices {
		if idx >= n {
			t.Fatalf("index %d = %d out of range %d", i, idx, n)
		}
	}
}
