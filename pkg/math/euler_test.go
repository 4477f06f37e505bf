package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestEulerZeroIsIdentity(t *testing.T) {
	m := Euler{}.Matrix()
	if m != Identity() {
		t.Errorf("Euler{}.Matrix() = %v, want identity", m)
	}
}

func TestEulerOrderXYZ(t *testing.T) {
	e := Euler{X: 0.3, Y: -0.7, Z: 1.1}
	want := RotateX(0.3).Mul(RotateY(-0.7)).Mul(RotateZ(1.1))
	got := e.Matrix()
	for i := range got {
		if abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestComposeAppliesScaleThenRotationThenTranslation(t *testing.T) {
	m := Compose(Vec3{X: 10}, Euler{Y: math32.Pi / 2}, Splat(2))
	got := m.TransformPoint(Vec3{X: 1})

	// scale: (2,0,0), rotate 90° about Y: (0,0,-2), translate: (10,0,-2)
	want := Vec3{X: 10, Y: 0, Z: -2}
	if got.Distance(want) > 1e-4 {
		t.Errorf("Compose transform = %v, want %v", got, want)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{TwoPi + 0.5, 0.5},
		{-0.5, TwoPi - 0.5},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if abs(got-tt.want) > 1e-5 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
