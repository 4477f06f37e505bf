package math

import "github.com/chewxy/math32"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math32.Pi

// Euler holds rotation angles in radians, applied in X, Y, Z order
// (the combined matrix is Rx * Ry * Rz).
type Euler struct {
	X, Y, Z float32
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Compose builds a model matrix as T * R * S.
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	return Translate(position.X, position.Y, position.Z).
		Mul(rotation.Matrix()).
		Mul(Scale(scale.X, scale.Y, scale.Z))
}

// WrapAngle maps a to [0, 2π).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}
