package globe

import "github.com/Faultbox/mars-globe/pkg/math"

// NormalizePointer maps window coordinates to [-1, 1] on both axes, x
// growing rightward and y growing upward. Coordinates outside the window
// extrapolate past the range.
func NormalizePointer(clientX, clientY float32, width, height int) math.Vec2 {
	return math.Vec2{
		X: clientX/float32(width)*2 - 1,
		Y: -(clientY/float32(height))*2 + 1,
	}
}

// PointerTarget holds the most recent normalized pointer position.
// It starts centered.
type PointerTarget struct {
	Clamp bool
	pos   math.Vec2
}

// Move records a pointer-move event on a width x height viewport.
// Events on a zero-sized viewport are dropped.
func (p *PointerTarget) Move(clientX, clientY float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	pos := NormalizePointer(clientX, clientY, width, height)
	if p.Clamp {
		pos = pos.Clamp(-1, 1)
	}
	p.pos = pos
}

// Position returns the current normalized pointer position.
func (p *PointerTarget) Position() math.Vec2 {
	return p.pos
}

// RotationTarget converts the pointer position into the pivot orientation:
// rotation about X follows -y, rotation about Y follows x, both scaled by gain.
func RotationTarget(pointer math.Vec2, gain float32) math.Vec2 {
	return math.Vec2{X: -pointer.Y * gain, Y: pointer.X * gain}
}
