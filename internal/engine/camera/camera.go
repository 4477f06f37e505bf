// Package camera provides the perspective camera and the orbit controls that
// move it around a target point.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mars-globe/pkg/math"
)

// PerspectiveCamera projects the scene through a symmetric view frustum.
// Call UpdateProjectionMatrix after changing FOV, Aspect, Near or Far.
type PerspectiveCamera struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the cached projection.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = math.Perspective(c.FOV*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the projection computed by the last
// UpdateProjectionMatrix call.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.Target = target
}
