package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mars-globe/pkg/math"
)

const polarEpsilon = 1e-6

// OrbitControls rotates, zooms and pans a camera around Target. Input
// handlers only accumulate deltas; Update applies them once per frame.
// With damping enabled the deltas decay over several frames, giving the
// orbit inertia.
type OrbitControls struct {
	Camera *PerspectiveCamera
	Target math.Vec3

	MinDistance float32
	MaxDistance float32 // 0 means unbounded

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  math.Vec3
}

// NewOrbitControls attaches controls to cam, orbiting the origin.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	o := &OrbitControls{
		Camera:        cam,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		scale:         1,
	}
	cam.LookAt(o.Target)
	return o
}

// HandleDrag rotates by a pointer drag of (dx, dy) pixels on a viewport
// of the given height; dragging the full height turns a full circle.
func (o *OrbitControls) HandleDrag(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float32(viewportHeight)
	o.deltaTheta -= 2 * math32.Pi * dx / h * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / h * o.RotateSpeed
}

// HandleZoom dollies by wheel clicks; positive values move closer.
func (o *OrbitControls) HandleZoom(clicks float32) {
	step := math32.Pow(0.95, o.ZoomSpeed)
	o.scale *= math32.Pow(step, clicks)
}

// HandlePan slides the target in the view plane by a pointer drag of
// (dx, dy) pixels, scaled so the point under the cursor follows it.
func (o *OrbitControls) HandlePan(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	cam := o.Camera
	distance := cam.Position.Distance(o.Target) * math32.Tan(cam.FOV*math32.Pi/360)
	perPixel := 2 * distance / float32(viewportHeight) * o.PanSpeed

	view := cam.ViewMatrix()
	right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up := math.Vec3{X: view[1], Y: view[5], Z: view[9]}

	o.panOffset = o.panOffset.
		Add(right.Scale(-dx * perPixel)).
		Add(up.Scale(dy * perPixel))
}

// Update applies pending rotation, zoom and pan to the camera and reports
// whether the camera moved.
func (o *OrbitControls) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)

	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	var phi float32
	if radius > 0 {
		phi = math32.Acos(math.Clamp(offset.Y/radius, -1, 1))
	}

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor
	phi = math.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius *= o.scale
	if radius < o.MinDistance {
		radius = o.MinDistance
	}
	if o.MaxDistance > 0 && radius > o.MaxDistance {
		radius = o.MaxDistance
	}

	o.Target = o.Target.Add(o.panOffset.Scale(factor))

	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	next := o.Target.Add(math.Vec3{
		X: radius * sinPhi * sinTheta,
		Y: radius * cosPhi,
		Z: radius * sinPhi * cosTheta,
	})

	moved := next.Distance(cam.Position) > 1e-6
	cam.Position = next
	cam.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Scale(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = math.Vec3{}
	}
	o.scale = 1

	return moved
}
