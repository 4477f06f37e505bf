package app

import (
	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/engine/camera"
	"github.com/Faultbox/mars-globe/internal/globe"
)

// Driver advances the animation one frame at a time. Step never blocks;
// frame pacing belongs to the caller (vsync on buffer swap).
type Driver struct {
	Globe     *globe.Globe
	Camera    *camera.PerspectiveCamera
	Controls  Controls
	Drawer    Drawer
	Pointer   *globe.PointerTarget
	Tween     *globe.RotationTween
	Resolvers []Resolver

	SpinPerFrame float32
	SpinMode     string
	PointerGain  float32

	frames uint64
}

// Step runs one frame: camera controls, pending resolves, draw, then the
// sphere spin and the pivot easing toward the pointer. dt is the time
// since the previous frame in seconds.
func (d *Driver) Step(dt float32) {
	if d.Controls != nil {
		d.Controls.Update()
	}
	for _, r := range d.Resolvers {
		r.Resolve()
	}
	if d.Drawer != nil {
		d.Drawer.Draw(d.Globe.Scene, d.Camera)
	}

	spin := d.SpinPerFrame
	if d.SpinMode == config.SpinPerTime {
		spin *= dt * 60
	}
	d.Globe.Spin(spin)

	d.Tween.Retarget(globe.RotationTarget(d.Pointer.Position(), d.PointerGain))
	d.Globe.Orient(d.Tween.Update(dt))

	d.frames++
}

// Frames returns the number of completed steps.
func (d *Driver) Frames() uint64 {
	return d.frames
}
