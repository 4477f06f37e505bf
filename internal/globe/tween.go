package globe

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/mars-globe/pkg/math"
)

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// LookupEase returns the easing function registered under name.
func LookupEase(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q (known: %v)", name, EaseNames())
	}
	return fn, nil
}

// EaseNames lists the registered easing names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RotationTween eases a two-axis rotation toward a target. There is exactly
// one in-flight interpolation: retargeting to the value already being
// approached keeps the running tween, retargeting elsewhere restarts from
// the current value with the full duration.
type RotationTween struct {
	duration float32
	easing   ease.TweenFunc

	current math.Vec2
	target  math.Vec2
	x, y    *gween.Tween
	done    bool
}

// NewRotationTween creates an idle tween resting at (0, 0).
func NewRotationTween(duration float32, easing ease.TweenFunc) *RotationTween {
	if easing == nil {
		easing = ease.OutQuad
	}
	return &RotationTween{
		duration: duration,
		easing:   easing,
		done:     true,
	}
}

// Retarget points the tween at target.
func (t *RotationTween) Retarget(target math.Vec2) {
	if target == t.target {
		return
	}
	t.target = target
	t.x = gween.New(t.current.X, target.X, t.duration, t.easing)
	t.y = gween.New(t.current.Y, target.Y, t.duration, t.easing)
	t.done = false
}

// Update advances the interpolation by dt seconds and returns the new value.
func (t *RotationTween) Update(dt float32) math.Vec2 {
	if t.done {
		return t.current
	}
	x, xDone := t.x.Update(dt)
	y, yDone := t.y.Update(dt)
	t.current = math.Vec2{X: x, Y: y}
	t.done = xDone && yDone
	return t.current
}

// Value returns the current interpolated rotation.
func (t *RotationTween) Value() math.Vec2 { return t.current }

// Target returns the rotation being approached.
func (t *RotationTween) Target() math.Vec2 { return t.target }

// Done reports whether the current value has reached the target.
func (t *RotationTween) Done() bool { return t.done }
