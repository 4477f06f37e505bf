// Package app wires the Mars scene, camera and animation together and
// reacts to viewport and pointer events. It has no GL dependency: drawing
// and the output surface are reached through small interfaces.
package app

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/engine/camera"
	"github.com/Faultbox/mars-globe/internal/globe"
	"github.com/Faultbox/mars-globe/internal/logger"
	"github.com/Faultbox/mars-globe/internal/scene"
	"github.com/Faultbox/mars-globe/pkg/math"
)

// Surface is the render output whose size tracks the viewport.
type Surface interface {
	Resize(width, height int, pixelRatio float64)
}

// Drawer renders one frame of a scene.
type Drawer interface {
	Draw(s *scene.Scene, cam *camera.PerspectiveCamera)
}

// Controls is a per-frame camera controller.
type Controls interface {
	Update() bool
}

// Resolver finishes pending asynchronous work, such as a texture upload,
// without blocking.
type Resolver interface {
	Resolve()
}

// Options holds what New needs beyond the config.
type Options struct {
	Surface Surface
	Drawer  Drawer
	// Texture is bound to the globe material. If it also implements
	// Resolver it is resolved every frame before drawing.
	Texture scene.TextureSource
	// StarSource seeds the starfield; nil derives one from the config seed.
	StarSource       rand.Source
	DevicePixelRatio float64
}

// App is the application context: viewport, camera, controls, scene and
// the animation state shared by the event handlers and the frame driver.
type App struct {
	Viewport Viewport
	Camera   *camera.PerspectiveCamera
	Orbit    *camera.OrbitControls
	Globe    *globe.Globe
	Pointer  *globe.PointerTarget
	Tween    *globe.RotationTween
	Driver   *Driver

	surface Surface
}

// New builds the scene and camera from cfg and sizes the surface to the
// configured window.
func New(cfg *config.Config, opts Options) (*App, error) {
	easing, err := globe.LookupEase(cfg.Globe.TweenEase)
	if err != nil {
		return nil, fmt.Errorf("tween ease: %w", err)
	}

	a := &App{
		Viewport: Viewport{
			Width:            cfg.Graphics.Width,
			Height:           cfg.Graphics.Height,
			DevicePixelRatio: opts.DevicePixelRatio,
			MaxPixelRatio:    cfg.Graphics.MaxPixelRatio,
		},
		Pointer: &globe.PointerTarget{Clamp: cfg.Globe.ClampPointer},
		Tween:   globe.NewRotationTween(float32(cfg.Globe.TweenDuration.Seconds()), easing),
		surface: opts.Surface,
	}

	cc := cfg.Camera
	a.Camera = camera.NewPerspectiveCamera(cc.FOV, a.Viewport.Aspect(), cc.Near, cc.Far)
	a.Camera.Position = math.Vec3{Z: cc.Distance}

	a.Orbit = camera.NewOrbitControls(a.Camera)
	a.Orbit.MinDistance = cc.MinDistance
	a.Orbit.MaxDistance = cc.MaxDistance
	a.Orbit.EnableDamping = cc.EnableDamping
	a.Orbit.DampingFactor = cc.DampingFactor
	a.Orbit.RotateSpeed = cc.RotateSpeed
	a.Orbit.ZoomSpeed = cc.ZoomSpeed
	a.Orbit.PanSpeed = cc.PanSpeed

	src := opts.StarSource
	if src == nil {
		src = globe.NewStarSource(cfg.Stars.Seed)
	}
	a.Globe = globe.Build(globeConfig(cfg), opts.Texture, src)
	a.Globe.Scene.Background = cfg.Graphics.ClearColor

	a.Driver = &Driver{
		Globe:        a.Globe,
		Camera:       a.Camera,
		Controls:     a.Orbit,
		Drawer:       opts.Drawer,
		Pointer:      a.Pointer,
		Tween:        a.Tween,
		SpinPerFrame: cfg.Globe.SpinPerFrame,
		SpinMode:     cfg.Globe.SpinMode,
		PointerGain:  cfg.Globe.PointerGain,
	}
	if r, ok := opts.Texture.(Resolver); ok {
		a.Driver.Resolvers = append(a.Driver.Resolvers, r)
	}

	a.applyViewport()

	logger.Info("scene built",
		zap.Int("sphereVertices", a.Globe.Sphere.Geometry.VertexCount()),
		zap.Int("stars", a.Globe.Stars.Geometry.VertexCount()),
		zap.Float32("cameraDistance", cc.Distance),
	)
	return a, nil
}

func globeConfig(cfg *config.Config) globe.Config {
	return globe.Config{
		Radius:          cfg.Globe.Radius,
		WidthSegments:   cfg.Globe.WidthSegments,
		HeightSegments:  cfg.Globe.HeightSegments,
		AtmosphereScale: cfg.Globe.AtmosphereScale,
		Stars: globe.StarConfig{
			Count:  cfg.Stars.Count,
			Spread: cfg.Stars.Spread,
			Depth:  cfg.Stars.Depth,
			Size:   cfg.Stars.Size,
			Color:  cfg.Stars.Color,
		},
	}
}

// HandleResize adopts a new viewport size and device pixel ratio.
// Non-positive sizes, reported by minimized windows, are ignored.
func (a *App) HandleResize(width, height int, devicePixelRatio float64) {
	if width <= 0 || height <= 0 {
		logger.Debug("ignoring empty viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}
	a.Viewport.Width = width
	a.Viewport.Height = height
	if devicePixelRatio > 0 {
		a.Viewport.DevicePixelRatio = devicePixelRatio
	}
	a.applyViewport()

	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("pixelRatio", a.Viewport.PixelRatio()),
	)
}

func (a *App) applyViewport() {
	a.Camera.Aspect = a.Viewport.Aspect()
	a.Camera.UpdateProjectionMatrix()
	if a.surface != nil {
		a.surface.Resize(a.Viewport.Width, a.Viewport.Height, a.Viewport.PixelRatio())
	}
}

// HandlePointerMove records the pointer position in window coordinates.
func (a *App) HandlePointerMove(x, y float32) {
	a.Pointer.Move(x, y, a.Viewport.Width, a.Viewport.Height)
}

// HandleDrag forwards a drag to the orbit controls: the left button
// rotates, the right or middle button pans.
func (a *App) HandleDrag(dx, dy float32, pan bool) {
	if pan {
		a.Orbit.HandlePan(dx, dy, a.Viewport.Height)
		return
	}
	a.Orbit.HandleDrag(dx, dy, a.Viewport.Height)
}

// HandleWheel zooms by wheel clicks, positive toward the globe.
func (a *App) HandleWheel(clicks float32) {
	a.Orbit.HandleZoom(clicks)
}
