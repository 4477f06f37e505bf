// Package viewer runs the interactive Mars globe: it owns the SDL window,
// the GL renderer and the frame loop, and feeds input to the app.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/app"
	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/engine/debug"
	"github.com/Faultbox/mars-globe/internal/engine/input"
	"github.com/Faultbox/mars-globe/internal/engine/renderer"
	"github.com/Faultbox/mars-globe/internal/engine/texture"
	"github.com/Faultbox/mars-globe/internal/engine/window"
	"github.com/Faultbox/mars-globe/internal/logger"
)

// Title is the window title.
const Title = "Mars"

// Viewer is the running application instance.
type Viewer struct {
	config      *config.Config
	running     bool
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	texture     *renderer.Texture
	screenshots *debug.ScreenshotCapture
	app         *app.App
}

// New opens the window, initializes OpenGL, starts the texture load and
// builds the scene.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("texture", cfg.Globe.Texture),
	)

	v := &Viewer{
		config:      cfg,
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	// Decoding starts before the GL context exists; upload happens on the
	// first frame after it finishes.
	loader := texture.Load(cfg.Globe.Texture)

	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come AFTER the window, since the GL context must exist.
	width, height := v.window.GetSize()
	drawW, drawH := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		DrawableWidth:  drawW,
		DrawableHeight: drawH,
		PixelRatio:     1,
		Samples:        cfg.Graphics.MSAASamples,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.texture = renderer.NewTexture(loader)

	// The window may open at a different size than requested (fullscreen,
	// tiling window managers).
	sized := *cfg
	sized.Graphics.Width, sized.Graphics.Height = width, height
	v.app, err = app.New(&sized, app.Options{
		Surface:          v.renderer,
		Drawer:           v.renderer,
		Texture:          v.texture,
		DevicePixelRatio: v.window.DevicePixelRatio(),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	if err := v.renderer.Prepare(v.app.Globe.Scene); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to compile shaders: %w", err)
	}

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the frame loop and returns when the window is closed or ESC
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.dispatch(v.input.Events())
		if !v.running {
			break
		}

		v.app.Driver.Step(float32(dt))

		// With vsync this paces the loop to the display refresh.
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %d FPS", Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("frame loop stopped", zap.Uint64("frames", v.app.Driver.Frames()))
	return nil
}

// dispatch routes one frame's input events.
func (v *Viewer) dispatch(events []input.Event) {
	for _, event := range events {
		switch event.Type {
		case input.EventWindowResize:
			drawW, drawH := v.window.DrawableSize()
			v.renderer.SetDrawableSize(drawW, drawH)
			v.app.HandleResize(event.Width, event.Height, v.window.DevicePixelRatio())

		case input.EventMouseMove:
			v.app.HandlePointerMove(float32(event.MouseX), float32(event.MouseY))
			switch {
			case event.Held(input.ButtonLeft):
				v.app.HandleDrag(float32(event.RelX), float32(event.RelY), false)
			case event.Held(input.ButtonRight), event.Held(input.ButtonMiddle):
				v.app.HandleDrag(float32(event.RelX), float32(event.RelY), true)
			}

		case input.EventMouseWheel:
			v.app.HandleWheel(event.WheelY)

		case input.EventKeyDown:
			switch event.Key {
			case input.KeyEscape:
				v.running = false
			case input.KeyScreenshot:
				v.screenshot()
			}
		}
	}
}

func (v *Viewer) screenshot() {
	if _, err := v.renderer.Capture(v.screenshots); err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
	}
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.texture != nil {
		v.texture.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
