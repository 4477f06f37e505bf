// Package renderer draws a scene graph with OpenGL.
package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/engine/camera"
	"github.com/Faultbox/mars-globe/internal/engine/debug"
	"github.com/Faultbox/mars-globe/internal/engine/framebuffer"
	"github.com/Faultbox/mars-globe/internal/engine/shader"
	"github.com/Faultbox/mars-globe/internal/engine/shader/shaders"
	"github.com/Faultbox/mars-globe/internal/logger"
	"github.com/Faultbox/mars-globe/internal/scene"
	"github.com/Faultbox/mars-globe/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	// Width and Height are the logical (window) size.
	Width  int
	Height int
	// DrawableWidth and DrawableHeight are the window's framebuffer size in
	// physical pixels.
	DrawableWidth  int
	DrawableHeight int
	PixelRatio     float64
	Samples        int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	target *framebuffer.Framebuffer

	programs *shader.Cache
	points   *shader.Program
	buffers  map[*scene.Geometry]*gpuGeometry
	fallback uint32

	queue []drawItem
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	r := &Renderer{
		config:   cfg,
		programs: shader.NewCache(),
		buffers:  make(map[*scene.Geometry]*gpuGeometry),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.FrontFace(gl.CCW)

	var err error
	r.points, err = shader.NewProgram("points", shaders.PointsVertexShader, shaders.PointsFragmentShader)
	if err != nil {
		return nil, err
	}

	r.fallback = createFallbackTexture()

	bw, bh := r.BufferSize()
	r.target, err = framebuffer.New(int32(bw), int32(bh), int32(cfg.Samples))
	if err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for geo, buf := range r.buffers {
		buf.delete()
		delete(r.buffers, geo)
	}
	r.programs.Delete()
	if r.points != nil {
		r.points.Delete()
	}
	if r.fallback != 0 {
		gl.DeleteTextures(1, &r.fallback)
		r.fallback = 0
	}
	if r.target != nil {
		r.target.Destroy()
	}
}

// Resize sets the logical drawing size and the ratio of render-target
// pixels to logical pixels, reallocating the target at most once.
func (r *Renderer) Resize(width, height int, pixelRatio float64) {
	r.config.Width = width
	r.config.Height = height
	if pixelRatio > 0 {
		r.config.PixelRatio = pixelRatio
	}
	r.resizeTarget()
}

// SetDrawableSize records the window framebuffer size the frame is blitted to.
func (r *Renderer) SetDrawableSize(width, height int) {
	r.config.DrawableWidth = width
	r.config.DrawableHeight = height
}

// PixelRatio returns the current pixel ratio.
func (r *Renderer) PixelRatio() float64 {
	return r.config.PixelRatio
}

// BufferSize returns the render-target size in pixels.
func (r *Renderer) BufferSize() (int, int) {
	w := int(float64(r.config.Width) * r.config.PixelRatio)
	h := int(float64(r.config.Height) * r.config.PixelRatio)
	return max(w, 1), max(h, 1)
}

func (r *Renderer) resizeTarget() {
	if r.target == nil {
		return
	}
	w, h := r.BufferSize()
	if err := r.target.Resize(int32(w), int32(h)); err != nil {
		logger.Error("resizing render target", zap.Error(err))
		return
	}
	logger.Debug("renderer resized",
		zap.Int("width", r.config.Width),
		zap.Int("height", r.config.Height),
		zap.Float64("pixelRatio", r.config.PixelRatio),
		zap.Int("bufferWidth", w),
		zap.Int("bufferHeight", h),
	)
}

// Prepare compiles the program of every mesh material in s so shader
// errors surface at startup instead of on the first frame.
func (r *Renderer) Prepare(s *scene.Scene) error {
	for _, m := range scene.Materials(s) {
		if _, err := r.programs.Get(m.Name, m.VertexShader, m.FragmentShader); err != nil {
			return fmt.Errorf("preparing %s material: %w", m.Name, err)
		}
	}
	return nil
}

// drawItem is one visible renderable with its resolved model-view matrix.
type drawItem struct {
	obj       scene.Object
	modelView math.Mat4
	depth     float32
}

// Draw renders s from cam into the offscreen target and presents it.
func (r *Renderer) Draw(s *scene.Scene, cam *camera.PerspectiveCamera) {
	view := cam.ViewMatrix()
	projection := cam.ProjectionMatrix()

	var opaque, transparent []drawItem
	r.queue = r.queue[:0]
	scene.Traverse(s, func(obj scene.Object, world math.Mat4) {
		var isTransparent bool
		switch o := obj.(type) {
		case *scene.Mesh:
			isTransparent = o.Material.Transparent
		case *scene.Points:
		default:
			return
		}
		mv := view.Mul(world)
		item := drawItem{obj: obj, modelView: mv, depth: mv[14]}
		if isTransparent {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	})
	// farthest (most negative view z) first
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].depth < transparent[j].depth
	})
	r.queue = append(append(r.queue, opaque...), transparent...)

	r.target.Bind()
	gl.DepthMask(true)
	r.target.Clear(s.Background[0], s.Background[1], s.Background[2], 1)

	for _, item := range r.queue {
		switch o := item.obj.(type) {
		case *scene.Mesh:
			r.drawMesh(o, item.modelView, &projection)
		case *scene.Points:
			r.drawPoints(o, item.modelView, &projection)
		}
	}

	gl.DepthMask(true)
	r.target.Unbind()
	r.target.Resolve()

	dw, dh := r.config.DrawableWidth, r.config.DrawableHeight
	if dw <= 0 || dh <= 0 {
		dw, dh = r.BufferSize()
	}
	r.target.BlitToScreen(int32(dw), int32(dh))
}

func (r *Renderer) drawMesh(m *scene.Mesh, modelView math.Mat4, projection *math.Mat4) {
	prog, err := r.programs.Get(m.Material.Name, m.Material.VertexShader, m.Material.FragmentShader)
	if err != nil {
		// Unreachable after Prepare; hide the mesh so the error is logged once.
		logger.Error("shader program", zap.String("material", m.Material.Name), zap.Error(err))
		m.Visible = false
		return
	}
	buf := r.geometry(m.Geometry)

	applyState(m.Material)
	prog.Use()
	prog.SetMat4("projectionMatrix", (*[16]float32)(projection))
	mv := [16]float32(modelView)
	prog.SetMat4("modelViewMatrix", &mv)
	normal := modelView.NormalMatrix()
	prog.SetMat3("normalMatrix", &normal)
	r.bindUniforms(prog, m.Material.Uniforms)

	buf.draw(gl.TRIANGLES)
}

func (r *Renderer) drawPoints(p *scene.Points, modelView math.Mat4, projection *math.Mat4) {
	buf := r.geometry(p.Geometry)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)

	prog := r.points
	prog.Use()
	prog.SetMat4("projectionMatrix", (*[16]float32)(projection))
	mv := [16]float32(modelView)
	prog.SetMat4("modelViewMatrix", &mv)
	prog.SetFloat("pointSize", p.Material.Size)
	prog.SetFloat("pixelRatio", float32(r.config.PixelRatio))
	prog.SetFloat("scale", float32(r.config.Height)*0.5)
	attenuate := int32(0)
	if p.Material.SizeAttenuation {
		attenuate = 1
	}
	prog.SetInt("sizeAttenuation", attenuate)
	prog.SetVec3("pointColor", p.Material.Color)

	buf.draw(gl.POINTS)
}

// applyState sets culling, blending and depth writes for a material.
func applyState(m *scene.Material) {
	switch m.Side {
	case scene.FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	switch {
	case m.Blending == scene.AdditiveBlending:
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case m.Transparent:
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}

	gl.DepthMask(m.DepthWrite)
}

// bindUniforms uploads material uniforms. Textures are bound to consecutive
// units; a source that is not ready yet samples the fallback texture.
func (r *Renderer) bindUniforms(prog *shader.Program, uniforms map[string]scene.Uniform) {
	unit := int32(0)
	for name, u := range uniforms {
		switch v := u.Value.(type) {
		case float32:
			prog.SetFloat(name, v)
		case [3]float32:
			prog.SetVec3(name, v)
		case math.Vec3:
			prog.SetVec3(name, [3]float32{v.X, v.Y, v.Z})
		case scene.TextureSource:
			id, ok := v.Handle()
			if !ok {
				id = r.fallback
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, id)
			prog.SetInt(name, unit)
			unit++
		default:
			logger.Warn("unsupported uniform type",
				zap.String("uniform", name),
				zap.String("type", fmt.Sprintf("%T", v)),
			)
		}
	}
}

// Capture reads back the last rendered frame and writes it as a PNG.
func (r *Renderer) Capture(sc *debug.ScreenshotCapture) (string, error) {
	w, h := r.target.Size()
	return sc.CaptureFromPixels(r.target.ReadPixels(), int(w), int(h))
}
