// Package framebuffer provides the offscreen render target the scene is
// drawn into before being scaled onto the window.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is a color+depth render target. With samples > 0 drawing goes
// to multisampled renderbuffers and Resolve copies them into the
// single-sampled color texture.
type Framebuffer struct {
	samples int32
	width   int32
	height  int32

	// single-sampled resolve target
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32

	// multisampled draw target, zero when samples == 0
	msFBO      uint32
	msColorRBO uint32
	msDepthRBO uint32
}

// New creates a framebuffer with the given size and MSAA sample count.
func New(width, height, samples int32) (*Framebuffer, error) {
	if samples < 0 {
		samples = 0
	}
	fb := &Framebuffer{
		samples: samples,
		width:   max(width, 1),
		height:  max(height, 1),
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.colorTexture)
	gl.GenRenderbuffers(1, &fb.depthRBO)
	if fb.samples > 0 {
		gl.GenFramebuffers(1, &fb.msFBO)
		gl.GenRenderbuffers(1, &fb.msColorRBO)
		gl.GenRenderbuffers(1, &fb.msDepthRBO)
	}
	if err := fb.allocate(); err != nil {
		fb.Destroy()
		return err
	}
	return nil
}

// allocate (re)creates storage for the current size and checks completeness.
func (fb *Framebuffer) allocate() error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	if fb.samples > 0 {
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb.msFBO)

		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.msColorRBO)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.samples, gl.RGBA8, fb.width, fb.height)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, fb.msColorRBO)

		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.msDepthRBO)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.samples, gl.DEPTH_COMPONENT24, fb.width, fb.height)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.msDepthRBO)

		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return fmt.Errorf("multisample framebuffer incomplete: 0x%x", status)
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// drawFBO is the framebuffer that receives draw calls.
func (fb *Framebuffer) drawFBO() uint32 {
	if fb.samples > 0 {
		return fb.msFBO
	}
	return fb.fbo
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.drawFBO())
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears color and depth buffers with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Resolve copies multisampled color into the color texture. It is a no-op
// without MSAA.
func (fb *Framebuffer) Resolve() {
	if fb.samples == 0 {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.msFBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb.fbo)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, fb.width, fb.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BlitToScreen scales the resolved color onto the default framebuffer of
// the given drawable size.
func (fb *Framebuffer) BlitToScreen(width, height int32) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	filter := uint32(gl.LINEAR)
	if width == fb.width && height == fb.height {
		filter = gl.NEAREST
	}
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, filter)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Resize reallocates storage if the dimensions changed. On failure the
// previous size and storage are restored.
func (fb *Framebuffer) Resize(width, height int32) error {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return nil
	}
	prevWidth, prevHeight := fb.width, fb.height
	fb.width = width
	fb.height = height
	if err := fb.allocate(); err != nil {
		fb.width, fb.height = prevWidth, prevHeight
		if restoreErr := fb.allocate(); restoreErr != nil {
			return fmt.Errorf("%w (restoring %dx%d: %v)", err, prevWidth, prevHeight, restoreErr)
		}
		return err
	}
	return nil
}

// ReadPixels reads the resolved color attachment as RGBA rows, bottom row
// first (OpenGL origin).
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	for _, id := range []*uint32{&fb.fbo, &fb.msFBO} {
		if *id != 0 {
			gl.DeleteFramebuffers(1, id)
			*id = 0
		}
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	for _, id := range []*uint32{&fb.depthRBO, &fb.msColorRBO, &fb.msDepthRBO} {
		if *id != 0 {
			gl.DeleteRenderbuffers(1, id)
			*id = 0
		}
	}
}
