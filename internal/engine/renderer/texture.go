package renderer

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/engine/texture"
	"github.com/Faultbox/mars-globe/internal/logger"
)

// Texture is a GL texture fed by an asynchronous loader. It satisfies
// scene.TextureSource.
type Texture struct {
	loader *texture.Loader
	id     uint32
	ready  bool
	failed bool
}

// NewTexture wraps a loader. Nothing is uploaded until Resolve succeeds.
func NewTexture(loader *texture.Loader) *Texture {
	return &Texture{loader: loader}
}

// Handle returns the GL texture id, false until the image is uploaded.
func (t *Texture) Handle() (uint32, bool) {
	return t.id, t.ready
}

// Resolve polls the loader without blocking and uploads the image once it
// is decoded. Must be called on the GL thread. A failed load is logged once
// and the texture stays unresolved.
func (t *Texture) Resolve() {
	if t.ready || t.failed {
		return
	}
	img, err := t.loader.Poll()
	switch {
	case errors.Is(err, texture.ErrPending):
		return
	case err != nil:
		t.failed = true
		logger.Warn("texture unavailable, rendering without it",
			zap.String("path", t.loader.Path()),
			zap.Error(err),
		)
		return
	}

	flipped := texture.FlipVertical(img)
	w, h := int32(flipped.Rect.Dx()), int32(flipped.Rect.Dy())

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.ready = true
	logger.Info("texture uploaded",
		zap.String("path", t.loader.Path()),
		zap.Int32("width", w),
		zap.Int32("height", h),
	)
}

// Delete releases the GL texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	t.ready = false
}

// createFallbackTexture creates the 1x1 black texture sampled while a
// material's texture is unresolved.
func createFallbackTexture() uint32 {
	var id uint32
	pixel := []byte{0, 0, 0, 255}
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixel))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
