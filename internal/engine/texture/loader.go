package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/mars-globe/internal/logger"
)

// ErrPending is returned by Poll while the image is still being decoded.
var ErrPending = errors.New("texture: load pending")

// Result is the outcome of an asynchronous load.
type Result struct {
	Path  string
	Image *image.RGBA
	Err   error
}

// Loader decodes one image file on a background goroutine. GL upload must
// happen on the render thread, so the decoded pixels are handed back
// through Poll, which never blocks.
type Loader struct {
	path string
	done chan Result

	mu     sync.Mutex
	result *Result
}

// Load starts decoding path and returns immediately.
func Load(path string) *Loader {
	l := &Loader{
		path: path,
		done: make(chan Result, 1),
	}
	logger.Debug("texture load started", zap.String("path", path))
	go func() {
		start := time.Now()
		img, err := decodeFile(path)
		if err != nil {
			err = fmt.Errorf("loading texture %s: %w", path, err)
		} else {
			logger.Debug("texture decoded",
				zap.String("path", path),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
				zap.Duration("took", time.Since(start)),
			)
		}
		l.done <- Result{Path: path, Image: img, Err: err}
	}()
	return l
}

// Path returns the file being loaded.
func (l *Loader) Path() string { return l.path }

// Poll returns the decoded image once it is available, ErrPending before
// that, or the decode error. After the first non-pending result every call
// returns the same outcome.
func (l *Loader) Poll() (*image.RGBA, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.result == nil {
		select {
		case r := <-l.done:
			l.result = &r
		default:
			return nil, ErrPending
		}
	}
	return l.result.Image, l.result.Err
}

// Wait blocks until the load finishes. Intended for tools and tests, not
// the frame loop.
func (l *Loader) Wait() (*image.RGBA, error) {
	l.mu.Lock()
	if l.result == nil {
		r := <-l.done
		l.result = &r
	}
	l.mu.Unlock()
	return l.result.Image, l.result.Err
}

func decodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode decodes any registered image format (JPEG, PNG, BMP, WebP) into
// RGBA with the top row first.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with rows reversed, converting from
// top-left image origin to OpenGL's bottom-left texture origin.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(img.Rect)
	rowSize := img.Rect.Dx() * 4
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		dst := out.Pix[(h-1-y)*out.Stride:]
		copy(dst[:rowSize], src)
	}
	return out
}
