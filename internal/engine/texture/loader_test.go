package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/mars-globe/internal/logger"
)

func init() {
	logger.InitNop()
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "mars.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func TestLoadDecodesPNG(t *testing.T) {
	path := writePNG(t, 4, 3)

	l := Load(path)
	img, err := l.Wait()
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("size = %v, want 4x3", img.Bounds().Size())
	}

	// Poll after completion returns the same image.
	again, err := l.Poll()
	if err != nil || again != img {
		t.Errorf("Poll() after Wait = (%p, %v), want (%p, nil)", again, err, img)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := Load(filepath.Join(t.TempDir(), "missing.jpeg"))
	if _, err := l.Wait(); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := l.Poll(); err == nil || errors.Is(err, ErrPending) {
		t.Errorf("Poll() error = %v, want load failure", err)
	}
}

func TestPollPendingBeforeResult(t *testing.T) {
	l := &Loader{path: "x", done: make(chan Result, 1)}

	if _, err := l.Poll(); !errors.Is(err, ErrPending) {
		t.Fatalf("Poll() error = %v, want ErrPending", err)
	}

	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	l.done <- Result{Path: "x", Image: want}
	got, err := l.Poll()
	if err != nil || got != want {
		t.Errorf("Poll() = (%p, %v), want (%p, nil)", got, err, want)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	flipped := FlipVertical(img)

	if c := flipped.RGBAAt(0, 1); c.R != 255 {
		t.Errorf("bottom-left after flip = %v, want red", c)
	}
	if c := flipped.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("top-left after flip = %v, want blue", c)
	}
}

func TestToRGBAFromSubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 2, color.RGBA{G: 200, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	rgba := ToRGBA(sub)
	if rgba.Rect.Min != (image.Point{}) {
		t.Errorf("origin = %v, want (0,0)", rgba.Rect.Min)
	}
	if c := rgba.RGBAAt(0, 0); c.G != 200 {
		t.Errorf("pixel (0,0) = %v, want green 200", c)
	}
}
