package app

import "testing"

func TestViewportPixelRatio(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want float64
	}{
		{"below cap", Viewport{DevicePixelRatio: 1.25, MaxPixelRatio: 2}, 1.25},
		{"at cap", Viewport{DevicePixelRatio: 2, MaxPixelRatio: 2}, 2},
		{"above cap", Viewport{DevicePixelRatio: 3, MaxPixelRatio: 2}, 2},
		{"custom cap", Viewport{DevicePixelRatio: 3, MaxPixelRatio: 3}, 3},
		{"unset cap uses default", Viewport{DevicePixelRatio: 4}, DefaultMaxPixelRatio},
		{"unknown density", Viewport{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.PixelRatio(); got != tt.want {
				t.Errorf("PixelRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewportAspect(t *testing.T) {
	if got := (Viewport{Width: 1920, Height: 1080}).Aspect(); got != float32(1920)/1080 {
		t.Errorf("Aspect() = %v, want %v", got, float32(1920)/1080)
	}
	if got := (Viewport{}).Aspect(); got != 1 {
		t.Errorf("empty Aspect() = %v, want 1", got)
	}
}
