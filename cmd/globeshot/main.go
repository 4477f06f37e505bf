// globeshot renders a still of the Mars globe on the CPU and writes it as a
// PNG. It needs no GPU or display, which makes it usable on build machines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fogleman/fauxgl"
	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/engine/texture"
	"github.com/Faultbox/mars-globe/internal/logger"
)

var (
	flagOut         = flag.String("out", "globe.png", "Output PNG path")
	flagSupersample = flag.Int("supersample", 4, "Render at N times the size, then downscale")
	flagRotation    = flag.Float64("rotation", 0, "Globe rotation about Y, in degrees")
	flagFlat        = flag.Bool("flat", false, "Ignore the texture and shade with a flat color")
	flagSunLon      = flag.Float64("sun-lon", -40, "Sun longitude in degrees, 0 faces the camera")
	flagSunLat      = flag.Float64("sun-lat", 30, "Sun elevation in degrees")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := shotOptions{
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Supersample:  *flagSupersample,
		Rotation:     *flagRotation,
		SunLongitude: float32(*flagSunLon),
		SunLatitude:  float32(*flagSunLat),
	}

	if !*flagFlat {
		img, err := texture.Load(cfg.Globe.Texture).Wait()
		if err != nil {
			logger.Warn("texture unavailable, using flat color", zap.Error(err))
		} else {
			opts.Texture = fauxgl.NewImageTexture(img)
		}
	}

	img := render(cfg, opts)
	if err := fauxgl.SavePNG(*flagOut, img); err != nil {
		logger.Error("writing image", zap.String("path", *flagOut), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("globe rendered",
		zap.String("path", *flagOut),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
	)
}
