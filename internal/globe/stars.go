package globe

import (
	"time"

	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Faultbox/mars-globe/internal/scene"
)

// StarConfig controls starfield generation.
type StarConfig struct {
	Count  int
	Spread float32 // full width of the x/y range, centered on 0
	Depth  float32 // z extends from 0 to -Depth
	Size   float32
	Color  [3]float32
}

// DefaultStarConfig returns 10,000 white stars in a 2000x2000x1000 slab.
func DefaultStarConfig() StarConfig {
	return StarConfig{
		Count:  10000,
		Spread: 2000,
		Depth:  1000,
		Size:   0.5,
		Color:  [3]float32{1, 1, 1},
	}
}

// NewStarSource returns the random source used for star placement.
func NewStarSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

// GenerateStarField samples cfg.Count points independently: x and y uniform
// in [-Spread/2, Spread/2), z uniform in (-Depth, 0]. The slab sits entirely
// behind the origin so stars never appear between the camera and the globe.
func GenerateStarField(cfg StarConfig, src rand.Source) *scene.Geometry {
	half := float64(cfg.Spread) / 2
	xy := distuv.Uniform{Min: -half, Max: half, Src: src}
	depth := distuv.Uniform{Min: 0, Max: float64(cfg.Depth), Src: src}

	positions := make([]float32, 0, cfg.Count*3)
	for i := 0; i < cfg.Count; i++ {
		x := below(float32(xy.Rand()), float32(half))
		y := below(float32(xy.Rand()), float32(half))
		z := -below(float32(depth.Rand()), cfg.Depth)
		positions = append(positions, x, y, z)
	}

	return &scene.Geometry{Positions: positions}
}

// below keeps a value sampled from a half-open float64 range inside it after
// rounding to float32.
func below(v, limit float32) float32 {
	if v >= limit {
		return math32.Nextafter(limit, 0)
	}
	return v
}
