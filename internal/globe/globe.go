// Package globe assembles the Mars scene: the textured sphere inside its
// pivot group, the additive atmosphere shell and the starfield, together
// with the pointer target and rotation easing that drive the pivot.
package globe

import (
	"golang.org/x/exp/rand"

	"github.com/Faultbox/mars-globe/internal/engine/shader/shaders"
	"github.com/Faultbox/mars-globe/internal/scene"
	"github.com/Faultbox/mars-globe/pkg/math"
)

// TextureUniform is the single material uniform of the globe shader.
const TextureUniform = "globeTexture"

// Config holds scene construction parameters.
type Config struct {
	Radius          float32
	WidthSegments   int
	HeightSegments  int
	AtmosphereScale float32
	Stars           StarConfig
}

// DefaultConfig returns the stock Mars scene: radius 5, 50x50 segments,
// atmosphere at 1.1x.
func DefaultConfig() Config {
	return Config{
		Radius:          5,
		WidthSegments:   50,
		HeightSegments:  50,
		AtmosphereScale: 1.1,
		Stars:           DefaultStarConfig(),
	}
}

// Globe is the constructed scene and handles to the nodes the animation
// driver mutates.
type Globe struct {
	Scene      *scene.Scene
	Pivot      *scene.Group
	Sphere     *scene.Mesh
	Atmosphere *scene.Mesh
	Stars      *scene.Points
}

// Build constructs the scene graph. tex is bound to the globeTexture
// uniform; it may still be loading, in which case the renderer samples a
// blank texture until it resolves.
func Build(cfg Config, tex scene.TextureSource, src rand.Source) *Globe {
	s := scene.New()

	globeMat := scene.NewMaterial("globe", shaders.GlobeVertexShader, shaders.GlobeFragmentShader)
	globeMat.Uniforms[TextureUniform] = scene.Uniform{Value: tex}
	sphere := scene.NewMesh("sphere",
		NewSphereGeometry(cfg.Radius, cfg.WidthSegments, cfg.HeightSegments),
		globeMat,
	)

	atmoMat := scene.NewMaterial("atmosphere", shaders.AtmosphereVertexShader, shaders.AtmosphereFragmentShader)
	atmoMat.Side = scene.BackSide
	atmoMat.Blending = scene.AdditiveBlending
	atmoMat.Transparent = true
	atmoMat.DepthWrite = false
	atmosphere := scene.NewMesh("atmosphere",
		NewSphereGeometry(cfg.Radius, cfg.WidthSegments, cfg.HeightSegments),
		atmoMat,
	)
	atmosphere.Scale = sphere.Scale.Scale(cfg.AtmosphereScale)
	s.Add(atmosphere)

	pivot := scene.NewGroup("pivot")
	pivot.Add(sphere)
	s.Add(pivot)

	stars := scene.NewPoints("stars",
		GenerateStarField(cfg.Stars, src),
		&scene.PointsMaterial{
			Color:           cfg.Stars.Color,
			Size:            cfg.Stars.Size,
			SizeAttenuation: true,
		},
	)
	s.Add(stars)

	return &Globe{
		Scene:      s,
		Pivot:      pivot,
		Sphere:     sphere,
		Atmosphere: atmosphere,
		Stars:      stars,
	}
}

// Spin advances the sphere's own Y rotation by delta, wrapped to [0, 2π).
func (g *Globe) Spin(delta float32) {
	g.Sphere.Rotation.Y = math.WrapAngle(g.Sphere.Rotation.Y + delta)
}

// Orient sets the pivot's X and Y rotation.
func (g *Globe) Orient(r math.Vec2) {
	g.Pivot.Rotation.X = r.X
	g.Pivot.Rotation.Y = r.Y
}
