// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GlobeVertexShader is the vertex shader for the textured globe.
//
//go:embed globe.vert
var GlobeVertexShader string

// GlobeFragmentShader samples the globeTexture uniform and adds a rim tint.
//
//go:embed globe.frag
var GlobeFragmentShader string

// AtmosphereVertexShader is the vertex shader for the atmosphere shell.
//
//go:embed atmosphere.vert
var AtmosphereVertexShader string

// AtmosphereFragmentShader outputs the glow intensity; it expects additive
// blending on back faces.
//
//go:embed atmosphere.frag
var AtmosphereFragmentShader string

// PointsVertexShader is the vertex shader for point clouds.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader fills each point with a flat color.
//
//go:embed points.frag
var PointsFragmentShader string
