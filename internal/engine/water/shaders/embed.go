// Package shaders provides the embedded GLSL sources for the water passes.
package shaders

import _ "embed"

// PropagateVertexShader is the vertex shader for the propagation pass.
//
//go:embed propagate.vert
var PropagateVertexShader string

// PropagateFragmentShader is the wave-equation stencil kernel.
//
//go:embed propagate.frag
var PropagateFragmentShader string

// DistortVertexShader is the vertex shader for the distortion pass.
//
//go:embed distort.vert
var DistortVertexShader string

// DistortFragmentShader is the refraction/shading kernel.
//
//go:embed distort.frag
var DistortFragmentShader string
