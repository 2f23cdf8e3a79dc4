// Package water implements the pond surface simulation: a GPU-resident
// height field advanced by a finite-difference stencil shader, plus a
// screen-space refraction pass that distorts and shades a background image
// so it reads as light through rippling water.
package water

// Cell channels store an affine remapping of physical height into the [0,1]
// texture range. The same constants are duplicated in both GLSL kernels
// (propagate.frag, distort.frag) and must stay bit-identical with these,
// otherwise visible seams appear between simulation and shading.
const (
	// HeightRange is the half-width of the physical height range [-3,3].
	HeightRange = 3.0

	// NeutralEncoded is the stored value of a flat surface cell.
	NeutralEncoded = 0.5
)

// EncodeHeight maps a physical height in [-3,3] to the stored [0,1] range.
func EncodeHeight(h float32) float32 {
	return h/6.0 + 0.5
}

// DecodeHeight maps a stored [0,1] value back to a physical height in [-3,3].
func DecodeHeight(v float32) float32 {
	return v*6.0 - 3.0
}
