package water

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/koipond/pkg/math"
)

// Color constants mirrored from distort.frag; change both together.
var (
	// DullFilter is the first surface dulling tint.
	DullFilter = [3]float32{0.93, 0.97, 1.0}

	// DepthFilter is the second, depth-attenuation tint.
	DepthFilter = [3]float32{0.88, 0.96, 1.0}

	// SkyColor is the reflected sky tint blended in by the shading term.
	SkyColor = [3]float32{0.72, 0.88, 0.99}
)

// Field is a CPU mirror of the GPU height-field kernels: same encoded
// domain, same constants, same clamp-to-edge neighbor policy. The game
// layer uses it for headless height queries (no GPU readback per frame)
// and the tests use it as the executable reference for both shaders.
type Field struct {
	width  int
	height int

	// Three stored channels per cell (height, momentum carry, spare),
	// double-buffered like the GPU plane.
	cells [2][]float32
	front int
}

// NewField creates a field at encoded-neutral rest. Non-positive
// dimensions yield an empty field whose operations are no-ops.
func NewField(width, height int) *Field {
	f := &Field{}
	if width <= 0 || height <= 0 {
		return f
	}
	f.width = width
	f.height = height

	for i := range f.cells {
		buf := make([]float32, width*height*3)
		for c := 0; c < len(buf); c += 3 {
			buf[c] = NeutralEncoded
			buf[c+1] = NeutralEncoded
		}
		f.cells[i] = buf
	}
	return f
}

// Width returns the field width in cells.
func (f *Field) Width() int {
	return f.width
}

// Height returns the field height in cells.
func (f *Field) Height() int {
	return f.height
}

// stable returns the most recent completed state.
func (f *Field) stable() []float32 {
	return f.cells[1-f.front]
}

func (f *Field) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= f.width {
		return f.width - 1
	}
	return x
}

func (f *Field) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= f.height {
		return f.height - 1
	}
	return y
}

// cell returns the base index of the clamped cell, matching the GPU's
// clamp-to-edge sampling.
func (f *Field) cell(x, y int) int {
	return (f.clampY(y)*f.width + f.clampX(x)) * 3
}

// HeightAt returns the decoded physical height of a cell.
func (f *Field) HeightAt(x, y int) float32 {
	if f.width == 0 {
		return 0
	}
	return DecodeHeight(f.stable()[f.cell(x, y)])
}

// Step advances the field by one wave-equation step, the exact CPU
// transliteration of propagate.frag.
func (f *Field) Step(damping float32) {
	if f.width == 0 || f.height == 0 {
		return
	}

	src := f.stable()
	dst := f.cells[f.front]

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			i := (y*f.width + x) * 3

			momentum := (src[i+1]+src[i+2])*2 - 1

			left := src[f.cell(x-1, y)]
			right := src[f.cell(x+1, y)]
			up := src[f.cell(x, y-1)]
			down := src[f.cell(x, y+1)]

			newHeight := left + up + right + down - 2.0
			velocity := (newHeight - momentum) * damping

			dst[i] = velocity*0.5 + 0.5
			dst[i+1] = src[i]
			dst[i+2] = 0
		}
	}

	f.front = 1 - f.front
}

// Deposit adds a radial bump onto the current surface, the same cosine
// profile Drop paints into the GPU plane.
func (f *Field) Deposit(x, y, radius int, strength float32) {
	if f.width == 0 || radius <= 0 {
		return
	}

	buf := f.stable()
	r := float32(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			cx := x + dx
			cy := y + dy
			if cx < 0 || cy < 0 || cx >= f.width || cy >= f.height {
				continue
			}
			dist := math32.Hypot(float32(dx), float32(dy))
			if dist > r {
				continue
			}

			falloff := math32.Cos(dist / r * math32.Pi / 2)
			i := (cy*f.width + cx) * 3
			h := DecodeHeight(buf[i]) + strength*falloff
			h = math32.Max(-HeightRange, math32.Min(HeightRange, h))
			buf[i] = EncodeHeight(h)
		}
	}
}

// Energy returns the total field energy: the sum of squared decoded
// heights. Damped propagation must keep it bounded.
func (f *Field) Energy() float64 {
	if f.width == 0 {
		return 0
	}
	buf := f.stable()
	heights := make([]float64, f.width*f.height)
	for c := range heights {
		heights[c] = float64(DecodeHeight(buf[c*3]))
	}
	return floats.Dot(heights, heights)
}

// NormalAt derives the surface normal at a cell the way distort.frag does
// for a fully settled state (interpolation factor 1). A flat field yields
// exactly (0, 1, 0).
func (f *Field) NormalAt(x, y int) math.Vec3 {
	if f.width == 0 {
		return math.Vec3{Y: 1}
	}

	left := f.HeightAt(x-1, y)
	right := f.HeightAt(x+1, y)
	up := f.HeightAt(x, y-1)
	down := f.HeightAt(x, y+1)

	dyx := right - left
	dyz := down - up

	tangentX := math.Vec3{X: 2 / float32(f.width), Y: dyx}.Normalize()
	tangentZ := math.Vec3{Y: dyz, Z: 2 / float32(f.height)}.Normalize()
	return tangentZ.Cross(tangentX)
}

// Displacement is the refraction offset for a normal, in background UV
// units, matching the shader's depth * scale * normal.xz / size.
func Displacement(normal math.Vec3, depth, scale, width, height float32) math.Vec2 {
	if width <= 0 || height <= 0 {
		return math.Vec2{}
	}
	offset := normal.XZ().Scale(depth * scale)
	return math.Vec2{X: offset.X / width, Y: offset.Y / height}
}

// Shade computes the specular shading term for a normal, including the
// piecewise adjustment: negative light is halved, highlights above 0.5 are
// amplified by half again. Not physical; preserved for visual identity.
func Shade(normal math.Vec3) float32 {
	light := math.Vec3{X: 1, Z: 1}.Normalize()
	shiny := light.Dot(normal)
	if shiny < 0 {
		shiny *= 0.5
	}
	if shiny > 0.5 {
		shiny *= 1.5
	}
	return shiny
}

// Composite mirrors the shader's final blend for one pixel: a fully
// transparent background sample is treated as opaque white, then the
// double-filtered sample is blended toward the sky color by shiny.
func Composite(ground [4]float32, shiny float32) [3]float32 {
	if ground[3] == 0 {
		ground = [4]float32{1, 1, 1, 1}
	}

	var out [3]float32
	for c := 0; c < 3; c++ {
		filtered := DullFilter[c] * DepthFilter[c] * ground[c]
		out[c] = filtered + (SkyColor[c]-filtered)*shiny
	}
	return out
}
