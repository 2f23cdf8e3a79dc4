package water

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Influence paints disturbances into a plane's freshly written front
// buffer. Propagate applies it after the stencil draw and before the role
// flip, so injected heights are part of the state the next step reads.
type Influence interface {
	Apply(p *Plane)
}

// Drop is a single radial bump: a cosine falloff from Strength at the
// center to zero at Radius, added onto the existing surface.
type Drop struct {
	X, Y     int // center cell
	Radius   int
	Strength float32 // physical height added at the center
}

// Apply paints the drop into the plane's front buffer using the stored
// height encoding.
func (d Drop) Apply(p *Plane) {
	target := p.Front()
	if target == nil || d.Radius <= 0 {
		return
	}

	x0 := max(d.X-d.Radius, 0)
	y0 := max(d.Y-d.Radius, 0)
	x1 := min(d.X+d.Radius, p.Width()-1)
	y1 := min(d.Y+d.Radius, p.Height()-1)
	w := x1 - x0 + 1
	h := y1 - y0 + 1
	if w <= 0 || h <= 0 {
		return
	}

	pixels := target.ReadRect(int32(x0), int32(y0), int32(w), int32(h))

	radius := float32(d.Radius)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			dx := float32(x0 + col - d.X)
			dy := float32(y0 + row - d.Y)
			dist := math32.Hypot(dx, dy)
			if dist > radius {
				continue
			}

			falloff := math32.Cos(dist / radius * math32.Pi / 2)
			i := (row*w + col) * 4
			height := DecodeHeight(pixels[i]) + d.Strength*falloff
			height = math32.Max(-HeightRange, math32.Min(HeightRange, height))
			pixels[i] = EncodeHeight(height)
		}
	}

	target.WriteRect(int32(x0), int32(y0), int32(w), int32(h), pixels)
}

// Rain produces random drops across the field at a configured rate.
type Rain struct {
	PerStep  float32 // expected drops per simulation step
	Radius   int
	Strength float32

	rng *rand.Rand
}

// NewRain creates a rain source. The seed makes drop placement
// reproducible, which the tests rely on.
func NewRain(perStep float32, radius int, strength float32, seed int64) *Rain {
	return &Rain{
		PerStep:  perStep,
		Radius:   radius,
		Strength: strength,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Drops rolls this step's drops for a field of the given dimensions.
// Fractional rates fall as a probability for one extra drop.
func (r *Rain) Drops(width, height int) []Drop {
	if width <= 0 || height <= 0 || r.PerStep <= 0 {
		return nil
	}

	n := int(r.PerStep)
	if r.rng.Float32() < r.PerStep-float32(n) {
		n++
	}

	drops := make([]Drop, 0, n)
	for i := 0; i < n; i++ {
		drops = append(drops, Drop{
			X:        r.rng.Intn(width),
			Y:        r.rng.Intn(height),
			Radius:   r.Radius,
			Strength: r.Strength,
		})
	}
	return drops
}

// Apply paints this step's drops into the plane.
func (r *Rain) Apply(p *Plane) {
	for _, d := range r.Drops(p.Width(), p.Height()) {
		d.Apply(p)
	}
}

// Sources applies influences in order.
type Sources []Influence

// Apply applies every source in order.
func (s Sources) Apply(p *Plane) {
	for _, src := range s {
		if src != nil {
			src.Apply(p)
		}
	}
}
