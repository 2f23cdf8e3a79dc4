package water

import (
	"fmt"

	"github.com/Faultbox/koipond/internal/engine/framebuffer"
)

// Plane owns the ping-pong height-field buffer pair and its metadata.
// Exactly one buffer is the stable "back" state and one is the "front"
// write target at any time; Flip swaps the roles after each step.
type Plane struct {
	width  int
	height int
	scale  float32

	buffers [2]*framebuffer.Target
	front   int
}

// NewPlane allocates both buffers and clears them to the encoded-neutral
// surface. Dimensions and scale are fixed for the plane's lifetime.
// Non-positive dimensions produce an inert plane whose draws are no-ops.
func NewPlane(width, height int, scale float32) (*Plane, error) {
	p := &Plane{
		width:  width,
		height: height,
		scale:  scale,
	}

	if width <= 0 || height <= 0 {
		return p, nil
	}

	for i := range p.buffers {
		t, err := framebuffer.New(int32(width), int32(height))
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("water buffer %d: %w", i, err)
		}
		p.buffers[i] = t

		restore := t.BindWithViewport()
		t.Clear(NeutralEncoded, NeutralEncoded, 0, 1)
		restore()
	}

	return p, nil
}

// Width returns the field width in cells.
func (p *Plane) Width() int {
	return p.width
}

// Height returns the field height in cells.
func (p *Plane) Height() int {
	return p.height
}

// Scale returns the screen pixels per simulation cell.
func (p *Plane) Scale() float32 {
	return p.scale
}

// Inert reports whether the plane was created with degenerate dimensions
// and owns no GPU buffers.
func (p *Plane) Inert() bool {
	return p.buffers[0] == nil
}

// Front returns the current write target, or nil for an inert plane.
func (p *Plane) Front() *framebuffer.Target {
	return p.buffers[p.frontIndex()]
}

// Back returns the stable read source, or nil for an inert plane.
func (p *Plane) Back() *framebuffer.Target {
	return p.buffers[p.backIndex()]
}

// Flip swaps the front/back buffer roles.
func (p *Plane) Flip() {
	p.front = 1 - p.front
}

func (p *Plane) frontIndex() int {
	return p.front
}

func (p *Plane) backIndex() int {
	return 1 - p.front
}

// Release destroys both buffers. Safe to call more than once.
func (p *Plane) Release() {
	for i, t := range p.buffers {
		if t != nil {
			t.Destroy()
			p.buffers[i] = nil
		}
	}
}
