package water

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/koipond/internal/engine/shader"
	"github.com/Faultbox/koipond/internal/engine/water/shaders"
)

// Tunables for the two kernels.
const (
	// DefaultDamping is the per-step wave energy retention factor.
	DefaultDamping = 0.995

	// DefaultDepth is the refraction depth constant; the shader scales it
	// by the current render scale.
	DefaultDepth = 0.1
)

// propagateUniforms holds the resolved locations of the propagation
// program. Resolved once at construction, validated fail-fast.
type propagateUniforms struct {
	water   int32
	size    int32
	scale   int32
	damping int32
}

// distortUniforms holds the resolved locations of the distortion program.
type distortUniforms struct {
	background int32
	waterBack  int32
	waterFront int32
	size       int32
	waterSize  int32
	scale      int32
	depth      int32
	time       int32
}

// Engine owns the two water shader programs and drives both passes.
// Programs are immutable after construction and shared across draw calls;
// Release must be called before the GL context is discarded.
type Engine struct {
	propagateProgram uint32
	distortProgram   uint32
	propagateLoc     propagateUniforms
	distortLoc       distortUniforms

	damping float32
	depth   float32
}

// New compiles and links both programs and resolves every uniform and
// attribute location. Any compile, link, or lookup failure is returned as
// an error and leaves no partially constructed engine behind.
func New() (*Engine, error) {
	e := &Engine{
		damping: DefaultDamping,
		depth:   DefaultDepth,
	}

	var err error
	e.propagateProgram, err = shader.CompileProgram(shaders.PropagateVertexShader, shaders.PropagateFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("propagate program: %w", err)
	}

	e.distortProgram, err = shader.CompileProgram(shaders.DistortVertexShader, shaders.DistortFragmentShader)
	if err != nil {
		gl.DeleteProgram(e.propagateProgram)
		return nil, fmt.Errorf("distort program: %w", err)
	}

	if err := e.resolveLocations(); err != nil {
		e.Release()
		return nil, err
	}

	return e, nil
}

func (e *Engine) resolveLocations() error {
	type lookup struct {
		dst  *int32
		prog uint32
		name string
	}

	lookups := []lookup{
		{&e.propagateLoc.water, e.propagateProgram, "water"},
		{&e.propagateLoc.size, e.propagateProgram, "size"},
		{&e.propagateLoc.scale, e.propagateProgram, "scale"},
		{&e.propagateLoc.damping, e.propagateProgram, "damping"},
		{&e.distortLoc.background, e.distortProgram, "background"},
		{&e.distortLoc.waterBack, e.distortProgram, "waterBack"},
		{&e.distortLoc.waterFront, e.distortProgram, "waterFront"},
		{&e.distortLoc.size, e.distortProgram, "size"},
		{&e.distortLoc.waterSize, e.distortProgram, "waterSize"},
		{&e.distortLoc.scale, e.distortProgram, "scale"},
		{&e.distortLoc.depth, e.distortProgram, "depth"},
		{&e.distortLoc.time, e.distortProgram, "time"},
	}

	for _, l := range lookups {
		loc, err := shader.UniformLocation(l.prog, l.name)
		if err != nil {
			return err
		}
		*l.dst = loc
	}

	for _, prog := range []uint32{e.propagateProgram, e.distortProgram} {
		if _, err := shader.AttribLocation(prog, "position"); err != nil {
			return err
		}
	}

	return nil
}

// SetDamping overrides the propagation damping factor.
func (e *Engine) SetDamping(damping float32) {
	e.damping = damping
}

// SetDepth overrides the refraction depth constant.
func (e *Engine) SetDepth(depth float32) {
	e.depth = depth
}

// Propagate advances the plane by one fixed simulation step: stencil pass
// from the back buffer into the front buffer, then influence injection into
// the fresh front buffer, then the role flip. Degenerate planes and meshes
// are no-ops.
func (e *Engine) Propagate(plane *Plane, influence Influence, mesh *Mesh) {
	if plane == nil || plane.Inert() || mesh == nil {
		return
	}

	restore := plane.Front().BindWithViewport()

	gl.UseProgram(e.propagateProgram)
	gl.Uniform2f(e.propagateLoc.size, float32(plane.Width()), float32(plane.Height()))
	gl.Uniform1f(e.propagateLoc.scale, plane.Scale())
	gl.Uniform1f(e.propagateLoc.damping, e.damping)

	back := plane.Back()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, back.Texture())
	gl.Uniform1i(e.propagateLoc.water, 0)

	// The filter toggle brackets exactly the stencil draw: nearest so the
	// kernel reads discrete cells, linear restored for the shading pass.
	back.SetNearest()
	mesh.Draw()
	back.SetLinear()

	if influence != nil {
		influence.Apply(plane)
	}

	restore()
	plane.Flip()
}

// Render composites the rippling surface over the background texture into
// the currently bound render target. time in [0,1] interpolates between the
// two most recent simulation states; no simulation state is mutated.
func (e *Engine) Render(background uint32, mesh *Mesh, plane *Plane, width, height, scale, time float32) {
	if plane == nil || plane.Inert() || mesh == nil || width <= 0 || height <= 0 {
		return
	}

	gl.UseProgram(e.distortProgram)
	gl.Uniform2f(e.distortLoc.size, width, height)
	gl.Uniform2f(e.distortLoc.waterSize, float32(plane.Width()), float32(plane.Height()))
	gl.Uniform1f(e.distortLoc.scale, scale)
	gl.Uniform1f(e.distortLoc.depth, e.depth)
	gl.Uniform1f(e.distortLoc.time, time)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, background)
	gl.Uniform1i(e.distortLoc.background, 0)

	// After the flip the back buffer holds the newest state and the front
	// buffer still holds the previous one.
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, plane.Back().Texture())
	gl.Uniform1i(e.distortLoc.waterBack, 1)

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, plane.Front().Texture())
	gl.Uniform1i(e.distortLoc.waterFront, 2)

	mesh.Draw()
}

// Release deletes both programs. Safe to call more than once.
func (e *Engine) Release() {
	if e.propagateProgram != 0 {
		gl.DeleteProgram(e.propagateProgram)
		e.propagateProgram = 0
	}
	if e.distortProgram != 0 {
		gl.DeleteProgram(e.distortProgram)
		e.distortProgram = 0
	}
}
