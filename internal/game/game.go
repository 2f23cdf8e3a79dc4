// Package game runs the pond loop: fixed-step water simulation with
// variable-rate, interpolated rendering.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/koipond/internal/config"
	"github.com/Faultbox/koipond/internal/engine/input"
	"github.com/Faultbox/koipond/internal/engine/texture"
	"github.com/Faultbox/koipond/internal/engine/water"
	"github.com/Faultbox/koipond/internal/engine/window"
	"github.com/Faultbox/koipond/internal/logger"
)

// Game is the pond viewer instance.
type Game struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input

	engine *water.Engine
	plane  *water.Plane
	mesh   *water.Mesh
	field  *water.Field
	rain   *water.Rain

	background uint32
	pending    []water.Drop

	step        time.Duration
	accumulator time.Duration
}

// New creates the viewer: window and GL context first, then the water
// engine and its resources.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:  cfg,
		step: time.Duration(cfg.Water.StepMS) * time.Millisecond,
	}
	if g.step <= 0 {
		g.step = 33 * time.Millisecond
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      "Koi Pond",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		g.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if err := g.createWater(); err != nil {
		g.window.Close()
		return nil, err
	}

	g.input = input.New()

	logger.Info("pond initialized",
		zap.Int("grid_width", cfg.Water.GridWidth),
		zap.Int("grid_height", cfg.Water.GridHeight),
		zap.Float32("scale", cfg.Water.Scale),
		zap.Float32("damping", cfg.Water.Damping),
	)
	return g, nil
}

func (g *Game) createWater() error {
	w := g.cfg.Water

	var err error
	g.engine, err = water.New()
	if err != nil {
		return fmt.Errorf("creating water engine: %w", err)
	}
	g.engine.SetDamping(w.Damping)
	g.engine.SetDepth(w.Depth)

	g.plane, err = water.NewPlane(w.GridWidth, w.GridHeight, w.Scale)
	if err != nil {
		g.engine.Release()
		return fmt.Errorf("creating water plane: %w", err)
	}

	g.mesh = water.NewQuad(float32(w.GridWidth)*w.Scale, float32(w.GridHeight)*w.Scale)
	g.field = water.NewField(w.GridWidth, w.GridHeight)

	perStep := w.RainPerSecond * float32(g.step.Seconds())
	g.rain = water.NewRain(perStep, w.DropRadius, w.DropStrength*0.5, time.Now().UnixNano())

	g.background, err = g.loadBackground()
	if err != nil {
		return err
	}

	return nil
}

func (g *Game) loadBackground() (uint32, error) {
	width, height := g.window.GetDrawableSize()

	if path := g.cfg.Scene.Background; path != "" {
		tex, err := texture.LoadBackground(path, width, height)
		if err != nil {
			return 0, fmt.Errorf("loading background: %w", err)
		}
		logger.Info("background loaded", zap.String("path", path))
		return tex, nil
	}

	return texture.Upload(texture.Fallback(width, height)), nil
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting pond loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if g.input.Update() {
			break
		}
		g.handleEvents()

		g.accumulator += dt
		// A stalled frame must not trigger an unbounded catch-up burst.
		if maxLag := 10 * g.step; g.accumulator > maxLag {
			g.accumulator = maxLag
		}
		for g.accumulator >= g.step {
			g.simulate()
			g.accumulator -= g.step
		}

		g.render(float32(g.accumulator) / float32(g.step))
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Graphics.ShowFPS {
				logger.Debug("fps", zap.Int("count", frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				g.running = false
			}
		case input.EventMouseDown:
			g.splash(event.MouseX, event.MouseY)
		case input.EventMouseMove:
			if g.input.MouseHeld() {
				g.splash(event.MouseX, event.MouseY)
			}
		}
	}
}

// splash queues a drop at the window position for the next simulation step.
func (g *Game) splash(mouseX, mouseY int) {
	w := g.cfg.Water
	if w.Scale <= 0 {
		return
	}

	x := int(float32(mouseX) / w.Scale)
	// SDL has a top-left origin, the field a bottom-left one.
	y := w.GridHeight - 1 - int(float32(mouseY)/w.Scale)
	if x < 0 || y < 0 || x >= w.GridWidth || y >= w.GridHeight {
		return
	}

	g.pending = append(g.pending, water.Drop{
		X:        x,
		Y:        y,
		Radius:   w.DropRadius,
		Strength: w.DropStrength,
	})
	logger.Debug("splash",
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Float32("height", g.field.HeightAt(x, y)),
	)
}

// simulate advances both the GPU plane and its CPU mirror by one fixed
// step, applying the same drops to each.
func (g *Game) simulate() {
	drops := g.pending
	g.pending = nil
	drops = append(drops, g.rain.Drops(g.cfg.Water.GridWidth, g.cfg.Water.GridHeight)...)

	sources := make(water.Sources, len(drops))
	for i, d := range drops {
		sources[i] = d
	}

	g.engine.Propagate(g.plane, sources, g.mesh)

	g.field.Step(g.cfg.Water.Damping)
	for _, d := range drops {
		g.field.Deposit(d.X, d.Y, d.Radius, d.Strength)
	}
}

// render composites the water over the background into the window.
func (g *Game) render(interp float32) {
	width, height := g.window.GetDrawableSize()

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	g.engine.Render(g.background, g.mesh, g.plane,
		float32(width), float32(height), g.cfg.Water.Scale, interp)
}

// Close releases all resources.
func (g *Game) Close() {
	logger.Info("closing pond")

	if g.engine != nil {
		g.engine.Release()
	}
	if g.plane != nil {
		g.plane.Release()
	}
	if g.mesh != nil {
		g.mesh.Release()
	}
	if g.background != 0 {
		gl.DeleteTextures(1, &g.background)
		g.background = 0
	}
	if g.window != nil {
		g.window.Close()
	}
}
