// Package scene drives the animation: it owns the solid being shown and the
// per-axis spin, and renders one frame per Step.
package scene

import (
	"slices"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/polyspin/pkg/math3d"
	"github.com/taigrr/polyspin/pkg/models"
	"github.com/taigrr/polyspin/pkg/render"
)

// SpinAxis is the angular velocity of one axis, in radians per frame.
// Impulses add to it and a spring relaxes it back to the base rate.
type SpinAxis struct {
	Base     float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring's own velocity while animating Velocity
}

// NewSpinAxis creates an axis turning at base with a critically damped spring.
func NewSpinAxis(fps int, base float64) SpinAxis {
	return SpinAxis{
		Base:     base,
		Velocity: base,
		// Extra spin settles back to base in about a second without reversing.
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 4.0, 1.0),
	}
}

// Update moves Velocity one frame toward Base.
func (a *SpinAxis) Update() {
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, a.Base)
}

// Scene holds the current faces and renders them frame by frame.
type Scene struct {
	// Wireframe draws x-ray outlines instead of filled faces.
	Wireframe bool

	initial    *models.Solid
	current    *models.Solid
	axes       [3]SpinAxis
	fps        int
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	wire       *render.Wireframe
}

// New creates a scene for s at the given frame rate, rendering into a
// GridSize framebuffer.
func New(s *models.Solid, fps int, rule render.FillRule) *Scene {
	fb := render.NewFramebuffer(render.GridSize)
	sc := &Scene{
		initial:    s.Clone(),
		fps:        fps,
		fb:         fb,
		rasterizer: render.NewRasterizer(fb),
		wire:       render.NewWireframe(fb),
	}
	sc.rasterizer.Rule = rule
	sc.Reset()
	return sc
}

// Reset restores the initial orientation and the base spin rates.
func (sc *Scene) Reset() {
	sc.current = sc.initial.Clone()
	for a := range sc.axes {
		sc.axes[a] = NewSpinAxis(sc.fps, sc.initial.Tumble.Rates[a])
	}
}

// Solid returns the faces in their current orientation.
func (sc *Scene) Solid() *models.Solid {
	return sc.current
}

// Velocity returns the current per-axis angular velocity.
func (sc *Scene) Velocity() [3]float64 {
	return [3]float64{sc.axes[0].Velocity, sc.axes[1].Velocity, sc.axes[2].Velocity}
}

// Impulse adds angular velocity (radians per frame) to each axis.
func (sc *Scene) Impulse(x, y, z float64) {
	sc.axes[models.AxisX].Velocity += x
	sc.axes[models.AxisY].Velocity += y
	sc.axes[models.AxisZ].Velocity += z
}

// Matrix returns this frame's combined rotation: the current velocities
// multiplied in the solid's tumble order. An axis missing from the order
// still spins when it has velocity; it is appended after the ordered axes.
func (sc *Scene) Matrix() math3d.Mat3 {
	tumble := sc.current.Tumble
	m := tumble.Matrix(sc.Velocity())
	for a := models.AxisX; a <= models.AxisZ; a++ {
		if v := sc.axes[a].Velocity; v != 0 && !slices.Contains(tumble.Order, a) {
			m = m.Mul(a.Rotation(v))
		}
	}
	return m
}

// Step renders the current faces transformed by this frame's matrix, then
// makes the transformed faces current and advances the springs. It returns
// the rendered frame.
func (sc *Scene) Step() *render.Framebuffer {
	m := sc.Matrix()

	sc.fb.Clear()
	if sc.Wireframe {
		sc.wire.DrawSolid(sc.current, m)
	} else {
		sc.rasterizer.DrawSolid(sc.current, m)
	}

	sc.current = sc.current.Transform(m)
	for a := range sc.axes {
		sc.axes[a].Update()
	}
	return sc.fb
}

// Advance runs n steps without keeping intermediate frames.
func (sc *Scene) Advance(n int) *render.Framebuffer {
	for range n {
		sc.Step()
	}
	return sc.fb
}
