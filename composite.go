// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"github.com/gogpu/volume/internal/blend"
)

// Default marching parameters.
const (
	// DefaultStepSize is the distance between samples in unit-cube units.
	DefaultStepSize = 0.1
	// DefaultMaxSteps bounds the samples taken along one ray.
	DefaultMaxSteps = 2048
	// DefaultEarlyTermination is the accumulated alpha at which a
	// front-to-back ray stops.
	DefaultEarlyTermination = 0.99
)

// CompositingMode selects the order in which samples along a ray are
// accumulated.
type CompositingMode uint8

const (
	// FrontToBack starts at the sample nearest the eye:
	//
	//	dst.rgb += (1 - dst.a) * src.a * src.rgb
	//	dst.a   += (1 - dst.a) * src.a
	FrontToBack CompositingMode = iota

	// BackToFront starts at the sample farthest from the eye:
	//
	//	dst.rgb = dst.rgb * (1 - src.a) + src.rgb * src.a
	//	dst.a   = dst.a + src.a
	//
	// Alpha is clamped to 1 once, after the ray terminates.
	BackToFront
)

func (m CompositingMode) String() string {
	if m == BackToFront {
		return "back-to-front"
	}
	return "front-to-back"
}

// ParseCompositingMode parses a name returned by String.
func ParseCompositingMode(s string) (CompositingMode, bool) {
	switch s {
	case "front-to-back", "ftb":
		return FrontToBack, true
	case "back-to-front", "btf":
		return BackToFront, true
	}
	return FrontToBack, false
}

func (m CompositingMode) operator() blend.Operator {
	if m == BackToFront {
		return blend.BackToFront
	}
	return blend.FrontToBack
}

// RayState is the state of a ray in the marching state machine.
type RayState uint8

const (
	// Marching is the initial state.
	Marching RayState = iota
	// ExitedVolume means the ray left the unit cube.
	ExitedVolume
	// StepCap means the ray took the maximum number of samples.
	StepCap
	// AlphaSaturated means a front-to-back ray became opaque.
	AlphaSaturated
)

var rayStateNames = [...]string{
	Marching:       "marching",
	ExitedVolume:   "exited",
	StepCap:        "step-cap",
	AlphaSaturated: "saturated",
}

func (s RayState) String() string {
	if int(s) < len(rayStateNames) {
		return rayStateNames[s]
	}
	return "unknown"
}

// Terminated reports whether the ray has stopped.
func (s RayState) Terminated() bool {
	return s != Marching
}

// Ray is a ray in unit-cube coordinates. Origin should lie inside [0,1]^3;
// Dir is used as given, so a unit vector makes the step size the distance
// between samples.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Sample is the output of marching a single ray.
type Sample struct {
	// Color is the accumulated color with rgb premultiplied by alpha and
	// alpha clamped to [0, 1].
	Color RGBA
	// State is the terminal state.
	State RayState
	// Steps is the number of samples composited.
	Steps int
}

// Marcher accumulates classified samples along rays.
//
// A Marcher is immutable and safe for concurrent use.
type Marcher struct {
	opts marchOptions
	op   blend.Operator
}

// NewMarcher creates a marcher with the given options.
func NewMarcher(opts ...MarchOption) *Marcher {
	o := defaultMarchOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Marcher{opts: o, op: o.mode.operator()}
}

// Mode returns the compositing mode.
func (m *Marcher) Mode() CompositingMode { return m.opts.mode }

// StepSize returns the distance between samples.
func (m *Marcher) StepSize() float64 { return m.opts.step }

// MaxSteps returns the per-ray sample bound.
func (m *Marcher) MaxSteps() int { return m.opts.maxSteps }

// Filter returns the sampling filter.
func (m *Marcher) Filter() Filter { return m.opts.filter }

// EarlyTermination returns the front-to-back alpha threshold.
func (m *Marcher) EarlyTermination() float64 { return m.opts.earlyStop }

// March walks ray through vol, compositing lut entries.
//
// Each step samples the classified intensity at the current position,
// looks up its color, accumulates it under the configured mode and then
// advances by the step size. The ray terminates when the position leaves
// [0,1]^3 on any axis, when MaxSteps samples have been taken, or, for
// front-to-back rays, when accumulated alpha reaches the early termination
// threshold. A ray whose origin is outside the cube takes no samples.
func (m *Marcher) March(vol *ClassifiedVolume, lut *LUT, ray Ray) Sample {
	var dst blend.Color
	state := Marching
	pos := ray.Origin
	step := ray.Dir.Mul(m.opts.step)
	saturate := m.opts.mode == FrontToBack && m.opts.earlyStop <= 1

	steps := 0
	if !pos.InUnitCube() {
		state = ExitedVolume
	}
	for state == Marching {
		if steps == m.opts.maxSteps {
			state = StepCap
			break
		}
		dst = m.op(dst, m.sample(vol, lut, pos))
		steps++

		if saturate && dst.A >= m.opts.earlyStop {
			state = AlphaSaturated
			break
		}
		pos = pos.Add(step)
		if !pos.InUnitCube() {
			state = ExitedVolume
		}
	}

	dst = blend.ClampAlpha(dst)
	return Sample{
		Color: RGBA{R: dst.R, G: dst.G, B: dst.B, A: dst.A},
		State: state,
		Steps: steps,
	}
}

// Accumulate composites a precomputed sequence of samples, ordered as they
// are visited, under mode and clamps the result once at the end.
func Accumulate(mode CompositingMode, samples []RGBA) RGBA {
	op := mode.operator()
	var dst blend.Color
	for _, s := range samples {
		dst = op(dst, blend.Color{R: s.R, G: s.G, B: s.B, A: s.A})
	}
	dst = blend.ClampAlpha(dst)
	return RGBA{R: dst.R, G: dst.G, B: dst.B, A: dst.A}
}

func (m *Marcher) sample(vol *ClassifiedVolume, lut *LUT, p Vec3) blend.Color {
	var e RGBA
	if m.opts.filter == FilterLinear {
		e = lut.Sample(vol.Linear(p[0], p[1], p[2]) / 255)
	} else {
		e = lut.Lookup(vol.Nearest(p[0], p[1], p[2]))
	}
	return blend.Color{R: e.R, G: e.G, B: e.B, A: e.A}
}
