// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/volume"
)

//go:embed shaders/raycast.wgsl
var raycastWGSL string

// Shader entry points and bind group slots.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"

	BindingParams  = 0
	BindingVolume  = 1
	BindingSampler = 2
	BindingLUT     = 3
)

// RaycastShaderSource returns the WGSL source of the ray-casting shader.
func RaycastShaderSource() string {
	return raycastWGSL
}

var raycast struct {
	once  sync.Once
	spirv []uint32
	err   error
}

// CompileRaycastShader compiles the ray-casting shader to SPIR-V words.
// The result is computed once and shared.
func CompileRaycastShader() ([]uint32, error) {
	raycast.once.Do(func() {
		raycast.spirv, raycast.err = compileSPIRV(raycastWGSL)
		if raycast.err == nil {
			volume.Logger().Debug("gpu: raycast shader compiled", "words", len(raycast.spirv))
		}
	})
	return raycast.spirv, raycast.err
}

func compileSPIRV(src string) ([]uint32, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// ParamsSize is the size in bytes of the shader's uniform block.
const ParamsSize = 8 * 16

// Params is the uniform block of the ray-casting shader.
type Params struct {
	Eye              volume.Vec3
	Forward          volume.Vec3
	Right            volume.Vec3
	Up               volume.Vec3
	BoxMin           volume.Vec3
	BoxMax           volume.Vec3
	StepSize         float64
	MaxSteps         int
	EarlyTermination float64
	Mode             volume.CompositingMode
	Width            int
	Height           int
	TanHalfFov       float64
	LUTSize          int
}

// NewParams fills the uniform block for rendering through cam into an image
// of the given size, marching like m.
func NewParams(cam volume.Camera, box volume.BoundingBox, m *volume.Marcher, width, height, lutSize int) Params {
	if m == nil {
		m = volume.NewMarcher()
	}
	forward, right, up := cam.Basis()
	return Params{
		Eye:              cam.Eye,
		Forward:          forward,
		Right:            right,
		Up:               up,
		BoxMin:           box.Min,
		BoxMax:           box.Max,
		StepSize:         m.StepSize(),
		MaxSteps:         m.MaxSteps(),
		EarlyTermination: m.EarlyTermination(),
		Mode:             m.Mode(),
		Width:            width,
		Height:           height,
		TanHalfFov:       cam.TanHalfFov(),
		LUTSize:          lutSize,
	}
}

// Bytes packs the block as eight little-endian vec4<f32> values.
func (p Params) Bytes() []byte {
	var mode float64
	if p.Mode == volume.BackToFront {
		mode = 1
	}
	vec4s := [8][4]float64{
		{p.Eye.X(), p.Eye.Y(), p.Eye.Z(), 1},
		{p.Forward.X(), p.Forward.Y(), p.Forward.Z(), 0},
		{p.Right.X(), p.Right.Y(), p.Right.Z(), 0},
		{p.Up.X(), p.Up.Y(), p.Up.Z(), 0},
		{p.BoxMin.X(), p.BoxMin.Y(), p.BoxMin.Z(), 1},
		{p.BoxMax.X(), p.BoxMax.Y(), p.BoxMax.Z(), 1},
		{p.StepSize, float64(p.MaxSteps), p.EarlyTermination, mode},
		{float64(p.Width), float64(p.Height), p.TanHalfFov, float64(p.LUTSize)},
	}
	buf := make([]byte, ParamsSize)
	for i, v := range vec4s {
		for j, c := range v {
			binary.LittleEndian.PutUint32(buf[(i*4+j)*4:], math.Float32bits(float32(c)))
		}
	}
	return buf
}
