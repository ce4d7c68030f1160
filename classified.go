// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"image"
	"math"
)

// Filter selects how a ClassifiedVolume is sampled at a continuous
// position.
type Filter uint8

const (
	// FilterNearest returns the intensity of the voxel containing the
	// position.
	FilterNearest Filter = iota
	// FilterLinear interpolates trilinearly between voxel centers with
	// clamp-to-edge addressing.
	FilterLinear
)

func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

// ParseFilter parses "nearest" or "linear".
func ParseFilter(s string) (Filter, bool) {
	switch s {
	case "nearest":
		return FilterNearest, true
	case "linear", "trilinear":
		return FilterLinear, true
	}
	return FilterNearest, false
}

// ClassifiedVolume is a dense grid of 8-bit intensities with the same shape
// as the field it was classified from.
type ClassifiedVolume struct {
	dims Dims
	data []uint8
	rng  Range
	fn   ScalarFunction
}

// NewClassifiedVolume wraps data, laid out x fastest. The slice is not
// copied. It fails with ErrInvalidDimensions on a shape mismatch.
func NewClassifiedVolume(dims Dims, data []uint8) (*ClassifiedVolume, error) {
	if !dims.Valid() || len(data) != dims.Len() {
		return nil, fmt.Errorf("%w: %d intensities for %v", ErrInvalidDimensions, len(data), dims)
	}
	return &ClassifiedVolume{dims: dims, data: data}, nil
}

// Dims returns the grid extent.
func (v *ClassifiedVolume) Dims() Dims { return v.dims }

// Data returns the backing intensities. Callers must not modify them.
func (v *ClassifiedVolume) Data() []uint8 { return v.data }

// Range returns the active range the volume was classified with.
func (v *ClassifiedVolume) Range() Range { return v.rng }

// Function returns the scalar function the volume was classified with.
func (v *ClassifiedVolume) Function() ScalarFunction { return v.fn }

// At returns the intensity of voxel (x, y, z).
func (v *ClassifiedVolume) At(x, y, z int) uint8 {
	return v.data[v.dims.Index(x, y, z)]
}

// Nearest returns the intensity of the voxel containing the unit-cube
// position (px, py, pz). Positions outside [0,1] clamp to the edge.
func (v *ClassifiedVolume) Nearest(px, py, pz float64) uint8 {
	x := cell(px, v.dims.X)
	y := cell(py, v.dims.Y)
	z := cell(pz, v.dims.Z)
	return v.data[v.dims.Index(x, y, z)]
}

// Linear returns the trilinearly filtered intensity at the unit-cube
// position (px, py, pz) as a value in [0, 255]. Voxel centers sit at
// (i+0.5)/n; positions beyond the outermost centers clamp.
func (v *ClassifiedVolume) Linear(px, py, pz float64) float64 {
	x0, x1, fx := texel(px, v.dims.X)
	y0, y1, fy := texel(py, v.dims.Y)
	z0, z1, fz := texel(pz, v.dims.Z)

	at := func(x, y, z int) float64 {
		return float64(v.data[v.dims.Index(x, y, z)])
	}
	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }

	c00 := lerp(at(x0, y0, z0), at(x1, y0, z0), fx)
	c10 := lerp(at(x0, y1, z0), at(x1, y1, z0), fx)
	c01 := lerp(at(x0, y0, z1), at(x1, y0, z1), fx)
	c11 := lerp(at(x0, y1, z1), at(x1, y1, z1), fx)
	return lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
}

// SliceZ returns plane z as a grayscale image, x to the right and y down.
func (v *ClassifiedVolume) SliceZ(z int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, v.dims.X, v.dims.Y))
	plane := v.dims.X * v.dims.Y
	for y := range v.dims.Y {
		src := v.data[z*plane+y*v.dims.X:][:v.dims.X]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img
}

// Histogram counts voxels per intensity.
func (v *ClassifiedVolume) Histogram() [256]int {
	var h [256]int
	for _, b := range v.data {
		h[b]++
	}
	return h
}

// cell maps a unit coordinate to the index of the voxel containing it.
func cell(p float64, n int) int {
	i := int(math.Floor(p * float64(n)))
	return min(max(i, 0), n-1)
}

// texel returns the two voxel indices bracketing p and the weight of the
// second one.
func texel(p float64, n int) (i0, i1 int, f float64) {
	u := p*float64(n) - 0.5
	if !(u > 0) {
		return 0, 0, 0
	}
	if u >= float64(n-1) {
		return n - 1, n - 1, 0
	}
	fl := math.Floor(u)
	i0 = int(fl)
	return i0, i0 + 1, u - fl
}
