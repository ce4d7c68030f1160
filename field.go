// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"math"
	"slices"
)

// Dims is the extent of a voxel grid.
type Dims struct {
	X, Y, Z int
}

// Len returns the number of voxels.
func (d Dims) Len() int {
	return d.X * d.Y * d.Z
}

// Valid reports whether every extent is positive.
func (d Dims) Valid() bool {
	return d.X > 0 && d.Y > 0 && d.Z > 0
}

// Index returns the linear offset of voxel (x, y, z). X varies fastest.
func (d Dims) Index(x, y, z int) int {
	return x + d.X*(y+d.Y*z)
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// ScalarField is a dense 3D grid of raw samples together with the raw
// minimum and maximum recorded by the loader.
//
// The field is read-only once constructed; classification only borrows it.
type ScalarField struct {
	dims   Dims
	values []float64
	min    float64
	max    float64
}

// NewScalarField copies values, laid out x fastest then y then z, and
// records the given raw extrema. It fails with ErrInvalidDimensions if dims
// are not positive or len(values) != dims.Len().
//
// Later writes to values do not reach the field, so a field never changes
// after construction.
func NewScalarField(dims Dims, values []float64, rawMin, rawMax float64) (*ScalarField, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, dims)
	}
	if len(values) != dims.Len() {
		return nil, fmt.Errorf("%w: %d values for %v", ErrInvalidDimensions, len(values), dims)
	}
	return &ScalarField{dims: dims, values: slices.Clone(values), min: rawMin, max: rawMax}, nil
}

// ScanScalarField is like NewScalarField but scans values for the raw
// extrema. NaN samples are ignored by the scan.
func ScanScalarField(dims Dims, values []float64) (*ScalarField, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	return NewScalarField(dims, values, lo, hi)
}

// Dims returns the grid extent.
func (f *ScalarField) Dims() Dims { return f.dims }

// Len returns the number of samples.
func (f *ScalarField) Len() int { return len(f.values) }

// Values returns a copy of the samples.
func (f *ScalarField) Values() []float64 { return slices.Clone(f.values) }

// At returns the sample at (x, y, z).
func (f *ScalarField) At(x, y, z int) float64 {
	return f.values[f.dims.Index(x, y, z)]
}

// RawMin returns the recorded raw minimum.
func (f *ScalarField) RawMin() float64 { return f.min }

// RawMax returns the recorded raw maximum.
func (f *ScalarField) RawMax() float64 { return f.max }
