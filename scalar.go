// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"math"
)

// ScalarFunction selects the transform applied to raw samples before
// normalization.
type ScalarFunction uint8

const (
	// Identity returns the raw value.
	Identity ScalarFunction = iota
	// AbsoluteValue returns |value|.
	AbsoluteValue
	// Log10 returns log10(value). Non-positive values yield NaN or -Inf.
	Log10
	// ScalarMultiply returns value * secondary.
	ScalarMultiply
	// MultiplyThenLog10 returns log10(value * secondary).
	MultiplyThenLog10
)

var scalarFunctionNames = [...]string{
	Identity:          "identity",
	AbsoluteValue:     "abs",
	Log10:             "log10",
	ScalarMultiply:    "multiply",
	MultiplyThenLog10: "multiply-log10",
}

// String returns the name used by ParseScalarFunction.
func (f ScalarFunction) String() string {
	if int(f) < len(scalarFunctionNames) {
		return scalarFunctionNames[f]
	}
	return fmt.Sprintf("ScalarFunction(%d)", uint8(f))
}

// UsesSecondary reports whether f reads the secondary field.
func (f ScalarFunction) UsesSecondary() bool {
	return f == ScalarMultiply || f == MultiplyThenLog10
}

// ParseScalarFunction parses a name returned by String.
func ParseScalarFunction(s string) (ScalarFunction, bool) {
	for i, name := range scalarFunctionNames {
		if name == s {
			return ScalarFunction(i), true
		}
	}
	return Identity, false
}

// Apply transforms value. secondary is the matching sample of the
// secondary field, or 1.0 when there is none; kinds that do not use it
// ignore it.
//
// Domain errors are not trapped: Log10 of a non-positive value propagates
// NaN or -Inf to the caller.
func (f ScalarFunction) Apply(value, secondary float64) float64 {
	switch f {
	case AbsoluteValue:
		return math.Abs(value)
	case Log10:
		return math.Log10(value)
	case ScalarMultiply:
		return value * secondary
	case MultiplyThenLog10:
		return math.Log10(value * secondary)
	default:
		return value
	}
}

// Range is an active [Min, Max] range of transformed values.
type Range struct {
	Min, Max float64
}

// Valid reports whether Max > Min. NaN endpoints are never valid.
func (r Range) Valid() bool {
	return r.Max > r.Min
}

// IsZero reports whether Min == Max, which asks for the range to be
// derived from the data.
func (r Range) IsZero() bool {
	return r.Min == r.Max
}

// Normalize clamps v to the range and maps it onto [0, 1].
func (r Range) Normalize(v float64) float64 {
	v = min(max(v, r.Min), r.Max)
	return (v - r.Min) / (r.Max - r.Min)
}

// Quantize maps v to an 8-bit intensity by truncation. Min maps to 0, Max
// to 255 and values outside the range clamp. The result for NaN is
// unspecified.
func (r Range) Quantize(v float64) uint8 {
	return uint8(r.Normalize(v) * 255)
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// DeriveRange computes the active range by applying f to the recorded raw
// extrema of field and, for kinds that use it, of secondary. A nil
// secondary counts as a constant 1.0 field.
//
// The transformed values are not scanned, so the result is exact only for
// monotonic kinds. For AbsoluteValue over a field that crosses zero the
// derived minimum overestimates the true minimum. Endpoints that come out
// inverted are swapped.
func DeriveRange(f ScalarFunction, field, secondary *ScalarField) Range {
	smin, smax := 1.0, 1.0
	if secondary != nil {
		smin, smax = secondary.RawMin(), secondary.RawMax()
	}
	r := Range{
		Min: f.Apply(field.RawMin(), smin),
		Max: f.Apply(field.RawMax(), smax),
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// ResolveRange returns r if it is valid, otherwise the derived range when r
// is zero. Any other r fails with ErrInvalidRange, as does a derived range
// that is not valid.
func ResolveRange(r Range, f ScalarFunction, field, secondary *ScalarField) (Range, error) {
	if r.Valid() {
		return r, nil
	}
	if !r.IsZero() {
		return r, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	d := DeriveRange(f, field, secondary)
	if !d.Valid() {
		return d, fmt.Errorf("%w: derived %v for %v", ErrInvalidRange, d, f)
	}
	return d, nil
}
