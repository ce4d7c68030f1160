// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package color provides the color space conversions used to build transfer
// function lookup tables.
//
// Colors are plain float64 triples in [0,1]. Hue is expressed in degrees
// in [0,360); saturation and value are in [0,1].
package color

// Space selects the channel space in which two colors are interpolated.
type Space uint8

const (
	// SpaceRGB interpolates red, green and blue independently.
	SpaceRGB Space = iota
	// SpaceHSV converts both endpoints to hue/saturation/value,
	// interpolates each channel linearly and converts back.
	SpaceHSV
)

// String returns the lower-case name of the space.
func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// RGB is a color with float64 components in [0,1].
type RGB struct {
	R, G, B float64
}

// HSV is a color in hue/saturation/value form.
type HSV struct {
	H, S, V float64
}
