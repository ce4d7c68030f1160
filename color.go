// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"image/color"

	icolor "github.com/gogpu/volume/internal/color"
)

// RGB is a control point color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// RGBA is a lookup table entry: a straight (non-premultiplied) color with
// opacity. Components are in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB returns the color part of c.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Color converts c to an 8-bit color.NRGBA.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: icolor.ToU8(c.R),
		G: icolor.ToU8(c.G),
		B: icolor.ToU8(c.B),
		A: icolor.ToU8(c.A),
	}
}

// WithAlpha returns the color with opacity a.
func (c RGB) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// valid reports whether every component lies in [0, 1].
func (c RGB) valid() bool {
	return in01(c.R) && in01(c.G) && in01(c.B)
}

func in01(v float64) bool {
	return v >= 0 && v <= 1
}

func (c RGB) internal() icolor.RGB {
	return icolor.RGB{R: c.R, G: c.G, B: c.B}
}

func fromInternal(c icolor.RGB) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Hex8 creates a color from 8-bit components, as stored in raw volume
// descriptors.
func Hex8(r, g, b uint8) RGB {
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Red   = RGB{1, 0, 0}
	Green = RGB{0, 1, 0}
	Blue  = RGB{0, 0, 1}
)

// InterpolationMode selects the channel space used to interpolate between
// color control points.
type InterpolationMode uint8

const (
	// InterpolateRGB interpolates red, green and blue independently.
	InterpolateRGB InterpolationMode = iota
	// InterpolateHSV interpolates hue, saturation and value independently.
	// Hue takes the direct numeric path, with no wrap across 0/360.
	InterpolateHSV
)

// String returns "rgb" or "hsv".
func (m InterpolationMode) String() string {
	return m.space().String()
}

func (m InterpolationMode) space() icolor.Space {
	if m == InterpolateHSV {
		return icolor.SpaceHSV
	}
	return icolor.SpaceRGB
}

// ParseInterpolationMode parses "rgb" or "hsv".
func ParseInterpolationMode(s string) (InterpolationMode, bool) {
	switch s {
	case "rgb", "RGB":
		return InterpolateRGB, true
	case "hsv", "HSV":
		return InterpolateHSV, true
	}
	return InterpolateRGB, false
}
