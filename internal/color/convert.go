// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBToHSV converts an RGB color to HSV.
// Achromatic colors (R == G == B) get hue 0.
func RGBToHSV(c RGB) HSV {
	h, s, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return HSV{H: h, S: s, V: v}
}

// HSVToRGB converts an HSV color to RGB.
// Hue outside [0,360) is wrapped.
func HSVToRGB(c HSV) RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	out := colorful.Hsv(h, c.S, c.V)
	return RGB{R: out.R, G: out.G, B: out.B}
}

// ToU8 maps a component in [0,1] to [0,255] with rounding.
// Values outside [0,1] and NaN are clamped.
func ToU8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
