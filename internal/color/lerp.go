// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package color

// Lerp interpolates linearly between a and b.
// The result is exactly a at u == 0 and exactly b at u == 1.
func Lerp(a, b, u float64) float64 {
	return (1-u)*a + u*b
}

// LerpRGB interpolates two colors per channel in RGB space.
func LerpRGB(c0, c1 RGB, u float64) RGB {
	return RGB{
		R: Lerp(c0.R, c1.R, u),
		G: Lerp(c0.G, c1.G, u),
		B: Lerp(c0.B, c1.B, u),
	}
}

// LerpHSV converts both colors to HSV, interpolates each channel linearly
// and converts the result back to RGB.
//
// Hue is interpolated along the straight numeric path between the two
// endpoint hues; there is no shortest-arc correction across 0/360, so
// blue (240) to red (0) passes through green.
//
// The endpoints are returned unchanged at u == 0 and u == 1 so that control
// points survive the round trip through HSV exactly.
func LerpHSV(c0, c1 RGB, u float64) RGB {
	switch u {
	case 0:
		return c0
	case 1:
		return c1
	}
	h0 := RGBToHSV(c0)
	h1 := RGBToHSV(c1)
	return HSVToRGB(HSV{
		H: Lerp(h0.H, h1.H, u),
		S: Lerp(h0.S, h1.S, u),
		V: Lerp(h0.V, h1.V, u),
	})
}

// Interpolate interpolates two colors in the given space.
// Unknown spaces fall back to RGB.
func Interpolate(space Space, c0, c1 RGB, u float64) RGB {
	if space == SpaceHSV {
		return LerpHSV(c0, c1, u)
	}
	return LerpRGB(c0, c1, u)
}
