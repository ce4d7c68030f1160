// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blend implements the accumulation operators used when compositing
// ray samples into a pixel.
//
// Colors are straight (non-premultiplied) float64 RGBA values as read from a
// transfer function lookup table. The destination accumulates whatever the
// operator produces; see each operator for what that is.
package blend

// Color is an RGBA sample or accumulator.
type Color struct {
	R, G, B, A float64
}

// Operator accumulates one source sample into the destination.
type Operator func(dst, src Color) Color

// FrontToBack accumulates src behind everything already in dst:
//
//	dst.rgb += (1 - dst.a) * src.a * src.rgb
//	dst.a   += (1 - dst.a) * src.a
//
// The resulting dst.rgb is premultiplied by the accumulated opacity.
func FrontToBack(dst, src Color) Color {
	w := (1 - dst.A) * src.A
	return Color{
		R: dst.R + w*src.R,
		G: dst.G + w*src.G,
		B: dst.B + w*src.B,
		A: dst.A + w,
	}
}

// BackToFront accumulates src in front of dst:
//
//	dst.rgb = dst.rgb * (1 - src.a) + src.rgb * src.a
//	dst.a   = dst.a + src.a
//
// Alpha is summed without clamping; callers clamp once with ClampAlpha after
// the ray terminates. This is not the textbook "under" operator.
func BackToFront(dst, src Color) Color {
	k := 1 - src.A
	return Color{
		R: dst.R*k + src.R*src.A,
		G: dst.G*k + src.G*src.A,
		B: dst.B*k + src.B*src.A,
		A: dst.A + src.A,
	}
}

// ClampAlpha limits the accumulated alpha to 1.
func ClampAlpha(c Color) Color {
	if c.A > 1 {
		c.A = 1
	}
	return c
}

// Over composites a premultiplied color over an opaque background.
func Over(c, bg Color) Color {
	k := 1 - c.A
	return Color{
		R: c.R + bg.R*k,
		G: c.G + bg.G*k,
		B: c.B + bg.B*k,
		A: 1,
	}
}
