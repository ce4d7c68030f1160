// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"errors"
	"testing"
)

func TestRendererHitsAndMisses(t *testing.T) {
	dims := Dims{8, 8, 8}
	vol := uniformVolume(t, dims, 255)
	lut := constantLUT(RGBA{R: 1, A: 1})
	box := CenteredBox(dims)

	// The box spans [-4,4]; from z=20 with a 90 degree view it covers
	// only the middle of the frame.
	cam := Camera{Eye: V3(0, 0, 20), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 90}

	for _, mode := range []CompositingMode{FrontToBack, BackToFront} {
		t.Run(mode.String(), func(t *testing.T) {
			r := NewRenderer(NewMarcher(WithMode(mode), WithStepSize(0.05)), 2)
			frame, stats, err := r.Render(vol, lut, cam, box, 16, 16)
			if err != nil {
				t.Fatal(err)
			}
			if got := frame.At(8, 8); got != (RGBA{R: 1, A: 1}) {
				t.Errorf("center pixel = %+v, want opaque red", got)
			}
			if got := frame.At(0, 0); got != (RGBA{}) {
				t.Errorf("corner pixel = %+v, want empty", got)
			}
			if stats.Rays != 256 || stats.Missed == 0 || stats.Missed == stats.Rays {
				t.Errorf("stats = %+v", stats)
			}
			if stats.Missed+stats.Exited+stats.Capped+stats.Saturated != stats.Rays {
				t.Errorf("ray states do not add up: %+v", stats)
			}
			t.Logf("%v: %+v", mode, stats)
		})
	}
}

func TestRendererModesAgreeOnUniformSlab(t *testing.T) {
	// A single translucent material looks the same from either end when
	// sampled the same number of times, as long as alpha stays below 1.
	dims := Dims{4, 4, 4}
	vol := uniformVolume(t, dims, 100)
	lut := constantLUT(RGBA{G: 1, A: 0.05})
	box := CenteredBox(dims)
	cam := Camera{Eye: V3(0, 0, 50), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 5}

	ftb, _, err := NewRenderer(NewMarcher(WithStepSize(0.25)), 1).Render(vol, lut, cam, box, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	btf, _, err := NewRenderer(NewMarcher(WithStepSize(0.25), WithMode(BackToFront)), 1).Render(vol, lut, cam, box, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	a, b := ftb.At(0, 0), btf.At(0, 0)
	if a.G <= 0 || b.G <= 0 {
		t.Fatalf("expected green in both modes: %+v %+v", a, b)
	}
	if b.A < a.A {
		t.Errorf("summed back-to-front alpha %v below front-to-back %v", b.A, a.A)
	}
}

func TestRendererValidation(t *testing.T) {
	dims := Dims{2, 2, 2}
	vol := uniformVolume(t, dims, 0)
	lut := constantLUT(RGBA{A: 1})
	box := CenteredBox(dims)
	cam := OrbitCamera(box, 0, 0)
	r := NewRenderer(nil, 0)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"nil lut", func() error { _, _, err := r.Render(vol, nil, cam, box, 4, 4); return err }, ErrNoLUT},
		{"nil volume", func() error { _, _, err := r.Render(nil, lut, cam, box, 4, 4); return err }, ErrInvalidDimensions},
		{"empty frame", func() error { _, _, err := r.Render(vol, lut, cam, box, 0, 4); return err }, ErrInvalidDimensions},
		{"flat box", func() error {
			_, _, err := r.Render(vol, lut, cam, BoundingBox{Max: V3(1, 1, 0)}, 4, 4)
			return err
		}, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	dims := Dims{64, 64, 64}
	data := make([]uint8, dims.Len())
	for i := range data {
		data[i] = uint8(i)
	}
	vol, err := NewClassifiedVolume(dims, data)
	if err != nil {
		b.Fatal(err)
	}
	lut, err := DefaultTransferFunction().ComputeLUT()
	if err != nil {
		b.Fatal(err)
	}
	box := CenteredBox(dims)
	r := NewRenderer(NewMarcher(WithStepSize(0.01)), 0)
	cam := OrbitCamera(box, 30, 20)

	for b.Loop() {
		if _, _, err := r.Render(vol, lut, cam, box, 128, 128); err != nil {
			b.Fatal(err)
		}
	}
}
