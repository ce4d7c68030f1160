// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"errors"
	"math"
	"sync"
	"testing"
)

const lutEpsilon = 0.01

func rgbaNear(a, b RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}

// newRamp builds a transfer function with two color and two opacity points
// at the ends of a 256-entry table.
func newRamp(t *testing.T, c0, c1 RGB, a0, a1 float64, mode InterpolationMode) *TransferFunction {
	t.Helper()
	tf := NewTransferFunction()
	tf.SetInterpolationMode(mode)
	for _, err := range []error{
		tf.SetColor(0, c0),
		tf.SetColor(255, c1),
		tf.SetOpacity(0, a0),
		tf.SetOpacity(255, a1),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return tf
}

func TestComputeLUTBlueToRed(t *testing.T) {
	tf := newRamp(t, Blue, Red, 0.01, 1.0, InterpolateRGB)
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatalf("ComputeLUT() error = %v", err)
	}
	if lut.Len() != 256 {
		t.Fatalf("Len() = %d, want 256", lut.Len())
	}

	got := lut.At(128)
	want := RGBA{R: 0.5, G: 0, B: 0.5, A: 0.5}
	if !rgbaNear(got, want, lutEpsilon) {
		t.Errorf("LUT[128] = %+v, want ~%+v", got, want)
	}
	t.Logf("LUT[128] = %+v", got)
}

func TestComputeLUTEndpointsExact(t *testing.T) {
	tests := []struct {
		name   string
		mode   InterpolationMode
		i0, i1 int
		c0, c1 RGB
	}{
		{"rgb full", InterpolateRGB, 0, 255, RGB{0.1, 0.2, 0.3}, RGB{0.9, 0.7, 0.4}},
		{"rgb inner", InterpolateRGB, 17, 203, RGB{0.33, 0.66, 0.99}, RGB{0.01, 0.5, 0.75}},
		{"hsv full", InterpolateHSV, 0, 255, RGB{0.1, 0.2, 0.3}, RGB{0.9, 0.7, 0.4}},
		{"hsv inner", InterpolateHSV, 40, 41, RGB{0.3, 0.6, 0.9}, RGB{0.7, 0.1, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := NewTransferFunction()
			tf.SetInterpolationMode(tt.mode)
			if err := tf.SetColor(tt.i0, tt.c0); err != nil {
				t.Fatal(err)
			}
			if err := tf.SetColor(tt.i1, tt.c1); err != nil {
				t.Fatal(err)
			}
			if err := tf.SetOpacity(0, 0); err != nil {
				t.Fatal(err)
			}
			if err := tf.SetOpacity(255, 1); err != nil {
				t.Fatal(err)
			}

			lut, err := tf.ComputeLUT()
			if err != nil {
				t.Fatal(err)
			}
			if got := lut.At(tt.i0).RGB(); got != tt.c0 {
				t.Errorf("LUT[%d] = %+v, want exactly %+v", tt.i0, got, tt.c0)
			}
			if got := lut.At(tt.i1).RGB(); got != tt.c1 {
				t.Errorf("LUT[%d] = %+v, want exactly %+v", tt.i1, got, tt.c1)
			}
		})
	}
}

func TestComputeLUTOpacityRamp(t *testing.T) {
	tf := newRamp(t, Black, White, 0, 1, InterpolateRGB)
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	var maxErr float64
	for i := range 256 {
		want := float64(i) / 255
		d := math.Abs(lut.At(i).A - want)
		maxErr = max(maxErr, d)
		if d > 1e-12 {
			t.Errorf("LUT[%d].A = %v, want %v", i, lut.At(i).A, want)
		}
	}
	t.Logf("max opacity error: %g", maxErr)
}

func TestComputeLUTOpacityAroundColorRange(t *testing.T) {
	tf := NewTransferFunction()
	for _, err := range []error{
		tf.SetColor(64, Red),
		tf.SetColor(192, Green),
		tf.SetOpacity(0, 0.25),
		tf.SetOpacity(255, 0.75),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{193, 255} {
		if got := lut.At(i); got != (RGBA{}) {
			t.Errorf("LUT[%d] = %+v, want transparent black above the last color point", i, got)
		}
	}
	// Below the first color point entries stay black but carry opacity.
	for _, i := range []int{0, 10, 63, 64} {
		got := lut.At(i)
		wantA := 0.25 + 0.5*float64(i)/255
		if i < 64 && got.RGB() != Black {
			t.Errorf("LUT[%d] color = %+v, want black", i, got.RGB())
		}
		if math.Abs(got.A-wantA) > 1e-12 {
			t.Errorf("LUT[%d].A = %v, want %v", i, got.A, wantA)
		}
	}
}

func TestComputeLUTMultipleSegments(t *testing.T) {
	tf := NewTransferFunction()
	for _, err := range []error{
		tf.SetColor(0, Red),
		tf.SetColor(100, Green),
		tf.SetColor(255, Blue),
		tf.SetOpacity(0, 1),
		tf.SetOpacity(255, 1),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	if got := lut.At(100).RGB(); got != Green {
		t.Errorf("LUT[100] = %+v, want green", got)
	}
	want := RGBA{R: 0.5, G: 0.5, B: 0, A: 1}
	if got := lut.At(50); !rgbaNear(got, want, 1e-9) {
		t.Errorf("LUT[50] = %+v, want %+v", got, want)
	}
}

func TestComputeLUTHSVGoesThroughGreen(t *testing.T) {
	// Blue (240°) to red (0°) without hue wrap passes through green (120°).
	tf := newRamp(t, Blue, Red, 1, 1, InterpolateHSV)
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	mid := lut.At(128)
	if mid.G < 0.9 || mid.R > 0.1 {
		t.Errorf("HSV midpoint = %+v, want a green hue", mid)
	}
}

func TestComputeLUTIdempotent(t *testing.T) {
	tf := DefaultTransferFunction()
	first, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	second, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("ComputeLUT without edits should return the published table")
	}

	// Forcing a rebuild with identical inputs is still bit-identical.
	tf.SetInterpolationMode(InterpolateHSV)
	third, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	if first == third {
		t.Fatal("expected a fresh table after an edit")
	}
	for i := range first.Len() {
		a, b := first.At(i), third.At(i)
		if math.Float64bits(a.R) != math.Float64bits(b.R) ||
			math.Float64bits(a.G) != math.Float64bits(b.G) ||
			math.Float64bits(a.B) != math.Float64bits(b.B) ||
			math.Float64bits(a.A) != math.Float64bits(b.A) {
			t.Fatalf("entry %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestComputeLUTInsufficientPoints(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		alphas int
	}{
		{"empty", 0, 0},
		{"one color", 1, 2},
		{"one opacity", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := NewTransferFunction()
			idx := []int{0, 255}
			for i := range tt.colors {
				if err := tf.SetColor(idx[i], White); err != nil {
					t.Fatal(err)
				}
			}
			for i := range tt.alphas {
				if err := tf.SetOpacity(idx[i], 1); err != nil {
					t.Fatal(err)
				}
			}

			lut, err := tf.ComputeLUT()
			if !errors.Is(err, ErrInsufficientControlPoints) {
				t.Fatalf("ComputeLUT() error = %v, want ErrInsufficientControlPoints", err)
			}
			if lut != nil {
				t.Errorf("ComputeLUT() = %v, want nil table when none was computed", lut)
			}
			if !tf.Stale() {
				t.Error("transfer function should remain stale")
			}
		})
	}
}

func TestComputeLUTInsufficientKeepsPrevious(t *testing.T) {
	tf := newRamp(t, Black, White, 0, 1, InterpolateRGB)
	prev, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}

	if !tf.RemoveColor(255) {
		t.Fatal("RemoveColor(255) = false, want true")
	}
	got, err := tf.ComputeLUT()
	if !errors.Is(err, ErrInsufficientControlPoints) {
		t.Fatalf("error = %v, want ErrInsufficientControlPoints", err)
	}
	if got != prev {
		t.Error("previous table should be returned unchanged")
	}
	if lut, current := tf.Current(); lut != prev || current {
		t.Errorf("Current() = (%p, %v), want (%p, false)", lut, current, prev)
	}
}

func TestSetPointValidation(t *testing.T) {
	tf := NewTransferFunction()

	tests := []struct {
		name string
		err  error
	}{
		{"color negative index", tf.SetColor(-1, Red)},
		{"color index at resolution", tf.SetColor(256, Red)},
		{"color component", tf.SetColor(3, RGB{R: 1.5})},
		{"opacity negative index", tf.SetOpacity(-1, 0.5)},
		{"opacity index at resolution", tf.SetOpacity(256, 0.5)},
		{"opacity value", tf.SetOpacity(3, -0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrInvalidRange) {
				t.Errorf("error = %v, want ErrInvalidRange", tt.err)
			}
		})
	}
	if n := len(tf.ColorPoints()) + len(tf.OpacityPoints()); n != 0 {
		t.Errorf("rejected edits stored %d points", n)
	}
}

func TestSetColorReplaces(t *testing.T) {
	tf := NewTransferFunction()
	for _, err := range []error{
		tf.SetColor(200, Red),
		tf.SetColor(10, Green),
		tf.SetColor(200, Blue),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	pts := tf.ColorPoints()
	want := []ColorPoint{{10, Green}, {200, Blue}}
	if len(pts) != len(want) {
		t.Fatalf("ColorPoints() = %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("ColorPoints()[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestEditsMarkStale(t *testing.T) {
	edits := []struct {
		name string
		edit func(tf *TransferFunction)
	}{
		{"color", func(tf *TransferFunction) { _ = tf.SetColor(7, White) }},
		{"opacity", func(tf *TransferFunction) { _ = tf.SetOpacity(7, 0.3) }},
		{"mode", func(tf *TransferFunction) { tf.SetInterpolationMode(InterpolateRGB) }},
		{"resolution", func(tf *TransferFunction) { _ = tf.SetResolution(512) }},
		{"remove", func(tf *TransferFunction) { tf.RemoveOpacity(0) }},
	}

	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			tf := DefaultTransferFunction()
			if _, err := tf.ComputeLUT(); err != nil {
				t.Fatal(err)
			}
			if tf.Stale() {
				t.Fatal("fresh table should not be stale")
			}
			tt.edit(tf)
			if !tf.Stale() {
				t.Error("edit should mark the table stale")
			}
		})
	}
}

func TestSetResolution(t *testing.T) {
	tf := NewTransferFunction()
	if err := tf.SetResolution(1); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("SetResolution(1) = %v, want ErrInvalidResolution", err)
	}
	if err := tf.SetColor(200, Red); err != nil {
		t.Fatal(err)
	}
	if err := tf.SetResolution(128); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("SetResolution(128) = %v, want ErrInvalidRange", err)
	}
	if tf.Resolution() != DefaultResolution {
		t.Errorf("Resolution() = %d after failed change", tf.Resolution())
	}

	if err := tf.SetResolution(1024); err != nil {
		t.Fatal(err)
	}
	for _, err := range []error{
		tf.SetColor(0, Black),
		tf.SetColor(1023, White),
		tf.SetOpacity(0, 0),
		tf.SetOpacity(1023, 1),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	if lut.Len() != 1024 {
		t.Errorf("Len() = %d, want 1024", lut.Len())
	}
	if got := lut.Lookup(255); got.A != 1 {
		t.Errorf("Lookup(255).A = %v, want 1", got.A)
	}
}

func TestSetColorMapRejectsWhole(t *testing.T) {
	tf := DefaultTransferFunction()
	err := tf.SetColorMap([]ColorPoint{{0, Red}, {300, Green}})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("SetColorMap() = %v, want ErrInvalidRange", err)
	}
	if pts := tf.ColorPoints(); len(pts) != 2 || pts[0].Color != Blue {
		t.Errorf("failed SetColorMap changed points: %v", pts)
	}

	if err := tf.SetOpacityMap([]OpacityPoint{{255, 0.5}, {0, 0.2}, {0, 0.1}}); err != nil {
		t.Fatal(err)
	}
	got := tf.OpacityPoints()
	want := []OpacityPoint{{0, 0.1}, {255, 0.5}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("OpacityPoints() = %v, want %v", got, want)
	}
}

func TestDefaultTransferFunction(t *testing.T) {
	tf := DefaultTransferFunction()
	if tf.InterpolationMode() != InterpolateHSV {
		t.Errorf("mode = %v, want hsv", tf.InterpolationMode())
	}
	lut, err := tf.ComputeLUT()
	if err != nil {
		t.Fatal(err)
	}
	if got := lut.At(0); got != (RGBA{0, 0, 1, 0.01}) {
		t.Errorf("LUT[0] = %+v", got)
	}
	if got := lut.At(255); got != (RGBA{1, 0, 0, 1}) {
		t.Errorf("LUT[255] = %+v", got)
	}
}

// TestComputeLUTPublishAtomic checks that readers only ever observe a
// complete table while a writer keeps rebuilding it.
func TestComputeLUTPublishAtomic(t *testing.T) {
	tf := newRamp(t, Red, Red, 1, 1, InterpolateRGB)
	if _, err := tf.ComputeLUT(); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				lut := tf.LUT()
				first := lut.At(0)
				for i := 1; i < lut.Len(); i++ {
					if lut.At(i) != first {
						t.Errorf("torn table: entry %d = %+v, entry 0 = %+v", i, lut.At(i), first)
						return
					}
				}
			}
		}()
	}

	colors := []RGB{Green, Blue, Red}
	for i := range 200 {
		c := colors[i%len(colors)]
		_ = tf.SetColor(0, c)
		_ = tf.SetColor(255, c)
		if _, err := tf.ComputeLUT(); err != nil {
			t.Error(err)
		}
	}
	close(done)
	wg.Wait()
}

func BenchmarkComputeLUT(b *testing.B) {
	tf := DefaultTransferFunction()
	b.ReportAllocs()
	for b.Loop() {
		tf.SetInterpolationMode(InterpolateHSV)
		_, _ = tf.ComputeLUT()
	}
}
