// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"errors"
	"math"
	"testing"
)

func TestNewClassifiedVolumeValidation(t *testing.T) {
	if _, err := NewClassifiedVolume(Dims{2, 2, 2}, make([]uint8, 7)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("short data error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewClassifiedVolume(Dims{0, 1, 1}, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero dims error = %v, want ErrInvalidDimensions", err)
	}
}

func TestClassifiedVolumeSampling(t *testing.T) {
	vol, err := NewClassifiedVolume(Dims{2, 1, 1}, []uint8{0, 200})
	if err != nil {
		t.Fatal(err)
	}

	nearest := []struct {
		x    float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0},
		{0.49, 0},
		{0.5, 200},
		{1, 200},
		{2, 200},
	}
	for _, tt := range nearest {
		if got := vol.Nearest(tt.x, 0.5, 0.5); got != tt.want {
			t.Errorf("Nearest(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}

	linear := []struct {
		x    float64
		want float64
	}{
		{0, 0},
		{0.25, 0},
		{0.375, 50},
		{0.5, 100},
		{0.75, 200},
		{1, 200},
	}
	for _, tt := range linear {
		if got := vol.Linear(tt.x, 0.5, 0.5); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Linear(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestClassifiedVolumeSliceAndHistogram(t *testing.T) {
	data := []uint8{0, 1, 2, 3, 4, 5, 6, 7}
	vol, err := NewClassifiedVolume(Dims{2, 2, 2}, data)
	if err != nil {
		t.Fatal(err)
	}
	if vol.At(1, 1, 1) != 7 || vol.At(1, 0, 1) != 5 {
		t.Errorf("At = %d, %d, want 7, 5", vol.At(1, 1, 1), vol.At(1, 0, 1))
	}

	img := vol.SliceZ(1)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("slice bounds = %v", img.Bounds())
	}
	for y := range 2 {
		for x := range 2 {
			if got, want := img.GrayAt(x, y).Y, uint8(4+x+2*y); got != want {
				t.Errorf("slice (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}

	h := vol.Histogram()
	for i := range 8 {
		if h[i] != 1 {
			t.Errorf("histogram[%d] = %d, want 1", i, h[i])
		}
	}
	if h[8] != 0 {
		t.Errorf("histogram[8] = %d, want 0", h[8])
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"nearest", FilterNearest, true},
		{"linear", FilterLinear, true},
		{"trilinear", FilterLinear, true},
		{"cubic", FilterNearest, false},
	}
	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFilter(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
		if ok && got.String() != "nearest" && got.String() != "linear" {
			t.Errorf("String() = %q", got.String())
		}
	}
}
