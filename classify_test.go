// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestClassifyEndpointsAndClamp(t *testing.T) {
	values := []float64{0, 100, -50, 250, 50, 25}
	f := mustField(t, Dims{6, 1, 1}, values, -50, 250)

	v, err := Classify(f, nil, Identity, Range{Min: 0, Max: 100})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 255, 0, 255, 127, 63}
	for i, w := range want {
		if got := v.Data()[i]; got != w {
			t.Errorf("voxel %d (%v) = %d, want %d", i, values[i], got, w)
		}
	}
}

func TestClassifyScalarFunctions(t *testing.T) {
	dims := Dims{2, 1, 1}
	tests := []struct {
		name      string
		fn        ScalarFunction
		values    []float64
		secondary []float64
		rng       Range
		want      []uint8
	}{
		{"abs", AbsoluteValue, []float64{-5, 5}, nil, Range{0, 10}, []uint8{127, 127}},
		{"multiply", ScalarMultiply, []float64{2, 1}, []float64{3, 3}, Range{0, 6}, []uint8{255, 127}},
		{"multiply no secondary", ScalarMultiply, []float64{2, 1}, nil, Range{0, 4}, []uint8{127, 63}},
		{"log10", Log10, []float64{10, 1000}, nil, Range{0, 4}, []uint8{63, 191}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustField(t, dims, tt.values, 0, 0)
			var sec *ScalarField
			if tt.secondary != nil {
				sec = mustField(t, dims, tt.secondary, 0, 0)
			}
			v, err := Classify(f, sec, tt.fn, tt.rng)
			if err != nil {
				t.Fatal(err)
			}
			for i, w := range tt.want {
				if got := v.Data()[i]; got != w {
					t.Errorf("voxel %d = %d, want %d", i, got, w)
				}
			}
		})
	}
}

func TestClassifyPreconditions(t *testing.T) {
	f := mustField(t, Dims{2, 2, 1}, make([]float64, 4), 0, 1)
	other := mustField(t, Dims{4, 1, 1}, make([]float64, 4), 0, 1)

	tests := []struct {
		name      string
		secondary *ScalarField
		rng       Range
		want      error
	}{
		{"max equals min", nil, Range{1, 1}, ErrInvalidRange},
		{"max below min", nil, Range{2, 1}, ErrInvalidRange},
		{"shape mismatch", other, Range{0, 1}, ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Classify(f, tt.secondary, ScalarMultiply, tt.rng)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if v != nil {
				t.Error("no volume should be produced")
			}
		})
	}

	if _, err := Classify(nil, nil, Identity, Range{0, 1}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("nil field: %v, want ErrInvalidDimensions", err)
	}
}

// TestClassifyMatchesSequential compares parallel classification with a
// straightforward loop over a random field.
func TestClassifyMatchesSequential(t *testing.T) {
	dims := Dims{17, 13, 11}
	rnd := rand.New(rand.NewPCG(1, 2))
	values := make([]float64, dims.Len())
	secondary := make([]float64, dims.Len())
	for i := range values {
		values[i] = rnd.Float64()*200 - 100
		secondary[i] = rnd.Float64() * 2
	}
	f := mustField(t, dims, values, -100, 100)
	s := mustField(t, dims, secondary, 0, 2)
	rng := Range{Min: -80, Max: 120}

	tests := []struct {
		name string
		c    *Classifier
	}{
		{"goroutines", NewClassifier(WithWorkers(5))},
		{"pool", NewClassifier(WithWorkers(3), WithPool())},
		{"single", NewClassifier(WithWorkers(1), WithCacheSize(0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.c.Close()
			v, err := tt.c.Classify(f, s, ScalarMultiply, rng)
			if err != nil {
				t.Fatal(err)
			}
			for i := range values {
				want := rng.Quantize(values[i] * secondary[i])
				if v.Data()[i] != want {
					t.Fatalf("voxel %d = %d, want %d", i, v.Data()[i], want)
				}
			}
		})
	}
}

func TestClassifierCache(t *testing.T) {
	f := mustField(t, Dims{4, 4, 4}, make([]float64, 64), 0, 1)
	c := NewClassifier(WithCacheSize(2))
	defer c.Close()

	a, err := c.Classify(f, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Classify(f, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical inputs should hit the cache")
	}

	d, err := c.Classify(f, nil, Identity, Range{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d == a {
		t.Error("a different range must be recomputed")
	}

	c.Invalidate(f)
	e, err := c.Classify(f, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if e == a {
		t.Error("Invalidate should drop volumes computed from the field")
	}

	want := ClassifierStats{Cached: 1, Hits: 1, Misses: 3}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	c.Purge()
	if got := c.Stats().Cached; got != 0 {
		t.Errorf("Cached after Purge = %d, want 0", got)
	}
	if got := NewClassifier(WithCacheSize(0)).Stats(); got != (ClassifierStats{}) {
		t.Errorf("uncached Stats() = %+v, want zero", got)
	}
}

// TestClassifierCacheIgnoresCallerWrites checks that editing the slice a
// field was built from, or the slice returned by Values, cannot make a
// cached volume disagree with its field.
func TestClassifierCacheIgnoresCallerWrites(t *testing.T) {
	vals := []float64{0, 0.5, 1}
	f := mustField(t, Dims{3, 1, 1}, vals, 0, 1)
	c := NewClassifier()
	defer c.Close()

	a, err := c.Classify(f, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	vals[0] = 1
	f.Values()[1] = 1

	b, err := c.Classify(f, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(0, 0, 0); got != 0 {
		t.Errorf("field sample changed to %v by a write to the input slice", got)
	}
	if got := f.At(1, 0, 0); got != 0.5 {
		t.Errorf("field sample changed to %v by a write to Values()", got)
	}
	want := []uint8{0, 127, 255}
	for i, w := range want {
		if b.Data()[i] != w {
			t.Errorf("voxel %d = %d, want %d", i, b.Data()[i], w)
		}
	}
	if a != b {
		t.Error("an unchanged field should still hit the cache")
	}

	// A new field built from the edited slice is classified afresh.
	g := mustField(t, Dims{3, 1, 1}, vals, 0, 1)
	d, err := c.Classify(g, nil, Identity, Range{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if d.Data()[0] != 255 {
		t.Errorf("edited field voxel 0 = %d, want 255", d.Data()[0])
	}
}

func TestClassifyAuto(t *testing.T) {
	f := mustField(t, Dims{3, 1, 1}, []float64{2, 4, 6}, 2, 6)
	c := NewClassifier()
	defer c.Close()

	v, err := c.ClassifyAuto(f, nil, Identity, Range{})
	if err != nil {
		t.Fatal(err)
	}
	if v.Range() != (Range{2, 6}) {
		t.Errorf("Range() = %v, want [2, 6]", v.Range())
	}
	want := []uint8{0, 127, 255}
	for i, w := range want {
		if v.Data()[i] != w {
			t.Errorf("voxel %d = %d, want %d", i, v.Data()[i], w)
		}
	}

	if _, err := c.ClassifyAuto(f, nil, Identity, Range{6, 2}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted explicit range: %v, want ErrInvalidRange", err)
	}
}

func BenchmarkClassify(b *testing.B) {
	dims := Dims{128, 128, 128}
	values := make([]float64, dims.Len())
	for i := range values {
		values[i] = float64(i % 1000)
	}
	f := mustField(b, dims, values, 0, 999)
	c := NewClassifier(WithCacheSize(0))
	defer c.Close()

	b.SetBytes(int64(len(values)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Classify(f, nil, Log10, Range{0, 3}); err != nil {
			b.Fatal(err)
		}
	}
}
