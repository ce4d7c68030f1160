// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"time"

	"github.com/gogpu/volume/internal/cache"
	"github.com/gogpu/volume/internal/parallel"
)

const defaultClassifierCache = 4

// Classifier turns scalar fields into 8-bit intensity volumes.
//
// Each voxel is transformed, clamped to the active range, normalized and
// quantized by truncation independently of every other voxel, so the work
// is split across goroutines with no synchronization inside the loop.
// Results are memoized by their inputs; fields are treated as immutable, so
// a field whose samples change must be wrapped in a new ScalarField.
//
// Thread safety: a Classifier is safe for concurrent use.
type Classifier struct {
	opts  classifierOptions
	pool  *parallel.WorkerPool
	cache *cache.Cache[classifyKey, *ClassifiedVolume]
}

type classifyKey struct {
	field, secondary *ScalarField
	fn               ScalarFunction
	rng              Range
}

// NewClassifier creates a classifier.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	o := defaultClassifierOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Classifier{opts: o, pool: o.newPool()}
	if o.cacheSize > 0 {
		c.cache = cache.New[classifyKey, *ClassifiedVolume](o.cacheSize)
	}
	return c
}

// Close releases the worker pool, if any. The classifier keeps working on
// the calling goroutine afterwards.
func (c *Classifier) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Classify maps every sample of field to an intensity:
//
//	v = clamp(fn(field[i], secondary[i]), rng.Min, rng.Max)
//	intensity = floor((v - rng.Min) / (rng.Max - rng.Min) * 255)
//
// secondary may be nil, in which case 1.0 is used for every voxel.
// It fails with ErrInvalidRange unless rng.Max > rng.Min and with
// ErrDimensionMismatch if secondary has a different shape; nothing is
// computed in either case. Intensities of voxels whose transformed value is
// NaN are unspecified.
func (c *Classifier) Classify(field, secondary *ScalarField, fn ScalarFunction, rng Range) (*ClassifiedVolume, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidDimensions)
	}
	if secondary != nil && secondary.Dims() != field.Dims() {
		return nil, fmt.Errorf("%w: secondary %v, field %v", ErrDimensionMismatch, secondary.Dims(), field.Dims())
	}
	if !rng.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, rng)
	}

	key := classifyKey{field: field, secondary: secondary, fn: fn, rng: rng}
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			Logger().Debug("volume: classification cache hit", "dims", field.Dims(), "fn", fn, "range", rng)
			return v, nil
		}
	}

	start := time.Now()
	out := &ClassifiedVolume{
		dims: field.Dims(),
		data: make([]uint8, field.Len()),
		rng:  rng,
		fn:   fn,
	}
	kernel := classifyKernel(out.data, field, secondary, fn, rng)
	if c.pool != nil {
		c.pool.ForRange(0, field.Len(), kernel)
	} else {
		parallel.ForRange(0, field.Len(), c.opts.workers, kernel)
	}

	if c.cache != nil {
		c.cache.Set(key, out)
	}
	Logger().Debug("volume: classified",
		"dims", field.Dims(),
		"fn", fn,
		"range", rng,
		"elapsed", time.Since(start))
	return out, nil
}

// ClassifyAuto is like Classify but resolves rng first: a zero range
// (Min == Max) is replaced by DeriveRange.
func (c *Classifier) ClassifyAuto(field, secondary *ScalarField, fn ScalarFunction, rng Range) (*ClassifiedVolume, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidDimensions)
	}
	r, err := ResolveRange(rng, fn, field, secondary)
	if err != nil {
		return nil, err
	}
	return c.Classify(field, secondary, fn, r)
}

// Invalidate drops every memoized volume computed from field, either as the
// primary or the secondary input.
func (c *Classifier) Invalidate(field *ScalarField) {
	if c.cache == nil {
		return
	}
	c.cache.DeleteFunc(func(k classifyKey) bool {
		return k.field == field || k.secondary == field
	})
}

// Purge drops every memoized volume.
func (c *Classifier) Purge() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// ClassifierStats reports the classifier's memoization counters.
type ClassifierStats struct {
	Cached    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the memoization counters. They stay zero
// when caching is disabled.
func (c *Classifier) Stats() ClassifierStats {
	if c.cache == nil {
		return ClassifierStats{}
	}
	s := c.cache.Stats()
	return ClassifierStats{Cached: s.Len, Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions}
}

// Classify classifies field with a one-off classifier using GOMAXPROCS
// goroutines and no cache. See Classifier.Classify.
func Classify(field, secondary *ScalarField, fn ScalarFunction, rng Range) (*ClassifiedVolume, error) {
	return NewClassifier(WithCacheSize(0)).Classify(field, secondary, fn, rng)
}

// classifyKernel returns the loop body over voxels [lo, hi).
func classifyKernel(dst []uint8, field, secondary *ScalarField, fn ScalarFunction, rng Range) func(lo, hi int) {
	src := field.values
	var sec []float64
	if secondary != nil {
		sec = secondary.values
	}
	span := rng.Max - rng.Min

	return func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s := 1.0
			if sec != nil {
				s = sec[i]
			}
			v := fn.Apply(src[i], s)
			v = min(max(v, rng.Min), rng.Max)
			dst[i] = uint8((v - rng.Min) / span * 255)
		}
	}
}
