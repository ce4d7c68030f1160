// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"github.com/gogpu/volume/internal/parallel"
)

// ClassifierOption configures a Classifier during creation.
//
// Example:
//
//	// Default: GOMAXPROCS goroutines per call, small result cache
//	c := volume.NewClassifier()
//
//	// Shared worker pool, no caching
//	c := volume.NewClassifier(volume.WithWorkers(4), volume.WithCacheSize(0))
type ClassifierOption func(*classifierOptions)

type classifierOptions struct {
	workers   int
	pool      bool
	cacheSize int
}

func defaultClassifierOptions() classifierOptions {
	return classifierOptions{
		workers:   0, // GOMAXPROCS
		cacheSize: defaultClassifierCache,
	}
}

// WithWorkers sets the number of goroutines used to classify a field.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) ClassifierOption {
	return func(o *classifierOptions) {
		o.workers = n
	}
}

// WithPool makes the classifier keep a persistent worker pool instead of
// spawning goroutines per call. Call Classifier.Close to release it.
func WithPool() ClassifierOption {
	return func(o *classifierOptions) {
		o.pool = true
	}
}

// WithCacheSize sets how many classified volumes are memoized by input.
// Zero disables caching.
func WithCacheSize(n int) ClassifierOption {
	return func(o *classifierOptions) {
		o.cacheSize = max(n, 0)
	}
}

// MarchOption configures a Marcher.
//
// Example:
//
//	m := volume.NewMarcher(volume.WithStepSize(0.005), volume.WithMode(volume.BackToFront))
type MarchOption func(*marchOptions)

type marchOptions struct {
	step      float64
	maxSteps  int
	mode      CompositingMode
	filter    Filter
	earlyStop float64
}

func defaultMarchOptions() marchOptions {
	return marchOptions{
		step:      DefaultStepSize,
		maxSteps:  DefaultMaxSteps,
		mode:      FrontToBack,
		filter:    FilterNearest,
		earlyStop: DefaultEarlyTermination,
	}
}

// WithStepSize sets the distance between samples in unit-cube coordinates.
// Non-positive values are ignored.
func WithStepSize(step float64) MarchOption {
	return func(o *marchOptions) {
		if step > 0 {
			o.step = step
		}
	}
}

// WithMaxSteps bounds the number of samples per ray. Non-positive values
// are ignored.
func WithMaxSteps(n int) MarchOption {
	return func(o *marchOptions) {
		if n > 0 {
			o.maxSteps = n
		}
	}
}

// WithMode selects the accumulation order.
func WithMode(mode CompositingMode) MarchOption {
	return func(o *marchOptions) {
		o.mode = mode
	}
}

// WithFilter selects how the classified volume and table are sampled.
func WithFilter(f Filter) MarchOption {
	return func(o *marchOptions) {
		o.filter = f
	}
}

// WithEarlyTermination sets the accumulated alpha at which front-to-back
// rays stop. A value above 1 disables early termination. It has no effect
// on back-to-front rays.
func WithEarlyTermination(alpha float64) MarchOption {
	return func(o *marchOptions) {
		o.earlyStop = alpha
	}
}

func (o classifierOptions) newPool() *parallel.WorkerPool {
	if !o.pool {
		return nil
	}
	return parallel.NewWorkerPool(o.workers)
}
