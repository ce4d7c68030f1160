// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/volume/internal/parallel"
)

// RenderStats counts how the rays of a frame terminated.
type RenderStats struct {
	Rays      int
	Missed    int
	Exited    int
	Capped    int
	Saturated int
	Samples   int64
}

// Renderer casts one ray per pixel through a camera into a classified
// volume placed in a world-space bounding box.
//
// Front-to-back rays start where the view ray enters the box and travel
// away from the eye. Back-to-front rays start where it leaves the box and
// travel toward the eye. Rows are rendered in parallel.
type Renderer struct {
	marcher *Marcher
	workers int
}

// NewRenderer creates a renderer using m for every ray. workers limits the
// goroutines used per frame; zero or negative means GOMAXPROCS.
func NewRenderer(m *Marcher, workers int) *Renderer {
	if m == nil {
		m = NewMarcher()
	}
	return &Renderer{marcher: m, workers: workers}
}

// Marcher returns the marcher used for every ray.
func (r *Renderer) Marcher() *Marcher { return r.marcher }

// Render draws vol colored by lut into a width x height frame.
func (r *Renderer) Render(vol *ClassifiedVolume, lut *LUT, cam Camera, box BoundingBox, width, height int) (*Frame, RenderStats, error) {
	var stats RenderStats
	if lut == nil || lut.Len() == 0 {
		return nil, stats, ErrNoLUT
	}
	if vol == nil {
		return nil, stats, fmt.Errorf("%w: nil volume", ErrInvalidDimensions)
	}
	if width <= 0 || height <= 0 {
		return nil, stats, fmt.Errorf("%w: frame %dx%d", ErrInvalidDimensions, width, height)
	}
	if !box.Valid() {
		return nil, stats, fmt.Errorf("%w: bounding box %v", ErrInvalidDimensions, box)
	}

	start := time.Now()
	frame := NewFrame(width, height)
	rays := cam.Rays(width, height)

	var missed, exited, capped, saturated atomic.Int64
	var samples atomic.Int64
	parallel.ForRange(0, height, r.workers, func(lo, hi int) {
		var m, e, c, s, n int64
		for y := lo; y < hi; y++ {
			for x := range width {
				res, hit := r.cast(vol, lut, box, rays(x, y))
				if !hit {
					m++
					continue
				}
				n += int64(res.Steps)
				switch res.State {
				case ExitedVolume:
					e++
				case StepCap:
					c++
				case AlphaSaturated:
					s++
				}
				frame.Set(x, y, res.Color)
			}
		}
		missed.Add(m)
		exited.Add(e)
		capped.Add(c)
		saturated.Add(s)
		samples.Add(n)
	})

	stats = RenderStats{
		Rays:      width * height,
		Missed:    int(missed.Load()),
		Exited:    int(exited.Load()),
		Capped:    int(capped.Load()),
		Saturated: int(saturated.Load()),
		Samples:   samples.Load(),
	}
	Logger().Debug("volume: frame rendered",
		"size", fmt.Sprintf("%dx%d", width, height),
		"mode", r.marcher.Mode(),
		"samples", stats.Samples,
		"elapsed", time.Since(start))
	return frame, stats, nil
}

// cast marches a world-space ray. hit is false when the ray misses the box.
func (r *Renderer) cast(vol *ClassifiedVolume, lut *LUT, box BoundingBox, ray Ray) (Sample, bool) {
	tNear, tFar, ok := box.Intersect(ray.Origin, ray.Dir)
	if !ok {
		return Sample{}, false
	}
	dir := box.ToUnitDir(ray.Dir).Normalize()
	var unit Ray
	if r.marcher.Mode() == BackToFront {
		unit = Ray{Origin: clampUnit(box.ToUnit(ray.At(tFar))), Dir: dir.Neg()}
	} else {
		unit = Ray{Origin: clampUnit(box.ToUnit(ray.At(tNear))), Dir: dir}
	}
	return r.marcher.March(vol, lut, unit), true
}

// clampUnit removes rounding error from points on the cube surface.
func clampUnit(p Vec3) Vec3 {
	for i := range p {
		p[i] = min(max(p[i], 0), 1)
	}
	return p
}
