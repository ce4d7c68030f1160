// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"sync"
	"sync/atomic"

	icolor "github.com/gogpu/volume/internal/color"
)

// TransferFunction maps classified intensities to color and opacity.
//
// It holds two independent sparse sets of control points, one for color and
// one for opacity, and derives a dense lookup table from them. Every edit
// marks the table stale; ComputeLUT rebuilds it into a fresh buffer and
// publishes it atomically, so readers holding the previous *LUT are never
// affected by a rebuild.
//
// Thread safety: all methods are safe for concurrent use. Edits are
// serialized; LUT and Current never block.
type TransferFunction struct {
	mu         sync.Mutex
	name       string
	resolution int
	mode       InterpolationMode
	colors     pointMap[RGB]
	opacities  pointMap[float64]
	stale      bool

	lut atomic.Pointer[LUT]
}

// NewTransferFunction creates an empty transfer function with
// DefaultResolution entries and RGB interpolation. Its table is stale until
// at least two color and two opacity points exist and ComputeLUT runs.
func NewTransferFunction() *TransferFunction {
	return &TransferFunction{
		resolution: DefaultResolution,
		mode:       InterpolateRGB,
		stale:      true,
	}
}

// DefaultTransferFunction returns the blue-to-red ramp used for freshly
// opened volumes: colors blue at 0 and red at 255, opacity 0.01 at 0 and
// 1.0 at 255, interpolated in HSV.
func DefaultTransferFunction() *TransferFunction {
	tf := NewTransferFunction()
	tf.name = "default"
	tf.mode = InterpolateHSV
	tf.colors.set(0, Blue)
	tf.colors.set(DefaultResolution-1, Red)
	tf.opacities.set(0, 0.01)
	tf.opacities.set(DefaultResolution-1, 1.0)
	return tf
}

// Name returns the display name of the transfer function.
func (tf *TransferFunction) Name() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.name
}

// SetName sets the display name. It does not affect the table.
func (tf *TransferFunction) SetName(name string) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.name = name
}

// Resolution returns the configured number of table entries.
func (tf *TransferFunction) Resolution() int {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.resolution
}

// SetResolution changes the number of table entries. It fails with
// ErrInvalidResolution for n < 2 and with ErrInvalidRange if an existing
// control point would fall outside [0, n).
func (tf *TransferFunction) SetResolution(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: %d entries", ErrInvalidResolution, n)
	}

	tf.mu.Lock()
	defer tf.mu.Unlock()

	if hi := max(tf.colors.maxIndex(), tf.opacities.maxIndex()); hi >= n {
		return fmt.Errorf("%w: control point %d outside resolution %d", ErrInvalidRange, hi, n)
	}
	if n != tf.resolution {
		tf.resolution = n
		tf.stale = true
	}
	return nil
}

// InterpolationMode returns the color interpolation mode.
func (tf *TransferFunction) InterpolationMode() InterpolationMode {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.mode
}

// SetInterpolationMode selects the color interpolation mode and marks the
// table stale.
func (tf *TransferFunction) SetInterpolationMode(mode InterpolationMode) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.mode = mode
	tf.stale = true
}

// SetColor inserts or replaces the color control point at index.
// index must lie in [0, Resolution()) and every component in [0, 1],
// otherwise ErrInvalidRange is returned and nothing changes.
func (tf *TransferFunction) SetColor(index int, c RGB) error {
	if !c.valid() {
		return fmt.Errorf("%w: color %v outside [0,1]", ErrInvalidRange, c)
	}

	tf.mu.Lock()
	defer tf.mu.Unlock()

	if err := tf.checkIndex(index); err != nil {
		return err
	}
	tf.colors.set(index, c)
	tf.stale = true
	return nil
}

// SetOpacity inserts or replaces the opacity control point at index.
// index must lie in [0, Resolution()) and a in [0, 1], otherwise
// ErrInvalidRange is returned and nothing changes.
func (tf *TransferFunction) SetOpacity(index int, a float64) error {
	if !in01(a) {
		return fmt.Errorf("%w: opacity %v outside [0,1]", ErrInvalidRange, a)
	}

	tf.mu.Lock()
	defer tf.mu.Unlock()

	if err := tf.checkIndex(index); err != nil {
		return err
	}
	tf.opacities.set(index, a)
	tf.stale = true
	return nil
}

// RemoveColor deletes the color control point at index and reports whether
// it existed.
func (tf *TransferFunction) RemoveColor(index int) bool {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	if !tf.colors.remove(index) {
		return false
	}
	tf.stale = true
	return true
}

// RemoveOpacity deletes the opacity control point at index and reports
// whether it existed.
func (tf *TransferFunction) RemoveOpacity(index int) bool {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	if !tf.opacities.remove(index) {
		return false
	}
	tf.stale = true
	return true
}

// SetColorMap replaces every color control point. The whole map is rejected
// if any point is invalid. Duplicate indices keep the last color.
func (tf *TransferFunction) SetColorMap(points []ColorPoint) error {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	for _, p := range points {
		if err := tf.checkIndex(p.Index); err != nil {
			return err
		}
		if !p.Color.valid() {
			return fmt.Errorf("%w: color %v outside [0,1]", ErrInvalidRange, p.Color)
		}
	}
	tf.colors.reset()
	for _, p := range points {
		tf.colors.set(p.Index, p.Color)
	}
	tf.stale = true
	return nil
}

// SetOpacityMap replaces every opacity control point. The whole map is
// rejected if any point is invalid. Duplicate indices keep the last value.
func (tf *TransferFunction) SetOpacityMap(points []OpacityPoint) error {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	for _, p := range points {
		if err := tf.checkIndex(p.Index); err != nil {
			return err
		}
		if !in01(p.Opacity) {
			return fmt.Errorf("%w: opacity %v outside [0,1]", ErrInvalidRange, p.Opacity)
		}
	}
	tf.opacities.reset()
	for _, p := range points {
		tf.opacities.set(p.Index, p.Opacity)
	}
	tf.stale = true
	return nil
}

// ColorPoints returns the color control points in ascending index order.
func (tf *TransferFunction) ColorPoints() []ColorPoint {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	out := make([]ColorPoint, len(tf.colors.pts))
	for i, p := range tf.colors.pts {
		out[i] = ColorPoint{Index: p.index, Color: p.value}
	}
	return out
}

// OpacityPoints returns the opacity control points in ascending index order.
func (tf *TransferFunction) OpacityPoints() []OpacityPoint {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	out := make([]OpacityPoint, len(tf.opacities.pts))
	for i, p := range tf.opacities.pts {
		out[i] = OpacityPoint{Index: p.index, Opacity: p.value}
	}
	return out
}

// Color returns the color control point at index, if any.
func (tf *TransferFunction) Color(index int) (RGB, bool) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.colors.get(index)
}

// Opacity returns the opacity control point at index, if any.
func (tf *TransferFunction) Opacity(index int) (float64, bool) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.opacities.get(index)
}

// Stale reports whether edits have been made since the last successful
// ComputeLUT, or no table was ever computed.
func (tf *TransferFunction) Stale() bool {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.stale
}

// LUT returns the most recently published table, which may be stale, or nil
// if none was ever computed. It never blocks on concurrent edits.
func (tf *TransferFunction) LUT() *LUT {
	return tf.lut.Load()
}

// Current returns the published table and whether it reflects the current
// control points.
func (tf *TransferFunction) Current() (*LUT, bool) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.lut.Load(), !tf.stale
}

// ComputeLUT rebuilds the lookup table if it is stale and returns it.
//
// With fewer than two color points or fewer than two opacity points nothing
// is computed: the previously published table (possibly nil) is returned
// together with ErrInsufficientControlPoints, and the function stays stale.
//
// Otherwise color points are walked in ascending index order and every
// entry between each adjacent pair is interpolated in the configured mode
// with alpha 1; entries below the first color point are black. Opacity
// pairs are then interpolated linearly into the alpha channel of entries in
// [0, last], where last is the highest color index; opacity entries above it
// are skipped and those entries stay transparent black. Calling ComputeLUT
// again without edits returns the same table.
func (tf *TransferFunction) ComputeLUT() (*LUT, error) {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	if cur := tf.lut.Load(); cur != nil && !tf.stale {
		return cur, nil
	}

	if tf.colors.len() < 2 || tf.opacities.len() < 2 {
		Logger().Warn("volume: transfer function not computed",
			"name", tf.name,
			"colors", tf.colors.len(),
			"opacities", tf.opacities.len())
		return tf.lut.Load(), fmt.Errorf("%w: %d color and %d opacity points",
			ErrInsufficientControlPoints, tf.colors.len(), tf.opacities.len())
	}

	lut := &LUT{entries: buildEntries(tf.resolution, tf.mode, tf.colors.pts, tf.opacities.pts)}
	tf.lut.Store(lut)
	tf.stale = false

	Logger().Debug("volume: lookup table rebuilt",
		"name", tf.name,
		"resolution", tf.resolution,
		"mode", tf.mode.String())
	return lut, nil
}

// buildEntries interpolates sorted control points into a fresh table.
func buildEntries(resolution int, mode InterpolationMode, colors []point[RGB], opacities []point[float64]) []RGBA {
	entries := make([]RGBA, resolution)
	space := mode.space()

	for k := 0; k+1 < len(colors); k++ {
		i0, c0 := colors[k].index, colors[k].value.internal()
		i1, c1 := colors[k+1].index, colors[k+1].value.internal()
		for i := i0; i <= i1; i++ {
			c := icolor.Interpolate(space, c0, c1, param(i, i0, i1))
			entries[i] = fromInternal(c).WithAlpha(1)
		}
	}

	// Alpha covers every index up to the last color point, including the
	// black entries below the first one.
	hi := colors[len(colors)-1].index
	for k := 0; k+1 < len(opacities); k++ {
		i0, a0 := opacities[k].index, opacities[k].value
		i1, a1 := opacities[k+1].index, opacities[k+1].value
		for i := i0; i <= min(i1, hi); i++ {
			entries[i].A = icolor.Lerp(a0, a1, param(i, i0, i1))
		}
	}
	return entries
}

// param returns the interpolation parameter of i between i0 and i1.
func param(i, i0, i1 int) float64 {
	if i0 == i1 {
		return 0
	}
	return float64(i-i0) / float64(i1-i0)
}

func (tf *TransferFunction) checkIndex(index int) error {
	if index < 0 || index >= tf.resolution {
		return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidRange, index, tf.resolution)
	}
	return nil
}
