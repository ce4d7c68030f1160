// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/gogpu/volume"
)

// synthetic builds a demonstration field of n^3 samples in [0, 1].
//
//	sphere   - 1 at the center falling linearly to 0 at the inscribed sphere
//	gaussian - a gaussian blob with sigma n/6
//	ramp     - x + y + z, normalized
func synthetic(name string, n int) (*volume.ScalarField, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: synthetic size %d", volume.ErrInvalidDimensions, n)
	}
	var f func(x, y, z float64) float64
	switch name {
	case "sphere":
		f = func(x, y, z float64) float64 {
			return math.Max(0, 1-math.Sqrt(x*x+y*y+z*z))
		}
	case "gaussian":
		const sigma = 1.0 / 3
		f = func(x, y, z float64) float64 {
			return math.Exp(-(x*x + y*y + z*z) / (2 * sigma * sigma))
		}
	case "ramp":
		f = func(x, y, z float64) float64 {
			return (x + y + z + 3) / 6
		}
	default:
		return nil, fmt.Errorf("unknown synthetic field %q", name)
	}

	dims := volume.Dims{X: n, Y: n, Z: n}
	values := make([]float64, dims.Len())
	// Voxel centers mapped to [-1, 1].
	coord := func(i int) float64 {
		return (float64(i)+0.5)/float64(n)*2 - 1
	}
	for z := range n {
		for y := range n {
			for x := range n {
				values[dims.Index(x, y, z)] = f(coord(x), coord(y), coord(z))
			}
		}
	}
	return volume.ScanScalarField(dims, values)
}
