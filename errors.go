// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import "errors"

// Errors returned by the volume package.
var (
	// ErrInvalidRange is returned when an active range has max <= min, when
	// a control point index is outside [0, resolution), or when an opacity
	// value is outside [0, 1].
	ErrInvalidRange = errors.New("volume: invalid range")

	// ErrInsufficientControlPoints is returned by ComputeLUT when fewer than
	// two color or two opacity points exist. The previous lookup table is
	// kept and remains stale.
	ErrInsufficientControlPoints = errors.New("volume: insufficient control points")

	// ErrDimensionMismatch is returned when a secondary field does not have
	// the same shape as the primary field.
	ErrDimensionMismatch = errors.New("volume: dimension mismatch")

	// ErrInvalidResolution is returned for a lookup table resolution below 2.
	ErrInvalidResolution = errors.New("volume: invalid resolution")

	// ErrInvalidDimensions is returned when a field or volume is created with
	// a non-positive extent or a value slice of the wrong length.
	ErrInvalidDimensions = errors.New("volume: invalid dimensions")

	// ErrNoLUT is returned when rendering without a computed lookup table.
	ErrNoLUT = errors.New("volume: lookup table not computed")

	// ErrUnknownFormat is returned for an unsupported output image format.
	ErrUnknownFormat = errors.New("volume: unknown image format")

	// ErrNoTransferFunction is returned by a TransferFunctionList with no
	// entries or an out-of-range index.
	ErrNoTransferFunction = errors.New("volume: no such transfer function")
)
