// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dataset loads raw scalar volumes and their transfer functions.
//
// A raw volume is described by a small XML document:
//
//	<volume>
//	  <file>head.raw</file>
//	  <size>256 256 113</size>
//	  <type>uint16</type>
//	  <endian>big</endian>
//	  <compression>zstd</compression>
//	  <transfer_function name="bone" size="256">
//	    <element value="0"   color="0 0 0 0"/>
//	    <element value="255" color="255 255 255 255"/>
//	  </transfer_function>
//	</volume>
//
// Only <file> and <size> are required. Samples default to uint8, little
// endian and no compression; when <compression> is absent it is inferred
// from the file extension (.gz, .zlib, .zst). Relative file names resolve
// against the directory of the descriptor. Each element of a transfer
// function sets both a color and an opacity control point at its value;
// the four color components are in 0-255.
//
// Raw samples are stored x fastest, then y, then z, with no header.
package dataset

import "errors"

// Errors returned by the dataset package.
var (
	// ErrMissingElement is returned when a required descriptor element is
	// absent or empty.
	ErrMissingElement = errors.New("dataset: missing element")

	// ErrShortRead is returned when a raw file holds fewer samples than its
	// size requires.
	ErrShortRead = errors.New("dataset: short read")

	// ErrUnknownScalarType is returned for an unsupported sample type.
	ErrUnknownScalarType = errors.New("dataset: unknown scalar type")

	// ErrUnknownCompression is returned for an unsupported compression.
	ErrUnknownCompression = errors.New("dataset: unknown compression")

	// ErrMalformed is returned for descriptor values that do not parse.
	ErrMalformed = errors.New("dataset: malformed value")
)
