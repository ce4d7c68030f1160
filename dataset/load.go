// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/volume"
)

// Volume is a loaded dataset: the primary field, an optional secondary
// field of the same shape, the world-space bounding box and any transfer
// functions declared by the descriptor.
type Volume struct {
	Field             *volume.ScalarField
	Secondary         *volume.ScalarField
	Box               volume.BoundingBox
	TransferFunctions *volume.TransferFunctionList
}

// RawFormat describes how samples are stored in a raw file.
type RawFormat struct {
	Dims        volume.Dims
	Type        ScalarType
	Order       binary.ByteOrder
	Compression Compression
}

// ReadField reads a whole raw field from r and records its extrema.
func ReadField(r io.Reader, f RawFormat) (*volume.ScalarField, error) {
	if !f.Dims.Valid() {
		return nil, fmt.Errorf("%w: %v", volume.ErrInvalidDimensions, f.Dims)
	}
	order := f.Order
	if order == nil {
		order = binary.LittleEndian
	}
	n, err := voxelCount(f.Dims)
	if err != nil {
		return nil, err
	}
	rc, err := Decompress(r, f.Compression)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	values, err := ReadSamples(rc, n, f.Type, order)
	if err != nil {
		return nil, err
	}
	return volume.ScanScalarField(f.Dims, values)
}

// ReadFieldFile reads a raw field from path. An uncompressed file shorter
// than the declared size fails with ErrShortRead before anything is read.
func ReadFieldFile(path string, f RawFormat) (*volume.ScalarField, error) {
	file, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	if f.Compression == None && f.Dims.Valid() {
		if n, err := voxelCount(f.Dims); err == nil {
			st, err := file.Stat()
			if err != nil {
				return nil, err
			}
			if need := int64(n) * int64(f.Type.Size()); st.Size() < need {
				return nil, fmt.Errorf("dataset: %s: %w: %d bytes, want %d",
					filepath.Base(path), ErrShortRead, st.Size(), need)
			}
		}
	}

	start := time.Now()
	field, err := ReadField(file, f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", filepath.Base(path), err)
	}
	volume.Logger().Info("dataset: field loaded",
		"file", path,
		"dims", f.Dims,
		"type", f.Type,
		"compression", f.Compression,
		"min", field.RawMin(),
		"max", field.RawMax(),
		"elapsed", time.Since(start))
	return field, nil
}

// WriteField writes values as a raw file in format f.
func WriteField(w io.Writer, values []float64, f RawFormat) (err error) {
	order := f.Order
	if order == nil {
		order = binary.LittleEndian
	}
	wc, err := Compress(w, f.Compression)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSamples(wc, values, f.Type, order)
}

// Load reads the descriptor at path and the raw files it names. Relative
// file names are resolved against the descriptor's directory. The bounding
// box is centered on the origin with one world unit per voxel.
func Load(path string) (*Volume, error) {
	d, err := ReadDescriptorFile(path)
	if err != nil {
		return nil, err
	}
	dims, err := d.Dims()
	if err != nil {
		return nil, err
	}
	typ, err := d.ScalarType()
	if err != nil {
		return nil, err
	}
	order, err := ParseByteOrder(d.Endian)
	if err != nil {
		return nil, err
	}
	tfs, err := d.TransferFunctionList()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	read := func(name string) (*volume.ScalarField, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		comp, err := d.CompressionOf(name)
		if err != nil {
			return nil, err
		}
		return ReadFieldFile(name, RawFormat{Dims: dims, Type: typ, Order: order, Compression: comp})
	}

	v := &Volume{Box: volume.CenteredBox(dims), TransferFunctions: tfs}
	if v.Field, err = read(d.File); err != nil {
		return nil, err
	}
	if d.Secondary != "" {
		if v.Secondary, err = read(d.Secondary); err != nil {
			return nil, err
		}
	}
	return v, nil
}
