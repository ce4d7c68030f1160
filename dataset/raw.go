// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/mrjoshuak/go-openexr/half"

	"github.com/gogpu/volume"
)

// ScalarType is the on-disk type of a raw sample.
type ScalarType uint8

// Supported sample types.
const (
	Uint8 ScalarType = iota
	Uint16
	Float16
	Float32
	Float64
)

var scalarTypeNames = [...]string{
	Uint8:   "uint8",
	Uint16:  "uint16",
	Float16: "float16",
	Float32: "float32",
	Float64: "float64",
}

func (t ScalarType) String() string {
	if int(t) < len(scalarTypeNames) {
		return scalarTypeNames[t]
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(t))
}

// Size returns the number of bytes per sample.
func (t ScalarType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Uint16, Float16:
		return 2
	case Float32:
		return 4
	default:
		return 8
	}
}

// ParseScalarType parses a type name. An empty name means Uint8. A few
// common aliases are accepted.
func ParseScalarType(s string) (ScalarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uint8", "uchar", "byte":
		return Uint8, nil
	case "uint16", "ushort":
		return Uint16, nil
	case "float16", "half":
		return Float16, nil
	case "float32", "float":
		return Float32, nil
	case "float64", "double":
		return Float64, nil
	}
	return Uint8, fmt.Errorf("%w: %q", ErrUnknownScalarType, s)
}

// Compression is the compression applied to a raw file as a whole.
type Compression uint8

// Supported compressions.
const (
	None Compression = iota
	Gzip
	Zlib
	Zstd
)

var compressionNames = [...]string{
	None: "none",
	Gzip: "gzip",
	Zlib: "zlib",
	Zstd: "zstd",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// ParseCompression parses a compression name. An empty name means None.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib", "deflate":
		return Zlib, nil
	case "zstd", "zst":
		return Zstd, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// CompressionFromPath infers the compression from a file extension.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zlib", ".zz":
		return Zlib
	case ".zst", ".zstd":
		return Zstd
	}
	return None
}

// ParseByteOrder parses "little" or "big". An empty name means little
// endian.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("%w: endian %q", ErrMalformed, s)
}

// Decompress wraps r to undo c. The caller must close the result; closing
// it does not close r.
func Decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zlib:
		return zlib.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
}

// Compress wraps w to apply c. Closing the result flushes the compressed
// stream but does not close w.
func Compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// MaxVoxels is the largest field a descriptor or RawFormat may declare.
const MaxVoxels = 1 << 30

// voxelCount returns the number of voxels in d. It fails with ErrMalformed
// when the product overflows or exceeds MaxVoxels.
func voxelCount(d volume.Dims) (int, error) {
	n := 1
	for _, e := range [...]int{d.X, d.Y, d.Z} {
		if e <= 0 || n > MaxVoxels/e {
			return 0, fmt.Errorf("%w: size %d %d %d exceeds %d voxels", ErrMalformed, d.X, d.Y, d.Z, MaxVoxels)
		}
		n *= e
	}
	return n, nil
}

// ReadSamples reads n samples of type t in byte order bo and widens them to
// float64. It fails with ErrShortRead if r ends early. The result grows as
// samples arrive, so a short stream never allocates all n up front.
func ReadSamples(r io.Reader, n int, t ScalarType, bo binary.ByteOrder) ([]float64, error) {
	if int(t) >= len(scalarTypeNames) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownScalarType, t)
	}
	if n < 0 || n > MaxVoxels {
		return nil, fmt.Errorf("%w: %d samples", ErrMalformed, n)
	}
	const chunkLen = 4096
	size := t.Size()
	br := bufio.NewReaderSize(r, 1<<16)
	out := make([]float64, 0, min(n, 1<<16))
	buf := make([]byte, chunkLen*size)

	for i := 0; i < n; {
		chunk := min(n-i, chunkLen)
		b := buf[:chunk*size]
		if _, err := io.ReadFull(br, b); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %d of %d samples", ErrShortRead, i, n)
			}
			return nil, err
		}
		out = slices.Grow(out, chunk)[:i+chunk]
		decode(out[i:], b, t, bo)
		i += chunk
	}
	return out, nil
}

func decode(dst []float64, b []byte, t ScalarType, bo binary.ByteOrder) {
	switch t {
	case Uint8:
		for i := range dst {
			dst[i] = float64(b[i])
		}
	case Uint16:
		for i := range dst {
			dst[i] = float64(bo.Uint16(b[i*2:]))
		}
	case Float16:
		for i := range dst {
			dst[i] = float64(half.FromBits(bo.Uint16(b[i*2:])).Float32())
		}
	case Float32:
		for i := range dst {
			dst[i] = float64(math.Float32frombits(bo.Uint32(b[i*4:])))
		}
	case Float64:
		for i := range dst {
			dst[i] = math.Float64frombits(bo.Uint64(b[i*8:]))
		}
	}
}

// WriteSamples narrows values to type t and writes them in byte order bo.
// Integer types are rounded and saturated.
func WriteSamples(w io.Writer, values []float64, t ScalarType, bo binary.ByteOrder) error {
	if int(t) >= len(scalarTypeNames) {
		return fmt.Errorf("%w: %v", ErrUnknownScalarType, t)
	}
	bw := bufio.NewWriterSize(w, 1<<16)
	b := make([]byte, t.Size())
	for _, v := range values {
		switch t {
		case Uint8:
			b[0] = uint8(saturate(v, math.MaxUint8))
		case Uint16:
			bo.PutUint16(b, uint16(saturate(v, math.MaxUint16)))
		case Float16:
			bo.PutUint16(b, half.FromFloat64(v).Bits())
		case Float32:
			bo.PutUint32(b, math.Float32bits(float32(v)))
		case Float64:
			bo.PutUint64(b, math.Float64bits(v))
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func saturate(v, hi float64) float64 {
	if !(v > 0) {
		return 0
	}
	return min(math.Round(v), hi)
}
