// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"encoding/binary"
	"math"

	icolor "github.com/gogpu/volume/internal/color"
)

// DefaultResolution is the number of lookup table entries used unless
// SetResolution says otherwise.
const DefaultResolution = 256

// LUT is a dense color/opacity lookup table produced by a TransferFunction.
//
// A LUT is immutable once published, so it may be shared by any number of
// readers while the transfer function that produced it is being edited.
type LUT struct {
	entries []RGBA
}

// NewLUT wraps a copy of entries as a lookup table.
// It is mostly useful for tests and for renderers fed from elsewhere.
func NewLUT(entries []RGBA) *LUT {
	cp := make([]RGBA, len(entries))
	copy(cp, entries)
	return &LUT{entries: cp}
}

// Len returns the number of entries.
func (l *LUT) Len() int {
	return len(l.entries)
}

// At returns entry i. It panics if i is out of range.
func (l *LUT) At(i int) RGBA {
	return l.entries[i]
}

// Entries returns a copy of all entries.
func (l *LUT) Entries() []RGBA {
	cp := make([]RGBA, len(l.entries))
	copy(cp, l.entries)
	return cp
}

// Index maps an 8-bit intensity onto an entry index. For a 256-entry table
// the mapping is the identity. Otherwise intensity i maps to
// round(i*(n-1)/255) for a table of n entries, so 0 is
// the first entry and 255 the last.
func (l *LUT) Index(intensity uint8) int {
	n := len(l.entries)
	if n == DefaultResolution {
		return int(intensity)
	}
	return (int(intensity)*(n-1) + 127) / 255
}

// Lookup returns the entry for an 8-bit intensity, at the index given by
// Index.
func (l *LUT) Lookup(intensity uint8) RGBA {
	return l.entries[l.Index(intensity)]
}

// Sample returns the linearly filtered entry at normalized position t,
// where 0 is the first entry and 1 the last. t is clamped to [0, 1].
func (l *LUT) Sample(t float64) RGBA {
	n := len(l.entries)
	if !(t > 0) {
		return l.entries[0]
	}
	if t >= 1 {
		return l.entries[n-1]
	}
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return l.entries[n-1]
	}
	f := pos - float64(i)
	a, b := l.entries[i], l.entries[i+1]
	return RGBA{
		R: icolor.Lerp(a.R, b.R, f),
		G: icolor.Lerp(a.G, b.G, f),
		B: icolor.Lerp(a.B, b.B, f),
		A: icolor.Lerp(a.A, b.A, f),
	}
}

// Float32 returns the entries as interleaved little-endian RGBA float32
// bytes, the layout of an RGBA32Float texture row.
func (l *LUT) Float32() []byte {
	buf := make([]byte, len(l.entries)*16)
	for i, e := range l.entries {
		o := i * 16
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(float32(e.R)))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(float32(e.G)))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(float32(e.B)))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(float32(e.A)))
	}
	return buf
}

// RGBA8 returns the entries quantized to interleaved 8-bit RGBA.
func (l *LUT) RGBA8() []byte {
	buf := make([]byte, len(l.entries)*4)
	for i, e := range l.entries {
		buf[i*4+0] = icolor.ToU8(e.R)
		buf[i*4+1] = icolor.ToU8(e.G)
		buf[i*4+2] = icolor.ToU8(e.B)
		buf[i*4+3] = icolor.ToU8(e.A)
	}
	return buf
}
