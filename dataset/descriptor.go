// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/volume"
)

// Descriptor is the parsed XML description of a raw volume.
type Descriptor struct {
	XMLName           xml.Name              `xml:"volume"`
	File              string                `xml:"file"`
	Size              string                `xml:"size"`
	Type              string                `xml:"type,omitempty"`
	Endian            string                `xml:"endian,omitempty"`
	Compression       string                `xml:"compression,omitempty"`
	Secondary         string                `xml:"secondary,omitempty"`
	TransferFunctions []TransferFunctionXML `xml:"transfer_function"`
}

// TransferFunctionXML is one <transfer_function> block.
type TransferFunctionXML struct {
	Name     string       `xml:"name,attr,omitempty"`
	Size     int          `xml:"size,attr,omitempty"`
	Mode     string       `xml:"mode,attr,omitempty"`
	Elements []ElementXML `xml:"element"`
}

// ElementXML is one control point: an index and an RGBA color in 0-255.
type ElementXML struct {
	Value int    `xml:"value,attr"`
	Color string `xml:"color,attr"`
}

// ParseDescriptor decodes a descriptor. Any root element name is accepted.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("dataset: parse descriptor: %w", err)
	}
	d.File = strings.TrimSpace(d.File)
	d.Secondary = strings.TrimSpace(d.Secondary)
	if d.File == "" {
		return nil, fmt.Errorf("%w: <file>", ErrMissingElement)
	}
	if strings.TrimSpace(d.Size) == "" {
		return nil, fmt.Errorf("%w: <size>", ErrMissingElement)
	}
	return &d, nil
}

// ReadDescriptorFile parses the descriptor at path.
func ReadDescriptorFile(path string) (*Descriptor, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseDescriptor(f)
}

// UnmarshalXML accepts any root element name.
func (d *Descriptor) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type plain Descriptor
	start.Name = xml.Name{Local: "volume"}
	return dec.DecodeElement((*plain)(d), &start)
}

// Dims parses the <size> element, three positive integers whose product is
// at most MaxVoxels.
func (d *Descriptor) Dims() (volume.Dims, error) {
	f := strings.Fields(d.Size)
	if len(f) != 3 {
		return volume.Dims{}, fmt.Errorf("%w: size %q", ErrMalformed, d.Size)
	}
	var v [3]int
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return volume.Dims{}, fmt.Errorf("%w: size %q", ErrMalformed, d.Size)
		}
		v[i] = n
	}
	dims := volume.Dims{X: v[0], Y: v[1], Z: v[2]}
	if _, err := voxelCount(dims); err != nil {
		return volume.Dims{}, err
	}
	return dims, nil
}

// ScalarType parses the <type> element.
func (d *Descriptor) ScalarType() (ScalarType, error) {
	return ParseScalarType(d.Type)
}

// CompressionOf returns the compression of file: the <compression>
// element when set, otherwise inferred from the extension.
func (d *Descriptor) CompressionOf(file string) (Compression, error) {
	if strings.TrimSpace(d.Compression) != "" {
		return ParseCompression(d.Compression)
	}
	return CompressionFromPath(file), nil
}

// TransferFunctionList builds the transfer functions in document order.
// The list is empty when the descriptor has none.
func (d *Descriptor) TransferFunctionList() (*volume.TransferFunctionList, error) {
	list := volume.NewTransferFunctionList()
	for i := range d.TransferFunctions {
		tf, err := d.TransferFunctions[i].Build()
		if err != nil {
			return nil, err
		}
		list.Add(tf)
	}
	return list, nil
}

// Build converts the block into a transfer function. A size of 0 keeps the
// default resolution. Every element sets a color and an opacity point.
func (x *TransferFunctionXML) Build() (*volume.TransferFunction, error) {
	tf := volume.NewTransferFunction()
	tf.SetName(x.Name)
	if x.Size != 0 {
		if err := tf.SetResolution(x.Size); err != nil {
			return nil, fmt.Errorf("dataset: transfer function %q: %w", x.Name, err)
		}
	}
	if x.Mode != "" {
		mode, ok := volume.ParseInterpolationMode(x.Mode)
		if !ok {
			return nil, fmt.Errorf("%w: mode %q", ErrMalformed, x.Mode)
		}
		tf.SetInterpolationMode(mode)
	}

	for _, e := range x.Elements {
		rgba, err := parseColor(e.Color)
		if err != nil {
			return nil, err
		}
		c := volume.RGB{R: rgba[0] / 255, G: rgba[1] / 255, B: rgba[2] / 255}
		if err := tf.SetColor(e.Value, c); err != nil {
			return nil, fmt.Errorf("dataset: transfer function %q: %w", x.Name, err)
		}
		if err := tf.SetOpacity(e.Value, rgba[3]/255); err != nil {
			return nil, fmt.Errorf("dataset: transfer function %q: %w", x.Name, err)
		}
	}
	return tf, nil
}

// parseColor parses four space-separated components in 0-255.
func parseColor(s string) ([4]float64, error) {
	var c [4]float64
	f := strings.Fields(s)
	if len(f) != 4 {
		return c, fmt.Errorf("%w: color %q", ErrMalformed, s)
	}
	for i, v := range f {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || n > 255 {
			return c, fmt.Errorf("%w: color %q", ErrMalformed, s)
		}
		c[i] = n
	}
	return c, nil
}
