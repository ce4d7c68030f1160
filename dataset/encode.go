// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/xml"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/volume"
)

// FromTransferFunction converts tf into a descriptor block. One element is
// written per index that carries a color point, an opacity point or both.
// A component missing at an index is read from the current table when one
// is published, otherwise it defaults to black or fully opaque.
func FromTransferFunction(tf *volume.TransferFunction) TransferFunctionXML {
	colors := tf.ColorPoints()
	opacities := tf.OpacityPoints()
	lut := tf.LUT()

	indices := make([]int, 0, len(colors)+len(opacities))
	for _, p := range colors {
		indices = append(indices, p.Index)
	}
	for _, p := range opacities {
		indices = append(indices, p.Index)
	}
	slices.Sort(indices)
	indices = slices.Compact(indices)

	x := TransferFunctionXML{
		Name: tf.Name(),
		Size: tf.Resolution(),
		Mode: tf.InterpolationMode().String(),
	}
	for _, i := range indices {
		c, ok := tf.Color(i)
		if !ok && lut != nil && i < lut.Len() {
			c = lut.At(i).RGB()
		}
		a, ok := tf.Opacity(i)
		if !ok {
			a = 1
			if lut != nil && i < lut.Len() {
				a = lut.At(i).A
			}
		}
		x.Elements = append(x.Elements, ElementXML{Value: i, Color: formatColor(c, a)})
	}
	return x
}

// EncodeTransferFunctions writes a descriptor naming file and dims with one
// block per transfer function. ParseDescriptor reads it back into the same
// control points.
func EncodeTransferFunctions(w io.Writer, file string, dims volume.Dims, tfs ...*volume.TransferFunction) error {
	d := Descriptor{
		File: file,
		Size: strconv.Itoa(dims.X) + " " + strconv.Itoa(dims.Y) + " " + strconv.Itoa(dims.Z),
	}
	for _, tf := range tfs {
		if tf != nil {
			d.TransferFunctions = append(d.TransferFunctions, FromTransferFunction(tf))
		}
	}
	return d.Encode(w)
}

// Encode writes d as indented XML with a header.
func (d *Descriptor) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatColor(c volume.RGB, a float64) string {
	var sb strings.Builder
	for i, v := range [4]float64{c.R, c.G, c.B, a} {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v*255, 'g', -1, 64))
	}
	return sb.String()
}
