// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/volume/internal/blend"
	icolor "github.com/gogpu/volume/internal/color"
)

// Frame is a rendered image of premultiplied float32 RGBA pixels.
type Frame struct {
	width  int
	height int
	data   []float32 // premultiplied RGBA, 4 values per pixel
}

// NewFrame creates a transparent frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the frame.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the height of the frame.
func (f *Frame) Height() int {
	return f.height
}

// Data returns the raw premultiplied RGBA values, row by row.
func (f *Frame) Data() []float32 {
	return f.data
}

// Set stores a premultiplied color at (x, y). Out-of-bounds writes are
// ignored.
func (f *Frame) Set(x, y int, c RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i+0] = float32(c.R)
	f.data[i+1] = float32(c.G)
	f.data[i+2] = float32(c.B)
	f.data[i+3] = float32(c.A)
}

// At returns the premultiplied color at (x, y), or transparent black out of
// bounds.
func (f *Frame) At(x, y int) RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return RGBA{}
	}
	i := (y*f.width + x) * 4
	return RGBA{
		R: float64(f.data[i+0]),
		G: float64(f.data[i+1]),
		B: float64(f.data[i+2]),
		A: float64(f.data[i+3]),
	}
}

// Resolve composites the frame over an opaque background and quantizes it
// to 8 bits per channel.
func (f *Frame) Resolve(bg RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	back := blend.Color{R: bg.R, G: bg.G, B: bg.B, A: 1}
	for i := 0; i < len(f.data); i += 4 {
		c := blend.Over(blend.Color{
			R: float64(f.data[i+0]),
			G: float64(f.data[i+1]),
			B: float64(f.data[i+2]),
			A: float64(f.data[i+3]),
		}, back)
		img.Pix[i+0] = icolor.ToU8(c.R)
		img.Pix[i+1] = icolor.ToU8(c.G)
		img.Pix[i+2] = icolor.ToU8(c.B)
		img.Pix[i+3] = 255
	}
	return img
}

// ToImage quantizes the frame to a premultiplied 8-bit image, keeping
// transparency.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i, v := range f.data {
		img.Pix[i] = icolor.ToU8(float64(v))
	}
	return img
}

// EXR converts the frame to a half-float OpenEXR image with premultiplied
// alpha, without quantization.
func (f *Frame) EXR() *exr.RGBAImage {
	img := exr.NewRGBAImage(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// Format is an output image format.
type Format uint8

// Supported output formats.
const (
	FormatPNG Format = iota
	FormatTIFF
	FormatBMP
	FormatEXR
)

func (f Format) String() string {
	switch f {
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	case FormatEXR:
		return "exr"
	default:
		return "png"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".bmp":
		return FormatBMP, nil
	case ".exr":
		return FormatEXR, nil
	}
	return FormatPNG, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes the frame in the given format. PNG, TIFF and BMP are
// resolved over bg; EXR keeps alpha and ignores bg, and needs w to be an
// io.WriteSeeker.
func (f *Frame) Encode(w io.Writer, format Format, bg RGB) error {
	if format == FormatEXR {
		ws, ok := w.(io.WriteSeeker)
		if !ok {
			return fmt.Errorf("%w: exr output must be seekable", ErrUnknownFormat)
		}
		return exr.Encode(ws, f.EXR())
	}
	return EncodeImage(w, f.Resolve(bg), format)
}

// EncodeImage writes an 8-bit image as PNG, TIFF or BMP.
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// Save writes the frame to path in the format named by its extension.
func (f *Frame) Save(path string, bg RGB) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return f.Encode(file, format, bg)
}

// SavePNG saves the frame over bg to a PNG file.
func (f *Frame) SavePNG(path string, bg RGB) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return png.Encode(file, f.Resolve(bg))
}
