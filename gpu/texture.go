// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/volume"
)

// TextureFormat is the pixel format of an uploaded texture.
type TextureFormat uint8

const (
	// TextureFormatR8 holds one normalized byte per texel: classified
	// intensities.
	TextureFormatR8 TextureFormat = iota

	// TextureFormatRGBA32F holds four float32 components per texel: lookup
	// table entries.
	TextureFormatRGBA32F

	// TextureFormatRGBA8 holds four normalized bytes per texel: presented
	// frames.
	TextureFormatRGBA8
)

// String returns a human-readable name for the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8:
		return "R8"
	case TextureFormatRGBA32F:
		return "RGBA32F"
	case TextureFormatRGBA8:
		return "RGBA8"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per texel.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR8:
		return 1
	case TextureFormatRGBA32F:
		return 16
	default:
		return 4
	}
}

// GPUFormat converts to the WebGPU texture format.
func (f TextureFormat) GPUFormat() gputypes.TextureFormat {
	switch f {
	case TextureFormatR8:
		return gputypes.TextureFormatR8Unorm
	case TextureFormatRGBA32F:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// DefaultTextureUsage is the usage of every texture this package describes.
const DefaultTextureUsage = gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	Label     string
	Size      gputypes.Extent3D
	Dimension gputypes.TextureDimension
	View      gputypes.TextureViewDimension
	Format    TextureFormat
	Usage     gputypes.TextureUsage
}

// Texture is a descriptor together with the bytes to upload into it.
type Texture struct {
	Descriptor TextureDescriptor
	Layout     gputypes.TextureDataLayout
	Data       []byte
}

// SizeBytes returns the number of bytes the texture occupies.
func (d TextureDescriptor) SizeBytes() int {
	return int(d.Size.Width) * int(d.Size.Height) * int(d.Size.DepthOrArrayLayers) * d.Format.BytesPerPixel()
}

// VolumeTexture describes a classified volume as a 3D R8 texture. Texel
// (x, y, z) holds the classified intensity of voxel (x, y, z). The payload
// aliases the volume's data and must not be modified.
func VolumeTexture(vol *volume.ClassifiedVolume) (*Texture, error) {
	if vol == nil {
		return nil, fmt.Errorf("%w: nil volume", ErrNotComputed)
	}
	d := vol.Dims()
	desc := TextureDescriptor{
		Label: "volume",
		Size: gputypes.Extent3D{
			Width:              uint32(d.X),
			Height:             uint32(d.Y),
			DepthOrArrayLayers: uint32(d.Z),
		},
		Dimension: gputypes.TextureDimension3D,
		View:      gputypes.TextureViewDimension3D,
		Format:    TextureFormatR8,
		Usage:     DefaultTextureUsage,
	}
	return &Texture{
		Descriptor: desc,
		Layout:     layout(desc),
		Data:       vol.Data(),
	}, nil
}

// LUTTexture describes a lookup table as a 1D RGBA32F texture with one texel
// per entry.
func LUTTexture(lut *volume.LUT) (*Texture, error) {
	if lut == nil {
		return nil, ErrNotComputed
	}
	desc := TextureDescriptor{
		Label: "transfer-function",
		Size: gputypes.Extent3D{
			Width:              uint32(lut.Len()),
			Height:             1,
			DepthOrArrayLayers: 1,
		},
		Dimension: gputypes.TextureDimension1D,
		View:      gputypes.TextureViewDimension1D,
		Format:    TextureFormatRGBA32F,
		Usage:     DefaultTextureUsage,
	}
	return &Texture{
		Descriptor: desc,
		Layout:     layout(desc),
		Data:       lut.Float32(),
	}, nil
}

func layout(d TextureDescriptor) gputypes.TextureDataLayout {
	return gputypes.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  d.Size.Width * uint32(d.Format.BytesPerPixel()),
		RowsPerImage: d.Size.Height,
	}
}

// SamplerDescriptor describes how the volume texture is filtered.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
}

// VolumeSampler returns a clamp-to-edge sampler whose filtering matches the
// CPU marcher's filter.
func VolumeSampler(filter volume.Filter) SamplerDescriptor {
	mode := gputypes.FilterModeNearest
	if filter == volume.FilterLinear {
		mode = gputypes.FilterModeLinear
	}
	return SamplerDescriptor{
		Label:        "volume-" + filter.String(),
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    mode,
		MinFilter:    mode,
	}
}
