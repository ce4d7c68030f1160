// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package volume classifies and composites scalar volume data.
//
// # Overview
//
// volume turns a 3D grid of raw scalar samples into pixels in three stages:
//
//   - A TransferFunction holds sparse color and opacity control points and
//     derives a dense RGBA lookup table (LUT) from them.
//   - A Classifier applies a ScalarFunction to every sample, clamps it to an
//     active Range and quantizes it to an 8-bit intensity.
//   - A Marcher walks rays through the ClassifiedVolume, looks every sample
//     up in the LUT and accumulates the colors front to back or back to
//     front.
//
// Renderer ties the stages to a pinhole Camera and a world-space
// BoundingBox and produces a Frame, which can be saved as PNG, TIFF, BMP or
// OpenEXR.
//
// # Quick Start
//
//	import "github.com/gogpu/volume"
//
//	field, _ := volume.ScanScalarField(volume.Dims{X: 64, Y: 64, Z: 64}, samples)
//	vol, _ := volume.NewClassifier().ClassifyAuto(field, nil, volume.Identity, volume.Range{})
//
//	tf := volume.DefaultTransferFunction()
//	lut, _ := tf.ComputeLUT()
//
//	box := volume.CenteredBox(field.Dims())
//	r := volume.NewRenderer(volume.NewMarcher(volume.WithStepSize(0.005)), 0)
//	frame, _, _ := r.Render(vol, lut, volume.OrbitCamera(box, 30, 20), box, 512, 512)
//	_ = frame.Save("volume.png", volume.Black)
//
// # Coordinates
//
// Voxels are stored x fastest, then y, then z. Rays march in unit-cube
// coordinates where the whole grid spans [0,1] on every axis.
//
// # Concurrency
//
// Classification is data-parallel and needs no locking. A TransferFunction
// may be edited while renderers read its LUT: ComputeLUT builds a fresh
// table and publishes it atomically, so readers see either the old table or
// the new one.
//
// # Related Packages
//
//   - dataset: raw volume descriptors, raw sample loading and transfer
//     function persistence
//   - gpu: texture descriptors, WGSL ray casting shader and presentation
//     for GPU hosts
package volume

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
