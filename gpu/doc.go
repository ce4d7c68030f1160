// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu prepares classified volumes for hardware ray casting.
//
// It does not own a device. It produces the texture and sampler
// descriptors and byte payloads a host needs to upload the classified
// volume (a 3D R8Unorm texture) and its lookup table (a 1D RGBA32Float
// texture), the uniform block describing camera and marching parameters,
// and the WGSL ray-casting shader compiled to SPIR-V with naga.
//
// Frames rendered on the CPU can be shown through any
// gpucontext.TextureDrawer with a Presenter:
//
//	p := gpu.NewPresenter()
//	defer p.Close()
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = p.Present(dc.AsTextureDrawer(), frame, gpu.DefaultPresentOptions())
//	})
package gpu

import "errors"

// Errors returned by the gpu package.
var (
	// ErrNotComputed is returned when a lookup table or volume is missing.
	ErrNotComputed = errors.New("gpu: lookup table not computed")

	// ErrInvalidDrawer is returned when a draw context is nil or cannot
	// create textures.
	ErrInvalidDrawer = errors.New("gpu: draw context must provide a gpucontext.TextureCreator")

	// ErrPresenterClosed is returned by Present after Close.
	ErrPresenterClosed = errors.New("gpu: presenter is closed")
)
