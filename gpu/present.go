// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/volume"
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// PresentOptions controls how a frame is drawn.
type PresentOptions struct {
	// X, Y is the position to draw the frame at.
	X, Y float32

	// Background is composited under the frame when Opaque is set.
	Background volume.RGB

	// Opaque resolves the frame over Background before upload. Otherwise
	// the premultiplied frame is uploaded with its transparency.
	Opaque bool
}

// DefaultPresentOptions draws an opaque frame over black at the origin.
func DefaultPresentOptions() PresentOptions {
	return PresentOptions{Background: volume.Black, Opaque: true}
}

// Presenter uploads rendered frames to a host texture and draws them. The
// texture is created on first use, updated in place while the frame size is
// unchanged, and recreated when it changes.
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	texture gpucontext.Texture
	width   int
	height  int
	uploads int
	closed  bool
}

// NewPresenter returns a Presenter with no texture.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Texture returns the current texture, or nil before the first Present.
func (p *Presenter) Texture() gpucontext.Texture {
	return p.texture
}

// Uploads returns the number of frames uploaded so far.
func (p *Presenter) Uploads() int {
	return p.uploads
}

// Present uploads frame and draws it through dc.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, frame *volume.Frame, opts PresentOptions) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if dc == nil {
		return ErrInvalidDrawer
	}
	if frame == nil {
		return fmt.Errorf("%w: nil frame", ErrNotComputed)
	}

	img := frame.ToImage()
	if opts.Opaque {
		img = frame.Resolve(opts.Background)
	}
	w, h := frame.Width(), frame.Height()

	if p.texture != nil && (w != p.width || h != p.height) {
		p.release()
	}

	if p.texture != nil {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(img.Pix); err != nil {
				return fmt.Errorf("gpu: texture update failed: %w", err)
			}
			p.uploads++
			return dc.DrawTexture(p.texture, opts.X, opts.Y)
		}
		p.release()
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidDrawer
	}
	tex, err := creator.NewTextureFromRGBA(w, h, img.Pix)
	if err != nil {
		return fmt.Errorf("gpu: NewTextureFromRGBA failed: %w", err)
	}
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(!opts.Opaque)
	}
	p.texture, p.width, p.height = tex, w, h
	p.uploads++
	volume.Logger().Debug("gpu: presenter texture created", "width", w, "height", h)

	return dc.DrawTexture(p.texture, opts.X, opts.Y)
}

// Close releases the texture. Present fails afterwards.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.release()
	p.closed = true
}

func (p *Presenter) release() {
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
	p.width, p.height = 0, 0
}
