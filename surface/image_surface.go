// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
)

// ImageSurface is a CPU surface that renders with a software canvas and
// publishes into a scenegraph.Image.
//
// Example:
//
//	s, _ := surface.NewImageSurface(session, image.Pt(64, 64), gputypes.TextureFormatRGBA8Unorm)
//	defer s.Close()
//
//	s.Canvas().DrawRect(canvas.RectWH(32, 32), canvas.NewPaint(gg.Red))
//	_ = s.Publish()
type ImageSurface struct {
	size   image.Point
	format gputypes.TextureFormat
	sw     *canvas.Software
	img    *scenegraph.Image

	// age counts frames since the surface was last handed out.
	age int

	closed bool
}

// NewImageSurface creates a transparent surface of the given size and
// registers its image in session.
func NewImageSurface(session *scenegraph.Session, size image.Point, format gputypes.TextureFormat) (*ImageSurface, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptySize
	}
	return &ImageSurface{
		size:   size,
		format: format,
		sw:     canvas.NewSoftware(size.X, size.Y),
		img:    scenegraph.NewImage(session, size, format),
	}, nil
}

// Size implements Surface.
func (s *ImageSurface) Size() image.Point { return s.size }

// Canvas implements Surface.
func (s *ImageSurface) Canvas() canvas.Canvas { return s.sw }

// Software returns the software canvas, for pixel inspection.
func (s *ImageSurface) Software() *canvas.Software { return s.sw }

// Image implements Surface.
func (s *ImageSurface) Image() *scenegraph.Image { return s.img }

// Format implements Surface.
func (s *ImageSurface) Format() gputypes.TextureFormat { return s.format }

// AdvanceAndGetAge implements Surface.
func (s *ImageSurface) AdvanceAndGetAge() int {
	s.age++
	return s.age
}

// Publish implements Surface.
func (s *ImageSurface) Publish() error {
	if s.closed {
		return ErrClosed
	}
	s.img.Update(s.sw.Image())
	return nil
}

// Snapshot implements Surface.
func (s *ImageSurface) Snapshot() *image.RGBA {
	src := s.sw.Image()
	out := image.NewRGBA(image.Rectangle{Max: s.size})
	draw.Copy(out, image.Point{}, src, src.Bounds(), draw.Src, nil)
	return out
}

// Close implements Surface.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *ImageSurface) Closed() bool { return s.closed }

// reset prepares a recycled surface for a new paint task.
func (s *ImageSurface) reset() {
	s.age = 0
	s.sw.RestoreToCount(1)
}

var _ Surface = (*ImageSurface)(nil)
