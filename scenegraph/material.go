// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenegraph

import (
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Shape is geometry that a ShapeNode can draw.
type Shape interface {
	ID() ResourceID
	// Size returns the width and height of the shape's bounds.
	Size() (w, h float32)
}

// Rectangle is an axis-aligned rectangle centered on its node.
type Rectangle struct {
	resource
	w, h float32
}

// NewRectangle creates a rectangle shape in s.
func NewRectangle(s *Session, w, h float32) *Rectangle {
	return &Rectangle{resource: newResource(s, KindRectangle, w, h), w: w, h: h}
}

// Size implements Shape.
func (r *Rectangle) Size() (w, h float32) { return r.w, r.h }

// RoundedRectangle is a rectangle with per-corner radii, ordered top left,
// top right, bottom right, bottom left.
type RoundedRectangle struct {
	resource
	w, h  float32
	radii [4]float32
}

// NewRoundedRectangle creates a rounded rectangle shape in s.
func NewRoundedRectangle(s *Session, w, h, topLeft, topRight, bottomRight, bottomLeft float32) *RoundedRectangle {
	return &RoundedRectangle{
		resource: newResource(s, KindRoundedRectangle, w, h),
		w:        w,
		h:        h,
		radii:    [4]float32{topLeft, topRight, bottomRight, bottomLeft},
	}
}

// Size implements Shape.
func (r *RoundedRectangle) Size() (w, h float32) { return r.w, r.h }

// Radii returns the corner radii.
func (r *RoundedRectangle) Radii() [4]float32 { return r.radii }

// Material fills a shape with a solid color or a texture.
type Material struct {
	resource
	color    color.RGBA
	hasColor bool
	texture  *Image
}

// NewMaterial creates a material in s.
func NewMaterial(s *Session) *Material {
	return &Material{resource: newResource(s, KindMaterial)}
}

// SetColor sets a solid color, or modulates the texture when one is set.
func (m *Material) SetColor(r, g, b, a uint8) {
	m.color = color.RGBA{R: r, G: g, B: b, A: a}
	m.hasColor = true
	m.enqueue(Op{Kind: OpSetColor, Values: [4]float32{float32(r), float32(g), float32(b), float32(a)}})
}

// SetTexture sets the image sampled across the shape.
func (m *Material) SetTexture(img *Image) {
	m.texture = img
	m.enqueue(Op{Kind: OpSetTexture, Ref: img.ID()})
}

// Color returns the color and whether one was set.
func (m *Material) Color() (color.RGBA, bool) { return m.color, m.hasColor }

// Texture returns the texture, or nil.
func (m *Material) Texture() *Image { return m.texture }

// Image is pixel content shared with the compositor.
type Image struct {
	resource

	mu      sync.Mutex
	format  gputypes.TextureFormat
	pixels  *image.RGBA
	version uint64
}

// NewImage creates a transparent image of the given size in s.
func NewImage(s *Session, size image.Point, format gputypes.TextureFormat) *Image {
	return &Image{
		resource: newResource(s, KindImage, float32(size.X), float32(size.Y)),
		format:   format,
		pixels:   image.NewRGBA(image.Rectangle{Max: size}),
	}
}

// Size returns the image dimensions.
func (img *Image) Size() image.Point {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.pixels.Rect.Size()
}

// Format returns the texture format the compositor samples with.
func (img *Image) Format() gputypes.TextureFormat { return img.format }

// Update replaces the image content with src, aligned at the origin.
func (img *Image) Update(src image.Image) {
	img.mu.Lock()
	draw.Copy(img.pixels, image.Point{}, src, src.Bounds(), draw.Src, nil)
	img.version++
	v := img.version
	img.mu.Unlock()
	img.enqueue(Op{Kind: OpUpdateImage, Values: [4]float32{float32(v)}})
}

// Version returns how many times the image has been updated.
func (img *Image) Version() uint64 {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.version
}

// Snapshot returns a copy of the image content.
func (img *Image) Snapshot() *image.RGBA {
	img.mu.Lock()
	defer img.mu.Unlock()
	out := image.NewRGBA(img.pixels.Rect)
	copy(out.Pix, img.pixels.Pix)
	return out
}
