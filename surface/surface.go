// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
)

// Errors returned by producers.
var (
	// ErrEmptySize is returned when a surface of zero area is requested.
	ErrEmptySize = errors.New("surface: empty size")

	// ErrExhausted is returned when the producer has no budget left.
	ErrExhausted = errors.New("surface: exhausted")

	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface: closed")
)

// Surface is a pixel target backing one scene image.
//
// Surfaces are NOT thread-safe. A surface is drawn by one paint task at a
// time.
type Surface interface {
	// Size returns the surface size in physical pixels.
	Size() image.Point

	// Canvas returns the canvas that draws into the surface.
	Canvas() canvas.Canvas

	// Image returns the scene image the surface is published to.
	Image() *scenegraph.Image

	// Format returns the texture format of the scene image.
	Format() gputypes.TextureFormat

	// AdvanceAndGetAge increments the number of frames since the surface
	// was last produced and returns the new value.
	AdvanceAndGetAge() int

	// Publish copies the rendered pixels into the scene image.
	Publish() error

	// Snapshot returns a copy of the rendered pixels.
	Snapshot() *image.RGBA

	// Close releases the surface. Close is idempotent.
	Close() error
}

// Producer creates surfaces on demand.
type Producer interface {
	// ProduceSurface returns a surface of the given physical size. A failed
	// acquisition returns a nil Surface and a non-nil error.
	ProduceSurface(size image.Point) (Surface, error)
}
