// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// PictureLayer replays a recorded picture at Offset.
//
// Complex pictures that are not expected to change are raster cached. The
// cache key is the picture, so layers sharing a picture share the raster.
type PictureLayer struct {
	LayerBase
	Offset     gg.Point
	Picture    *canvas.Picture
	IsComplex  bool
	WillChange bool
}

// NewPictureLayer creates a picture layer.
func NewPictureLayer(offset gg.Point, pic *canvas.Picture) *PictureLayer {
	return &PictureLayer{Offset: offset, Picture: pic}
}

// Preroll implements Layer.
func (l *PictureLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	if l.Picture == nil {
		l.SetPaintBounds(canvas.Rect{})
		return
	}
	if l.IsComplex && !l.WillChange && ctx.RasterCache != nil {
		ctm := ctx.cacheMatrix(matrix.Multiply(gg.Translate(l.Offset.X, l.Offset.Y)))
		ctx.RasterCache.Prepare(pictureSource{l.Picture}, ctm)
	}
	l.SetPaintBounds(l.Picture.CullRect().Offset(l.Offset.X, l.Offset.Y))
}

// Paint implements Layer.
func (l *PictureLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.Save())
	c.Translate(l.Offset.X, l.Offset.Y)
	if ctm := frame.snap(c.TotalMatrix()); ctm != c.TotalMatrix() {
		c.SetMatrix(ctm)
	}

	if cache := frame.RasterCache(); cache != nil && l.IsComplex && !l.WillChange {
		if r := cache.Get(pictureSource{l.Picture}, c.TotalMatrix()); r.Valid() {
			r.Draw(c, nil)
			return
		}
	}
	c.DrawPicture(l.Picture)
}

// pictureSource adapts a picture to rastercache.Source.
type pictureSource struct {
	pic *canvas.Picture
}

func (s pictureSource) CacheID() uint64 { return s.pic.ID() }

func (s pictureSource) PaintBounds() canvas.Rect { return s.pic.CullRect() }

func (s pictureSource) PaintTo(c canvas.Canvas) { s.pic.Playback(c) }
