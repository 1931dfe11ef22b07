// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// OpacityLayer composites its children with a uniform alpha, shifted by
// Offset.
//
// With exactly one child the layer primes the raster cache for that child
// and, once a raster exists, draws it instead of painting the child.
type OpacityLayer struct {
	ContainerLayer

	// Alpha is the opacity, 0 transparent to 255 opaque.
	Alpha uint8

	// Offset translates the children.
	Offset gg.Point
}

// NewOpacityLayer creates an opacity layer.
func NewOpacityLayer(alpha uint8, offset gg.Point) *OpacityLayer {
	return &OpacityLayer{Alpha: alpha, Offset: offset}
}

// Preroll implements Layer.
func (l *OpacityLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	child := matrix.Multiply(gg.Translate(l.Offset.X, l.Offset.Y))
	bounds := l.PrerollChildren(ctx, child)
	l.SetPaintBounds(bounds.Offset(l.Offset.X, l.Offset.Y))

	if len(l.layers) == 1 {
		ctx.prepare(l.layers[0], child)
	}
}

// Paint implements Layer.
func (l *OpacityLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	if l.Alpha == 0 {
		return
	}
	c := frame.Canvas()
	paint := canvas.AlphaPaint(l.Alpha)

	ctm := frame.snap(c.TotalMatrix().Multiply(gg.Translate(l.Offset.X, l.Offset.Y)))
	if ctm != c.TotalMatrix() {
		defer c.RestoreToCount(c.Save())
		c.SetMatrix(ctm)
	}

	if len(l.layers) == 1 && frame.RasterCache() != nil {
		if r := frame.RasterCache().Get(cacheSource{layer: l.layers[0]}, ctm); r.Valid() {
			r.Draw(c, paint)
			return
		}
	}

	bounds := l.PaintBounds().Offset(-l.Offset.X, -l.Offset.Y)
	defer c.RestoreToCount(c.SaveLayer(bounds, paint))
	l.PaintChildren(frame)
}
