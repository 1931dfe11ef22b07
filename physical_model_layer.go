// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// PhysicalModelLayer is a raised rounded rectangle: it casts a shadow,
// fills its shape with Color and clips its children to the shape.
//
// On the scene backend the layer becomes a scene frame at its elevation
// and its children are painted into the frame's texture.
type PhysicalModelLayer struct {
	ContainerLayer
	RRect     canvas.RRect
	Elevation float64
	Color     gg.RGBA
}

// NewPhysicalModelLayer creates a physical model layer.
func NewPhysicalModelLayer(rrect canvas.RRect, elevation float64, c gg.RGBA) *PhysicalModelLayer {
	return &PhysicalModelLayer{RRect: rrect, Elevation: elevation, Color: c}
}

// Preroll implements Layer. The bounds cover the shape and its shadow.
func (l *PhysicalModelLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	l.PrerollChildren(ctx, matrix)
	l.SetPaintBounds(canvas.ShadowBounds(l.RRect.Bounds(), l.Elevation))
	if ctx.SystemComposite {
		l.SetNeedsSystemComposite(true)
	}
}

// Paint implements Layer.
func (l *PhysicalModelLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	if l.Elevation != 0 {
		c.DrawShadow(l.RRect.Path(), gg.Black, l.Elevation, l.Color.A < 1)
	}
	c.DrawRRect(l.RRect, canvas.NewPaint(l.Color))

	defer c.RestoreToCount(c.Save())
	c.ClipRRect(l.RRect)
	l.PaintChildren(frame)
}

// UpdateScene implements Layer.
func (l *PhysicalModelLayer) UpdateScene(ctx *SceneUpdateContext) {
	sx, sy := l.sceneScale()
	f := ctx.PushFrame(l.RRect, l.Color, l.Elevation, sx, sy)
	defer f.Pop()
	l.UpdateSceneChildren(ctx)
}
