// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
)

// ClipRectLayer clips its children to a rectangle.
type ClipRectLayer struct {
	ContainerLayer
	Clip canvas.Rect
}

// NewClipRectLayer creates a rectangle clip.
func NewClipRectLayer(clip canvas.Rect) *ClipRectLayer {
	return &ClipRectLayer{Clip: clip}
}

// Preroll implements Layer.
func (l *ClipRectLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	l.SetPaintBounds(l.PrerollChildren(ctx, matrix).Intersect(l.Clip))
}

// Paint implements Layer.
func (l *ClipRectLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.Save())
	c.ClipRect(l.Clip)
	l.PaintChildren(frame)
}

// UpdateScene implements Layer.
func (l *ClipRectLayer) UpdateScene(ctx *SceneUpdateContext) {
	shape := scenegraph.NewRectangle(ctx.Session(), float32(l.Clip.Width()), float32(l.Clip.Height()))
	e := ctx.PushClip(shape, l.Clip)
	defer e.Pop()
	l.UpdateSceneChildren(ctx)
}

// ClipRRectLayer clips its children to a rounded rectangle.
type ClipRRectLayer struct {
	ContainerLayer
	Clip canvas.RRect
}

// NewClipRRectLayer creates a rounded rectangle clip.
func NewClipRRectLayer(clip canvas.RRect) *ClipRRectLayer {
	return &ClipRRectLayer{Clip: clip}
}

// Preroll implements Layer.
func (l *ClipRRectLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	l.SetPaintBounds(l.PrerollChildren(ctx, matrix).Intersect(l.Clip.Bounds()))
}

// Paint implements Layer.
func (l *ClipRRectLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.Save())
	c.ClipRRect(l.Clip)
	l.PaintChildren(frame)
}

// UpdateScene implements Layer.
func (l *ClipRRectLayer) UpdateScene(ctx *SceneUpdateContext) {
	r := l.Clip
	shape := scenegraph.NewRoundedRectangle(ctx.Session(),
		float32(r.Width()), float32(r.Height()),
		float32(r.Radius(canvas.UpperLeft)), float32(r.Radius(canvas.UpperRight)),
		float32(r.Radius(canvas.LowerRight)), float32(r.Radius(canvas.LowerLeft)))
	e := ctx.PushClip(shape, r.Bounds())
	defer e.Pop()
	l.UpdateSceneChildren(ctx)
}

// ClipPathLayer clips its children to an arbitrary path.
//
// The scene backend has no path clips; it clips to the path's bounds.
type ClipPathLayer struct {
	ContainerLayer
	Clip *gg.Path
}

// NewClipPathLayer creates a path clip.
func NewClipPathLayer(clip *gg.Path) *ClipPathLayer {
	return &ClipPathLayer{Clip: clip}
}

// Preroll implements Layer.
func (l *ClipPathLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	l.SetPaintBounds(l.PrerollChildren(ctx, matrix).Intersect(canvas.PathBounds(l.Clip)))
}

// Paint implements Layer.
func (l *ClipPathLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.Save())
	c.ClipPath(l.Clip)
	l.PaintChildren(frame)
}

// UpdateScene implements Layer.
func (l *ClipPathLayer) UpdateScene(ctx *SceneUpdateContext) {
	b := canvas.PathBounds(l.Clip)
	shape := scenegraph.NewRectangle(ctx.Session(), float32(b.Width()), float32(b.Height()))
	e := ctx.PushClip(shape, b)
	defer e.Pop()
	l.UpdateSceneChildren(ctx)
}
