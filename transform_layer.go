// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// TransformLayer applies an affine transform to its children.
type TransformLayer struct {
	ContainerLayer
	Transform gg.Matrix
}

// NewTransformLayer creates a transform layer.
func NewTransformLayer(m gg.Matrix) *TransformLayer {
	return &TransformLayer{Transform: m}
}

// Preroll implements Layer.
func (l *TransformLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	bounds := l.PrerollChildren(ctx, matrix.Multiply(l.Transform))
	l.SetPaintBounds(canvas.TransformRect(l.Transform, bounds))
}

// Paint implements Layer.
func (l *TransformLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.Save())
	c.Concat(l.Transform)
	l.PaintChildren(frame)
}

// UpdateScene implements Layer.
func (l *TransformLayer) UpdateScene(ctx *SceneUpdateContext) {
	e := ctx.PushTransform(l.Transform)
	defer e.Pop()
	l.UpdateSceneChildren(ctx)
}
