// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// ColorFilterLayer composites its children through a color filter.
type ColorFilterLayer struct {
	ContainerLayer
	Color gg.RGBA
	Mode  canvas.ColorFilterMode
}

// NewColorFilterLayer creates a color filter layer.
func NewColorFilterLayer(c gg.RGBA, mode canvas.ColorFilterMode) *ColorFilterLayer {
	return &ColorFilterLayer{Color: c, Mode: mode}
}

// Paint implements Layer.
func (l *ColorFilterLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	paint := &canvas.Paint{
		Color:       gg.Black,
		ColorFilter: &canvas.ColorFilter{Color: l.Color, Mode: l.Mode},
	}
	defer c.RestoreToCount(c.SaveLayer(l.PaintBounds(), paint))
	l.PaintChildren(frame)
}

// ShaderMaskLayer masks its children with a shader over MaskRect.
type ShaderMaskLayer struct {
	ContainerLayer

	// Shader is sampled relative to the top left corner of MaskRect.
	Shader   gg.Brush
	MaskRect canvas.Rect
	Mode     canvas.MaskMode
}

// NewShaderMaskLayer creates a shader mask layer.
func NewShaderMaskLayer(shader gg.Brush, maskRect canvas.Rect, mode canvas.MaskMode) *ShaderMaskLayer {
	return &ShaderMaskLayer{Shader: shader, MaskRect: maskRect, Mode: mode}
}

// Paint implements Layer.
func (l *ShaderMaskLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	c := frame.Canvas()
	defer c.RestoreToCount(c.SaveLayer(l.PaintBounds(), nil))
	l.PaintChildren(frame)

	c.Translate(l.MaskRect.Left, l.MaskRect.Top)
	c.MaskRect(canvas.RectWH(l.MaskRect.Width(), l.MaskRect.Height()), l.Shader, l.Mode)
}
