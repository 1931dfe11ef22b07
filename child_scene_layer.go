// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// ChildSceneLayer embeds a scene exported by another session. It draws
// nothing on the canvas backend.
type ChildSceneLayer struct {
	LayerBase
	Offset           gg.Point
	Size             gg.Point
	DevicePixelRatio float64
	Node             *ExportNode
	HitTestable      bool
}

// NewChildSceneLayer creates a child scene layer.
func NewChildSceneLayer(node *ExportNode, offset, size gg.Point, dpr float64) *ChildSceneLayer {
	return &ChildSceneLayer{Node: node, Offset: offset, Size: size, DevicePixelRatio: dpr, HitTestable: true}
}

// Preroll implements Layer.
func (l *ChildSceneLayer) Preroll(ctx *PrerollContext, _ gg.Matrix) {
	l.SetPaintBounds(canvas.RectXYWH(l.Offset.X, l.Offset.Y, l.Size.X, l.Size.Y))
	if ctx.SystemComposite && l.Node != nil {
		l.SetNeedsSystemComposite(true)
	}
}

// Paint implements Layer.
func (l *ChildSceneLayer) Paint(*ScopedFrame) {
	l.checkPaint()
}

// UpdateScene implements Layer.
func (l *ChildSceneLayer) UpdateScene(ctx *SceneUpdateContext) {
	if l.Node == nil {
		return
	}
	dpr := l.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	ctx.AddChildScene(l.Node, l.Offset, dpr, l.HitTestable)
}
