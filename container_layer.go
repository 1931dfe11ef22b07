// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// ContainerLayer is a layer with an ordered list of children. Children are
// painted in insertion order, back to front.
//
// A plain ContainerLayer groups its children without drawing anything
// itself. Layers that clip, transform or composite their children embed it.
type ContainerLayer struct {
	LayerBase

	layers []Layer

	// scaleX and scaleY are the device scale of the children's space,
	// recorded by the last Preroll.
	scaleX, scaleY float64
}

// NewContainerLayer creates an empty container.
func NewContainerLayer() *ContainerLayer {
	return &ContainerLayer{}
}

// Add appends layer as the topmost child. A layer has a single owner:
// adding a layer that already has a parent is a precondition violation.
func (c *ContainerLayer) Add(layer Layer) {
	b := layer.layerBase()
	precondition(b.parent == nil, "layer already has a parent")
	precondition(b != &c.LayerBase, "layer added to itself")
	b.parent = c
	c.layers = append(c.layers, layer)
}

// Layers returns the children in paint order.
func (c *ContainerLayer) Layers() []Layer { return c.layers }

// RemoveAll detaches every child.
func (c *ContainerLayer) RemoveAll() {
	for _, l := range c.layers {
		l.layerBase().parent = nil
	}
	clear(c.layers)
	c.layers = c.layers[:0]
}

// Preroll implements Layer. The container's bounds are the union of its
// children's bounds.
func (c *ContainerLayer) Preroll(ctx *PrerollContext, matrix gg.Matrix) {
	c.SetPaintBounds(c.PrerollChildren(ctx, matrix))
}

// PrerollChildren prerolls every child with matrix and returns the union of
// their bounds. The container is marked for system composite when any
// child is.
func (c *ContainerLayer) PrerollChildren(ctx *PrerollContext, matrix gg.Matrix) canvas.Rect {
	c.scaleX = math.Hypot(matrix.A, matrix.D)
	c.scaleY = math.Hypot(matrix.B, matrix.E)

	outer := ctx.ChildPaintBounds
	ctx.ChildPaintBounds = canvas.Rect{}
	systemComposite := false
	for _, child := range c.layers {
		child.Preroll(ctx, matrix)
		if child.NeedsSystemComposite() {
			systemComposite = true
		}
		ctx.ChildPaintBounds = ctx.ChildPaintBounds.Union(child.PaintBounds())
	}
	bounds := ctx.ChildPaintBounds
	ctx.ChildPaintBounds = outer

	c.SetNeedsSystemComposite(systemComposite)
	return bounds
}

// Paint implements Layer.
func (c *ContainerLayer) Paint(frame *ScopedFrame) {
	c.checkPaint()
	c.PaintChildren(frame)
}

// PaintChildren paints each child in order. Children with empty bounds,
// children outside the canvas clip and children that emit their own scene
// nodes are skipped together with their subtrees.
func (c *ContainerLayer) PaintChildren(frame *ScopedFrame) {
	cv := frame.Canvas()
	for _, child := range c.layers {
		if !child.NeedsPainting() || child.NeedsSystemComposite() {
			continue
		}
		if cv.QuickReject(child.PaintBounds()) {
			continue
		}
		child.Paint(frame)
	}
}

// UpdateScene implements Layer.
func (c *ContainerLayer) UpdateScene(ctx *SceneUpdateContext) {
	c.UpdateSceneChildren(ctx)
}

// UpdateSceneChildren emits scene nodes for the children. Children that
// are painted rather than composited go into the texture of the enclosing
// frame; when the top entity is not a frame, a transparent frame covering
// them is opened first. Composited children follow, so they stack above
// the painted content. Children with empty bounds are skipped.
func (c *ContainerLayer) UpdateSceneChildren(ctx *SceneUpdateContext) {
	var painted []Layer
	for _, child := range c.layers {
		if !child.NeedsSystemComposite() && child.NeedsPainting() {
			painted = append(painted, child)
		}
	}

	if len(painted) > 0 {
		if f := ctx.topFrame(); f != nil {
			for _, l := range painted {
				f.AddPaintedLayer(l)
			}
		} else {
			var bounds canvas.Rect
			for _, l := range painted {
				bounds = bounds.Union(l.PaintBounds())
			}
			sx, sy := c.sceneScale()
			f := ctx.PushFrame(canvas.RRectFromRect(bounds), gg.Transparent, 0, sx, sy)
			for _, l := range painted {
				f.AddPaintedLayer(l)
			}
			f.Pop()
		}
	}

	for _, child := range c.layers {
		if child.NeedsSystemComposite() && child.NeedsPainting() {
			child.UpdateScene(ctx)
		}
	}
}

// sceneScale returns the device scale recorded by Preroll, defaulting to 1.
func (c *ContainerLayer) sceneScale() (float64, float64) {
	sx, sy := c.scaleX, c.scaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
