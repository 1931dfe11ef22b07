// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// Layer is one node of the compositing tree.
//
// Every frame the tree is walked twice: Preroll computes paint bounds and
// primes the raster cache, then Paint (canvas backend) or UpdateScene
// (scene backend) emits output. Preroll must run before Paint on every
// layer that may be painted.
//
// Custom layers embed LayerBase, or ContainerLayer for layers with
// children.
type Layer interface {
	// Preroll computes the layer's paint bounds in its parent's coordinate
	// space. matrix maps the parent's space to device space.
	Preroll(ctx *PrerollContext, matrix gg.Matrix)

	// Paint draws the layer onto the frame's canvas. It must only be called
	// when NeedsPainting reports true.
	Paint(frame *ScopedFrame)

	// UpdateScene emits scene-graph nodes for the layer.
	UpdateScene(ctx *SceneUpdateContext)

	// Parent returns the container holding the layer, or nil for a root.
	Parent() *ContainerLayer

	// PaintBounds returns the bounds computed by the last Preroll.
	PaintBounds() canvas.Rect

	// HasPaintBounds reports whether Preroll has set bounds this frame.
	HasPaintBounds() bool

	// NeedsPainting reports whether the layer has non-empty bounds.
	NeedsPainting() bool

	// NeedsSystemComposite reports whether the layer emits its own scene
	// nodes instead of being painted into an enclosing frame's texture.
	NeedsSystemComposite() bool

	layerBase() *LayerBase
}

var nextLayerID atomic.Uint64

// LayerBase holds the state shared by every layer.
//
// The zero value is ready to use; the layer ID is assigned on first use.
type LayerBase struct {
	parent          *ContainerLayer
	id              uint64
	bounds          canvas.Rect
	hasBounds       bool
	systemComposite bool
}

func (b *LayerBase) layerBase() *LayerBase { return b }

// ID returns a process-unique identifier for the layer. The raster cache
// keys entries by it.
func (b *LayerBase) ID() uint64 {
	if b.id == 0 {
		b.id = nextLayerID.Add(1)
	}
	return b.id
}

// Parent implements Layer.
func (b *LayerBase) Parent() *ContainerLayer { return b.parent }

// PaintBounds implements Layer. Reading bounds before Preroll set them is a
// precondition violation.
func (b *LayerBase) PaintBounds() canvas.Rect {
	precondition(b.hasBounds, "paint bounds read before Preroll")
	return b.bounds
}

// SetPaintBounds records the bounds computed by Preroll.
func (b *LayerBase) SetPaintBounds(r canvas.Rect) {
	b.bounds = r
	b.hasBounds = true
}

// HasPaintBounds implements Layer.
func (b *LayerBase) HasPaintBounds() bool { return b.hasBounds }

// NeedsPainting implements Layer.
func (b *LayerBase) NeedsPainting() bool {
	return b.hasBounds && !b.bounds.IsEmpty()
}

// NeedsSystemComposite implements Layer.
func (b *LayerBase) NeedsSystemComposite() bool { return b.systemComposite }

// SetNeedsSystemComposite marks the layer as emitting its own scene nodes.
func (b *LayerBase) SetNeedsSystemComposite(v bool) { b.systemComposite = v }

// UpdateScene implements Layer. Leaf layers are painted into the texture
// of the enclosing frame, so the default emits nothing.
func (b *LayerBase) UpdateScene(*SceneUpdateContext) {}

// checkPaint asserts the Paint precondition.
func (b *LayerBase) checkPaint() {
	precondition(b.hasBounds, "Paint called before Preroll")
}

// invalidate drops bounds so a layer skipped by Preroll is never painted
// with last frame's bounds.
func invalidate(l Layer) {
	b := l.layerBase()
	b.hasBounds = false
	b.systemComposite = false
	if c, ok := l.(interface{ Layers() []Layer }); ok {
		for _, child := range c.Layers() {
			invalidate(child)
		}
	}
}

// paintLayer paints l when it has something to draw.
func paintLayer(l Layer, frame *ScopedFrame) {
	if l.NeedsPainting() {
		l.Paint(frame)
	}
}

func precondition(ok bool, msg string) {
	if checksEnabled && !ok {
		panic("flow: " + msg)
	}
}

// cacheSource adapts a layer to rastercache.Source.
type cacheSource struct {
	layer      Layer
	fractional bool
}

func (s cacheSource) CacheID() uint64 { return s.layer.layerBase().ID() }

func (s cacheSource) PaintBounds() canvas.Rect { return s.layer.PaintBounds() }

func (s cacheSource) PaintTo(c canvas.Canvas) {
	paintLayer(s.layer, newCanvasFrame(c, s.fractional))
}
