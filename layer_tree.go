// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"image"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
)

// LayerTree is one frame's layer tree together with the frame geometry.
//
// Layer coordinates are physical pixels; the device pixel ratio maps them
// back to logical units for the scene backend.
type LayerTree struct {
	root             Layer
	frameSize        image.Point
	devicePixelRatio float64
	constructionTime time.Duration
}

// NewLayerTree creates a tree rooted at root for a frame of frameSize
// physical pixels.
func NewLayerTree(root Layer, frameSize image.Point, devicePixelRatio float64) *LayerTree {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	return &LayerTree{root: root, frameSize: frameSize, devicePixelRatio: devicePixelRatio}
}

// Root returns the root layer.
func (t *LayerTree) Root() Layer { return t.root }

// FrameSize returns the frame size in physical pixels.
func (t *LayerTree) FrameSize() image.Point { return t.frameSize }

// DevicePixelRatio returns physical pixels per logical unit.
func (t *LayerTree) DevicePixelRatio() float64 { return t.devicePixelRatio }

// ConstructionTime returns how long the host took to build the tree.
func (t *LayerTree) ConstructionTime() time.Duration { return t.constructionTime }

// SetConstructionTime records how long the host took to build the tree.
func (t *LayerTree) SetConstructionTime(d time.Duration) { t.constructionTime = d }

// Preroll computes bounds for the whole tree. Bounds from earlier frames
// are dropped first. With ignoreRasterCache the cache is neither primed
// nor consulted for priming.
func (t *LayerTree) Preroll(frame *ScopedFrame, ignoreRasterCache bool) {
	if t.root == nil {
		return
	}
	invalidate(t.root)
	ctx := &PrerollContext{
		SystemComposite:       frame.SceneBackend(),
		FractionalTranslation: frame.fractional,
	}
	if !ignoreRasterCache {
		ctx.RasterCache = frame.RasterCache()
	}
	t.root.Preroll(ctx, gg.Identity())
}

// Paint paints the tree onto the frame's canvas.
func (t *LayerTree) Paint(frame *ScopedFrame) {
	if t.root == nil {
		return
	}
	paintLayer(t.root, frame)
}

// UpdateScene emits the tree's scene nodes under container. The tree is
// placed in a frame covering the whole frame size and scaled back to
// logical units.
func (t *LayerTree) UpdateScene(ctx *SceneUpdateContext, container *scenegraph.EntityNode) {
	if t.root == nil {
		return
	}
	s := 1 / t.devicePixelRatio
	tr := ctx.PushTransform(gg.Scale(s, s))
	defer tr.Pop()
	container.AddChild(tr.Node())

	bounds := canvas.RectWH(float64(t.frameSize.X), float64(t.frameSize.Y))
	f := ctx.PushFrame(canvas.RRectFromRect(bounds), gg.Transparent, 0, 1, 1)
	defer f.Pop()

	switch {
	case !t.root.NeedsPainting():
	case t.root.NeedsSystemComposite():
		t.root.UpdateScene(ctx)
	case t.root.NeedsPainting():
		f.AddPaintedLayer(t.root)
	}
}
