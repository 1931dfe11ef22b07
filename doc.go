// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package flow provides retained-mode layer compositing for gogpu.
//
// # Overview
//
// A frame is described by a tree of layers. The host builds the tree, then
// hands it to a rasterizer once per frame. Every frame walks the tree twice:
//
//   - Preroll computes each layer's paint bounds and primes the raster cache.
//   - Paint draws onto a canvas, or UpdateScene emits scene-graph nodes for
//     a remote compositor.
//
// Subtrees with empty or clipped-out bounds are skipped entirely during
// Paint. Children always paint in insertion order, back to front.
//
// # Quick Start
//
//	root := flow.NewContainerLayer()
//	op := flow.NewOpacityLayer(128, gg.Point{})
//	op.Add(flow.NewPhysicalModelLayer(
//	    canvas.RRectFromRectRadius(canvas.RectXYWH(10, 10, 100, 60), 8),
//	    4, gg.RGB(0.2, 0.4, 0.9)))
//	root.Add(op)
//
//	tree := flow.NewLayerTree(root, image.Pt(256, 256), 1)
//	cv := canvas.NewSoftware(256, 256)
//	flow.NewRasterizer(flow.NewPaintContext(), nil).Draw(tree, cv)
//
// # Frames
//
// PaintContext owns the raster cache and instrumentation. AcquireFrame opens
// a ScopedFrame; Close ends it, sweeping the raster cache every time and
// stopping the frame timer when instrumentation is enabled. WithFrame pairs
// the two for a function body.
//
// # Scene backend
//
// With WithSceneBackend, layers that can be composited remotely (physical
// models, child scenes, and the transforms and clips above them) become
// scene entities. Everything else is painted into the texture of the
// enclosing Frame. Paint tasks are queued during the tree walk and executed
// once per frame by ExecutePaintTasks. When no surface can be acquired, the
// frame falls back to a flat color and a warning is logged.
//
// # Precondition checks
//
// Painting a layer that was not prerolled, popping scene entities out of
// order and acquiring overlapping frames panic. Build with -tags flownocheck
// to compile these checks out.
package flow
