// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/rastercache"
)

// PrerollContext carries per-traversal state through Preroll.
type PrerollContext struct {
	// RasterCache is primed by layers that can reuse a raster of their
	// subtree. It is nil when caching is disabled.
	RasterCache *rastercache.Cache

	// ChildPaintBounds accumulates the bounds of the children of the
	// container currently being prerolled.
	ChildPaintBounds canvas.Rect

	// SystemComposite is set on the scene backend. Layers that can emit
	// their own scene nodes then mark themselves as needing a system
	// composite.
	SystemComposite bool

	// FractionalTranslation keeps sub-pixel translation in cache keys.
	FractionalTranslation bool
}

// cacheMatrix returns the raster cache key for a subtree drawn at m.
func (ctx *PrerollContext) cacheMatrix(m gg.Matrix) gg.Matrix {
	if ctx.FractionalTranslation {
		return m
	}
	return rastercache.IntegralTransform(m)
}

// prepare primes the cache for l drawn at ctm.
func (ctx *PrerollContext) prepare(l Layer, ctm gg.Matrix) {
	if ctx.RasterCache == nil {
		return
	}
	ctx.RasterCache.Prepare(cacheSource{layer: l, fractional: ctx.FractionalTranslation}, ctx.cacheMatrix(ctm))
}
