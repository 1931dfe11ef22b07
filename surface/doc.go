// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the pixel targets that deferred paint tasks
// render into.
//
// A Producer hands out Surfaces of a requested physical size. Each Surface
// carries a canvas for drawing and a scenegraph.Image that the remote
// compositor samples once the surface is published.
//
// # Pool
//
// Pool is the default Producer. It keeps published surfaces for reuse in
// later frames and releases surfaces that stay unused for longer than the
// configured maximum age:
//
//	pool := surface.NewPool(session, surface.WithMaxSurfaces(32))
//	s, err := pool.ProduceSurface(image.Pt(256, 128))
//	if err != nil {
//	    // fall back to a flat color
//	}
//	s.Canvas().Clear(gg.White)
//	pool.Submit(s)
//	pool.FinishFrame()
//
// A pool with a surface budget reports ErrExhausted once the budget is
// spent. Callers treat that as a recoverable condition.
package surface
