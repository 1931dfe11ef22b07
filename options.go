// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import "github.com/gogpu/flow/rastercache"

// Option configures a PaintContext during creation.
// Use functional options to customize caching and backend behavior.
//
// Example:
//
//	// Default: raster cache on, integral translation, canvas backend
//	pc := flow.NewPaintContext()
//
//	// Scene backend with a bounded cache
//	pc := flow.NewPaintContext(
//	    flow.WithSceneBackend(),
//	    flow.WithRasterCacheOptions(rastercache.WithMaxEntries(64)),
//	)
type Option func(*options)

// options holds optional configuration for PaintContext creation.
type options struct {
	cache        *rastercache.Cache
	cacheOpts    []rastercache.Option
	noCache      bool
	fractional   bool
	sceneBackend bool
}

// defaultOptions returns the default paint context options.
func defaultOptions() options {
	return options{}
}

// WithRasterCache injects an existing raster cache, for example one shared
// with another paint context that never runs concurrently with this one.
func WithRasterCache(c *rastercache.Cache) Option {
	return func(o *options) {
		o.cache = c
		o.noCache = c == nil
	}
}

// WithRasterCacheOptions configures the raster cache created by
// NewPaintContext. It has no effect together with WithRasterCache.
func WithRasterCacheOptions(opts ...rastercache.Option) Option {
	return func(o *options) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithoutRasterCache disables raster caching. Layers then always paint
// their children directly.
func WithoutRasterCache() Option {
	return func(o *options) {
		o.noCache = true
		o.cache = nil
	}
}

// WithFractionalTranslation keeps fractional translation in cache keys and
// paint matrices. By default translations are rounded to whole pixels so
// cached rasters stay valid under sub-pixel jitter.
func WithFractionalTranslation() Option {
	return func(o *options) {
		o.fractional = true
	}
}

// WithSceneBackend makes layers that support it emit scene-graph nodes
// during UpdateScene instead of drawing on the canvas.
func WithSceneBackend() Option {
	return func(o *options) {
		o.sceneBackend = true
	}
}
