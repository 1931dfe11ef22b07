// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/instrumentation"
	"github.com/gogpu/flow/rastercache"
)

// PaintContext is the long-lived state of one compositor: the raster cache
// and frame instrumentation.
//
// A PaintContext serves one frame at a time. It is not safe for concurrent
// use.
type PaintContext struct {
	opts  options
	cache *rastercache.Cache

	frameCount instrumentation.Counter
	sweeps     instrumentation.Counter
	frameTime  *instrumentation.Stopwatch
	engineTime *instrumentation.Stopwatch

	live *ScopedFrame
}

// NewPaintContext creates a paint context.
//
// Example:
//
//	pc := flow.NewPaintContext()
//	flow.WithFrame(pc, nil, cv, true, func(frame *flow.ScopedFrame) {
//	    tree.Paint(frame)
//	})
func NewPaintContext(opts ...Option) *PaintContext {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pc := &PaintContext{
		opts:       o,
		frameTime:  instrumentation.NewStopwatch(),
		engineTime: instrumentation.NewStopwatch(),
	}
	switch {
	case o.noCache:
	case o.cache != nil:
		pc.cache = o.cache
	default:
		pc.cache = rastercache.New(o.cacheOpts...)
	}
	return pc
}

// RasterCache returns the raster cache, or nil when caching is disabled.
func (pc *PaintContext) RasterCache() *rastercache.Cache { return pc.cache }

// FrameCount counts frames acquired with instrumentation enabled.
func (pc *PaintContext) FrameCount() *instrumentation.Counter { return &pc.frameCount }

// SweepCount counts raster cache sweeps, one per closed frame.
func (pc *PaintContext) SweepCount() uint64 { return pc.sweeps.Count() }

// FrameTime returns the stopwatch timing each instrumented frame.
func (pc *PaintContext) FrameTime() *instrumentation.Stopwatch { return pc.frameTime }

// EngineTime returns the stopwatch the host uses to time tree construction.
func (pc *PaintContext) EngineTime() *instrumentation.Stopwatch { return pc.engineTime }

// FractionalTranslation reports whether sub-pixel translation is kept.
func (pc *PaintContext) FractionalTranslation() bool { return pc.opts.fractional }

// SceneBackend reports whether layers emit scene nodes.
func (pc *PaintContext) SceneBackend() bool { return pc.opts.sceneBackend }

// AcquireFrame begins a frame drawing onto c. gpu may be nil for software
// rendering. The returned frame must be closed; acquiring a second frame
// while one is live is a precondition violation.
func (pc *PaintContext) AcquireFrame(gpu gpucontext.DeviceProvider, c canvas.Canvas, instrumentationEnabled bool) *ScopedFrame {
	return pc.acquireFrame(gpu, c, instrumentationEnabled, pc.opts.sceneBackend)
}

func (pc *PaintContext) acquireFrame(gpu gpucontext.DeviceProvider, c canvas.Canvas, instrumentationEnabled, sceneBackend bool) *ScopedFrame {
	precondition(pc.live == nil, "frame acquired while another frame is live")
	// Scene frames carry no raster cache: paint tasks draw under placements
	// that Preroll does not see.
	cache := pc.cache
	if sceneBackend {
		cache = nil
	}
	f := &ScopedFrame{
		ctx:             pc,
		gpu:             gpu,
		canvas:          c,
		cache:           cache,
		fractional:      pc.opts.fractional,
		sceneBackend:    sceneBackend,
		instrumentation: instrumentationEnabled,
	}
	pc.live = f
	pc.beginFrame(f)
	return f
}

// WithFrame acquires a frame, runs fn and closes the frame, also when fn
// panics.
func WithFrame(pc *PaintContext, gpu gpucontext.DeviceProvider, c canvas.Canvas, instrumentationEnabled bool, fn func(*ScopedFrame)) {
	f := pc.AcquireFrame(gpu, c, instrumentationEnabled)
	defer f.Close()
	fn(f)
}

func (pc *PaintContext) beginFrame(f *ScopedFrame) {
	if f.instrumentation {
		pc.frameCount.Increment()
		pc.frameTime.Start()
	}
}

func (pc *PaintContext) endFrame(f *ScopedFrame) {
	if pc.cache != nil {
		pc.cache.SweepAfterFrame()
	}
	pc.sweeps.Increment()
	if f.instrumentation {
		pc.frameTime.Stop()
	}
}

// ScopedFrame ties a canvas and an optional GPU device to one paint pass.
// Close ends the frame: it always sweeps the raster cache and stops the
// frame timer when instrumentation was enabled.
type ScopedFrame struct {
	ctx             *PaintContext
	gpu             gpucontext.DeviceProvider
	canvas          canvas.Canvas
	cache           *rastercache.Cache
	fractional      bool
	sceneBackend    bool
	instrumentation bool
	closed          bool
}

// newCanvasFrame returns a frame that only carries a canvas. Closing it
// does nothing. It is used to paint into raster cache entries.
func newCanvasFrame(c canvas.Canvas, fractional bool) *ScopedFrame {
	return &ScopedFrame{canvas: c, fractional: fractional, closed: true}
}

// withCanvas returns a view of f that draws onto c. The view shares f's
// cache and device but not its lifetime.
func (f *ScopedFrame) withCanvas(c canvas.Canvas) *ScopedFrame {
	return &ScopedFrame{
		ctx:        f.ctx,
		gpu:        f.gpu,
		canvas:     c,
		cache:      f.cache,
		fractional: f.fractional,
		closed:     true,
	}
}

// Canvas returns the canvas layers draw onto.
func (f *ScopedFrame) Canvas() canvas.Canvas { return f.canvas }

// Context returns the owning paint context. It is nil for frames that paint
// into raster cache entries.
func (f *ScopedFrame) Context() *PaintContext { return f.ctx }

// GPU returns the device the frame renders with, or nil.
func (f *ScopedFrame) GPU() gpucontext.DeviceProvider { return f.gpu }

// RasterCache returns the cache layers may draw from, or nil. Scene
// backend frames carry no cache.
func (f *ScopedFrame) RasterCache() *rastercache.Cache { return f.cache }

// SceneBackend reports whether layers emit scene nodes in this frame.
func (f *ScopedFrame) SceneBackend() bool { return f.sceneBackend }

// InstrumentationEnabled reports whether the frame is timed.
func (f *ScopedFrame) InstrumentationEnabled() bool { return f.instrumentation }

// Close ends the frame. It is idempotent.
func (f *ScopedFrame) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.ctx.live = nil
	f.ctx.endFrame(f)
}

// snap rounds the translation of m to whole pixels unless fractional
// translation is enabled.
func (f *ScopedFrame) snap(m gg.Matrix) gg.Matrix {
	if f.fractional {
		return m
	}
	return rastercache.IntegralTransform(m)
}
