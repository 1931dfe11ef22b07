// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rastercache stores rasterized snapshots of layer subtrees keyed by
// layer identity and transform.
//
// Entries live for as long as they are used. Every Prepare or Get during a
// frame marks the entry; SweepAfterFrame evicts entries that were not
// marked and clears the marks for the next frame.
package rastercache

import (
	"image"
	"math"
	"slices"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/internal/flowlog"
)

// DefaultThreshold is the number of frames a key must be prepared in before
// it is rasterized.
const DefaultThreshold = 3

// Source is content that can be rasterized into the cache.
type Source interface {
	// CacheID identifies the source across frames.
	CacheID() uint64
	// PaintBounds returns the bounds of what PaintTo draws, in the
	// coordinate space the cache transform maps from.
	PaintBounds() canvas.Rect
	// PaintTo draws the source onto c.
	PaintTo(c canvas.Canvas)
}

// Key identifies one cache entry.
type Key struct {
	ID     uint64
	Matrix gg.Matrix
}

type entry struct {
	used        bool
	accessCount int
	result      Result
}

// Result is a cache lookup result. The zero value is a miss.
type Result struct {
	image  *gg.ImageBuf
	bounds image.Rectangle
}

// Valid reports whether the result holds a raster.
func (r Result) Valid() bool { return r.image != nil }

// Image returns the cached raster, or nil on a miss.
func (r Result) Image() *gg.ImageBuf { return r.image }

// Bounds returns the device-space rectangle the raster covers.
func (r Result) Bounds() image.Rectangle { return r.bounds }

// Draw composites the raster onto c at its device position using paint.
// It is a no-op for a miss.
func (r Result) Draw(c canvas.Canvas, paint *canvas.Paint) {
	if !r.Valid() {
		return
	}
	c.Save()
	defer c.Restore()
	c.SetMatrix(gg.Identity())
	c.DrawImage(r.image, float64(r.bounds.Min.X), float64(r.bounds.Min.Y), paint)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Rasterized uint64
	Evictions  uint64
	Entries    int
}

// Cache is a raster cache. It is used from the rasterizer goroutine only;
// Stats may be read concurrently.
type Cache struct {
	threshold  int
	maxEntries int
	entries    map[Key]*entry

	hits       atomic.Uint64
	misses     atomic.Uint64
	rasterized atomic.Uint64
	evictions  atomic.Uint64
	size       atomic.Int64
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		threshold:  o.threshold,
		maxEntries: o.maxEntries,
		entries:    make(map[Key]*entry),
	}
}

// Threshold returns the access count at which entries are rasterized.
func (c *Cache) Threshold() int { return c.threshold }

// Prepare marks (src, ctm) as used this frame and rasterizes it once it has
// been prepared in Threshold frames. It reports whether a raster is
// available. Repeated calls within one frame count once.
func (c *Cache) Prepare(src Source, ctm gg.Matrix) bool {
	if src == nil || !invertible(ctm) {
		return false
	}
	key := Key{ID: src.CacheID(), Matrix: ctm}
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
		c.size.Store(int64(len(c.entries)))
	}
	if !e.used {
		e.used = true
		e.accessCount++
	}
	if e.accessCount < c.threshold {
		return false
	}
	if !e.result.Valid() {
		e.result = rasterize(src, ctm)
		if e.result.Valid() {
			c.rasterized.Add(1)
		}
	}
	return e.result.Valid()
}

// Get returns the raster for (src, ctm), marking it used. A miss is not an
// error; the caller paints normally.
func (c *Cache) Get(src Source, ctm gg.Matrix) Result {
	if src == nil {
		c.misses.Add(1)
		return Result{}
	}
	e, ok := c.entries[Key{ID: src.CacheID(), Matrix: ctm}]
	if !ok {
		c.misses.Add(1)
		return Result{}
	}
	e.used = true
	if !e.result.Valid() {
		c.misses.Add(1)
		return Result{}
	}
	c.hits.Add(1)
	return e.result
}

// SweepAfterFrame evicts entries not used since the previous sweep, clears
// the used marks and then enforces the entry limit. It returns the number
// of evicted entries.
func (c *Cache) SweepAfterFrame() int {
	evicted := 0
	for k, e := range c.entries {
		if !e.used {
			delete(c.entries, k)
			evicted++
			continue
		}
		e.used = false
	}
	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		evicted += c.trim()
	}
	if evicted > 0 {
		c.evictions.Add(uint64(evicted))
		flowlog.Logger().Debug("rastercache: sweep", "evicted", evicted, "entries", len(c.entries))
	}
	c.size.Store(int64(len(c.entries)))
	return evicted
}

// trim drops the least accessed entries until the limit holds.
func (c *Cache) trim() int {
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return c.entries[a].accessCount - c.entries[b].accessCount
	})
	n := len(c.entries) - c.maxEntries
	for _, k := range keys[:n] {
		delete(c.entries, k)
	}
	return n
}

// Contains reports whether an entry exists for (id, ctm), rasterized or not.
func (c *Cache) Contains(id uint64, ctm gg.Matrix) bool {
	_, ok := c.entries[Key{ID: id, Matrix: ctm}]
	return ok
}

// Len returns the number of entries.
func (c *Cache) Len() int { return len(c.entries) }

// Clear drops every entry.
func (c *Cache) Clear() {
	clear(c.entries)
	c.size.Store(0)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Rasterized: c.rasterized.Load(),
		Evictions:  c.evictions.Load(),
		Entries:    int(c.size.Load()),
	}
}

// IntegralTransform returns m with its translation rounded to whole pixels,
// which keeps cache keys stable under sub-pixel motion.
func IntegralTransform(m gg.Matrix) gg.Matrix {
	m.C = math.Round(m.C)
	m.F = math.Round(m.F)
	return m
}

func invertible(m gg.Matrix) bool {
	return math.Abs(m.A*m.E-m.B*m.D) >= 1e-10
}

// rasterize paints src at ctm into a tightly sized software canvas.
func rasterize(src Source, ctm gg.Matrix) Result {
	bounds := canvas.TransformRect(ctm, src.PaintBounds()).RoundOut()
	if bounds.Empty() {
		return Result{}
	}
	sw := canvas.NewSoftware(bounds.Dx(), bounds.Dy())
	sw.Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y))
	sw.Concat(ctm)
	src.PaintTo(sw)
	return Result{image: gg.ImageBufFromImage(sw.Image()), bounds: bounds}
}
