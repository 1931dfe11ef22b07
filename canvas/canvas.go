// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"github.com/gogpu/gg"
)

// Canvas is the drawing surface layers paint into.
//
// Save and SaveLayer push a state record holding the current matrix and
// clip; Restore pops it. SaveCount starts at 1 and never drops below it.
type Canvas interface {
	// Save pushes the matrix and clip and returns the count before the push.
	Save() int
	// SaveLayer pushes state and redirects drawing into an offscreen layer
	// that is composited with paint on Restore. A nil paint composites
	// opaquely. bounds limits the layer extent.
	SaveLayer(bounds Rect, paint *Paint) int
	// Restore pops one state record. It is a no-op at count 1.
	Restore()
	// RestoreToCount pops until SaveCount equals count.
	RestoreToCount(count int)
	// SaveCount returns the number of state records on the stack.
	SaveCount() int

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	// Concat post-multiplies m onto the current matrix.
	Concat(m gg.Matrix)
	SetMatrix(m gg.Matrix)
	TotalMatrix() gg.Matrix

	ClipRect(r Rect)
	ClipRRect(rr RRect)
	ClipPath(p *gg.Path)
	// QuickReject reports whether r, in local coordinates, lies entirely
	// outside the current device clip.
	QuickReject(r Rect) bool
	// DeviceClipBounds returns the current clip in device coordinates.
	DeviceClipBounds() Rect

	// Clear replaces every pixel inside the clip with c.
	Clear(c gg.RGBA)
	DrawRect(r Rect, paint *Paint)
	DrawRRect(rr RRect, paint *Paint)
	DrawPath(p *gg.Path, paint *Paint)
	DrawImage(img *gg.ImageBuf, x, y float64, paint *Paint)
	// DrawShadow paints the shadow cast by path at elevation.
	DrawShadow(p *gg.Path, c gg.RGBA, elevation float64, transparentOccluder bool)
	DrawPicture(pic *Picture)
	// MaskRect masks content inside r by shader using mode.
	MaskRect(r Rect, shader gg.Brush, mode MaskMode)
}

type state struct {
	matrix gg.Matrix
	clip   Rect
	// mask holds non-rectangular clip coverage. It is replaced, never
	// mutated, so records may share it.
	mask  *gg.Mask
	layer *Paint
	isLyr bool
}

// stateStack tracks the matrix and device clip shared by Canvas
// implementations. The bottom record is never popped.
type stateStack struct {
	records []state
}

func newStateStack(clip Rect) stateStack {
	return stateStack{records: []state{{matrix: gg.Identity(), clip: clip}}}
}

func (s *stateStack) top() *state {
	return &s.records[len(s.records)-1]
}

func (s *stateStack) count() int {
	return len(s.records)
}

func (s *stateStack) push() int {
	n := len(s.records)
	rec := *s.top()
	rec.layer = nil
	rec.isLyr = false
	s.records = append(s.records, rec)
	return n
}

func (s *stateStack) pushLayer(paint *Paint) int {
	n := s.push()
	t := s.top()
	t.layer = paint
	t.isLyr = true
	return n
}

// pop removes the top record and returns it. ok is false at count 1.
func (s *stateStack) pop() (state, bool) {
	if len(s.records) <= 1 {
		return state{}, false
	}
	rec := *s.top()
	s.records = s.records[:len(s.records)-1]
	return rec, true
}

func (s *stateStack) translate(dx, dy float64) {
	t := s.top()
	t.matrix = t.matrix.Multiply(gg.Translate(dx, dy))
}

func (s *stateStack) scale(sx, sy float64) {
	t := s.top()
	t.matrix = t.matrix.Multiply(gg.Scale(sx, sy))
}

func (s *stateStack) concat(m gg.Matrix) {
	t := s.top()
	t.matrix = t.matrix.Multiply(m)
}

func (s *stateStack) setMatrix(m gg.Matrix) {
	s.top().matrix = m
}

func (s *stateStack) clipLocal(r Rect) {
	t := s.top()
	t.clip = t.clip.Intersect(TransformRect(t.matrix, r))
}

func (s *stateStack) quickReject(r Rect) bool {
	if r.IsEmpty() {
		return true
	}
	t := s.top()
	return !TransformRect(t.matrix, r).Intersects(t.clip)
}
