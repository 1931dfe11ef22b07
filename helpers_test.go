// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"errors"
	"image"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
	"github.com/gogpu/flow/surface"
)

// leafLayer draws one filled rectangle and counts its paints.
type leafLayer struct {
	LayerBase
	rect   canvas.Rect
	color  gg.RGBA
	name   string
	log    *[]string
	paints int
}

func newLeaf(r canvas.Rect, c gg.RGBA) *leafLayer {
	return &leafLayer{rect: r, color: c}
}

func newNamedLeaf(name string, r canvas.Rect, log *[]string) *leafLayer {
	return &leafLayer{rect: r, color: gg.RGB(1, 0, 0), name: name, log: log}
}

func (l *leafLayer) Preroll(*PrerollContext, gg.Matrix) {
	l.SetPaintBounds(l.rect)
}

func (l *leafLayer) Paint(frame *ScopedFrame) {
	l.checkPaint()
	l.paints++
	if l.log != nil {
		*l.log = append(*l.log, l.name)
	}
	frame.Canvas().DrawRect(l.rect, canvas.NewPaint(l.color))
}

func prerollLeaf(l Layer) {
	l.Preroll(&PrerollContext{}, gg.Identity())
}

var errNoSurface = errors.New("no surface")

// fakeProducer hands out image surfaces, or recording surfaces when record
// is set, and remembers every requested size.
type fakeProducer struct {
	fail    bool
	record  bool
	session *scenegraph.Session
	sizes   []image.Point
	made    []surface.Surface
}

func (p *fakeProducer) ProduceSurface(size image.Point) (surface.Surface, error) {
	p.sizes = append(p.sizes, size)
	if p.fail {
		return nil, errNoSurface
	}
	s := p.session
	if s == nil {
		s = scenegraph.NewSession()
	}
	var out surface.Surface
	if p.record {
		out = &recordingSurface{
			size: size,
			rec:  canvas.NewRecorder(canvas.RectWH(float64(size.X), float64(size.Y))),
			img:  scenegraph.NewImage(s, size, gputypes.TextureFormatRGBA8Unorm),
		}
	} else {
		is, err := surface.NewImageSurface(s, size, gputypes.TextureFormatRGBA8Unorm)
		if err != nil {
			return nil, err
		}
		out = is
	}
	p.made = append(p.made, out)
	return out, nil
}

// recordingSurface is a surface whose canvas records calls.
type recordingSurface struct {
	size image.Point
	rec  *canvas.Recorder
	img  *scenegraph.Image
	age  int
}

func (s *recordingSurface) Size() image.Point              { return s.size }
func (s *recordingSurface) Canvas() canvas.Canvas          { return s.rec }
func (s *recordingSurface) Image() *scenegraph.Image       { return s.img }
func (s *recordingSurface) Format() gputypes.TextureFormat { return s.img.Format() }
func (s *recordingSurface) Publish() error                 { return nil }
func (s *recordingSurface) Snapshot() *image.RGBA          { return s.img.Snapshot() }
func (s *recordingSurface) Close() error                   { return nil }

func (s *recordingSurface) AdvanceAndGetAge() int {
	s.age++
	return s.age
}

// drawRects returns the rectangles of every DrawRect call in ops.
func drawRects(ops []canvas.Op) []canvas.Rect {
	var out []canvas.Rect
	for _, op := range ops {
		if d, ok := op.(canvas.DrawRectOp); ok {
			out = append(out, d.Rect)
		}
	}
	return out
}

func expectPanic(t testing.TB, name string, fn func()) {
	t.Helper()
	if !checksEnabled {
		t.Skip("precondition checks are compiled out")
	}
	defer func() {
		if recover() == nil {
			t.Error(name, "did not panic")
		}
	}()
	fn()
}

func colorNear(a, b gg.RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol && math.Abs(a.A-b.A) <= tol
}

func equalNames(got []string, want ...string) bool {
	return slices.Equal(got, want)
}
