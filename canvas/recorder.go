// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// Op is one recorded canvas call.
type Op interface {
	// Apply replays the call onto c.
	Apply(c Canvas)
	fmt.Stringer
}

// SaveOp records Canvas.Save.
type SaveOp struct{}

// SaveLayerOp records Canvas.SaveLayer.
type SaveLayerOp struct {
	Bounds Rect
	Paint  *Paint
}

// RestoreOp records Canvas.Restore.
type RestoreOp struct{}

// TranslateOp records Canvas.Translate.
type TranslateOp struct{ DX, DY float64 }

// ScaleOp records Canvas.Scale.
type ScaleOp struct{ SX, SY float64 }

// ConcatOp records Canvas.Concat.
type ConcatOp struct{ Matrix gg.Matrix }

// SetMatrixOp records Canvas.SetMatrix.
type SetMatrixOp struct{ Matrix gg.Matrix }

// ClipRectOp records Canvas.ClipRect.
type ClipRectOp struct{ Rect Rect }

// ClipRRectOp records Canvas.ClipRRect.
type ClipRRectOp struct{ RRect RRect }

// ClipPathOp records Canvas.ClipPath.
type ClipPathOp struct{ Path *gg.Path }

// ClearOp records Canvas.Clear.
type ClearOp struct{ Color gg.RGBA }

// DrawRectOp records Canvas.DrawRect.
type DrawRectOp struct {
	Rect  Rect
	Paint *Paint
}

// DrawRRectOp records Canvas.DrawRRect.
type DrawRRectOp struct {
	RRect RRect
	Paint *Paint
}

// DrawPathOp records Canvas.DrawPath.
type DrawPathOp struct {
	Path  *gg.Path
	Paint *Paint
}

// DrawImageOp records Canvas.DrawImage.
type DrawImageOp struct {
	Image *gg.ImageBuf
	X, Y  float64
	Paint *Paint
}

// DrawShadowOp records Canvas.DrawShadow.
type DrawShadowOp struct {
	Path                *gg.Path
	Color               gg.RGBA
	Elevation           float64
	TransparentOccluder bool
}

// MaskRectOp records Canvas.MaskRect.
type MaskRectOp struct {
	Rect   Rect
	Shader gg.Brush
	Mode   MaskMode
}

func (SaveOp) Apply(c Canvas)        { c.Save() }
func (o SaveLayerOp) Apply(c Canvas) { c.SaveLayer(o.Bounds, o.Paint) }
func (RestoreOp) Apply(c Canvas)     { c.Restore() }
func (o TranslateOp) Apply(c Canvas) { c.Translate(o.DX, o.DY) }
func (o ScaleOp) Apply(c Canvas)     { c.Scale(o.SX, o.SY) }
func (o ConcatOp) Apply(c Canvas)    { c.Concat(o.Matrix) }
func (o SetMatrixOp) Apply(c Canvas) { c.SetMatrix(o.Matrix) }
func (o ClipRectOp) Apply(c Canvas)  { c.ClipRect(o.Rect) }
func (o ClipRRectOp) Apply(c Canvas) { c.ClipRRect(o.RRect) }
func (o ClipPathOp) Apply(c Canvas)  { c.ClipPath(o.Path) }
func (o ClearOp) Apply(c Canvas)     { c.Clear(o.Color) }
func (o DrawRectOp) Apply(c Canvas)  { c.DrawRect(o.Rect, o.Paint) }
func (o DrawRRectOp) Apply(c Canvas) { c.DrawRRect(o.RRect, o.Paint) }
func (o DrawPathOp) Apply(c Canvas)  { c.DrawPath(o.Path, o.Paint) }
func (o DrawImageOp) Apply(c Canvas) { c.DrawImage(o.Image, o.X, o.Y, o.Paint) }
func (o DrawShadowOp) Apply(c Canvas) {
	c.DrawShadow(o.Path, o.Color, o.Elevation, o.TransparentOccluder)
}
func (o MaskRectOp) Apply(c Canvas) { c.MaskRect(o.Rect, o.Shader, o.Mode) }

func (SaveOp) String() string        { return "Save" }
func (SaveLayerOp) String() string   { return "SaveLayer" }
func (RestoreOp) String() string     { return "Restore" }
func (TranslateOp) String() string   { return "Translate" }
func (ScaleOp) String() string       { return "Scale" }
func (ConcatOp) String() string      { return "Concat" }
func (SetMatrixOp) String() string   { return "SetMatrix" }
func (ClipRectOp) String() string    { return "ClipRect" }
func (ClipRRectOp) String() string   { return "ClipRRect" }
func (ClipPathOp) String() string    { return "ClipPath" }
func (ClearOp) String() string       { return "Clear" }
func (DrawRectOp) String() string    { return "DrawRect" }
func (DrawRRectOp) String() string   { return "DrawRRect" }
func (DrawPathOp) String() string    { return "DrawPath" }
func (DrawImageOp) String() string   { return "DrawImage" }
func (DrawShadowOp) String() string  { return "DrawShadow" }
func (MaskRectOp) String() string    { return "MaskRect" }

// Recorder is a Canvas that records calls for later playback.
// It tracks matrix and clip like a real canvas so QuickReject and
// TotalMatrix answer consistently.
type Recorder struct {
	ops   []Op
	stack stateStack
}

// NewRecorder creates a recorder whose device clip is bounds.
// An empty bounds means unbounded.
func NewRecorder(bounds Rect) *Recorder {
	if bounds.IsEmpty() {
		bounds = LargestRect
	}
	return &Recorder{stack: newStateStack(bounds)}
}

// Ops returns the recorded calls.
func (r *Recorder) Ops() []Op { return r.ops }

// Names returns the String of every recorded call.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.String()
	}
	return out
}

// Reset discards recorded calls and state.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.stack = newStateStack(r.stack.records[0].clip)
}

// Finish returns the recorded calls as a picture with the given cull rect
// and resets the recorder.
func (r *Recorder) Finish(cull Rect) *Picture {
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	r.Reset()
	return NewPicture(ops, cull)
}

func (r *Recorder) record(op Op) { r.ops = append(r.ops, op) }

// Save implements Canvas.
func (r *Recorder) Save() int {
	r.record(SaveOp{})
	return r.stack.push()
}

// SaveLayer implements Canvas.
func (r *Recorder) SaveLayer(bounds Rect, paint *Paint) int {
	r.record(SaveLayerOp{Bounds: bounds, Paint: paint})
	n := r.stack.pushLayer(paint)
	if !bounds.IsEmpty() {
		r.stack.clipLocal(bounds)
	}
	return n
}

// Restore implements Canvas.
func (r *Recorder) Restore() {
	if _, ok := r.stack.pop(); ok {
		r.record(RestoreOp{})
	}
}

// RestoreToCount implements Canvas.
func (r *Recorder) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for r.stack.count() > count {
		r.Restore()
	}
}

// SaveCount implements Canvas.
func (r *Recorder) SaveCount() int { return r.stack.count() }

// Translate implements Canvas.
func (r *Recorder) Translate(dx, dy float64) {
	r.record(TranslateOp{DX: dx, DY: dy})
	r.stack.translate(dx, dy)
}

// Scale implements Canvas.
func (r *Recorder) Scale(sx, sy float64) {
	r.record(ScaleOp{SX: sx, SY: sy})
	r.stack.scale(sx, sy)
}

// Concat implements Canvas.
func (r *Recorder) Concat(m gg.Matrix) {
	r.record(ConcatOp{Matrix: m})
	r.stack.concat(m)
}

// SetMatrix implements Canvas.
func (r *Recorder) SetMatrix(m gg.Matrix) {
	r.record(SetMatrixOp{Matrix: m})
	r.stack.setMatrix(m)
}

// TotalMatrix implements Canvas.
func (r *Recorder) TotalMatrix() gg.Matrix { return r.stack.top().matrix }

// ClipRect implements Canvas.
func (r *Recorder) ClipRect(rect Rect) {
	r.record(ClipRectOp{Rect: rect})
	r.stack.clipLocal(rect)
}

// ClipRRect implements Canvas.
func (r *Recorder) ClipRRect(rr RRect) {
	r.record(ClipRRectOp{RRect: rr})
	r.stack.clipLocal(rr.Rect)
}

// ClipPath implements Canvas.
func (r *Recorder) ClipPath(p *gg.Path) {
	r.record(ClipPathOp{Path: p})
	r.stack.clipLocal(PathBounds(p))
}

// QuickReject implements Canvas.
func (r *Recorder) QuickReject(rect Rect) bool { return r.stack.quickReject(rect) }

// DeviceClipBounds implements Canvas.
func (r *Recorder) DeviceClipBounds() Rect { return r.stack.top().clip }

// Clear implements Canvas.
func (r *Recorder) Clear(c gg.RGBA) { r.record(ClearOp{Color: c}) }

// DrawRect implements Canvas.
func (r *Recorder) DrawRect(rect Rect, paint *Paint) {
	r.record(DrawRectOp{Rect: rect, Paint: paint})
}

// DrawRRect implements Canvas.
func (r *Recorder) DrawRRect(rr RRect, paint *Paint) {
	r.record(DrawRRectOp{RRect: rr, Paint: paint})
}

// DrawPath implements Canvas.
func (r *Recorder) DrawPath(p *gg.Path, paint *Paint) {
	r.record(DrawPathOp{Path: p, Paint: paint})
}

// DrawImage implements Canvas.
func (r *Recorder) DrawImage(img *gg.ImageBuf, x, y float64, paint *Paint) {
	r.record(DrawImageOp{Image: img, X: x, Y: y, Paint: paint})
}

// DrawShadow implements Canvas.
func (r *Recorder) DrawShadow(p *gg.Path, c gg.RGBA, elevation float64, transparentOccluder bool) {
	r.record(DrawShadowOp{Path: p, Color: c, Elevation: elevation, TransparentOccluder: transparentOccluder})
}

// DrawPicture implements Canvas by recording the picture's calls inline.
func (r *Recorder) DrawPicture(pic *Picture) {
	if pic == nil {
		return
	}
	pic.Playback(r)
}

// MaskRect implements Canvas.
func (r *Recorder) MaskRect(rect Rect, shader gg.Brush, mode MaskMode) {
	r.record(MaskRectOp{Rect: rect, Shader: shader, Mode: mode})
}

var _ Canvas = (*Recorder)(nil)

var nextPictureID atomic.Uint64

// Picture is an immutable list of recorded canvas calls.
type Picture struct {
	id   uint64
	ops  []Op
	cull Rect
}

// NewPicture creates a picture from ops. cull bounds everything it draws.
func NewPicture(ops []Op, cull Rect) *Picture {
	return &Picture{id: nextPictureID.Add(1), ops: ops, cull: cull}
}

// ID returns a process-unique identifier for the picture.
func (p *Picture) ID() uint64 { return p.id }

// CullRect returns the bounds of what the picture draws.
func (p *Picture) CullRect() Rect { return p.cull }

// Ops returns the recorded calls.
func (p *Picture) Ops() []Op { return p.ops }

// Len returns the number of recorded calls.
func (p *Picture) Len() int { return len(p.ops) }

// Playback replays the picture onto c, leaving c's state unchanged.
// Pictures made only of draw calls are replayed without a save.
func (p *Picture) Playback(c Canvas) {
	if !p.changesState() {
		for _, op := range p.ops {
			op.Apply(c)
		}
		return
	}
	n := c.Save()
	for _, op := range p.ops {
		op.Apply(c)
	}
	c.RestoreToCount(n)
}

func (p *Picture) changesState() bool {
	for _, op := range p.ops {
		switch op.(type) {
		case DrawRectOp, DrawRRectOp, DrawPathOp, DrawImageOp, DrawShadowOp, ClearOp:
		default:
			return true
		}
	}
	return false
}
