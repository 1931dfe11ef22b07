// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"reflect"
	"testing"

	"github.com/gogpu/gg"
)

// TestRecorderSaveCount tests save counts and the floor at one.
func TestRecorderSaveCount(t *testing.T) {
	r := NewRecorder(EmptyRect())
	if got := r.SaveCount(); got != 1 {
		t.Fatalf("SaveCount() = %d, want 1", got)
	}
	if n := r.Save(); n != 1 {
		t.Errorf("Save() = %d, want 1", n)
	}
	if n := r.SaveLayer(EmptyRect(), nil); n != 2 {
		t.Errorf("SaveLayer() = %d, want 2", n)
	}
	r.RestoreToCount(1)
	r.Restore()
	if got := r.SaveCount(); got != 1 {
		t.Errorf("SaveCount() = %d, want 1", got)
	}
	want := []string{"Save", "SaveLayer", "Restore", "Restore"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

// TestRecorderMatrixAndClip tests that state follows save and restore.
func TestRecorderMatrixAndClip(t *testing.T) {
	r := NewRecorder(RectWH(100, 100))
	r.Save()
	r.Translate(10, 20)
	r.ClipRect(RectWH(5, 5))
	if got := r.DeviceClipBounds(); got != RectLTRB(10, 20, 15, 25) {
		t.Errorf("DeviceClipBounds() = %v", got)
	}
	if !r.QuickReject(RectLTRB(50, 50, 60, 60)) {
		t.Error("QuickReject() = false outside clip")
	}
	if r.QuickReject(RectLTRB(0, 0, 1, 1)) {
		t.Error("QuickReject() = true inside clip")
	}
	r.Restore()
	if got := r.TotalMatrix(); !got.IsIdentity() {
		t.Errorf("TotalMatrix() = %v, want identity", got)
	}
	if got := r.DeviceClipBounds(); got != RectWH(100, 100) {
		t.Errorf("DeviceClipBounds() after restore = %v", got)
	}
}

// TestRecorderSaveLayerClipsToBounds tests that layer bounds narrow the clip.
func TestRecorderSaveLayerClipsToBounds(t *testing.T) {
	r := NewRecorder(RectWH(100, 100))
	r.SaveLayer(RectLTRB(10, 10, 20, 20), AlphaPaint(128))
	if got := r.DeviceClipBounds(); got != RectLTRB(10, 10, 20, 20) {
		t.Errorf("DeviceClipBounds() = %v", got)
	}
	op, ok := r.Ops()[0].(SaveLayerOp)
	if !ok {
		t.Fatalf("Ops()[0] = %T, want SaveLayerOp", r.Ops()[0])
	}
	if got := op.Paint.Opacity(); got != 128.0/255 {
		t.Errorf("Opacity() = %v, want %v", got, 128.0/255)
	}
}

// TestPicturePlayback tests that a picture replays its calls in order.
func TestPicturePlayback(t *testing.T) {
	src := NewRecorder(EmptyRect())
	src.DrawRect(RectWH(10, 10), NewPaint(gg.RGB(1, 0, 0)))
	src.DrawRect(RectWH(5, 5), NewPaint(gg.RGB(0, 0, 1)))
	pic := src.Finish(RectWH(10, 10))

	if len(src.Ops()) != 0 {
		t.Errorf("recorder not reset after Finish")
	}
	if pic.Len() != 2 || pic.CullRect() != RectWH(10, 10) {
		t.Errorf("picture = %d ops, cull %v", pic.Len(), pic.CullRect())
	}

	dst := NewRecorder(EmptyRect())
	dst.DrawPicture(pic)
	want := []string{"DrawRect", "DrawRect"}
	if got := dst.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

// TestPicturePlaybackIsolatesState tests that state changes do not leak.
func TestPicturePlaybackIsolatesState(t *testing.T) {
	src := NewRecorder(EmptyRect())
	src.Translate(5, 5)
	src.DrawRect(RectWH(1, 1), nil)
	pic := src.Finish(RectWH(6, 6))

	dst := NewRecorder(EmptyRect())
	dst.DrawPicture(pic)
	if got := dst.SaveCount(); got != 1 {
		t.Errorf("SaveCount() = %d, want 1", got)
	}
	if !dst.TotalMatrix().IsIdentity() {
		t.Errorf("TotalMatrix() = %v, want identity", dst.TotalMatrix())
	}
	want := []string{"Save", "Translate", "DrawRect", "Restore"}
	if got := dst.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

// TestPictureIDsAreUnique tests picture identity.
func TestPictureIDsAreUnique(t *testing.T) {
	a := NewPicture(nil, EmptyRect())
	b := NewPicture(nil, EmptyRect())
	if a.ID() == b.ID() {
		t.Errorf("ID() collision: %d", a.ID())
	}
}
