// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
)

// paintOnce prerolls and paints root onto c as a single frame.
func paintOnce(pc *PaintContext, root Layer, c canvas.Canvas) {
	WithFrame(pc, nil, c, false, func(frame *ScopedFrame) {
		tree := NewLayerTree(root, image.Pt(100, 100), 1)
		tree.Preroll(frame, false)
		tree.Paint(frame)
	})
}

// TestContainerBoundsUnion tests that a container's bounds are the union
// of its children's bounds.
func TestContainerBoundsUnion(t *testing.T) {
	root := NewContainerLayer()
	root.Add(newLeaf(canvas.RectXYWH(0, 0, 10, 10), gg.Black))
	root.Add(newLeaf(canvas.RectXYWH(5, 5, 15, 15), gg.Black))
	root.Add(newLeaf(canvas.RectXYWH(20, 20, 5, 5), gg.Black))

	root.Preroll(&PrerollContext{}, gg.Identity())

	if got, want := root.PaintBounds(), canvas.RectLTRB(0, 0, 25, 25); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if !root.NeedsPainting() {
		t.Error("NeedsPainting() = false, want true")
	}
}

// TestEmptyContainer tests that a container without children needs no
// painting.
func TestEmptyContainer(t *testing.T) {
	root := NewContainerLayer()
	root.Preroll(&PrerollContext{}, gg.Identity())

	if !root.PaintBounds().IsEmpty() {
		t.Errorf("PaintBounds() = %v, want empty", root.PaintBounds())
	}
	if root.NeedsPainting() {
		t.Error("NeedsPainting() = true for empty container")
	}
}

// TestNestedContainerRestoresAccumulator tests that prerolling a nested
// container does not leak its children into the outer union.
func TestNestedContainerRestoresAccumulator(t *testing.T) {
	outer := NewContainerLayer()
	inner := NewClipRectLayer(canvas.RectWH(5, 5))
	inner.Add(newLeaf(canvas.RectXYWH(0, 0, 50, 50), gg.Black))
	outer.Add(newLeaf(canvas.RectXYWH(10, 10, 5, 5), gg.Black))
	outer.Add(inner)

	ctx := &PrerollContext{ChildPaintBounds: canvas.RectWH(1, 1)}
	outer.Preroll(ctx, gg.Identity())

	if got, want := outer.PaintBounds(), canvas.RectLTRB(0, 0, 15, 15); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if got := ctx.ChildPaintBounds; got != canvas.RectWH(1, 1) {
		t.Errorf("ChildPaintBounds = %v, want the caller's value restored", got)
	}
}

// TestOpacityOverClipOps tests the canvas calls of an opacity layer over a
// rectangle clip.
func TestOpacityOverClipOps(t *testing.T) {
	op := NewOpacityLayer(128, gg.Point{})
	clip := NewClipRectLayer(canvas.RectWH(10, 10))
	leaf := newLeaf(canvas.RectWH(10, 10), gg.RGB(1, 0, 0))
	clip.Add(leaf)
	op.Add(clip)

	pc := NewPaintContext()
	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(pc, op, rec)

	if got, want := op.PaintBounds(), canvas.RectWH(10, 10); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if got := rec.Names(); !equalNames(got, "SaveLayer", "Save", "ClipRect", "DrawRect", "Restore", "Restore") {
		t.Errorf("ops = %v", got)
	}
	sl, ok := rec.Ops()[0].(canvas.SaveLayerOp)
	if !ok {
		t.Fatalf("ops[0] = %T, want SaveLayerOp", rec.Ops()[0])
	}
	if sl.Bounds != canvas.RectWH(10, 10) {
		t.Errorf("SaveLayer bounds = %v", sl.Bounds)
	}
	if got, want := sl.Paint.Opacity(), 128.0/255; got != want {
		t.Errorf("SaveLayer opacity = %v, want %v", got, want)
	}
}

// TestTransparentOpacityPaintsNothing tests that alpha 0 skips the subtree.
func TestTransparentOpacityPaintsNothing(t *testing.T) {
	op := NewOpacityLayer(0, gg.Point{})
	leaf := newLeaf(canvas.RectWH(10, 10), gg.Black)
	op.Add(leaf)

	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(WithoutRasterCache()), op, rec)

	if len(rec.Ops()) != 0 || leaf.paints != 0 {
		t.Errorf("ops = %v, leaf paints = %d", rec.Names(), leaf.paints)
	}
}

// TestPaintSkipsEmptyAndRejected tests that layers with empty bounds or
// bounds outside the clip are skipped with their subtrees.
func TestPaintSkipsEmptyAndRejected(t *testing.T) {
	root := NewContainerLayer()
	visible := newLeaf(canvas.RectXYWH(0, 0, 10, 10), gg.Black)
	empty := newLeaf(canvas.Rect{}, gg.Black)
	offscreen := newLeaf(canvas.RectXYWH(200, 200, 10, 10), gg.Black)
	clipped := NewClipRectLayer(canvas.RectXYWH(500, 500, 10, 10))
	hidden := newLeaf(canvas.RectXYWH(0, 0, 10, 10), gg.Black)
	clipped.Add(hidden)
	for _, l := range []Layer{visible, empty, offscreen, clipped} {
		root.Add(l)
	}

	rec := canvas.NewRecorder(canvas.RectWH(100, 100))
	paintOnce(NewPaintContext(), root, rec)

	if visible.paints != 1 {
		t.Errorf("visible paints = %d, want 1", visible.paints)
	}
	for name, l := range map[string]*leafLayer{"empty": empty, "offscreen": offscreen, "hidden": hidden} {
		if l.paints != 0 {
			t.Errorf("%s paints = %d, want 0", name, l.paints)
		}
	}
	if clipped.NeedsPainting() {
		t.Error("clip with disjoint child NeedsPainting() = true")
	}
}

// TestPaintOrder tests that children paint in insertion order.
func TestPaintOrder(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"ab", []string{"a", "b"}},
		{"ba", []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			root := NewContainerLayer()
			for _, n := range tt.order {
				root.Add(newNamedLeaf(n, canvas.RectWH(10, 10), &log))
			}
			paintOnce(NewPaintContext(), root, canvas.NewRecorder(canvas.Rect{}))
			if !slices.Equal(log, tt.order) {
				t.Errorf("paint order = %v, want %v", log, tt.order)
			}
		})
	}
}

// TestPaintBeforePrerollPanics tests the Preroll-before-Paint precondition.
func TestPaintBeforePrerollPanics(t *testing.T) {
	leaf := newLeaf(canvas.RectWH(10, 10), gg.Black)
	frame := newCanvasFrame(canvas.NewRecorder(canvas.Rect{}), false)
	expectPanic(t, "Paint", func() { leaf.Paint(frame) })
	expectPanic(t, "PaintBounds", func() { _ = leaf.PaintBounds() })
}

// TestAddRejectsSecondParent tests single ownership of layers.
func TestAddRejectsSecondParent(t *testing.T) {
	a := NewContainerLayer()
	b := NewContainerLayer()
	leaf := newLeaf(canvas.RectWH(1, 1), gg.Black)
	a.Add(leaf)

	if leaf.Parent() != a {
		t.Errorf("Parent() = %p, want %p", leaf.Parent(), a)
	}
	expectPanic(t, "Add", func() { b.Add(leaf) })

	a.RemoveAll()
	if leaf.Parent() != nil || len(a.Layers()) != 0 {
		t.Error("RemoveAll() left the child attached")
	}
	b.Add(leaf)
	if leaf.Parent() != b {
		t.Error("layer not re-parented after RemoveAll")
	}
}

// TestInvalidateClearsBounds tests that bounds from an earlier frame are
// dropped for the whole subtree.
func TestInvalidateClearsBounds(t *testing.T) {
	root := NewContainerLayer()
	leaf := newLeaf(canvas.RectWH(10, 10), gg.Black)
	root.Add(leaf)
	root.Preroll(&PrerollContext{}, gg.Identity())

	invalidate(root)

	if root.HasPaintBounds() || leaf.HasPaintBounds() {
		t.Error("HasPaintBounds() = true after invalidate")
	}
	if leaf.NeedsPainting() {
		t.Error("NeedsPainting() = true after invalidate")
	}
}

// TestLayerIDsAreUnique tests layer ID assignment.
func TestLayerIDsAreUnique(t *testing.T) {
	a := newLeaf(canvas.Rect{}, gg.Black)
	b := newLeaf(canvas.Rect{}, gg.Black)
	if a.ID() == 0 || a.ID() == b.ID() {
		t.Errorf("IDs = %d, %d", a.ID(), b.ID())
	}
}

// TestTransformLayer tests bounds mapping and canvas calls.
func TestTransformLayer(t *testing.T) {
	tl := NewTransformLayer(gg.Translate(10, 20))
	tl.Add(newLeaf(canvas.RectWH(5, 5), gg.Black))

	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), tl, rec)

	if got, want := tl.PaintBounds(), canvas.RectXYWH(10, 20, 5, 5); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if got := rec.Names(); !equalNames(got, "Save", "Concat", "DrawRect", "Restore") {
		t.Errorf("ops = %v", got)
	}
}

// TestClipLayersIntersectBounds tests that clip layers intersect their
// children's bounds with the clip.
func TestClipLayersIntersectBounds(t *testing.T) {
	path := gg.NewPath()
	path.Rectangle(0, 0, 4, 4)

	tests := []struct {
		name  string
		layer interface {
			Layer
			Add(Layer)
		}
		clipOp string
		want   canvas.Rect
	}{
		{"rect", NewClipRectLayer(canvas.RectWH(5, 5)), "ClipRect", canvas.RectWH(5, 5)},
		{"rrect", NewClipRRectLayer(canvas.RRectFromRectRadius(canvas.RectWH(6, 6), 2)), "ClipRRect", canvas.RectWH(6, 6)},
		{"path", NewClipPathLayer(path), "ClipPath", canvas.RectWH(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.layer.Add(newLeaf(canvas.RectWH(10, 10), gg.Black))
			rec := canvas.NewRecorder(canvas.Rect{})
			paintOnce(NewPaintContext(), tt.layer, rec)

			if got := tt.layer.PaintBounds(); got != tt.want {
				t.Errorf("PaintBounds() = %v, want %v", got, tt.want)
			}
			if got := rec.Names(); !equalNames(got, "Save", tt.clipOp, "DrawRect", "Restore") {
				t.Errorf("ops = %v", got)
			}
		})
	}
}

// TestPhysicalModelLayer tests shadow bounds and canvas calls.
func TestPhysicalModelLayer(t *testing.T) {
	rr := canvas.RRectFromRectRadius(canvas.RectXYWH(10, 10, 40, 40), 4)
	pm := NewPhysicalModelLayer(rr, 6, gg.RGB(0, 0, 1))
	pm.Add(newLeaf(canvas.RectXYWH(20, 20, 10, 10), gg.RGB(1, 0, 0)))

	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), pm, rec)

	if got, want := pm.PaintBounds(), canvas.ShadowBounds(rr.Bounds(), 6); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if got := rec.Names(); !equalNames(got, "DrawShadow", "DrawRRect", "Save", "ClipRRect", "DrawRect", "Restore") {
		t.Errorf("ops = %v", got)
	}
	if pm.NeedsSystemComposite() {
		t.Error("NeedsSystemComposite() = true on the canvas backend")
	}
}

// TestFilterLayers tests the canvas calls of color filter and shader mask
// layers.
func TestFilterLayers(t *testing.T) {
	cf := NewColorFilterLayer(gg.RGB(0, 1, 0), canvas.FilterSrcIn)
	cf.Add(newLeaf(canvas.RectWH(10, 10), gg.Black))
	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), cf, rec)

	if got := rec.Names(); !equalNames(got, "SaveLayer", "DrawRect", "Restore") {
		t.Errorf("color filter ops = %v", got)
	}
	if sl := rec.Ops()[0].(canvas.SaveLayerOp); sl.Paint == nil || sl.Paint.ColorFilter == nil {
		t.Error("color filter SaveLayer has no filter")
	}

	sm := NewShaderMaskLayer(gg.Solid(gg.Black), canvas.RectXYWH(2, 3, 4, 5), canvas.MaskDstIn)
	sm.Add(newLeaf(canvas.RectWH(10, 10), gg.Black))
	rec = canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), sm, rec)

	if got := rec.Names(); !equalNames(got, "SaveLayer", "DrawRect", "Translate", "MaskRect", "Restore") {
		t.Errorf("shader mask ops = %v", got)
	}
	if m := rec.Ops()[3].(canvas.MaskRectOp); m.Rect != canvas.RectWH(4, 5) {
		t.Errorf("MaskRect rect = %v, want %v", m.Rect, canvas.RectWH(4, 5))
	}
}

// TestPictureLayer tests that a picture is replayed at its offset.
func TestPictureLayer(t *testing.T) {
	r := canvas.NewRecorder(canvas.Rect{})
	r.DrawRect(canvas.RectWH(8, 8), canvas.NewPaint(gg.Black))
	pic := r.Finish(canvas.RectWH(8, 8))

	pl := NewPictureLayer(gg.Pt(3, 4), pic)
	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), pl, rec)

	if got, want := pl.PaintBounds(), canvas.RectXYWH(3, 4, 8, 8); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if got := rec.Names(); !equalNames(got, "Save", "Translate", "DrawRect", "Restore") {
		t.Errorf("ops = %v", got)
	}
}

// TestComplexPictureIsCached tests that a complex picture is drawn from the
// raster cache once it has been prepared in enough frames.
func TestComplexPictureIsCached(t *testing.T) {
	r := canvas.NewRecorder(canvas.Rect{})
	r.DrawRect(canvas.RectWH(8, 8), canvas.NewPaint(gg.Black))
	pl := NewPictureLayer(gg.Point{}, r.Finish(canvas.RectWH(8, 8)))
	pl.IsComplex = true

	pc := NewPaintContext()
	var rec *canvas.Recorder
	for range pc.RasterCache().Threshold() {
		rec = canvas.NewRecorder(canvas.Rect{})
		paintOnce(pc, pl, rec)
	}
	if !slices.Contains(rec.Names(), "DrawImage") || slices.Contains(rec.Names(), "DrawRect") {
		t.Errorf("ops = %v, want a cached image", rec.Names())
	}
}

// TestChildSceneLayerPaintsNothing tests that a child scene has no canvas
// output.
func TestChildSceneLayerPaintsNothing(t *testing.T) {
	cs := NewChildSceneLayer(NewExportNode(1), gg.Pt(1, 2), gg.Pt(30, 40), 2)
	rec := canvas.NewRecorder(canvas.Rect{})
	paintOnce(NewPaintContext(), cs, rec)

	if got, want := cs.PaintBounds(), canvas.RectXYWH(1, 2, 30, 40); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if len(rec.Ops()) != 0 {
		t.Errorf("ops = %v, want none", rec.Names())
	}
	if cs.NeedsSystemComposite() {
		t.Error("NeedsSystemComposite() = true on the canvas backend")
	}
}
