// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle stored as edges.
// A rectangle with Right <= Left or Bottom <= Top is empty.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectXYWH creates a rectangle from its origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// RectLTRB creates a rectangle from its edges.
func RectLTRB(l, t, r, b float64) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// RectWH creates a rectangle at the origin with the given size.
func RectWH(w, h float64) Rect {
	return Rect{Right: w, Bottom: h}
}

// EmptyRect returns the canonical empty rectangle.
func EmptyRect() Rect {
	return Rect{}
}

// LargestRect is used as the clip of canvases that have no device bounds.
var LargestRect = Rect{Left: -1e9, Top: -1e9, Right: 1e9, Bottom: 1e9}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left && r.Bottom > r.Top)
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() gg.Point {
	return gg.Pt((r.Left+r.Right)*0.5, (r.Top+r.Bottom)*0.5)
}

// Union returns the smallest rectangle containing both r and o.
// Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o, or an empty rectangle.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Left >= r.Left && o.Top >= r.Top && o.Right <= r.Right && o.Bottom <= r.Bottom
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset returns r grown by d on every side.
func (r Rect) Outset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

// TransformRect maps r through m and returns the bounding box of the result.
func TransformRect(m gg.Matrix, r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	if m.IsTranslation() {
		return r.Offset(m.C, m.F)
	}
	p0 := m.TransformPoint(gg.Pt(r.Left, r.Top))
	p1 := m.TransformPoint(gg.Pt(r.Right, r.Top))
	p2 := m.TransformPoint(gg.Pt(r.Right, r.Bottom))
	p3 := m.TransformPoint(gg.Pt(r.Left, r.Bottom))
	return Rect{
		Left:   math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X)),
		Top:    math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y)),
		Right:  math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X)),
		Bottom: math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y)),
	}
}

// Corner indexes into RRect.Radii.
type Corner int

// Corners in clockwise order starting at the upper left.
const (
	UpperLeft Corner = iota
	UpperRight
	LowerRight
	LowerLeft
)

// RRect is a rectangle with circular corners of independent radii.
type RRect struct {
	Rect  Rect
	Radii [4]float64
}

// RRectFromRect returns a rounded rectangle with square corners.
func RRectFromRect(r Rect) RRect {
	return RRect{Rect: r}
}

// RRectFromRectRadius returns a rounded rectangle with one radius on every corner.
func RRectFromRectRadius(r Rect, radius float64) RRect {
	return RRect{Rect: r, Radii: [4]float64{radius, radius, radius, radius}}
}

// IsEmpty reports whether the rounded rectangle encloses no area.
func (rr RRect) IsEmpty() bool { return rr.Rect.IsEmpty() }

// Bounds returns the enclosing rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// Width returns the horizontal extent.
func (rr RRect) Width() float64 { return rr.Rect.Width() }

// Height returns the vertical extent.
func (rr RRect) Height() float64 { return rr.Rect.Height() }

// Radius returns the clamped radius of corner c.
func (rr RRect) Radius(c Corner) float64 {
	limit := math.Min(rr.Rect.Width(), rr.Rect.Height()) * 0.5
	return math.Max(0, math.Min(rr.Radii[c], limit))
}

// ContainsPoint reports whether p lies inside the rounded shape.
func (rr RRect) ContainsPoint(p gg.Point) bool {
	r := rr.Rect
	if p.X < r.Left || p.X > r.Right || p.Y < r.Top || p.Y > r.Bottom {
		return false
	}
	check := func(c Corner, cx, cy float64, inX, inY bool) bool {
		rad := rr.Radius(c)
		if rad == 0 || !inX || !inY {
			return true
		}
		dx, dy := p.X-cx, p.Y-cy
		return dx*dx+dy*dy <= rad*rad
	}
	ul, ur, lr, ll := rr.Radius(UpperLeft), rr.Radius(UpperRight), rr.Radius(LowerRight), rr.Radius(LowerLeft)
	return check(UpperLeft, r.Left+ul, r.Top+ul, p.X < r.Left+ul, p.Y < r.Top+ul) &&
		check(UpperRight, r.Right-ur, r.Top+ur, p.X > r.Right-ur, p.Y < r.Top+ur) &&
		check(LowerRight, r.Right-lr, r.Bottom-lr, p.X > r.Right-lr, p.Y > r.Bottom-lr) &&
		check(LowerLeft, r.Left+ll, r.Bottom-ll, p.X < r.Left+ll, p.Y > r.Bottom-ll)
}

// Contains reports whether the rectangle o lies inside the rounded shape.
func (rr RRect) Contains(o Rect) bool {
	if !rr.Rect.Contains(o) {
		return false
	}
	return rr.ContainsPoint(gg.Pt(o.Left, o.Top)) &&
		rr.ContainsPoint(gg.Pt(o.Right, o.Top)) &&
		rr.ContainsPoint(gg.Pt(o.Right, o.Bottom)) &&
		rr.ContainsPoint(gg.Pt(o.Left, o.Bottom))
}

// Path returns the outline of the rounded rectangle.
func (rr RRect) Path() *gg.Path {
	// kappa approximates a quarter circle with one cubic segment.
	const kappa = 0.5522847498307936
	r := rr.Rect
	ul, ur, lr, ll := rr.Radius(UpperLeft), rr.Radius(UpperRight), rr.Radius(LowerRight), rr.Radius(LowerLeft)

	p := gg.NewPath()
	p.MoveTo(r.Left+ul, r.Top)
	p.LineTo(r.Right-ur, r.Top)
	if ur > 0 {
		p.CubicTo(r.Right-ur+ur*kappa, r.Top, r.Right, r.Top+ur-ur*kappa, r.Right, r.Top+ur)
	}
	p.LineTo(r.Right, r.Bottom-lr)
	if lr > 0 {
		p.CubicTo(r.Right, r.Bottom-lr+lr*kappa, r.Right-lr+lr*kappa, r.Bottom, r.Right-lr, r.Bottom)
	}
	p.LineTo(r.Left+ll, r.Bottom)
	if ll > 0 {
		p.CubicTo(r.Left+ll-ll*kappa, r.Bottom, r.Left, r.Bottom-ll+ll*kappa, r.Left, r.Bottom-ll)
	}
	p.LineTo(r.Left, r.Top+ul)
	if ul > 0 {
		p.CubicTo(r.Left, r.Top+ul-ul*kappa, r.Left+ul-ul*kappa, r.Top, r.Left+ul, r.Top)
	}
	p.Close()
	return p
}

// PathBounds returns the bounding box of a path's control points.
func PathBounds(p *gg.Path) Rect {
	if p == nil {
		return Rect{}
	}
	first := true
	var out Rect
	add := func(pt gg.Point) {
		if first {
			out = Rect{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y}
			first = false
			return
		}
		out.Left = math.Min(out.Left, pt.X)
		out.Top = math.Min(out.Top, pt.Y)
		out.Right = math.Max(out.Right, pt.X)
		out.Bottom = math.Max(out.Bottom, pt.Y)
	}
	p.Iterate(func(_ gg.PathVerb, coords []float64) {
		for i := 0; i+1 < len(coords); i += 2 {
			add(gg.Pt(coords[i], coords[i+1]))
		}
	})
	return out
}
