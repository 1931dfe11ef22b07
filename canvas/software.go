// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/internal/flowlog"
)

// Software is a Canvas that rasterizes into a gg.Context.
//
// The gg fill path does not consult a clip, so Software enforces clipping
// itself: rectangular clips are kept as a device rectangle and every other
// clip as a gg.Mask of coverage. While a clip is active each draw goes to a
// scratch gg layer that is trimmed to the clip before it is composited.
//
// SaveLayer pushes an opaque gg layer. On restore its premultiplied pixels
// are scaled by the layer paint's opacity and composited with its blend mode.
type Software struct {
	dc    *gg.Context
	stack stateStack
	full  Rect
}

// NewSoftware creates a software canvas with a fresh transparent target.
func NewSoftware(width, height int) *Software {
	return WrapContext(gg.NewContext(width, height))
}

// WrapContext creates a software canvas drawing into dc.
// dc must not be mutated directly while the canvas is in use.
func WrapContext(dc *gg.Context) *Software {
	full := RectWH(float64(dc.Width()), float64(dc.Height()))
	return &Software{
		dc:    dc,
		stack: newStateStack(full),
		full:  full,
	}
}

// Context returns the underlying gg context.
func (s *Software) Context() *gg.Context { return s.dc }

// Width returns the target width in pixels.
func (s *Software) Width() int { return s.dc.Width() }

// Height returns the target height in pixels.
func (s *Software) Height() int { return s.dc.Height() }

// Image returns a copy of the target pixels.
func (s *Software) Image() image.Image { return s.dc.Image() }

// Pixel returns the color at (x, y) in the active drawing target.
func (s *Software) Pixel(x, y int) gg.RGBA {
	return s.dc.ResizeTarget().GetPixel(x, y)
}

// Save implements Canvas.
func (s *Software) Save() int {
	s.dc.Push()
	return s.stack.push()
}

// SaveLayer implements Canvas.
func (s *Software) SaveLayer(bounds Rect, paint *Paint) int {
	n := s.stack.pushLayer(paint)
	s.dc.Push()
	if !bounds.IsEmpty() {
		s.ClipRect(bounds)
	}
	s.dc.PushLayer(paint.Blend(), 1)
	return n
}

// Restore implements Canvas.
func (s *Software) Restore() {
	rec, ok := s.stack.pop()
	if !ok {
		return
	}
	if rec.isLyr {
		if f := rec.layer; f != nil && f.ColorFilter != nil {
			s.filterTarget(rec.clip, f.ColorFilter)
		}
		if a := rec.layer.Opacity(); a < 1 {
			fade(s.dc.ResizeTarget(), a)
		}
		s.dc.PopLayer()
	}
	s.dc.Pop()
	s.dc.SetTransform(s.stack.top().matrix)
}

// RestoreToCount implements Canvas.
func (s *Software) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for s.stack.count() > count {
		s.Restore()
	}
}

// SaveCount implements Canvas.
func (s *Software) SaveCount() int { return s.stack.count() }

// Translate implements Canvas.
func (s *Software) Translate(dx, dy float64) {
	s.stack.translate(dx, dy)
	s.dc.SetTransform(s.stack.top().matrix)
}

// Scale implements Canvas.
func (s *Software) Scale(sx, sy float64) {
	s.stack.scale(sx, sy)
	s.dc.SetTransform(s.stack.top().matrix)
}

// Concat implements Canvas.
func (s *Software) Concat(m gg.Matrix) {
	s.stack.concat(m)
	s.dc.SetTransform(s.stack.top().matrix)
}

// SetMatrix implements Canvas.
func (s *Software) SetMatrix(m gg.Matrix) {
	s.stack.setMatrix(m)
	s.dc.SetTransform(m)
}

// TotalMatrix implements Canvas.
func (s *Software) TotalMatrix() gg.Matrix { return s.stack.top().matrix }

// ClipRect implements Canvas.
func (s *Software) ClipRect(r Rect) {
	m := s.stack.top().matrix
	if m.B == 0 && m.D == 0 {
		s.stack.clipLocal(r)
		return
	}
	p := gg.NewPath()
	p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
	s.clipMask(p, r)
}

// ClipRRect implements Canvas.
func (s *Software) ClipRRect(rr RRect) {
	s.clipMask(rr.Path(), rr.Rect)
}

// ClipPath implements Canvas.
func (s *Software) ClipPath(p *gg.Path) {
	if p == nil {
		return
	}
	s.clipMask(p, PathBounds(p))
}

// clipMask intersects the clip with the coverage of p.
func (s *Software) clipMask(p *gg.Path, bounds Rect) {
	s.stack.clipLocal(bounds)
	s.replay(p)
	cov := s.dc.AsMask()
	s.dc.ClearPath()
	t := s.stack.top()
	if t.mask != nil {
		w, h := cov.Width(), cov.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cov.Set(x, y, uint8(uint32(cov.At(x, y))*uint32(t.mask.At(x, y))/255))
			}
		}
	}
	t.mask = cov
}

// QuickReject implements Canvas.
func (s *Software) QuickReject(r Rect) bool { return s.stack.quickReject(r) }

// DeviceClipBounds implements Canvas.
func (s *Software) DeviceClipBounds() Rect { return s.stack.top().clip }

// Clear implements Canvas. It honors the rectangular part of the clip.
func (s *Software) Clear(c gg.RGBA) {
	clip := s.stack.top().clip
	if clip.Contains(s.full) {
		s.dc.ClearWithColor(c)
		return
	}
	pm := s.dc.ResizeTarget()
	b := clip.Intersect(s.full).RoundOut()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pm.SetPixel(x, y, c)
		}
	}
}

// DrawRect implements Canvas.
func (s *Software) DrawRect(r Rect, paint *Paint) {
	if r.IsEmpty() {
		return
	}
	p := gg.NewPath()
	p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
	s.fill(p, paint)
}

// DrawRRect implements Canvas.
func (s *Software) DrawRRect(rr RRect, paint *Paint) {
	if rr.IsEmpty() {
		return
	}
	s.fill(rr.Path(), paint)
}

// DrawPath implements Canvas.
func (s *Software) DrawPath(p *gg.Path, paint *Paint) {
	if p == nil {
		return
	}
	s.fill(p, paint)
}

// DrawImage implements Canvas.
func (s *Software) DrawImage(img *gg.ImageBuf, x, y float64, paint *Paint) {
	if img == nil {
		return
	}
	alpha := paint.Opacity()
	if alpha <= 0 {
		return
	}
	s.clipped(gg.BlendNormal, func() {
		s.dc.DrawImageEx(img, gg.DrawImageOptions{
			X:         x,
			Y:         y,
			Opacity:   alpha,
			BlendMode: paint.Blend(),
		})
	})
}

// DrawShadow implements Canvas.
//
// The shadow is approximated by a few offset fills whose alpha falls off
// with elevation. An opaque occluder hides the part beneath it, so the
// approximation is the same for both occluder kinds.
func (s *Software) DrawShadow(p *gg.Path, c gg.RGBA, elevation float64, _ bool) {
	if p == nil || elevation <= 0 || c.A <= 0 {
		return
	}
	const steps = 4
	dy := elevation * 0.5
	sc := c
	sc.A = c.A * shadowAlpha(elevation) / steps
	m := s.stack.top().matrix
	s.clipped(gg.BlendNormal, func() {
		for i := steps; i >= 1; i-- {
			s.dc.SetTransform(m.Multiply(gg.Translate(0, dy*float64(i)/steps)))
			s.fillRaw(p, sc)
		}
		s.dc.SetTransform(m)
	})
}

// ShadowBounds returns the area DrawShadow may touch for a shape whose
// bounds are r.
func ShadowBounds(r Rect, elevation float64) Rect {
	if elevation <= 0 || r.IsEmpty() {
		return r
	}
	return r.Union(r.Offset(0, elevation*0.5)).Outset(1)
}

// shadowAlpha maps elevation to the total shadow opacity.
func shadowAlpha(elevation float64) float64 {
	return math.Min(1, 0.25+elevation/48)
}

// DrawPicture implements Canvas.
func (s *Software) DrawPicture(pic *Picture) {
	if pic == nil {
		return
	}
	pic.Playback(s)
}

// MaskRect implements Canvas.
func (s *Software) MaskRect(r Rect, shader gg.Brush, mode MaskMode) {
	if shader == nil || r.IsEmpty() {
		return
	}
	t := s.stack.top()
	pm := s.dc.ResizeTarget()
	b := TransformRect(t.matrix, r).Intersect(t.clip).Intersect(s.full).RoundOut()
	inv := t.matrix.Invert()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst := pm.GetPixel(x, y)
			if dst.A == 0 {
				continue
			}
			local := inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
			pm.SetPixel(x, y, mode.Apply(dst, shader.ColorAt(local.X, local.Y)))
		}
	}
}

func (s *Software) fill(p *gg.Path, paint *Paint) {
	c := paint.Fill()
	if c.A <= 0 {
		return
	}
	s.clipped(paint.Blend(), func() { s.fillRaw(p, c) })
}

func (s *Software) fillRaw(p *gg.Path, c gg.RGBA) {
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.replay(p)
	if err := s.dc.Fill(); err != nil {
		flowlog.Logger().Debug("canvas: fill failed", "err", err)
	}
}

// clipped runs draw directly when nothing is clipped and blend is normal,
// otherwise inside a scratch layer that is trimmed to the clip.
func (s *Software) clipped(blend gg.BlendMode, draw func()) {
	t := s.stack.top()
	if t.mask == nil && t.clip.Contains(s.full) && blend == gg.BlendNormal {
		draw()
		return
	}
	s.dc.PushLayer(blend, 1)
	draw()
	s.trim(t.clip, t.mask)
	s.dc.PopLayer()
}

// trim clears active-target pixels outside clip and scales the rest by mask.
func (s *Software) trim(clip Rect, mask *gg.Mask) {
	pm := s.dc.ResizeTarget()
	keep := clip.Intersect(s.full).RoundOut()
	w, h := pm.Width(), pm.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inside := image.Pt(x, y).In(keep)
			if inside && mask == nil {
				continue
			}
			c := pm.GetPixel(x, y)
			if c.A == 0 {
				continue
			}
			v := uint8(0)
			if inside {
				v = mask.At(x, y)
			}
			if v == 0 {
				pm.SetPixel(x, y, gg.Transparent)
				continue
			}
			if v < 255 {
				c.A *= float64(v) / 255
				pm.SetPixel(x, y, c)
			}
		}
	}
}

// replay appends p to the context path through the current matrix.
func (s *Software) replay(p *gg.Path) {
	s.dc.ClearPath()
	p.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			s.dc.MoveTo(c[0], c[1])
		case gg.LineTo:
			s.dc.LineTo(c[0], c[1])
		case gg.QuadTo:
			s.dc.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			s.dc.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			s.dc.ClosePath()
		}
	})
}

// fade multiplies every premultiplied channel of pm by alpha.
func fade(pm *gg.Pixmap, alpha float64) {
	k := uint32(math.Round(alpha * 255))
	data := pm.Data()
	for i := 0; i+3 < len(data); i += 4 {
		if data[i+3] == 0 {
			continue
		}
		for j := i; j < i+4; j++ {
			data[j] = uint8((uint32(data[j])*k + 127) / 255)
		}
	}
}

// filterTarget applies f to the active layer pixels inside clip.
func (s *Software) filterTarget(clip Rect, f *ColorFilter) {
	pm := s.dc.ResizeTarget()
	b := clip.Intersect(s.full).RoundOut()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pm.GetPixel(x, y)
			if c.A == 0 {
				continue
			}
			pm.SetPixel(x, y, f.Apply(c))
		}
	}
}

var _ Canvas = (*Software)(nil)
