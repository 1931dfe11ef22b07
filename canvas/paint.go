// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Paint describes how a draw or a saved layer is composited.
// A nil *Paint means opaque black fill with normal blending.
type Paint struct {
	Color       gg.RGBA
	BlendMode   gg.BlendMode
	ColorFilter *ColorFilter
}

// NewPaint returns a paint that fills with c.
func NewPaint(c gg.RGBA) *Paint {
	return &Paint{Color: c}
}

// AlphaPaint returns a layer paint that modulates content by alpha/255.
func AlphaPaint(alpha uint8) *Paint {
	return &Paint{Color: gg.RGBA{A: float64(alpha) / 255}}
}

// Opacity returns the alpha component used when compositing a layer.
func (p *Paint) Opacity() float64 {
	if p == nil {
		return 1
	}
	return clamp01(p.Color.A)
}

// Blend returns the blend mode, defaulting to normal.
func (p *Paint) Blend() gg.BlendMode {
	if p == nil {
		return gg.BlendNormal
	}
	return p.BlendMode
}

// Fill returns the fill color, defaulting to opaque black.
func (p *Paint) Fill() gg.RGBA {
	if p == nil {
		return gg.Black
	}
	return p.Color
}

// ColorFilterMode selects how a ColorFilter combines its color with content.
type ColorFilterMode int

const (
	// FilterSrcIn replaces covered color with the filter color, keeping coverage.
	FilterSrcIn ColorFilterMode = iota
	// FilterModulate multiplies covered color by the filter color.
	FilterModulate
)

// String returns the mode name.
func (m ColorFilterMode) String() string {
	switch m {
	case FilterSrcIn:
		return "SrcIn"
	case FilterModulate:
		return "Modulate"
	default:
		return "Unknown"
	}
}

// ColorFilter transforms the colors of a saved layer when it is restored.
type ColorFilter struct {
	Color gg.RGBA
	Mode  ColorFilterMode
}

// Apply returns c transformed by the filter.
func (f *ColorFilter) Apply(c gg.RGBA) gg.RGBA {
	if f == nil || c.A == 0 {
		return c
	}
	switch f.Mode {
	case FilterModulate:
		return gg.RGBA{
			R: c.R * f.Color.R,
			G: c.G * f.Color.G,
			B: c.B * f.Color.B,
			A: c.A * f.Color.A,
		}
	default:
		// Blend the filter color over the covered color, then keep coverage.
		a := clamp01(f.Color.A)
		return gg.RGBA{
			R: f.Color.R*a + c.R*(1-a),
			G: f.Color.G*a + c.G*(1-a),
			B: f.Color.B*a + c.B*(1-a),
			A: c.A,
		}
	}
}

// MaskMode selects how MaskRect combines a shader's alpha with content.
type MaskMode int

const (
	// MaskDstIn keeps content where the shader is opaque.
	MaskDstIn MaskMode = iota
	// MaskDstOut keeps content where the shader is transparent.
	MaskDstOut
	// MaskModulate multiplies content by the shader color.
	MaskModulate
)

// String returns the mode name.
func (m MaskMode) String() string {
	switch m {
	case MaskDstIn:
		return "DstIn"
	case MaskDstOut:
		return "DstOut"
	case MaskModulate:
		return "Modulate"
	default:
		return "Unknown"
	}
}

// Apply returns dst masked by the shader color src.
func (m MaskMode) Apply(dst, src gg.RGBA) gg.RGBA {
	switch m {
	case MaskDstOut:
		dst.A *= 1 - clamp01(src.A)
	case MaskModulate:
		dst.R *= src.R
		dst.G *= src.G
		dst.B *= src.B
		dst.A *= clamp01(src.A)
	default:
		dst.A *= clamp01(src.A)
	}
	return dst
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
