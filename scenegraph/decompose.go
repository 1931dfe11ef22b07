// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenegraph

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

// Decomposition splits a 2D affine transform into translation, scale and a
// rotation about the z axis.
type Decomposition struct {
	Translation Vec3
	Scale       Vec3
	Rotation    Quaternion
	// Shear is the residual x-shear that the node transform cannot carry.
	Shear float32
}

// Decompose splits m. It reports false when m is singular or not finite.
func Decompose(m gg.Matrix) (Decomposition, bool) {
	a, b, c := float32(m.A), float32(m.B), float32(m.C)
	d, e, f := float32(m.D), float32(m.E), float32(m.F)

	for _, v := range [...]float32{a, b, c, d, e, f} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return Decomposition{}, false
		}
	}

	sx := math32.Sqrt(a*a + d*d)
	det := a*e - b*d
	if sx == 0 || det == 0 {
		return Decomposition{}, false
	}
	sy := det / sx
	angle := math32.Atan2(d, a)
	shear := (a*b + d*e) / (sx * sx)

	half := angle * 0.5
	return Decomposition{
		Translation: Vec3{X: c, Y: f},
		Scale:       Vec3{X: sx, Y: sy, Z: 1},
		Rotation:    Quaternion{Z: math32.Sin(half), W: math32.Cos(half)},
		Shear:       shear,
	}, true
}
