// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas provides the drawing surface that compositing layers paint
// into.
//
// Canvas is a save/restore state machine over a current matrix and clip,
// plus a small set of fill, image, shadow and mask primitives. Two
// implementations are provided:
//
//   - Software rasterizes into a gg.Context.
//   - Recorder records calls as Op values and produces an immutable Picture
//     that can be replayed onto any Canvas.
//
// Geometry types (Rect, RRect) use edge coordinates in float64 and convert
// to integer device rectangles with RoundOut.
package canvas
