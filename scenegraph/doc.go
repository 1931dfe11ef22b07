// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scenegraph is a client for a remote retained-mode compositor.
//
// Scene objects (EntityNode, ShapeNode, Material, shapes and Image) are
// created in a Session. Every mutation is appended to the session as an Op
// and delivered in order by Present. Objects also keep the state they sent
// so that callers and tests can inspect the resulting tree without a
// compositor.
//
//	s := scenegraph.NewSession()
//	root := scenegraph.NewEntityNode(s)
//	shape := scenegraph.NewShapeNode(s)
//	shape.SetShape(scenegraph.NewRectangle(s, 100, 50))
//	root.AddPart(shape)
//	ops := s.Present()
package scenegraph
