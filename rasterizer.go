// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
	"github.com/gogpu/flow/surface"
)

// Rasterizer draws layer trees onto a canvas.
type Rasterizer struct {
	pc  *PaintContext
	gpu gpucontext.DeviceProvider
}

// NewRasterizer creates a canvas rasterizer. gpu may be nil.
func NewRasterizer(pc *PaintContext, gpu gpucontext.DeviceProvider) *Rasterizer {
	return &Rasterizer{pc: pc, gpu: gpu}
}

// PaintContext returns the rasterizer's paint context.
func (r *Rasterizer) PaintContext() *PaintContext { return r.pc }

// Draw prerolls and paints tree onto c as one frame.
func (r *Rasterizer) Draw(tree *LayerTree, c canvas.Canvas) {
	r.pc.EngineTime().SetLapTime(tree.ConstructionTime())
	WithFrame(r.pc, r.gpu, c, true, func(frame *ScopedFrame) {
		tree.Preroll(frame, false)
		tree.Paint(frame)
	})
}

// SceneRasterizer draws layer trees as scene-graph updates. Painted content
// is batched into paint tasks that render into pooled surfaces.
type SceneRasterizer struct {
	pc      *PaintContext
	gpu     gpucontext.DeviceProvider
	session *scenegraph.Session
	pool    *surface.Pool
	root    *scenegraph.EntityNode
}

// NewSceneRasterizer creates a scene rasterizer emitting into session.
func NewSceneRasterizer(pc *PaintContext, session *scenegraph.Session, pool *surface.Pool, gpu gpucontext.DeviceProvider) *SceneRasterizer {
	return &SceneRasterizer{
		pc:      pc,
		gpu:     gpu,
		session: session,
		pool:    pool,
		root:    scenegraph.NewEntityNode(session),
	}
}

// Root returns the entity the trees are attached to.
func (r *SceneRasterizer) Root() *scenegraph.EntityNode { return r.root }

// PaintContext returns the rasterizer's paint context.
func (r *SceneRasterizer) PaintContext() *PaintContext { return r.pc }

// Draw emits tree as one scene update and returns the presented operations.
// Surfaces that fail to publish are logged and dropped; the frame is still
// presented.
func (r *SceneRasterizer) Draw(tree *LayerTree) []scenegraph.Op {
	r.pc.EngineTime().SetLapTime(tree.ConstructionTime())

	frame := r.pc.acquireFrame(r.gpu, nil, true, true)
	defer frame.Close()

	tree.Preroll(frame, false)

	ctx := NewSceneUpdateContext(r.session, r.pool)
	r.root.DetachChildren()
	tree.UpdateScene(ctx, r.root)

	for _, s := range ctx.ExecutePaintTasks(frame) {
		if err := r.pool.Submit(s); err != nil {
			Logger().Warn("flow: dropping surface", "err", err)
		}
	}
	ops := r.session.Present()
	r.pool.FinishFrame()
	return ops
}
