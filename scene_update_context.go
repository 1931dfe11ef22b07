// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
	"github.com/gogpu/flow/surface"
)

// SceneUpdateContext builds the scene-graph mirror of a layer tree and
// batches the painting it needs into paint tasks.
//
// Entities form a stack: each pushed Entity becomes a child of the previous
// top and must be popped in reverse order. Frames collect painted layers
// while open; popping a frame creates its shapes and materials and, when
// it has visible painted content, queues a paint task. ExecutePaintTasks
// runs the queued tasks once the whole tree has been walked.
type SceneUpdateContext struct {
	session  *scenegraph.Session
	producer surface.Producer
	top      *Entity
	tasks    []paintTask
}

type paintTask struct {
	surface        surface.Surface
	left, top      float64
	scaleX, scaleY float64
	background     gg.RGBA
	layers         []Layer
}

// NewSceneUpdateContext creates a context emitting into session and
// acquiring paint surfaces from producer.
func NewSceneUpdateContext(session *scenegraph.Session, producer surface.Producer) *SceneUpdateContext {
	precondition(producer != nil, "nil surface producer")
	return &SceneUpdateContext{session: session, producer: producer}
}

// Session returns the scene session.
func (ctx *SceneUpdateContext) Session() *scenegraph.Session { return ctx.session }

// Top returns the innermost open entity, or nil.
func (ctx *SceneUpdateContext) Top() *Entity { return ctx.top }

// PendingTasks returns the number of queued paint tasks.
func (ctx *SceneUpdateContext) PendingTasks() int { return len(ctx.tasks) }

func (ctx *SceneUpdateContext) topFrame() *Frame {
	if ctx.top == nil {
		return nil
	}
	return ctx.top.frame
}

// Entity is an open scope owning one scene entity node.
type Entity struct {
	ctx      *SceneUpdateContext
	previous *Entity
	node     *scenegraph.EntityNode
	frame    *Frame
	closed   bool
}

func (ctx *SceneUpdateContext) push(e *Entity) {
	e.ctx = ctx
	e.previous = ctx.top
	e.node = scenegraph.NewEntityNode(ctx.session)
	if e.previous != nil {
		e.previous.node.AddChild(e.node)
	}
	ctx.top = e
}

// PushEntity opens a plain entity as a child of the current top.
func (ctx *SceneUpdateContext) PushEntity() *Entity {
	e := &Entity{}
	ctx.push(e)
	return e
}

// WithEntity opens an entity, runs fn and closes the entity, also when fn
// panics.
func (ctx *SceneUpdateContext) WithEntity(fn func(*Entity)) {
	e := ctx.PushEntity()
	defer e.Pop()
	fn(e)
}

// Node returns the entity's scene node.
func (e *Entity) Node() *scenegraph.EntityNode { return e.node }

// Pop closes the entity and restores the previous top. Entities must be
// popped in reverse push order. Popping twice is a no-op.
func (e *Entity) Pop() {
	if e.closed {
		return
	}
	precondition(e.ctx.top == e, "entity popped out of order")
	e.closed = true
	e.ctx.top = e.previous
}

// PushClip opens an entity clipped to shape. bounds places the shape.
func (ctx *SceneUpdateContext) PushClip(shape scenegraph.Shape, bounds canvas.Rect) *Entity {
	e := ctx.PushEntity()
	node := scenegraph.NewShapeNode(ctx.session)
	node.SetShape(shape)
	c := bounds.Center()
	node.SetTranslation(float32(c.X), float32(c.Y), 0)
	e.node.AddPart(node)
	e.node.SetClip(0, true)
	return e
}

// PushTransform opens an entity carrying m. Shear cannot be expressed by
// the node and is dropped. A singular m collapses the node to zero scale.
func (ctx *SceneUpdateContext) PushTransform(m gg.Matrix) *Entity {
	e := ctx.PushEntity()
	d, ok := scenegraph.Decompose(m)
	if !ok {
		e.node.SetScale(0, 0, 0)
		return e
	}
	e.node.SetTranslation(d.Translation.X, d.Translation.Y, d.Translation.Z)
	e.node.SetScale(d.Scale.X, d.Scale.Y, d.Scale.Z)
	e.node.SetRotation(d.Rotation.X, d.Rotation.Y, d.Rotation.Z, d.Rotation.W)
	return e
}

// Frame is an entity that draws a rounded rectangle of solid color and
// the layers painted inside it, raised to its elevation.
type Frame struct {
	Entity
	rrect          canvas.RRect
	color          gg.RGBA
	scaleX, scaleY float64
	paintBounds    canvas.Rect
	paintLayers    []Layer
}

// PushFrame opens a frame. sx and sy map the frame's logical coordinates
// to physical pixels.
func (ctx *SceneUpdateContext) PushFrame(rrect canvas.RRect, c gg.RGBA, elevation, sx, sy float64) *Frame {
	f := &Frame{rrect: rrect, color: c, scaleX: sx, scaleY: sy}
	f.frame = f
	ctx.push(&f.Entity)
	f.node.SetTranslation(0, 0, float32(elevation))
	return f
}

// AddPaintedLayer adds l to the layers painted into the frame's texture.
func (f *Frame) AddPaintedLayer(l Layer) {
	precondition(l.NeedsPainting(), "painted layer has no bounds")
	f.paintLayers = append(f.paintLayers, l)
	f.paintBounds = f.paintBounds.Union(l.PaintBounds())
}

// PaintBounds returns the union of the painted layers' bounds.
func (f *Frame) PaintBounds() canvas.Rect { return f.paintBounds }

// Pop creates the frame's scene content and closes it.
func (f *Frame) Pop() {
	if f.closed {
		return
	}
	layers := f.paintLayers
	f.paintLayers = nil
	f.ctx.createFrame(f.node, f.rrect, f.color, f.scaleX, f.scaleY, f.paintBounds, layers)
	f.Entity.Pop()
}

func (ctx *SceneUpdateContext) createFrame(node *scenegraph.EntityNode, rrect canvas.RRect, c gg.RGBA, sx, sy float64, paintBounds canvas.Rect, layers []Layer) {
	node.SetClip(0, true)
	if rrect.IsEmpty() {
		return
	}

	shapeBounds := rrect.Bounds()
	shape := scenegraph.NewRoundedRectangle(ctx.session,
		float32(rrect.Width()), float32(rrect.Height()),
		float32(rrect.Radius(canvas.UpperLeft)), float32(rrect.Radius(canvas.UpperRight)),
		float32(rrect.Radius(canvas.LowerRight)), float32(rrect.Radius(canvas.LowerLeft)))
	shapeNode := ctx.shapeNode(shape, shapeBounds)
	node.AddPart(shapeNode)

	if paintBounds.IsEmpty() || !paintBounds.Intersects(shapeBounds) {
		layers = nil
	}
	if len(layers) == 0 {
		ctx.setShapeColor(shapeNode, c)
		return
	}

	// Texture only the painted part when it lies inside the shape.
	inner := shapeBounds.Intersect(paintBounds)
	if inner != shapeBounds && rrect.Contains(inner) {
		ctx.setShapeColor(shapeNode, c)
		innerShape := scenegraph.NewRectangle(ctx.session, float32(inner.Width()), float32(inner.Height()))
		innerNode := ctx.shapeNode(innerShape, inner)
		node.AddPart(innerNode)
		ctx.setShapeTextureOrColor(innerNode, c, sx, sy, inner, layers)
		return
	}

	ctx.setShapeTextureOrColor(shapeNode, c, sx, sy, shapeBounds, layers)
}

// shapeNode creates a node for shape centered on bounds.
func (ctx *SceneUpdateContext) shapeNode(shape scenegraph.Shape, bounds canvas.Rect) *scenegraph.ShapeNode {
	n := scenegraph.NewShapeNode(ctx.session)
	n.SetShape(shape)
	c := bounds.Center()
	n.SetTranslation(float32(c.X), float32(c.Y), 0)
	return n
}

func (ctx *SceneUpdateContext) setShapeTextureOrColor(node *scenegraph.ShapeNode, c gg.RGBA, sx, sy float64, bounds canvas.Rect, layers []Layer) {
	if img := ctx.generateImageIfNeeded(c, sx, sy, bounds, layers); img != nil {
		m := scenegraph.NewMaterial(ctx.session)
		m.SetTexture(img)
		node.SetMaterial(m)
		return
	}
	ctx.setShapeColor(node, c)
}

// setShapeColor gives node a solid material. Fully transparent colors get
// no material at all.
func (ctx *SceneUpdateContext) setShapeColor(node *scenegraph.ShapeNode, c gg.RGBA) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nc.A == 0 {
		return
	}
	m := scenegraph.NewMaterial(ctx.session)
	m.SetColor(nc.R, nc.G, nc.B, nc.A)
	node.SetMaterial(m)
}

// generateImageIfNeeded queues a paint task for layers over bounds and
// returns the image it will fill, or nil when a flat color must do.
func (ctx *SceneUpdateContext) generateImageIfNeeded(c gg.RGBA, sx, sy float64, bounds canvas.Rect, layers []Layer) *scenegraph.Image {
	if len(layers) == 0 {
		return nil
	}
	size := PhysicalSize(bounds, sx, sy)
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}

	s, err := ctx.producer.ProduceSurface(size)
	if err != nil || s == nil {
		Logger().Warn("flow: could not acquire a surface, using flat color",
			"size", fmt.Sprintf("%dx%d", size.X, size.Y),
			"err", err)
		return nil
	}

	ctx.tasks = append(ctx.tasks, paintTask{
		surface:    s,
		left:       bounds.Left,
		top:        bounds.Top,
		scaleX:     sx,
		scaleY:     sy,
		background: c,
		layers:     layers,
	})
	return s.Image()
}

// PhysicalSize returns the pixel size of logical bounds at scale sx, sy,
// rounded to the nearest pixel.
func PhysicalSize(bounds canvas.Rect, sx, sy float64) image.Point {
	if bounds.IsEmpty() {
		return image.Point{}
	}
	return image.Pt(
		int(math.Round(bounds.Width()*sx)),
		int(math.Round(bounds.Height()*sy)),
	)
}

// ExecutePaintTasks paints every queued task into its surface, in queue
// order, and empties the queue. It returns the painted surfaces for
// submission.
func (ctx *SceneUpdateContext) ExecutePaintTasks(frame *ScopedFrame) []surface.Surface {
	if len(ctx.tasks) == 0 {
		return nil
	}
	out := make([]surface.Surface, 0, len(ctx.tasks))
	for i := range ctx.tasks {
		task := &ctx.tasks[i]
		c := task.surface.Canvas()
		view := frame.withCanvas(c)

		c.RestoreToCount(1)
		c.Save()
		c.Clear(task.background)
		c.Scale(task.scaleX, task.scaleY)
		c.Translate(-task.left, -task.top)
		for _, l := range task.layers {
			l.Paint(view)
		}
		c.RestoreToCount(1)
		out = append(out, task.surface)
	}

	Logger().Debug("flow: executed paint tasks", "tasks", len(out))
	clear(ctx.tasks)
	ctx.tasks = ctx.tasks[:0]
	return out
}

// AddChildScene binds node under the current top entity at offset.
func (ctx *SceneUpdateContext) AddChildScene(node *ExportNode, offset gg.Point, dpr float64, hitTestable bool) {
	precondition(ctx.top != nil, "child scene added with no open entity")
	if ctx.top == nil {
		return
	}
	node.Bind(ctx, ctx.top.node, offset, 1/dpr, hitTestable)
}
