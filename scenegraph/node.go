// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenegraph

import (
	"sync/atomic"
)

// Vec3 is a float32 3-vector.
type Vec3 struct {
	X, Y, Z float32
}

// Quaternion is a float32 rotation quaternion.
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternion{W: 1}

// HitTestBehavior controls whether a node participates in hit testing.
type HitTestBehavior uint8

const (
	HitTestDefault HitTestBehavior = iota
	HitTestSuppress
)

// Node is anything that can be added as a child of an EntityNode.
type Node interface {
	ID() ResourceID
	entity() *EntityNode
}

// EntityNode is a container node carrying a transform and an optional clip.
//
// The node mirrors the state it has sent to the session so callers can
// inspect what the compositor will see.
type EntityNode struct {
	resource

	children    []Node
	parts       []*ShapeNode
	clipID      uint32
	clipToSelf  bool
	clipSet     bool
	translation Vec3
	scale       Vec3
	rotation    Quaternion
	hitTest     HitTestBehavior
}

// NewEntityNode creates an entity node in s.
func NewEntityNode(s *Session) *EntityNode {
	return newEntityNode(s, KindEntityNode)
}

func newEntityNode(s *Session, kind ResourceKind) *EntityNode {
	return &EntityNode{
		resource: newResource(s, kind),
		scale:    Vec3{1, 1, 1},
		rotation: IdentityQuaternion,
	}
}

func (n *EntityNode) entity() *EntityNode { return n }

// AddChild appends child to the node's children.
func (n *EntityNode) AddChild(child Node) {
	n.children = append(n.children, child)
	n.enqueue(Op{Kind: OpAddChild, Ref: child.ID()})
}

// AddPart appends a shape part drawn as part of this node.
func (n *EntityNode) AddPart(part *ShapeNode) {
	n.parts = append(n.parts, part)
	n.enqueue(Op{Kind: OpAddPart, Ref: part.ID()})
}

// DetachChildren removes all children.
func (n *EntityNode) DetachChildren() {
	n.children = nil
	n.enqueue(Op{Kind: OpDetachChildren})
}

// SetClip clips the node's children to the part with clipID, or to the
// node's own parts when clipToSelf is set.
func (n *EntityNode) SetClip(clipID uint32, clipToSelf bool) {
	n.clipID, n.clipToSelf, n.clipSet = clipID, clipToSelf, true
	n.enqueue(Op{Kind: OpSetClip, Values: [4]float32{float32(clipID)}, Flag: clipToSelf})
}

// SetTranslation sets the node's translation.
func (n *EntityNode) SetTranslation(x, y, z float32) {
	n.translation = Vec3{x, y, z}
	n.enqueue(Op{Kind: OpSetTranslation, Values: [4]float32{x, y, z}})
}

// SetScale sets the node's scale.
func (n *EntityNode) SetScale(x, y, z float32) {
	n.scale = Vec3{x, y, z}
	n.enqueue(Op{Kind: OpSetScale, Values: [4]float32{x, y, z}})
}

// SetRotation sets the node's rotation quaternion.
func (n *EntityNode) SetRotation(x, y, z, w float32) {
	n.rotation = Quaternion{x, y, z, w}
	n.enqueue(Op{Kind: OpSetRotation, Values: [4]float32{x, y, z, w}})
}

// SetHitTestBehavior sets how the node takes part in hit testing.
func (n *EntityNode) SetHitTestBehavior(b HitTestBehavior) {
	n.hitTest = b
	n.enqueue(Op{Kind: OpSetHitTestBehavior, Values: [4]float32{float32(b)}})
}

// Children returns the node's children in insertion order.
func (n *EntityNode) Children() []Node { return n.children }

// Parts returns the node's shape parts in insertion order.
func (n *EntityNode) Parts() []*ShapeNode { return n.parts }

// Clip returns the clip configuration and whether one was set.
func (n *EntityNode) Clip() (clipID uint32, clipToSelf, ok bool) {
	return n.clipID, n.clipToSelf, n.clipSet
}

// Translation returns the last translation set.
func (n *EntityNode) Translation() Vec3 { return n.translation }

// Scale returns the last scale set.
func (n *EntityNode) Scale() Vec3 { return n.scale }

// Rotation returns the last rotation set.
func (n *EntityNode) Rotation() Quaternion { return n.rotation }

// HitTestBehavior returns the hit test behavior.
func (n *EntityNode) HitTestBehavior() HitTestBehavior { return n.hitTest }

// ShapeNode draws a shape with a material.
type ShapeNode struct {
	resource

	shape       Shape
	material    *Material
	translation Vec3
}

// NewShapeNode creates a shape node in s.
func NewShapeNode(s *Session) *ShapeNode {
	return &ShapeNode{resource: newResource(s, KindShapeNode)}
}

// SetShape sets the geometry.
func (n *ShapeNode) SetShape(shape Shape) {
	n.shape = shape
	n.enqueue(Op{Kind: OpSetShape, Ref: shape.ID()})
}

// SetMaterial sets the material used to fill the shape.
func (n *ShapeNode) SetMaterial(m *Material) {
	n.material = m
	n.enqueue(Op{Kind: OpSetMaterial, Ref: m.ID()})
}

// SetTranslation positions the shape's center.
func (n *ShapeNode) SetTranslation(x, y, z float32) {
	n.translation = Vec3{x, y, z}
	n.enqueue(Op{Kind: OpSetTranslation, Values: [4]float32{x, y, z}})
}

// Shape returns the geometry, or nil.
func (n *ShapeNode) Shape() Shape { return n.shape }

// Material returns the material, or nil when none was set.
func (n *ShapeNode) Material() *Material { return n.material }

// Translation returns the shape's center.
func (n *ShapeNode) Translation() Vec3 { return n.translation }

// ExportToken pairs an exported node with its import in another session.
type ExportToken uint64

var nextExportToken atomic.Uint64

// NewExportToken returns a process-unique token.
func NewExportToken() ExportToken {
	return ExportToken(nextExportToken.Add(1))
}

// ImportNode is an entity node whose content is supplied by another
// session that exported the matching token.
type ImportNode struct {
	EntityNode
	token ExportToken
}

// NewImportNode creates an import node in s bound to token.
func NewImportNode(s *Session, token ExportToken) *ImportNode {
	n := &ImportNode{EntityNode: *newEntityNode(s, KindImportNode), token: token}
	n.enqueue(Op{Kind: OpImport, Token: token})
	return n
}

// Token returns the import token.
func (n *ImportNode) Token() ExportToken { return n.token }

// Export publishes n under token so another session can import it.
func (n *EntityNode) Export(token ExportToken) {
	n.enqueue(Op{Kind: OpExport, Token: token})
}
