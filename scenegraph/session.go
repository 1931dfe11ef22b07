// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scenegraph

import (
	"fmt"
	"sync"
)

// ResourceID names a resource within one Session.
type ResourceID uint32

// OpKind identifies a scene operation.
type OpKind uint8

// Scene operations.
const (
	OpCreate OpKind = iota
	OpAddChild
	OpAddPart
	OpSetClip
	OpSetTranslation
	OpSetScale
	OpSetRotation
	OpSetShape
	OpSetMaterial
	OpSetColor
	OpSetTexture
	OpSetHitTestBehavior
	OpUpdateImage
	OpExport
	OpImport
	OpDetachChildren
)

var opNames = [...]string{
	OpCreate:             "Create",
	OpAddChild:           "AddChild",
	OpAddPart:            "AddPart",
	OpSetClip:            "SetClip",
	OpSetTranslation:     "SetTranslation",
	OpSetScale:           "SetScale",
	OpSetRotation:        "SetRotation",
	OpSetShape:           "SetShape",
	OpSetMaterial:        "SetMaterial",
	OpSetColor:           "SetColor",
	OpSetTexture:         "SetTexture",
	OpSetHitTestBehavior: "SetHitTestBehavior",
	OpUpdateImage:        "UpdateImage",
	OpExport:             "Export",
	OpImport:             "Import",
	OpDetachChildren:     "DetachChildren",
}

// String returns the operation name.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", k)
}

// ResourceKind identifies the type of a created resource.
type ResourceKind uint8

// Resource kinds.
const (
	KindEntityNode ResourceKind = iota
	KindShapeNode
	KindImportNode
	KindMaterial
	KindRectangle
	KindRoundedRectangle
	KindImage
)

// Op is one enqueued scene operation.
type Op struct {
	Kind OpKind
	// Target is the resource the operation applies to.
	Target ResourceID
	// Ref is a second resource named by the operation, such as the child
	// of AddChild or the material of SetMaterial.
	Ref      ResourceID
	Resource ResourceKind
	Values   [4]float32
	Flag     bool
	Token    ExportToken
}

// String formats the operation for logs and tests.
func (o Op) String() string {
	return fmt.Sprintf("%s(%d)", o.Kind, o.Target)
}

// Session buffers scene operations until Present hands them to the
// compositor. It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	nextID   ResourceID
	pending  []Op
	presents uint64
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

func (s *Session) allocID() ResourceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Enqueue appends op to the pending batch.
func (s *Session) Enqueue(op Op) {
	s.mu.Lock()
	s.pending = append(s.pending, op)
	s.mu.Unlock()
}

// Pending returns a copy of the operations not yet presented.
func (s *Session) Pending() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Op, len(s.pending))
	copy(out, s.pending)
	return out
}

// Present flushes the pending batch and returns it.
func (s *Session) Present() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	s.presents++
	return out
}

// Presents returns how many times Present has been called.
func (s *Session) Presents() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

// resource is embedded by every scene object.
type resource struct {
	session *Session
	id      ResourceID
}

// newResource allocates an ID and enqueues its creation. values carries
// creation arguments such as a shape's size.
func newResource(s *Session, kind ResourceKind, values ...float32) resource {
	r := resource{session: s, id: s.allocID()}
	op := Op{Kind: OpCreate, Target: r.id, Resource: kind}
	copy(op.Values[:], values)
	s.Enqueue(op)
	return r
}

// ID returns the resource identifier.
func (r *resource) ID() ResourceID { return r.id }

// Session returns the owning session.
func (r *resource) Session() *Session { return r.session }

func (r *resource) enqueue(op Op) {
	op.Target = r.id
	r.session.Enqueue(op)
}
