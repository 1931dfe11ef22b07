// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"sync"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/scenegraph"
)

// ExportNode refers to a scene exported by another session under a token.
// Binding it creates an import node in the binding session; the node is
// reused by later binds in the same session.
type ExportNode struct {
	mu      sync.Mutex
	token   scenegraph.ExportToken
	node    *scenegraph.ImportNode
	session *scenegraph.Session
}

// NewExportNode creates a reference to the scene exported under token.
func NewExportNode(token scenegraph.ExportToken) *ExportNode {
	return &ExportNode{token: token}
}

// Token returns the export token.
func (n *ExportNode) Token() scenegraph.ExportToken { return n.token }

// Node returns the import node of the last Bind, or nil.
func (n *ExportNode) Node() *scenegraph.ImportNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.node
}

// Bind attaches the imported scene under container at offset, scaled by
// scale.
func (n *ExportNode) Bind(ctx *SceneUpdateContext, container *scenegraph.EntityNode, offset gg.Point, scale float64, hitTestable bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.node == nil || n.session != ctx.Session() {
		n.session = ctx.Session()
		n.node = scenegraph.NewImportNode(n.session, n.token)
	}
	container.AddChild(n.node)
	n.node.SetTranslation(float32(offset.X), float32(offset.Y), 0)
	n.node.SetScale(float32(scale), float32(scale), 1)
	if hitTestable {
		n.node.SetHitTestBehavior(scenegraph.HitTestDefault)
	} else {
		n.node.SetHitTestBehavior(scenegraph.HitTestSuppress)
	}
}

// Dispose forgets the import node. The next Bind creates a new one.
func (n *ExportNode) Dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.node = nil
	n.session = nil
}
