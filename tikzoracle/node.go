package tikzoracle

import (
	"fmt"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzundo"
)

// CreateNode adds a node. Its identity is issued on the first Redo and
// brought back by later ones.
type CreateNode struct {
	doc   *tikzgraph.Document
	val   tikzgraph.NodeValue
	index int
}

var _ tikzundo.Command = &CreateNode{}

func NewCreateNode(doc *tikzgraph.Document, pos geo.Point, text string) *CreateNode {
	return &CreateNode{
		doc: doc,
		val: tikzgraph.NodeValue{Pos: pos, Text: text},
	}
}

// NodeID is the created node's identity, 0 until the command first runs.
func (c *CreateNode) NodeID() tikzgraph.ID {
	return c.val.ID
}

func (c *CreateNode) ID() tikzundo.Tag {
	return TagCreateNode
}

func (c *CreateNode) Text() string {
	return "Create Node"
}

func (c *CreateNode) Redo() {
	if c.val.ID == 0 {
		n := c.doc.CreateNode()
		c.doc.SetNodePos(n, c.val.Pos)
		c.doc.SetNodeText(n, c.val.Text)
		c.val.ID = n.ID()
		return
	}
	c.doc.InsertNode(c.index, c.val)
}

func (c *CreateNode) Undo() {
	n := mustNode(c.doc, c.val.ID)
	c.val = n.Value()
	c.index = c.doc.NodeIndex(n.ID())
	c.doc.DeleteNode(n)
}

func (c *CreateNode) MergeWith(tikzundo.Command) bool {
	return false
}

// DeleteNode removes a node. Each Redo records the node, its position in the
// node order and every endpoint that referenced it, so Undo puts all of them
// back.
type DeleteNode struct {
	doc   *tikzgraph.Document
	id    tikzgraph.ID
	val   tikzgraph.NodeValue
	index int
	refs  []tikzgraph.EndpointRef
}

var _ tikzundo.Command = &DeleteNode{}

func NewDeleteNode(doc *tikzgraph.Document, id tikzgraph.ID) *DeleteNode {
	mustNode(doc, id)
	return &DeleteNode{
		doc: doc,
		id:  id,
	}
}

func (c *DeleteNode) ID() tikzundo.Tag {
	return TagDeleteNode
}

func (c *DeleteNode) Text() string {
	return "Delete Node"
}

func (c *DeleteNode) Redo() {
	n := mustNode(c.doc, c.id)
	c.val = n.Value()
	c.index = c.doc.NodeIndex(c.id)
	c.refs = c.doc.EdgesReferencing(c.id)
	c.doc.DeleteNode(n)
}

func (c *DeleteNode) Undo() {
	n := c.doc.InsertNode(c.index, c.val)
	for _, ref := range c.refs {
		c.doc.SetEdgeEndpoint(mustEdge(c.doc, ref.Edge), ref.Which, n)
	}
}

func (c *DeleteNode) MergeWith(tikzundo.Command) bool {
	return false
}

// SetNodeText replaces a node's label. Consecutive edits of the same node
// merge into one undo step.
type SetNodeText struct {
	doc      *tikzgraph.Document
	id       tikzgraph.ID
	old, new string
}

var _ tikzundo.Command = &SetNodeText{}

func NewSetNodeText(doc *tikzgraph.Document, id tikzgraph.ID, text string) *SetNodeText {
	return &SetNodeText{
		doc: doc,
		id:  id,
		old: mustNode(doc, id).Text(),
		new: text,
	}
}

func (c *SetNodeText) ID() tikzundo.Tag {
	return TagSetNodeText
}

func (c *SetNodeText) Text() string {
	return "Set Node Text"
}

func (c *SetNodeText) Redo() {
	c.doc.SetNodeText(mustNode(c.doc, c.id), c.new)
}

func (c *SetNodeText) Undo() {
	c.doc.SetNodeText(mustNode(c.doc, c.id), c.old)
}

func (c *SetNodeText) MergeWith(other tikzundo.Command) bool {
	o, ok := other.(*SetNodeText)
	if !ok || o.id != c.id {
		return false
	}
	c.new = o.new
	return true
}

// SetNodePos moves a node. Consecutive moves of the same node, as produced by
// dragging it, merge into one undo step.
type SetNodePos struct {
	doc      *tikzgraph.Document
	id       tikzgraph.ID
	old, new geo.Point
}

var _ tikzundo.Command = &SetNodePos{}

func NewSetNodePos(doc *tikzgraph.Document, id tikzgraph.ID, pos geo.Point) *SetNodePos {
	return &SetNodePos{
		doc: doc,
		id:  id,
		old: mustNode(doc, id).Pos(),
		new: pos,
	}
}

func (c *SetNodePos) ID() tikzundo.Tag {
	return TagSetNodePos
}

func (c *SetNodePos) Text() string {
	return fmt.Sprintf("Move Node to %s", c.new.TikZ())
}

func (c *SetNodePos) Redo() {
	c.doc.SetNodePos(mustNode(c.doc, c.id), c.new)
}

func (c *SetNodePos) Undo() {
	c.doc.SetNodePos(mustNode(c.doc, c.id), c.old)
}

func (c *SetNodePos) MergeWith(other tikzundo.Command) bool {
	o, ok := other.(*SetNodePos)
	if !ok || o.id != c.id {
		return false
	}
	c.new = o.new
	return true
}

type SetNodeStyle struct {
	doc      *tikzgraph.Document
	id       tikzgraph.ID
	old, new string
}

var _ tikzundo.Command = &SetNodeStyle{}

func NewSetNodeStyle(doc *tikzgraph.Document, id tikzgraph.ID, style string) *SetNodeStyle {
	return &SetNodeStyle{
		doc: doc,
		id:  id,
		old: mustNode(doc, id).Style(),
		new: style,
	}
}

func (c *SetNodeStyle) ID() tikzundo.Tag {
	return TagSetNodeStyle
}

func (c *SetNodeStyle) Text() string {
	return "Set Node Style"
}

func (c *SetNodeStyle) Redo() {
	c.doc.SetNodeStyle(mustNode(c.doc, c.id), c.new)
}

func (c *SetNodeStyle) Undo() {
	c.doc.SetNodeStyle(mustNode(c.doc, c.id), c.old)
}

func (c *SetNodeStyle) MergeWith(tikzundo.Command) bool {
	return false
}
