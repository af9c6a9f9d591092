package tikzoracle

import (
	"fmt"

	"oss.terrastruct.com/tikzed/lib/go2"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzundo"
)

// CreateEdge adds an edge between two optional nodes.
type CreateEdge struct {
	doc   *tikzgraph.Document
	val   tikzgraph.EdgeValue
	index int
}

var _ tikzundo.Command = &CreateEdge{}

func NewCreateEdge(doc *tikzgraph.Document, start, end *tikzgraph.ID) *CreateEdge {
	optNode(doc, start)
	optNode(doc, end)
	return &CreateEdge{
		doc: doc,
		val: tikzgraph.EdgeValue{
			Start: go2.Copy(start),
			End:   go2.Copy(end),
		},
	}
}

// EdgeID is the created edge's identity, 0 until the command first runs.
func (c *CreateEdge) EdgeID() tikzgraph.ID {
	return c.val.ID
}

func (c *CreateEdge) ID() tikzundo.Tag {
	return TagCreateEdge
}

func (c *CreateEdge) Text() string {
	return "Create Edge"
}

func (c *CreateEdge) Redo() {
	if c.val.ID == 0 {
		e := c.doc.CreateEdge()
		c.doc.SetEdgeStart(e, optNode(c.doc, c.val.Start))
		c.doc.SetEdgeEnd(e, optNode(c.doc, c.val.End))
		c.val.ID = e.ID()
		return
	}
	c.doc.InsertEdge(c.index, c.val)
}

func (c *CreateEdge) Undo() {
	e := mustEdge(c.doc, c.val.ID)
	c.val = e.Value()
	c.index = c.doc.EdgeIndex(e.ID())
	c.doc.DeleteEdge(e)
}

func (c *CreateEdge) MergeWith(tikzundo.Command) bool {
	return false
}

// DeleteEdge removes an edge and restores it at its old position on Undo.
type DeleteEdge struct {
	doc   *tikzgraph.Document
	id    tikzgraph.ID
	val   tikzgraph.EdgeValue
	index int
}

var _ tikzundo.Command = &DeleteEdge{}

func NewDeleteEdge(doc *tikzgraph.Document, id tikzgraph.ID) *DeleteEdge {
	mustEdge(doc, id)
	return &DeleteEdge{
		doc: doc,
		id:  id,
	}
}

func (c *DeleteEdge) ID() tikzundo.Tag {
	return TagDeleteEdge
}

func (c *DeleteEdge) Text() string {
	return "Delete Edge"
}

func (c *DeleteEdge) Redo() {
	e := mustEdge(c.doc, c.id)
	c.val = e.Value()
	c.index = c.doc.EdgeIndex(c.id)
	c.doc.DeleteEdge(e)
}

func (c *DeleteEdge) Undo() {
	c.doc.InsertEdge(c.index, c.val)
}

func (c *DeleteEdge) MergeWith(tikzundo.Command) bool {
	return false
}

// SetEdgeEndpoint points one end of an edge at a node, or clears it when the
// node is nil.
type SetEdgeEndpoint struct {
	doc      *tikzgraph.Document
	id       tikzgraph.ID
	which    tikzgraph.Endpoint
	old, new *tikzgraph.ID
}

var _ tikzundo.Command = &SetEdgeEndpoint{}

func NewSetEdgeEndpoint(doc *tikzgraph.Document, id tikzgraph.ID, which tikzgraph.Endpoint, node *tikzgraph.ID) *SetEdgeEndpoint {
	e := mustEdge(doc, id)
	optNode(doc, node)
	c := &SetEdgeEndpoint{
		doc:   doc,
		id:    id,
		which: which,
		new:   go2.Copy(node),
	}
	if old, ok := e.Endpoint(which); ok {
		c.old = &old
	}
	return c
}

func (c *SetEdgeEndpoint) ID() tikzundo.Tag {
	return TagSetEdgeEndpoint
}

func (c *SetEdgeEndpoint) Text() string {
	return fmt.Sprintf("Set Edge %s", c.which)
}

func (c *SetEdgeEndpoint) Redo() {
	c.doc.SetEdgeEndpoint(mustEdge(c.doc, c.id), c.which, optNode(c.doc, c.new))
}

func (c *SetEdgeEndpoint) Undo() {
	c.doc.SetEdgeEndpoint(mustEdge(c.doc, c.id), c.which, optNode(c.doc, c.old))
}

func (c *SetEdgeEndpoint) MergeWith(tikzundo.Command) bool {
	return false
}

type SetEdgeStyle struct {
	doc      *tikzgraph.Document
	id       tikzgraph.ID
	old, new string
}

var _ tikzundo.Command = &SetEdgeStyle{}

func NewSetEdgeStyle(doc *tikzgraph.Document, id tikzgraph.ID, style string) *SetEdgeStyle {
	return &SetEdgeStyle{
		doc: doc,
		id:  id,
		old: mustEdge(doc, id).Style(),
		new: style,
	}
}

func (c *SetEdgeStyle) ID() tikzundo.Tag {
	return TagSetEdgeStyle
}

func (c *SetEdgeStyle) Text() string {
	return "Set Edge Style"
}

func (c *SetEdgeStyle) Redo() {
	c.doc.SetEdgeStyle(mustEdge(c.doc, c.id), c.new)
}

func (c *SetEdgeStyle) Undo() {
	c.doc.SetEdgeStyle(mustEdge(c.doc, c.id), c.old)
}

func (c *SetEdgeStyle) MergeWith(tikzundo.Command) bool {
	return false
}
