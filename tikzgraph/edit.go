package tikzgraph

import (
	"fmt"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/lib/go2"
)

// CreateNode appends a node at (0, 0) with empty text and a fresh ID.
func (d *Document) CreateNode() *Node {
	n := &Node{
		doc: d,
		id:  d.nextID(),
	}
	d.nodes = append(d.nodes, n)
	d.byID[n.id] = n
	d.emit(Event{Kind: NodeAdded, ID: n.id, Index: len(d.nodes) - 1})
	return n
}

// CreateEdge appends an edge with both endpoints unset and a fresh ID.
func (d *Document) CreateEdge() *Edge {
	e := &Edge{
		doc: d,
		id:  d.nextID(),
	}
	d.edges = append(d.edges, e)
	d.byID[e.id] = e
	d.emit(Event{Kind: EdgeAdded, ID: e.id, Index: len(d.edges) - 1})
	return e
}

// DeleteNode removes n and clears every edge endpoint that referenced it.
// It panics if n is not a live node of d.
func (d *Document) DeleteNode(n *Node) {
	d.mustOwn(n)
	for _, e := range d.edges {
		if e.start != nil && *e.start == n.id {
			e.start = nil
			d.emit(Event{Kind: EdgeChanged, ID: e.id})
		}
		if e.end != nil && *e.end == n.id {
			e.end = nil
			d.emit(Event{Kind: EdgeChanged, ID: e.id})
		}
	}
	i := d.NodeIndex(n.id)
	copy(d.nodes[i:], d.nodes[i+1:])
	d.nodes[len(d.nodes)-1] = nil
	d.nodes = d.nodes[:len(d.nodes)-1]
	delete(d.byID, n.id)
	d.emit(Event{Kind: NodeRemoved, ID: n.id, Index: i})
}

// DeleteEdge removes e. It panics if e is not a live edge of d.
func (d *Document) DeleteEdge(e *Edge) {
	d.mustOwnEdge(e)
	i := d.EdgeIndex(e.id)
	copy(d.edges[i:], d.edges[i+1:])
	d.edges[len(d.edges)-1] = nil
	d.edges = d.edges[:len(d.edges)-1]
	delete(d.byID, e.id)
	d.emit(Event{Kind: EdgeRemoved, ID: e.id, Index: i})
}

// InsertNode brings back a previously issued node identity at index in the
// node order. It restores deleted nodes on undo and never issues IDs.
func (d *Document) InsertNode(index int, v NodeValue) *Node {
	d.mustBeFree(v.ID)
	if index < 0 || index > len(d.nodes) {
		panic(fmt.Sprintf("tikzgraph: node index %d out of range [0, %d]", index, len(d.nodes)))
	}
	n := &Node{
		doc:   d,
		id:    v.ID,
		pos:   v.Pos,
		text:  v.Text,
		style: v.Style,
	}
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[index+1:], d.nodes[index:])
	d.nodes[index] = n
	d.byID[n.id] = n
	d.emit(Event{Kind: NodeAdded, ID: n.id, Index: index})
	return n
}

// InsertEdge brings back a previously issued edge identity at index in the
// edge order. Its endpoints must resolve to live nodes.
func (d *Document) InsertEdge(index int, v EdgeValue) *Edge {
	d.mustBeFree(v.ID)
	if index < 0 || index > len(d.edges) {
		panic(fmt.Sprintf("tikzgraph: edge index %d out of range [0, %d]", index, len(d.edges)))
	}
	for _, ref := range []*ID{v.Start, v.End} {
		if ref != nil && d.NodeFromID(*ref) == nil {
			panic(fmt.Sprintf("tikzgraph: edge %d endpoint references missing node %d", v.ID, *ref))
		}
	}
	e := &Edge{
		doc:   d,
		id:    v.ID,
		start: go2.Copy(v.Start),
		end:   go2.Copy(v.End),
		style: v.Style,
	}
	d.edges = append(d.edges, nil)
	copy(d.edges[index+1:], d.edges[index:])
	d.edges[index] = e
	d.byID[e.id] = e
	d.emit(Event{Kind: EdgeAdded, ID: e.id, Index: index})
	return e
}

func (d *Document) SetNodePos(n *Node, p geo.Point) {
	d.mustOwn(n)
	n.pos = p
	d.emit(Event{Kind: NodeChanged, ID: n.id})
}

func (d *Document) SetNodeText(n *Node, text string) {
	d.mustOwn(n)
	n.text = text
	d.emit(Event{Kind: NodeChanged, ID: n.id})
}

func (d *Document) SetNodeStyle(n *Node, style string) {
	d.mustOwn(n)
	n.style = style
	d.emit(Event{Kind: NodeChanged, ID: n.id})
}

func (d *Document) SetEdgeStyle(e *Edge, style string) {
	d.mustOwnEdge(e)
	e.style = style
	d.emit(Event{Kind: EdgeChanged, ID: e.id})
}

// SetEdgeStart points e's start at n, or clears it when n is nil.
func (d *Document) SetEdgeStart(e *Edge, n *Node) {
	d.SetEdgeEndpoint(e, Start, n)
}

// SetEdgeEnd points e's end at n, or clears it when n is nil.
func (d *Document) SetEdgeEnd(e *Edge, n *Node) {
	d.SetEdgeEndpoint(e, End, n)
}

// SetEdgeEndpoint points one end of e at n, or clears it when n is nil. It
// panics if n is not a live node of d.
func (d *Document) SetEdgeEndpoint(e *Edge, which Endpoint, n *Node) {
	d.mustOwnEdge(e)
	var ref *ID
	if n != nil {
		d.mustOwn(n)
		id := n.id
		ref = &id
	}
	if which == Start {
		e.start = ref
	} else {
		e.end = ref
	}
	d.emit(Event{Kind: EdgeChanged, ID: e.id})
}

func (d *Document) mustOwn(n *Node) {
	if n == nil {
		panic("tikzgraph: nil node")
	}
	if !d.Owns(n) {
		panic(fmt.Sprintf("tikzgraph: %v does not belong to this document", n))
	}
}

func (d *Document) mustOwnEdge(e *Edge) {
	if e == nil {
		panic("tikzgraph: nil edge")
	}
	if !d.OwnsEdge(e) {
		panic(fmt.Sprintf("tikzgraph: %v does not belong to this document", e))
	}
}

func (d *Document) mustBeFree(id ID) {
	if id == 0 || id > d.lastID {
		panic(fmt.Sprintf("tikzgraph: id %d was never issued by this document", id))
	}
	if _, ok := d.byID[id]; ok {
		panic(fmt.Sprintf("tikzgraph: id %d is already present", id))
	}
}
