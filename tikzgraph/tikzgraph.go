// Package tikzgraph is the document model of a TikZ picture: nodes, edges
// between them and the undo stack that records every reversible change.
//
// A Document is the only mutation surface. Entities are created by its
// factories, which issue identities from a counter that never goes back, and
// destroyed by its delete operations. Edges refer to nodes by ID and resolve
// them through the Document on demand, so a deleted node leaves no dangling
// pointer, only a reference that the delete itself clears.
package tikzgraph

import (
	"fmt"
	"strconv"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/lib/go2"
	"oss.terrastruct.com/tikzed/tikzstyle"
	"oss.terrastruct.com/tikzed/tikzundo"
)

// ID identifies a node or edge. IDs share one namespace per Document and start
// at 1; 0 is never issued.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// AnchorRadius is the distance of compass anchors from a node's position.
const AnchorRadius = 0.5

type Node struct {
	doc   *Document
	id    ID
	pos   geo.Point
	text  string
	style string
}

func (n *Node) ID() ID {
	return n.id
}

func (n *Node) Pos() geo.Point {
	return n.pos
}

func (n *Node) Text() string {
	return n.text
}

// Style is the registry style name, empty for TikZ defaults.
func (n *Node) Style() string {
	return n.style
}

// Value returns a copy of n's state.
func (n *Node) Value() NodeValue {
	return NodeValue{
		ID:    n.id,
		Pos:   n.pos,
		Text:  n.text,
		Style: n.style,
	}
}

// Anchors returns the named anchor points of n, computed from its position.
// TikZ's y axis points up, so north is +y.
func (n *Node) Anchors() map[string]geo.Point {
	return map[string]geo.Point{
		"center": n.pos,
		"north":  n.pos.AddVector(geo.NewVector(0, AnchorRadius)),
		"south":  n.pos.AddVector(geo.NewVector(0, -AnchorRadius)),
		"east":   n.pos.AddVector(geo.NewVector(AnchorRadius, 0)),
		"west":   n.pos.AddVector(geo.NewVector(-AnchorRadius, 0)),
	}
}

func (n *Node) Anchor(name string) (geo.Point, bool) {
	p, ok := n.Anchors()[name]
	return p, ok
}

func (n *Node) String() string {
	return fmt.Sprintf("node %d", n.id)
}

type Edge struct {
	doc   *Document
	id    ID
	start *ID
	end   *ID
	style string
}

func (e *Edge) ID() ID {
	return e.id
}

// Start returns the ID of the start node, if set.
func (e *Edge) Start() (ID, bool) {
	if e.start == nil {
		return 0, false
	}
	return *e.start, true
}

// End returns the ID of the end node, if set.
func (e *Edge) End() (ID, bool) {
	if e.end == nil {
		return 0, false
	}
	return *e.end, true
}

// Endpoint returns the node ID at which, if set.
func (e *Edge) Endpoint(which Endpoint) (ID, bool) {
	if which == Start {
		return e.Start()
	}
	return e.End()
}

func (e *Edge) Style() string {
	return e.style
}

func (e *Edge) Value() EdgeValue {
	return EdgeValue{
		ID:    e.id,
		Start: go2.Copy(e.start),
		End:   go2.Copy(e.end),
		Style: e.style,
	}
}

func (e *Edge) String() string {
	return fmt.Sprintf("edge %d", e.id)
}

// Endpoint selects one end of an edge.
type Endpoint int

const (
	Start Endpoint = iota
	End
)

func (ep Endpoint) String() string {
	if ep == Start {
		return "start"
	}
	return "end"
}

// NodeValue is a detached copy of a node's state, used to capture and restore
// nodes across deletion.
type NodeValue struct {
	ID    ID        `json:"id"`
	Pos   geo.Point `json:"pos"`
	Text  string    `json:"text"`
	Style string    `json:"style,omitempty"`
}

type EdgeValue struct {
	ID    ID     `json:"id"`
	Start *ID    `json:"start,omitempty"`
	End   *ID    `json:"end,omitempty"`
	Style string `json:"style,omitempty"`
}

// EndpointRef is one endpoint of an edge that points at some node.
type EndpointRef struct {
	Edge  ID       `json:"edge"`
	Which Endpoint `json:"which"`
}

// Document owns the nodes and edges of one picture, in insertion order, along
// with its undo stack and style registry.
type Document struct {
	nodes []*Node
	edges []*Edge
	byID  map[ID]interface{}

	// lastID is the most recently issued identity.
	lastID ID

	undo   *tikzundo.Manager
	styles *tikzstyle.Registry

	subs   []subscriber
	subSeq int
}

// NewDocument returns an empty document using styles; nil means an empty
// registry.
func NewDocument(styles *tikzstyle.Registry) *Document {
	if styles == nil {
		styles = tikzstyle.NewRegistry()
	}
	return &Document{
		byID:   make(map[ID]interface{}),
		undo:   tikzundo.NewManager(),
		styles: styles,
	}
}

func (d *Document) UndoManager() *tikzundo.Manager {
	return d.undo
}

func (d *Document) Styles() *tikzstyle.Registry {
	return d.styles
}

// LastID is the most recently issued identity, 0 before any.
func (d *Document) LastID() ID {
	return d.lastID
}

func (d *Document) nextID() ID {
	d.lastID++
	return d.lastID
}

// Nodes returns the nodes in insertion order.
func (d *Document) Nodes() []*Node {
	nodes := make([]*Node, len(d.nodes))
	copy(nodes, d.nodes)
	return nodes
}

// Edges returns the edges in insertion order.
func (d *Document) Edges() []*Edge {
	edges := make([]*Edge, len(d.edges))
	copy(edges, d.edges)
	return edges
}

func (d *Document) NodeCount() int {
	return len(d.nodes)
}

func (d *Document) EdgeCount() int {
	return len(d.edges)
}

// NodeFromID returns the node with id or nil.
func (d *Document) NodeFromID(id ID) *Node {
	n, _ := d.byID[id].(*Node)
	return n
}

// EdgeFromID returns the edge with id or nil.
func (d *Document) EdgeFromID(id ID) *Edge {
	e, _ := d.byID[id].(*Edge)
	return e
}

// NodeIndex returns the position of node id in insertion order or -1.
func (d *Document) NodeIndex(id ID) int {
	for i, n := range d.nodes {
		if n.id == id {
			return i
		}
	}
	return -1
}

// EdgeIndex returns the position of edge id in insertion order or -1.
func (d *Document) EdgeIndex(id ID) int {
	for i, e := range d.edges {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Owns reports whether n is a live node of d.
func (d *Document) Owns(n *Node) bool {
	return n != nil && d.byID[n.id] == n
}

// OwnsEdge reports whether e is a live edge of d.
func (d *Document) OwnsEdge(e *Edge) bool {
	return e != nil && d.byID[e.id] == e
}

// EdgeStart resolves e's start reference, nil when unset.
func (d *Document) EdgeStart(e *Edge) *Node {
	id, ok := e.Start()
	if !ok {
		return nil
	}
	return d.NodeFromID(id)
}

// EdgeEnd resolves e's end reference, nil when unset.
func (d *Document) EdgeEnd(e *Edge) *Node {
	id, ok := e.End()
	if !ok {
		return nil
	}
	return d.NodeFromID(id)
}

// EdgesReferencing returns every endpoint that points at node id, in edge
// order with start before end.
func (d *Document) EdgesReferencing(id ID) []EndpointRef {
	var refs []EndpointRef
	for _, e := range d.edges {
		if e.start != nil && *e.start == id {
			refs = append(refs, EndpointRef{Edge: e.id, Which: Start})
		}
		if e.end != nil && *e.end == id {
			refs = append(refs, EndpointRef{Edge: e.id, Which: End})
		}
	}
	return refs
}
