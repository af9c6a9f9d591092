package tikzoracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"cdr.dev/slog"
	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/tikzgraph"
)

// Script is a YAML list of edits applied through a document's undo manager:
//
//	ops:
//	  - op: create_node
//	    name: a
//	    pos: [0, 1]
//	    text: $x$
//	  - op: create_node
//	    name: b
//	  - op: create_edge
//	    start: a
//	    end: b
//	  - op: set_style
//	    target: a
//	    style: red node
//	  - op: undo
//
// Entities are referred to by a name bound earlier in the script or by the
// Applier, or by their numeric ID.
type Script struct {
	Ops []Op `yaml:"ops"`
}

type Op struct {
	Op string `yaml:"op"`

	// Name binds the entity made by create_node or create_edge.
	Name    string   `yaml:"name,omitempty"`
	Target  string   `yaml:"target,omitempty"`
	Targets []string `yaml:"targets,omitempty"`

	Pos   []float64 `yaml:"pos,omitempty"`
	Text  *string   `yaml:"text,omitempty"`
	Style *string   `yaml:"style,omitempty"`
	Start string    `yaml:"start,omitempty"`
	End   string    `yaml:"end,omitempty"`

	// Node is the new endpoint of set_start and set_end. Empty clears it.
	Node string `yaml:"node,omitempty"`

	// Count repeats undo and redo. Zero means once.
	Count int `yaml:"count,omitempty"`
}

func LoadScript(r io.Reader) (_ *Script, err error) {
	defer xdefer.Errorf(&err, "failed to load edit script")

	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &s, nil
}

// Applier applies scripts to one document and remembers the names they bind.
type Applier struct {
	doc   *tikzgraph.Document
	names map[string]tikzgraph.ID
}

func NewApplier(doc *tikzgraph.Document) *Applier {
	return &Applier{
		doc:   doc,
		names: make(map[string]tikzgraph.ID),
	}
}

// Bind makes name refer to id in later scripts.
func (a *Applier) Bind(name string, id tikzgraph.ID) {
	a.names[name] = id
}

// Lookup resolves a bound name or a numeric ID.
func (a *Applier) Lookup(ref string) (tikzgraph.ID, bool) {
	if id, ok := a.names[ref]; ok {
		return id, true
	}
	v, err := strconv.ParseUint(ref, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return tikzgraph.ID(v), true
}

// Apply runs every op in order. It stops at the first op that refers to a
// missing entity or is malformed; edits already pushed stay applied.
func (a *Applier) Apply(ctx context.Context, s *Script) (err error) {
	defer xdefer.Errorf(&err, "failed to apply edit script")

	m := a.doc.UndoManager()
	for i, op := range s.Ops {
		if err := a.apply(op); err != nil {
			return fmt.Errorf("ops[%d] (%s): %w", i, op.Op, err)
		}
		log.Debug(ctx, "applied edit",
			slog.F("op", op.Op),
			slog.F("index", m.Index()),
			slog.F("count", m.Count()),
		)
	}
	return nil
}

func (a *Applier) apply(op Op) error {
	m := a.doc.UndoManager()
	switch op.Op {
	case "create_node":
		pos, err := op.point()
		if err != nil {
			return err
		}
		var text string
		if op.Text != nil {
			text = *op.Text
		}
		c := NewCreateNode(a.doc, pos, text)
		m.Push(c)
		a.bind(op.Name, c.NodeID())
		return nil
	case "create_edge":
		start, err := a.optNode(op.Start)
		if err != nil {
			return err
		}
		end, err := a.optNode(op.End)
		if err != nil {
			return err
		}
		c := NewCreateEdge(a.doc, start, end)
		m.Push(c)
		a.bind(op.Name, c.EdgeID())
		return nil
	case "delete_node":
		n, err := a.node(op.Target)
		if err != nil {
			return err
		}
		m.Push(NewDeleteNode(a.doc, n.ID()))
		return nil
	case "delete_edge":
		e, err := a.edge(op.Target)
		if err != nil {
			return err
		}
		m.Push(NewDeleteEdge(a.doc, e.ID()))
		return nil
	case "delete":
		var nodes, edges []tikzgraph.ID
		for _, ref := range op.Targets {
			id, ok := a.Lookup(ref)
			switch {
			case !ok:
				return fmt.Errorf("unknown entity %q", ref)
			case a.doc.NodeFromID(id) != nil:
				nodes = append(nodes, id)
			case a.doc.EdgeFromID(id) != nil:
				edges = append(edges, id)
			default:
				return fmt.Errorf("unknown entity %q", ref)
			}
		}
		m.Push(DeleteSelection(a.doc, nodes, edges))
		return nil
	case "set_text":
		n, err := a.node(op.Target)
		if err != nil {
			return err
		}
		if op.Text == nil {
			return errors.New("missing text")
		}
		m.Push(NewSetNodeText(a.doc, n.ID(), *op.Text))
		return nil
	case "set_pos":
		n, err := a.node(op.Target)
		if err != nil {
			return err
		}
		if op.Pos == nil {
			return errors.New("missing pos")
		}
		pos, err := op.point()
		if err != nil {
			return err
		}
		m.Push(NewSetNodePos(a.doc, n.ID(), pos))
		return nil
	case "set_style":
		if op.Style == nil {
			return errors.New("missing style")
		}
		id, ok := a.Lookup(op.Target)
		if !ok {
			return fmt.Errorf("unknown entity %q", op.Target)
		}
		if a.doc.NodeFromID(id) != nil {
			m.Push(NewSetNodeStyle(a.doc, id, *op.Style))
			return nil
		}
		if a.doc.EdgeFromID(id) != nil {
			m.Push(NewSetEdgeStyle(a.doc, id, *op.Style))
			return nil
		}
		return fmt.Errorf("unknown entity %q", op.Target)
	case "set_start", "set_end":
		e, err := a.edge(op.Target)
		if err != nil {
			return err
		}
		node, err := a.optNode(op.Node)
		if err != nil {
			return err
		}
		which := tikzgraph.Start
		if op.Op == "set_end" {
			which = tikzgraph.End
		}
		m.Push(NewSetEdgeEndpoint(a.doc, e.ID(), which, node))
		return nil
	case "undo":
		for i := 0; i < op.times(); i++ {
			m.Undo()
		}
		return nil
	case "redo":
		for i := 0; i < op.times(); i++ {
			m.Redo()
		}
		return nil
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

func (a *Applier) bind(name string, id tikzgraph.ID) {
	if name != "" {
		a.names[name] = id
	}
}

func (a *Applier) node(ref string) (*tikzgraph.Node, error) {
	id, ok := a.Lookup(ref)
	if !ok {
		return nil, fmt.Errorf("unknown node %q", ref)
	}
	n := a.doc.NodeFromID(id)
	if n == nil {
		return nil, fmt.Errorf("unknown node %q", ref)
	}
	return n, nil
}

func (a *Applier) edge(ref string) (*tikzgraph.Edge, error) {
	id, ok := a.Lookup(ref)
	if !ok {
		return nil, fmt.Errorf("unknown edge %q", ref)
	}
	e := a.doc.EdgeFromID(id)
	if e == nil {
		return nil, fmt.Errorf("unknown edge %q", ref)
	}
	return e, nil
}

func (a *Applier) optNode(ref string) (*tikzgraph.ID, error) {
	if ref == "" {
		return nil, nil
	}
	n, err := a.node(ref)
	if err != nil {
		return nil, err
	}
	id := n.ID()
	return &id, nil
}

func (op Op) point() (geo.Point, error) {
	switch len(op.Pos) {
	case 0:
		return geo.Point{}, nil
	case 2:
		return geo.Point{X: op.Pos[0], Y: op.Pos[1]}, nil
	default:
		return geo.Point{}, fmt.Errorf("pos must have 2 coordinates, got %d", len(op.Pos))
	}
}

func (op Op) times() int {
	if op.Count <= 0 {
		return 1
	}
	return op.Count
}
