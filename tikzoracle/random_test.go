package tikzoracle_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xrand"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/lib/go2"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzoracle"
	"oss.terrastruct.com/tikzed/tikzundo"
)

type state struct {
	JSON  string
	Nodes []tikzgraph.NodeValue
	Edges []tikzgraph.EdgeValue
}

func snapshot(t *testing.T, d *tikzgraph.Document) state {
	t.Helper()
	s := state{JSON: serialize(t, d)}
	for _, n := range d.Nodes() {
		s.Nodes = append(s.Nodes, n.Value())
	}
	for _, e := range d.Edges() {
		s.Edges = append(s.Edges, e.Value())
	}
	return s
}

// randomCommand builds a command valid for the current document, or nil when
// none of the picked kind applies.
func randomCommand(r *rand.Rand, d *tikzgraph.Document, lastNode *tikzgraph.ID) tikzundo.Command {
	nodes := d.Nodes()
	edges := d.Edges()
	pickNode := func() tikzgraph.ID {
		if *lastNode != 0 && d.NodeFromID(*lastNode) != nil && r.Intn(2) == 0 {
			return *lastNode
		}
		*lastNode = nodes[r.Intn(len(nodes))].ID()
		return *lastNode
	}
	optNode := func() *tikzgraph.ID {
		if len(nodes) == 0 || r.Intn(4) == 0 {
			return nil
		}
		return go2.Pointer(nodes[r.Intn(len(nodes))].ID())
	}
	point := func() geo.Point {
		return geo.Point{X: float64(r.Intn(40) - 20), Y: float64(r.Intn(40) - 20)}
	}

	switch r.Intn(8) {
	case 0:
		return tikzoracle.NewCreateNode(d, point(), xrand.Base64(r.Intn(8)))
	case 1:
		return tikzoracle.NewCreateEdge(d, optNode(), optNode())
	case 2:
		if len(nodes) == 0 {
			return nil
		}
		return tikzoracle.NewDeleteNode(d, nodes[r.Intn(len(nodes))].ID())
	case 3:
		if len(edges) == 0 {
			return nil
		}
		return tikzoracle.NewDeleteEdge(d, edges[r.Intn(len(edges))].ID())
	case 4:
		if len(edges) == 0 {
			return nil
		}
		which := tikzgraph.Start
		if r.Intn(2) == 0 {
			which = tikzgraph.End
		}
		return tikzoracle.NewSetEdgeEndpoint(d, edges[r.Intn(len(edges))].ID(), which, optNode())
	case 5:
		if len(nodes) == 0 {
			return nil
		}
		return tikzoracle.NewSetNodeText(d, pickNode(), xrand.Base64(r.Intn(8)))
	case 6:
		if len(nodes) == 0 {
			return nil
		}
		return tikzoracle.NewSetNodePos(d, pickNode(), point())
	default:
		var nodeIDs, edgeIDs []tikzgraph.ID
		for _, n := range nodes {
			if r.Intn(3) == 0 {
				nodeIDs = append(nodeIDs, n.ID())
			}
		}
		for _, e := range edges {
			if r.Intn(3) == 0 {
				edgeIDs = append(edgeIDs, e.ID())
			}
		}
		if len(nodeIDs)+len(edgeIDs) == 0 {
			return nil
		}
		return tikzoracle.DeleteSelection(d, nodeIDs, edgeIDs)
	}
}

func TestRandomSequences(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		i := i
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()

			r := rand.New(rand.NewSource(int64(i)))
			d := tikzgraph.NewDocument(nil)
			m := d.UndoManager()
			// states[k] is the document after the first k commands.
			states := []state{snapshot(t, d)}
			var lastNode tikzgraph.ID

			for step := 0; step < 60; step++ {
				switch r.Intn(10) {
				case 0:
					for n := r.Intn(3); n >= 0; n-- {
						m.Undo()
					}
				case 1:
					for n := r.Intn(3); n >= 0; n-- {
						m.Redo()
					}
				default:
					cmd := randomCommand(r, d, &lastNode)
					if cmd == nil {
						continue
					}
					m.Push(cmd)
					// A merged command replaces the state of the one it
					// merged into.
					states = append(states[:m.Index()], snapshot(t, d))
				}
				require.Len(t, states, m.Count()+1)
				require.Equal(t, states[m.Index()], snapshot(t, d), "step %d", step)
				require.NoError(t, d.Check(), "step %d", step)
			}

			for k := m.Index(); k >= 0; k-- {
				m.SetIndex(k)
				assert.Equal(t, states[k], snapshot(t, d), "undo to %d", k)
				require.NoError(t, d.Check())
			}
			for k := 0; k <= m.Count(); k++ {
				m.SetIndex(k)
				assert.Equal(t, states[k], snapshot(t, d), "redo to %d", k)
				require.NoError(t, d.Check())
			}
		})
	}
}
