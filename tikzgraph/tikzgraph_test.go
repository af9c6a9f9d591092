package tikzgraph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/tikzgraph"
)

func serialize(t *testing.T, d *tikzgraph.Document) string {
	t.Helper()
	b, err := d.SerializeJSON()
	require.NoError(t, err)
	return string(b)
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	assert.Equal(t, "[]", serialize(t, d))
	assert.NotNil(t, d.UndoManager())
	assert.NotNil(t, d.Styles())
	assert.Equal(t, tikzgraph.ID(0), d.LastID())
	assert.NoError(t, d.Check())
}

func TestCreateDefaults(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n := d.CreateNode()
	assert.Equal(t, tikzgraph.ID(1), n.ID())
	assert.Equal(t, geo.Point{}, n.Pos())
	assert.Equal(t, "", n.Text())
	assert.Equal(t, "", n.Style())

	p := geo.Point{X: 1.25, Y: -3.1}
	d.SetNodePos(n, p)
	assert.Equal(t, p, n.Pos())

	e := d.CreateEdge()
	assert.Equal(t, tikzgraph.ID(2), e.ID())
	_, ok := e.Start()
	assert.False(t, ok)
	_, ok = e.End()
	assert.False(t, ok)
	assert.Nil(t, d.EdgeStart(e))
	assert.Nil(t, d.EdgeEnd(e))

	assert.Equal(t, `[{"node":1},{"edge":2}]`, serialize(t, d))
	assert.NoError(t, d.Check())
}

func TestLookupKinds(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n := d.CreateNode()
	e := d.CreateEdge()

	assert.Same(t, n, d.NodeFromID(n.ID()))
	assert.Same(t, e, d.EdgeFromID(e.ID()))
	assert.Nil(t, d.NodeFromID(e.ID()))
	assert.Nil(t, d.EdgeFromID(n.ID()))
	assert.Nil(t, d.NodeFromID(99))
	assert.Nil(t, d.EdgeFromID(0))
	assert.Equal(t, -1, d.NodeIndex(99))
	assert.Equal(t, 0, d.EdgeIndex(e.ID()))
}

func TestIDsNeverReused(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n1 := d.CreateNode()
	d.CreateNode()
	d.DeleteNode(n1)

	n3 := d.CreateNode()
	assert.Equal(t, tikzgraph.ID(3), n3.ID())
	assert.Equal(t, `[{"node":2},{"node":3}]`, serialize(t, d))

	e := d.CreateEdge()
	d.DeleteEdge(e)
	assert.Equal(t, tikzgraph.ID(5), d.CreateNode().ID())
}

func TestDeleteNodeClearsEndpoints(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n1 := d.CreateNode()
	n2 := d.CreateNode()
	e := d.CreateEdge()
	loop := d.CreateEdge()
	d.SetEdgeStart(e, n1)
	d.SetEdgeEnd(e, n2)
	d.SetEdgeStart(loop, n1)
	d.SetEdgeEnd(loop, n1)

	assert.Equal(t, []tikzgraph.EndpointRef{
		{Edge: e.ID(), Which: tikzgraph.Start},
		{Edge: loop.ID(), Which: tikzgraph.Start},
		{Edge: loop.ID(), Which: tikzgraph.End},
	}, d.EdgesReferencing(n1.ID()))

	d.DeleteNode(n1)

	assert.Nil(t, d.EdgeStart(e))
	assert.Same(t, n2, d.EdgeEnd(e))
	assert.Nil(t, d.EdgeStart(loop))
	assert.Nil(t, d.EdgeEnd(loop))
	assert.Empty(t, d.EdgesReferencing(n1.ID()))
	assert.False(t, d.Owns(n1))
	assert.Equal(t, `[{"node":2},{"edge":3},{"edge":4}]`, serialize(t, d))
	assert.NoError(t, d.Check())
}

func TestInsertRestoresPosition(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n1 := d.CreateNode()
	d.SetNodeText(n1, "a")
	d.CreateNode()
	e := d.CreateEdge()
	d.SetEdgeStart(e, n1)

	v := n1.Value()
	idx := d.NodeIndex(n1.ID())
	d.DeleteNode(n1)

	restored := d.InsertNode(idx, v)
	d.SetEdgeStart(e, restored)
	assert.Equal(t, "a", restored.Text())
	assert.Equal(t, `[{"node":1},{"node":2},{"edge":3}]`, serialize(t, d))
	assert.Same(t, restored, d.EdgeStart(e))

	ev := e.Value()
	d.DeleteEdge(e)
	re := d.InsertEdge(0, ev)
	assert.Equal(t, ev, re.Value())
	assert.NoError(t, d.Check())
}

func TestInsertPanics(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n := d.CreateNode()
	gone := d.CreateNode()
	d.DeleteNode(gone)
	missing := gone.ID()

	testCases := []struct {
		name string
		fn   func()
	}{
		{
			name: "present",
			fn:   func() { d.InsertNode(0, n.Value()) },
		},
		{
			name: "never_issued",
			fn:   func() { d.InsertNode(0, tikzgraph.NodeValue{ID: 42}) },
		},
		{
			name: "zero",
			fn:   func() { d.InsertNode(0, tikzgraph.NodeValue{}) },
		},
		{
			name: "index",
			fn:   func() { d.InsertNode(5, tikzgraph.NodeValue{ID: missing}) },
		},
		{
			name: "dangling_endpoint",
			fn: func() {
				e := d.CreateEdge()
				v := e.Value()
				d.DeleteEdge(e)
				v.Start = &missing
				d.InsertEdge(0, v)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, tc.fn)
		})
	}
}

func TestForeignEntityPanics(t *testing.T) {
	t.Parallel()

	d1 := tikzgraph.NewDocument(nil)
	d2 := tikzgraph.NewDocument(nil)
	n := d1.CreateNode()
	e := d1.CreateEdge()
	d2.CreateNode()
	d2.CreateEdge()

	assert.Panics(t, func() { d2.DeleteNode(n) })
	assert.Panics(t, func() { d2.DeleteEdge(e) })
	assert.Panics(t, func() { d2.SetNodeText(n, "x") })

	d1.DeleteNode(n)
	assert.Panics(t, func() { d1.DeleteNode(n) })
	assert.Panics(t, func() { d1.SetEdgeStart(e, n) })
}

func TestEvents(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	var got []tikzgraph.Event
	unsubscribe := d.Subscribe(func(ev tikzgraph.Event) {
		got = append(got, ev)
	})

	n := d.CreateNode()
	e := d.CreateEdge()
	d.SetEdgeEnd(e, n)
	d.SetNodeText(n, "x")
	d.DeleteNode(n)
	unsubscribe()
	d.CreateNode()

	assert.Equal(t, []tikzgraph.Event{
		{Kind: tikzgraph.NodeAdded, ID: 1},
		{Kind: tikzgraph.EdgeAdded, ID: 2},
		{Kind: tikzgraph.EdgeChanged, ID: 2},
		{Kind: tikzgraph.NodeChanged, ID: 1},
		{Kind: tikzgraph.EdgeChanged, ID: 2},
		{Kind: tikzgraph.NodeRemoved, ID: 1},
	}, got)
}

func TestAnchors(t *testing.T) {
	t.Parallel()

	d := tikzgraph.NewDocument(nil)
	n := d.CreateNode()
	d.SetNodePos(n, geo.Point{X: 1, Y: 2})

	north, ok := n.Anchor("north")
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 1, Y: 2.5}, north)
	west, _ := n.Anchor("west")
	assert.Equal(t, geo.Point{X: 0.5, Y: 2}, west)
	_, ok = n.Anchor("north east")
	assert.False(t, ok)
	assert.Len(t, n.Anchors(), 5)
}

func TestRecordJSON(t *testing.T) {
	t.Parallel()

	var records []tikzgraph.Record
	err := json.Unmarshal([]byte(`[ { "node" : 1 }, { "edge" : 3 } ]`), &records)
	require.NoError(t, err)
	assert.Equal(t, []tikzgraph.Record{
		{Kind: tikzgraph.KindNode, ID: 1},
		{Kind: tikzgraph.KindEdge, ID: 3},
	}, records)

	err = json.Unmarshal([]byte(`[{"path": 1}]`), &records)
	assert.EqualError(t, err, `unknown record kind "path"`)
	err = json.Unmarshal([]byte(`[{"node": 1, "edge": 2}]`), &records)
	assert.EqualError(t, err, "expected exactly one key in record, got 2")
}
