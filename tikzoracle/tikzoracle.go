// Package tikzoracle implements the reversible edits of a tikzgraph.Document
// as tikzundo commands. Push them onto the document's undo manager to apply
// them.
package tikzoracle

import (
	"fmt"

	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzundo"
)

const (
	TagCreateNode tikzundo.Tag = iota + 1
	TagDeleteNode
	TagSetNodeText
	TagSetNodePos
	TagSetNodeStyle
	TagCreateEdge
	TagDeleteEdge
	TagSetEdgeEndpoint
	TagSetEdgeStyle
)

// mustNode resolves a captured identity. A miss means the undo stack and the
// document have diverged, which nothing can repair.
func mustNode(doc *tikzgraph.Document, id tikzgraph.ID) *tikzgraph.Node {
	n := doc.NodeFromID(id)
	if n == nil {
		panic(fmt.Sprintf("tikzoracle: node %d missing from document", id))
	}
	return n
}

func mustEdge(doc *tikzgraph.Document, id tikzgraph.ID) *tikzgraph.Edge {
	e := doc.EdgeFromID(id)
	if e == nil {
		panic(fmt.Sprintf("tikzoracle: edge %d missing from document", id))
	}
	return e
}

// optNode resolves an optional endpoint reference.
func optNode(doc *tikzgraph.Document, id *tikzgraph.ID) *tikzgraph.Node {
	if id == nil {
		return nil
	}
	return mustNode(doc, *id)
}

