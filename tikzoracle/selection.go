package tikzoracle

import (
	"fmt"

	"oss.terrastruct.com/tikzed/lib/go2"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzundo"
)

// DeleteSelection deletes a mixed selection as one undo step. Edges go first
// so the node deletions only record endpoints of edges that survive. Repeated
// IDs are deleted once.
func DeleteSelection(doc *tikzgraph.Document, nodeIDs, edgeIDs []tikzgraph.ID) *tikzundo.Group {
	nodeIDs = go2.Uniq(nodeIDs)
	edgeIDs = go2.Uniq(edgeIDs)
	g := tikzundo.NewGroup(fmt.Sprintf("Delete %d Items", len(nodeIDs)+len(edgeIDs)))
	for _, id := range edgeIDs {
		g.Add(NewDeleteEdge(doc, id))
	}
	for _, id := range nodeIDs {
		g.Add(NewDeleteNode(doc, id))
	}
	return g
}

