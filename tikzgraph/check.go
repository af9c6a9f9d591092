package tikzgraph

import (
	"fmt"
	"strings"
)

// Check verifies the Document's invariants: identities are unique, issued and
// indexed, and every set edge endpoint resolves to a present node.
func (d *Document) Check() error {
	var errs []string
	seen := make(map[ID]struct{}, len(d.nodes)+len(d.edges))
	checkID := func(kind string, id ID, owner interface{}) {
		if id == 0 || id > d.lastID {
			errs = append(errs, fmt.Sprintf("%s %d was never issued (last issued %d)", kind, id, d.lastID))
		}
		if _, ok := seen[id]; ok {
			errs = append(errs, fmt.Sprintf("%s %d: duplicate identity", kind, id))
		}
		seen[id] = struct{}{}
		if d.byID[id] != owner {
			errs = append(errs, fmt.Sprintf("%s %d is not indexed", kind, id))
		}
	}
	for _, n := range d.nodes {
		if n.doc != d {
			errs = append(errs, fmt.Sprintf("%v belongs to another document", n))
		}
		checkID("node", n.id, n)
	}
	for _, e := range d.edges {
		if e.doc != d {
			errs = append(errs, fmt.Sprintf("%v belongs to another document", e))
		}
		checkID("edge", e.id, e)
		for _, which := range []Endpoint{Start, End} {
			id, ok := e.Endpoint(which)
			if ok && d.NodeFromID(id) == nil {
				errs = append(errs, fmt.Sprintf("%v %v references missing node %d", e, which, id))
			}
		}
	}
	if len(d.byID) != len(seen) {
		errs = append(errs, fmt.Sprintf("index holds %d entities, collections hold %d", len(d.byID), len(seen)))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("document invariants violated:\n%s", strings.Join(errs, "\n"))
}
