package tikzgraph

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// Record is one entry of a serialized Document: the kind and identity of a
// surviving entity. It marshals as {"node": 1} or {"edge": 3}.
type Record struct {
	Kind Kind
	ID   ID
}

func (r Record) String() string {
	return fmt.Sprintf("%s %d", r.Kind, r.ID)
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[Kind]ID{r.Kind: r.ID})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var m map[Kind]ID
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("expected exactly one key in record, got %d", len(m))
	}
	for k, id := range m {
		if k != KindNode && k != KindEdge {
			return fmt.Errorf("unknown record kind %q", k)
		}
		r.Kind = k
		r.ID = id
	}
	return nil
}

// Serialize returns one record per surviving entity: nodes in insertion order,
// then edges in insertion order. It omits text, positions and endpoints.
func (d *Document) Serialize() []Record {
	records := make([]Record, 0, len(d.nodes)+len(d.edges))
	for _, n := range d.nodes {
		records = append(records, Record{Kind: KindNode, ID: n.id})
	}
	for _, e := range d.edges {
		records = append(records, Record{Kind: KindEdge, ID: e.id})
	}
	return records
}

// SerializeJSON returns Serialize as a compact JSON array, [] when empty.
func (d *Document) SerializeJSON() ([]byte, error) {
	return json.Marshal(d.Serialize())
}
