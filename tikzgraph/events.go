package tikzgraph

// EventKind is the kind of change a Document reports to subscribers.
type EventKind int

const (
	NodeAdded EventKind = iota
	NodeRemoved
	NodeChanged
	EdgeAdded
	EdgeRemoved
	EdgeChanged
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "node added"
	case NodeRemoved:
		return "node removed"
	case NodeChanged:
		return "node changed"
	case EdgeAdded:
		return "edge added"
	case EdgeRemoved:
		return "edge removed"
	case EdgeChanged:
		return "edge changed"
	default:
		return "unknown"
	}
}

// Event describes one change. Index is the collection position for added and
// removed events and 0 otherwise.
type Event struct {
	Kind  EventKind
	ID    ID
	Index int
}

type subscriber struct {
	seq int
	fn  func(Event)
}

// Subscribe registers fn to be called synchronously after every change to d.
// The returned func removes the subscription.
func (d *Document) Subscribe(fn func(Event)) (unsubscribe func()) {
	d.subSeq++
	seq := d.subSeq
	d.subs = append(d.subs, subscriber{seq: seq, fn: fn})
	return func() {
		for i, s := range d.subs {
			if s.seq == seq {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) emit(ev Event) {
	if len(d.subs) == 0 {
		return
	}
	subs := make([]subscriber, len(d.subs))
	copy(subs, d.subs)
	for _, s := range subs {
		s.fn(ev)
	}
}
