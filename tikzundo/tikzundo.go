// Package tikzundo implements a linear undo stack of reversible commands.
//
// A Manager holds committed commands and a cursor. Push executes a command and
// either merges it into the command under the cursor or appends it, discarding
// any redo history. Undo and Redo move the cursor, replaying commands.
//
// Everything runs on the caller's goroutine; a Manager is not safe for
// concurrent use.
package tikzundo

// Tag identifies a command kind. Adjacent commands with equal tags are offered
// to MergeWith.
type Tag int

// NoMerge tags commands that never merge.
const NoMerge Tag = -1

type Command interface {
	ID() Tag
	// Text is a short label for menus, e.g. "Move node".
	Text() string
	Redo()
	Undo()
	// MergeWith absorbs other's final state into the receiver and reports
	// whether it did. other has already been executed.
	MergeWith(other Command) bool
}

// Group runs child commands as one step. Redo runs them in order, Undo in
// reverse.
type Group struct {
	text string
	cmds []Command
}

var _ Command = &Group{}

func NewGroup(text string, cmds ...Command) *Group {
	return &Group{
		text: text,
		cmds: cmds,
	}
}

func (g *Group) Add(cmd Command) {
	g.cmds = append(g.cmds, cmd)
}

func (g *Group) Len() int {
	return len(g.cmds)
}

func (g *Group) ID() Tag {
	return NoMerge
}

func (g *Group) Text() string {
	return g.text
}

func (g *Group) Redo() {
	for _, cmd := range g.cmds {
		cmd.Redo()
	}
}

func (g *Group) Undo() {
	for i := len(g.cmds) - 1; i >= 0; i-- {
		g.cmds[i].Undo()
	}
}

func (g *Group) MergeWith(Command) bool {
	return false
}
