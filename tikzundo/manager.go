package tikzundo

// Manager is the undo stack of one document.
type Manager struct {
	cmds  []Command
	index int
	// clean is the cursor position of the last save, -1 when that state can
	// no longer be reached.
	clean int
	limit int
}

func NewManager() *Manager {
	return &Manager{}
}

// Push executes cmd and records it.
func (m *Manager) Push(cmd Command) {
	cmd.Redo()

	if m.index == len(m.cmds) && m.index > 0 {
		prev := m.cmds[m.index-1]
		if cmd.ID() != NoMerge && prev.ID() == cmd.ID() && prev.MergeWith(cmd) {
			if m.clean == m.index {
				m.clean = -1
			}
			return
		}
	}

	if m.clean > m.index {
		m.clean = -1
	}
	for i := m.index; i < len(m.cmds); i++ {
		m.cmds[i] = nil
	}
	m.cmds = append(m.cmds[:m.index], cmd)
	m.index++
	m.trim()
}

func (m *Manager) Undo() {
	if m.index == 0 {
		return
	}
	m.index--
	m.cmds[m.index].Undo()
}

func (m *Manager) Redo() {
	if m.index == len(m.cmds) {
		return
	}
	m.cmds[m.index].Redo()
	m.index++
}

// SetIndex undoes or redoes until the cursor is at idx, clamped to [0, Count].
func (m *Manager) SetIndex(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.cmds) {
		idx = len(m.cmds)
	}
	for m.index > idx {
		m.Undo()
	}
	for m.index < idx {
		m.Redo()
	}
}

func (m *Manager) CanUndo() bool {
	return m.index > 0
}

func (m *Manager) CanRedo() bool {
	return m.index < len(m.cmds)
}

// Index is the cursor: the number of commands currently applied.
func (m *Manager) Index() int {
	return m.index
}

func (m *Manager) Count() int {
	return len(m.cmds)
}

// Command returns the i'th recorded command or nil.
func (m *Manager) Command(i int) Command {
	if i < 0 || i >= len(m.cmds) {
		return nil
	}
	return m.cmds[i]
}

func (m *Manager) UndoText() string {
	if !m.CanUndo() {
		return ""
	}
	return m.cmds[m.index-1].Text()
}

func (m *Manager) RedoText() string {
	if !m.CanRedo() {
		return ""
	}
	return m.cmds[m.index].Text()
}

// SetClean marks the current cursor as the saved state.
func (m *Manager) SetClean() {
	m.clean = m.index
}

func (m *Manager) IsClean() bool {
	return m.clean == m.index
}

// CleanIndex is the saved cursor position or -1.
func (m *Manager) CleanIndex() int {
	return m.clean
}

// Clear drops every command without replaying any of them. The current state
// becomes clean.
func (m *Manager) Clear() {
	m.cmds = nil
	m.index = 0
	m.clean = 0
}

// SetLimit caps the number of recorded commands. The oldest applied commands
// are dropped first; n <= 0 removes the cap.
func (m *Manager) SetLimit(n int) {
	m.limit = n
	m.trim()
}

func (m *Manager) Limit() int {
	return m.limit
}

func (m *Manager) trim() {
	if m.limit <= 0 || len(m.cmds) <= m.limit {
		return
	}
	drop := len(m.cmds) - m.limit
	if drop > m.index {
		drop = m.index
	}
	if drop == 0 {
		return
	}
	m.cmds = append([]Command(nil), m.cmds[drop:]...)
	m.index -= drop
	if m.clean != -1 {
		m.clean -= drop
		if m.clean < 0 {
			m.clean = -1
		}
	}
}
