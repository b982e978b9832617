package battle

// MenuState is one level of the command menu.
type MenuState int

const (
	MenuNone MenuState = iota
	MenuAction
	MenuWeapon
	MenuItem
	MenuTargetSelection
)

func (m MenuState) String() string {
	switch m {
	case MenuNone:
		return "none"
	case MenuAction:
		return "action"
	case MenuWeapon:
		return "weapon"
	case MenuItem:
		return "item"
	case MenuTargetSelection:
		return "target_selection"
	default:
		return "unknown"
	}
}

// MenuStack tracks menu navigation. The bottom entry is the root menu and is
// never popped.
type MenuStack struct {
	states []MenuState
}

// Reset clears the stack and pushes initial. MenuNone leaves it empty.
func (m *MenuStack) Reset(initial MenuState) {
	m.states = m.states[:0]
	if initial != MenuNone {
		m.states = append(m.states, initial)
	}
}

// Push adds s on top. Pushing MenuNone or the current state is refused.
func (m *MenuStack) Push(s MenuState) bool {
	if s == MenuNone || m.Current() == s {
		return false
	}
	m.states = append(m.states, s)
	return true
}

// Pop removes the top entry unless only the root remains.
func (m *MenuStack) Pop() bool {
	if !m.CanPop() {
		return false
	}
	m.states = m.states[:len(m.states)-1]
	return true
}

// CanPop reports whether Pop would succeed.
func (m *MenuStack) CanPop() bool {
	return len(m.states) > 1
}

// Current returns the top entry, or MenuNone when empty.
func (m *MenuStack) Current() MenuState {
	if len(m.states) == 0 {
		return MenuNone
	}
	return m.states[len(m.states)-1]
}

func (m *MenuStack) Depth() int {
	return len(m.states)
}

// States returns a copy, root first.
func (m *MenuStack) States() []MenuState {
	out := make([]MenuState, len(m.states))
	copy(out, m.states)
	return out
}
