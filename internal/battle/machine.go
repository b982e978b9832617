package battle

import (
	"fmt"
	"log/slog"
)

// StateID names a phase of the battle state machine.
type StateID int

const (
	StateNone StateID = iota - 1
	StateBattleStart
	StateTurnPhase
	StateCommandPhase
	StateActionPhase
	StateBattleEnd

	stateCount
)

func (s StateID) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateBattleStart:
		return "battle_start"
	case StateTurnPhase:
		return "turn_phase"
	case StateCommandPhase:
		return "command_phase"
	case StateActionPhase:
		return "action_phase"
	case StateBattleEnd:
		return "battle_end"
	default:
		return "unknown"
	}
}

func (s StateID) valid() bool { return s >= 0 && s < stateCount }

// Event is what a state returns to request a transition.
type Event int

const (
	EventNone Event = iota
	EventFinished
	EventBattleEnd

	eventCount
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "NONE"
	case EventFinished:
		return "FINISHED"
	case EventBattleEnd:
		return "BATTLE_END"
	default:
		return "UNKNOWN"
	}
}

func (e Event) valid() bool { return e >= 0 && e < eventCount }

// State is one phase. Enter may return an event to leave immediately.
// Emits lists every event Update or Enter can return; a state that emits
// nothing is terminal.
type State interface {
	Enter() Event
	Update(tick int) Event
	Exit()
	Emits() []Event
}

// TransitionTable maps (state, event) to the next state.
type TransitionTable struct {
	next [stateCount][eventCount]StateID
}

// NewTransitionTable returns a table with no transitions.
func NewTransitionTable() TransitionTable {
	var t TransitionTable
	for s := range t.next {
		for e := range t.next[s] {
			t.next[s][e] = StateNone
		}
	}
	return t
}

// Set adds from --ev--> to.
func (t *TransitionTable) Set(from StateID, ev Event, to StateID) error {
	if !from.valid() || !to.valid() || !ev.valid() || ev == EventNone {
		return fmt.Errorf("%s --%s--> %s: %w", from, ev, to, ErrInvalidTransition)
	}
	t.next[from][ev] = to
	return nil
}

// Target looks up the transition for (from, ev).
func (t *TransitionTable) Target(from StateID, ev Event) (StateID, bool) {
	if !from.valid() || !ev.valid() {
		return StateNone, false
	}
	to := t.next[from][ev]
	return to, to != StateNone
}

// BattleTransitions is the fixed battle flow. BattleEnd is terminal.
func BattleTransitions() TransitionTable {
	t := NewTransitionTable()
	t.next[StateBattleStart][EventFinished] = StateTurnPhase
	t.next[StateTurnPhase][EventFinished] = StateCommandPhase
	t.next[StateTurnPhase][EventBattleEnd] = StateBattleEnd
	t.next[StateCommandPhase][EventFinished] = StateActionPhase
	t.next[StateCommandPhase][EventBattleEnd] = StateBattleEnd
	t.next[StateActionPhase][EventFinished] = StateTurnPhase
	t.next[StateActionPhase][EventBattleEnd] = StateBattleEnd
	return t
}

// MachineConfig describes a machine to build.
type MachineConfig struct {
	Initial StateID
	States  map[StateID]State
	Table   TransitionTable
	Events  *Events
	Logger  *slog.Logger
}

// Machine is a tick-driven state machine over a fixed table.
type Machine struct {
	states  [stateCount]State
	table   TransitionTable
	initial StateID
	current StateID
	active  bool
	events  *Events
	logger  *slog.Logger

	tick        int
	transitions int
}

// maxChain bounds how many Enter-returned events are followed in one call.
const maxChain = int(stateCount) * 2

// NewMachine validates cfg. Every state reachable from Initial must be
// registered, every non-terminal one must handle FINISHED, and every event a
// state emits must have a transition.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	m := &Machine{
		table:   cfg.Table,
		initial: cfg.Initial,
		current: StateNone,
		events:  cfg.Events,
		logger:  loggerOrDefault(cfg.Logger),
	}
	for id, st := range cfg.States {
		if !id.valid() {
			return nil, fmt.Errorf("state %d: %w", int(id), ErrUnknownState)
		}
		m.states[id] = st
	}
	if !cfg.Initial.valid() || m.states[cfg.Initial] == nil {
		return nil, ErrNoInitialState
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNewMachine is NewMachine for static tables; it panics on error.
func MustNewMachine(cfg MachineConfig) *Machine {
	m, err := NewMachine(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Machine) validate() error {
	seen := map[StateID]bool{m.initial: true}
	queue := []StateID{m.initial}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		st := m.states[id]
		if st == nil {
			return fmt.Errorf("state %s: %w", id, ErrUnknownState)
		}
		emits := st.Emits()
		if len(emits) > 0 {
			if _, ok := m.table.Target(id, EventFinished); !ok {
				return fmt.Errorf("state %s: %w", id, ErrMissingFinished)
			}
		}
		for _, ev := range emits {
			if ev == EventNone {
				continue
			}
			if _, ok := m.table.Target(id, ev); !ok {
				return fmt.Errorf("state %s event %s: %w", id, ev, ErrMissingTransition)
			}
		}
		for ev := EventNone + 1; ev < eventCount; ev++ {
			to, ok := m.table.Target(id, ev)
			if ok && !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}
	return nil
}

func (m *Machine) Current() StateID { return m.current }
func (m *Machine) Active() bool     { return m.active }
func (m *Machine) Transitions() int { return m.transitions }

// Done reports whether the machine sits in a terminal state.
func (m *Machine) Done() bool {
	if !m.active || !m.current.valid() {
		return false
	}
	return len(m.states[m.current].Emits()) == 0
}

// Activate enters the initial state. A machine that finished may be
// activated again.
func (m *Machine) Activate() error {
	if m.active && !m.Done() {
		return ErrMachineActive
	}
	m.active = true
	m.tick = 0
	m.transitions = 0
	prev := m.current
	m.current = m.initial
	m.enter(prev, m.initial, 0)
	return nil
}

// Update runs one tick of the current state and applies its event.
func (m *Machine) Update(tick int) Event {
	if !m.active {
		return EventNone
	}
	m.tick = tick
	ev := m.states[m.current].Update(tick)
	if ev != EventNone {
		m.apply(ev, 0)
	}
	return ev
}

// Trigger applies ev from outside the current state's Update.
func (m *Machine) Trigger(ev Event) bool {
	if !m.active {
		return false
	}
	return m.apply(ev, 0)
}

func (m *Machine) apply(ev Event, depth int) bool {
	to, ok := m.table.Target(m.current, ev)
	if !ok {
		m.logger.Warn("machine: no transition", "state", m.current, "event", ev)
		return false
	}
	from := m.current
	m.states[from].Exit()
	m.current = to
	m.transitions++
	m.enter(from, to, depth)
	return true
}

func (m *Machine) enter(from, to StateID, depth int) {
	m.logger.Debug("machine: enter", "from", from, "to", to, "tick", m.tick)
	if m.events != nil {
		m.events.PhaseChanged.Emit(PhaseChange{From: from, To: to, Tick: m.tick})
	}
	ev := m.states[to].Enter()
	if ev == EventNone {
		return
	}
	if depth >= maxChain {
		m.logger.Error("machine: enter chain too long", "state", to, "event", ev)
		return
	}
	m.apply(ev, depth+1)
}
