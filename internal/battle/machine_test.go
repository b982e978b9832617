package battle

import (
	"errors"
	"slices"
	"testing"
)

// scriptState returns queued events from Update and records its lifecycle.
type scriptState struct {
	name    string
	emits   []Event
	enter   Event
	updates []Event
	trace   *[]string
}

func (s *scriptState) Emits() []Event { return s.emits }

func (s *scriptState) Enter() Event {
	*s.trace = append(*s.trace, "enter:"+s.name)
	return s.enter
}

func (s *scriptState) Update(int) Event {
	if len(s.updates) == 0 {
		return EventNone
	}
	ev := s.updates[0]
	s.updates = s.updates[1:]
	return ev
}

func (s *scriptState) Exit() { *s.trace = append(*s.trace, "exit:"+s.name) }

func battleStates(trace *[]string) map[StateID]State {
	return map[StateID]State{
		StateBattleStart:  &scriptState{name: "start", emits: []Event{EventFinished}, enter: EventFinished, trace: trace},
		StateTurnPhase:    &scriptState{name: "turn", emits: []Event{EventFinished, EventBattleEnd}, trace: trace},
		StateCommandPhase: &scriptState{name: "command", emits: []Event{EventFinished, EventBattleEnd}, trace: trace},
		StateActionPhase:  &scriptState{name: "action", emits: []Event{EventFinished, EventBattleEnd}, trace: trace},
		StateBattleEnd:    &scriptState{name: "end", trace: trace},
	}
}

// --- Construction ---

func TestNewMachine_BattleTableValid(t *testing.T) {
	var trace []string
	_, err := NewMachine(MachineConfig{
		Initial: StateBattleStart,
		States:  battleStates(&trace),
		Table:   BattleTransitions(),
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("battle table rejected: %v", err)
	}
}

func TestNewMachine_ValidationErrors(t *testing.T) {
	var trace []string
	tests := []struct {
		name string
		cfg  func() MachineConfig
		want error
	}{
		{
			name: "no initial state",
			cfg: func() MachineConfig {
				states := battleStates(&trace)
				delete(states, StateBattleStart)
				return MachineConfig{Initial: StateBattleStart, States: states, Table: BattleTransitions()}
			},
			want: ErrNoInitialState,
		},
		{
			name: "initial out of range",
			cfg: func() MachineConfig {
				return MachineConfig{Initial: StateNone, States: battleStates(&trace), Table: BattleTransitions()}
			},
			want: ErrNoInitialState,
		},
		{
			name: "missing finished",
			cfg: func() MachineConfig {
				table := BattleTransitions()
				table.next[StateActionPhase][EventFinished] = StateNone
				return MachineConfig{Initial: StateBattleStart, States: battleStates(&trace), Table: table}
			},
			want: ErrMissingFinished,
		},
		{
			name: "missing battle end",
			cfg: func() MachineConfig {
				table := BattleTransitions()
				table.next[StateCommandPhase][EventBattleEnd] = StateNone
				return MachineConfig{Initial: StateBattleStart, States: battleStates(&trace), Table: table}
			},
			want: ErrMissingTransition,
		},
		{
			name: "unregistered target",
			cfg: func() MachineConfig {
				states := battleStates(&trace)
				delete(states, StateBattleEnd)
				return MachineConfig{Initial: StateBattleStart, States: states, Table: BattleTransitions()}
			},
			want: ErrUnknownState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg()
			cfg.Logger = quietLogger()
			if _, err := NewMachine(cfg); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewMachine_UnreachableStateNotChecked(t *testing.T) {
	var trace []string
	table := NewTransitionTable()
	if err := table.Set(StateBattleStart, EventFinished, StateBattleEnd); err != nil {
		t.Fatalf("set: %v", err)
	}
	states := map[StateID]State{
		StateBattleStart: &scriptState{name: "start", emits: []Event{EventFinished}, trace: &trace},
		StateBattleEnd:   &scriptState{name: "end", trace: &trace},
		// Reachable from nowhere; its missing transitions do not matter.
		StateActionPhase: &scriptState{name: "action", emits: []Event{EventFinished}, trace: &trace},
	}
	if _, err := NewMachine(MachineConfig{Initial: StateBattleStart, States: states, Table: table, Logger: quietLogger()}); err != nil {
		t.Fatalf("unreachable state failed validation: %v", err)
	}
}

func TestTransitionTable_SetRejectsBadEndpoints(t *testing.T) {
	table := NewTransitionTable()
	if err := table.Set(StateNone, EventFinished, StateTurnPhase); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if err := table.Set(StateTurnPhase, EventNone, StateBattleEnd); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("NONE transition accepted: %v", err)
	}
}

func TestMustNewMachine_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustNewMachine did not panic on a bad config")
		}
	}()
	MustNewMachine(MachineConfig{Initial: StateBattleStart})
}

// --- Running ---

func TestMachine_StartFinishesSynchronously(t *testing.T) {
	var trace []string
	events := NewEvents()
	var changes []PhaseChange
	events.PhaseChanged.Subscribe(func(c PhaseChange) { changes = append(changes, c) })

	m := MustNewMachine(MachineConfig{
		Initial: StateBattleStart,
		States:  battleStates(&trace),
		Table:   BattleTransitions(),
		Events:  events,
		Logger:  quietLogger(),
	})
	if err := m.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if m.Current() != StateTurnPhase {
		t.Fatalf("current = %s, want turn_phase", m.Current())
	}
	if want := []string{"enter:start", "exit:start", "enter:turn"}; !slices.Equal(trace, want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	if len(changes) != 2 || changes[0].From != StateNone || changes[1].To != StateTurnPhase {
		t.Fatalf("phase changes = %+v", changes)
	}
	if err := m.Activate(); !errors.Is(err, ErrMachineActive) {
		t.Fatalf("second activate err = %v, want ErrMachineActive", err)
	}
}

func TestMachine_UpdateFollowsTable(t *testing.T) {
	var trace []string
	states := battleStates(&trace)
	states[StateTurnPhase].(*scriptState).updates = []Event{EventNone, EventFinished}
	states[StateCommandPhase].(*scriptState).updates = []Event{EventNone, EventNone, EventBattleEnd}
	m := MustNewMachine(MachineConfig{Initial: StateBattleStart, States: states, Table: BattleTransitions(), Logger: quietLogger()})
	m.Activate()

	var path []StateID
	for tick := 1; tick <= 6; tick++ {
		m.Update(tick)
		path = append(path, m.Current())
	}
	want := []StateID{
		StateTurnPhase, StateCommandPhase,
		StateCommandPhase, StateCommandPhase, StateBattleEnd,
		StateBattleEnd,
	}
	if !slices.Equal(path, want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	if !m.Done() {
		t.Fatalf("machine not done in the terminal state")
	}
}

func TestMachine_TriggerInvalidEventIgnored(t *testing.T) {
	var trace []string
	m := MustNewMachine(MachineConfig{Initial: StateBattleStart, States: battleStates(&trace), Table: BattleTransitions(), Logger: quietLogger()})
	if m.Trigger(EventFinished) {
		t.Fatalf("trigger on an inactive machine succeeded")
	}
	m.Activate()
	m.Trigger(EventBattleEnd)
	if m.Current() != StateBattleEnd {
		t.Fatalf("current = %s, want battle_end", m.Current())
	}
	if m.Trigger(EventFinished) {
		t.Fatalf("transition out of the terminal state succeeded")
	}
	if m.Update(99) != EventNone {
		t.Fatalf("terminal state produced an event")
	}
}

func TestMachine_ReactivateAfterDone(t *testing.T) {
	var trace []string
	m := MustNewMachine(MachineConfig{Initial: StateBattleStart, States: battleStates(&trace), Table: BattleTransitions(), Logger: quietLogger()})
	m.Activate()
	m.Trigger(EventBattleEnd)
	if err := m.Activate(); err != nil {
		t.Fatalf("reactivate after done: %v", err)
	}
	if m.Current() != StateTurnPhase {
		t.Fatalf("current = %s after reactivation", m.Current())
	}
}
