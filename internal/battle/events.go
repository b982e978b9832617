package battle

// Signal is a synchronous observer list. Emit runs listeners in subscription
// order inside the emitting call.
type Signal[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a func that removes it again. The
// returned func is safe to call more than once.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	return func() { s.unsubscribe(id) }
}

func (s *Signal[T]) unsubscribe(id int) {
	for i, l := range s.listeners {
		if l.id == id {
			// Copy so an in-flight Emit keeps iterating its own snapshot.
			next := make([]listener[T], 0, len(s.listeners)-1)
			next = append(next, s.listeners[:i]...)
			next = append(next, s.listeners[i+1:]...)
			s.listeners = next
			return
		}
	}
}

func (s *Signal[T]) subscribed(id int) bool {
	for _, l := range s.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Emit calls every listener. A listener removed by an earlier listener in the
// same Emit is skipped.
func (s *Signal[T]) Emit(v T) {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.listeners
	for _, l := range snapshot {
		if !s.subscribed(l.id) {
			continue
		}
		l.fn(v)
	}
}

// Len reports how many listeners are registered.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Reset drops every listener.
func (s *Signal[T]) Reset() {
	s.listeners = nil
}

// PhaseChange describes one state machine transition.
type PhaseChange struct {
	From StateID
	To   StateID
	Tick int
}

// CommandOffer is what the command phase publishes to the presentation layer.
// An offer with no commands means the menu is hidden.
type CommandOffer struct {
	Actor    Combatant
	Menu     MenuState
	Commands []Command
}

// Events is the battle-wide observer hub. The Context, TurnOrder,
// CommandPhase, Resolver, Machine and Orchestrator all emit into the same hub
// so a presentation layer can subscribe once for the lifetime of an
// orchestrator.
type Events struct {
	RosterChanged         Signal[[]Combatant]
	CombatantRegistered   Signal[Combatant]
	CombatantUnregistered Signal[Combatant]
	MenuStateChanged      Signal[MenuState]

	TurnStarted Signal[Combatant]
	TurnEnded   Signal[Combatant]

	CommandsAvailable Signal[CommandOffer]
	MenuHidden        Signal[Combatant]
	TurnEnding        Signal[Command]

	ActionResolved Signal[Resolution]
	PhaseChanged   Signal[PhaseChange]
	OutcomeDecided Signal[Result]
}

// NewEvents returns an empty hub.
func NewEvents() *Events {
	return &Events{}
}
