package battle

// The five battle phases. Each holds the orchestrator that owns it and
// reaches the context, turn engine and command controller through it.

type battleStartPhase struct{ o *Orchestrator }

func (s *battleStartPhase) Emits() []Event { return []Event{EventFinished} }

func (s *battleStartPhase) Enter() Event {
	s.o.createContext()
	if !s.o.turns.StartCycle() {
		s.o.logger.Warn("battle start: empty turn order", "battle", s.o.battleID)
	}
	return EventFinished
}

func (s *battleStartPhase) Update(int) Event { return EventNone }
func (s *battleStartPhase) Exit()            {}

type turnPhase struct {
	o       *Orchestrator
	decided bool
}

func (s *turnPhase) Emits() []Event { return []Event{EventFinished, EventBattleEnd} }

func (s *turnPhase) Enter() Event {
	s.o.interrupted = false
	s.o.awaitingCommand = false
	if s.decided = s.o.battleOver(); s.decided {
		return EventNone
	}
	s.o.awaitingCommand = s.o.turns.BeginTurn()
	return EventNone
}

func (s *turnPhase) Update(int) Event {
	if s.o.battleOver() {
		return EventBattleEnd
	}
	return EventFinished
}

func (s *turnPhase) Exit() {}

type commandPhase struct {
	o         *Orchestrator
	turnEnded bool
	detach    []func()
}

func (s *commandPhase) Emits() []Event { return []Event{EventFinished, EventBattleEnd} }

func (s *commandPhase) Enter() Event {
	s.turnEnded = false
	if s.o.battleOver() {
		return EventNone
	}
	if !s.o.awaitingCommand || s.o.interrupted {
		s.turnEnded = true
		return EventNone
	}
	ev := s.o.events
	s.detach = append(s.detach,
		ev.TurnEnding.Subscribe(func(Command) { s.turnEnded = true }),
		// An actor leaving the roster mid-selection forfeits its turn.
		ev.CombatantUnregistered.Subscribe(func(cb Combatant) {
			if cb != nil && cb == s.o.commands.Actor() {
				s.turnEnded = true
			}
		}),
	)
	if !s.o.commands.Begin(s.o.ctx.ActiveActor()) {
		s.turnEnded = true
	}
	return EventNone
}

func (s *commandPhase) Update(int) Event {
	if s.o.battleOver() {
		return EventBattleEnd
	}
	if s.turnEnded || s.o.interrupted {
		return EventFinished
	}
	return EventNone
}

func (s *commandPhase) Exit() {
	for _, cancel := range s.detach {
		cancel()
	}
	s.detach = nil
	s.o.commands.End()
}

type actionPhase struct{ o *Orchestrator }

func (s *actionPhase) Emits() []Event { return []Event{EventFinished, EventBattleEnd} }

func (s *actionPhase) Enter() Event {
	if s.o.battleOver() {
		return EventNone
	}
	if cmd := s.o.ctx.CommandToResolve(); cmd != nil {
		s.o.ctx.toResolve = nil
		if !s.o.ctx.history.Execute(s.o.ctx, cmd) {
			s.o.logger.Warn("action phase: queued command could not resolve", "command", cmd.ID())
		}
	}
	s.o.turns.CompleteCurrentTurn()
	return EventNone
}

func (s *actionPhase) Update(int) Event {
	if s.o.battleOver() {
		return EventBattleEnd
	}
	return EventFinished
}

func (s *actionPhase) Exit() {}

type battleEndPhase struct{ o *Orchestrator }

func (s *battleEndPhase) Emits() []Event   { return nil }
func (s *battleEndPhase) Enter() Event     { s.o.finish(); return EventNone }
func (s *battleEndPhase) Update(int) Event { return EventNone }
func (s *battleEndPhase) Exit()            {}
