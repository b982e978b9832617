package battle

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Config wires an Orchestrator. Every field is optional.
type Config struct {
	// Resolver applies damage. Defaults to a Resolver publishing on Events.
	Resolver ActionResolver
	// Events is the hub all components publish on. Defaults to a new hub.
	Events *Events
	Logger *slog.Logger
}

// Orchestrator owns one battle at a time: it builds the context, runs the
// phase machine once per Tick and publishes the result at the end.
type Orchestrator struct {
	resolver ActionResolver
	events   *Events
	logger   *slog.Logger

	machine  *Machine
	turns    *TurnOrder
	commands *CommandPhase
	ctx      *Context

	players []Combatant
	enemies []Combatant

	battleID        uuid.UUID
	started         bool
	finished        bool
	tick            int
	fled            bool
	fledBy          Combatant
	interrupted     bool
	awaitingCommand bool
	result          Result
}

func New(cfg Config) (*Orchestrator, error) {
	o := &Orchestrator{
		events: cfg.Events,
		logger: loggerOrDefault(cfg.Logger),
	}
	if o.events == nil {
		o.events = NewEvents()
	}
	o.resolver = cfg.Resolver
	if o.resolver == nil {
		o.resolver = NewResolver(o.events, o.logger)
	}
	o.turns = NewTurnOrder(o.logger)
	o.commands = NewCommandPhase(o.logger)

	m, err := NewMachine(MachineConfig{
		Initial: StateBattleStart,
		States: map[StateID]State{
			StateBattleStart:  &battleStartPhase{o: o},
			StateTurnPhase:    &turnPhase{o: o},
			StateCommandPhase: &commandPhase{o: o},
			StateActionPhase:  &actionPhase{o: o},
			StateBattleEnd:    &battleEndPhase{o: o},
		},
		Table:  BattleTransitions(),
		Events: o.events,
		Logger: o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build battle machine: %w", err)
	}
	o.machine = m
	return o, nil
}

// Start opens a battle between players and enemies. BattleStart finishes
// synchronously, so the first turn has begun when Start returns.
func (o *Orchestrator) Start(players, enemies []Combatant) error {
	if o.started && !o.finished {
		return ErrBattleActive
	}
	o.players = cloneCombatants(players)
	o.enemies = cloneCombatants(enemies)
	o.battleID = uuid.New()
	o.started = true
	o.finished = false
	o.tick = 0
	o.fled = false
	o.fledBy = nil
	o.interrupted = false
	o.awaitingCommand = false
	o.result = Result{}
	o.logger.Info("battle: start", "battle", o.battleID, "players", len(players), "enemies", len(enemies))
	return o.machine.Activate()
}

// Tick advances the battle by one external tick. Ticking a finished battle
// is a no-op.
func (o *Orchestrator) Tick() error {
	if !o.started {
		return ErrNoBattle
	}
	if o.finished {
		return nil
	}
	o.tick++
	o.machine.Update(o.tick)
	return nil
}

// HandleFlee ends the battle without a decision. It runs inside the Flee
// command, so the battle stays Running in its current phase until the next
// Tick, whose Update moves to BattleEnd.
func (o *Orchestrator) HandleFlee(actor Combatant) {
	if o.ctx == nil || o.finished {
		o.logger.Warn("battle: flee outside a battle", "actor", combatantName(actor))
		return
	}
	o.logger.Info("battle: fled", "battle", o.battleID, "actor", combatantName(actor))
	o.fled = true
	o.fledBy = actor
	o.turns.Abort()
}

// LoadCombatants replaces the roster. Before Start it only stages the next
// roster. During a battle the current turn is abandoned and the cycle starts
// over with the new roster.
func (o *Orchestrator) LoadCombatants(players, enemies []Combatant) {
	o.players = cloneCombatants(players)
	o.enemies = cloneCombatants(enemies)
	if o.ctx == nil || o.finished {
		return
	}
	o.commands.End()
	o.ctx.SetCombatants(o.players, o.enemies)
	o.turns.StartCycle()
	o.interrupted = true
	o.logger.Info("battle: roster replaced", "battle", o.battleID, "combatants", len(o.ctx.combatants))
}

// ExecuteCommand forwards to the command phase.
func (o *Orchestrator) ExecuteCommand(cmd Command, target Combatant) bool {
	return o.commands.Execute(cmd, target)
}

// UndoLastCommand forwards to the command phase.
func (o *Orchestrator) UndoLastCommand() bool {
	return o.commands.Undo()
}

func (o *Orchestrator) Events() *Events          { return o.events }
func (o *Orchestrator) Context() *Context        { return o.ctx }
func (o *Orchestrator) Turns() *TurnOrder        { return o.turns }
func (o *Orchestrator) Commands() *CommandPhase  { return o.commands }
func (o *Orchestrator) Phase() StateID           { return o.machine.Current() }
func (o *Orchestrator) BattleID() uuid.UUID      { return o.battleID }
func (o *Orchestrator) Ticks() int               { return o.tick }
func (o *Orchestrator) Running() bool            { return o.started && !o.finished }
func (o *Orchestrator) Done() bool               { return o.finished }
func (o *Orchestrator) Resolver() ActionResolver { return o.resolver }

// Result returns the final record once the battle has ended.
func (o *Orchestrator) Result() (Result, bool) {
	return o.result, o.finished
}

func (o *Orchestrator) battleOver() bool {
	if o.fled {
		return true
	}
	if o.ctx == nil {
		return true
	}
	return o.ctx.EvaluateOutcome().Decided()
}

func (o *Orchestrator) createContext() {
	if o.ctx != nil {
		o.teardown()
	}
	o.ctx = NewContext(ContextConfig{
		ID:       o.battleID,
		Resolver: o.resolver,
		Flee:     o,
		Events:   o.events,
		Logger:   o.logger,
	})
	o.turns.Attach(o.ctx)
	o.commands.Attach(o.ctx)
	o.ctx.SetCombatants(o.players, o.enemies)
}

func (o *Orchestrator) teardown() {
	o.commands.Detach()
	o.turns.Detach()
	if o.ctx != nil {
		o.ctx.dispose()
		o.ctx = nil
	}
}

func (o *Orchestrator) finish() {
	r := Result{
		BattleID: o.battleID,
		Outcome:  OutcomeOngoing,
		Fled:     o.fled,
		Turns:    o.turns.TurnsTaken(),
		Ticks:    o.tick,
	}
	if o.fledBy != nil {
		r.FledBy = o.fledBy.Name()
	}
	if o.ctx != nil {
		if !o.fled {
			r.Outcome = o.ctx.EvaluateOutcome()
		}
		r.PlayerTotal = len(o.ctx.players)
		r.PlayerSurvivors = countAlive(o.ctx.players)
		r.EnemyTotal = len(o.ctx.enemies)
		r.EnemySurvivors = countAlive(o.ctx.enemies)
	}
	r.Description = describeResult(r)

	o.teardown()
	o.result = r
	o.finished = true
	o.logger.Info("battle: end",
		"battle", o.battleID,
		"outcome", r.Outcome,
		"fled", r.Fled,
		"turns", r.Turns,
		"ticks", r.Ticks,
	)
	o.events.OutcomeDecided.Emit(r)
}
