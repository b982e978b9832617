package battle

import (
	"log/slog"

	"github.com/google/uuid"
)

// Per-side roster capacity.
const (
	MaxPlayerCombatants = 2
	MaxEnemyCombatants  = 3
)

//go:generate go tool mockgen -destination=./mocks/flee_mock.go -package=mocks . FleeHandler

// FleeHandler is told when an actor flees. The orchestrator implements it.
type FleeHandler interface {
	HandleFlee(actor Combatant)
}

// ContextConfig wires a Context to its collaborators. Nil Events or Logger
// get defaults; a zero ID gets a fresh one.
type ContextConfig struct {
	ID       uuid.UUID
	Resolver ActionResolver
	Flee     FleeHandler
	Events   *Events
	Logger   *slog.Logger
}

// Context is the shared state of one battle: roster, per-turn selection,
// menu stack and command history. Commands mutate it through History; the
// read accessors are for everyone else.
type Context struct {
	id uuid.UUID

	combatants []Combatant
	players    []Combatant
	enemies    []Combatant

	activeActor    Combatant
	selectedTarget Combatant
	pending        Command
	toResolve      Command

	menu     MenuStack
	history  *History
	resolver ActionResolver
	flee     FleeHandler
	events   *Events
	logger   *slog.Logger

	suppress bool
	disposed bool
}

func NewContext(cfg ContextConfig) *Context {
	id := cfg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	events := cfg.Events
	if events == nil {
		events = NewEvents()
	}
	logger := loggerOrDefault(cfg.Logger).With("battle", id.String())
	c := &Context{
		id:       id,
		history:  NewHistory(logger),
		resolver: cfg.Resolver,
		flee:     cfg.Flee,
		events:   events,
		logger:   logger,
	}
	c.menu.Reset(MenuAction)
	return c
}

// --- Read accessors ---

func (c *Context) ID() uuid.UUID             { return c.id }
func (c *Context) Events() *Events           { return c.events }
func (c *Context) Logger() *slog.Logger      { return c.logger }
func (c *Context) Resolver() ActionResolver  { return c.resolver }
func (c *Context) ActiveActor() Combatant    { return c.activeActor }
func (c *Context) SelectedTarget() Combatant { return c.selectedTarget }
func (c *Context) PendingAction() Command    { return c.pending }
func (c *Context) CommandToResolve() Command { return c.toResolve }
func (c *Context) MenuState() MenuState      { return c.menu.Current() }
func (c *Context) MenuDepth() int            { return c.menu.Depth() }
func (c *Context) MenuStates() []MenuState   { return c.menu.States() }
func (c *Context) CanPopMenu() bool          { return c.menu.CanPop() }
func (c *Context) HistoryLen() int           { return c.history.Len() }
func (c *Context) Disposed() bool            { return c.disposed }

// Combatants returns the roster in registration order.
func (c *Context) Combatants() []Combatant { return cloneCombatants(c.combatants) }
func (c *Context) Players() []Combatant    { return cloneCombatants(c.players) }
func (c *Context) Enemies() []Combatant    { return cloneCombatants(c.enemies) }

func (c *Context) Contains(cb Combatant) bool {
	return containsCombatant(c.combatants, cb)
}

func (c *Context) HasLivingPlayers() bool { return anyAlive(c.players) }
func (c *Context) HasLivingEnemies() bool { return anyAlive(c.enemies) }

// EvaluateOutcome inspects side liveness right now.
func (c *Context) EvaluateOutcome() Outcome {
	return DetermineOutcome(c.HasLivingPlayers(), c.HasLivingEnemies())
}

// LivingOpponents returns the living members of the side cb fights against.
func (c *Context) LivingOpponents(cb Combatant) []Combatant {
	if cb == nil {
		return nil
	}
	switch cb.Side() {
	case SidePlayer:
		return living(c.enemies)
	case SideEnemy:
		return living(c.players)
	default:
		return nil
	}
}

// LivingAllies returns the living members of cb's side, excluding cb.
func (c *Context) LivingAllies(cb Combatant) []Combatant {
	if cb == nil {
		return nil
	}
	var pool []Combatant
	switch cb.Side() {
	case SidePlayer:
		pool = c.players
	case SideEnemy:
		pool = c.enemies
	}
	out := make([]Combatant, 0, len(pool))
	for _, x := range living(pool) {
		if x != cb {
			out = append(out, x)
		}
	}
	return out
}

// --- Commands ---

// ExecuteCommand runs cmd through the history.
func (c *Context) ExecuteCommand(cmd Command) bool {
	return c.history.Execute(c, cmd)
}

// UndoLastCommand reverts the newest undoable command.
func (c *Context) UndoLastCommand() bool {
	return c.history.Undo(c)
}

// SelectTarget records the target for the pending or next strike. Nil clears.
func (c *Context) SelectTarget(target Combatant) {
	c.selectedTarget = target
}

// --- Roster ---

// RegisterCombatant adds cb and publishes the change. Re-registering a known
// combatant only re-files it under its current side and returns false.
func (c *Context) RegisterCombatant(cb Combatant) bool {
	if !c.register(cb) {
		return false
	}
	c.notifyRegistered(cb)
	c.notifyRosterChanged()
	return true
}

// UnregisterCombatant removes cb from every list and publishes the change.
func (c *Context) UnregisterCombatant(cb Combatant) bool {
	if !c.unregister(cb) {
		return false
	}
	c.notifyUnregistered(cb)
	c.notifyRosterChanged()
	return true
}

// SetCombatants replaces the roster wholesale. Players and enemies are forced
// onto their sides. Only the diff against the previous roster is announced,
// followed by a single roster change, then the turn state is reset.
func (c *Context) SetCombatants(players, enemies []Combatant) {
	previous := cloneCombatants(c.combatants)

	c.suppress = true
	c.combatants = c.combatants[:0]
	c.players = c.players[:0]
	c.enemies = c.enemies[:0]
	for _, cb := range players {
		if cb == nil {
			continue
		}
		cb.SetSide(SidePlayer)
		c.register(cb)
	}
	for _, cb := range enemies {
		if cb == nil {
			continue
		}
		cb.SetSide(SideEnemy)
		c.register(cb)
	}
	c.suppress = false

	for _, cb := range previous {
		if !containsCombatant(c.combatants, cb) {
			c.notifyUnregistered(cb)
		}
	}
	for _, cb := range c.combatants {
		if !containsCombatant(previous, cb) {
			c.notifyRegistered(cb)
		}
	}
	c.notifyRosterChanged()
	c.ResetTurnState()
}

// ResetTurnState clears everything that lives for a single turn and returns
// the menu to its root.
func (c *Context) ResetTurnState() {
	c.activeActor = nil
	c.selectedTarget = nil
	c.pending = nil
	c.toResolve = nil
	c.history.Clear()
	c.resetMenu(MenuAction)
}

func (c *Context) register(cb Combatant) bool {
	if cb == nil {
		return false
	}
	if containsCombatant(c.combatants, cb) {
		c.categorize(cb, true)
		return false
	}
	if c.sideAtCapacity(cb.Side()) {
		c.logger.Warn("roster: side at capacity", "combatant", cb.Name(), "side", cb.Side())
		return false
	}
	c.combatants = append(c.combatants, cb)
	c.categorize(cb, false)
	return true
}

func (c *Context) unregister(cb Combatant) bool {
	if cb == nil {
		return false
	}
	var removed bool
	c.combatants, removed = removeCombatant(c.combatants, cb)
	c.players, _ = removeCombatant(c.players, cb)
	c.enemies, _ = removeCombatant(c.enemies, cb)
	if removed && c.selectedTarget == cb {
		c.selectedTarget = nil
	}
	if removed && c.activeActor == cb {
		c.activeActor = nil
	}
	return removed
}

// categorize files cb under the list for its current side. Neutral
// combatants live only in the main roster.
func (c *Context) categorize(cb Combatant, enforceCapacity bool) {
	switch cb.Side() {
	case SidePlayer:
		if !containsCombatant(c.players, cb) {
			if enforceCapacity && c.sideAtCapacity(SidePlayer) {
				c.refuseSideChange(cb)
				return
			}
			c.players = append(c.players, cb)
		}
		c.enemies, _ = removeCombatant(c.enemies, cb)
	case SideEnemy:
		if !containsCombatant(c.enemies, cb) {
			if enforceCapacity && c.sideAtCapacity(SideEnemy) {
				c.refuseSideChange(cb)
				return
			}
			c.enemies = append(c.enemies, cb)
		}
		c.players, _ = removeCombatant(c.players, cb)
	default:
		c.players, _ = removeCombatant(c.players, cb)
		c.enemies, _ = removeCombatant(c.enemies, cb)
	}
}

// refuseSideChange logs a side switch blocked by capacity. cb stays filed
// under its previous side.
func (c *Context) refuseSideChange(cb Combatant) {
	kept := SideNeutral
	switch {
	case containsCombatant(c.players, cb):
		kept = SidePlayer
	case containsCombatant(c.enemies, cb):
		kept = SideEnemy
	}
	c.logger.Warn("roster: side change refused, side at capacity",
		"combatant", cb.Name(), "side", cb.Side(), "kept", kept)
}

func (c *Context) sideAtCapacity(side Side) bool {
	switch side {
	case SidePlayer:
		return len(c.players) >= MaxPlayerCombatants
	case SideEnemy:
		return len(c.enemies) >= MaxEnemyCombatants
	default:
		return false
	}
}

// --- Menu ---

func (c *Context) resetMenu(initial MenuState) {
	c.menu.Reset(initial)
	c.notifyMenuChanged()
}

func (c *Context) pushMenuState(s MenuState) bool {
	if !c.menu.Push(s) {
		return false
	}
	c.notifyMenuChanged()
	return true
}

func (c *Context) popMenuState() bool {
	if !c.menu.Pop() {
		return false
	}
	c.notifyMenuChanged()
	return true
}

// --- Notifications ---

func (c *Context) notifyRegistered(cb Combatant) {
	if c.suppress {
		return
	}
	c.events.CombatantRegistered.Emit(cb)
}

func (c *Context) notifyUnregistered(cb Combatant) {
	if c.suppress {
		return
	}
	c.events.CombatantUnregistered.Emit(cb)
}

func (c *Context) notifyRosterChanged() {
	if c.suppress {
		return
	}
	c.events.RosterChanged.Emit(cloneCombatants(c.combatants))
}

func (c *Context) notifyMenuChanged() {
	if c.suppress {
		return
	}
	c.events.MenuStateChanged.Emit(c.menu.Current())
}

// turnView builds what an autonomous actor sees.
func (c *Context) turnView(actor Combatant) TurnView {
	return TurnView{
		Actor:     actor,
		Allies:    c.LivingAllies(actor),
		Opponents: c.LivingOpponents(actor),
		Resolver:  c.resolver,
	}
}

// dispose tears the context down at battle end. No events are published.
func (c *Context) dispose() {
	c.suppress = true
	c.activeActor = nil
	c.selectedTarget = nil
	c.pending = nil
	c.toResolve = nil
	c.history.Clear()
	c.menu.Reset(MenuNone)
	c.combatants, c.players, c.enemies = nil, nil, nil
	c.flee = nil
	c.disposed = true
}

func cloneCombatants(list []Combatant) []Combatant {
	out := make([]Combatant, len(list))
	copy(out, list)
	return out
}

func logFor(ctx *Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	return ctx.logger
}
