package battle

import (
	"log/slog"
	"sort"
)

// TurnOrder orders living combatants by speed and walks through them one
// turn at a time. It rebuilds itself whenever the roster changes.
type TurnOrder struct {
	ctx    *Context
	logger *slog.Logger
	detach func()

	order   []Combatant
	index   int
	active  bool
	current Combatant
	turns   int

	// Order and index the current actor holds its turn at. They survive
	// the actor leaving the roster so its successor can still be found.
	turnOrder []Combatant
	turnIndex int
}

func NewTurnOrder(logger *slog.Logger) *TurnOrder {
	return &TurnOrder{logger: loggerOrDefault(logger)}
}

// Attach binds the engine to ctx and follows its roster changes.
func (t *TurnOrder) Attach(ctx *Context) {
	t.Detach()
	if ctx == nil {
		return
	}
	t.ctx = ctx
	t.detach = ctx.events.RosterChanged.Subscribe(func([]Combatant) { t.handleRosterChanged() })
	t.order = t.buildOrder()
	t.index = 0
	t.active = false
	t.current = nil
	t.turnOrder = nil
	t.turns = 0
}

// Detach drops the roster subscription and forgets the context.
func (t *TurnOrder) Detach() {
	if t.detach != nil {
		t.detach()
		t.detach = nil
	}
	t.ctx = nil
	t.order = nil
	t.index = 0
	t.active = false
	t.current = nil
	t.turnOrder = nil
}

func (t *TurnOrder) Active() bool       { return t.active }
func (t *TurnOrder) Current() Combatant { return t.current }
func (t *TurnOrder) Index() int         { return t.index }
func (t *TurnOrder) TurnsTaken() int    { return t.turns }
func (t *TurnOrder) Order() []Combatant { return cloneCombatants(t.order) }

// StartCycle rebuilds the order from the top. It reports false when no
// living combatant remains.
func (t *TurnOrder) StartCycle() bool {
	if t.ctx == nil {
		t.logger.Warn("turns: start cycle without a context")
		return false
	}
	t.order = t.buildOrder()
	t.index = 0
	t.current = nil
	t.turnOrder = nil
	t.active = len(t.order) > 0
	if !t.active {
		t.logger.Info("turns: no living combatants")
	}
	return t.active
}

// BeginTurn makes the next living combatant the active actor. It returns
// true when that actor needs a command phase. Autonomous actors take their
// turn inside this call and false is returned.
func (t *TurnOrder) BeginTurn() bool {
	if t.ctx == nil {
		t.logger.Warn("turns: begin turn without a context")
		return false
	}
	if !t.active && !t.StartCycle() {
		return false
	}

	var actor Combatant
	for range len(t.order) {
		if t.index >= len(t.order) {
			t.index = 0
		}
		if cand := t.order[t.index]; cand != nil && cand.IsAlive() {
			actor = cand
			break
		}
		t.index = (t.index + 1) % len(t.order)
	}
	if actor == nil {
		t.active = false
		t.current = nil
		t.logger.Info("turns: nobody left to act")
		return false
	}

	t.ctx.ResetTurnState()
	t.ctx.activeActor = actor
	t.current = actor
	t.turnOrder, t.turnIndex = t.order, t.index
	t.turns++
	t.logger.Debug("turns: begin", "actor", actor.Name(), "turn", t.turns)
	t.ctx.events.TurnStarted.Emit(actor)

	if _, ok := actor.(CommandSource); ok {
		return true
	}
	actor.TakeTurn(t.ctx.turnView(actor))
	return false
}

// CompleteCurrentTurn ends the active actor's turn and advances to the first
// living successor of that actor in the rebuilt order. The order wraps.
func (t *TurnOrder) CompleteCurrentTurn() {
	prev := t.current
	if prev != nil && t.ctx != nil {
		t.ctx.events.TurnEnded.Emit(prev)
	}
	if t.ctx != nil {
		t.ctx.ResetTurnState()
	}
	t.current = nil

	oldOrder, oldIndex := t.turnOrder, t.turnIndex
	t.turnOrder = nil
	t.order = t.buildOrder()
	if len(t.order) == 0 {
		t.active = false
		t.index = 0
		return
	}
	if prev == nil || len(oldOrder) == 0 {
		// Cycle was restarted mid-turn; keep the fresh position.
		t.index = min(t.index, len(t.order)-1)
		return
	}
	t.index = successorIndex(oldOrder, oldIndex, t.order)
}

// Abort stops the cycle and clears the turn state.
func (t *TurnOrder) Abort() {
	if t.ctx != nil {
		t.ctx.ResetTurnState()
	}
	t.order = nil
	t.index = 0
	t.active = false
	t.current = nil
	t.turnOrder = nil
}

// handleRosterChanged rebuilds the order. While a turn is running the
// current actor keeps its place; if it left the roster the turn's order is
// kept for CompleteCurrentTurn. Between turns the combatant due next, or
// the first one after it still present, stays due.
func (t *TurnOrder) handleRosterChanged() {
	oldOrder, oldIndex := t.order, t.index
	t.order = t.buildOrder()
	if len(t.order) == 0 {
		t.index = 0
		t.active = false
		return
	}
	if t.current != nil {
		if i := indexOfCombatant(t.order, t.current); i >= 0 {
			t.index = i
			t.turnOrder, t.turnIndex = t.order, i
			return
		}
		t.index = 0
		return
	}
	if len(oldOrder) == 0 {
		t.index = 0
		return
	}
	t.index = firstPresentIndex(oldOrder, oldIndex, t.order)
}

// buildOrder returns living combatants by descending speed. Equal speeds
// keep registration order.
func (t *TurnOrder) buildOrder() []Combatant {
	if t.ctx == nil {
		return nil
	}
	order := living(t.ctx.combatants)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Speed() > order[j].Speed()
	})
	return order
}

// successorIndex finds, in next, the first combatant after old[oldIndex]
// (wrapping) that is still present.
func successorIndex(old []Combatant, oldIndex int, next []Combatant) int {
	return firstPresentIndex(old, oldIndex+1, next)
}

// firstPresentIndex walks old from position from (wrapping) and returns the
// index in next of the first combatant found there, or 0.
func firstPresentIndex(old []Combatant, from int, next []Combatant) int {
	n := len(old)
	for k := range n {
		if i := indexOfCombatant(next, old[(from+k)%n]); i >= 0 {
			return i
		}
	}
	return 0
}
