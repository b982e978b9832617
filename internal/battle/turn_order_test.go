package battle

import (
	"slices"
	"testing"
)

func TestTurnOrder_SpeedDescending(t *testing.T) {
	p1, p2 := newCommander("P1", 10), newCommander("P2", 5)
	e1 := newFake("E1", 7)
	_, turns, _, _ := newTestContext([]Combatant{p1, p2}, []Combatant{e1})

	if !turns.StartCycle() {
		t.Fatalf("cycle did not start")
	}
	if got := names(turns.Order()); !slices.Equal(got, []string{"P1", "E1", "P2"}) {
		t.Fatalf("order = %v, want [P1 E1 P2]", got)
	}
}

func TestTurnOrder_TiesKeepRegistrationOrder(t *testing.T) {
	a, b := newFake("A", 5), newFake("B", 5)
	c := newFake("C", 5)
	_, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()
	first := names(turns.Order())
	if !slices.Equal(first, []string{"A", "B", "C"}) {
		t.Fatalf("order = %v, want [A B C]", first)
	}
	for range 5 {
		turns.StartCycle()
		if got := names(turns.Order()); !slices.Equal(got, first) {
			t.Fatalf("rebuilt order %v differs from %v", got, first)
		}
	}
}

func TestTurnOrder_EmptyRosterDoesNotStart(t *testing.T) {
	_, turns, _, _ := newTestContext(nil, nil)
	if turns.StartCycle() {
		t.Fatalf("cycle started with nobody in it")
	}
	if turns.BeginTurn() {
		t.Fatalf("begin turn succeeded with nobody in it")
	}
	if turns.Active() {
		t.Fatalf("cycle active with empty roster")
	}
}

func TestTurnOrder_AutonomousActorTakesTurn(t *testing.T) {
	p := newCommander("P1", 1)
	e := newFake("E1", 9)
	strikeOpponent(e)
	ctx, turns, _, _ := newTestContext([]Combatant{p}, []Combatant{e})

	var started []string
	ctx.Events().TurnStarted.Subscribe(func(c Combatant) { started = append(started, c.Name()) })

	turns.StartCycle()
	if turns.BeginTurn() {
		t.Fatalf("autonomous actor asked for a command phase")
	}
	if e.turns != 1 {
		t.Fatalf("enemy took %d turns, want 1", e.turns)
	}
	if p.Health() >= 20 {
		t.Fatalf("autonomous strike did not land, player health %d", p.Health())
	}
	turns.CompleteCurrentTurn()

	if !turns.BeginTurn() {
		t.Fatalf("commander did not ask for a command phase")
	}
	if ctx.ActiveActor() != p {
		t.Fatalf("active actor = %s, want P1", combatantName(ctx.ActiveActor()))
	}
	if !slices.Equal(started, []string{"E1", "P1"}) {
		t.Fatalf("turn starts = %v, want [E1 P1]", started)
	}
}

func TestTurnOrder_WrapsAround(t *testing.T) {
	a, b := newFake("A", 3), newFake("B", 2)
	_, turns, _, _ := newTestContext([]Combatant{a}, []Combatant{b})
	turns.StartCycle()

	var seen []string
	for range 5 {
		turns.BeginTurn()
		seen = append(seen, turns.Current().Name())
		turns.CompleteCurrentTurn()
	}
	if want := []string{"A", "B", "A", "B", "A"}; !slices.Equal(seen, want) {
		t.Fatalf("turns = %v, want %v", seen, want)
	}
	if turns.TurnsTaken() != 5 {
		t.Fatalf("turns taken = %d, want 5", turns.TurnsTaken())
	}
}

func TestTurnOrder_SkipsCombatantKilledMidCycle(t *testing.T) {
	a, b := newFake("A", 9), newFake("B", 5)
	c := newFake("C", 1)
	// A kills B on its turn.
	a.onTurn = func(TurnView) { b.kill() }
	_, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()

	turns.BeginTurn()
	turns.CompleteCurrentTurn()
	turns.BeginTurn()
	if turns.Current() != c {
		t.Fatalf("after A killed B the next actor = %s, want C", combatantName(turns.Current()))
	}
	if got := names(turns.Order()); !slices.Equal(got, []string{"A", "C"}) {
		t.Fatalf("order = %v, want [A C]", got)
	}
}

func TestTurnOrder_BeginTurnSkipsDeadEntries(t *testing.T) {
	a, b := newFake("A", 9), newFake("B", 5)
	c := newFake("C", 1)
	_, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()
	a.kill()
	b.kill()

	turns.BeginTurn()
	if turns.Current() != c {
		t.Fatalf("current = %s, want C", combatantName(turns.Current()))
	}

	c.kill()
	turns.CompleteCurrentTurn()
	if turns.BeginTurn() || turns.Active() {
		t.Fatalf("turn began with everyone dead")
	}
}

func TestTurnOrder_RosterChangeKeepsCurrent(t *testing.T) {
	a, b := newFake("A", 5), newFake("B", 3)
	ctx, turns, _, _ := newTestContext([]Combatant{a}, []Combatant{b})
	turns.StartCycle()
	turns.BeginTurn()
	turns.CompleteCurrentTurn()
	turns.BeginTurn()
	if turns.Current() != b {
		t.Fatalf("setup: current = %s, want B", combatantName(turns.Current()))
	}

	fast := newFake("Fast", 20)
	fast.SetSide(SideEnemy)
	ctx.RegisterCombatant(fast)
	if turns.Order()[turns.Index()] != b {
		t.Fatalf("index moved off the current actor after a roster change")
	}
	turns.CompleteCurrentTurn()
	turns.BeginTurn()
	if turns.Current() != fast {
		t.Fatalf("after B the next actor = %s, want Fast", combatantName(turns.Current()))
	}
}

func TestTurnOrder_Abort(t *testing.T) {
	p := newCommander("P1", 5)
	ctx, turns, _, _ := newTestContext([]Combatant{p}, []Combatant{newFake("E1", 1)})
	turns.StartCycle()
	turns.BeginTurn()
	turns.Abort()
	if turns.Active() || len(turns.Order()) != 0 || turns.Current() != nil {
		t.Fatalf("abort left the cycle running")
	}
	if ctx.ActiveActor() != nil {
		t.Fatalf("abort left an active actor")
	}
}

func TestSuccessorIndex(t *testing.T) {
	a, b, c := newFake("A", 3), newFake("B", 2), newFake("C", 1)
	old := []Combatant{a, b, c}
	tests := []struct {
		oldIndex int
		next     []Combatant
		want     int
	}{
		{0, []Combatant{a, b, c}, 1},
		{2, []Combatant{a, b, c}, 0},
		{0, []Combatant{a, c}, 1},
		{1, []Combatant{b}, 0},
	}
	for _, tt := range tests {
		if got := successorIndex(old, tt.oldIndex, tt.next); got != tt.want {
			t.Fatalf("successorIndex(%d, %v) = %d, want %d", tt.oldIndex, names(tt.next), got, tt.want)
		}
	}
}

func TestTurnOrder_ActingHeadRemovedPassesToSuccessor(t *testing.T) {
	a, b := newFake("A", 9), newFake("B", 5)
	c := newFake("C", 1)
	ctx, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()
	turns.BeginTurn()
	if turns.Current() != a {
		t.Fatalf("setup: current = %s, want A", combatantName(turns.Current()))
	}

	ctx.UnregisterCombatant(a)
	if ctx.ActiveActor() != nil {
		t.Fatalf("removed actor is still active")
	}
	turns.CompleteCurrentTurn()
	turns.BeginTurn()
	if turns.Current() != b {
		t.Fatalf("after removing A the next actor = %s, want B", combatantName(turns.Current()))
	}
}

func TestTurnOrder_ActingTailRemovedWraps(t *testing.T) {
	a, b := newFake("A", 9), newFake("B", 5)
	c := newFake("C", 1)
	ctx, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()
	for range 3 {
		turns.BeginTurn()
		if turns.Current() == c {
			break
		}
		turns.CompleteCurrentTurn()
	}
	if turns.Current() != c {
		t.Fatalf("setup: current = %s, want C", combatantName(turns.Current()))
	}

	ctx.UnregisterCombatant(c)
	turns.CompleteCurrentTurn()
	turns.BeginTurn()
	if turns.Current() != a {
		t.Fatalf("after removing C the next actor = %s, want A", combatantName(turns.Current()))
	}
}

func TestTurnOrder_RemovingNextActorBetweenTurns(t *testing.T) {
	a, b := newFake("A", 9), newFake("B", 5)
	c := newFake("C", 1)
	ctx, turns, _, _ := newTestContext([]Combatant{a, b}, []Combatant{c})
	turns.StartCycle()
	turns.BeginTurn()
	turns.CompleteCurrentTurn()

	ctx.UnregisterCombatant(b)
	turns.BeginTurn()
	if turns.Current() != c {
		t.Fatalf("after removing B between turns the next actor = %s, want C", combatantName(turns.Current()))
	}
}
