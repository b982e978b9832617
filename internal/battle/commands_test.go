package battle

import (
	"slices"
	"testing"
)

// startPlayerTurn builds a one-on-one context where the commander holds the
// first turn.
func startPlayerTurn(t *testing.T) (*Context, *fakeCommander, *fakeCombatant, *recordingFlee) {
	t.Helper()
	p := newCommander("P1", 10)
	e := newFake("E1", 1)
	ctx, turns, _, flee := newTestContext([]Combatant{p}, []Combatant{e})
	turns.StartCycle()
	if !turns.BeginTurn() {
		t.Fatalf("commander turn did not need a command phase")
	}
	if ctx.ActiveActor() != p {
		t.Fatalf("active actor = %v, want P1", combatantName(ctx.ActiveActor()))
	}
	return ctx, p, e, flee
}

// --- Staging round-trips ---

func TestPrepareAttack_UndoRestoresContext(t *testing.T) {
	ctx, _, e, _ := startPlayerTurn(t)
	ctx.SelectTarget(e)
	depth, pending, target := ctx.MenuDepth(), ctx.PendingAction(), ctx.SelectedTarget()

	cmd := NewPrepareAttack()
	if !ctx.ExecuteCommand(cmd) {
		t.Fatalf("prepare attack did not execute")
	}
	if _, ok := ctx.PendingAction().(*AttackCommand); !ok {
		t.Fatalf("pending = %T, want *AttackCommand", ctx.PendingAction())
	}
	if ctx.MenuState() != MenuTargetSelection || ctx.SelectedTarget() != nil {
		t.Fatalf("after prepare: menu=%s target=%v", ctx.MenuState(), ctx.SelectedTarget())
	}
	if ctx.HistoryLen() != 1 {
		t.Fatalf("history len = %d, want 1", ctx.HistoryLen())
	}

	if !ctx.UndoLastCommand() {
		t.Fatalf("undo failed")
	}
	if ctx.MenuDepth() != depth || ctx.PendingAction() != pending || ctx.SelectedTarget() != target {
		t.Fatalf("undo did not restore: depth %d->%d pending %v target %v",
			depth, ctx.MenuDepth(), ctx.PendingAction(), combatantName(ctx.SelectedTarget()))
	}
	if ctx.UndoLastCommand() {
		t.Fatalf("undo on empty history succeeded")
	}
}

func TestSelectWeapon_UndoRestoresContext(t *testing.T) {
	ctx, _, _, _ := startPlayerTurn(t)
	if !ctx.ExecuteCommand(NewOpenMenu("menu.weapons", "Weapons", MenuWeapon)) {
		t.Fatalf("open weapon menu failed")
	}
	depth := ctx.MenuDepth()

	sel := NewSelectWeapon("weapon.axe", "Axe", 2)
	if !ctx.ExecuteCommand(sel) {
		t.Fatalf("select weapon failed")
	}
	wa, ok := ctx.PendingAction().(*WeaponAttackCommand)
	if !ok {
		t.Fatalf("pending = %T, want *WeaponAttackCommand", ctx.PendingAction())
	}
	if wa.ID() != "action.weapon.weapon.axe" || wa.Multiplier() != 2 || wa.Label() != "Axe" {
		t.Fatalf("staged weapon attack = %s %s x%v", wa.ID(), wa.Label(), wa.Multiplier())
	}

	ctx.UndoLastCommand()
	if ctx.MenuDepth() != depth || ctx.PendingAction() != nil || ctx.MenuState() != MenuWeapon {
		t.Fatalf("undo left depth=%d pending=%v menu=%s", ctx.MenuDepth(), ctx.PendingAction(), ctx.MenuState())
	}
	ctx.UndoLastCommand()
	if got := ctx.MenuStates(); !slices.Equal(got, []MenuState{MenuAction}) {
		t.Fatalf("second undo left menu %v", got)
	}
}

func TestSelectWeapon_Defaults(t *testing.T) {
	c := NewSelectWeapon("", "", -3)
	if c.ID() != "menu.weapon.weapon.unknown" || c.Label() != "Weapon" || c.Multiplier() != 1 {
		t.Fatalf("defaults = %s %q x%v", c.ID(), c.Label(), c.Multiplier())
	}
	w := NewWeaponAttack("", "", 0)
	if w.ID() != "action.weapon.weapon.unknown" || w.Label() != "Weapon Attack" || w.Multiplier() != 1 {
		t.Fatalf("weapon attack defaults = %s %q x%v", w.ID(), w.Label(), w.Multiplier())
	}
}

func TestSelectWeapon_RequiresWeaponMenu(t *testing.T) {
	ctx, _, _, _ := startPlayerTurn(t)
	if ctx.ExecuteCommand(NewSelectWeapon("weapon.axe", "Axe", 2)) {
		t.Fatalf("select weapon executed from the action menu")
	}
	if ctx.HistoryLen() != 0 || ctx.PendingAction() != nil {
		t.Fatalf("rejected command changed the context")
	}
}

func TestOpenMenu_UndoPops(t *testing.T) {
	ctx, _, _, _ := startPlayerTurn(t)
	open := NewOpenMenu("menu.items", "Items", MenuItem)
	if !ctx.ExecuteCommand(open) {
		t.Fatalf("open items failed")
	}
	if ctx.ExecuteCommand(NewOpenMenu("menu.items", "Items", MenuItem)) {
		t.Fatalf("opening the current menu again succeeded")
	}
	if !ctx.UndoLastCommand() || ctx.MenuState() != MenuAction {
		t.Fatalf("undo open menu left %s", ctx.MenuState())
	}
}

func TestOpenMenu_DefaultLabel(t *testing.T) {
	c := NewOpenMenu("", "", MenuWeapon)
	if c.ID() != "menu.weapon" || c.Label() != "Weapon" {
		t.Fatalf("defaults = %s %q", c.ID(), c.Label())
	}
}

// --- Resolution ---

func TestWeaponAttack_NeedsTarget(t *testing.T) {
	ctx, _, e, _ := startPlayerTurn(t)
	ctx.ExecuteCommand(NewPrepareAttack())

	w := NewWeaponAttack("weapon.axe", "Axe", 2)
	if w.CanExecute(ctx) {
		t.Fatalf("weapon attack can execute without a target")
	}
	if NewConfirmPendingAction().CanExecute(ctx) {
		t.Fatalf("confirm can execute without a target")
	}
	ctx.SelectTarget(e)
	if !w.CanExecute(ctx) {
		t.Fatalf("weapon attack cannot execute with a living target")
	}
	e.kill()
	if w.CanExecute(ctx) {
		t.Fatalf("weapon attack can execute on a dead target")
	}
}

func TestConfirmPending_MovesToResolveSlot(t *testing.T) {
	ctx, _, e, _ := startPlayerTurn(t)
	ctx.ExecuteCommand(NewPrepareAttack())
	staged := ctx.PendingAction()
	ctx.SelectTarget(e)

	confirm := NewConfirmPendingAction()
	if !ctx.ExecuteCommand(confirm) {
		t.Fatalf("confirm failed")
	}
	if ctx.CommandToResolve() != staged || ctx.PendingAction() != nil {
		t.Fatalf("confirm did not move pending into the resolve slot")
	}
	if ctx.HistoryLen() != 0 {
		t.Fatalf("history not cleared, len %d", ctx.HistoryLen())
	}
	if got := ctx.MenuStates(); !slices.Equal(got, []MenuState{MenuAction}) {
		t.Fatalf("menu = %v, want [action]", got)
	}
	if e.Health() != 20 {
		t.Fatalf("confirm resolved the attack early, enemy health %d", e.Health())
	}
}

func TestAttack_ResolvesOnce(t *testing.T) {
	ctx, p, e, _ := startPlayerTurn(t)
	ctx.SelectTarget(e)
	if !ctx.ExecuteCommand(NewAttack()) {
		t.Fatalf("attack failed")
	}
	want := 20 - BasicDamage(p.Attack(), e.Defense())
	if e.Health() != want {
		t.Fatalf("enemy health = %d, want %d", e.Health(), want)
	}
	if ctx.HistoryLen() != 0 {
		t.Fatalf("attack was pushed on the history")
	}
}

func TestFlee_CallsHandler(t *testing.T) {
	ctx, p, _, flee := startPlayerTurn(t)
	ctx.ExecuteCommand(NewPrepareAttack())

	if !ctx.ExecuteCommand(NewFlee()) {
		t.Fatalf("flee failed")
	}
	if len(flee.calls) != 1 || flee.calls[0] != p {
		t.Fatalf("flee handler calls = %v", flee.calls)
	}
	if ctx.PendingAction() != nil || ctx.HistoryLen() != 0 {
		t.Fatalf("flee left pending=%v history=%d", ctx.PendingAction(), ctx.HistoryLen())
	}
}

func TestCommands_RejectNilContext(t *testing.T) {
	cmds := []Command{
		NewPrepareAttack(), NewSelectWeapon("w", "W", 1), NewOpenMenu("m", "M", MenuItem),
		NewConfirmPendingAction(), NewAttack(), NewWeaponAttack("w", "W", 1), NewFlee(),
	}
	for _, c := range cmds {
		if c.CanExecute(nil) {
			t.Fatalf("%s can execute on a nil context", c.ID())
		}
		c.Execute(nil)
		if c.CanUndo(nil) {
			t.Fatalf("%s can undo on a nil context", c.ID())
		}
	}
	h := NewHistory(quietLogger())
	if h.Execute(nil, NewAttack()) {
		t.Fatalf("history executed on a nil context")
	}
}
