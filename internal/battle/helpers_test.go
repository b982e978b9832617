package battle

import (
	"io"
	"log/slog"
)

// --- Test fakes ---

type fakeCombatant struct {
	name   string
	stats  Stats
	health int
	side   Side
	turns  int
	onTurn func(TurnView)
}

func newFake(name string, speed int) *fakeCombatant {
	return &fakeCombatant{
		name:   name,
		stats:  Stats{Health: 20, Attack: 6, Speed: speed, Defense: 2},
		health: 20,
	}
}

func (f *fakeCombatant) Name() string      { return f.name }
func (f *fakeCombatant) Health() int       { return f.health }
func (f *fakeCombatant) Attack() int       { return f.stats.Attack }
func (f *fakeCombatant) Speed() int        { return f.stats.Speed }
func (f *fakeCombatant) Defense() int      { return f.stats.Defense }
func (f *fakeCombatant) Luck() int         { return f.stats.Luck }
func (f *fakeCombatant) Side() Side        { return f.side }
func (f *fakeCombatant) SetSide(side Side) { f.side = side }
func (f *fakeCombatant) IsAlive() bool     { return f.health > 0 }
func (f *fakeCombatant) kill()             { f.health = 0 }

func (f *fakeCombatant) TakeDamage(amount int) {
	f.health = max(0, f.health-amount)
}

func (f *fakeCombatant) TakeTurn(view TurnView) {
	f.turns++
	if f.onTurn != nil {
		f.onTurn(view)
	}
}

// fakeCommander is a combatant with a player-style menu.
type fakeCommander struct {
	*fakeCombatant
	commands func(ctx *Context) []Command
}

func newCommander(name string, speed int) *fakeCommander {
	return &fakeCommander{fakeCombatant: newFake(name, speed)}
}

func (f *fakeCommander) AvailableCommands(ctx *Context) []Command {
	if f.commands != nil {
		return f.commands(ctx)
	}
	switch ctx.MenuState() {
	case MenuTargetSelection:
		return []Command{NewConfirmPendingAction()}
	case MenuWeapon:
		return []Command{NewSelectWeapon("weapon.axe", "Axe", 2)}
	default:
		return []Command{
			NewPrepareAttack(),
			NewOpenMenu("menu.weapons", "Weapons", MenuWeapon),
			NewFlee(),
		}
	}
}

// strikeOpponent makes an autonomous fake hit its first opponent.
func strikeOpponent(f *fakeCombatant) {
	f.onTurn = func(v TurnView) {
		if len(v.Opponents) == 0 || v.Resolver == nil {
			return
		}
		v.Resolver.ResolveBasicAttack(f, v.Opponents[0])
	}
}

type recordingFlee struct {
	calls []Combatant
}

func (r *recordingFlee) HandleFlee(actor Combatant) { r.calls = append(r.calls, actor) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestContext builds a context with a quiet resolver, turn engine and
// command phase attached, the same way the orchestrator wires them.
func newTestContext(players, enemies []Combatant) (*Context, *TurnOrder, *CommandPhase, *recordingFlee) {
	events := NewEvents()
	flee := &recordingFlee{}
	ctx := NewContext(ContextConfig{
		Resolver: NewResolver(events, quietLogger()),
		Flee:     flee,
		Events:   events,
		Logger:   quietLogger(),
	})
	turns := NewTurnOrder(quietLogger())
	turns.Attach(ctx)
	phase := NewCommandPhase(quietLogger())
	phase.Attach(ctx)
	ctx.SetCombatants(players, enemies)
	return ctx, turns, phase, flee
}

func names(list []Combatant) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name()
	}
	return out
}

func commandIDs(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.ID()
	}
	return out
}

func findCommand(cmds []Command, kind CommandKind) Command {
	for _, c := range cmds {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}
