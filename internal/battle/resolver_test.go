package battle_test

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/battle/mocks"
	"github.com/Garsondee/Battle-Sense/internal/roster"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDamageFormulas(t *testing.T) {
	tests := []struct {
		name   string
		atk    int
		def    int
		mult   float64
		basic  int
		weapon int
	}{
		{"plain", 9, 3, 1, 6, 6},
		{"multiplied", 9, 3, 1.5, 6, 9},
		{"rounded", 10, 3, 1.25, 7, 9},
		{"armour wins", 2, 8, 2, 1, 1},
		{"equal", 5, 5, 3, 1, 1},
		{"multiplier scales raw difference", 3, 4, 3, 1, 1},
		{"non-positive multiplier", 9, 3, 0, 6, 6},
		{"negative multiplier", 9, 3, -2, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := battle.BasicDamage(tt.atk, tt.def); got != tt.basic {
				t.Fatalf("BasicDamage(%d, %d) = %d, want %d", tt.atk, tt.def, got, tt.basic)
			}
			if got := battle.WeaponDamage(tt.atk, tt.def, tt.mult); got != tt.weapon {
				t.Fatalf("WeaponDamage(%d, %d, %v) = %d, want %d", tt.atk, tt.def, tt.mult, got, tt.weapon)
			}
		})
	}
}

func TestResolver_BasicAttackAppliesDamage(t *testing.T) {
	ctrl := gomock.NewController(t)
	attacker := mocks.NewMockCombatant(ctrl)
	defender := mocks.NewMockCombatant(ctrl)
	attacker.EXPECT().Name().Return("Aria").AnyTimes()
	defender.EXPECT().Name().Return("Wolf").AnyTimes()
	attacker.EXPECT().Attack().Return(9)
	defender.EXPECT().Defense().Return(3)
	defender.EXPECT().TakeDamage(6)
	defender.EXPECT().IsAlive().Return(false)

	events := battle.NewEvents()
	var published []battle.Resolution
	events.ActionResolved.Subscribe(func(r battle.Resolution) { published = append(published, r) })

	res := battle.NewResolver(events, quiet()).ResolveBasicAttack(attacker, defender)
	if res.Damage != 6 || !res.Defeated || res.Label != "Attack" {
		t.Fatalf("resolution = %+v", res)
	}
	if len(published) != 1 || published[0].Defender != defender {
		t.Fatalf("published %d resolutions", len(published))
	}
}

func TestResolver_WeaponAttackDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	attacker := mocks.NewMockCombatant(ctrl)
	defender := mocks.NewMockCombatant(ctrl)
	attacker.EXPECT().Name().Return("Aria").AnyTimes()
	defender.EXPECT().Name().Return("Wolf").AnyTimes()
	attacker.EXPECT().Attack().Return(9)
	defender.EXPECT().Defense().Return(3)
	defender.EXPECT().TakeDamage(6)
	defender.EXPECT().IsAlive().Return(true)

	res := battle.NewResolver(nil, quiet()).ResolveWeaponAttack(attacker, defender, "", 0)
	if res.Label != "Weapon Attack" || res.Multiplier != 1 || res.Damage != 6 || res.Defeated {
		t.Fatalf("resolution = %+v", res)
	}
}

func TestResolver_MissingParticipant(t *testing.T) {
	ctrl := gomock.NewController(t)
	attacker := mocks.NewMockCombatant(ctrl)
	// No expectations: nothing may be called on the attacker.
	res := battle.NewResolver(nil, quiet()).ResolveBasicAttack(attacker, nil)
	if res.Damage != 0 || res.Defeated {
		t.Fatalf("resolution without defender = %+v", res)
	}
}

// --- Collaborator contracts ---

func TestOrchestrator_PrepareThenConfirmResolvesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockActionResolver(ctrl)

	p := roster.NewPlayer("Aria", battle.Stats{Health: 30, Attack: 8, Speed: 10, Defense: 2})
	e := roster.NewMob("Wolf", battle.Stats{Health: 12, Attack: 5, Speed: 1, Defense: 1})
	resolver.EXPECT().ResolveBasicAttack(p, e).DoAndReturn(func(a, d battle.Combatant) battle.Resolution {
		d.TakeDamage(d.Health())
		return battle.Resolution{Attacker: a, Defender: d, Label: "Attack", Multiplier: 1, Damage: 12, Defeated: true}
	}).Times(1)

	o, err := battle.New(battle.Config{Resolver: resolver, Logger: quiet()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var offer battle.CommandOffer
	o.Events().CommandsAvailable.Subscribe(func(co battle.CommandOffer) { offer = co })
	if err := o.Start([]battle.Combatant{p}, []battle.Combatant{e}); err != nil {
		t.Fatalf("start: %v", err)
	}
	o.Tick()

	prep := pick(offer.Commands, battle.KindPrepareAttack)
	if prep == nil || !o.ExecuteCommand(prep, nil) {
		t.Fatalf("prepare attack not offered: %+v", offer)
	}
	if battle.NewWeaponAttack("weapon.axe", "Axe", 2).CanExecute(o.Context()) {
		t.Fatalf("weapon attack executable with no target selected")
	}
	confirm := pick(offer.Commands, battle.KindConfirmPending)
	if confirm == nil || !o.ExecuteCommand(confirm, e) {
		t.Fatalf("confirm failed")
	}
	if o.Commands().Active() {
		t.Fatalf("turn did not end on confirm")
	}

	o.Tick()
	o.Tick()
	r, ok := o.Result()
	if !ok || r.Outcome != battle.OutcomeVictory {
		t.Fatalf("result = %+v ok=%v, want victory", r, ok)
	}
}

func TestContext_FleeNotifiesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	flee := mocks.NewMockFleeHandler(ctrl)

	p := roster.NewPlayer("Aria", battle.Stats{Health: 30, Attack: 8, Speed: 10})
	e := roster.NewMob("Wolf", battle.Stats{Health: 12, Speed: 1})
	flee.EXPECT().HandleFlee(p).Times(1)

	ctx := battle.NewContext(battle.ContextConfig{Flee: flee, Logger: quiet()})
	turns := battle.NewTurnOrder(quiet())
	turns.Attach(ctx)
	ctx.SetCombatants([]battle.Combatant{p}, []battle.Combatant{e})
	turns.StartCycle()
	if !turns.BeginTurn() {
		t.Fatalf("player turn did not need a command phase")
	}
	if !ctx.ExecuteCommand(battle.NewFlee()) {
		t.Fatalf("flee rejected")
	}
}

func TestCommandPhase_MockedEnemyCommander(t *testing.T) {
	ctrl := gomock.NewController(t)
	body := mocks.NewMockCombatant(ctrl)
	source := mocks.NewMockCommandSource(ctrl)
	body.EXPECT().Name().Return("Shade").AnyTimes()
	body.EXPECT().Side().Return(battle.SideEnemy).AnyTimes()
	source.EXPECT().AvailableCommands(gomock.Any()).Return([]battle.Command{battle.NewFlee(), battle.NewPrepareAttack()})

	enemy := struct {
		*mocks.MockCombatant
		*mocks.MockCommandSource
	}{body, source}

	ctx := battle.NewContext(battle.ContextConfig{Logger: quiet()})
	phase := battle.NewCommandPhase(quiet())
	phase.Attach(ctx)
	if !phase.Begin(enemy) {
		t.Fatalf("begin failed")
	}
	got := phase.Offered()
	if len(got) != 1 || got[0].Kind() != battle.KindAttack {
		t.Fatalf("offered %d commands, want one synthesized attack", len(got))
	}
}

func pick(cmds []battle.Command, kind battle.CommandKind) battle.Command {
	for _, c := range cmds {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}
