package sim

import (
	"log/slog"
	"math/rand"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/roster"
)

// Autopilot stands in for a player at the menu. It keeps the latest offer
// and answers it on the next Step, one command per step, so every menu
// change costs a tick the way a human's keypress would.
type Autopilot struct {
	o      *battle.Orchestrator
	rng    *rand.Rand
	logger *slog.Logger
	cancel func()
	offer  battle.CommandOffer

	// WeaponRate is the chance of opening the weapon menu instead of a
	// basic attack. UndoRate is the chance of taking back a staged choice.
	// FleeRate is the chance of fleeing from the action menu.
	WeaponRate float64
	UndoRate   float64
	FleeRate   float64

	// OnUndo is told about every undo the autopilot performs.
	OnUndo func(actor battle.Combatant)
}

func NewAutopilot(o *battle.Orchestrator, rng *rand.Rand, logger *slog.Logger) *Autopilot {
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- simulation, not security
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &Autopilot{o: o, rng: rng, logger: logger, WeaponRate: 0.5}
	a.cancel = o.Events().CommandsAvailable.Subscribe(func(co battle.CommandOffer) { a.offer = co })
	return a
}

// Close stops listening for offers.
func (a *Autopilot) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Pending reports whether an unanswered offer is waiting.
func (a *Autopilot) Pending() bool { return len(a.offer.Commands) > 0 }

// Step answers the pending offer with one command. It reports whether a
// command or undo was accepted.
func (a *Autopilot) Step() bool {
	if !a.Pending() || !a.o.Commands().Active() {
		return false
	}
	offer := a.offer
	a.offer = battle.CommandOffer{}

	ctx := a.o.Context()
	if ctx != nil && ctx.HistoryLen() > 0 && a.roll(a.UndoRate) {
		if a.o.UndoLastCommand() {
			a.logger.Debug("autopilot: undo", "actor", offer.Actor.Name(), "menu", offer.Menu)
			if a.OnUndo != nil {
				a.OnUndo(offer.Actor)
			}
			return true
		}
	}

	cmd, target := a.choose(offer)
	if cmd == nil {
		a.logger.Warn("autopilot: nothing to choose", "actor", offer.Actor.Name(), "menu", offer.Menu)
		a.offer = offer
		return false
	}
	ok := a.o.ExecuteCommand(cmd, target)
	a.logger.Debug("autopilot: execute", "actor", offer.Actor.Name(), "command", cmd.ID(), "ok", ok)
	if !ok {
		// A refused command publishes nothing; keep the offer for a retry.
		a.offer = offer
	}
	return ok
}

func (a *Autopilot) choose(offer battle.CommandOffer) (battle.Command, battle.Combatant) {
	var target battle.Combatant
	if ctx := a.o.Context(); ctx != nil {
		target = roster.Weakest(ctx.LivingOpponents(offer.Actor))
	}

	// Enemy commanders only ever see strikes.
	var strikes []battle.Command
	for _, c := range offer.Commands {
		if c.Kind() == battle.KindAttack || c.Kind() == battle.KindWeaponAttack {
			strikes = append(strikes, c)
		}
	}
	if len(strikes) > 0 {
		return strikes[a.rng.Intn(len(strikes))], target
	}

	switch offer.Menu {
	case battle.MenuTargetSelection:
		return find(offer.Commands, battle.KindConfirmPending), target
	case battle.MenuWeapon:
		var weapons []battle.Command
		for _, c := range offer.Commands {
			if c.Kind() == battle.KindSelectWeapon {
				weapons = append(weapons, c)
			}
		}
		if len(weapons) == 0 {
			return nil, nil
		}
		return weapons[a.rng.Intn(len(weapons))], nil
	}

	if flee := find(offer.Commands, battle.KindFlee); flee != nil && a.roll(a.FleeRate) {
		return flee, nil
	}
	if a.roll(a.WeaponRate) {
		for _, c := range offer.Commands {
			if open, ok := c.(*battle.OpenMenuCommand); ok && open.Target() == battle.MenuWeapon {
				return open, nil
			}
		}
	}
	if prep := find(offer.Commands, battle.KindPrepareAttack); prep != nil && offer.Menu == battle.MenuAction {
		return prep, nil
	}
	// Off the action menu with no strike to stage: go to the weapons.
	for _, c := range offer.Commands {
		if open, ok := c.(*battle.OpenMenuCommand); ok && open.Target() == battle.MenuWeapon {
			return open, nil
		}
	}
	return nil, nil
}

func (a *Autopilot) roll(p float64) bool {
	return p > 0 && a.rng.Float64() < p
}

func find(cmds []battle.Command, kind battle.CommandKind) battle.Command {
	for _, c := range cmds {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}
