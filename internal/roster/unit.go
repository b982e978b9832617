package roster

import "github.com/Garsondee/Battle-Sense/internal/battle"

// unit is the stat-backed body shared by every concrete combatant.
type unit struct {
	name   string
	stats  battle.Stats
	health int
	side   battle.Side
}

func newUnit(name string, stats battle.Stats, side battle.Side) unit {
	return unit{name: name, stats: stats, health: max(0, stats.Health), side: side}
}

func (u *unit) Name() string             { return u.name }
func (u *unit) Health() int              { return u.health }
func (u *unit) MaxHealth() int           { return u.stats.Health }
func (u *unit) Attack() int              { return u.stats.Attack }
func (u *unit) Speed() int               { return u.stats.Speed }
func (u *unit) Defense() int             { return u.stats.Defense }
func (u *unit) Luck() int                { return u.stats.Luck }
func (u *unit) Side() battle.Side        { return u.side }
func (u *unit) SetSide(side battle.Side) { u.side = side }
func (u *unit) IsAlive() bool            { return u.health > 0 }
func (u *unit) Stats() battle.Stats      { return u.stats }

// TakeDamage clamps health at zero. Negative amounts are ignored.
func (u *unit) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	u.health = max(0, u.health-amount)
}

// Weakest returns the living combatant with the least health. Ties go to the
// earlier entry. Nil when nobody in list is alive.
func Weakest(list []battle.Combatant) battle.Combatant {
	var best battle.Combatant
	for _, c := range list {
		if c == nil || !c.IsAlive() {
			continue
		}
		if best == nil || c.Health() < best.Health() {
			best = c
		}
	}
	return best
}

// strike resolves one autonomous attack on the weakest opponent, with the
// weapon when one is given. The view's actor wins over the fallback.
func strike(actor battle.Combatant, view battle.TurnView, weapon *Weapon) (battle.Resolution, bool) {
	if view.Actor != nil {
		actor = view.Actor
	}
	target := Weakest(view.Opponents)
	if target == nil || view.Resolver == nil {
		return battle.Resolution{}, false
	}
	if weapon != nil {
		return view.Resolver.ResolveWeaponAttack(actor, target, weapon.Label, weapon.Multiplier), true
	}
	return view.Resolver.ResolveBasicAttack(actor, target), true
}
