package battle

import (
	"log/slog"
	"math"
)

//go:generate go tool mockgen -destination=./mocks/resolver_mock.go -package=mocks . ActionResolver

// Resolution records one resolved strike.
type Resolution struct {
	Attacker   Combatant
	Defender   Combatant
	Label      string
	Multiplier float64
	Damage     int
	Defeated   bool
}

// ActionResolver applies damage. Attack commands call it during Execute and
// autonomous combatants call it from TakeTurn.
type ActionResolver interface {
	ResolveBasicAttack(attacker, defender Combatant) Resolution
	ResolveWeaponAttack(attacker, defender Combatant, label string, multiplier float64) Resolution
}

// Resolver is the default ActionResolver. Every strike deals at least 1.
type Resolver struct {
	events *Events
	logger *slog.Logger
}

// NewResolver publishes each resolution on events.ActionResolved when events
// is non-nil.
func NewResolver(events *Events, logger *slog.Logger) *Resolver {
	return &Resolver{events: events, logger: loggerOrDefault(logger)}
}

// BasicDamage is max(1, attack-defense).
func BasicDamage(attack, defense int) int {
	return max(1, attack-defense)
}

// WeaponDamage is max(1, round((attack-defense)*multiplier)). The multiplier
// scales the raw attack-defense difference, not the floored basic damage, so
// a weapon never lifts a blocked blow above 1. A non-positive multiplier
// counts as 1.
func WeaponDamage(attack, defense int, multiplier float64) int {
	if multiplier <= 0 {
		multiplier = 1
	}
	return max(1, int(math.Round(float64(attack-defense)*multiplier)))
}

func (r *Resolver) ResolveBasicAttack(attacker, defender Combatant) Resolution {
	if attacker == nil || defender == nil {
		r.logger.Error("resolve: basic attack without attacker or defender")
		return Resolution{Attacker: attacker, Defender: defender, Label: "Attack", Multiplier: 1}
	}
	dmg := BasicDamage(attacker.Attack(), defender.Defense())
	return r.apply(Resolution{Attacker: attacker, Defender: defender, Label: "Attack", Multiplier: 1, Damage: dmg})
}

func (r *Resolver) ResolveWeaponAttack(attacker, defender Combatant, label string, multiplier float64) Resolution {
	if label == "" {
		label = "Weapon Attack"
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	if attacker == nil || defender == nil {
		r.logger.Error("resolve: weapon attack without attacker or defender", "label", label)
		return Resolution{Attacker: attacker, Defender: defender, Label: label, Multiplier: multiplier}
	}
	dmg := WeaponDamage(attacker.Attack(), defender.Defense(), multiplier)
	return r.apply(Resolution{Attacker: attacker, Defender: defender, Label: label, Multiplier: multiplier, Damage: dmg})
}

func (r *Resolver) apply(res Resolution) Resolution {
	res.Defender.TakeDamage(res.Damage)
	res.Defeated = !res.Defender.IsAlive()
	r.logger.Info("resolve: strike",
		"attacker", res.Attacker.Name(),
		"defender", res.Defender.Name(),
		"label", res.Label,
		"damage", res.Damage,
		"defeated", res.Defeated,
	)
	if r.events != nil {
		r.events.ActionResolved.Emit(res)
	}
	return res
}
