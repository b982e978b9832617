package roster

import "github.com/Garsondee/Battle-Sense/internal/battle"

// Mob is an autonomous combatant. On its turn it attacks the weakest living
// opponent, with its weapon when it carries one.
type Mob struct {
	unit
	weapon *Weapon
}

var _ battle.Combatant = (*Mob)(nil)

func NewMob(name string, stats battle.Stats) *Mob {
	return &Mob{unit: newUnit(name, stats, battle.SideEnemy)}
}

// WithWeapon arms the mob and returns it.
func (m *Mob) WithWeapon(w Weapon) *Mob {
	m.weapon = &w
	return m
}

func (m *Mob) Weapon() (Weapon, bool) {
	if m.weapon == nil {
		return Weapon{}, false
	}
	return *m.weapon, true
}

func (m *Mob) TakeTurn(view battle.TurnView) {
	strike(m, view, m.weapon)
}

// CommandedMob is a mob whose turn runs through the command phase. It offers
// its strikes plus Flee; the enemy side filter leaves only the strikes.
type CommandedMob struct {
	Mob
}

var _ battle.CommandSource = (*CommandedMob)(nil)

func NewCommandedMob(name string, stats battle.Stats) *CommandedMob {
	return &CommandedMob{Mob: *NewMob(name, stats)}
}

func (m *CommandedMob) WithWeapon(w Weapon) *CommandedMob {
	m.weapon = &w
	return m
}

func (m *CommandedMob) AvailableCommands(*battle.Context) []battle.Command {
	cmds := make([]battle.Command, 0, 3)
	if m.weapon != nil {
		cmds = append(cmds, battle.NewWeaponAttack(m.weapon.ID, m.weapon.Label, m.weapon.Multiplier))
	}
	return append(cmds, battle.NewAttack(), battle.NewFlee())
}
