package roster

import "github.com/Garsondee/Battle-Sense/internal/battle"

// Weapon is a named damage multiplier a combatant can strike with.
type Weapon struct {
	ID         string  `yaml:"id"`
	Label      string  `yaml:"label"`
	Multiplier float64 `yaml:"multiplier"`
}

// BasicWeapon is offered to every player that lists no weapons.
var BasicWeapon = Weapon{ID: "weapon.basic", Label: "Basic Strike", Multiplier: 1}

// Player is a menu-driven combatant. Its commands come from the presentation
// layer through AvailableCommands.
type Player struct {
	unit
	weapons []Weapon
}

var (
	_ battle.Combatant     = (*Player)(nil)
	_ battle.CommandSource = (*Player)(nil)
)

func NewPlayer(name string, stats battle.Stats, weapons ...Weapon) *Player {
	if len(weapons) == 0 {
		weapons = []Weapon{BasicWeapon}
	}
	return &Player{
		unit:    newUnit(name, stats, battle.SidePlayer),
		weapons: append([]Weapon(nil), weapons...),
	}
}

func (p *Player) Weapons() []Weapon { return append([]Weapon(nil), p.weapons...) }

// AvailableCommands builds the menu for the context's current menu state.
// A nil context gets the action menu.
func (p *Player) AvailableCommands(ctx *battle.Context) []battle.Command {
	menu := battle.MenuAction
	if ctx != nil {
		menu = ctx.MenuState()
	}
	switch menu {
	case battle.MenuTargetSelection:
		return []battle.Command{battle.NewConfirmPendingAction()}
	case battle.MenuWeapon:
		cmds := make([]battle.Command, 0, len(p.weapons))
		for _, w := range p.weapons {
			cmds = append(cmds, battle.NewSelectWeapon(w.ID, w.Label, w.Multiplier))
		}
		return cmds
	case battle.MenuItem:
		// No items exist yet. Only the action entries that work from
		// here are listed.
		return []battle.Command{
			battle.NewOpenMenu("menu.weapons", "Weapons", battle.MenuWeapon),
			battle.NewFlee(),
		}
	default:
		return []battle.Command{
			battle.NewPrepareAttack(),
			battle.NewOpenMenu("menu.weapons", "Weapons", battle.MenuWeapon),
			battle.NewOpenMenu("menu.items", "Items", battle.MenuItem),
			battle.NewFlee(),
		}
	}
}

// TakeTurn strikes the weakest opponent. Only reached when the player is
// driven without a command phase.
func (p *Player) TakeTurn(view battle.TurnView) {
	strike(p, view, nil)
}
