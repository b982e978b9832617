package battle

//go:generate go tool mockgen -destination=./mocks/combatant_mock.go -package=mocks . Combatant,CommandSource

// Side is the team a combatant fights for.
type Side int

const (
	SideNeutral Side = iota
	SidePlayer
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SideNeutral:
		return "neutral"
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opposite returns the side this one fights against. Neutral has none.
func (s Side) Opposite() Side {
	switch s {
	case SidePlayer:
		return SideEnemy
	case SideEnemy:
		return SidePlayer
	default:
		return SideNeutral
	}
}

// Stats is the static stat block a combatant is built from.
type Stats struct {
	Health  int `yaml:"health"`
	Attack  int `yaml:"attack"`
	Speed   int `yaml:"speed"`
	Defense int `yaml:"defense"`
	Luck    int `yaml:"luck"`
}

// Combatant is any participant in a battle. Health never drops below zero and
// IsAlive is Health() > 0.
type Combatant interface {
	Name() string
	Health() int
	Attack() int
	Speed() int
	Defense() int
	Luck() int
	Side() Side
	SetSide(side Side)
	TakeDamage(amount int)
	IsAlive() bool
	// TakeTurn runs an autonomous turn. The turn engine only calls it for
	// combatants that are not a CommandSource.
	TakeTurn(view TurnView)
}

// CommandSource is a combatant that supplies commands for its turn. The list
// depends on the context's current menu state and is built fresh per call.
type CommandSource interface {
	AvailableCommands(ctx *Context) []Command
}

// TurnView is what an autonomous combatant sees when it takes its turn.
type TurnView struct {
	Actor     Combatant
	Allies    []Combatant
	Opponents []Combatant
	Resolver  ActionResolver
}

func combatantName(c Combatant) string {
	if c == nil {
		return "<none>"
	}
	return c.Name()
}

func containsCombatant(list []Combatant, c Combatant) bool {
	return indexOfCombatant(list, c) >= 0
}

func indexOfCombatant(list []Combatant, c Combatant) int {
	if c == nil {
		return -1
	}
	for i, x := range list {
		if x == c {
			return i
		}
	}
	return -1
}

func removeCombatant(list []Combatant, c Combatant) ([]Combatant, bool) {
	i := indexOfCombatant(list, c)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}

func living(list []Combatant) []Combatant {
	out := make([]Combatant, 0, len(list))
	for _, c := range list {
		if c != nil && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

func anyAlive(list []Combatant) bool {
	for _, c := range list {
		if c != nil && c.IsAlive() {
			return true
		}
	}
	return false
}
