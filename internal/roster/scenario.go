package roster

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Battle-Sense/internal/battle"
)

// ErrInvalidScenario wraps every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Unit kinds accepted in a scenario file.
const (
	KindPlayer    = "player"
	KindMob       = "mob"
	KindCommanded = "commanded"
)

// UnitSpec describes one combatant in a scenario file. Kind defaults to
// "player" on the player side and "mob" on the enemy side.
type UnitSpec struct {
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"`
	Stats   battle.Stats `yaml:"stats"`
	Weapons []Weapon     `yaml:"weapons"`
}

// Scenario is a starting roster loaded from YAML.
type Scenario struct {
	Name    string     `yaml:"name"`
	Players []UnitSpec `yaml:"players"`
	Enemies []UnitSpec `yaml:"enemies"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := ParseScenario(b)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes YAML, fills defaults and validates the result.
func ParseScenario(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Name == "" {
		s.Name = "unnamed"
	}
	for i := range s.Players {
		if s.Players[i].Kind == "" {
			s.Players[i].Kind = KindPlayer
		}
	}
	for i := range s.Enemies {
		if s.Enemies[i].Kind == "" {
			s.Enemies[i].Kind = KindMob
		}
	}
	for _, units := range [][]UnitSpec{s.Players, s.Enemies} {
		for i := range units {
			for j := range units[i].Weapons {
				if units[i].Weapons[j].Multiplier == 0 {
					units[i].Weapons[j].Multiplier = 1
				}
			}
		}
	}
}

// Validate checks side sizes, unique names, stats and weapons.
func (s *Scenario) Validate() error {
	if len(s.Players) == 0 || len(s.Enemies) == 0 {
		return fmt.Errorf("%w: both sides need at least one combatant", ErrInvalidScenario)
	}
	if len(s.Players) > battle.MaxPlayerCombatants {
		return fmt.Errorf("%w: %d players exceeds capacity %d", ErrInvalidScenario, len(s.Players), battle.MaxPlayerCombatants)
	}
	if len(s.Enemies) > battle.MaxEnemyCombatants {
		return fmt.Errorf("%w: %d enemies exceeds capacity %d", ErrInvalidScenario, len(s.Enemies), battle.MaxEnemyCombatants)
	}
	seen := make(map[string]bool)
	for _, u := range append(append([]UnitSpec(nil), s.Players...), s.Enemies...) {
		if u.Name == "" {
			return fmt.Errorf("%w: combatant without a name", ErrInvalidScenario)
		}
		if seen[u.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidScenario, u.Name)
		}
		seen[u.Name] = true
		if err := u.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (u UnitSpec) validate() error {
	switch u.Kind {
	case KindPlayer, KindMob, KindCommanded:
	default:
		return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidScenario, u.Name, u.Kind)
	}
	st := u.Stats
	if st.Health <= 0 {
		return fmt.Errorf("%w: %s needs positive health", ErrInvalidScenario, u.Name)
	}
	if st.Attack < 0 || st.Speed < 0 || st.Defense < 0 || st.Luck < 0 {
		return fmt.Errorf("%w: %s has a negative stat", ErrInvalidScenario, u.Name)
	}
	for _, w := range u.Weapons {
		if w.ID == "" {
			return fmt.Errorf("%w: %s has a weapon without an id", ErrInvalidScenario, u.Name)
		}
		if w.Multiplier < 0 {
			return fmt.Errorf("%w: %s weapon %s has a negative multiplier", ErrInvalidScenario, u.Name, w.ID)
		}
	}
	return nil
}

// Build returns fresh combatants for one battle. Every call starts at full
// health, so one scenario can seed many battles.
func (s *Scenario) Build() (players, enemies []battle.Combatant) {
	for _, u := range s.Players {
		players = append(players, u.build(battle.SidePlayer))
	}
	for _, u := range s.Enemies {
		enemies = append(enemies, u.build(battle.SideEnemy))
	}
	return players, enemies
}

func (u UnitSpec) build(side battle.Side) battle.Combatant {
	var c battle.Combatant
	switch u.Kind {
	case KindPlayer:
		c = NewPlayer(u.Name, u.Stats, u.Weapons...)
	case KindCommanded:
		m := NewCommandedMob(u.Name, u.Stats)
		if len(u.Weapons) > 0 {
			m.WithWeapon(u.Weapons[0])
		}
		c = m
	default:
		m := NewMob(u.Name, u.Stats)
		if len(u.Weapons) > 0 {
			m.WithWeapon(u.Weapons[0])
		}
		c = m
	}
	c.SetSide(side)
	return c
}

// DefaultScenario is the two-on-three skirmish used when no file is given.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name: "skirmish",
		Players: []UnitSpec{
			{Name: "Aria", Kind: KindPlayer, Stats: battle.Stats{Health: 40, Attack: 9, Speed: 10, Defense: 3, Luck: 2},
				Weapons: []Weapon{BasicWeapon, {ID: "weapon.axe", Label: "Axe", Multiplier: 1.5}}},
			{Name: "Bram", Kind: KindPlayer, Stats: battle.Stats{Health: 50, Attack: 7, Speed: 5, Defense: 5, Luck: 1}},
		},
		Enemies: []UnitSpec{
			{Name: "Goblin", Kind: KindMob, Stats: battle.Stats{Health: 18, Attack: 6, Speed: 7, Defense: 1, Luck: 1}},
			{Name: "Orc", Kind: KindMob, Stats: battle.Stats{Health: 30, Attack: 8, Speed: 3, Defense: 3},
				Weapons: []Weapon{{ID: "weapon.club", Label: "Club", Multiplier: 1.25}}},
			{Name: "Shaman", Kind: KindCommanded, Stats: battle.Stats{Health: 20, Attack: 5, Speed: 6, Defense: 1, Luck: 3}},
		},
	}
}
