package battle

import (
	"fmt"

	"github.com/google/uuid"
)

// Outcome is the battle result from the player side's point of view.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Decided reports whether the battle is over on the field.
func (o Outcome) Decided() bool {
	return o != OutcomeOngoing
}

// DetermineOutcome maps side liveness to an outcome.
func DetermineOutcome(playersAlive, enemiesAlive bool) Outcome {
	switch {
	case playersAlive && enemiesAlive:
		return OutcomeOngoing
	case playersAlive:
		return OutcomeVictory
	case enemiesAlive:
		return OutcomeDefeat
	default:
		return OutcomeDraw
	}
}

// Result is the record published when a battle reaches BattleEnd.
type Result struct {
	BattleID        uuid.UUID
	Outcome         Outcome
	Fled            bool
	FledBy          string
	Turns           int
	Ticks           int
	PlayerSurvivors int
	PlayerTotal     int
	EnemySurvivors  int
	EnemyTotal      int
	Description     string
}

func describeResult(r Result) string {
	if r.Fled {
		return fmt.Sprintf("fled_by_%s_after_%d_turns", r.FledBy, r.Turns)
	}
	switch r.Outcome {
	case OutcomeVictory:
		if r.PlayerSurvivors == r.PlayerTotal {
			return "flawless_victory"
		}
		return fmt.Sprintf("victory_%d_of_%d_players_standing", r.PlayerSurvivors, r.PlayerTotal)
	case OutcomeDefeat:
		return fmt.Sprintf("defeat_%d_of_%d_enemies_standing", r.EnemySurvivors, r.EnemyTotal)
	case OutcomeDraw:
		return "mutual_destruction"
	default:
		return "inconclusive"
	}
}

func countAlive(list []Combatant) int {
	n := 0
	for _, c := range list {
		if c != nil && c.IsAlive() {
			n++
		}
	}
	return n
}
