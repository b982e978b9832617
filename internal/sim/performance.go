package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Garsondee/Battle-Sense/internal/battle"
)

// Grading thresholds.
const (
	perfFinisherKills    = 2
	perfHeavyHitShare    = 0.5
	perfIndecisiveUndos  = 3
	perfSurvivalBonus    = 5.0
	perfKillScore        = 10.0
	perfKillScoreCap     = 20.0
	perfMinTurnsToGrade  = 1
	perfUntouchedMinTurn = 2
)

// ---------------------------------------------------------------------------
// PerfTracker: per-combatant accumulator
// ---------------------------------------------------------------------------

// PerfTracker accumulates one combatant's battle metrics from recorder events.
type PerfTracker struct {
	Name string
	Side battle.Side

	StartHealth int
	HealthAtEnd int
	Survived    bool

	Turns       int
	Strikes     int
	DamageDealt int
	DamageTaken int
	Kills       int
	Undos       int
	Fled        bool

	// BiggestHit is the largest single strike this combatant landed.
	BiggestHit int
}

func NewPerfTracker(c battle.Combatant) *PerfTracker {
	return &PerfTracker{
		Name:        c.Name(),
		Side:        c.Side(),
		StartHealth: c.Health(),
		HealthAtEnd: c.Health(),
		Survived:    c.IsAlive(),
	}
}

func (pt *PerfTracker) recordStrike(res battle.Resolution) {
	pt.Strikes++
	pt.DamageDealt += res.Damage
	pt.BiggestHit = max(pt.BiggestHit, res.Damage)
	if res.Defeated {
		pt.Kills++
	}
}

// Finalize captures end-of-battle health.
func (pt *PerfTracker) Finalize(c battle.Combatant) {
	pt.HealthAtEnd = c.Health()
	pt.Survived = c.IsAlive()
}

// ---------------------------------------------------------------------------
// CombatantGrade: computed performance result
// ---------------------------------------------------------------------------

// CombatantGrade is the computed grade for one combatant.
type CombatantGrade struct {
	Name     string
	Side     battle.Side
	Grade    string  // A+, A, B+, B, C+, C, D, F
	Score    float64 // 0-100
	Survived bool
	Fled     bool

	// Component scores (0-100; -1 = not enough data to grade).
	OffenseScore    float64
	DurabilityScore float64
	DecisionScore   float64

	GoodTraits []string
	BadTraits  []string

	Turns       int
	DamageDealt int
	DamageTaken int
	Kills       int
}

// ---------------------------------------------------------------------------
// Grading logic
// ---------------------------------------------------------------------------

// GradePerformance grades every tracker, players first, best score first.
func GradePerformance(trackers map[string]*PerfTracker) []CombatantGrade {
	sideDamage := map[battle.Side]int{}
	for _, pt := range trackers {
		sideDamage[pt.Side] += pt.DamageDealt
	}
	grades := make([]CombatantGrade, 0, len(trackers))
	for _, pt := range trackers {
		grades = append(grades, computeGrade(pt, sideDamage[pt.Side]))
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].Side != grades[j].Side {
			return grades[i].Side < grades[j].Side
		}
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].Name < grades[j].Name
	})
	return grades
}

func computeGrade(pt *PerfTracker, sideDamage int) CombatantGrade {
	g := CombatantGrade{
		Name:            pt.Name,
		Side:            pt.Side,
		Survived:        pt.Survived,
		Fled:            pt.Fled,
		Turns:           pt.Turns,
		DamageDealt:     pt.DamageDealt,
		DamageTaken:     pt.DamageTaken,
		Kills:           pt.Kills,
		OffenseScore:    -1,
		DurabilityScore: -1,
		DecisionScore:   -1,
	}

	// --- Offense: share of the side's damage plus kills ---
	if pt.Turns >= perfMinTurnsToGrade {
		s := 40.0
		s += 40.0 * perfFrac(pt.DamageDealt, sideDamage)
		s += math.Min(perfKillScoreCap, perfKillScore*float64(pt.Kills))
		if pt.Strikes == 0 {
			s -= 20
		}
		g.OffenseScore = perfClamp(s)
	}

	// --- Durability: health kept ---
	if pt.StartHealth > 0 {
		s := 30.0
		s += 70.0 * (1.0 - perfFrac(pt.DamageTaken, pt.StartHealth))
		g.DurabilityScore = perfClamp(s)
	}

	// --- Decisions: hesitation at the menu ---
	if pt.Turns >= perfMinTurnsToGrade {
		s := 80.0
		s -= 10.0 * float64(pt.Undos) / float64(pt.Turns)
		if pt.Fled {
			s -= 30
		}
		g.DecisionScore = perfClamp(s)
	}

	type scoredWeight struct {
		score  float64
		weight float64
	}
	var items []scoredWeight
	if g.OffenseScore >= 0 {
		items = append(items, scoredWeight{g.OffenseScore, 0.5})
	}
	if g.DurabilityScore >= 0 {
		items = append(items, scoredWeight{g.DurabilityScore, 0.3})
	}
	if g.DecisionScore >= 0 {
		items = append(items, scoredWeight{g.DecisionScore, 0.2})
	}
	if len(items) > 0 {
		totalW, totalS := 0.0, 0.0
		for _, it := range items {
			totalW += it.weight
			totalS += it.score * it.weight
		}
		g.Score = totalS / totalW
	} else {
		g.Score = 50
	}
	if pt.Survived {
		g.Score = math.Min(100, g.Score+perfSurvivalBonus)
	}

	g.Grade = PerfLetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = perfDetectTraits(pt, sideDamage)
	return g
}

// ---------------------------------------------------------------------------
// Trait detection
// ---------------------------------------------------------------------------

func perfDetectTraits(pt *PerfTracker, sideDamage int) (good, bad []string) {
	if pt.Kills >= perfFinisherKills {
		good = append(good, "finisher")
	}
	if sideDamage > 0 && perfFrac(pt.DamageDealt, sideDamage) >= perfHeavyHitShare && pt.Strikes > 1 {
		good = append(good, "carried_the_side")
	}
	if pt.DamageTaken == 0 && pt.Turns >= perfUntouchedMinTurn {
		good = append(good, "untouched")
	}

	if pt.Undos >= perfIndecisiveUndos {
		bad = append(bad, "indecisive")
	}
	if pt.Fled {
		bad = append(bad, "fled")
	}
	if !pt.Survived && pt.DamageDealt == 0 {
		bad = append(bad, "fell_without_a_blow")
	}
	if pt.Turns > 0 && pt.Strikes == 0 && !pt.Fled {
		bad = append(bad, "passive")
	}
	return good, bad
}

// ---------------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------------

// FormatGrades returns a human-readable performance report.
func FormatGrades(grades []CombatantGrade) string {
	var sb strings.Builder
	sb.WriteString("\n=== Combatant Performance Grades ===\n")

	currentSide := battle.Side(-1)
	for _, g := range grades {
		if g.Side != currentSide {
			currentSide = g.Side
			fmt.Fprintf(&sb, "\n--- %s side ---\n", strings.ToUpper(g.Side.String()))
		}

		status := "survived"
		switch {
		case g.Fled:
			status = "fled"
		case !g.Survived:
			status = "KO"
		}
		fmt.Fprintf(&sb, "  %-3s  %-8s  [%s]  turns=%d  dealt=%d  taken=%d  kills=%d\n",
			g.Grade, g.Name, status, g.Turns, g.DamageDealt, g.DamageTaken, g.Kills)

		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}

		var scores []string
		if g.OffenseScore >= 0 {
			scores = append(scores, fmt.Sprintf("Offense=%.0f", g.OffenseScore))
		}
		if g.DurabilityScore >= 0 {
			scores = append(scores, fmt.Sprintf("Durability=%.0f", g.DurabilityScore))
		}
		if g.DecisionScore >= 0 {
			scores = append(scores, fmt.Sprintf("Decisions=%.0f", g.DecisionScore))
		}
		if len(scores) > 0 {
			fmt.Fprintf(&sb, "       Scores: %s\n", strings.Join(scores, "  "))
		}
	}
	return sb.String()
}

// FormatGradesSummary returns a compact per-side summary.
func FormatGradesSummary(grades []CombatantGrade) string {
	var sb strings.Builder

	type sideStats struct {
		count     int
		scoreSum  float64
		survived  int
		goodCount map[string]int
		badCount  map[string]int
	}
	sides := map[battle.Side]*sideStats{}
	for _, g := range grades {
		ss, ok := sides[g.Side]
		if !ok {
			ss = &sideStats{goodCount: map[string]int{}, badCount: map[string]int{}}
			sides[g.Side] = ss
		}
		ss.count++
		ss.scoreSum += g.Score
		if g.Survived {
			ss.survived++
		}
		for _, t := range g.GoodTraits {
			ss.goodCount[t]++
		}
		for _, t := range g.BadTraits {
			ss.badCount[t]++
		}
	}

	for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
		ss, ok := sides[side]
		if !ok {
			continue
		}
		avg := ss.scoreSum / float64(ss.count)
		fmt.Fprintf(&sb, "  %s: avg_score=%.1f (%s)  survived=%d/%d\n",
			strings.ToUpper(side.String()), avg, PerfLetterGrade(avg), ss.survived, ss.count)
		if len(ss.goodCount) > 0 {
			fmt.Fprintf(&sb, "    Top good: %s\n", perfTopTraits(ss.goodCount, 4))
		}
		if len(ss.badCount) > 0 {
			fmt.Fprintf(&sb, "    Top bad:  %s\n", perfTopTraits(ss.badCount, 4))
		}
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
