package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/config"
	"github.com/Garsondee/Battle-Sense/internal/roster"
	"github.com/Garsondee/Battle-Sense/internal/sim"
)

// A finished battle this long with this few defeats reads as a grind.
const (
	grindMinTurns   = 40
	grindMaxDefeats = 1
)

func main() {
	cfg, err := sim.LoadConfig()
	if err != nil {
		config.Exitf("error: %v", err)
	}

	var runs int
	var seedStep int64
	var showGrades bool
	flag.IntVar(&runs, "runs", 5, "number of headless battles")
	flag.IntVar(&cfg.MaxTicks, "ticks", cfg.MaxTicks, "tick limit per battle")
	flag.Int64Var(&cfg.Seed, "seed-base", cfg.Seed, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario YAML file (default: built-in skirmish)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "battles run in parallel")
	flag.Float64Var(&cfg.WeaponRate, "weapon-rate", cfg.WeaponRate, "autopilot chance of using the weapon menu")
	flag.Float64Var(&cfg.UndoRate, "undo-rate", cfg.UndoRate, "autopilot chance of undoing a staged choice")
	flag.Float64Var(&cfg.FleeRate, "flee-rate", cfg.FleeRate, "autopilot chance of fleeing")
	flag.BoolVar(&showGrades, "grades", true, "print per-run combatant grades")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		config.Exitf("error: %v", err)
	}

	scenario := roster.DefaultScenario()
	if cfg.Scenario != "" {
		if scenario, err = roster.LoadScenario(cfg.Scenario); err != nil {
			config.Exitf("error: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := sim.RunBatch(ctx, sim.BatchConfig{
		Runs:     runs,
		SeedBase: cfg.Seed,
		SeedStep: seedStep,
		Scenario: scenario,
		Sim:      cfg,
		Logger:   config.NewLogger(os.Stderr, cfg.LogLevel),
	})
	if err != nil {
		config.Exitf("error: %v", err)
	}

	out := message.NewPrinter(language.English)
	out.Printf("=== Headless Battle Report ===\n")
	out.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d\n\n",
		scenario.Name, runs, cfg.MaxTicks, cfg.Seed, seedStep, cfg.Workers)
	for _, rep := range reports {
		printRun(os.Stdout, rep, showGrades)
	}
	printAggregate(os.Stdout, reports)
}

func printRun(w io.Writer, rep sim.RunReport, showGrades bool) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rep.Index, rep.Seed)
	if rep.Finished {
		r := rep.Result
		fmt.Fprintf(w, "result: outcome=%s description=%s turns=%d ticks=%d\n",
			r.Outcome, r.Description, r.Turns, r.Ticks)
		fmt.Fprintf(w, "survivors: player=%d/%d enemy=%d/%d\n",
			r.PlayerSurvivors, r.PlayerTotal, r.EnemySurvivors, r.EnemyTotal)
	} else {
		fmt.Fprintln(w, "result: unfinished (tick limit)")
	}
	fmt.Fprintf(w, "event_totals: strikes=%d defeats=%d undos=%d commits=%d first_blood=%s\n",
		rep.Strikes, rep.Defeats, rep.Undos, rep.CommandCount, tickString(rep.FirstBlood))
	if grind, reason := detectGrind(rep); grind {
		fmt.Fprintf(w, "grind: %s\n", reason)
	}
	if showGrades {
		fmt.Fprint(w, sim.FormatGrades(rep.Grades))
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, reports []sim.RunReport) {
	s := sim.Summarize(reports)
	p := message.NewPrinter(language.English)

	fmt.Fprintln(w, "=== Aggregate ===")
	p.Fprintf(w, "runs=%d victories=%d defeats=%d draws=%d fled=%d unfinished=%d\n",
		s.Runs, s.Victories, s.Defeats, s.Draws, s.Fled, s.Unfinished)
	p.Fprintf(w, "avg_per_finished_run: turns=%.1f ticks=%.1f\n", s.AvgTurns, s.AvgTicks)
	p.Fprintf(w, "avg_per_run: strikes=%.1f undos=%.1f first_blood=%s\n",
		s.AvgStrikes, s.AvgUndos, avgTickString(s.AvgFirstBlood))

	grinds := 0
	for _, rep := range reports {
		if grind, _ := detectGrind(rep); grind {
			grinds++
		}
	}
	fmt.Fprintf(w, "grinds=%d\n", grinds)

	type combatantAgg struct {
		scoreSum float64
		count    int
		survived int
		good     map[string]int
		bad      map[string]int
	}
	aggs := map[string]*combatantAgg{}
	var all []sim.CombatantGrade
	for _, rep := range reports {
		all = append(all, rep.Grades...)
		for _, g := range rep.Grades {
			ag, ok := aggs[g.Name]
			if !ok {
				ag = &combatantAgg{good: map[string]int{}, bad: map[string]int{}}
				aggs[g.Name] = ag
			}
			ag.scoreSum += g.Score
			ag.count++
			if g.Survived {
				ag.survived++
			}
			for _, t := range g.GoodTraits {
				ag.good[t]++
			}
			for _, t := range g.BadTraits {
				ag.bad[t]++
			}
		}
	}

	fmt.Fprintln(w, "\n=== Aggregate Combatant Performance ===")
	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ag := aggs[name]
		avgScore := ag.scoreSum / float64(ag.count)
		fmt.Fprintf(w, "  %-12s %s (avg=%.1f)  survival=%.0f%%", name, sim.PerfLetterGrade(avgScore), avgScore,
			float64(ag.survived)/float64(ag.count)*100)
		if t := topTrait(ag.good); t != "" {
			fmt.Fprintf(w, "  good=%s", t)
		}
		if t := topTrait(ag.bad); t != "" {
			fmt.Fprintf(w, "  bad=%s", t)
		}
		fmt.Fprintln(w)
	}

	if len(all) > 0 {
		player, enemy, playerAlive, enemyAlive := sideSurvivalCounts(all)
		fmt.Fprintln(w, "\n--- Side Summary (across all runs) ---")
		fmt.Fprintf(w, "  survival: player=%d/%d enemy=%d/%d\n", playerAlive, player, enemyAlive, enemy)
		fmt.Fprint(w, sim.FormatGradesSummary(all))
	}
}

// sideSurvivalCounts totals combatants and survivors per side.
func sideSurvivalCounts(grades []sim.CombatantGrade) (playerTotal, enemyTotal, playerAlive, enemyAlive int) {
	for _, g := range grades {
		switch g.Side {
		case battle.SidePlayer:
			playerTotal++
			if g.Survived {
				playerAlive++
			}
		case battle.SideEnemy:
			enemyTotal++
			if g.Survived {
				enemyAlive++
			}
		}
	}
	return playerTotal, enemyTotal, playerAlive, enemyAlive
}

// detectGrind flags battles that ran out the clock or dragged on with
// almost nobody falling.
func detectGrind(rep sim.RunReport) (bool, string) {
	if !rep.Finished {
		return true, "tick_limit_reached"
	}
	if rep.Result.Fled {
		return false, "fled"
	}
	var reasons []string
	if rep.Result.Turns >= grindMinTurns {
		reasons = append(reasons, fmt.Sprintf("long_fight(turns=%d)", rep.Result.Turns))
	}
	if rep.Defeats <= grindMaxDefeats {
		reasons = append(reasons, fmt.Sprintf("low_attrition(defeats=%d)", rep.Defeats))
	}
	if len(reasons) < 2 {
		return false, strings.Join(reasons, ",")
	}
	return true, strings.Join(reasons, ",")
}

func tickString(tick int) string {
	if tick < 0 {
		return "n/a"
	}
	return fmt.Sprint(tick)
}

func avgTickString(v float64) string {
	if v < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func topTrait(counts map[string]int) string {
	best, bestN := "", 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best, bestN = k, v
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}
