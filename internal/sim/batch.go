package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/roster"
)

// BatchConfig describes a set of independent seeded battles.
type BatchConfig struct {
	Runs     int
	SeedBase int64
	SeedStep int64
	Scenario *roster.Scenario
	Sim      Config
	Logger   *slog.Logger
}

// RunReport is the outcome of one battle in a batch.
type RunReport struct {
	Index    int
	Seed     int64
	Finished bool
	Result   battle.Result
	Grades   []CombatantGrade

	Strikes      int
	Undos        int
	Defeats      int
	FirstBlood   int // tick of the first defeat, -1 if none
	CommandCount int
}

// RunBatch plays bc.Runs battles, at most bc.Sim.Workers at a time. Each
// battle owns its orchestrator and roster. Reports come back in run order.
func RunBatch(ctx context.Context, bc BatchConfig) ([]RunReport, error) {
	if bc.Runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be > 0, got %d", ErrInvalidConfig, bc.Runs)
	}
	if err := bc.Sim.Validate(); err != nil {
		return nil, err
	}
	if bc.Scenario == nil {
		bc.Scenario = roster.DefaultScenario()
	}
	if bc.SeedStep == 0 {
		bc.SeedStep = 1
	}

	reports := make([]RunReport, bc.Runs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(bc.Sim.Workers)
	for i := range bc.Runs {
		seed := bc.SeedBase + int64(i)*bc.SeedStep
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := runOne(i+1, seed, bc)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i+1, seed, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func runOne(index int, seed int64, bc BatchConfig) (RunReport, error) {
	cfg := bc.Sim
	cfg.Seed = seed
	opts := []SimOption{WithConfig(cfg), WithScenario(bc.Scenario)}
	if bc.Logger != nil {
		opts = append(opts, WithLogger(bc.Logger.With("run", index, "seed", seed)))
	}
	s, err := NewSim(opts...)
	if err != nil {
		return RunReport{}, err
	}
	defer s.Close()

	rep := RunReport{Index: index, Seed: seed}
	res, err := s.Run()
	switch {
	case err == nil:
		rep.Finished = true
		rep.Result = res
	case errors.Is(err, ErrTickLimit):
	default:
		return RunReport{}, err
	}
	rep.Grades = s.Grades()
	rep.Strikes = s.Log.Count("strike", "hit")
	rep.Defeats = s.Log.Count("strike", "defeated")
	rep.Undos = s.Log.Count("command", "undo")
	rep.CommandCount = s.Log.Count("command", "commit")
	rep.FirstBlood = s.Log.FirstTick("strike", "defeated", "")
	return rep, nil
}

// Summary aggregates a batch.
type Summary struct {
	Runs       int
	Victories  int
	Defeats    int
	Draws      int
	Fled       int
	Unfinished int

	AvgTurns      float64
	AvgTicks      float64
	AvgStrikes    float64
	AvgUndos      float64
	AvgFirstBlood float64 // over runs with a defeat; -1 if none had one
}

func Summarize(reports []RunReport) Summary {
	s := Summary{Runs: len(reports), AvgFirstBlood: -1}
	if len(reports) == 0 {
		return s
	}
	var turns, ticks, strikes, undos, blood, bloodRuns int
	for _, r := range reports {
		strikes += r.Strikes
		undos += r.Undos
		if r.FirstBlood >= 0 {
			blood += r.FirstBlood
			bloodRuns++
		}
		if !r.Finished {
			s.Unfinished++
			continue
		}
		turns += r.Result.Turns
		ticks += r.Result.Ticks
		switch {
		case r.Result.Fled:
			s.Fled++
		case r.Result.Outcome == battle.OutcomeVictory:
			s.Victories++
		case r.Result.Outcome == battle.OutcomeDefeat:
			s.Defeats++
		case r.Result.Outcome == battle.OutcomeDraw:
			s.Draws++
		}
	}
	n := float64(len(reports))
	if finished := len(reports) - s.Unfinished; finished > 0 {
		s.AvgTurns = float64(turns) / float64(finished)
		s.AvgTicks = float64(ticks) / float64(finished)
	}
	s.AvgStrikes = float64(strikes) / n
	s.AvgUndos = float64(undos) / n
	if bloodRuns > 0 {
		s.AvgFirstBlood = float64(blood) / float64(bloodRuns)
	}
	return s
}
