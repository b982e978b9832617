package sim

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/roster"
)

// ErrTickLimit is returned by Run when the battle outlives MaxTicks.
var ErrTickLimit = errors.New("tick limit reached")

// Sim is a headless battle harness: an orchestrator, an autopilot at the
// menu and a recorder, advanced one tick at a time with deterministic
// seeding.
type Sim struct {
	Orchestrator *battle.Orchestrator
	Log          *BattleLog
	Recorder     *Recorder
	Pilot        *Autopilot
	Seed         int64
	MaxTicks     int

	players    []battle.Combatant
	enemies    []battle.Combatant
	logger     *slog.Logger
	verbose    bool
	weaponRate float64
	undoRate   float64
	fleeRate   float64
	rng        *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, logger, verbose, limits: applied first
	simOptRoster                      // combatants: applied after the orchestrator exists
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Seed = seed
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation
	}}
}

func WithLogger(l *slog.Logger) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.logger = l }}
}

// WithVerbose also records every command offer in the battle log.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.verbose = v }}
}

func WithMaxTicks(n int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.MaxTicks = n }}
}

// WithRates sets the autopilot's weapon, undo and flee probabilities.
func WithRates(weapon, undo, flee float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.weaponRate, s.undoRate, s.fleeRate = weapon, undo, flee
	}}
}

// WithConfig applies the seed, tick limit and rates from cfg.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		WithSeed(cfg.Seed).fn(s)
		WithRates(cfg.WeaponRate, cfg.UndoRate, cfg.FleeRate).fn(s)
		s.MaxTicks = cfg.MaxTicks
	}}
}

// WithScenario builds a fresh roster from sc.
func WithScenario(sc *roster.Scenario) SimOption {
	return SimOption{simOptRoster, func(s *Sim) {
		s.players, s.enemies = sc.Build()
	}}
}

func WithPlayers(cs ...battle.Combatant) SimOption {
	return SimOption{simOptRoster, func(s *Sim) { s.players = append(s.players, cs...) }}
}

func WithEnemies(cs ...battle.Combatant) SimOption {
	return SimOption{simOptRoster, func(s *Sim) { s.enemies = append(s.enemies, cs...) }}
}

// NewSim builds a Sim in two passes: infrastructure, then roster. With no
// roster option the default scenario is used. A Sim is quiet unless given a
// logger.
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		Seed:       1,
		MaxTicks:   2000,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		weaponRate: 0.5,
		rng:        rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}

	o, err := battle.New(battle.Config{Logger: s.logger})
	if err != nil {
		return nil, fmt.Errorf("new orchestrator: %w", err)
	}
	s.Orchestrator = o
	s.Log = NewBattleLog(s.verbose)
	s.Recorder = NewRecorder(s.Log, o.Ticks)
	s.Recorder.Attach(o.Events())
	s.Pilot = NewAutopilot(o, s.rng, s.logger)
	s.Pilot.WeaponRate, s.Pilot.UndoRate, s.Pilot.FleeRate = s.weaponRate, s.undoRate, s.fleeRate
	s.Pilot.OnUndo = s.Recorder.NoteUndo

	for _, opt := range opts {
		if opt.kind == simOptRoster {
			opt.fn(s)
		}
	}
	if len(s.players) == 0 && len(s.enemies) == 0 {
		s.players, s.enemies = roster.DefaultScenario().Build()
	}
	return s, nil
}

func (s *Sim) Players() []battle.Combatant { return s.players }
func (s *Sim) Enemies() []battle.Combatant { return s.enemies }

// Start opens the battle. Run calls it when needed.
func (s *Sim) Start() error {
	return s.Orchestrator.Start(s.players, s.enemies)
}

// Step lets the autopilot answer any pending offer, then ticks once.
func (s *Sim) Step() error {
	s.Pilot.Step()
	return s.Orchestrator.Tick()
}

// RunTicks advances n ticks or until the battle ends.
func (s *Sim) RunTicks(n int) error {
	for range n {
		if s.Orchestrator.Done() {
			return nil
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for range maxTicks {
		if err := s.Step(); err != nil {
			return -1
		}
		if predicate(s) {
			return s.Orchestrator.Ticks()
		}
	}
	return -1
}

// Run plays the battle to the end, starting it first if needed.
func (s *Sim) Run() (battle.Result, error) {
	o := s.Orchestrator
	if !o.Running() && !o.Done() {
		if err := s.Start(); err != nil {
			return battle.Result{}, err
		}
	}
	for !o.Done() && o.Ticks() < s.MaxTicks {
		if err := s.Step(); err != nil {
			return battle.Result{}, err
		}
	}
	r, ok := o.Result()
	if !ok {
		return battle.Result{}, fmt.Errorf("%w after %d ticks", ErrTickLimit, o.Ticks())
	}
	return r, nil
}

func (s *Sim) Grades() []CombatantGrade {
	return s.Recorder.Grades()
}

// Close detaches the autopilot and recorder from the orchestrator.
func (s *Sim) Close() {
	s.Pilot.Close()
	s.Recorder.Detach()
}
