package game

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Battle-Sense/internal/battle"
	"github.com/Garsondee/Battle-Sense/internal/roster"
	"github.com/Garsondee/Battle-Sense/internal/sim"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	arenaWidth   = screenWidth - feedPanelWidth

	// Frames between battle ticks at 1x.
	baseFramesPerTick = 12
)

// Options configures a Game. Zero values pick the default scenario, seed 1
// and a quiet logger.
type Options struct {
	Scenario *roster.Scenario
	Seed     int64
	Logger   *slog.Logger
}

// Game is the interactive battle screen. The human drives player commands
// from the keyboard; enemy commanders are answered by the autopilot.
type Game struct {
	opts Options
	seed int64

	session *sim.Sim
	feed    *Feed
	cancels []func()

	offer     battle.CommandOffer
	cursor    int
	targetIdx int
	status    string

	// autoPlayers hands player turns to the autopilot too.
	autoPlayers bool
	showHUD     bool
	prevKeys    map[ebiten.Key]bool

	simSpeed   float64 // 0=paused, 0.5, 1, 2, 4
	frameAccum float64

	face     *text.GoXFace
	copyText func(string) error
}

func New(opts Options) (*Game, error) {
	if opts.Scenario == nil {
		opts.Scenario = roster.DefaultScenario()
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Game{
		opts:     opts,
		seed:     opts.Seed,
		feed:     NewFeed(),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1,
		face:     text.NewGoXFace(basicfont.Face7x13),
		copyText: clipboard.WriteAll,
	}
	if err := g.startSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// startSession builds a fresh battle from the scenario with the current seed.
func (g *Game) startSession() error {
	g.endSession()
	s, err := sim.NewSim(
		sim.WithSeed(g.seed),
		sim.WithLogger(g.opts.Logger),
		sim.WithRates(0.4, 0, 0),
		sim.WithScenario(g.opts.Scenario),
	)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	g.session = s
	o := s.Orchestrator
	g.feed.Attach(o.Events(), o.Ticks)
	g.cancels = append(g.cancels, o.Events().CommandsAvailable.Subscribe(g.onOffer))
	g.offer = battle.CommandOffer{}
	g.cursor, g.targetIdx = 0, 0
	g.feed.Add(0, "--", battle.SideNeutral, fmt.Sprintf("%s (seed %d)", g.opts.Scenario.Name, g.seed))
	if err := s.Start(); err != nil {
		return fmt.Errorf("start battle: %w", err)
	}
	g.status = "battle started"
	return nil
}

func (g *Game) endSession() {
	for _, cancel := range g.cancels {
		cancel()
	}
	g.cancels = nil
	g.feed.Detach()
	if g.session != nil {
		g.session.Close()
		g.session = nil
	}
}

func (g *Game) onOffer(co battle.CommandOffer) {
	g.offer = co
	if g.cursor >= len(co.Commands) {
		g.cursor = 0
	}
	if co.Menu == battle.MenuTargetSelection {
		g.targetIdx = 0
	}
}

// Session exposes the running battle harness.
func (g *Game) Session() *sim.Sim { return g.session }

// Offer is the menu currently shown.
func (g *Game) Offer() battle.CommandOffer { return g.offer }

// humanTurn reports whether the current offer waits on the keyboard.
func (g *Game) humanTurn() bool {
	if g.autoPlayers || len(g.offer.Commands) == 0 || g.offer.Actor == nil {
		return false
	}
	return g.offer.Actor.Side() == battle.SidePlayer
}

// targets lists who the active actor can strike.
func (g *Game) targets() []battle.Combatant {
	ctx := g.session.Orchestrator.Context()
	if ctx == nil || g.offer.Actor == nil {
		return nil
	}
	return ctx.LivingOpponents(g.offer.Actor)
}

func (g *Game) selectedTarget() battle.Combatant {
	ts := g.targets()
	if len(ts) == 0 {
		return nil
	}
	return ts[g.targetIdx%len(ts)]
}

func (g *Game) moveCursor(delta int) {
	n := len(g.offer.Commands)
	if n == 0 || !g.humanTurn() {
		return
	}
	g.cursor = ((g.cursor+delta)%n + n) % n
}

func (g *Game) cycleTarget(delta int) {
	n := len(g.targets())
	if n == 0 {
		return
	}
	g.targetIdx = ((g.targetIdx+delta)%n + n) % n
}

// confirm runs the highlighted command against the highlighted target.
func (g *Game) confirm() bool {
	if !g.humanTurn() {
		return false
	}
	cmd := g.offer.Commands[g.cursor]
	actor := g.offer.Actor
	if !g.session.Orchestrator.ExecuteCommand(cmd, g.selectedTarget()) {
		g.status = fmt.Sprintf("%s: %s not possible now", actor.Name(), cmd.Label())
		return false
	}
	g.status = fmt.Sprintf("%s: %s", actor.Name(), cmd.Label())
	g.cursor = 0
	return true
}

func (g *Game) undo() bool {
	if !g.humanTurn() {
		return false
	}
	actor := g.offer.Actor
	if !g.session.Orchestrator.UndoLastCommand() {
		g.status = "nothing to undo"
		return false
	}
	g.session.Recorder.NoteUndo(actor)
	g.feed.Add(g.session.Orchestrator.Ticks(), actor.Name(), actor.Side(), "takes it back")
	g.status = actor.Name() + ": undo"
	return true
}

// restart replays the scenario with the next seed.
func (g *Game) restart() error {
	g.seed++
	return g.startSession()
}

func (g *Game) copyLog() {
	if err := g.copyText(g.session.Log.Format()); err != nil {
		g.status = "copy failed: " + err.Error()
		return
	}
	g.status = fmt.Sprintf("copied %d log lines", g.session.Log.Len())
}

// step ticks the battle once, letting the autopilot answer first when the
// pending offer is not the human's.
func (g *Game) step() error {
	o := g.session.Orchestrator
	if o.Done() {
		return nil
	}
	if !g.humanTurn() {
		g.session.Pilot.Step()
	}
	if err := o.Tick(); err != nil {
		return err
	}
	if r, ok := o.Result(); ok {
		g.status = fmt.Sprintf("%s after %d turns  [R] rematch", r.Outcome, r.Turns)
	}
	return nil
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.simSpeed <= 0 {
		return nil
	}
	g.frameAccum += g.simSpeed
	for g.frameAccum >= baseFramesPerTick {
		g.frameAccum -= baseFramesPerTick
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}
