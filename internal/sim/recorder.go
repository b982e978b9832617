package sim

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Battle-Sense/internal/battle"
)

// Recorder turns an orchestrator's events into BattleLog entries and
// per-combatant PerfTrackers.
type Recorder struct {
	log      *BattleLog
	trackers map[string]*PerfTracker
	seen     map[string]battle.Combatant
	clock    func() int
	cancels  []func()
	result   *battle.Result
}

// NewRecorder records into log, stamping entries with clock().
func NewRecorder(log *BattleLog, clock func() int) *Recorder {
	if log == nil {
		log = NewBattleLog(false)
	}
	if clock == nil {
		clock = func() int { return 0 }
	}
	return &Recorder{
		log:      log,
		trackers: map[string]*PerfTracker{},
		seen:     map[string]battle.Combatant{},
		clock:    clock,
	}
}

// Attach subscribes to every signal on events. Calling Attach again first
// detaches.
func (r *Recorder) Attach(events *battle.Events) {
	r.Detach()
	r.cancels = append(r.cancels,
		events.RosterChanged.Subscribe(r.onRoster),
		events.PhaseChanged.Subscribe(r.onPhase),
		events.TurnStarted.Subscribe(r.onTurnStarted),
		events.TurnEnded.Subscribe(r.onTurnEnded),
		events.MenuStateChanged.Subscribe(r.onMenu),
		events.CommandsAvailable.Subscribe(r.onOffer),
		events.TurnEnding.Subscribe(r.onTurnEnding),
		events.ActionResolved.Subscribe(r.onStrike),
		events.OutcomeDecided.Subscribe(r.onOutcome),
	)
}

func (r *Recorder) Detach() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
}

func (r *Recorder) Log() *BattleLog { return r.log }

// Result returns the recorded outcome once the battle has ended.
func (r *Recorder) Result() (battle.Result, bool) {
	if r.result == nil {
		return battle.Result{}, false
	}
	return *r.result, true
}

// Tracker returns the tracker for a combatant name.
func (r *Recorder) Tracker(name string) (*PerfTracker, bool) {
	pt, ok := r.trackers[name]
	return pt, ok
}

// Grades finalizes every tracker against its combatant and grades it.
func (r *Recorder) Grades() []CombatantGrade {
	for name, c := range r.seen {
		r.trackers[name].Finalize(c)
	}
	return GradePerformance(r.trackers)
}

// NoteUndo counts an undo against the actor. Undo has no battle event, so
// the caller that performed it reports it.
func (r *Recorder) NoteUndo(actor battle.Combatant) {
	if actor == nil {
		return
	}
	r.tracker(actor).Undos++
	r.add(actor, "command", "undo", "undo last command", 0)
}

func (r *Recorder) tracker(c battle.Combatant) *PerfTracker {
	pt, ok := r.trackers[c.Name()]
	if !ok {
		pt = NewPerfTracker(c)
		r.trackers[c.Name()] = pt
		r.seen[c.Name()] = c
	}
	return pt
}

func (r *Recorder) add(c battle.Combatant, category, key, value string, num float64) {
	actor, side := "--", "--"
	if c != nil {
		actor, side = c.Name(), c.Side().String()
	}
	r.log.Add(r.clock(), actor, side, category, key, value, num)
}

func (r *Recorder) onRoster(list []battle.Combatant) {
	names := make([]string, 0, len(list))
	for _, c := range list {
		r.tracker(c)
		names = append(names, c.Name())
	}
	r.add(nil, "roster", "changed", strings.Join(names, ","), float64(len(list)))
}

func (r *Recorder) onPhase(pc battle.PhaseChange) {
	r.add(nil, "phase", "change", fmt.Sprintf("%s → %s", pc.From, pc.To), 0)
}

func (r *Recorder) onTurnStarted(c battle.Combatant) {
	r.tracker(c).Turns++
	r.add(c, "turn", "start", fmt.Sprintf("hp=%d", c.Health()), float64(c.Health()))
}

func (r *Recorder) onTurnEnded(c battle.Combatant) {
	r.add(c, "turn", "end", "", 0)
}

func (r *Recorder) onMenu(m battle.MenuState) {
	r.add(nil, "menu", "change", m.String(), 0)
}

func (r *Recorder) onOffer(o battle.CommandOffer) {
	if len(o.Commands) == 0 {
		r.log.AddVerbose(r.clock(), nameOr(o.Actor), sideOr(o.Actor), "command", "hidden", "", 0)
		return
	}
	labels := make([]string, 0, len(o.Commands))
	for _, c := range o.Commands {
		labels = append(labels, c.Label())
	}
	r.log.AddVerbose(r.clock(), nameOr(o.Actor), sideOr(o.Actor), "command", "offer",
		fmt.Sprintf("%s: %s", o.Menu, strings.Join(labels, ", ")), float64(len(o.Commands)))
}

func (r *Recorder) onTurnEnding(cmd battle.Command) {
	r.add(nil, "command", "commit", cmd.ID(), 0)
}

func (r *Recorder) onStrike(res battle.Resolution) {
	if res.Attacker == nil || res.Defender == nil {
		return
	}
	r.tracker(res.Attacker).recordStrike(res)
	r.tracker(res.Defender).DamageTaken += res.Damage
	r.add(res.Attacker, "strike", "hit",
		fmt.Sprintf("%s on %s for %d", res.Label, res.Defender.Name(), res.Damage), float64(res.Damage))
	if res.Defeated {
		r.add(res.Defender, "strike", "defeated", "by "+res.Attacker.Name(), 0)
	}
}

func (r *Recorder) onOutcome(res battle.Result) {
	r.result = &res
	if res.Fled {
		for _, pt := range r.trackers {
			if pt.Name == res.FledBy {
				pt.Fled = true
			}
		}
	}
	r.add(nil, "outcome", "decided", fmt.Sprintf("%s %s", res.Outcome, res.Description), float64(res.Turns))
}

func nameOr(c battle.Combatant) string {
	if c == nil {
		return "--"
	}
	return c.Name()
}

func sideOr(c battle.Combatant) string {
	if c == nil {
		return "--"
	}
	return c.Side().String()
}
