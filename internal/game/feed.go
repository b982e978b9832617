package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Battle-Sense/internal/battle"
)

const (
	feedPanelWidth = 340
	feedCapacity   = 80
	feedLineHeight = 14
)

// FeedEntry is a single line in the battle feed.
type FeedEntry struct {
	Tick    int
	Actor   string
	Side    battle.Side
	Message string
}

// Feed is a ring buffer of battle narration rendered beside the arena.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	cancels []func()
}

func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedCapacity)}
}

func (f *Feed) Add(tick int, actor string, side battle.Side, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Actor: actor, Side: side, Message: msg}
	f.head = (f.head + 1) % feedCapacity
	if f.count < feedCapacity {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := range f.count {
		out[i] = f.entries[(f.head-f.count+i+feedCapacity)%feedCapacity]
	}
	return out
}

func (f *Feed) Len() int { return f.count }

// Attach narrates turns, strikes and the outcome from events. clock stamps
// each line.
func (f *Feed) Attach(events *battle.Events, clock func() int) {
	f.Detach()
	f.cancels = append(f.cancels,
		events.TurnStarted.Subscribe(func(c battle.Combatant) {
			f.Add(clock(), c.Name(), c.Side(), fmt.Sprintf("turn (hp %d)", c.Health()))
		}),
		events.ActionResolved.Subscribe(func(r battle.Resolution) {
			if r.Attacker == nil || r.Defender == nil {
				return
			}
			f.Add(clock(), r.Attacker.Name(), r.Attacker.Side(),
				fmt.Sprintf("%s -> %s for %d", r.Label, r.Defender.Name(), r.Damage))
			if r.Defeated {
				f.Add(clock(), r.Defender.Name(), r.Defender.Side(), "is defeated")
			}
		}),
		events.OutcomeDecided.Subscribe(func(r battle.Result) {
			f.Add(clock(), "--", battle.SideNeutral, fmt.Sprintf("%s: %s", r.Outcome, r.Description))
		}),
	)
}

func (f *Feed) Detach() {
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
}

func sideColor(s battle.Side) color.RGBA {
	switch s {
	case battle.SidePlayer:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	case battle.SideEnemy:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 180, G: 180, B: 120, A: 255}
	}
}

// Draw renders the feed panel at panelX, newest line at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE FEED", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const recent = 3

	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %-7s %s", e.Tick, e.Actor, e.Message), panelX+12, y-1)
		y += feedLineHeight
	}
}
