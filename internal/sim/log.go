package sim

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded battle event.
type LogEntry struct {
	Tick     int
	Actor    string  // combatant name, or "--" for battle-wide events
	Side     string  // "player", "enemy", "neutral" or "--"
	Category string  // phase, turn, menu, command, strike, roster, outcome
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=004] Aria   strike    hit             Axe on Wolf for 9
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-9s %-15s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// BattleLog collects structured events for one battle. It is unbounded and
// machine-readable; the UI keeps its own ring buffer.
type BattleLog struct {
	entries []LogEntry
	verbose bool
}

// NewBattleLog creates a log. Verbose also keeps per-offer menu listings.
func NewBattleLog(verbose bool) *BattleLog {
	return &BattleLog{verbose: verbose}
}

func (bl *BattleLog) Add(tick int, actor, side, category, key, value string, numVal float64) {
	bl.entries = append(bl.entries, LogEntry{
		Tick:     tick,
		Actor:    actor,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (bl *BattleLog) AddVerbose(tick int, actor, side, category, key, value string, numVal float64) {
	if !bl.verbose {
		return
	}
	bl.Add(tick, actor, side, category, key, value, numVal)
}

func (bl *BattleLog) Entries() []LogEntry {
	return bl.entries
}

func (bl *BattleLog) Len() int { return len(bl.entries) }

// Filter returns entries matching category and key. Empty matches anything.
func (bl *BattleLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (bl *BattleLog) FilterActor(name string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Actor == name {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (bl *BattleLog) FilterTickRange(fromTick, toTick int) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

func (bl *BattleLog) Count(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (bl *BattleLog) LastOf(category, key string) (LogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the first matching entry whose value
// contains substr, or -1.
func (bl *BattleLog) FirstTick(category, key, substr string) int {
	for _, e := range bl.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if substr == "" || strings.Contains(e.Value, substr) {
			return e.Tick
		}
	}
	return -1
}

// HasEntry reports whether an entry matches category, key and value substring.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log, one line per entry, for t.Log output.
func (bl *BattleLog) Format() string {
	return formatEntries(bl.entries)
}

func (bl *BattleLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(bl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []LogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
