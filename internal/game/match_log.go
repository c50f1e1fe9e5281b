package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded event during a match.
type MatchLogEntry struct {
	Tick     int
	Level    int
	Player   string  // colour of the player involved, or "--" for global events
	Category string  // phase, market, build, hit, destroy, turn, elim, outcome
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042 L=03] red       destroy  wall           (4,7)
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d L=%02d] %-9s %-8s %-14s %s",
		e.Tick, e.Level, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events during a match. Unlike the on-screen
// event feed it is unbounded and machine-readable.
type MatchLog struct {
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, every structure hit is
// recorded, not just destructions.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Verbose reports whether per-hit entries are recorded.
func (ml *MatchLog) Verbose() bool { return ml.verbose }

// Add records a new entry.
func (ml *MatchLog) Add(tick, level int, player, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Level:    level,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick, level int, player, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(tick, level, player, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
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

// FilterPlayer returns entries for one player colour.
func (ml *MatchLog) FilterPlayer(player string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Player == player {
			out = append(out, e)
		}
	}
	return out
}

// FilterLevel returns entries recorded while level was being played or bought for.
func (ml *MatchLog) FilterLevel(level int) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	entries := ml.Filter(category, key)
	if len(entries) == 0 {
		return MatchLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
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

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatLevel returns the log lines of one level.
func (ml *MatchLog) FormatLevel(level int) string {
	var sb strings.Builder
	for _, e := range ml.FilterLevel(level) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
