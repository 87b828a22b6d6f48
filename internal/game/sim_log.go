package game

import (
	"fmt"
	"strings"
)

// GenLogEntry is one recorded counter or event from landscape generation.
type GenLogEntry struct {
	Seed   int64
	Phase  string  // nuclei, expand, altitude, bridge, slope, distribute
	Key    string  // specific counter within the phase
	Value  string  // human-readable detail
	NumVal float64 // numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[seed=42] altitude   peak            9
func (e GenLogEntry) String() string {
	return fmt.Sprintf("[seed=%d] %-10s %-15s %s", e.Seed, e.Phase, e.Key, e.Value)
}

// GenLog collects structured entries across one or more generations.
// It is unbounded and meant for reports and tests.
type GenLog struct {
	entries []GenLogEntry
}

// NewGenLog creates an empty GenLog.
func NewGenLog() *GenLog {
	return &GenLog{}
}

// Add records a new entry.
func (gl *GenLog) Add(seed int64, phase, key, value string, numVal float64) {
	if gl == nil {
		return
	}
	gl.entries = append(gl.entries, GenLogEntry{
		Seed:   seed,
		Phase:  phase,
		Key:    key,
		Value:  value,
		NumVal: numVal,
	})
}

// Count records a numeric counter with its value as detail.
func (gl *GenLog) Count(seed int64, phase, key string, n int) {
	gl.Add(seed, phase, key, fmt.Sprintf("%d", n), float64(n))
}

// Entries returns all recorded entries.
func (gl *GenLog) Entries() []GenLogEntry {
	return gl.entries
}

// Filter returns entries matching phase and/or key. Empty matches anything.
func (gl *GenLog) Filter(phase, key string) []GenLogEntry {
	var out []GenLogEntry
	for _, e := range gl.entries {
		if phase != "" && e.Phase != phase {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSeed returns the entries of one generation.
func (gl *GenLog) FilterSeed(seed int64) []GenLogEntry {
	var out []GenLogEntry
	for _, e := range gl.entries {
		if e.Seed == seed {
			out = append(out, e)
		}
	}
	return out
}

// CountPhase returns how many entries match phase and key.
func (gl *GenLog) CountPhase(phase, key string) int {
	return len(gl.Filter(phase, key))
}

// LastOf returns the most recent entry matching phase+key.
func (gl *GenLog) LastOf(phase, key string) (GenLogEntry, bool) {
	entries := gl.Filter(phase, key)
	if len(entries) == 0 {
		return GenLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether some entry matches phase, key and value substring.
func (gl *GenLog) HasEntry(phase, key, valueSubstr string) bool {
	for _, e := range gl.entries {
		if phase != "" && e.Phase != phase {
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

// Format returns the full log as one string for t.Log output.
func (gl *GenLog) Format() string {
	var sb strings.Builder
	for _, e := range gl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
