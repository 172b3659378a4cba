package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits every scope up to
// its widest one.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only crash dumps of the ring
	LevelPhase        // driver + pass boundaries
	LevelDetail       // + one span per assertion site
	LevelDebug        // + node-level wrap points
)

var levels = [...]struct {
	name  string
	scope Scope // самый мелкий допустимый scope; 0 — ничего
}{
	LevelOff:    {"off", 0},
	LevelError:  {"error", 0},
	LevelPhase:  {"phase", ScopePass},
	LevelDetail: {"detail", ScopeSite},
	LevelDebug:  {"debug", ScopeNode},
}

func (l Level) String() string {
	if int(l) < len(levels) {
		return levels[l].name
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, info := range levels {
		if info.name == s {
			return Level(l), nil //nolint:gosec // index of a five-element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levels) {
		return false
	}
	return scope != 0 && scope <= levels[l].scope
}
