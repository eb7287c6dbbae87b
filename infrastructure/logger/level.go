package logger

import "strings"

// Level is the level at which a logger is configured. Messages below the
// configured level are dropped.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

type levelNames struct {
	tag  string
	long string
}

var levels = map[Level]levelNames{
	LevelTrace:    {"TRC", "trace"},
	LevelDebug:    {"DBG", "debug"},
	LevelInfo:     {"INF", "info"},
	LevelWarn:     {"WRN", "warn"},
	LevelError:    {"ERR", "error"},
	LevelCritical: {"CRT", "critical"},
	LevelOff:      {"OFF", "off"},
}

// LevelFromString accepts both the long name ("debug") and the tag ("dbg")
// of a level, case insensitively. Unknown input returns LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for level, names := range levels {
		if s == names.long || s == strings.ToLower(names.tag) {
			return level, true
		}
	}
	return LevelInfo, false
}

// String returns the three letter tag printed in log lines.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levels[l].tag
}
