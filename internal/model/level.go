package model

import "strings"

// Level is the severity/category tag of an Update.
type Level int

const (
	LevelDefault Level = iota
	LevelSuccess
	LevelError
	LevelWarning
	LevelInfo

	// LevelCount sizes per-level lookup tables. Keep it last.
	LevelCount
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "default"
	}
}

// ParseLevel maps a producer's level string onto the closed set.
// Anything it does not recognize, including "", is LevelDefault.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return LevelSuccess
	case "error":
		return LevelError
	case "warning":
		return LevelWarning
	case "info":
		return LevelInfo
	default:
		return LevelDefault
	}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l >= LevelDefault && l < LevelCount
}

// Normalize collapses out-of-range values to LevelDefault.
func (l Level) Normalize() Level {
	if !l.Valid() {
		return LevelDefault
	}
	return l
}
