// Package model defines shared data structures.
package model

import "time"

// Mode selects the error-handling policy for a practice session.
type Mode string

// Practice modes.
const (
	ModeStrict      Mode = "strict"
	ModeLenient     Mode = "lenient"
	ModeNoBackspace Mode = "no-backspace"
)

// Valid reports whether the mode is one of the recognized values.
func (m Mode) Valid() bool {
	switch m {
	case ModeStrict, ModeLenient, ModeNoBackspace:
		return true
	}
	return false
}

// Config defines practice settings.
type Config struct {
	Mode              Mode
	CaseSensitive     bool
	StrictAccents     bool
	AllowWordDeletion bool
	Words             int
	CapsPct           float64
	PunctPct          float64
	PunctSet          string
	FocusWeak         bool
	WeakTop           int
	WeakFactor        float64
	WeakWindow        int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
	Chars       string
}

// SessionRecord captures a completed typing session for persistence.
type SessionRecord struct {
	StartedAt     time.Time
	EndedAt       time.Time
	Mode          Mode
	CaseSensitive bool
	StrictAccents bool
	Words         int
	TextLen       int
	Correct       int
	Incorrect     int
	Corrected     int
	TotalTyped    int
	DurationMs    int64
	PausedMs      int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	TotalTyped int
	DurationMs int64
	PausedMs   int64
}
