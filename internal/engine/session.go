// Package engine implements the typing session state machine.
//
// A Session is an immutable value: every transition returns a fresh Session
// so keystroke handling is replay-safe and auditable. The engine only ever
// sees final, already-composed characters; dead-key composition happens
// upstream in the composer.
package engine

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tecla-cli/tecla/internal/model"
)

// ErrEmptyText is returned when a session is created with no practice text.
var ErrEmptyText = errors.New("practice text is empty")

// CharState is the correctness state of one expected character.
type CharState int

// Character states. A character is restated but never deleted: incorrect
// becomes corrected after a successful backspace, correct returns to pending
// so it can be retyped.
const (
	StatePending CharState = iota
	StateCorrect
	StateIncorrect
	StateCorrected
)

// String returns the state name.
func (s CharState) String() string {
	switch s {
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	case StateCorrected:
		return "corrected"
	default:
		return "pending"
	}
}

// CharResult records what happened at one position of the practice text.
type CharResult struct {
	Expected rune
	Typed    rune
	State    CharState
	TypedAt  time.Time
}

// Settings are the engine policy knobs.
type Settings struct {
	Mode              model.Mode
	CaseSensitive     bool
	StrictAccents     bool
	AllowWordDeletion bool
}

// Feedback is the transient per-keystroke output consumed once by the
// orchestration layer. Accepted=false events are policy rejections, not
// errors.
type Feedback struct {
	Accepted        bool
	Correct         bool
	SessionComplete bool
}

// Session is the aggregate session state. All fields are replaced, never
// mutated in place; Chars is copied on write.
type Session struct {
	Text        string
	Chars       []CharResult
	Index       int
	Settings    Settings
	Started     bool
	Paused      bool
	Complete    bool
	StartedAt   time.Time
	PausedAt    time.Time
	TotalPaused time.Duration
}

// NewSession builds a session with one pending CharResult per rune of text.
func NewSession(text string, settings Settings) (Session, error) {
	if text == "" {
		return Session{}, ErrEmptyText
	}
	if settings.Mode == "" {
		settings.Mode = model.ModeStrict
	}
	target := []rune(text)
	chars := make([]CharResult, len(target))
	for i, r := range target {
		chars[i] = CharResult{Expected: r}
	}
	return Session{Text: text, Chars: chars, Settings: settings}, nil
}

// Start marks the session started. Starting an already started or complete
// session is a no-op.
func (s Session) Start(at time.Time) Session {
	if s.Started || s.Complete {
		return s
	}
	s.Started = true
	s.StartedAt = at
	return s
}

// Pause suspends the active clock. Only a started, incomplete, unpaused
// session can pause.
func (s Session) Pause(at time.Time) Session {
	if !s.Started || s.Complete || s.Paused {
		return s
	}
	s.Paused = true
	s.PausedAt = at
	return s
}

// Resume reactivates a paused session, accumulating the paused interval.
func (s Session) Resume(at time.Time) Session {
	if !s.Paused {
		return s
	}
	s.Paused = false
	s.TotalPaused += at.Sub(s.PausedAt)
	s.PausedAt = time.Time{}
	return s
}

// ActiveDuration is elapsed wall time minus accumulated pauses.
func (s Session) ActiveDuration(now time.Time) time.Duration {
	if !s.Started {
		return 0
	}
	end := now
	if s.Paused {
		end = s.PausedAt
	}
	d := end.Sub(s.StartedAt) - s.TotalPaused
	if d < 0 {
		return 0
	}
	return d
}

// ProcessKeystroke compares an already-composed character against the
// current expected character and returns the advanced session. Pure: same
// inputs, same outputs.
func (s Session) ProcessKeystroke(r rune, at time.Time) (Session, Feedback) {
	if s.Complete || s.Paused || !printable(r) {
		return s, Feedback{}
	}
	if !s.Started {
		s = s.Start(at)
	}
	chars := append([]CharResult(nil), s.Chars...)
	current := &chars[s.Index]
	correct := charsEqual(current.Expected, r, s.Settings)

	current.Typed = r
	current.TypedAt = at
	if correct {
		current.State = StateCorrect
	} else {
		current.State = StateIncorrect
	}

	advance := correct || s.Settings.Mode != model.ModeStrict
	s.Chars = chars
	if advance {
		s.Index++
	}
	feedback := Feedback{Accepted: true, Correct: correct}
	if s.Index == len(s.Chars) {
		s.Complete = true
		feedback.SessionComplete = true
	}
	return s, feedback
}

// ProcessBackspace steps back one character. Rejected outright in
// no-backspace mode; that mode exists to measure raw forward flow.
func (s Session) ProcessBackspace() (Session, Feedback) {
	if s.Complete || s.Paused || s.Settings.Mode == model.ModeNoBackspace {
		return s, Feedback{}
	}
	if s.Index == 0 {
		return s, Feedback{}
	}
	chars := append([]CharResult(nil), s.Chars...)
	s.Index--
	prev := &chars[s.Index]
	switch prev.State {
	case StateIncorrect:
		prev.State = StateCorrected
	default:
		prev.State = StatePending
	}
	prev.Typed = 0
	prev.TypedAt = time.Time{}
	s.Chars = chars
	return s, Feedback{Accepted: true}
}

// ProcessWordBackspace deletes back to the previous word boundary. Honored
// only when word deletion is allowed and backspace itself is permitted.
func (s Session) ProcessWordBackspace() (Session, Feedback) {
	if !s.Settings.AllowWordDeletion {
		return s, Feedback{}
	}
	if s.Complete || s.Paused || s.Settings.Mode == model.ModeNoBackspace {
		return s, Feedback{}
	}
	if s.Index == 0 {
		return s, Feedback{}
	}
	accepted := false
	// Consume any spaces directly behind the cursor, then the word.
	for s.Index > 0 && s.Chars[s.Index-1].Expected == ' ' {
		var fb Feedback
		s, fb = s.ProcessBackspace()
		accepted = accepted || fb.Accepted
	}
	for s.Index > 0 && s.Chars[s.Index-1].Expected != ' ' {
		var fb Feedback
		s, fb = s.ProcessBackspace()
		accepted = accepted || fb.Accepted
	}
	return s, Feedback{Accepted: accepted}
}

// Counts tallies the final character states.
func (s Session) Counts() (correct, incorrect, corrected int) {
	for _, c := range s.Chars {
		switch c.State {
		case StateCorrect:
			correct++
		case StateIncorrect:
			incorrect++
		case StateCorrected:
			corrected++
		}
	}
	return correct, incorrect, corrected
}

func printable(r rune) bool {
	if r == 0 {
		return false
	}
	return r == ' ' || unicode.IsGraphic(r) && !unicode.IsControl(r)
}

func charsEqual(expected, typed rune, settings Settings) bool {
	if expected == typed {
		return true
	}
	a, b := string(expected), string(typed)
	if !settings.StrictAccents {
		a = stripDiacritics(a)
		b = stripDiacritics(b)
	}
	if !settings.CaseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return a == b
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}
