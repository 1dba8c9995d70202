// Package tutor wires key events through the dead-key composer, the session
// engine, and the metrics tracker.
//
// The engine and composer are pure; this package owns the mutable pieces
// between keystrokes: the current session value, the pressed-key set, and
// the tracker. Callers feed it normalized KeyEvent values from whatever
// event source they have; the core never listens to anything global.
package tutor

import (
	"time"

	"github.com/tecla-cli/tecla/internal/deadkey"
	"github.com/tecla-cli/tecla/internal/engine"
	"github.com/tecla-cli/tecla/internal/layout"
	"github.com/tecla-cli/tecla/internal/metrics"
)

// KeyEvent is one normalized physical key event. Rune carries the character
// the host already resolved for the event, zero when only the code is known.
// Release events update modifier bookkeeping and produce no feedback.
type KeyEvent struct {
	Code    string
	Rune    rune
	Mods    layout.Modifiers
	When    time.Time
	Repeat  bool
	Release bool
}

// Key codes with dedicated handling.
const (
	CodeBackspace = "Backspace"
	CodeEscape    = "Escape"
)

// Highlight tells the rendering layer which key to paint for the next
// expected character. Found=false means the character is unreachable on the
// layout and no highlight is available; typing can still succeed.
type Highlight struct {
	Key            layout.KeyDef
	Mods           layout.Modifiers
	Found          bool
	DeadKeyPending bool
	PendingChar    rune
}

// Tutor orchestrates one practice attempt.
type Tutor struct {
	session   engine.Session
	composer  *deadkey.Composer
	tracker   *metrics.Tracker
	pressed   map[string]struct{}
	delivered bool
}

// New builds a tutor for the given practice text and settings.
func New(text string, settings engine.Settings) (*Tutor, error) {
	session, err := engine.NewSession(text, settings)
	if err != nil {
		return nil, err
	}
	return &Tutor{
		session:  session,
		composer: deadkey.New(),
		tracker:  metrics.New(),
		pressed:  map[string]struct{}{},
	}, nil
}

// Session returns the current session value.
func (t *Tutor) Session() engine.Session {
	return t.session
}

// Snapshot returns the current metrics view.
func (t *Tutor) Snapshot(now time.Time) metrics.Snapshot {
	return t.tracker.Snapshot(now)
}

// CharAggregates exposes per-character aggregates for persistence.
func (t *Tutor) CharAggregates() map[rune]metrics.CharAggregate {
	return t.tracker.CharAggregates()
}

// DeadKeyPending reports whether a composition is waiting for its vowel.
func (t *Tutor) DeadKeyPending() bool {
	return t.composer.Pending()
}

// HandleKey routes one event and returns per-keystroke feedback plus the
// completion snapshot, delivered exactly once when the session completes.
func (t *Tutor) HandleKey(ev KeyEvent) (engine.Feedback, *metrics.Snapshot) {
	if ev.Release {
		delete(t.pressed, ev.Code)
		return engine.Feedback{}, nil
	}
	if !ev.Repeat {
		t.pressed[ev.Code] = struct{}{}
	}
	if t.session.Complete {
		return engine.Feedback{}, nil
	}

	switch ev.Code {
	case CodeEscape:
		t.composer.Cancel()
		return engine.Feedback{}, nil
	case CodeBackspace:
		return t.handleBackspace(ev), nil
	}

	if key, ok := layout.Get(ev.Code); ok && key.Dead {
		accent := deadkey.Acute
		if ev.Mods.Shift {
			accent = deadkey.Dieresis
		}
		res := t.composer.Begin(accent, ev.When)
		if res.Output != 0 {
			// A second dead-key press flushed the first mark.
			return t.feedChar(res.Output, ev.When), t.completion()
		}
		return engine.Feedback{}, nil
	}

	r := ev.Rune
	if r == 0 {
		if key, ok := layout.Get(ev.Code); ok {
			r, _ = layout.CharForKey(key, ev.Mods)
		}
	}
	if r == 0 {
		return engine.Feedback{}, nil
	}

	res := t.composer.Feed(r, ev.When)
	var fb engine.Feedback
	if res.Output != 0 {
		fb = t.feedChar(res.Output, ev.When)
	}
	if res.Reprocess != 0 {
		fb = t.feedChar(res.Reprocess, ev.When)
	}
	return fb, t.completion()
}

func (t *Tutor) handleBackspace(ev KeyEvent) engine.Feedback {
	if t.composer.Pending() {
		// Correcting the accent press itself; the engine never sees it.
		t.composer.Cancel()
		return engine.Feedback{}
	}
	if ev.Mods.Ctrl {
		return t.wordBackspace()
	}
	before := t.session
	session, fb := t.session.ProcessBackspace()
	t.session = session
	if fb.Accepted {
		t.uncount(before, before.Index-1)
	}
	return fb
}

func (t *Tutor) wordBackspace() engine.Feedback {
	before := t.session
	session, fb := t.session.ProcessWordBackspace()
	t.session = session
	if fb.Accepted {
		for i := session.Index; i < before.Index; i++ {
			t.uncount(before, i)
		}
	}
	return fb
}

func (t *Tutor) uncount(before engine.Session, idx int) {
	if idx < 0 || idx >= len(before.Chars) {
		return
	}
	prev := before.Chars[idx]
	switch prev.State {
	case engine.StateCorrect:
		t.tracker.Uncount(prev.Expected, true)
	case engine.StateIncorrect:
		t.tracker.Uncount(prev.Expected, false)
	}
}

func (t *Tutor) feedChar(r rune, at time.Time) engine.Feedback {
	before := t.session
	session, fb := t.session.ProcessKeystroke(r, at)
	t.session = session
	if !fb.Accepted {
		return fb
	}
	expected := before.Chars[before.Index].Expected
	// A strict-mode retype overwrites the blocked incorrect mark; drop the
	// stale sample so the live counts follow the current trace.
	if before.Chars[before.Index].State == engine.StateIncorrect {
		t.tracker.Uncount(expected, false)
	}
	t.tracker.Record(expected, fb.Correct, at)
	return fb
}

func (t *Tutor) completion() *metrics.Snapshot {
	if !t.session.Complete || t.delivered {
		return nil
	}
	t.delivered = true
	t.tracker.Pause(t.session.Chars[len(t.session.Chars)-1].TypedAt)
	snap := t.tracker.Snapshot(t.session.Chars[len(t.session.Chars)-1].TypedAt)
	return &snap
}

// Pause suspends the session and the metrics clock.
func (t *Tutor) Pause(at time.Time) {
	t.session = t.session.Pause(at)
	t.tracker.Pause(at)
}

// Resume reactivates a paused session.
func (t *Tutor) Resume(at time.Time) {
	t.session = t.session.Resume(at)
	t.tracker.Resume(at)
}

// FlushPending resolves an abandoned composition on a terminal event. The
// flushed literal goes through the engine like any other keystroke so it is
// not lost silently.
func (t *Tutor) FlushPending(at time.Time) engine.Feedback {
	res := t.composer.Flush()
	if res.Output == 0 || t.session.Complete {
		return engine.Feedback{}
	}
	return t.feedChar(res.Output, at)
}

// NextHighlight computes the keyboard-highlight surface for the next
// expected character.
func (t *Tutor) NextHighlight() Highlight {
	if t.session.Complete {
		return Highlight{}
	}
	expected := t.session.Chars[t.session.Index].Expected

	if t.composer.Pending() {
		// Mid-composition: point at the base vowel that finishes it.
		h := Highlight{DeadKeyPending: true, PendingChar: t.composer.PendingAccent().Mark()}
		if accent, vowel, ok := deadkey.Decompose(expected); ok && accent == t.composer.PendingAccent() {
			if key, mods, found := layout.FindForChar(vowel); found {
				h.Key = key
				h.Mods = mods
				h.Found = true
			}
		}
		return h
	}

	if key, mods, found := layout.FindForChar(expected); found {
		return Highlight{Key: key, Mods: mods, Found: true}
	}
	// Not directly reachable: an accented vowel starts at the dead key.
	if accent, _, ok := deadkey.Decompose(expected); ok {
		if key, found := layout.Get(layout.DeadKeyCode); found {
			mods := layout.Modifiers{}
			if accent == deadkey.Dieresis {
				mods.Shift = true
			}
			return Highlight{Key: key, Mods: mods, Found: true}
		}
	}
	return Highlight{}
}
