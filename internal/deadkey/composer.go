// Package deadkey implements accent composition for the dead key.
//
// On the Latin-American Spanish layout the acute accent and the dieresis are
// dead keys: pressing one emits nothing until the next keystroke arrives. A
// compatible vowel resolves to a single precomposed rune; anything else
// flushes the bare accent mark as a literal.
package deadkey

import "time"

// Accent is the pending accent type.
type Accent int

// Accent types produced by the dead key.
const (
	Acute Accent = iota
	Dieresis
)

// Mark returns the bare accent mark for flushing.
func (a Accent) Mark() rune {
	if a == Dieresis {
		return '¨'
	}
	return '´'
}

// DefaultTimeout is how long a pending accent survives without a follow-up.
const DefaultTimeout = 5 * time.Second

var acuteVowels = map[rune]rune{
	'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú',
	'A': 'Á', 'E': 'É', 'I': 'Í', 'O': 'Ó', 'U': 'Ú',
}

var dieresisVowels = map[rune]rune{
	'u': 'ü', 'U': 'Ü',
}

// Compose returns the precomposed rune for an accent and vowel.
func Compose(accent Accent, vowel rune) (rune, bool) {
	table := acuteVowels
	if accent == Dieresis {
		table = dieresisVowels
	}
	out, ok := table[vowel]
	return out, ok
}

// Decompose is the inverse of Compose: it splits a precomposed rune into
// the accent and base vowel that produce it.
func Decompose(r rune) (Accent, rune, bool) {
	for vowel, composed := range acuteVowels {
		if composed == r {
			return Acute, vowel, true
		}
	}
	for vowel, composed := range dieresisVowels {
		if composed == r {
			return Dieresis, vowel, true
		}
	}
	return Acute, 0, false
}

// Composer is the two-state accent composition machine. The zero value is
// idle. One composer serves one session input stream; it is never shared.
type Composer struct {
	pending bool
	accent  Accent
	since   time.Time
	timeout time.Duration
}

// New returns an idle composer with the default timeout.
func New() *Composer {
	return &Composer{timeout: DefaultTimeout}
}

// NewWithTimeout returns an idle composer with a custom timeout.
// A non-positive timeout disables expiry.
func NewWithTimeout(d time.Duration) *Composer {
	return &Composer{timeout: d}
}

// Pending reports whether an accent is waiting for its vowel.
func (c *Composer) Pending() bool {
	return c.pending
}

// PendingAccent returns the pending accent type; only meaningful while
// Pending reports true.
func (c *Composer) PendingAccent() Accent {
	return c.accent
}

// Result describes the outcome of feeding one keystroke to the composer.
// Consumed means the composer swallowed the event and the session engine
// must not see it. Output is the composed or flushed rune, zero if none.
// Reprocess carries a rune that must be re-evaluated as a fresh keystroke
// after Output (the failed-composition follow-up key).
type Result struct {
	Consumed  bool
	Output    rune
	Reprocess rune
}

// Begin arms composition from a dead-key press. Pressing the dead key while
// already pending flushes the first mark and re-arms with the new accent.
func (c *Composer) Begin(accent Accent, at time.Time) Result {
	if c.pending {
		flushed := c.accent.Mark()
		c.accent = accent
		c.since = at
		return Result{Consumed: true, Output: flushed}
	}
	c.pending = true
	c.accent = accent
	c.since = at
	return Result{Consumed: true}
}

// Feed resolves a pending composition against the next character. When
// nothing is pending the keystroke passes through untouched.
func (c *Composer) Feed(r rune, at time.Time) Result {
	if !c.pending {
		return Result{Output: r}
	}
	accent := c.accent
	c.pending = false
	if c.expired(at) {
		// The pending mark timed out; it flushes and the keystroke
		// stands on its own.
		return Result{Output: accent.Mark(), Reprocess: r}
	}
	if composed, ok := Compose(accent, r); ok {
		return Result{Consumed: true, Output: composed}
	}
	return Result{Output: accent.Mark(), Reprocess: r}
}

// Cancel drops a pending composition with no output. Backspace and Escape
// while pending correct the accent press itself; nothing reaches the engine.
func (c *Composer) Cancel() Result {
	if !c.pending {
		return Result{}
	}
	c.pending = false
	return Result{Consumed: true}
}

// Flush emits the pending bare mark, if any. Terminal events (completion,
// reset, text change) flush rather than lose the keystroke silently.
func (c *Composer) Flush() Result {
	if !c.pending {
		return Result{}
	}
	c.pending = false
	return Result{Output: c.accent.Mark()}
}

// Expired reports whether the pending composition has timed out by now.
func (c *Composer) Expired(now time.Time) bool {
	return c.pending && c.expired(now)
}

func (c *Composer) expired(now time.Time) bool {
	if c.timeout <= 0 {
		return false
	}
	return now.Sub(c.since) > c.timeout
}
