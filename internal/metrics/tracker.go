// Package metrics derives live typing metrics from the keystroke trace.
package metrics

import "time"

// Snapshot is a consistent read-only view of the tracker at one instant.
// NetWPM is reported identically to GrossWPM: no error penalty is
// subtracted. That mirrors the behavior this tracker replaces and is kept
// deliberately rather than silently changed.
type Snapshot struct {
	GrossWPM   float64
	NetWPM     float64
	CPM        float64
	Accuracy   float64
	TotalTyped int
	Correct    int
	Incorrect  int
	Active     time.Duration
}

type charAgg struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Tracker accumulates running aggregates so snapshots are O(1) regardless
// of how many keystrokes were recorded. Single-owner, not safe for
// concurrent use; the orchestration layer serializes access.
type Tracker struct {
	totalTyped int
	correct    int
	incorrect  int

	startedAt   time.Time
	pausedAt    time.Time
	totalPaused time.Duration
	started     bool
	paused      bool

	prevCorrectAt time.Time
	chars         map[rune]*charAgg
}

// New returns a reset tracker.
func New() *Tracker {
	return &Tracker{chars: map[rune]*charAgg{}}
}

// Start begins the active-time clock. Starting twice is a no-op.
func (t *Tracker) Start(at time.Time) {
	if t.started {
		return
	}
	t.started = true
	t.startedAt = at
}

// Pause suspends the active-time clock.
func (t *Tracker) Pause(at time.Time) {
	if !t.started || t.paused {
		return
	}
	t.paused = true
	t.pausedAt = at
}

// Resume reactivates the clock, excluding the paused interval.
func (t *Tracker) Resume(at time.Time) {
	if !t.paused {
		return
	}
	t.paused = false
	t.totalPaused += at.Sub(t.pausedAt)
	t.pausedAt = time.Time{}
}

// Reset clears all aggregates and the clock.
func (t *Tracker) Reset() {
	*t = Tracker{chars: map[rune]*charAgg{}}
}

// Record appends one timed keystroke sample against its expected character.
// Latency is measured between consecutive correct keystrokes, so a stumble
// does not pollute the latency aggregate for the character after it.
func (t *Tracker) Record(expected rune, correct bool, at time.Time) {
	if !t.started {
		t.Start(at)
	}
	t.totalTyped++
	agg := t.charEntry(expected)
	if !correct {
		t.incorrect++
		agg.incorrect++
		return
	}
	t.correct++
	agg.correct++
	if !t.prevCorrectAt.IsZero() {
		agg.latencySumMs += at.Sub(t.prevCorrectAt).Milliseconds()
		agg.latencyCount++
	}
	t.prevCorrectAt = at
}

// Uncount reverses one recorded keystroke after a backspace so the live
// correct count tracks the current trace, not history. Total typed is never
// reduced: accuracy counts every accepted keystroke.
func (t *Tracker) Uncount(expected rune, wasCorrect bool) {
	agg := t.charEntry(expected)
	if wasCorrect {
		if t.correct > 0 {
			t.correct--
		}
		if agg.correct > 0 {
			agg.correct--
		}
		return
	}
	if t.incorrect > 0 {
		t.incorrect--
	}
	if agg.incorrect > 0 {
		agg.incorrect--
	}
}

// Active returns accumulated non-paused time as of now.
func (t *Tracker) Active(now time.Time) time.Duration {
	if !t.started {
		return 0
	}
	end := now
	if t.paused {
		end = t.pausedAt
	}
	d := end.Sub(t.startedAt) - t.totalPaused
	if d < 0 {
		return 0
	}
	return d
}

// Snapshot computes the current metrics. Never blocks, O(1).
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		TotalTyped: t.totalTyped,
		Correct:    t.correct,
		Incorrect:  t.incorrect,
		Active:     t.Active(now),
	}
	minutes := snap.Active.Minutes()
	if minutes > 0 {
		snap.GrossWPM = (float64(t.totalTyped) / 5.0) / minutes
		snap.NetWPM = snap.GrossWPM
		snap.CPM = float64(t.correct) / minutes
	}
	if attempted := t.correct + t.incorrect; attempted > 0 {
		snap.Accuracy = float64(t.correct) / float64(attempted) * 100
	}
	return snap
}

// CharAggregates exports per-character aggregates for persistence.
func (t *Tracker) CharAggregates() map[rune]CharAggregate {
	out := make(map[rune]CharAggregate, len(t.chars))
	for r, agg := range t.chars {
		out[r] = CharAggregate{
			Correct:      agg.correct,
			Incorrect:    agg.incorrect,
			LatencySumMs: agg.latencySumMs,
			LatencyCount: agg.latencyCount,
		}
	}
	return out
}

// CharAggregate is the exported per-character aggregate.
type CharAggregate struct {
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

func (t *Tracker) charEntry(r rune) *charAgg {
	if t.chars == nil {
		t.chars = map[rune]*charAgg{}
	}
	agg, ok := t.chars[r]
	if !ok {
		agg = &charAgg{}
		t.chars[r] = agg
	}
	return agg
}
