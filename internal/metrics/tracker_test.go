package metrics

import (
	"testing"
	"time"
)

var epoch = time.Unix(2000, 0)

func TestSnapshotZeroBeforeStart(t *testing.T) {
	tr := New()
	snap := tr.Snapshot(epoch)
	if snap.GrossWPM != 0 || snap.Accuracy != 0 || snap.Active != 0 {
		t.Fatalf("unstarted tracker must report zeros, got %+v", snap)
	}
}

func TestWPMMath(t *testing.T) {
	tr := New()
	// 25 keystrokes over one minute: 5 words, 5 WPM gross.
	for i := 0; i < 25; i++ {
		tr.Record('a', true, epoch.Add(time.Duration(i)*time.Second))
	}
	snap := tr.Snapshot(epoch.Add(time.Minute))
	if snap.GrossWPM != 5 {
		t.Fatalf("GrossWPM = %v, want 5", snap.GrossWPM)
	}
	if snap.NetWPM != snap.GrossWPM {
		t.Fatalf("NetWPM = %v, want same as gross", snap.NetWPM)
	}
	if snap.CPM != 25 {
		t.Fatalf("CPM = %v, want 25", snap.CPM)
	}
}

func TestAccuracy(t *testing.T) {
	tr := New()
	tr.Record('a', true, epoch)
	tr.Record('b', true, epoch.Add(time.Second))
	tr.Record('c', false, epoch.Add(2*time.Second))
	tr.Record('c', true, epoch.Add(3*time.Second))
	snap := tr.Snapshot(epoch.Add(4 * time.Second))
	if snap.Accuracy != 75 {
		t.Fatalf("Accuracy = %v, want 75", snap.Accuracy)
	}
	if snap.TotalTyped != 4 || snap.Correct != 3 || snap.Incorrect != 1 {
		t.Fatalf("counts = %d/%d/%d", snap.TotalTyped, snap.Correct, snap.Incorrect)
	}
}

func TestAccuracyBounds(t *testing.T) {
	tr := New()
	for i := 0; i < 10; i++ {
		tr.Record('x', i%2 == 0, epoch.Add(time.Duration(i)*time.Second))
	}
	snap := tr.Snapshot(epoch.Add(time.Minute))
	if snap.Accuracy < 0 || snap.Accuracy > 100 {
		t.Fatalf("Accuracy out of range: %v", snap.Accuracy)
	}
}

// A corrected error keeps total typed but restores the correct ratio: the
// live accuracy follows the current trace.
func TestUncountAfterCorrection(t *testing.T) {
	tr := New()
	tr.Record('s', false, epoch)
	tr.Uncount('s', false)
	tr.Record('s', true, epoch.Add(time.Second))
	snap := tr.Snapshot(epoch.Add(2 * time.Second))
	if snap.Accuracy != 100 {
		t.Fatalf("Accuracy = %v, want 100 after correction", snap.Accuracy)
	}
	if snap.TotalTyped != 2 {
		t.Fatalf("TotalTyped = %d, want 2 (never reduced)", snap.TotalTyped)
	}
}

func TestUncountClampsAtZero(t *testing.T) {
	tr := New()
	tr.Uncount('a', true)
	tr.Uncount('a', false)
	snap := tr.Snapshot(epoch)
	if snap.Correct != 0 || snap.Incorrect != 0 {
		t.Fatalf("counts went negative: %+v", snap)
	}
}

func TestPauseExcludedFromActive(t *testing.T) {
	tr := New()
	tr.Record('a', true, epoch)
	tr.Pause(epoch.Add(10 * time.Second))
	if got := tr.Active(epoch.Add(time.Hour)); got != 10*time.Second {
		t.Fatalf("paused Active = %v, want 10s", got)
	}
	tr.Resume(epoch.Add(30 * time.Second))
	if got := tr.Active(epoch.Add(40 * time.Second)); got != 20*time.Second {
		t.Fatalf("resumed Active = %v, want 20s", got)
	}
}

func TestRecordAutoStarts(t *testing.T) {
	tr := New()
	tr.Record('a', true, epoch.Add(5*time.Second))
	if got := tr.Active(epoch.Add(6 * time.Second)); got != time.Second {
		t.Fatalf("Active = %v, want 1s from first keystroke", got)
	}
}

func TestLatencyBetweenCorrectKeystrokes(t *testing.T) {
	tr := New()
	tr.Record('a', true, epoch)
	tr.Record('b', true, epoch.Add(200*time.Millisecond))
	tr.Record('c', false, epoch.Add(400*time.Millisecond))
	tr.Record('c', true, epoch.Add(900*time.Millisecond))
	aggs := tr.CharAggregates()

	// First correct keystroke has no predecessor.
	if a := aggs['a']; a.LatencyCount != 0 {
		t.Fatalf("first keystroke must carry no latency sample, got %+v", a)
	}
	if b := aggs['b']; b.LatencyCount != 1 || b.LatencySumMs != 200 {
		t.Fatalf("unexpected latency for b: %+v", b)
	}
	// Latency spans back to the previous correct keystroke, skipping the
	// incorrect attempt in between.
	if c := aggs['c']; c.LatencyCount != 1 || c.LatencySumMs != 700 {
		t.Fatalf("unexpected latency for c: %+v", c)
	}
	if c := aggs['c']; c.Correct != 1 || c.Incorrect != 1 {
		t.Fatalf("unexpected counts for c: %+v", c)
	}
}

func TestReset(t *testing.T) {
	tr := New()
	tr.Record('a', true, epoch)
	tr.Reset()
	snap := tr.Snapshot(epoch.Add(time.Minute))
	if snap.TotalTyped != 0 || snap.Active != 0 {
		t.Fatalf("reset tracker must be empty, got %+v", snap)
	}
	if len(tr.CharAggregates()) != 0 {
		t.Fatalf("reset tracker kept char aggregates")
	}
}
