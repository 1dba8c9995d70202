package stats

import (
	"math"
	"testing"
)

func TestSessionMetrics(t *testing.T) {
	// 100 typed, 90 correct, 10 incorrect, over 60s.
	wpm, cpm, accuracy := SessionMetrics(90, 10, 100, 60000)
	if wpm != 20 {
		t.Fatalf("expected 20 WPM, got %v", wpm)
	}
	if cpm != 90 {
		t.Fatalf("expected 90 CPM, got %v", cpm)
	}
	if accuracy != 0.9 {
		t.Fatalf("expected 0.9 accuracy, got %v", accuracy)
	}
}

func TestSessionMetricsZeroDuration(t *testing.T) {
	wpm, cpm, accuracy := SessionMetrics(10, 0, 10, 0)
	if wpm != 0 || cpm != 0 || accuracy != 0 {
		t.Fatalf("expected zeros for zero duration, got %v %v %v", wpm, cpm, accuracy)
	}
}

func TestSessionMetricsNoKeystrokes(t *testing.T) {
	_, _, accuracy := SessionMetrics(0, 0, 0, 60000)
	if accuracy != 0 {
		t.Fatalf("expected 0 accuracy with no keystrokes, got %v", accuracy)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMovingAveragePassthrough(t *testing.T) {
	values := []float64{3, 1, 4}
	got := MovingAverage(values, 1)
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("window 1 must pass through, index %d: %v", i, got[i])
		}
	}
	got[0] = 99
	if values[0] == 99 {
		t.Fatalf("MovingAverage must copy, not alias")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 5, 10})
	if len([]rune(got)) != 3 {
		t.Fatalf("expected 3 characters, got %q", got)
	}
	if got[0] != sparkChars[0] || got[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected min and max glyphs at the edges, got %q", got)
	}
}

func TestSparklineFlat(t *testing.T) {
	got := Sparkline([]float64{5, 5, 5})
	mid := string(sparkChars[len(sparkChars)/2])
	if got != mid+mid+mid {
		t.Fatalf("flat series must use the middle glyph, got %q", got)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}
