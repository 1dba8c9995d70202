package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Learning curve", []Series{
		{Name: "WPM", Values: []float64{20, 25, 30, 28, 35}},
		{Name: "Accuracy", Values: []float64{90, 92, 95, 94, 97}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning curve") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "WPM: min=20.00 max=35.00") {
		t.Fatalf("expected per-series range line, got:\n%s", out)
	}
	// Title + two range lines + 4 plot rows; the trailing blank trims away.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+2+4 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	for _, line := range lines[3:7] {
		if !strings.Contains(line, axisSeparator) {
			t.Fatalf("plot row missing axis separator: %q", line)
		}
	}
}

func TestPlotSeriesEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotSeriesFlatSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "", []Series{
		{Name: "flat", Values: []float64{5, 5, 5}},
	}, 12, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "flat: min=4.00 max=6.00") {
		t.Fatalf("flat series must widen its range, got:\n%s", buf.String())
	}
}
