package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	axisLabelTop      = "max"
	axisLabelBottom   = "min"
	axisSeparator     = " │ "
	fallbackTermWidth = 80
)

// PlotSeries renders a braille multi-line plot. Each series is scaled to its
// own min/max, printed above the plot.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	kept := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}

	mins := make([]float64, len(kept))
	maxs := make([]float64, len(kept))
	for i, s := range kept {
		mins[i], maxs[i] = seriesMinMax(s.Values)
		if math.Abs(maxs[i]-mins[i]) < 1e-9 {
			mins[i]--
			maxs[i]++
		}
		values := resample(s.Values, width)
		prevX, prevY := -1, -1
		for x, v := range values {
			dotY := valueToDotRow(v, mins[i], maxs[i], height*4)
			dotX := x * 2
			if prevX >= 0 {
				drawLine(prevX, prevY, dotX, dotY, func(px, py int) {
					setBrailleDot(cells, px, py)
				})
			} else {
				setBrailleDot(cells, dotX, dotY)
			}
			prevX, prevY = dotX, dotY
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range kept {
		if _, err := fmt.Fprintf(w, "%s: min=%.2f max=%.2f\n", s.Name, mins[i], maxs[i]); err != nil {
			return err
		}
	}
	axisWidth := len(axisLabelTop)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisLabelTop
		case height - 1:
			label = axisLabelBottom
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisWidth, label, axisSeparator)
		for x := 0; x < width; x++ {
			row.WriteRune(rune(0x2800 + int(cells[y][x])))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.IsInf(minVal, 1) {
		minVal = 0
	}
	if math.IsInf(maxVal, -1) {
		maxVal = 0
	}
	return minVal, maxVal
}

func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		// Downsample by bucket mean.
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	// Upsample by linear interpolation.
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func valueToDotRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDots[y%4][x%2]
}
