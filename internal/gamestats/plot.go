package gamestats

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
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelMid        = "mid"
	axisLabelBottom     = "min"
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var plotColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// plotGrid accumulates braille dots per series on a height x width cell
// canvas (each cell holds 2x4 dots).
type plotGrid struct {
	width  int
	height int
	cells  [][][]uint8 // per series
}

func newPlotGrid(seriesCount, width, height int) *plotGrid {
	g := &plotGrid{width: width, height: height}
	g.cells = make([][][]uint8, seriesCount)
	for s := range g.cells {
		rows := make([][]uint8, height)
		for y := range rows {
			rows[y] = make([]uint8, width)
		}
		g.cells[s] = rows
	}
	return g
}

func (g *plotGrid) dot(series, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= g.height || cellX >= g.width {
		return
	}
	g.cells[series][cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// line draws a Bresenham segment in dot coordinates.
func (g *plotGrid) line(series, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		g.dot(series, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func (g *plotGrid) cell(x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for s := range g.cells {
		if m := g.cells[s][y][x]; m != 0 {
			if colorIdx == -1 {
				colorIdx = s
			}
			mask |= m
		}
	}
	return mask, colorIdx
}

func (g *plotGrid) render(w io.Writer, useColor bool) error {
	labels := make([]string, g.height)
	labels[0] = axisLabelTop
	if g.height > 2 {
		labels[g.height/2] = axisLabelMid
	}
	if g.height > 1 {
		labels[g.height-1] = axisLabelBottom
	}
	for y := 0; y < g.height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", len(axisLabelTop), labels[y], axisSeparator)
		for x := 0; x < g.width; x++ {
			mask, colorIdx := g.cell(x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && colorIdx >= 0 {
				row.WriteString(plotColors[colorIdx%len(plotColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

// PlotSeries renders connected line plots, one per series, each scaled to
// its own min/max (reported above the plot).
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = dropEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	width, height = clampPlotSize(width, height)

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	grid := newPlotGrid(len(series), width, height)
	for si, s := range series {
		values := resampleSeries(s.Values, width)
		minVal, maxVal := seriesMinMax(values)
		if math.Abs(maxVal-minVal) < 1e-9 {
			minVal--
			maxVal++
		}
		if _, err := fmt.Fprintf(w, "%s: min=%.2f max=%.2f\n", s.Name, minVal, maxVal); err != nil {
			return err
		}
		prevX, prevY := -1, -1
		for x, v := range values {
			px := x * 2
			py := valueToRow(v, minVal, maxVal, height*4)
			if prevX >= 0 {
				grid.line(si, prevX, prevY, px, py)
			} else {
				grid.dot(si, px, py)
			}
			prevX, prevY = px, py
		}
	}
	if err := grid.render(w, useColor); err != nil {
		return err
	}
	return plotLegend(w, series, useColor)
}

// PlotScatter renders unconnected points at (x, y), both axes scaled to the
// data extent.
func PlotScatter(w io.Writer, title string, xs, ys []float64, width, height int, forceColor bool) error {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return nil
	}
	width, height = clampPlotSize(width, height)

	minX, maxX := seriesMinMax(xs[:n])
	minY, maxY := seriesMinMax(ys[:n])
	if math.Abs(maxX-minX) < 1e-9 {
		minX--
		maxX++
	}
	if math.Abs(maxY-minY) < 1e-9 {
		minY--
		maxY++
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "x: min=%.2f max=%.2f  y: min=%.2f max=%.2f\n", minX, maxX, minY, maxY); err != nil {
		return err
	}

	grid := newPlotGrid(1, width, height)
	for i := 0; i < n; i++ {
		px := int(math.Round((xs[i] - minX) / (maxX - minX) * float64(width*2-1)))
		py := valueToRow(ys[i], minY, maxY, height*4)
		grid.dot(0, px, py)
	}
	return grid.render(w, useColor)
}

func plotLegend(w io.Writer, series []Series, useColor bool) error {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s", rune(0x2800+0x01), s.Name)
		if useColor {
			label = plotColors[i%len(plotColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	_, err := fmt.Fprintln(w, "Legend: "+strings.Join(parts, "  "))
	return err
}

func clampPlotSize(width, height int) (int, int) {
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width, height
}

func dropEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// resampleSeries stretches or shrinks values to exactly width samples,
// averaging when shrinking and linearly interpolating when stretching.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			out[i] = Mean(values[start:end])
		}
		return out
	}
	if width == 1 || len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
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

func valueToRow(v, minVal, maxVal float64, height int) int {
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

// PlotWidthFor computes a plot width that fits within the total available
// width after the axis gutter.
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

func autoPlotWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return PlotWidthFor(terminalWidthBackup)
	}
	return PlotWidthFor(width)
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func brailleDotMask(x, y int) uint8 {
	masks := [4][2]uint8{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	if y < 0 || y > 3 || x < 0 || x > 1 {
		return 0
	}
	return masks[y][x]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
