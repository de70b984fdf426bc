package gamestats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/willbradshaw/gameplot/internal/model"
)

const sparkChars = " .:-=+*#%@"

// ratingScaleMax anchors boxplot glyph rendering to the rating range.
const ratingScaleMax = 10.0

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the global summary for a filtered subset. A zero
// importedAt omits the last-updated line.
func RenderSummary(w io.Writer, summary Summary, timeline []TimelinePoint, importedAt time.Time) error {
	if summary.Count == 0 {
		_, err := fmt.Fprintln(w, "No games match the current filters.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", summary.Count),
		fmt.Sprintf("Total hours: %.1f", summary.TotalHours),
	}
	if summary.HasRating {
		lines = append(lines, fmt.Sprintf("Mean rating: %.2f", summary.MeanRating))
	} else {
		lines = append(lines, "Mean rating: N/A")
	}
	if summary.TopRated != nil {
		lines = append(lines, fmt.Sprintf("Top rated: %s (%.1f)", summary.TopRated.Title, *summary.TopRated.Rating))
	}
	if len(timeline) > 0 {
		hours := make([]float64, len(timeline))
		for i, p := range timeline {
			hours[i] = p.Hours
		}
		lines = append(lines, fmt.Sprintf("Monthly hours: %s", Sparkline(hours)))
	}
	if !importedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("Last updated: %s", importedAt.Format(model.DateLayout)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTagBoxplots prints the per-tag rating distribution table with a
// glyph column on the shared 0-10 rating scale.
func RenderTagBoxplots(w io.Writer, boxplots []TagBoxplot, glyphWidth int) error {
	if len(boxplots) == 0 {
		_, err := fmt.Fprintln(w, "No rated games for the selected tags.")
		return err
	}
	if glyphWidth < 10 {
		glyphWidth = 10
	}
	headers := []string{"Tag", "N", "Mean", "Q1", "Median", "Q3", "Distribution"}
	rows := make([][]string, 0, len(boxplots))
	for _, tb := range boxplots {
		rows = append(rows, []string{
			tb.Tag,
			fmt.Sprintf("%d", tb.Box.Count),
			fmt.Sprintf("%.2f", tb.Box.Mean),
			fmt.Sprintf("%.2f", tb.Box.Q1),
			fmt.Sprintf("%.2f", tb.Box.Median),
			fmt.Sprintf("%.2f", tb.Box.Q3),
			BoxGlyph(tb.Box, glyphWidth),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// BoxGlyph renders one boxplot as a single-line glyph on the 0-10 scale:
// whisker ends, a filled interquartile box with the median marked, and
// outliers as isolated dots.
func BoxGlyph(box Boxplot, width int) string {
	if width < 3 {
		width = 3
	}
	col := func(v float64) int {
		pos := v / ratingScaleMax
		if pos < 0 {
			pos = 0
		}
		if pos > 1 {
			pos = 1
		}
		return int(math.Round(pos * float64(width-1)))
	}

	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	lo, hi := col(box.LowWhisker), col(box.HighWhisker)
	for i := lo; i <= hi; i++ {
		cells[i] = '─'
	}
	q1, q3 := col(box.Q1), col(box.Q3)
	for i := q1; i <= q3; i++ {
		cells[i] = '█'
	}
	cells[lo] = '├'
	cells[hi] = '┤'
	cells[col(box.Median)] = '┃'
	for _, v := range box.Outliers {
		cells[col(v)] = '∘'
	}
	return string(cells)
}

// RenderHours prints the aggregation buckets with proportional bars.
func RenderHours(w io.Writer, dim Dimension, buckets []Bucket, barWidth int) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No playtime for the current filters.")
		return err
	}
	if barWidth < 5 {
		barWidth = 5
	}
	maxHours := 0.0
	for _, b := range buckets {
		if b.TotalHours > maxHours {
			maxHours = b.TotalHours
		}
	}

	if _, err := fmt.Fprintf(w, "Hours by %s\n", dim); err != nil {
		return err
	}
	headers := []string{string(dim), "Hours", "Games", ""}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		bar := ""
		if maxHours > 0 {
			n := int(math.Round(b.TotalHours / maxHours * float64(barWidth)))
			bar = strings.Repeat("█", n)
		}
		rows = append(rows, []string{
			b.Category,
			fmt.Sprintf("%.1f", b.TotalHours),
			fmt.Sprintf("%d", b.GameCount),
			bar,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTimeline prints the monthly activity plot for a filtered subset.
func RenderTimeline(w io.Writer, filtered []model.GameRecord, totalWidth, height int, forceColor bool) error {
	points := MonthlyTimeline(filtered)
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "No dated games for the current filters.")
		return err
	}
	title := fmt.Sprintf("Play activity %s to %s",
		points[0].Month.Format("2006-01"),
		points[len(points)-1].Month.Format("2006-01"))
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, title, TimelineSeries(points), width, height, forceColor)
}

// RenderRatingHours prints the playtime-vs-rating scatter for a filtered
// subset.
func RenderRatingHours(w io.Writer, filtered []model.GameRecord, totalWidth, height int, forceColor bool) error {
	hours, ratings := RatingHoursPoints(filtered)
	if len(hours) == 0 {
		_, err := fmt.Fprintln(w, "No rated games for the current filters.")
		return err
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotScatter(w, "Hours played (x) vs rating (y)", hours, ratings, width, height, forceColor)
}
