package dashboard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/willbradshaw/gameplot/internal/gamestats"
	"github.com/willbradshaw/gameplot/internal/model"
	"github.com/willbradshaw/gameplot/internal/report"
)

var barPalette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func renderOverview(rep report.Report, width int) string {
	if rep.Summary.Count == 0 {
		return "No games match the current filters."
	}
	cards := renderSummaryCards(rep.Summary, width)
	var buf bytes.Buffer
	if err := gamestats.RenderTimeline(&buf, rep.Filtered, width, plotHeight, true); err != nil {
		return cards + "\n\n" + fmt.Sprintf("Failed to render timeline: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+strings.TrimRight(buf.String(), "\n"), "\n")
}

func renderSummaryCards(summary gamestats.Summary, width int) string {
	meanRating := "N/A"
	if summary.HasRating {
		meanRating = fmt.Sprintf("%.2f", summary.MeanRating)
	}
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", summary.Count)),
		metricCard("Total Hours", fmt.Sprintf("%.1f", summary.TotalHours)),
		metricCard("Mean Rating", meanRating),
	}
	if summary.TopRated != nil {
		cards = append(cards, metricCard("Top Rated",
			fmt.Sprintf("%s (%.1f)", summary.TopRated.Title, *summary.TopRated.Rating)))
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHoursChart(rep report.Report, width, height int) string {
	if len(rep.Hours) == 0 {
		return "No playtime for the current filters."
	}
	header := headerStyle.Render(fmt.Sprintf("Hours by %s (d to change dimension)", rep.Dimension))

	chartHeight := height - 2
	if chartHeight < 3 {
		chartHeight = 3
	}
	chartWidth := width
	if chartWidth < 10 {
		chartWidth = 10
	}
	bc := barchart.New(chartWidth, chartHeight)
	data := make([]barchart.BarData, 0, len(rep.Hours))
	for i, bucket := range rep.Hours {
		data = append(data, barchart.BarData{
			Label: truncateLine(bucket.Category, 12),
			Values: []barchart.BarValue{{
				Name:  bucket.Category,
				Value: bucket.TotalHours,
				Style: barPalette[i%len(barPalette)],
			}},
		})
	}
	bc.PushAll(data)
	bc.Draw()

	legend := make([]string, 0, len(rep.Hours))
	for _, bucket := range rep.Hours {
		legend = append(legend, fmt.Sprintf("%s %.1fh/%d", bucket.Category, bucket.TotalHours, bucket.GameCount))
	}
	legendLine := headerStyle.Render(truncateLine(strings.Join(legend, "  "), width))
	return header + "\n" + strings.TrimRight(bc.View(), "\n") + "\n" + legendLine
}

func renderScatter(rep report.Report, width int) string {
	var buf bytes.Buffer
	if err := gamestats.RenderRatingHours(&buf, rep.Filtered, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render scatter: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func gamesColumns(width int) []table.Column {
	titleWidth := 40
	if width > 0 {
		titleWidth = maxInt(20, width-58)
	}
	return []table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Platform", Width: 10},
		{Title: "Hours", Width: 8},
		{Title: "Rating", Width: 6},
		{Title: "Status", Width: 12},
		{Title: "Last Played", Width: 11},
	}
}

func gamesRows(filtered []model.GameRecord) []table.Row {
	rows := make([]table.Row, 0, len(filtered))
	for _, rec := range filtered {
		platform := ""
		if len(rec.Platforms) > 0 {
			platform = rec.Platforms[0]
			if len(rec.Platforms) > 1 {
				platform += fmt.Sprintf(" +%d", len(rec.Platforms)-1)
			}
		}
		rating := ""
		if rec.Rating != nil {
			rating = fmt.Sprintf("%.1f", *rec.Rating)
		}
		rows = append(rows, table.Row{
			rec.Title,
			platform,
			fmt.Sprintf("%.1f", rec.HoursTotal),
			rating,
			rec.StatusOrUnknown(),
			rec.LastPlayed,
		})
	}
	return rows
}

func tagsColumns() []table.Column {
	return []table.Column{
		{Title: "Tag", Width: 18},
		{Title: "Games", Width: 5},
		{Title: "Mean", Width: 5},
		{Title: "Q1", Width: 5},
		{Title: "Median", Width: 6},
		{Title: "Q3", Width: 5},
		{Title: "Whiskers", Width: 11},
		{Title: "Outliers", Width: 16},
	}
}

func tagsRows(boxplots []gamestats.TagBoxplot) []table.Row {
	rows := make([]table.Row, 0, len(boxplots))
	for _, tb := range boxplots {
		outliers := make([]string, 0, len(tb.Box.Outliers))
		for _, v := range tb.Box.Outliers {
			outliers = append(outliers, fmt.Sprintf("%.1f", v))
		}
		rows = append(rows, table.Row{
			tb.Tag,
			fmt.Sprintf("%d", tb.Box.Count),
			fmt.Sprintf("%.2f", tb.Box.Mean),
			fmt.Sprintf("%.2f", tb.Box.Q1),
			fmt.Sprintf("%.2f", tb.Box.Median),
			fmt.Sprintf("%.2f", tb.Box.Q3),
			fmt.Sprintf("%.1f-%.1f", tb.Box.LowWhisker, tb.Box.HighWhisker),
			truncateLine(strings.Join(outliers, ","), 16),
		})
	}
	return rows
}

func dashboardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
