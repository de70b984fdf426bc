// Package export writes filtered library subsets to external formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/willbradshaw/gameplot/internal/model"
)

var csvHeader = []string{
	"title", "platforms", "hours_total", "hours_per_platform",
	"rating", "status", "tags", "first_played", "last_played",
	"display_url", "notes",
}

// WriteCSV writes the records as CSV in the order given. Multi-valued
// fields are semicolon-joined; a missing rating becomes an empty cell.
func WriteCSV(w io.Writer, records []model.GameRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		rating := ""
		if rec.Rating != nil {
			rating = strconv.FormatFloat(*rec.Rating, 'f', -1, 64)
		}
		row := []string{
			rec.Title,
			strings.Join(rec.Platforms, ";"),
			strconv.FormatFloat(rec.HoursTotal, 'f', -1, 64),
			joinFloats(rec.HoursPerPlatform),
			rating,
			rec.StatusOrUnknown(),
			strings.Join(rec.Tags, ";"),
			rec.FirstPlayed,
			rec.LastPlayed,
			rec.DisplayURL,
			rec.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %q: %w", rec.Title, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}
