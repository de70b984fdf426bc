package library

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/willbradshaw/gameplot/internal/model"
)

// ParseGamesFile reads an exported library file: a JSON object keyed by
// title, each value carrying per-platform parallel arrays and per-game
// scalars. A file that is not valid JSON is a hard error; a field with an
// unexpected shape only degrades that field, never the whole import.
func ParseGamesFile(path string) ([]model.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]model.GameRecord, 0, len(raw))
	for title, fields := range raw {
		records = append(records, recordFromRaw(title, fields))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Title < records[j].Title
	})
	return records, nil
}

// MergeByTitle merges record batches with last-write-wins semantics per
// title, later batches overriding earlier ones. The result is sorted by
// title.
func MergeByTitle(batches ...[]model.GameRecord) []model.GameRecord {
	byTitle := map[string]model.GameRecord{}
	for _, batch := range batches {
		for _, rec := range batch {
			byTitle[rec.Title] = rec
		}
	}
	out := make([]model.GameRecord, 0, len(byTitle))
	for _, rec := range byTitle {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

func recordFromRaw(title string, fields map[string]any) model.GameRecord {
	rec := model.GameRecord{
		Title:            title,
		Platforms:        asStringSlice(fields["platforms"]),
		HoursPerPlatform: asFloatSlice(fields["hoursPlayedSingle"]),
		URLs:             asStringSlice(fields["urls"]),
		Tags:             asStringSlice(fields["tags"]),
		Status:           asString(fields["status"]),
		FirstPlayed:      asString(fields["firstPlayed"]),
		LastPlayed:       asString(fields["lastPlayedTotal"]),
		Notes:            asString(fields["notes"]),
		DisplayURL:       asString(fields["displayUrl"]),
	}
	if v, ok := asFloat(fields["hoursPlayedTotal"]); ok {
		rec.HoursTotal = v
	}
	if v, ok := asFloat(fields["rating"]); ok {
		rec.Rating = &v
	}
	sortByPlaytime(&rec)
	if rec.DisplayURL == "" {
		rec.DisplayURL = preferredURL(rec.Platforms, rec.URLs)
	}
	return rec
}

// sortByPlaytime orders the parallel platform arrays by descending
// single-platform hours so the primary platform comes first.
func sortByPlaytime(rec *model.GameRecord) {
	n := len(rec.Platforms)
	if n < 2 || len(rec.HoursPerPlatform) != n {
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rec.HoursPerPlatform[idx[a]] > rec.HoursPerPlatform[idx[b]]
	})

	platforms := make([]string, n)
	hours := make([]float64, n)
	for i, j := range idx {
		platforms[i] = rec.Platforms[j]
		hours[i] = rec.HoursPerPlatform[j]
	}
	rec.Platforms = platforms
	rec.HoursPerPlatform = hours
	if len(rec.URLs) == n {
		urls := make([]string, n)
		for i, j := range idx {
			urls[i] = rec.URLs[j]
		}
		rec.URLs = urls
	}
}

// preferredURL picks the store page to show: Steam first, then PS5, then
// whatever comes first.
func preferredURL(platforms, urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	if len(platforms) == len(urls) {
		for _, want := range []string{"steam", "ps5"} {
			for i, platform := range platforms {
				if strings.EqualFold(platform, want) && urls[i] != "" {
					return urls[i]
				}
			}
		}
	}
	return urls[0]
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			// Keep the slot so parallel arrays stay aligned.
			out = append(out, "")
		}
	}
	return out
}

func asFloatSlice(v any) []float64 {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if n, ok := asFloat(item); ok {
			out = append(out, n)
		} else {
			out = append(out, 0)
		}
	}
	return out
}
