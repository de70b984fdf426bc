// Package filter evaluates the shared facet selection over the dataset.
package filter

import (
	"strings"
	"time"

	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/model"
)

// Evaluate returns the records admitted by every facet of the selection,
// preserving the input order. Admission requires a match in each facet
// (AND across facets, OR within a facet's selected values). Malformed
// per-record fields only fail their own facet; they never abort the pass.
func Evaluate(records []model.GameRecord, sel model.Selection) []model.GameRecord {
	out := make([]model.GameRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, sel) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record passes every facet.
func Matches(rec model.GameRecord, sel model.Selection) bool {
	return matchesAny(rec.Platforms, sel.Platforms) &&
		matchesAny(rec.Tags, sel.Tags) &&
		matchesStatus(rec, sel.Statuses) &&
		matchesRating(rec, sel.RatingBuckets) &&
		matchesDate(rec, sel.StartDate, sel.EndDate) &&
		matchesSearch(rec, sel.Search)
}

// matchesAny implements the multi-valued facets: an empty selection admits
// every record, otherwise at least one of the record's values must be
// selected.
func matchesAny(values []string, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range values {
		if _, ok := selected[v]; ok {
			return true
		}
	}
	return false
}

// matchesStatus is deliberately asymmetric: an empty status selection
// admits nothing. The dashboard has always treated status checkboxes as an
// explicit allowlist, so "none checked" shows an empty table rather than
// everything.
func matchesStatus(rec model.GameRecord, selected map[string]struct{}) bool {
	_, ok := selected[rec.StatusOrUnknown()]
	return ok
}

func matchesRating(rec model.GameRecord, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	if rec.Rating == nil {
		return false
	}
	bucket := facet.BucketFor(*rec.Rating)
	if bucket == "" {
		return false
	}
	_, ok := selected[bucket]
	return ok
}

// matchesDate admits every record when no interval is set. Once either
// bound is set, records without a parseable last-played date never pass.
// Bounds compare at calendar-day granularity, so the end date is inclusive
// through its whole day.
func matchesDate(rec model.GameRecord, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	date, ok := rec.LastPlayedDate()
	if !ok {
		return false
	}
	if start != nil && date.Before(truncateDay(*start)) {
		return false
	}
	if end != nil && date.After(truncateDay(*end)) {
		return false
	}
	return true
}

func matchesSearch(rec model.GameRecord, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Title), strings.ToLower(search))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
