// Package report recomputes every derived view for one filter state.
package report

import (
	"sort"

	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/filter"
	"github.com/willbradshaw/gameplot/internal/gamestats"
	"github.com/willbradshaw/gameplot/internal/model"
)

// DefaultBoxplotTags caps the tag boxplot view when no tags are selected.
const DefaultBoxplotTags = 8

// Report is one consistent snapshot: every field is derived from the same
// filtered subset, so the views never disagree about what is selected.
type Report struct {
	Catalog   facet.Catalog
	Selection model.Selection
	Dimension gamestats.Dimension

	Filtered []model.GameRecord
	Summary  gamestats.Summary
	Boxplots []gamestats.TagBoxplot
	Hours    []gamestats.Bucket
	Timeline []gamestats.TimelinePoint
}

// Build filters the records once and derives every view from the result.
// It is a pure function of its inputs; callers rebuild the whole report
// whenever the selection or dimension changes.
func Build(records []model.GameRecord, catalog facet.Catalog, sel model.Selection, dim gamestats.Dimension) Report {
	filtered := filter.Evaluate(records, sel)
	return Report{
		Catalog:   catalog,
		Selection: sel.Clone(),
		Dimension: dim,
		Filtered:  filtered,
		Summary:   gamestats.Summarize(filtered),
		Boxplots:  gamestats.TagBoxplots(filtered, boxplotTags(filtered, catalog, sel)),
		Hours:     gamestats.AggregateHours(filtered, dim),
		Timeline:  gamestats.MonthlyTimeline(filtered),
	}
}

// boxplotTags picks the tags shown in the boxplot view: the selected tags
// when any are checked, otherwise the most-reviewed tags in the subset.
func boxplotTags(filtered []model.GameRecord, catalog facet.Catalog, sel model.Selection) []string {
	if len(sel.Tags) > 0 {
		tags := make([]string, 0, len(sel.Tags))
		for tag := range sel.Tags {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		return tags
	}
	return gamestats.TopTagsByCount(filtered, catalog.Tags, DefaultBoxplotTags)
}
