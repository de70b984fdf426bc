package gamestats

import "github.com/willbradshaw/gameplot/internal/model"

// Summary holds the global statistics shown in the overview cards.
type Summary struct {
	Count      int
	MeanRating float64
	HasRating  bool // false when no filtered record carries a rating
	TotalHours float64
	TopRated   *model.GameRecord
}

// Summarize computes the global summary over a filtered subset. An empty
// subset is a valid input and yields zero values.
func Summarize(filtered []model.GameRecord) Summary {
	var summary Summary
	summary.Count = len(filtered)

	var ratingSum float64
	var rated int
	for i := range filtered {
		rec := &filtered[i]
		summary.TotalHours += rec.HoursTotal
		if rec.Rating == nil {
			continue
		}
		ratingSum += *rec.Rating
		rated++
		// Ties keep the first-encountered record.
		if summary.TopRated == nil || *rec.Rating > *summary.TopRated.Rating {
			top := *rec
			summary.TopRated = &top
		}
	}
	if rated > 0 {
		summary.MeanRating = ratingSum / float64(rated)
		summary.HasRating = true
	}
	return summary
}
