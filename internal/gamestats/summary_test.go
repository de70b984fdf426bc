package gamestats

import (
	"testing"

	"github.com/willbradshaw/gameplot/internal/model"
)

func TestSummarize(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Rating: ratingPtr(10), HoursTotal: 40},
		{Title: "B", Rating: ratingPtr(9), HoursTotal: 15},
		{Title: "C"},
	}

	summary := Summarize(records)
	if summary.Count != 3 {
		t.Fatalf("Count = %d, want 3", summary.Count)
	}
	if !summary.HasRating || !almostEqual(summary.MeanRating, 9.5) {
		t.Fatalf("MeanRating = %v (has=%v), want 9.5", summary.MeanRating, summary.HasRating)
	}
	if !almostEqual(summary.TotalHours, 55) {
		t.Fatalf("TotalHours = %v, want 55", summary.TotalHours)
	}
	if summary.TopRated == nil || summary.TopRated.Title != "A" {
		t.Fatalf("TopRated = %+v, want A", summary.TopRated)
	}
}

func TestSummarizeTieKeepsFirst(t *testing.T) {
	records := []model.GameRecord{
		{Title: "First", Rating: ratingPtr(9)},
		{Title: "Second", Rating: ratingPtr(9)},
	}
	summary := Summarize(records)
	if summary.TopRated == nil || summary.TopRated.Title != "First" {
		t.Fatalf("TopRated = %+v, want First", summary.TopRated)
	}
}

func TestSummarizeEmptyAndUnrated(t *testing.T) {
	summary := Summarize(nil)
	if summary.Count != 0 || summary.HasRating || summary.TopRated != nil {
		t.Fatalf("empty summary = %+v", summary)
	}

	summary = Summarize([]model.GameRecord{{Title: "A", HoursTotal: 3}})
	if summary.HasRating || summary.TopRated != nil {
		t.Fatalf("unrated-only summary should carry no rating, got %+v", summary)
	}
	if !almostEqual(summary.TotalHours, 3) {
		t.Fatalf("TotalHours = %v, want 3", summary.TotalHours)
	}
}
