package gamestats

import (
	"testing"
	"time"

	"github.com/willbradshaw/gameplot/internal/model"
)

func TestMonthlyTimelineContiguousRange(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", LastPlayed: "2024-01-15", HoursTotal: 10, Rating: ratingPtr(8)},
		{Title: "B", LastPlayed: "2024-03-02", HoursTotal: 4},
		{Title: "C", LastPlayed: "2024-01-20", HoursTotal: 6, Rating: ratingPtr(6)},
		{Title: "D", LastPlayed: "unknown", HoursTotal: 99},
	}

	points := MonthlyTimeline(records)
	if len(points) != 3 {
		t.Fatalf("expected 3 contiguous months, got %d", len(points))
	}

	jan := points[0]
	if jan.Month != time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("first month = %v", jan.Month)
	}
	if !almostEqual(jan.Hours, 16) || jan.Count != 2 || jan.Rated != 2 {
		t.Fatalf("january point = %+v", jan)
	}
	if !almostEqual(jan.MeanRating, 7) {
		t.Fatalf("january mean rating = %v, want 7", jan.MeanRating)
	}

	feb := points[1]
	if feb.Count != 0 || feb.Hours != 0 {
		t.Fatalf("gap month should be empty, got %+v", feb)
	}

	mar := points[2]
	if !almostEqual(mar.Hours, 4) || mar.Rated != 0 {
		t.Fatalf("march point = %+v", mar)
	}
}

func TestMonthlyTimelineEmpty(t *testing.T) {
	if points := MonthlyTimeline(nil); points != nil {
		t.Fatalf("expected nil timeline, got %v", points)
	}
	records := []model.GameRecord{{Title: "A", LastPlayed: "not-a-date"}}
	if points := MonthlyTimeline(records); points != nil {
		t.Fatalf("expected nil timeline for undated records, got %v", points)
	}
}

func TestRatingHoursPoints(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Rating: ratingPtr(8), HoursTotal: 12},
		{Title: "B", HoursTotal: 50},
		{Title: "C", Rating: ratingPtr(6.5), HoursTotal: 3},
	}
	hours, ratings := RatingHoursPoints(records)
	if len(hours) != 2 || len(ratings) != 2 {
		t.Fatalf("expected 2 points, got %d/%d", len(hours), len(ratings))
	}
	if !almostEqual(hours[0], 12) || !almostEqual(ratings[1], 6.5) {
		t.Fatalf("points = %v / %v", hours, ratings)
	}
}
