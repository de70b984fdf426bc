package gamestats

import (
	"testing"

	"github.com/willbradshaw/gameplot/internal/model"
)

func TestAggregateHoursPlatformVsTag(t *testing.T) {
	records := []model.GameRecord{
		{
			Title:            "Elden Ring",
			Platforms:        []string{"PS5", "Steam"},
			HoursPerPlatform: []float64{10, 5},
			HoursTotal:       15,
			Tags:             []string{"RPG", "Souls-like"},
		},
	}

	byPlatform := AggregateHours(records, ByPlatform)
	if len(byPlatform) != 2 {
		t.Fatalf("platform buckets = %+v, want 2", byPlatform)
	}
	if byPlatform[0].Category != "PS5" || !almostEqual(byPlatform[0].TotalHours, 10) {
		t.Fatalf("first platform bucket = %+v, want PS5/10", byPlatform[0])
	}
	if byPlatform[1].Category != "Steam" || !almostEqual(byPlatform[1].TotalHours, 5) {
		t.Fatalf("second platform bucket = %+v, want Steam/5", byPlatform[1])
	}

	// Tags multi-count the full total on purpose.
	byTag := AggregateHours(records, ByTag)
	if len(byTag) != 2 {
		t.Fatalf("tag buckets = %+v, want 2", byTag)
	}
	for _, b := range byTag {
		if !almostEqual(b.TotalHours, 15) {
			t.Fatalf("tag bucket %q hours = %v, want 15", b.Category, b.TotalHours)
		}
	}
}

func TestAggregateHoursStatus(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Status: "Completed", HoursTotal: 20},
		{Title: "B", Status: "Completed", HoursTotal: 10},
		{Title: "C", HoursTotal: 5},
	}

	buckets := AggregateHours(records, ByStatus)
	if len(buckets) != 2 {
		t.Fatalf("status buckets = %+v, want 2", buckets)
	}
	if buckets[0].Category != "Completed" || !almostEqual(buckets[0].TotalHours, 30) || buckets[0].GameCount != 2 {
		t.Fatalf("first status bucket = %+v", buckets[0])
	}
	if buckets[1].Category != model.UnknownStatus || !almostEqual(buckets[1].TotalHours, 5) {
		t.Fatalf("second status bucket = %+v, want Unknown/5", buckets[1])
	}
}

func TestAggregateHoursRatingOrder(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Rating: ratingPtr(4), HoursTotal: 100},
		{Title: "B", Rating: ratingPtr(9.5), HoursTotal: 1},
		{Title: "C", Rating: ratingPtr(7.2), HoursTotal: 50},
		{Title: "D", HoursTotal: 30},
	}

	buckets := AggregateHours(records, ByRating)
	got := make([]string, 0, len(buckets))
	for _, b := range buckets {
		got = append(got, b.Category)
	}
	// Fixed best-to-worst order regardless of hours.
	want := []string{"9-10", "7-8", "<5"}
	if len(got) != len(want) {
		t.Fatalf("rating buckets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rating buckets = %v, want %v", got, want)
		}
	}
}

func TestAggregateHoursDropsZeroBuckets(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Platforms: []string{"Steam", "Switch"}, HoursPerPlatform: []float64{12, 0}, HoursTotal: 12},
	}
	buckets := AggregateHours(records, ByPlatform)
	if len(buckets) != 1 || buckets[0].Category != "Steam" {
		t.Fatalf("buckets = %+v, want only Steam", buckets)
	}
}

func TestAggregateHoursDoesNotMutateInput(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Tags: []string{"RPG"}, HoursTotal: 8},
	}
	_ = AggregateHours(records, ByTag)
	_ = AggregateHours(records, ByStatus)
	if records[0].HoursTotal != 8 || len(records[0].Tags) != 1 {
		t.Fatalf("input mutated: %+v", records[0])
	}
}
