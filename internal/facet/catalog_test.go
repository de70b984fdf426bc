package facet

import (
	"reflect"
	"testing"

	"github.com/willbradshaw/gameplot/internal/model"
)

func rating(v float64) *float64 {
	return &v
}

func TestBuildCatalogSortsDistinctValues(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", Platforms: []string{"Steam", "PS5"}, Tags: []string{"RPG"}, Status: "Completed", LastPlayed: "2023-06-01"},
		{Title: "B", Platforms: []string{"Steam"}, Tags: []string{"Indie", "RPG"}, Status: "Playing", LastPlayed: "2023-01-15"},
		{Title: "C", Platforms: []string{"Switch"}, Tags: []string{"Indie"}, LastPlayed: "not-a-date"},
	}

	catalog := BuildCatalog(records)
	if got, want := catalog.Platforms, []string{"PS5", "Steam", "Switch"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("platforms = %v, want %v", got, want)
	}
	if got, want := catalog.Tags, []string{"Indie", "RPG"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if got, want := catalog.Statuses, []string{"Completed", "Playing", "Unknown"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	if !catalog.HasDates {
		t.Fatalf("expected a date extent")
	}
	if got := catalog.DateMin.Format(model.DateLayout); got != "2023-01-15" {
		t.Fatalf("date min = %s", got)
	}
	if got := catalog.DateMax.Format(model.DateLayout); got != "2023-06-01" {
		t.Fatalf("date max = %s", got)
	}
}

func TestBuildCatalogWithoutDates(t *testing.T) {
	records := []model.GameRecord{
		{Title: "A", LastPlayed: "garbage"},
		{Title: "B"},
	}
	catalog := BuildCatalog(records)
	if catalog.HasDates {
		t.Fatalf("expected no date extent, got [%v, %v]", catalog.DateMin, catalog.DateMax)
	}
	if got, want := catalog.RatingBuckets, RatingBuckets(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rating buckets = %v, want %v", got, want)
	}
}

func TestValidBucket(t *testing.T) {
	for _, b := range RatingBuckets() {
		if !ValidBucket(b) {
			t.Fatalf("bucket %q rejected", b)
		}
	}
	for _, b := range []string{"", "10-11", "7 - 8", "good"} {
		if ValidBucket(b) {
			t.Fatalf("accepted unknown bucket %q", b)
		}
	}
}

func TestBucketForBounds(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{0, BucketBelow5},
		{4.99, BucketBelow5},
		{5, Bucket5to6},
		{5.99, Bucket5to6},
		{6, Bucket6to7},
		{7, Bucket7to8},
		{8, Bucket8to9},
		{8.99, Bucket8to9},
		{9, Bucket9to10},
		{10, Bucket9to10},
		{10.5, ""},
		{-1, ""},
	}
	for _, tc := range cases {
		if got := BucketFor(tc.rating); got != tc.want {
			t.Fatalf("BucketFor(%v) = %q, want %q", tc.rating, got, tc.want)
		}
	}
}
