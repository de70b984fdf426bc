package gamestats

import (
	"testing"

	"github.com/willbradshaw/gameplot/internal/model"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func ratedGame(title string, rating float64, tags ...string) model.GameRecord {
	return model.GameRecord{Title: title, Rating: ratingPtr(rating), Tags: tags}
}

func TestTagBoxplotOutliers(t *testing.T) {
	ratings := []float64{1.0, 8.0, 8.2, 8.3, 8.5, 8.7, 9.9}
	records := make([]model.GameRecord, 0, len(ratings))
	for i, r := range ratings {
		records = append(records, ratedGame(string(rune('A'+i)), r, "RPG"))
	}

	boxplots := TagBoxplots(records, []string{"RPG"})
	if len(boxplots) != 1 {
		t.Fatalf("expected 1 boxplot, got %d", len(boxplots))
	}
	box := boxplots[0].Box

	if !almostEqual(box.Q1, 8.1) || !almostEqual(box.Median, 8.3) || !almostEqual(box.Q3, 8.6) {
		t.Fatalf("quartiles = %v/%v/%v, want 8.1/8.3/8.6", box.Q1, box.Median, box.Q3)
	}
	if !almostEqual(box.LowWhisker, 7.35) || !almostEqual(box.HighWhisker, 9.35) {
		t.Fatalf("whiskers = %v/%v, want 7.35/9.35", box.LowWhisker, box.HighWhisker)
	}
	if len(box.Outliers) != 2 || !almostEqual(box.Outliers[0], 1.0) || !almostEqual(box.Outliers[1], 9.9) {
		t.Fatalf("outliers = %v, want [1 9.9]", box.Outliers)
	}
	if box.Count != 7 {
		t.Fatalf("count = %d, want 7", box.Count)
	}
}

func TestTagBoxplotSingleRating(t *testing.T) {
	boxplots := TagBoxplots([]model.GameRecord{ratedGame("A", 7.5, "Indie")}, []string{"Indie"})
	if len(boxplots) != 1 {
		t.Fatalf("expected 1 boxplot, got %d", len(boxplots))
	}
	box := boxplots[0].Box
	if !almostEqual(box.Q1, 7.5) || !almostEqual(box.Median, 7.5) || !almostEqual(box.Q3, 7.5) {
		t.Fatalf("one-point distribution collapsed wrong: %+v", box)
	}
	if len(box.Outliers) != 0 {
		t.Fatalf("one-point distribution has outliers: %v", box.Outliers)
	}
}

func TestTagBoxplotsOrderAndOmission(t *testing.T) {
	records := []model.GameRecord{
		ratedGame("A", 6, "Strategy"),
		ratedGame("B", 9, "RPG"),
		ratedGame("C", 9, "Action"),
		{Title: "D", Tags: []string{"Unrated"}},
	}

	boxplots := TagBoxplots(records, []string{"Strategy", "RPG", "Unrated", "Action"})
	got := make([]string, 0, len(boxplots))
	for _, tb := range boxplots {
		got = append(got, tb.Tag)
	}
	want := []string{"Action", "RPG", "Strategy"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags = %v, want %v", got, want)
		}
	}
}

func TestTopTagsByCount(t *testing.T) {
	records := []model.GameRecord{
		ratedGame("A", 8, "RPG", "Indie"),
		ratedGame("B", 7, "RPG"),
		ratedGame("C", 6, "Indie"),
		ratedGame("D", 9, "RPG"),
		{Title: "E", Tags: []string{"Shooter"}},
	}

	got := TopTagsByCount(records, []string{"Indie", "RPG", "Shooter"}, 2)
	if len(got) != 2 || got[0] != "RPG" || got[1] != "Indie" {
		t.Fatalf("TopTagsByCount = %v, want [RPG Indie]", got)
	}
	if got := TopTagsByCount(records, []string{"Shooter"}, 3); len(got) != 0 {
		t.Fatalf("tags without rated games should be skipped, got %v", got)
	}
}
