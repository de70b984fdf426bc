package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/willbradshaw/gameplot/internal/gamestats"
	"github.com/willbradshaw/gameplot/internal/model"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func testModel() *Model {
	records := []model.GameRecord{
		{
			Title: "Hades", Platforms: []string{"Steam"}, HoursPerPlatform: []float64{42},
			HoursTotal: 42, Tags: []string{"Roguelike"}, Status: "Completed",
			Rating: ratingPtr(9), LastPlayed: "2024-02-10",
		},
		{
			Title: "Celeste", Platforms: []string{"Switch"}, HoursPerPlatform: []float64{20},
			HoursTotal: 20, Tags: []string{"Platformer"}, Status: "Playing",
			Rating: ratingPtr(8), LastPlayed: "2024-01-05",
		},
	}
	return NewModel(records, gamestats.ByPlatform)
}

func TestNewModelDefaults(t *testing.T) {
	m := testModel()
	if len(m.rep.Filtered) != 2 {
		t.Fatalf("default selection filtered %d records, want 2", len(m.rep.Filtered))
	}
	if len(m.sel.Statuses) != 2 {
		t.Fatalf("default selection statuses = %v", m.sel.Statuses)
	}
}

func TestHeaderShowsLastImported(t *testing.T) {
	m := testModel()
	if got := m.renderFilterSummary(); strings.Contains(got, "updated") {
		t.Fatalf("header shows an import time before one is set: %q", got)
	}
	m.SetLastImported(time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC))
	if got := m.renderFilterSummary(); !strings.Contains(got, "updated 2024-03-09") {
		t.Fatalf("header = %q, want the import date", got)
	}
}

func TestFilterFormDatePlaceholders(t *testing.T) {
	m := testModel()
	if got := m.filterInputs[4].Placeholder; got != "2024-01-05" {
		t.Fatalf("from placeholder = %q", got)
	}
	if got := m.filterInputs[5].Placeholder; got != "2024-02-10" {
		t.Fatalf("to placeholder = %q", got)
	}

	undated := NewModel([]model.GameRecord{{Title: "A"}}, gamestats.ByPlatform)
	if got := undated.filterInputs[4].Placeholder; got != "" {
		t.Fatalf("undated from placeholder = %q, want empty", got)
	}
}

func TestApplyFilter(t *testing.T) {
	m := testModel()
	m.filterInputs[0].SetValue("Steam")
	m.filterInputs[4].SetValue("2024-01-01")
	m.filterInputs[5].SetValue("2024-12-31")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("applyFilter: %v", err)
	}
	if _, ok := m.sel.Platforms["Steam"]; !ok || len(m.sel.Platforms) != 1 {
		t.Fatalf("platforms = %v", m.sel.Platforms)
	}
	// An empty statuses field restores the full status set.
	if len(m.sel.Statuses) != 2 {
		t.Fatalf("statuses = %v, want all", m.sel.Statuses)
	}
	if m.sel.StartDate == nil || m.sel.EndDate == nil {
		t.Fatalf("dates not applied: %+v", m.sel)
	}

	m.refresh()
	if len(m.rep.Filtered) != 1 || m.rep.Filtered[0].Title != "Hades" {
		t.Fatalf("filtered = %+v", m.rep.Filtered)
	}
}

func TestApplyFilterRejectsBadInput(t *testing.T) {
	m := testModel()
	m.filterInputs[4].SetValue("01/02/2024")
	if err := m.applyFilter(); err == nil {
		t.Fatal("expected error for malformed date")
	}

	m = testModel()
	m.filterInputs[3].SetValue("11-12")
	if err := m.applyFilter(); err == nil {
		t.Fatal("expected error for unknown rating bucket")
	}

	m = testModel()
	m.filterInputs[4].SetValue("2024-06-01")
	m.filterInputs[5].SetValue("2024-01-01")
	if err := m.applyFilter(); err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestSearchDebounceIgnoresStaleTicks(t *testing.T) {
	m := testModel()
	m.searchInput.SetValue("hade")
	m.searchSeq = 5

	if _, _ = m.Update(searchTickMsg{seq: 3}); m.sel.Search != "" {
		t.Fatalf("stale tick applied search %q", m.sel.Search)
	}
	if _, _ = m.Update(searchTickMsg{seq: 5}); m.sel.Search != "hade" {
		t.Fatalf("current tick did not apply search, got %q", m.sel.Search)
	}
	if len(m.rep.Filtered) != 1 || m.rep.Filtered[0].Title != "Hades" {
		t.Fatalf("filtered = %+v", m.rep.Filtered)
	}
}

func TestCycleDimension(t *testing.T) {
	m := testModel()
	seen := map[gamestats.Dimension]bool{m.dim: true}
	for i := 0; i < len(gamestats.Dimensions())-1; i++ {
		m.cycleDimension()
		seen[m.dim] = true
	}
	if len(seen) != len(gamestats.Dimensions()) {
		t.Fatalf("cycling visited %d dimensions, want %d", len(seen), len(gamestats.Dimensions()))
	}
	m.cycleDimension()
	if m.dim != gamestats.ByPlatform {
		t.Fatalf("cycle did not wrap, dim = %v", m.dim)
	}
}

func TestSplitAndJoinSet(t *testing.T) {
	set := splitSet(" RPG , Souls-like ,, ")
	if len(set) != 2 {
		t.Fatalf("splitSet = %v", set)
	}
	if joined := joinSet(set); joined != "RPG, Souls-like" {
		t.Fatalf("joinSet = %q", joined)
	}
	if joined := joinSet(nil); joined != "" {
		t.Fatalf("joinSet(nil) = %q", joined)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb", 3, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 3 {
			t.Fatalf("line %d = %q, want width 3", i, line)
		}
	}
	if truncateLine("abcdefgh", 6) != "abc..." {
		t.Fatalf("truncateLine = %q", truncateLine("abcdefgh", 6))
	}
}
