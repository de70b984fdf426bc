// Package model defines shared data structures.
package model

import "time"

// DateLayout is the calendar date format used throughout the play history.
const DateLayout = "2006-01-02"

// UnknownStatus is substituted for records without a status annotation.
const UnknownStatus = "Unknown"

// GameRecord is one merged entry in the play-history library. Platform-level
// slices (Platforms, HoursPerPlatform, URLs) are parallel and ordered by
// descending playtime, as produced by the merge pipeline.
type GameRecord struct {
	Title            string
	Platforms        []string
	Tags             []string
	Rating           *float64 // 0-10 when present
	Status           string   // open enumeration; "" means unannotated
	FirstPlayed      string   // raw ISO date, may be empty or malformed
	LastPlayed       string   // raw ISO date, may be empty or malformed
	HoursTotal       float64
	HoursPerPlatform []float64 // parallel to Platforms; nil when unknown
	Notes            string
	DisplayURL       string
	URLs             []string
}

// StatusOrUnknown returns the record's status, normalized for display and
// filtering.
func (g GameRecord) StatusOrUnknown() string {
	if g.Status == "" {
		return UnknownStatus
	}
	return g.Status
}

// LastPlayedDate parses the record's last-played date. The second return
// value reports whether the field held a valid calendar date.
func (g GameRecord) LastPlayedDate() (time.Time, bool) {
	return ParseDate(g.LastPlayed)
}

// ParseDate parses an ISO calendar date. Malformed input is reported, not
// an error: records with bad dates degrade instead of aborting a
// recomputation.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Selection is the shared filter state driving every dashboard view. An
// empty set means "no constraint" for every facet except Statuses, where an
// empty set admits nothing; the asymmetry matches the historical dashboard
// behavior and is relied on by the reset logic.
type Selection struct {
	Platforms     map[string]struct{}
	Tags          map[string]struct{}
	Statuses      map[string]struct{}
	RatingBuckets map[string]struct{}
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
}

// NewSelection returns an unconstrained selection over the given statuses.
// Since an empty status set rejects everything, "unconstrained" means all
// observed statuses selected.
func NewSelection(statuses []string) Selection {
	sel := Selection{
		Platforms:     map[string]struct{}{},
		Tags:          map[string]struct{}{},
		Statuses:      map[string]struct{}{},
		RatingBuckets: map[string]struct{}{},
	}
	for _, s := range statuses {
		sel.Statuses[s] = struct{}{}
	}
	return sel
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := Selection{
		Platforms:     cloneSet(s.Platforms),
		Tags:          cloneSet(s.Tags),
		Statuses:      cloneSet(s.Statuses),
		RatingBuckets: cloneSet(s.RatingBuckets),
		Search:        s.Search,
	}
	if s.StartDate != nil {
		start := *s.StartDate
		out.StartDate = &start
	}
	if s.EndDate != nil {
		end := *s.EndDate
		out.EndDate = &end
	}
	return out
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}
