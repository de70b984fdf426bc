// Package facet derives the controlled vocabulary of filter facets from the
// loaded dataset.
package facet

import (
	"sort"
	"time"

	"github.com/willbradshaw/gameplot/internal/model"
)

// Bucket labels for the fixed rating facet, best to worst.
const (
	Bucket9to10  = "9-10"
	Bucket8to9   = "8-9"
	Bucket7to8   = "7-8"
	Bucket6to7   = "6-7"
	Bucket5to6   = "5-6"
	BucketBelow5 = "<5"
)

// Catalog holds the distinct value sets for each filterable facet, derived
// from the current dataset. It is a pure function of the records and is
// rebuilt wholesale whenever the dataset changes.
type Catalog struct {
	Platforms     []string
	Tags          []string
	Statuses      []string
	RatingBuckets []string

	// Date extent over records with a parseable last-played date. HasDates
	// is false when no record qualifies, in which case callers must treat
	// the date facet as unconstrained.
	DateMin  time.Time
	DateMax  time.Time
	HasDates bool
}

// RatingBuckets returns the fixed rating facet, best to worst. The catalog
// always offers all six buckets regardless of the data.
func RatingBuckets() []string {
	return []string{Bucket9to10, Bucket8to9, Bucket7to8, Bucket6to7, Bucket5to6, BucketBelow5}
}

// ValidBucket reports whether the label names one of the fixed rating
// buckets.
func ValidBucket(bucket string) bool {
	for _, b := range RatingBuckets() {
		if b == bucket {
			return true
		}
	}
	return false
}

// BucketFor maps a rating to its facet bucket. Buckets are half-open with
// an inclusive lower bound, except the top bucket which is closed at 10.
// Ratings outside 0-10 map to no bucket.
func BucketFor(rating float64) string {
	switch {
	case rating < 0 || rating > 10:
		return ""
	case rating < 5:
		return BucketBelow5
	case rating < 6:
		return Bucket5to6
	case rating < 7:
		return Bucket6to7
	case rating < 8:
		return Bucket7to8
	case rating < 9:
		return Bucket8to9
	default:
		return Bucket9to10
	}
}

// BuildCatalog derives the facet catalog from the given records. Platform
// and tag values are flattened across records; absent statuses are
// normalized to "Unknown". All derived sets are sorted lexicographically.
func BuildCatalog(records []model.GameRecord) Catalog {
	platforms := map[string]struct{}{}
	tags := map[string]struct{}{}
	statuses := map[string]struct{}{}

	catalog := Catalog{RatingBuckets: RatingBuckets()}
	for _, rec := range records {
		for _, p := range rec.Platforms {
			platforms[p] = struct{}{}
		}
		for _, t := range rec.Tags {
			tags[t] = struct{}{}
		}
		statuses[rec.StatusOrUnknown()] = struct{}{}

		date, ok := rec.LastPlayedDate()
		if !ok {
			continue
		}
		if !catalog.HasDates {
			catalog.DateMin = date
			catalog.DateMax = date
			catalog.HasDates = true
			continue
		}
		if date.Before(catalog.DateMin) {
			catalog.DateMin = date
		}
		if date.After(catalog.DateMax) {
			catalog.DateMax = date
		}
	}

	catalog.Platforms = sortedKeys(platforms)
	catalog.Tags = sortedKeys(tags)
	catalog.Statuses = sortedKeys(statuses)
	return catalog
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
