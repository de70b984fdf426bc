package gamestats

import (
	"sort"

	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/model"
)

// Dimension selects the category axis for hours aggregation.
type Dimension string

// Aggregation dimensions supported by the hours view.
const (
	ByPlatform Dimension = "platform"
	ByTag      Dimension = "tag"
	ByStatus   Dimension = "status"
	ByRating   Dimension = "rating"
)

// Dimensions lists the aggregation dimensions in cycling order.
func Dimensions() []Dimension {
	return []Dimension{ByPlatform, ByTag, ByStatus, ByRating}
}

// Bucket is one category's aggregated playtime.
type Bucket struct {
	Category   string
	TotalHours float64
	GameCount  int
}

// AggregateHours totals playtime per category value of the chosen
// dimension. Contribution rules differ per dimension:
//
//   - platform: each record contributes its platform-level hours to each of
//     its platforms, so the per-platform totals sum to the true total;
//   - tag: each record contributes its full total hours to every tag it
//     carries, so tag totals intentionally multi-count shared games;
//   - status and rating bucket: single-valued, one bucket per record
//     (absent status counts as Unknown, unrated records are excluded from
//     the rating dimension).
//
// Zero-hour buckets are dropped. The rating dimension keeps the fixed
// best-to-worst bucket order; every other dimension sorts by descending
// total hours.
func AggregateHours(filtered []model.GameRecord, dim Dimension) []Bucket {
	totals := map[string]*Bucket{}
	add := func(category string, hours float64) {
		b, ok := totals[category]
		if !ok {
			b = &Bucket{Category: category}
			totals[category] = b
		}
		b.TotalHours += hours
		b.GameCount++
	}

	for _, rec := range filtered {
		switch dim {
		case ByPlatform:
			for i, platform := range rec.Platforms {
				add(platform, platformHours(rec, i))
			}
		case ByTag:
			for _, tag := range rec.Tags {
				add(tag, rec.HoursTotal)
			}
		case ByStatus:
			add(rec.StatusOrUnknown(), rec.HoursTotal)
		case ByRating:
			if rec.Rating == nil {
				continue
			}
			if bucket := facet.BucketFor(*rec.Rating); bucket != "" {
				add(bucket, rec.HoursTotal)
			}
		}
	}

	out := make([]Bucket, 0, len(totals))
	for _, b := range totals {
		if b.TotalHours == 0 {
			continue
		}
		out = append(out, *b)
	}

	if dim == ByRating {
		order := map[string]int{}
		for i, bucket := range facet.RatingBuckets() {
			order[bucket] = i
		}
		sort.Slice(out, func(i, j int) bool {
			return order[out[i].Category] < order[out[j].Category]
		})
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHours == out[j].TotalHours {
			return out[i].Category < out[j].Category
		}
		return out[i].TotalHours > out[j].TotalHours
	})
	return out
}

// platformHours returns the record's playtime on the i-th platform,
// falling back to 0 when the parallel hours slice is missing or short.
func platformHours(rec model.GameRecord, i int) float64 {
	if i < 0 || i >= len(rec.HoursPerPlatform) {
		return 0
	}
	return rec.HoursPerPlatform[i]
}
