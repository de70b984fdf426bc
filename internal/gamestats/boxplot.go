package gamestats

import (
	"sort"

	"github.com/willbradshaw/gameplot/internal/model"
)

// Boxplot describes the rating distribution for one tag.
type Boxplot struct {
	Q1          float64
	Median      float64
	Q3          float64
	LowWhisker  float64
	HighWhisker float64
	Outliers    []float64
	Mean        float64
	Count       int
}

// TagBoxplot pairs a tag with its rating distribution.
type TagBoxplot struct {
	Tag string
	Box Boxplot
}

// TagBoxplots computes a boxplot per tag over the filtered subset's rated
// records. Tags without any rated record are omitted; a single rating is a
// valid one-point distribution. Results are ordered by descending mean
// rating, with the tag name breaking ties.
func TagBoxplots(filtered []model.GameRecord, tags []string) []TagBoxplot {
	out := make([]TagBoxplot, 0, len(tags))
	for _, tag := range tags {
		ratings := tagRatings(filtered, tag)
		if len(ratings) == 0 {
			continue
		}
		out = append(out, TagBoxplot{Tag: tag, Box: computeBoxplot(ratings)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Box.Mean == out[j].Box.Mean {
			return out[i].Tag < out[j].Tag
		}
		return out[i].Box.Mean > out[j].Box.Mean
	})
	return out
}

func tagRatings(filtered []model.GameRecord, tag string) []float64 {
	var ratings []float64
	for _, rec := range filtered {
		if rec.Rating == nil {
			continue
		}
		for _, t := range rec.Tags {
			if t == tag {
				ratings = append(ratings, *rec.Rating)
				break
			}
		}
	}
	return ratings
}

func computeBoxplot(ratings []float64) Boxplot {
	sorted := append([]float64(nil), ratings...)
	sort.Float64s(sorted)

	box := Boxplot{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Mean:   Mean(ratings),
		Count:  len(ratings),
	}
	iqr := box.Q3 - box.Q1
	box.LowWhisker = maxFloat(sorted[0], box.Q1-1.5*iqr)
	box.HighWhisker = minFloat(sorted[len(sorted)-1], box.Q3+1.5*iqr)
	for _, v := range sorted {
		if v < box.LowWhisker || v > box.HighWhisker {
			box.Outliers = append(box.Outliers, v)
		}
	}
	return box
}

// TopTagsByCount returns the n tags with the most rated records in the
// filtered subset, for the default boxplot view when no tags are selected.
func TopTagsByCount(filtered []model.GameRecord, tags []string, n int) []string {
	if n <= 0 || len(tags) == 0 {
		return nil
	}
	type item struct {
		tag   string
		count int
	}
	items := make([]item, 0, len(tags))
	for _, tag := range tags {
		if count := len(tagRatings(filtered, tag)); count > 0 {
			items = append(items, item{tag: tag, count: count})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].tag < items[j].tag
		}
		return items[i].count > items[j].count
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].tag)
	}
	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
