package gamestats

import (
	"time"

	"github.com/willbradshaw/gameplot/internal/model"
)

// TimelinePoint aggregates one calendar month of play activity.
type TimelinePoint struct {
	Month      time.Time
	Hours      float64
	MeanRating float64
	Rated      int
	Count      int
}

// MonthlyTimeline buckets the filtered subset by the month of each
// record's last-played date, returning a contiguous month range from the
// earliest to the latest observed month. Records without a parseable date
// are skipped.
func MonthlyTimeline(filtered []model.GameRecord) []TimelinePoint {
	type acc struct {
		hours     float64
		ratingSum float64
		rated     int
		count     int
	}
	months := map[time.Time]*acc{}
	var first, last time.Time
	for _, rec := range filtered {
		date, ok := rec.LastPlayedDate()
		if !ok {
			continue
		}
		month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		a, ok := months[month]
		if !ok {
			a = &acc{}
			months[month] = a
		}
		a.hours += rec.HoursTotal
		a.count++
		if rec.Rating != nil {
			a.ratingSum += *rec.Rating
			a.rated++
		}
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
	}
	if len(months) == 0 {
		return nil
	}

	var out []TimelinePoint
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		point := TimelinePoint{Month: month}
		if a, ok := months[month]; ok {
			point.Hours = a.hours
			point.Count = a.count
			point.Rated = a.rated
			if a.rated > 0 {
				point.MeanRating = a.ratingSum / float64(a.rated)
			}
		}
		out = append(out, point)
	}
	return out
}

// TimelineSeries converts the monthly timeline into plottable series.
func TimelineSeries(points []TimelinePoint) []Series {
	if len(points) == 0 {
		return nil
	}
	hours := make([]float64, len(points))
	ratings := make([]float64, len(points))
	for i, p := range points {
		hours[i] = p.Hours
		ratings[i] = p.MeanRating
	}
	return []Series{
		{Name: "Hours", Values: hours},
		{Name: "Mean rating", Values: ratings},
	}
}

// RatingHoursPoints extracts the playtime-vs-rating scatter data: one
// point per rated record.
func RatingHoursPoints(filtered []model.GameRecord) (hours, ratings []float64) {
	for _, rec := range filtered {
		if rec.Rating == nil {
			continue
		}
		hours = append(hours, rec.HoursTotal)
		ratings = append(ratings, *rec.Rating)
	}
	return hours, ratings
}
