// Package forecast turns the provider's 3-hour forecast feed into daily summaries.
package forecast

import (
	"math"
	"sort"
	"time"

	"weather-widget/models"
)

// MaxDays is the number of daily summaries kept
const MaxDays = 5

// noonHour is the time of day whose sample represents the whole day
const noonHour = 12.0

type dayGroup struct {
	date   time.Time
	min    float64
	max    float64
	rep    models.ForecastSample
	repGap float64
}

// BuildDaily groups samples by calendar date and reduces each group to a
// DailySummary. The result is chronological and holds at most MaxDays entries.
func BuildDaily(samples []models.ForecastSample) []models.DailySummary {
	groups := make([]*dayGroup, 0, MaxDays+1)
	index := make(map[string]*dayGroup)

	for _, s := range samples {
		date := dateOf(s.Timestamp)
		gap := noonGap(s.Timestamp)

		key := date.Format(time.DateOnly)
		g, ok := index[key]
		if !ok {
			g = &dayGroup{date: date, min: s.MinTemp, max: s.MaxTemp, rep: s, repGap: gap}
			index[key] = g
			groups = append(groups, g)
			continue
		}

		g.min = math.Min(g.min, s.MinTemp)
		g.max = math.Max(g.max, s.MaxTemp)
		// strictly closer only, so the first sample wins ties
		if gap < g.repGap {
			g.rep = s
			g.repGap = gap
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].date.Before(groups[j].date)
	})

	if len(groups) > MaxDays {
		groups = groups[:MaxDays]
	}

	daily := make([]models.DailySummary, 0, len(groups))
	for _, g := range groups {
		daily = append(daily, models.DailySummary{
			Date:        g.date,
			MinTemp:     int(math.Round(g.min)),
			MaxTemp:     int(math.Round(g.max)),
			Icon:        g.rep.Icon,
			Description: g.rep.Description,
		})
	}
	return daily
}

// dateOf truncates t to midnight in t's own location
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// noonGap is the distance in hours between t's time of day and 12:00
func noonGap(t time.Time) float64 {
	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return math.Abs(hours - noonHour)
}
