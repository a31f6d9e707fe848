package models

import "time"

// ForecastEntry is the representative reading chosen for one future day
type ForecastEntry struct {
	Date time.Time // local midnight of the day
	Snapshot
}

// BucketByDay collapses forecast points to one entry per calendar day in
// now's location. Points dated today are skipped; for every other date the
// first point encountered is kept and later ones are discarded. Output order
// follows first encounter.
func BucketByDay(points []ForecastPoint, now time.Time) []ForecastEntry {
	loc := now.Location()
	today := startOfDay(now)

	seen := make(map[time.Time]bool)
	entries := make([]ForecastEntry, 0, 5)

	for _, p := range points {
		day := startOfDay(p.Time(loc))
		if day.Equal(today) || seen[day] {
			continue
		}
		seen[day] = true

		snap := Snapshot{
			TempC:     p.Main.Temp,
			Humidity:  p.Main.Humidity,
			WindSpeed: p.Wind.Speed,
		}
		if len(p.Weather) > 0 {
			snap.Description = p.Weather[0].Description
			snap.Icon = p.Weather[0].Icon
		}
		entries = append(entries, ForecastEntry{Date: day, Snapshot: snap})
	}
	return entries
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
