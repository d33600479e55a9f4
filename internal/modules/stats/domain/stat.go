package domain

import (
	"math"
	"sort"
)

// DailyStat is the per-(date, app) usage rollup. Alert counts are exact
// on the live path and estimated on the synthesis path; Synthetic
// records which, so downstream analytics can keep the two apart.
type DailyStat struct {
	Date             string
	App              string
	TotalDurationMS  int64
	SessionCount     int
	LongestSessionMS int64
	AverageSessionMS int64
	AlertsShown      int
	AlertsProceeded  int
	Synthetic        bool
}

// Usage is the slice of a session the aggregator needs.
type Usage struct {
	App        string
	Date       string
	DurationMS int64
}

// EstimatePolicy controls the synthesis-only alert estimates. The live
// rollover aggregates with Enabled=false and fills counts from real
// telemetry instead.
type EstimatePolicy struct {
	Enabled              bool
	AlertShownFraction   float64
	AlertProceedFraction float64
}

// Aggregate groups usage by (date, app). Output is sorted by date then
// app, so it is invariant to input ordering.
func Aggregate(usage []Usage, policy EstimatePolicy, synthetic bool) []DailyStat {
	grouped := map[[2]string]*DailyStat{}
	for _, u := range usage {
		key := [2]string{u.Date, u.App}
		stat, ok := grouped[key]
		if !ok {
			stat = &DailyStat{Date: u.Date, App: u.App, Synthetic: synthetic}
			grouped[key] = stat
		}
		stat.TotalDurationMS += u.DurationMS
		stat.SessionCount++
		if u.DurationMS > stat.LongestSessionMS {
			stat.LongestSessionMS = u.DurationMS
		}
	}

	stats := make([]DailyStat, 0, len(grouped))
	for _, stat := range grouped {
		if stat.SessionCount > 0 {
			stat.AverageSessionMS = stat.TotalDurationMS / int64(stat.SessionCount)
		}
		if policy.Enabled {
			stat.AlertsShown = int(math.Round(float64(stat.SessionCount) * policy.AlertShownFraction))
			stat.AlertsProceeded = int(math.Round(float64(stat.AlertsShown) * policy.AlertProceedFraction))
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Date != stats[j].Date {
			return stats[i].Date < stats[j].Date
		}
		return stats[i].App < stats[j].App
	})
	return stats
}
