package domain

import (
	"math"
	"sort"
)

// SortResults returns a copy of results in chronological game order.
func SortResults(results []GameResult) []GameResult {
	sorted := append([]GameResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key.Before(sorted[j].Key) })
	return sorted
}

// ReplayAggregates derives a player's aggregate fields from their full game
// history. The input order does not matter.
func ReplayAggregates(results []GameResult) Aggregates {
	if len(results) == 0 {
		return Aggregates{}
	}

	var agg Aggregates
	var cumulative float64
	for _, r := range SortResults(results) {
		cumulative += r.Net

		agg.HighestNet = math.Max(agg.HighestNet, cumulative)
		agg.LowestNet = math.Min(agg.LowestNet, cumulative)

		switch {
		case r.Net > 0:
			agg.GamesUp++
			agg.BiggestWin = math.Max(agg.BiggestWin, r.Net)
		case r.Net < 0:
			agg.GamesDown++
			agg.BiggestLoss = math.Min(agg.BiggestLoss, r.Net)
		}
	}

	agg.Net = cumulative
	agg.AverageNet = cumulative / float64(len(results))
	return agg
}

// Timeline places each result on the chronological cumulative-net curve.
func Timeline(results []GameResult) []HistoryPoint {
	sorted := SortResults(results)
	points := make([]HistoryPoint, len(sorted))
	var cumulative float64
	for i, r := range sorted {
		cumulative += r.Net
		points[i] = HistoryPoint{GameResult: r, Cumulative: cumulative}
	}
	return points
}
