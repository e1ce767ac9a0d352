package metrics

import (
	"math"
)

// TrafficAnalysis compares the most recent week of visits against the week
// before it.
type TrafficAnalysis struct {
	Available    bool
	Trend        string // "up", "down", or "flat"
	Last7Avg     float64
	Previous7Avg float64
	ChangePct    float64
}

// flatBandPct is the change below which the trend reads as flat rather than
// a real movement.
const flatBandPct = 1.0

// AnalyzeTraffic computes a week-over-week trend from a chronological daily
// visit series. At least 14 samples are required; with fewer the analysis
// is reported as unavailable.
func AnalyzeTraffic(points []TrafficPoint) TrafficAnalysis {
	if len(points) < 14 {
		return TrafficAnalysis{Available: false}
	}

	last := points[len(points)-7:]
	previous := points[len(points)-14 : len(points)-7]

	lastAvg := average(last)
	prevAvg := average(previous)

	var changePct float64
	if prevAvg != 0 {
		changePct = round2((lastAvg - prevAvg) / prevAvg * 100)
	}

	trend := "flat"
	switch {
	case changePct > flatBandPct:
		trend = "up"
	case changePct < -flatBandPct:
		trend = "down"
	}

	return TrafficAnalysis{
		Available:    true,
		Trend:        trend,
		Last7Avg:     round2(lastAvg),
		Previous7Avg: round2(prevAvg),
		ChangePct:    changePct,
	}
}

func average(points []TrafficPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Visits
	}
	return float64(sum) / float64(len(points))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
