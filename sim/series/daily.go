// Package series derives chart-ready series from a batch's per-run statistics:
// cross-run daily means with confidence bands, histograms, per-run counts and
// a review timeline. Nothing here renders; callers plot or print the values.
package series

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/inventory-sim/inventory-sim/sim"
)

// z95 is the two-sided normal quantile for a 95% confidence interval.
const z95 = 1.96

// DailySelector picks one per-day series out of a run.
type DailySelector func(*sim.RunStatistics) []int

// Predefined selectors.
var (
	FirstFloorEnd DailySelector = func(r *sim.RunStatistics) []int { return r.FirstFloorEndUnits }
	BasementEnd   DailySelector = func(r *sim.RunStatistics) []int { return r.BasementEndUnits }
	DailyDemand   DailySelector = func(r *sim.RunStatistics) []int { return r.DailyDemandValues }
)

// DailyPoint is one day's cross-run mean and its 95% confidence interval.
type DailyPoint struct {
	Day   int
	Mean  float64
	Lower float64
	Upper float64
}

// DailyMeanWithCI computes, for each day, the mean of selector's value across
// runs and the interval mean ± 1.96·s/√n using the sample standard deviation.
// With fewer than two runs the interval collapses onto the mean.
// The series is as long as the shortest run.
func DailyMeanWithCI(runs []*sim.RunStatistics, selector DailySelector) []DailyPoint {
	days := commonDays(runs, selector)
	points := make([]DailyPoint, 0, days)
	column := make([]float64, len(runs))
	for d := 0; d < days; d++ {
		for i, r := range runs {
			column[i] = float64(selector(r)[d])
		}
		p := DailyPoint{Day: d + 1}
		if len(column) < 2 {
			p.Mean = column[0]
			p.Lower, p.Upper = p.Mean, p.Mean
		} else {
			var variance float64
			p.Mean, variance = stat.MeanVariance(column, nil)
			half := z95 * math.Sqrt(variance) / math.Sqrt(float64(len(column)))
			p.Lower, p.Upper = p.Mean-half, p.Mean+half
		}
		points = append(points, p)
	}
	return points
}

// DualPoint carries both locations' mean ending stock for one day.
type DualPoint struct {
	Day        int
	FirstFloor float64
	Basement   float64
}

// DailyMeans returns the cross-run mean ending stock of both locations per day.
func DailyMeans(runs []*sim.RunStatistics) []DualPoint {
	ff := DailyMeanWithCI(runs, FirstFloorEnd)
	b := DailyMeanWithCI(runs, BasementEnd)
	n := min(len(ff), len(b))
	points := make([]DualPoint, n)
	for i := 0; i < n; i++ {
		points[i] = DualPoint{Day: ff[i].Day, FirstFloor: ff[i].Mean, Basement: b[i].Mean}
	}
	return points
}

func commonDays(runs []*sim.RunStatistics, selector DailySelector) int {
	if len(runs) == 0 {
		return 0
	}
	days := math.MaxInt
	for _, r := range runs {
		days = min(days, len(selector(r)))
	}
	return days
}
