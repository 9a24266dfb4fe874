package series

import (
	"slices"

	"github.com/inventory-sim/inventory-sim/sim"
)

// RunSelector picks a per-run count.
type RunSelector func(*sim.RunStatistics) int

// Predefined per-run selectors.
var (
	ShortageDays RunSelector = func(r *sim.RunStatistics) int { return r.TotalShortageDays }
	Transfers    RunSelector = func(r *sim.RunStatistics) int { return r.TotalTransfers }
)

// RunPoint is one run's value of a per-run count. Run numbers start at 1.
type RunPoint struct {
	Run   int
	Value int
}

// PerRun maps every run to selector's value, in run order.
func PerRun(runs []*sim.RunStatistics, selector RunSelector) []RunPoint {
	points := make([]RunPoint, len(runs))
	for i, r := range runs {
		points[i] = RunPoint{Run: i + 1, Value: selector(r)}
	}
	return points
}

// TimelineKind labels a review timeline point.
type TimelineKind string

const (
	OrderPlaced    TimelineKind = "order"
	OrderDelivered TimelineKind = "delivery"
)

// TimelinePoint is a day on which an order was placed or delivered.
type TimelinePoint struct {
	Day  int
	Kind TimelineKind
}

// ReviewTimeline merges a run's order placement and delivery days in day order.
// On a shared day the delivery comes first, as it does within the day loop.
func ReviewTimeline(run *sim.RunStatistics) []TimelinePoint {
	points := make([]TimelinePoint, 0, len(run.OrderPlacementDays)+len(run.DeliveryDays))
	for _, d := range run.DeliveryDays {
		points = append(points, TimelinePoint{Day: d, Kind: OrderDelivered})
	}
	for _, d := range run.OrderPlacementDays {
		points = append(points, TimelinePoint{Day: d, Kind: OrderPlaced})
	}
	slices.SortStableFunc(points, func(a, b TimelinePoint) int { return a.Day - b.Day })
	return points
}
