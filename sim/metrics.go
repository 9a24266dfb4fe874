// Tracks per-run counters and daily series for one simulated horizon.

package sim

import (
	"fmt"
	"math"
	"slices"
)

// RunStatistics aggregates one run's counters and series. It is an immutable
// snapshot once the run completes and shares no slices with any other run.
// Every stored field is serialisable so a saved batch can be rebuilt without
// re-running the simulation.
type RunStatistics struct {
	TotalDays int `json:"total_days"`

	FirstFloorEndUnits []int `json:"first_floor_end_units"` // one entry per day
	BasementEndUnits   []int `json:"basement_end_units"`    // one entry per day

	TotalShortageDays   int `json:"total_shortage_days"`
	TotalShortageAmount int `json:"total_shortage_amount"`

	TotalDemand       int   `json:"total_demand"`
	DailyDemandValues []int `json:"daily_demand_values"` // one entry per day

	TotalOrders        int   `json:"total_orders"`
	TotalLeadTime      int   `json:"total_lead_time"`
	TotalOrderSize     int   `json:"total_order_size"`
	LeadTimes          []int `json:"lead_times"`           // one entry per order
	OrderSizes         []int `json:"order_sizes"`          // one entry per order
	OrderPlacementDays []int `json:"order_placement_days"` // one entry per order

	DeliveryDays   []int `json:"delivery_days"` // one entry per delivery
	DeliveredUnits int   `json:"delivered_units"`

	TotalTransfers   int   `json:"total_transfers"`
	TransferredUnits int   `json:"transferred_units"`
	TransferDays     []int `json:"transfer_days"` // one entry per transfer
}

func newRunStatistics(days int) *RunStatistics {
	return &RunStatistics{
		FirstFloorEndUnits: make([]int, 0, days),
		BasementEndUnits:   make([]int, 0, days),
		DailyDemandValues:  make([]int, 0, days),
		LeadTimes:          []int{},
		OrderSizes:         []int{},
		OrderPlacementDays: []int{},
		DeliveryDays:       []int{},
		TransferDays:       []int{},
	}
}

// ratio divides, returning NaN instead of ±Inf or a panic on a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// AvgEndingFirstFloor is the mean end-of-day first-floor stock. NaN for a zero-day run.
func (r *RunStatistics) AvgEndingFirstFloor() float64 {
	return ratio(float64(sumInts(r.FirstFloorEndUnits)), float64(r.TotalDays))
}

// AvgEndingBasement is the mean end-of-day basement stock. NaN for a zero-day run.
func (r *RunStatistics) AvgEndingBasement() float64 {
	return ratio(float64(sumInts(r.BasementEndUnits)), float64(r.TotalDays))
}

// AvgDailyDemand is TotalDemand / TotalDays. NaN for a zero-day run.
func (r *RunStatistics) AvgDailyDemand() float64 {
	return ratio(float64(r.TotalDemand), float64(r.TotalDays))
}

// AvgLeadTime is TotalLeadTime / TotalOrders. NaN when no order was placed.
func (r *RunStatistics) AvgLeadTime() float64 {
	return ratio(float64(r.TotalLeadTime), float64(r.TotalOrders))
}

// AvgOrderSize is TotalOrderSize / TotalOrders. NaN when no order was placed.
func (r *RunStatistics) AvgOrderSize() float64 {
	return ratio(float64(r.TotalOrderSize), float64(r.TotalOrders))
}

// HadShortage reports whether any day ended with unmet demand.
func (r *RunStatistics) HadShortage() bool {
	return r.TotalShortageDays > 0
}

// Deliveries is the number of orders that landed.
func (r *RunStatistics) Deliveries() int {
	return len(r.DeliveryDays)
}

// Clone returns a deep copy.
func (r *RunStatistics) Clone() *RunStatistics {
	c := *r
	c.FirstFloorEndUnits = slices.Clone(r.FirstFloorEndUnits)
	c.BasementEndUnits = slices.Clone(r.BasementEndUnits)
	c.DailyDemandValues = slices.Clone(r.DailyDemandValues)
	c.LeadTimes = slices.Clone(r.LeadTimes)
	c.OrderSizes = slices.Clone(r.OrderSizes)
	c.OrderPlacementDays = slices.Clone(r.OrderPlacementDays)
	c.DeliveryDays = slices.Clone(r.DeliveryDays)
	c.TransferDays = slices.Clone(r.TransferDays)
	return &c
}

// Validate checks the length and counter invariants a rebuilt run must satisfy.
func (r *RunStatistics) Validate() error {
	if r.TotalDays < 0 {
		return fmt.Errorf("total_days must be non-negative, got %d", r.TotalDays)
	}
	for name, n := range map[string]int{
		"first_floor_end_units": len(r.FirstFloorEndUnits),
		"basement_end_units":    len(r.BasementEndUnits),
		"daily_demand_values":   len(r.DailyDemandValues),
	} {
		if n != r.TotalDays {
			return fmt.Errorf("%s has %d entries, want total_days=%d", name, n, r.TotalDays)
		}
	}
	if len(r.LeadTimes) != r.TotalOrders || len(r.OrderSizes) != r.TotalOrders || len(r.OrderPlacementDays) != r.TotalOrders {
		return fmt.Errorf("order series lengths (%d lead times, %d sizes, %d placement days) disagree with total_orders=%d",
			len(r.LeadTimes), len(r.OrderSizes), len(r.OrderPlacementDays), r.TotalOrders)
	}
	if sumInts(r.DailyDemandValues) != r.TotalDemand {
		return fmt.Errorf("daily demand sums to %d, want total_demand=%d", sumInts(r.DailyDemandValues), r.TotalDemand)
	}
	if sumInts(r.LeadTimes) != r.TotalLeadTime {
		return fmt.Errorf("lead times sum to %d, want total_lead_time=%d", sumInts(r.LeadTimes), r.TotalLeadTime)
	}
	if sumInts(r.OrderSizes) != r.TotalOrderSize {
		return fmt.Errorf("order sizes sum to %d, want total_order_size=%d", sumInts(r.OrderSizes), r.TotalOrderSize)
	}
	return nil
}
