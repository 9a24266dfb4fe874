package sim

// Inventory is the stock held at each location.
// Invariant: 0 <= units <= the location's MaxCapacity.
type Inventory struct {
	FirstFloorUnits int
	BasementUnits   int
}

// DemandState is the demand sampled for the current day.
type DemandState struct {
	CurrentDemand int
	RoomsOccupied int
}

// PendingOrder is a replenishment order awaiting delivery to the basement.
type PendingOrder struct {
	Size             int `json:"size"`               // units ordered (basement capacity minus stock at review)
	LeadTime         int `json:"lead_time"`          // sampled lead time in days
	DaysTillDelivery int `json:"days_till_delivery"` // countdown; the order lands when it reads 0 at the start of a day
}

// RunState is the mutable per-day state of one run. Order is nil when no
// order is pending.
type RunState struct {
	Inventory      Inventory
	Demand         DemandState
	Order          *PendingOrder
	TimeTillReview int
}

// HasOrder reports whether an order is pending.
func (s *RunState) HasOrder() bool {
	return s.Order != nil
}

// newRunState resets state from configuration: start units, a full review
// interval, no pending order.
func newRunState(cfg *Config) RunState {
	return RunState{
		Inventory: Inventory{
			FirstFloorUnits: cfg.FirstFloor.StartUnits,
			BasementUnits:   cfg.Basement.StartUnits,
		},
		TimeTillReview: cfg.ReviewTime,
	}
}

// Clone returns a copy that shares no pointers with s.
func (s *RunState) Clone() RunState {
	c := *s
	if s.Order != nil {
		o := *s.Order
		c.Order = &o
	}
	return c
}
