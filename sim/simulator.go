// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrDrawOutOfRange reports a uniform source that produced a value outside [0, 1).
var ErrDrawOutOfRange = errors.New("uniform draw out of range")

// Simulator advances one run day by day. It is the core object that holds the
// run state, its random source and the statistics being accumulated.
//
// Each day executes, in order: delivery arrival, demand generation,
// consumption from the first floor, transfer-on-empty, lead-time countdown,
// review and reorder, end-of-day bookkeeping.
type Simulator struct {
	cfg      *Config
	src      UniformSource
	observer Observer

	Day   int
	State RunState
	Stats *RunStatistics
}

// NewSimulator creates a simulator positioned before day 1. cfg must already
// be validated; it is read, never written.
func NewSimulator(cfg *Config, src UniformSource) *Simulator {
	s := &Simulator{cfg: cfg, src: src}
	s.Reset(0)
	return s
}

// SetObserver attaches the observer that receives this run's day and delivery events.
func (s *Simulator) SetObserver(obs Observer) {
	s.observer = obs
}

// Reset discards all state and starts a new statistics record; days only sizes
// its series. The record returned by a previous Run is left untouched.
func (s *Simulator) Reset(days int) {
	s.Day = 0
	s.State = newRunState(s.cfg)
	s.Stats = newRunStatistics(days)
}

// Run resets the simulator, steps days days and returns the run's statistics.
// Context cancellation is checked once per day.
func (s *Simulator) Run(ctx context.Context, days int) (*RunStatistics, error) {
	s.Reset(days)
	for d := 0; d < days; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.Step(); err != nil {
			return nil, err
		}
	}
	return s.Stats, nil
}

// draw reads one uniform value and rejects anything outside [0, 1).
func (s *Simulator) draw() (float64, error) {
	u := s.src.Float64()
	if math.IsNaN(u) || u < 0 || u >= 1 {
		return 0, fmt.Errorf("day %d: %w: %v", s.Day, ErrDrawOutOfRange, u)
	}
	return u, nil
}

// Step simulates one day and returns its event.
func (s *Simulator) Step() (DayEvent, error) {
	s.Day++
	day := s.Day
	st := &s.State
	inv := &st.Inventory

	// 1. Delivery arrival
	if st.HasOrder() && st.Order.DaysTillDelivery == 0 {
		received := max(0, min(st.Order.Size, s.cfg.Basement.MaxCapacity-inv.BasementUnits))
		inv.BasementUnits += received
		s.Stats.DeliveryDays = append(s.Stats.DeliveryDays, day)
		s.Stats.DeliveredUnits += received
		logrus.Tracef("[day %04d] Delivery of %d arrived, %d received", day, st.Order.Size, received)
		if s.observer != nil {
			s.observer.OnDelivery(DeliveryEvent{Day: day, OrderSize: st.Order.Size, Received: received})
		}
		st.Order = nil
	}

	ev := DayEvent{
		Day:             day,
		FirstFloorStart: inv.FirstFloorUnits,
		BasementStart:   inv.BasementUnits,
	}

	// 2. Demand generation
	if err := s.updateDemand(); err != nil {
		return DayEvent{}, err
	}
	demand := st.Demand.CurrentDemand
	s.Stats.TotalDemand += demand
	s.Stats.DailyDemandValues = append(s.Stats.DailyDemandValues, demand)

	// 3. Consumption from the first floor
	consumed := min(demand, inv.FirstFloorUnits)
	shortage := demand - consumed
	inv.FirstFloorUnits -= consumed

	// 4. Transfer on empty
	if inv.FirstFloorUnits == 0 {
		moved := min(inv.BasementUnits, s.cfg.FirstFloor.MaxCapacity)
		inv.BasementUnits -= moved
		inv.FirstFloorUnits += moved

		extra := min(shortage, inv.FirstFloorUnits)
		consumed += extra
		shortage -= extra
		inv.FirstFloorUnits -= extra

		s.Stats.TotalTransfers++
		s.Stats.TransferredUnits += moved
		s.Stats.TransferDays = append(s.Stats.TransferDays, day)
		ev.DidTransfer = true
		ev.Transferred = moved

		if shortage > 0 {
			s.Stats.TotalShortageDays++
			s.Stats.TotalShortageAmount += shortage
		}
	}

	// 5. Lead-time countdown
	if st.Order != nil {
		st.Order.DaysTillDelivery--
	}

	// 6. Review and reorder up to basement capacity
	st.TimeTillReview--
	if st.TimeTillReview == 0 {
		if err := s.placeOrder(); err != nil {
			return DayEvent{}, err
		}
		st.TimeTillReview = s.cfg.ReviewTime
		ev.Reviewed = true
	}

	// 7. End-of-day bookkeeping
	s.Stats.TotalDays = day
	s.Stats.FirstFloorEndUnits = append(s.Stats.FirstFloorEndUnits, inv.FirstFloorUnits)
	s.Stats.BasementEndUnits = append(s.Stats.BasementEndUnits, inv.BasementUnits)

	ev.Demand = demand
	ev.RoomsOccupied = st.Demand.RoomsOccupied
	ev.Consumed = consumed
	ev.Shortage = shortage
	ev.FirstFloorEnd = inv.FirstFloorUnits
	ev.BasementEnd = inv.BasementUnits
	ev.DaysTillReview = st.TimeTillReview
	if st.Order != nil {
		o := *st.Order
		ev.Order = &o
	}

	logrus.Tracef("[day %04d] demand=%d consumed=%d shortage=%d ff=%d->%d b=%d->%d transfer=%v review_in=%d",
		day, demand, consumed, shortage, ev.FirstFloorStart, ev.FirstFloorEnd, ev.BasementStart, ev.BasementEnd,
		ev.DidTransfer, ev.DaysTillReview)
	if s.observer != nil {
		s.observer.OnDay(ev)
	}
	return ev, nil
}

// updateDemand samples the occupied rooms, then one consumption amount per room.
func (s *Simulator) updateDemand() error {
	u, err := s.draw()
	if err != nil {
		return err
	}
	rooms := s.cfg.Distributions.OccupiedRooms.Sample(u)

	total := 0
	for room := 0; room < rooms; room++ {
		u, err := s.draw()
		if err != nil {
			return err
		}
		total += s.cfg.Distributions.RoomConsumption.Sample(u)
	}

	s.State.Demand = DemandState{CurrentDemand: total, RoomsOccupied: rooms}
	return nil
}

// placeOrder runs a review: sample a lead time and order the basement up to capacity.
// A still-pending order is replaced.
func (s *Simulator) placeOrder() error {
	u, err := s.draw()
	if err != nil {
		return err
	}
	leadTime := s.cfg.Distributions.LeadTime.Sample(u)
	size := s.cfg.Basement.MaxCapacity - s.State.Inventory.BasementUnits

	if prev := s.State.Order; prev != nil {
		logrus.Debugf("[day %04d] Review replaced undelivered order of %d (%d days out)", s.Day, prev.Size, prev.DaysTillDelivery)
	}
	s.State.Order = &PendingOrder{Size: size, LeadTime: leadTime, DaysTillDelivery: leadTime}

	s.Stats.TotalOrders++
	s.Stats.TotalOrderSize += size
	s.Stats.TotalLeadTime += leadTime
	s.Stats.LeadTimes = append(s.Stats.LeadTimes, leadTime)
	s.Stats.OrderSizes = append(s.Stats.OrderSizes, size)
	s.Stats.OrderPlacementDays = append(s.Stats.OrderPlacementDays, s.Day)
	return nil
}
