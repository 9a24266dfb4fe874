package sim

import (
	"fmt"

	"github.com/inventory-sim/inventory-sim/sim/internal/testutil"
)

// constantDemandConfig returns a config whose demand is always rooms*perRoom
// and whose lead time is always lead, regardless of the draw.
func constantDemandConfig(review, ffCap, ffStart, bCap, bStart, rooms, perRoom, lead int) Config {
	return Config{
		ReviewTime: review,
		FirstFloor: LocationConfig{MaxCapacity: ffCap, StartUnits: ffStart},
		Basement:   LocationConfig{MaxCapacity: bCap, StartUnits: bStart},
		Distributions: Distributions{
			OccupiedRooms:   MustDistribution(Outcome{rooms, 1}),
			RoomConsumption: MustDistribution(Outcome{perRoom, 1}),
			LeadTime:        MustDistribution(Outcome{lead, 1}),
		},
	}
}

// eventLog records everything an Observer sees, in arrival order.
type eventLog struct {
	days       []DayEvent
	deliveries []DeliveryEvent
	order      []string // "day:N" / "delivery:N"
}

func (l *eventLog) OnDay(e DayEvent) {
	l.days = append(l.days, e)
	l.order = append(l.order, fmt.Sprintf("day:%d", e.Day))
}

func (l *eventLog) OnDelivery(e DeliveryEvent) {
	l.deliveries = append(l.deliveries, e)
	l.order = append(l.order, fmt.Sprintf("delivery:%d", e.Day))
}
// constantSources gives every run the same constant draw.
func constantSources(u float64) func(int) UniformSource {
	return func(int) UniformSource { return testutil.ConstantSource(u) }
}
