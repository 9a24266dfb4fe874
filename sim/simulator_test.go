package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-sim/inventory-sim/sim/internal/testutil"
)

// With the default config a constant draw of 0.5 samples 3 rooms, 1 unit per
// room and a 2-day lead time every time, giving a fully predictable run.
func TestSimulator_Run_DefaultConfigConstantDraw_GoldenTrajectory(t *testing.T) {
	// GIVEN the default config and a constant 0.5 source
	cfg := DefaultConfig()
	log := &eventLog{}
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	s.SetObserver(log)

	// WHEN 10 days are simulated
	stats, err := s.Run(context.Background(), 10)
	require.NoError(t, err)

	// THEN the ending series match the hand-derived trajectory
	assert.Equal(t, 10, stats.TotalDays)
	assert.Equal(t, []int{5, 2, 14, 11, 8, 5, 2, 14, 11, 8}, stats.FirstFloorEndUnits)
	assert.Equal(t, []int{40, 40, 25, 25, 25, 25, 25, 35, 35, 35}, stats.BasementEndUnits)
	assert.Equal(t, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, stats.DailyDemandValues)
	assert.Equal(t, 30, stats.TotalDemand)

	// AND transfers happen when the first floor empties
	assert.Equal(t, 2, stats.TotalTransfers)
	assert.Equal(t, []int{3, 8}, stats.TransferDays)
	assert.Equal(t, 30, stats.TransferredUnits)
	assert.Equal(t, 0, stats.TotalShortageDays)

	// AND reviews on days 5 and 10 order the basement up to capacity
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, []int{5, 10}, stats.OrderPlacementDays)
	assert.Equal(t, []int{25, 15}, stats.OrderSizes)
	assert.Equal(t, []int{2, 2}, stats.LeadTimes)
	assert.Equal(t, 40, stats.TotalOrderSize)
	assert.Equal(t, 4, stats.TotalLeadTime)

	// AND the day-5 order lands at the start of day 8
	assert.Equal(t, []int{8}, stats.DeliveryDays)
	assert.Equal(t, 25, stats.DeliveredUnits)
	assert.Equal(t, []DeliveryEvent{{Day: 8, OrderSize: 25, Received: 25}}, log.deliveries)

	// AND per-run averages follow
	testutil.AssertFloat64Equal(t, "avg ff", 8.0, stats.AvgEndingFirstFloor(), 1e-12)
	testutil.AssertFloat64Equal(t, "avg basement", 31.0, stats.AvgEndingBasement(), 1e-12)
	testutil.AssertFloat64Equal(t, "avg demand", 3.0, stats.AvgDailyDemand(), 1e-12)
	testutil.AssertFloat64Equal(t, "avg lead", 2.0, stats.AvgLeadTime(), 1e-12)
	testutil.AssertFloat64Equal(t, "avg order", 20.0, stats.AvgOrderSize(), 1e-12)

	// AND the end state carries the day-10 order and a full review interval
	assert.Equal(t, Inventory{FirstFloorUnits: 8, BasementUnits: 35}, s.State.Inventory)
	require.NotNil(t, s.State.Order)
	assert.Equal(t, PendingOrder{Size: 15, LeadTime: 2, DaysTillDelivery: 2}, *s.State.Order)
	assert.Equal(t, 5, s.State.TimeTillReview)

	require.NoError(t, stats.Validate())
}

func TestSimulator_Step_EventsDescribeTheDay(t *testing.T) {
	cfg := DefaultConfig()
	log := &eventLog{}
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	s.SetObserver(log)
	_, err := s.Run(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, log.days, 10)

	// day 3: first floor empties and is refilled from the basement
	d3 := log.days[2]
	assert.Equal(t, DayEvent{
		Day: 3, Demand: 3, RoomsOccupied: 3, Consumed: 3,
		FirstFloorStart: 2, BasementStart: 40,
		DidTransfer: true, Transferred: 15,
		FirstFloorEnd: 14, BasementEnd: 25, DaysTillReview: 2,
	}, d3)

	// day 5: the review places an order that is reported as pending
	d5 := log.days[4]
	assert.True(t, d5.Reviewed)
	require.NotNil(t, d5.Order)
	assert.Equal(t, PendingOrder{Size: 25, LeadTime: 2, DaysTillDelivery: 2}, *d5.Order)

	// day 8: start values are read after the delivery landed
	d8 := log.days[7]
	assert.Equal(t, 50, d8.BasementStart)
	assert.Nil(t, d8.Order)

	// before the first review no order exists
	for _, e := range log.days[:4] {
		assert.Nil(t, e.Order, "day %d", e.Day)
		assert.False(t, e.Reviewed)
	}

	// delivery precedes the day it lands on
	assert.Equal(t, []string{
		"day:1", "day:2", "day:3", "day:4", "day:5", "day:6", "day:7",
		"delivery:8", "day:8", "day:9", "day:10",
	}, log.order)
}

func TestSimulator_Step_EventOrderIsACopy(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	var ev DayEvent
	for i := 0; i < 5; i++ {
		var err error
		ev, err = s.Step()
		require.NoError(t, err)
	}
	require.NotNil(t, ev.Order)
	ev.Order.Size = 999
	assert.Equal(t, 25, s.State.Order.Size)
}

func TestSimulator_ShortageWhenBothLocationsRunDry(t *testing.T) {
	// GIVEN 2 units upstairs, an empty basement and a demand of 3 per day
	cfg := constantDemandConfig(100, 2, 2, 3, 0, 3, 1, 1)
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))

	// WHEN two days run
	stats, err := s.Run(context.Background(), 2)
	require.NoError(t, err)

	// THEN day 1 is short by 1 and day 2 by 3; an empty transfer still counts
	assert.Equal(t, 2, stats.TotalShortageDays)
	assert.Equal(t, 4, stats.TotalShortageAmount)
	assert.Equal(t, 2, stats.TotalTransfers)
	assert.Equal(t, 0, stats.TransferredUnits)
	assert.Equal(t, []int{0, 0}, stats.FirstFloorEndUnits)
	assert.True(t, stats.HadShortage())
}

func TestSimulator_TransferCoversShortfall(t *testing.T) {
	// GIVEN 2 units upstairs, plenty below and a demand of 5
	cfg := constantDemandConfig(100, 10, 2, 50, 50, 5, 1, 1)
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))

	// WHEN one day runs
	ev, err := s.Step()
	require.NoError(t, err)

	// THEN the transfer refills 10 and 3 more are consumed from it
	assert.True(t, ev.DidTransfer)
	assert.Equal(t, 10, ev.Transferred)
	assert.Equal(t, 5, ev.Consumed)
	assert.Equal(t, 0, ev.Shortage)
	assert.Equal(t, 7, ev.FirstFloorEnd)
	assert.Equal(t, 40, ev.BasementEnd)
	assert.Equal(t, 0, s.Stats.TotalShortageDays)
}

func TestSimulator_NoTransferWhileStockRemains(t *testing.T) {
	// GIVEN demand 1 against 15 units upstairs
	cfg := constantDemandConfig(100, 15, 15, 50, 50, 1, 1, 1)
	stats, err := NewSimulator(&cfg, testutil.ConstantSource(0.5)).Run(context.Background(), 14)
	require.NoError(t, err)

	// THEN the floor never empties so no transfer happens
	assert.Equal(t, 0, stats.TotalTransfers)
	assert.Equal(t, 1, stats.FirstFloorEndUnits[13])
}

func TestSimulator_DeliveryTruncatedAtBasementCapacity(t *testing.T) {
	// GIVEN a pending order that exceeds the remaining basement room
	cfg := constantDemandConfig(100, 15, 15, 50, 45, 1, 1, 1)
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	s.State.Order = &PendingOrder{Size: 20, LeadTime: 1, DaysTillDelivery: 0}

	// WHEN the next day starts
	ev, err := s.Step()
	require.NoError(t, err)

	// THEN only 5 units are received and the excess is discarded
	assert.Equal(t, 50, ev.BasementStart)
	assert.Equal(t, 5, s.Stats.DeliveredUnits)
	assert.Nil(t, s.State.Order)
}

func TestSimulator_ZeroLeadTimeArrivesNextDay(t *testing.T) {
	// GIVEN review every 2 days and instant lead time
	cfg := constantDemandConfig(2, 15, 15, 50, 30, 1, 1, 0)
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))

	stats, err := s.Run(context.Background(), 3)
	require.NoError(t, err)

	// THEN the day-2 order of 20 lands on day 3
	assert.Equal(t, []int{2}, stats.OrderPlacementDays)
	assert.Equal(t, []int{20}, stats.OrderSizes)
	assert.Equal(t, []int{3}, stats.DeliveryDays)
	assert.Equal(t, 50, stats.BasementEndUnits[2])
}

func TestSimulator_ReviewReplacesUndeliveredOrder(t *testing.T) {
	// GIVEN daily review with a lead time longer than the interval
	cfg := constantDemandConfig(1, 15, 15, 50, 40, 1, 1, 3)
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))

	stats, err := s.Run(context.Background(), 5)
	require.NoError(t, err)

	// THEN every day places a fresh order and none is ever delivered
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Empty(t, stats.DeliveryDays)
	assert.Equal(t, PendingOrder{Size: 10, LeadTime: 3, DaysTillDelivery: 3}, *s.State.Order)
}

func TestSimulator_ReviewPeriodicity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReviewTime = 3
	stats, err := NewSimulator(&cfg, testutil.ConstantSource(0.5)).Run(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 9, 12, 15, 18}, stats.OrderPlacementDays)
}

func TestSimulator_CapacityAndConservationInvariants(t *testing.T) {
	// GIVEN a seeded random run over the default policy
	cfg := DefaultConfig()
	rng := NewPartitionedRNG(NewSimulationKey(7))
	log := &eventLog{}
	s := NewSimulator(&cfg, rng.ForRun(0))
	s.SetObserver(log)

	stats, err := s.Run(context.Background(), 365)
	require.NoError(t, err)
	require.NoError(t, stats.Validate())

	// THEN stock never leaves [0, capacity]
	for _, e := range log.days {
		assert.GreaterOrEqual(t, e.FirstFloorEnd, 0)
		assert.LessOrEqual(t, e.FirstFloorEnd, cfg.FirstFloor.MaxCapacity)
		assert.GreaterOrEqual(t, e.BasementEnd, 0)
		assert.LessOrEqual(t, e.BasementEnd, cfg.Basement.MaxCapacity)
		// AND demand is split between consumption and shortage
		assert.Equal(t, e.Demand, e.Consumed+e.Shortage, "day %d", e.Day)
		// AND a shortage only happens once both locations are empty
		if e.Shortage > 0 {
			assert.Equal(t, 0, e.FirstFloorEnd)
			assert.Equal(t, 0, e.BasementEnd)
		}
		// AND transfers happen exactly when the floor emptied
		assert.Equal(t, e.DidTransfer, e.FirstFloorStart-min(e.Demand, e.FirstFloorStart) == 0, "day %d", e.Day)
	}

	// AND units are conserved end to end
	start := cfg.FirstFloor.StartUnits + cfg.Basement.StartUnits
	consumed := stats.TotalDemand - stats.TotalShortageAmount
	end := stats.FirstFloorEndUnits[364] + stats.BasementEndUnits[364]
	assert.Equal(t, start+stats.DeliveredUnits-consumed, end)

	// AND every order tops the basement up to capacity
	for i, size := range stats.OrderSizes {
		day := stats.OrderPlacementDays[i]
		assert.Equal(t, cfg.Basement.MaxCapacity-stats.BasementEndUnits[day-1], size)
	}
}

func TestSimulator_DrawCount(t *testing.T) {
	// GIVEN the default config with a counting source
	cfg := DefaultConfig()
	src := testutil.NewScriptedSource(0.5)

	_, err := NewSimulator(&cfg, src).Run(context.Background(), 10)
	require.NoError(t, err)

	// THEN each day draws rooms plus one per room (3), and each review one lead time
	assert.Equal(t, 10*4+2, src.Consumed())
}

func TestSimulator_ScriptedDrawsAreDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	draws := []float64{0.05, 0.9, 0.2, 0.6, 0.33, 0.71, 0.99, 0.0, 0.42}
	a, err := NewSimulator(&cfg, testutil.NewScriptedSource(draws...)).Run(context.Background(), 50)
	require.NoError(t, err)
	b, err := NewSimulator(&cfg, testutil.NewScriptedSource(draws...)).Run(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulator_DrawOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	for _, u := range []float64{1.0, -0.1, math.NaN()} {
		_, err := NewSimulator(&cfg, testutil.ConstantSource(u)).Run(context.Background(), 1)
		assert.ErrorIs(t, err, ErrDrawOutOfRange, "draw %v", u)
	}
}

func TestSimulator_Run_CancelledContext(t *testing.T) {
	cfg := DefaultConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulator(&cfg, testutil.ConstantSource(0.5)).Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_Run_ResetsBetweenRuns(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	first, err := s.Run(context.Background(), 10)
	require.NoError(t, err)
	second, err := s.Run(context.Background(), 10)
	require.NoError(t, err)

	// a second run starts from scratch and leaves the first record intact
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestSimulator_Run_ZeroDays(t *testing.T) {
	cfg := DefaultConfig()
	stats, err := NewSimulator(&cfg, testutil.ConstantSource(0.5)).Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDays)
	assert.True(t, math.IsNaN(stats.AvgDailyDemand()))
}

func TestRunState_CloneAndHasOrder(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSimulator(&cfg, testutil.ConstantSource(0.5))
	assert.False(t, s.State.HasOrder())

	for i := 0; i < 5; i++ {
		_, err := s.Step()
		require.NoError(t, err)
	}
	require.True(t, s.State.HasOrder())

	c := s.State.Clone()
	c.Order.DaysTillDelivery = 0
	c.Inventory.BasementUnits = 0
	assert.Equal(t, 2, s.State.Order.DaysTillDelivery)
	assert.Equal(t, 25, s.State.Inventory.BasementUnits)
}
