package sim

import "context"

// DayEvent describes one simulated day of run 0.
// Start values are taken after any delivery has landed, before demand.
type DayEvent struct {
	Day             int
	Demand          int
	RoomsOccupied   int
	Consumed        int
	Shortage        int
	FirstFloorStart int
	BasementStart   int
	DidTransfer     bool
	Transferred     int
	FirstFloorEnd   int
	BasementEnd     int
	DaysTillReview  int
	Reviewed        bool // a review ran today and placed an order
	// Order is the order pending at the end of the day; nil when none is pending.
	Order *PendingOrder
}

// DeliveryEvent describes an order landing in the basement on run 0.
type DeliveryEvent struct {
	Day       int
	OrderSize int
	Received  int // units accepted under the basement cap
}

// Observer receives run 0's trace. Calls arrive on a single goroutine in
// ascending day order; a delivery precedes the DayEvent of the same day.
type Observer interface {
	OnDay(DayEvent)
	OnDelivery(DeliveryEvent)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Day      func(DayEvent)
	Delivery func(DeliveryEvent)
}

func (o ObserverFuncs) OnDay(e DayEvent) {
	if o.Day != nil {
		o.Day(e)
	}
}

func (o ObserverFuncs) OnDelivery(e DeliveryEvent) {
	if o.Delivery != nil {
		o.Delivery(e)
	}
}

// channelObserver forwards events from a worker goroutine to the goroutine
// draining ch. Sends give up once ctx is done so a cancelled batch cannot block.
type channelObserver struct {
	ctx context.Context
	ch  chan<- any
}

func (c channelObserver) OnDay(e DayEvent)           { c.send(e) }
func (c channelObserver) OnDelivery(e DeliveryEvent) { c.send(e) }

func (c channelObserver) send(e any) {
	select {
	case c.ch <- e:
	case <-c.ctx.Done():
	}
}

// dispatch delivers a forwarded event to obs.
func dispatch(obs Observer, e any) {
	switch ev := e.(type) {
	case DayEvent:
		obs.OnDay(ev)
	case DeliveryEvent:
		obs.OnDelivery(ev)
	}
}
