package sim

import "github.com/inventory-sim/inventory-sim/sim/trace"

// TraceRecorder is an Observer that copies run events into a SimulationTrace.
// It records nothing when the trace is not enabled.
type TraceRecorder struct {
	Trace *trace.SimulationTrace
}

// NewTraceRecorder returns a recorder writing to a fresh trace at level.
func NewTraceRecorder(level trace.TraceLevel) *TraceRecorder {
	return &TraceRecorder{Trace: trace.NewSimulationTrace(trace.TraceConfig{Level: level})}
}

func (r *TraceRecorder) OnDay(e DayEvent) {
	if !r.Trace.Enabled() {
		return
	}
	rec := trace.DayRecord{
		Day:             e.Day,
		Demand:          e.Demand,
		RoomsOccupied:   e.RoomsOccupied,
		Consumed:        e.Consumed,
		Shortage:        e.Shortage,
		FirstFloorStart: e.FirstFloorStart,
		BasementStart:   e.BasementStart,
		DidTransfer:     e.DidTransfer,
		Transferred:     e.Transferred,
		FirstFloorEnd:   e.FirstFloorEnd,
		BasementEnd:     e.BasementEnd,
		DaysTillReview:  e.DaysTillReview,
		Reviewed:        e.Reviewed,
	}
	if e.Order != nil {
		rec.Order = &trace.OrderRecord{
			Size:             e.Order.Size,
			LeadTime:         e.Order.LeadTime,
			DaysTillDelivery: e.Order.DaysTillDelivery,
		}
	}
	r.Trace.RecordDay(rec)
}

func (r *TraceRecorder) OnDelivery(e DeliveryEvent) {
	if !r.Trace.Enabled() {
		return
	}
	r.Trace.RecordDelivery(trace.DeliveryRecord{Day: e.Day, OrderSize: e.OrderSize, Received: e.Received})
}
