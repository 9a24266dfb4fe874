// Package history persists finished batches so they can be listed, inspected
// and re-summarized later without re-running the simulation.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// Params are the batch sizing inputs that produced a record.
type Params struct {
	Days int   `json:"days"`
	Runs int   `json:"runs"`
	Seed int64 `json:"seed"`
}

// Record is one saved batch: its inputs, run 0's day trace, the displayed
// statistics and every run's raw statistics.
// Statistics are stored as formatted strings so undefined values ("N/A")
// survive JSON, which has no NaN.
type Record struct {
	ID         uuid.UUID              `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Params     Params                 `json:"params"`
	Config     sim.Config             `json:"config"`
	Events     []trace.DayRecord      `json:"events"`
	Deliveries []trace.DeliveryRecord `json:"deliveries"`
	Statistics []sim.Statistic        `json:"statistics"`
	Runs       []*sim.RunStatistics   `json:"runs"`
}

// NewRecord captures a finished batch. tr may be nil when run 0 was not traced.
func NewRecord(cfg sim.Config, params Params, result *sim.BatchResult, tr *trace.SimulationTrace) *Record {
	rec := &Record{
		ID:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		Params:     params,
		Config:     cfg,
		Events:     []trace.DayRecord{},
		Deliveries: []trace.DeliveryRecord{},
		Statistics: result.Summary.Statistics(),
		Runs:       make([]*sim.RunStatistics, len(result.Runs)),
	}
	for i, r := range result.Runs {
		rec.Runs[i] = r.Clone()
	}
	if tr != nil {
		rec.Events = append(rec.Events, tr.Days...)
		rec.Deliveries = append(rec.Deliveries, tr.Deliveries...)
	}
	return rec
}

// RebuildRuns returns deep copies of the stored runs; mutating them leaves the
// record untouched.
func (r *Record) RebuildRuns() []*sim.RunStatistics {
	runs := make([]*sim.RunStatistics, len(r.Runs))
	for i, run := range r.Runs {
		runs[i] = run.Clone()
	}
	return runs
}

// Summary recomputes the batch summary from the stored runs.
func (r *Record) Summary() *sim.BatchSummary {
	return sim.Summarize(r.Runs)
}

// Trace rebuilds run 0's trace from the stored events.
func (r *Record) Trace() *trace.SimulationTrace {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDays})
	st.Days = append(st.Days, r.Events...)
	st.Deliveries = append(st.Deliveries, r.Deliveries...)
	return st
}

// Validate checks that a loaded record is internally consistent.
func (r *Record) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("record has no id")
	}
	// A zero-day batch produces no runs whatever run count was requested.
	if len(r.Runs) != r.Params.Runs && !(r.Params.Days == 0 && len(r.Runs) == 0) {
		return fmt.Errorf("record %s: %d stored runs, params say %d", r.ID, len(r.Runs), r.Params.Runs)
	}
	if err := r.Config.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", r.ID, err)
	}
	for i, run := range r.Runs {
		if run == nil {
			return fmt.Errorf("record %s: run %d is missing", r.ID, i)
		}
		if err := run.Validate(); err != nil {
			return fmt.Errorf("record %s: run %d: %w", r.ID, i, err)
		}
	}
	return nil
}
