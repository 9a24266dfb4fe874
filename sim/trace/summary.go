package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDays     int
	TransferDays  int
	ShortageDays  int
	TotalShortage int
	Deliveries    int
	Reviews       int
	PeakDemand    int
	MeanDemand    float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalDays = len(st.Days)
	summary.Deliveries = len(st.Deliveries)

	totalDemand := 0
	for _, d := range st.Days {
		totalDemand += d.Demand
		if d.Demand > summary.PeakDemand {
			summary.PeakDemand = d.Demand
		}
		if d.DidTransfer {
			summary.TransferDays++
		}
		if d.Shortage > 0 {
			summary.ShortageDays++
			summary.TotalShortage += d.Shortage
		}
		if d.Reviewed {
			summary.Reviews++
		}
	}
	if len(st.Days) > 0 {
		summary.MeanDemand = float64(totalDemand) / float64(len(st.Days))
	}

	return summary
}
