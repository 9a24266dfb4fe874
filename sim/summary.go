package sim

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MetricSummary is the cross-run reduction of one per-run average.
type MetricSummary struct {
	Mean     float64 // NaN when no run produced a defined value
	Variance float64 // sample variance (N-1 denominator), 0 when Samples <= 1
	StdDev   float64
	Samples  int // runs whose per-run average was defined
}

// BatchSummary aggregates the statistics of every run in a batch.
type BatchSummary struct {
	Runs int

	EndingFirstFloor MetricSummary
	EndingBasement   MetricSummary
	DailyDemand      MetricSummary
	LeadTime         MetricSummary
	OrderSize        MetricSummary

	RunsWithShortage    int
	ShortageProbability float64 // RunsWithShortage / Runs; NaN for an empty batch
	MeanShortageAmount  float64 // mean TotalShortageAmount over runs with a shortage; 0 when none
}

// Statistic is a labelled, display-ready summary value.
type Statistic struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summarize reduces per-run statistics into a BatchSummary.
// Per-run averages that are undefined (NaN, e.g. a run without orders) are
// left out of that metric's reduction rather than poisoning it.
// Safe for nil or empty input.
func Summarize(runs []*RunStatistics) *BatchSummary {
	s := &BatchSummary{Runs: len(runs)}

	s.EndingFirstFloor = summarizeMetric(runs, (*RunStatistics).AvgEndingFirstFloor)
	s.EndingBasement = summarizeMetric(runs, (*RunStatistics).AvgEndingBasement)
	s.DailyDemand = summarizeMetric(runs, (*RunStatistics).AvgDailyDemand)
	s.LeadTime = summarizeMetric(runs, (*RunStatistics).AvgLeadTime)
	s.OrderSize = summarizeMetric(runs, (*RunStatistics).AvgOrderSize)

	shortageTotal := 0
	for _, r := range runs {
		if r.HadShortage() {
			s.RunsWithShortage++
			shortageTotal += r.TotalShortageAmount
		}
	}
	s.ShortageProbability = ratio(float64(s.RunsWithShortage), float64(len(runs)))
	if s.RunsWithShortage > 0 {
		s.MeanShortageAmount = float64(shortageTotal) / float64(s.RunsWithShortage)
	}
	return s
}

func summarizeMetric(runs []*RunStatistics, avg func(*RunStatistics) float64) MetricSummary {
	values := make([]float64, 0, len(runs))
	for _, r := range runs {
		if v := avg(r); !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return NewMetricSummary(values)
}

// NewMetricSummary computes mean and sample variance of values.
func NewMetricSummary(values []float64) MetricSummary {
	m := MetricSummary{Mean: math.NaN(), Samples: len(values)}
	switch len(values) {
	case 0:
	case 1:
		m.Mean = values[0]
	default:
		m.Mean, m.Variance = stat.MeanVariance(values, nil)
		m.StdDev = math.Sqrt(m.Variance)
	}
	return m
}

// Statistics renders the summary as labelled rows, in display order.
func (s *BatchSummary) Statistics() []Statistic {
	return []Statistic{
		{"Total Average Ending FF Units", formatStat(s.EndingFirstFloor.Mean)},
		{"Total Average Ending Basement Units", formatStat(s.EndingBasement.Mean)},
		{"Total Average Daily Demand", formatStat(s.DailyDemand.Mean)},
		{"Total Average Lead Time", formatStat(s.LeadTime.Mean)},
		{"Total Average Order Size", formatStat(s.OrderSize.Mean)},
		{"First Floor Ending Units Variance", formatStat(s.EndingFirstFloor.Variance)},
		{"Basement Floor Ending Units Variance", formatStat(s.EndingBasement.Variance)},
		{"Daily Demand Variance", formatStat(s.DailyDemand.Variance)},
		{"Lead Time Variance", formatStat(s.LeadTime.Variance)},
		{"Order Size Variance", formatStat(s.OrderSize.Variance)},
		{"Runs with Shortage", fmt.Sprintf("%d", s.RunsWithShortage)},
		{"Probability of Shortage", formatStat(s.ShortageProbability)},
		{"Average Shortage Amount", formatStat(s.MeanShortageAmount)},
	}
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", v)
}

// Fprint writes the summary rows, aligned, to w.
func (s *BatchSummary) Fprint(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Statistics ===")
	fmt.Fprintf(w, "%-38s: %d\n", "Runs", s.Runs)
	for _, st := range s.Statistics() {
		fmt.Fprintf(w, "%-38s: %s\n", st.Label, st.Value)
	}
}
