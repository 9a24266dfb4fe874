package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/series"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

func writeLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func writeSummary(w io.Writer, s *sim.BatchSummary) {
	s.Fprint(w)
}

// writeTrace prints run 0's day table followed by its trace summary.
func writeTrace(w io.Writer, st *trace.SimulationTrace) {
	writeLine(w, "=== Run 0 Trace ===")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tRooms\tDemand\tShort\tFF start\tB start\tMoved\tFF end\tB end\tReview in\tOrder\tArrives in\t")
	for _, d := range st.Days {
		moved, order, arrives := "-", "-", "-"
		if d.DidTransfer {
			moved = fmt.Sprint(d.Transferred)
		}
		if d.Order != nil {
			order = fmt.Sprint(d.Order.Size)
			arrives = fmt.Sprint(d.Order.DaysTillDelivery)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%s\t%s\t\n",
			d.Day, d.RoomsOccupied, d.Demand, d.Shortage, d.FirstFloorStart, d.BasementStart,
			moved, d.FirstFloorEnd, d.BasementEnd, d.DaysTillReview, order, arrives)
	}
	tw.Flush()
	for _, dl := range st.Deliveries {
		writeLine(w, "Day %d: delivery of %d, %d received", dl.Day, dl.OrderSize, dl.Received)
	}

	sum := trace.Summarize(st)
	writeLine(w, "Transfer days: %d  Shortage days: %d (%d units)  Reviews: %d  Deliveries: %d  Peak demand: %d  Mean demand: %.2f",
		sum.TransferDays, sum.ShortageDays, sum.TotalShortage, sum.Reviews, sum.Deliveries, sum.PeakDemand, sum.MeanDemand)
	writeLine(w, "")
}

// writeSeries prints the cross-run views of a batch.
func writeSeries(w io.Writer, runs []*sim.RunStatistics) {
	writeLine(w, "=== Daily Mean Ending Units ===")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tFF\tB\tOn hand\t")
	for _, p := range series.DailyMeans(runs) {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t\n", p.Day, p.FirstFloor, p.Basement, p.FirstFloor+p.Basement)
	}
	tw.Flush()

	writeLine(w, "=== Daily Ending Units 95%% CI ===")
	ff := series.DailyMeanWithCI(runs, series.FirstFloorEnd)
	b := series.DailyMeanWithCI(runs, series.BasementEnd)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tFF low\tFF high\tB low\tB high\t")
	for i := range ff {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", ff[i].Day, ff[i].Lower, ff[i].Upper, b[i].Lower, b[i].Upper)
	}
	tw.Flush()

	writeBins(w, "Daily Demand Frequency", series.DemandFrequency(runs))
	writeBins(w, "Lead Time Frequency", series.LeadTimeFrequency(runs))

	writeLine(w, "=== Per Run ===")
	shortages := series.PerRun(runs, series.ShortageDays)
	transfers := series.PerRun(runs, series.Transfers)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Run\tShortage days\tTransfers\tAvg FF\t")
	for i := range shortages {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\t\n", shortages[i].Run, shortages[i].Value, transfers[i].Value,
			runs[i].AvgEndingFirstFloor())
	}
	tw.Flush()

	avgFF := make([]float64, len(runs))
	for i, r := range runs {
		avgFF[i] = r.AvgEndingFirstFloor()
	}
	d := series.NewDistribution(avgFF)
	writeLine(w, "Avg FF across runs: mean=%.2f p50=%.2f p95=%.2f p99=%.2f min=%.2f max=%.2f",
		d.Mean, d.P50, d.P95, d.P99, d.Min, d.Max)

	if len(runs) > 0 {
		writeLine(w, "=== Run 1 Review Timeline ===")
		for _, p := range series.ReviewTimeline(runs[0]) {
			writeLine(w, "Day %d: %s", p.Day, p.Kind)
		}
	}
	writeLine(w, "")
}

func writeBins(w io.Writer, title string, bins []series.Bin) {
	writeLine(w, "=== %s ===", title)
	for _, b := range bins {
		writeLine(w, "%4d: %d", b.Key, b.Count)
	}
}
