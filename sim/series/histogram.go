package series

import (
	"slices"

	"github.com/inventory-sim/inventory-sim/sim"
)

// Bin is one histogram bucket: a distinct value and how often it occurred.
type Bin struct {
	Key   int
	Count int
}

// Frequency counts occurrences of each distinct value, sorted by key.
func Frequency(values []int) []Bin {
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	bins := make([]Bin, 0, len(counts))
	for k, c := range counts {
		bins = append(bins, Bin{Key: k, Count: c})
	}
	slices.SortFunc(bins, func(a, b Bin) int { return a.Key - b.Key })
	return bins
}

// DemandFrequency is the histogram of daily demand over every run and day.
func DemandFrequency(runs []*sim.RunStatistics) []Bin {
	var all []int
	for _, r := range runs {
		all = append(all, r.DailyDemandValues...)
	}
	return Frequency(all)
}

// LeadTimeFrequency is the histogram of sampled lead times over every order.
func LeadTimeFrequency(runs []*sim.RunStatistics) []Bin {
	var all []int
	for _, r := range runs {
		all = append(all, r.LeadTimes...)
	}
	return Frequency(all)
}
