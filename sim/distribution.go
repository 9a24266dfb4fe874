package sim

import (
	"fmt"
	"math"
)

// Outcome is a single (value, probability) entry of a discrete distribution.
type Outcome struct {
	Value       int     `yaml:"value" json:"value"`
	Probability float64 `yaml:"probability" json:"probability"`
}

// ProbabilityDistribution maps integer outcomes to probabilities and turns a
// uniform draw into a sampled outcome. Outcomes are evaluated in insertion order.
// Immutable once constructed; replace it wholesale to change a configuration.
type ProbabilityDistribution struct {
	outcomes   []Outcome
	cumulative []float64
}

// NewProbabilityDistribution builds a distribution from ordered outcomes.
// Returns an error wrapping ErrInvalidDistribution when outcomes is empty or
// any probability is negative or not finite. Probabilities need not sum to 1.
func NewProbabilityDistribution(outcomes []Outcome) (*ProbabilityDistribution, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: no outcomes", ErrInvalidDistribution)
	}
	d := &ProbabilityDistribution{
		outcomes:   make([]Outcome, len(outcomes)),
		cumulative: make([]float64, len(outcomes)),
	}
	seen := make(map[int]bool, len(outcomes))
	sum := 0.0
	for i, o := range outcomes {
		if math.IsNaN(o.Probability) || math.IsInf(o.Probability, 0) {
			return nil, fmt.Errorf("%w: probability of %d must be finite, got %f", ErrInvalidDistribution, o.Value, o.Probability)
		}
		if o.Probability < 0 {
			return nil, fmt.Errorf("%w: probability of %d must be non-negative, got %f", ErrInvalidDistribution, o.Value, o.Probability)
		}
		if seen[o.Value] {
			return nil, fmt.Errorf("%w: duplicate outcome %d", ErrInvalidDistribution, o.Value)
		}
		seen[o.Value] = true
		sum += o.Probability
		d.outcomes[i] = o
		d.cumulative[i] = sum
	}
	return d, nil
}

// MustDistribution is NewProbabilityDistribution for static tables; it panics on error.
func MustDistribution(outcomes ...Outcome) *ProbabilityDistribution {
	d, err := NewProbabilityDistribution(outcomes)
	if err != nil {
		panic(err)
	}
	return d
}

// Sample returns the first outcome whose cumulative probability strictly
// exceeds u. When u is at or beyond the final cumulative sum (probabilities
// summing to less than 1), the last outcome is returned.
func (d *ProbabilityDistribution) Sample(u float64) int {
	for i, c := range d.cumulative {
		if c > u {
			return d.outcomes[i].Value
		}
	}
	return d.outcomes[len(d.outcomes)-1].Value
}

// Probabilities returns a copy of the defining outcomes in insertion order.
func (d *ProbabilityDistribution) Probabilities() []Outcome {
	out := make([]Outcome, len(d.outcomes))
	copy(out, d.outcomes)
	return out
}

// Total is the sum of all probabilities.
func (d *ProbabilityDistribution) Total() float64 {
	return d.cumulative[len(d.cumulative)-1]
}

// MinValue is the smallest outcome value.
func (d *ProbabilityDistribution) MinValue() int {
	m := d.outcomes[0].Value
	for _, o := range d.outcomes[1:] {
		m = min(m, o.Value)
	}
	return m
}

// Mean is the probability-weighted mean outcome, normalised by Total.
// Returns NaN when every probability is zero.
func (d *ProbabilityDistribution) Mean() float64 {
	total := d.Total()
	if total == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, o := range d.outcomes {
		sum += float64(o.Value) * o.Probability
	}
	return sum / total
}
