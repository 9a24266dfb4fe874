package sim

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Distributions serialise as their ordered outcome list so insertion order
// survives a YAML or JSON round trip; decoding re-runs construction checks.

// MarshalYAML implements yaml.Marshaler.
func (d *ProbabilityDistribution) MarshalYAML() (interface{}, error) {
	return d.Probabilities(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *ProbabilityDistribution) UnmarshalYAML(node *yaml.Node) error {
	var outcomes []Outcome
	if err := node.Decode(&outcomes); err != nil {
		return fmt.Errorf("line %d: decoding outcomes: %w", node.Line, err)
	}
	built, err := NewProbabilityDistribution(outcomes)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = *built
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d *ProbabilityDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Probabilities())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ProbabilityDistribution) UnmarshalJSON(data []byte) error {
	var outcomes []Outcome
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return err
	}
	built, err := NewProbabilityDistribution(outcomes)
	if err != nil {
		return err
	}
	*d = *built
	return nil
}
