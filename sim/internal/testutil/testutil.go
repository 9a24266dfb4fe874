// Package testutil provides shared test infrastructure for the inventory
// simulator: deterministic uniform sources and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"math"
	"testing"
)

// ScriptedSource replays a fixed sequence of draws, cycling when it runs out.
type ScriptedSource struct {
	Draws []float64
	next  int
}

// NewScriptedSource returns a source that yields draws in order, then repeats.
func NewScriptedSource(draws ...float64) *ScriptedSource {
	return &ScriptedSource{Draws: draws}
}

// Float64 returns the next scripted draw.
func (s *ScriptedSource) Float64() float64 {
	if len(s.Draws) == 0 {
		return 0
	}
	v := s.Draws[s.next%len(s.Draws)]
	s.next++
	return v
}

// Consumed is the number of draws taken so far.
func (s *ScriptedSource) Consumed() int {
	return s.next
}

// ConstantSource always yields the same draw.
type ConstantSource float64

// Float64 returns the constant.
func (c ConstantSource) Float64() float64 {
	return float64(c)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
