// Package sim provides the core simulation engine for a two-location
// periodic-review inventory system: a first floor that serves daily demand and
// a basement that refills it and receives supplier orders.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - distribution.go: discrete distributions sampled by cumulative lookup
//   - state.go: the mutable state of one run (stock, demand, pending order)
//   - simulator.go: the day loop and its seven ordered stages
//   - batch.go: independent runs, sequential or over a bounded worker pool
//
// # Architecture
//
// The sim package owns configuration, the engine and batch reduction;
// supporting views live in sub-packages:
//   - sim/trace/: per-day records of the inspected run (pure data, no sim import)
//   - sim/series/: cross-run daily series, confidence intervals and histograms
//   - sim/history/: persisted batch records and their JSON store
//
// # Randomness
//
// Every run draws from its own UniformSource. By default run i uses
// PartitionedRNG.ForRun(i), so results depend on the seed and run index only,
// never on how many workers executed the batch.
package sim
