package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BatchRequest describes how many independent runs to simulate and for how long.
type BatchRequest struct {
	Days    int   // simulated days per run
	Runs    int   // independent runs
	Seed    int64 // master seed; run i draws from PartitionedRNG.ForRun(i)
	Workers int   // concurrent runs; <= 1 runs sequentially

	// Sources, when set, supplies run i's uniform source instead of the seeded RNG.
	// Each returned source must be used by run i alone.
	Sources func(run int) UniformSource
}

// IsEmpty reports a request for zero runs or zero days. Such a request yields an
// empty result instead of an error.
func (r BatchRequest) IsEmpty() bool {
	return r.Days == 0 || r.Runs == 0
}

// Validate rejects negative sizes.
func (r BatchRequest) Validate() error {
	if r.Days < 0 {
		return fmt.Errorf("%w: days must be non-negative, got %d", ErrInvalidConfiguration, r.Days)
	}
	if r.Runs < 0 {
		return fmt.Errorf("%w: runs must be non-negative, got %d", ErrInvalidConfiguration, r.Runs)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfiguration, r.Workers)
	}
	return nil
}

// BatchResult is everything a batch produced: per-run statistics in run order
// and their reduction.
type BatchResult struct {
	Runs    []*RunStatistics
	Summary *BatchSummary
}

// RunBatch validates cfg and req, simulates req.Runs independent runs of
// req.Days days each, and reduces them. Only run 0 reports to obs (which may be
// nil); obs is always invoked from the calling goroutine in day order.
// Any run failure or context cancellation aborts the whole batch.
func RunBatch(ctx context.Context, cfg Config, req BatchRequest, obs Observer) (*BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		logrus.Warnf("Empty batch requested (days=%d, runs=%d); nothing to simulate", req.Days, req.Runs)
		return &BatchResult{Runs: []*RunStatistics{}, Summary: Summarize(nil)}, nil
	}

	sources := make([]UniformSource, req.Runs)
	rng := NewPartitionedRNG(NewSimulationKey(req.Seed))
	for i := range sources {
		if req.Sources != nil {
			sources[i] = req.Sources(i)
		} else {
			sources[i] = rng.ForRun(i)
		}
	}

	logrus.Infof("Starting batch: %d runs x %d days, seed=%d, workers=%d", req.Runs, req.Days, req.Seed, max(req.Workers, 1))

	var (
		runs []*RunStatistics
		err  error
	)
	if req.Workers <= 1 {
		runs, err = runSequential(ctx, &cfg, req.Days, sources, obs)
	} else {
		runs, err = runParallel(ctx, &cfg, req.Days, req.Workers, sources, obs)
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("Batch complete: %d runs", len(runs))
	return &BatchResult{Runs: runs, Summary: Summarize(runs)}, nil
}

func runOne(ctx context.Context, cfg *Config, days, id int, src UniformSource, obs Observer) (*RunStatistics, error) {
	s := NewSimulator(cfg, src)
	if obs != nil {
		s.SetObserver(obs)
	}
	stats, err := s.Run(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("run %d: %w", id, err)
	}
	logrus.Debugf("Run %d complete: demand=%d orders=%d transfers=%d shortage_days=%d",
		id, stats.TotalDemand, stats.TotalOrders, stats.TotalTransfers, stats.TotalShortageDays)
	return stats, nil
}

func runSequential(ctx context.Context, cfg *Config, days int, sources []UniformSource, obs Observer) ([]*RunStatistics, error) {
	runs := make([]*RunStatistics, len(sources))
	for i, src := range sources {
		var runObs Observer
		if i == 0 {
			runObs = obs
		}
		stats, err := runOne(ctx, cfg, days, i, src, runObs)
		if err != nil {
			return nil, err
		}
		runs[i] = stats
	}
	return runs, nil
}

// runParallel fans runs out over an errgroup. Run 0's events cross back to the
// calling goroutine through an ordered channel, which is drained until the
// group finishes so a blocked producer can never stall the batch.
func runParallel(ctx context.Context, cfg *Config, days, workers int, sources []UniformSource, obs Observer) ([]*RunStatistics, error) {
	runs := make([]*RunStatistics, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var events chan any
	if obs != nil {
		events = make(chan any, 64)
	}

	done := make(chan error, 1)
	go func() {
		for i, src := range sources {
			i, src := i, src
			var runObs Observer
			if i == 0 && events != nil {
				runObs = channelObserver{ctx: gctx, ch: events}
			}
			g.Go(func() error {
				stats, err := runOne(gctx, cfg, days, i, src, runObs)
				if err != nil {
					return err
				}
				runs[i] = stats
				return nil
			})
		}
		err := g.Wait()
		if events != nil {
			close(events)
		}
		done <- err
	}()

	if events != nil {
		for e := range events {
			dispatch(obs, e)
		}
	}
	if err := <-done; err != nil {
		return nil, err
	}
	return runs, nil
}
