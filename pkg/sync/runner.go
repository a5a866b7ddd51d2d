package sync

import (
	"context"

	"golang.org/x/sync/errgroup"

	"modsync/pkg/logging"
	"modsync/pkg/types"
)

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 5

// Run fans the artifacts out over a bounded worker pool and collects one
// Result per artifact. Each worker writes into its own preallocated slot,
// so no locking is needed around the result set; ordering follows the
// input, not completion order. Workers never return errors — failures are
// terminal outcomes — so the pool always drains fully.
func (o *Orchestrator) Run(ctx context.Context, artifacts []types.Artifact) []types.Result {
	logger := logging.GetLogger("sync")

	workers := o.opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	done := logging.LogOperationStart(logger, "reconcile")
	defer done()

	results := make([]types.Result, len(artifacts))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, artifact := range artifacts {
		i, artifact := i, artifact
		g.Go(func() error {
			results[i] = o.Reconcile(ctx, artifact)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug().
		Int("artifacts", len(artifacts)).
		Int("workers", workers).
		Msg("Pool drained")
	return results
}
