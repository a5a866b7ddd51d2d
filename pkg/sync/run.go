package sync

import (
	"context"

	"modsync/pkg/errors"
	"modsync/pkg/localstate"
	"modsync/pkg/logging"
	"modsync/pkg/runlog"
	"modsync/pkg/types"
)

// RunOptions extends the per-artifact Options with run-level settings.
type RunOptions struct {
	Options

	// CollectionID names the remote collection to reconcile against.
	CollectionID string

	// IncludeResourcePacks also syncs resource-pack artifacts; without
	// it, only mods are considered.
	IncludeResourcePacks bool

	// LogDir is where the category run logs are written.
	LogDir string
}

// SyncCollection reconciles the local directories against one remote
// collection. Errors returned from here are fatal (they occur before any
// per-artifact work begins); everything after the pool starts is reported
// through Results instead.
func SyncCollection(ctx context.Context, client types.APIClient, fsys types.FS, opts RunOptions) (Report, []types.Result, error) {
	logger := logging.GetLogger("sync")

	artifacts, err := client.FetchCollection(ctx, opts.CollectionID)
	if err != nil {
		return Report{}, nil, err
	}

	if !opts.IncludeResourcePacks {
		mods := artifacts[:0]
		for _, a := range artifacts {
			if a.Kind == types.KindMod {
				mods = append(mods, a)
			}
		}
		artifacts = mods
	}

	// Duplicate identifiers would make local files ambiguous; surface the
	// conflict instead of silently overwriting (spec leaves this open
	// upstream).
	seen := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		if prev, ok := seen[a.ID]; ok {
			return Report{}, nil, errors.Newf(errors.ErrIDConflict,
				"collection %s lists identifier %s twice (%s, %s)",
				opts.CollectionID, a.ID, prev, a.Name)
		}
		seen[a.ID] = a.Name
	}

	if len(artifacts) == 0 {
		logger.Info().Str("collection", opts.CollectionID).Msg("Nothing to sync")
		return Report{}, nil, nil
	}

	// "Latest" must mean latest AND currently compatible, so the newest
	// released platform version is resolved once for the whole run.
	if opts.GameVersion == "" {
		latest, err := client.LatestGameVersion(ctx)
		if err != nil {
			return Report{}, nil, err
		}
		opts.LatestKnown = latest
		logger.Info().Str("gameVersion", latest).Msg("Targeting latest release")
	}

	if err := fsys.MkdirAll(opts.ModsDir, 0755); err != nil {
		return Report{}, nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create mod directory %s", opts.ModsDir)
	}
	if opts.IncludeResourcePacks {
		if err := fsys.MkdirAll(opts.ResourcePacksDir, 0755); err != nil {
			return Report{}, nil, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create resource pack directory %s", opts.ResourcePacksDir)
		}
	}

	snap := localstate.NewSnapshot()
	if err := snap.ScanMods(fsys, opts.ModsDir); err != nil {
		return Report{}, nil, err
	}
	if opts.IncludeResourcePacks {
		if err := snap.ScanResourcePacks(fsys, opts.ResourcePacksDir); err != nil {
			return Report{}, nil, err
		}
	}

	events := runlog.New(fsys, opts.LogDir)
	orch := NewOrchestrator(client, fsys, snap, events, opts.Options)
	results := orch.Run(ctx, artifacts)
	return Reduce(results), results, nil
}
