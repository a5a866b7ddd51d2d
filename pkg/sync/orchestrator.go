// Package sync is the reconciliation engine: it decides, per artifact,
// whether the local directory already matches the selected remote build,
// and downloads or replaces files as needed. Each artifact is an
// independent unit of work; failures never cross artifact boundaries.
package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"modsync/pkg/errors"
	"modsync/pkg/localstate"
	"modsync/pkg/logging"
	"modsync/pkg/runlog"
	"modsync/pkg/selector"
	"modsync/pkg/types"
)

// Options carries the run-wide constraints shared by every artifact.
type Options struct {
	// GameVersion is the target platform version; empty means "latest".
	GameVersion string

	// Loader is the requested loader name.
	Loader string

	// LatestKnown is the newest released platform version, resolved once
	// per run. Only consulted when GameVersion is empty.
	LatestKnown string

	// Update enables replacing stale local files. When false, an older
	// local file is left in place and counted as up-to-date.
	Update bool

	// ModsDir and ResourcePacksDir are the target directories per kind.
	ModsDir          string
	ResourcePacksDir string

	// Workers bounds the parallelism of the pool.
	Workers int
}

// Orchestrator reconciles one artifact at a time against local state.
type Orchestrator struct {
	client types.APIClient
	fs     types.FS
	snap   *localstate.Snapshot
	events *runlog.Logger
	opts   Options
}

// NewOrchestrator wires the engine's collaborators together.
func NewOrchestrator(client types.APIClient, fsys types.FS, snap *localstate.Snapshot, events *runlog.Logger, opts Options) *Orchestrator {
	return &Orchestrator{
		client: client,
		fs:     fsys,
		snap:   snap,
		events: events,
		opts:   opts,
	}
}

// Reconcile runs one artifact through the per-artifact state machine and
// always returns a terminal Result; errors are converted to outcomes at
// this boundary and never propagate.
func (o *Orchestrator) Reconcile(ctx context.Context, artifact types.Artifact) types.Result {
	logger := logging.GetLogger("sync").With().
		Str("artifact", artifact.ID).
		Str("name", artifact.Name).
		Str("kind", string(artifact.Kind)).
		Logger()

	versions, err := o.client.FetchVersions(ctx, artifact.ID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to list versions")
		return types.Result{Artifact: artifact, Outcome: types.OutcomeFailed, Err: err}
	}

	selected, ok := selector.Select(versions, selector.Request{
		GameVersion: o.opts.GameVersion,
		Loader:      o.opts.Loader,
		Kind:        artifact.Kind,
		LatestKnown: o.opts.LatestKnown,
	})
	if !ok {
		logger.Info().Msg("No compatible version")
		o.logEvent(artifact, runlog.CategoryNoVersion, fmt.Sprintf(
			"%s (%s): no build for game version %q loader %q",
			artifact.Name, artifact.ID, o.requestedVersion(), o.opts.Loader))
		return types.Result{Artifact: artifact, Outcome: types.OutcomeNoVersion}
	}

	file, _ := selected.PrimaryFile()
	if artifact.Kind == types.KindResourcePack {
		return o.reconcilePack(ctx, artifact, file, logger)
	}
	return o.reconcileMod(ctx, artifact, file, logger)
}

// reconcileMod handles artifacts matched by the identifier embedded in
// their local filename.
func (o *Orchestrator) reconcileMod(ctx context.Context, artifact types.Artifact, file types.VersionFile, logger zerolog.Logger) types.Result {
	localName := localstate.ModFilename(artifact.ID, file.Filename)
	existing := o.snap.ModFiles(artifact.ID)

	current := false
	var stale []string
	for _, name := range existing {
		if name == localName {
			current = true
		} else {
			stale = append(stale, name)
		}
	}

	if current {
		// Tolerated duplicates from older runs are cleaned up even on
		// the no-download path.
		for _, name := range stale {
			if err := o.fs.Remove(filepath.Join(o.opts.ModsDir, name)); err != nil {
				logger.Warn().Err(err).Str("file", name).Msg("Failed to remove stale duplicate")
			}
		}
		o.snap.RecordInstall(artifact, localName)
		logger.Debug().Str("file", localName).Msg("Already up to date")
		o.logEvent(artifact, runlog.CategoryUpToDate, fmt.Sprintf(
			"%s (%s): %s", artifact.Name, artifact.ID, localName))
		return types.Result{Artifact: artifact, Outcome: types.OutcomeUpToDate, Filename: localName}
	}

	if len(stale) > 0 && !o.opts.Update {
		logger.Info().Strs("stale", stale).Msg("Newer build available, updates disabled")
		return types.Result{Artifact: artifact, Outcome: types.OutcomeUpToDate, Filename: stale[0]}
	}

	if err := o.install(ctx, o.opts.ModsDir, localName, file.URL, stale); err != nil {
		logger.Warn().Err(err).Str("file", localName).Msg("Install failed")
		return types.Result{Artifact: artifact, Outcome: types.OutcomeFailed, Err: err}
	}
	o.snap.RecordInstall(artifact, localName)

	if len(stale) > 0 {
		logger.Info().Str("file", localName).Strs("replaced", stale).Msg("Updated")
		o.logEvent(artifact, runlog.CategoryUpdated, fmt.Sprintf(
			"%s (%s): %s replaces %v", artifact.Name, artifact.ID, localName, stale))
		return types.Result{Artifact: artifact, Outcome: types.OutcomeUpdated, Filename: localName}
	}

	logger.Info().Str("file", localName).Msg("Downloaded")
	o.logEvent(artifact, runlog.CategoryDownloaded, fmt.Sprintf(
		"%s (%s): %s", artifact.Name, artifact.ID, localName))
	return types.Result{Artifact: artifact, Outcome: types.OutcomeDownloaded, Filename: localName}
}

// reconcilePack handles resource packs, which carry no embedded
// identifier and are matched by exact filename.
func (o *Orchestrator) reconcilePack(ctx context.Context, artifact types.Artifact, file types.VersionFile, logger zerolog.Logger) types.Result {
	if o.snap.HasPack(file.Filename) {
		logger.Debug().Str("file", file.Filename).Msg("Already up to date")
		o.logEvent(artifact, runlog.CategoryUpToDate, fmt.Sprintf(
			"%s (%s): %s", artifact.Name, artifact.ID, file.Filename))
		return types.Result{Artifact: artifact, Outcome: types.OutcomeUpToDate, Filename: file.Filename}
	}

	if err := o.install(ctx, o.opts.ResourcePacksDir, file.Filename, file.URL, nil); err != nil {
		logger.Warn().Err(err).Str("file", file.Filename).Msg("Install failed")
		return types.Result{Artifact: artifact, Outcome: types.OutcomeFailed, Err: err}
	}
	o.snap.RecordInstall(artifact, file.Filename)

	logger.Info().Str("file", file.Filename).Msg("Downloaded")
	o.logEvent(artifact, runlog.CategoryDownloaded, fmt.Sprintf(
		"%s (%s): %s", artifact.Name, artifact.ID, file.Filename))
	return types.Result{Artifact: artifact, Outcome: types.OutcomeDownloaded, Filename: file.Filename}
}

// install downloads a file and places it atomically: the payload is
// written under a temporary name in the target directory and renamed
// over the final name only after the write succeeds. Superseded files
// are deleted only after the new file is durably in place, so a failure
// at any point leaves the previously installed file intact.
func (o *Orchestrator) install(ctx context.Context, dir, filename, url string, supersedes []string) error {
	data, err := o.client.Download(ctx, url)
	if err != nil {
		return err
	}

	final := filepath.Join(dir, filename)
	tmp := final + ".tmp"

	if err := o.fs.WriteFile(tmp, data, 0644); err != nil {
		_ = o.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmp)
	}
	if err := o.fs.Rename(tmp, final); err != nil {
		_ = o.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s into place", filename)
	}

	for _, name := range supersedes {
		if err := o.fs.Remove(filepath.Join(dir, name)); err != nil {
			return errors.Wrapf(err, errors.ErrFileDelete, "failed to remove superseded file %s", name)
		}
	}
	return nil
}

func (o *Orchestrator) logEvent(artifact types.Artifact, category runlog.Category, message string) {
	if o.events == nil {
		return
	}
	if err := o.events.Event(artifact.Kind, category, message); err != nil {
		logger := logging.GetLogger("sync")
		logger.Warn().Err(err).Msg("Failed to write run log entry")
	}
}

func (o *Orchestrator) requestedVersion() string {
	if o.opts.GameVersion != "" {
		return o.opts.GameVersion
	}
	return "latest (" + o.opts.LatestKnown + ")"
}
