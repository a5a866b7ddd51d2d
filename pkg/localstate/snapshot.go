// Package localstate captures what is already installed in the target
// directories. The snapshot is taken once at process start and mutated
// in memory as the engine installs files; it is never re-scanned mid-run.
package localstate

import (
	"sync"

	"modsync/pkg/errors"
	"modsync/pkg/logging"
	"modsync/pkg/types"
)

// Snapshot indexes the local files of both kinds. It is safe for
// concurrent use by the worker pool.
type Snapshot struct {
	mu sync.Mutex

	// mods maps artifact ID to the local filenames claiming it. More
	// than one entry means leftover stale versions; the replace step
	// removes them all.
	mods map[string][]string

	// packs is the set of resource-pack filenames present locally.
	packs map[string]struct{}
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		mods:  make(map[string][]string),
		packs: make(map[string]struct{}),
	}
}

// ScanMods indexes the mod directory. Files whose names do not follow the
// identifier grammar are skipped with a warning.
func (s *Snapshot) ScanMods(fsys types.FS, dir string) error {
	logger := logging.GetLogger("localstate")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "failed to list mod directory %s", dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		id, ok := ParseModFilename(name)
		if !ok {
			logger.Warn().Str("file", name).Msg("Skipping file with unexpected name format")
			continue
		}
		s.mods[id] = append(s.mods[id], name)
	}
	return nil
}

// ScanResourcePacks indexes the resource-pack directory by exact filename.
func (s *Snapshot) ScanResourcePacks(fsys types.FS, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "failed to list resource pack directory %s", dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		s.packs[entry.Name()] = struct{}{}
	}
	return nil
}

// ModFiles returns the local filenames claiming the given artifact ID.
func (s *Snapshot) ModFiles(artifactID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make([]string, len(s.mods[artifactID]))
	copy(files, s.mods[artifactID])
	return files
}

// HasPack reports whether a resource pack with the exact filename exists.
func (s *Snapshot) HasPack(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.packs[filename]
	return ok
}

// RecordInstall replaces the snapshot entry for an artifact after a
// successful install, dropping any stale filenames it superseded.
func (s *Snapshot) RecordInstall(artifact types.Artifact, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if artifact.Kind == types.KindResourcePack {
		s.packs[filename] = struct{}{}
		return
	}
	s.mods[artifact.ID] = []string{filename}
}
