package types

import (
	"context"
	"io/fs"
)

// FS abstracts the filesystem operations the sync engine needs, allowing
// tests to substitute an in-memory implementation.
type FS interface {
	// File operations
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	AppendFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// APIClient is the remote gateway the sync engine consumes. It is
// stateless from the engine's perspective and is passed into each worker,
// so tests can substitute a scripted fake without network access.
type APIClient interface {
	// FetchCollection resolves a collection ID to its member artifacts.
	FetchCollection(ctx context.Context, collectionID string) ([]Artifact, error)

	// FetchVersions lists an artifact's published versions, newest-first.
	FetchVersions(ctx context.Context, artifactID string) ([]ArtifactVersion, error)

	// LatestGameVersion reports the newest released platform version.
	LatestGameVersion(ctx context.Context) (string, error)

	// Download retrieves the raw bytes behind a version file URL.
	Download(ctx context.Context, url string) ([]byte, error)
}
