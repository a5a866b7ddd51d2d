package testutil

import (
	"github.com/spf13/afero"

	"modsync/pkg/filesystem"
	"modsync/pkg/types"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
