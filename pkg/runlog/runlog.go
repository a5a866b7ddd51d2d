// Package runlog writes the per-category event logs a run leaves behind:
// one append-only text file per (kind, category) pair, e.g.
// downloaded_mods.log or no_version_resourcepacks.log, each line
// timestamped. These files are for the user; diagnostic logging goes
// through pkg/logging instead.
package runlog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"modsync/pkg/errors"
	"modsync/pkg/types"
)

// Category names the event log a message belongs to.
type Category string

const (
	CategoryDownloaded Category = "downloaded"
	CategoryUpdated    Category = "updated"
	CategoryNoVersion  Category = "no_version"
	CategoryUpToDate   Category = "up_to_date"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger appends timestamped event lines to category files under a single
// log directory. It is safe for concurrent use by the worker pool.
type Logger struct {
	fs  types.FS
	dir string

	mu      sync.Mutex
	created bool
	now     func() time.Time
}

// New creates a Logger writing under dir. The directory is created lazily
// on the first event.
func New(fsys types.FS, dir string) *Logger {
	return &Logger{
		fs:  fsys,
		dir: dir,
		now: time.Now,
	}
}

// Event appends one timestamped line to the category file for the given
// kind.
func (l *Logger) Event(kind types.Kind, category Category, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.created {
		if err := l.fs.MkdirAll(l.dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create log directory %s", l.dir)
		}
		l.created = true
	}

	path := filepath.Join(l.dir, fileName(kind, category))
	line := fmt.Sprintf("[%s] %s\n", l.now().Format(timestampLayout), message)

	if err := l.fs.AppendFile(path, []byte(line), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to append to %s", path)
	}
	return nil
}

func fileName(kind types.Kind, category Category) string {
	return fmt.Sprintf("%s_%ss.log", category, kind)
}
