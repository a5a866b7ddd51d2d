package types

// Kind identifies what sort of content an artifact is. Mods and resource
// packs live in separate directories and follow different local naming rules.
type Kind string

const (
	KindMod          Kind = "mod"
	KindResourcePack Kind = "resourcepack"
)

// Artifact is a single entry in a remote collection.
type Artifact struct {
	// ID is the stable, opaque identifier assigned by the remote service.
	ID string

	// Name is the human-readable display title.
	Name string

	// Kind distinguishes mods from resource packs.
	Kind Kind
}

// VersionFile is one downloadable file attached to an artifact version.
type VersionFile struct {
	URL      string
	Filename string
	Primary  bool
}

// ArtifactVersion is one published build of an artifact. The remote API
// returns versions newest-first; that order is preserved and treated as
// canonical throughout.
type ArtifactVersion struct {
	ID string

	// GameVersions lists the platform versions this build declares
	// compatibility with (exact strings, e.g. "1.21.5").
	GameVersions []string

	// Loaders lists compatible loader names. An empty list means the
	// artifact declares no loader restriction.
	Loaders []string

	Files []VersionFile
}

// PrimaryFile returns the file that should be installed for this version:
// the file flagged primary, or the first file when none is flagged.
// ok is false when the version carries no files at all.
func (v ArtifactVersion) PrimaryFile() (VersionFile, bool) {
	for _, f := range v.Files {
		if f.Primary {
			return f, true
		}
	}
	if len(v.Files) > 0 {
		return v.Files[0], true
	}
	return VersionFile{}, false
}

// Outcome is the terminal state of one artifact's reconciliation.
type Outcome string

const (
	// OutcomeUpToDate means the installed file already matches the
	// selected remote version. No I/O was performed.
	OutcomeUpToDate Outcome = "up-to-date"

	// OutcomeDownloaded means no local file existed and the selected
	// version was freshly installed.
	OutcomeDownloaded Outcome = "downloaded"

	// OutcomeUpdated means an older local file was replaced by the
	// selected version.
	OutcomeUpdated Outcome = "updated"

	// OutcomeNoVersion means no remote build qualifies for the requested
	// game version and loader. This is a reportable result, not an error.
	OutcomeNoVersion Outcome = "no-version"

	// OutcomeFailed means a network or filesystem error interrupted the
	// reconciliation of this one artifact.
	OutcomeFailed Outcome = "failed"
)

// Result records how one artifact's reconciliation ended.
type Result struct {
	Artifact Artifact
	Outcome  Outcome

	// Filename is the installed (or already-present) local filename,
	// empty for no-version and failed outcomes.
	Filename string

	// Err carries the failure for OutcomeFailed, nil otherwise.
	Err error
}
