package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X modsync/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X modsync/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X modsync/internal/version.Date={{.Date}}
)
