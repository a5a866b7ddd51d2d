// Package selector implements the version-selection policy: given an
// artifact's published versions (newest-first, remote order is canonical)
// and the requested game version and loader, choose the single build to
// install or report that none qualifies.
package selector

import (
	"modsync/pkg/types"
)

// Request carries the filter constraints for one selection.
type Request struct {
	// GameVersion is the target platform version. Empty means "latest":
	// the newest loader-compatible build is chosen and then gated on
	// LatestKnown.
	GameVersion string

	// Loader is the requested loader name. The loader filter is relaxed
	// for resource packs and for versions that declare no loaders.
	Loader string

	// Kind of the artifact being selected for.
	Kind types.Kind

	// LatestKnown is the newest released platform version overall,
	// fetched once per run. Only consulted when GameVersion is empty.
	LatestKnown string
}

// Select returns the best qualifying version and true, or the zero value
// and false when no version qualifies. It never fails: an empty version
// list, a version without files, or a gate miss all mean "no match".
func Select(versions []types.ArtifactVersion, req Request) (types.ArtifactVersion, bool) {
	if req.GameVersion == "" {
		return selectLatest(versions, req)
	}

	for _, v := range versions {
		if !contains(v.GameVersions, req.GameVersion) {
			continue
		}
		if !loaderMatches(v, req) {
			continue
		}
		if _, ok := v.PrimaryFile(); !ok {
			continue
		}
		// First qualifying entry in newest-first order wins.
		return v, true
	}
	return types.ArtifactVersion{}, false
}

// selectLatest picks the newest loader-compatible build, then requires it
// to support the latest known platform version. The gate applies to the
// chosen build only: a recent-looking build stuck on an older platform
// version is a miss, not a reason to fall back to even older builds.
func selectLatest(versions []types.ArtifactVersion, req Request) (types.ArtifactVersion, bool) {
	for _, v := range versions {
		if !loaderMatches(v, req) {
			continue
		}
		if _, ok := v.PrimaryFile(); !ok {
			continue
		}
		if req.LatestKnown != "" && !contains(v.GameVersions, req.LatestKnown) {
			return types.ArtifactVersion{}, false
		}
		return v, true
	}
	return types.ArtifactVersion{}, false
}

// loaderMatches reports whether a version passes the loader filter.
// Resource packs are loader-agnostic, and a version with no declared
// loaders accepts any loader.
func loaderMatches(v types.ArtifactVersion, req Request) bool {
	if req.Kind == types.KindResourcePack {
		return true
	}
	if len(v.Loaders) == 0 {
		return true
	}
	return contains(v.Loaders, req.Loader)
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
