package localstate

import "strings"

// Installed mod files embed the artifact identifier in their name so a
// later run can recover which artifact a file belongs to without any
// sidecar state. The grammar is:
//
//	<artifactID>-<remoteFilename>
//
// where <artifactID> never contains '-' (remote identifiers are short
// base62 strings) and <remoteFilename> is the upstream filename verbatim,
// e.g. "AANobbMI-sodium-0.6.13+mc1.21.5.jar". Resource packs carry no
// embedded identifier; they keep the remote filename unchanged and are
// matched by exact filename instead.

// ModFilename builds the local filename for a mod artifact's file.
func ModFilename(artifactID, remoteFilename string) string {
	return artifactID + "-" + remoteFilename
}

// ParseModFilename recovers the artifact identifier from a local mod
// filename. ok is false for names that do not follow the grammar.
func ParseModFilename(filename string) (artifactID string, ok bool) {
	idx := strings.Index(filename, "-")
	if idx <= 0 || idx == len(filename)-1 {
		return "", false
	}
	return filename[:idx], true
}
