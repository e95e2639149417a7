package parse

import "strings"

// IsRemoteRef reports whether raw names a remote template rather than a
// local filesystem path. Unambiguous local shapes are rejected without
// parsing; everything else is remote exactly when Parse accepts it, so a
// string like "src/file.ts" classifies as local because "file.ts" is not a
// valid repository name.
func IsRemoteRef(raw string) bool {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") || strings.HasPrefix(s, "/") {
		return false
	}
	if strings.ContainsRune(s, '\\') {
		return false
	}
	// A reference needs at least owner/repo; a bare word cannot be one.
	if !strings.Contains(s, "/") {
		return false
	}

	_, ok := Parse(s)
	return ok
}
