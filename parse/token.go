package parse

import "regexp"

// tokenRegex matches a single owner or repository name: alphanumeric at both
// ends, hyphens allowed in between, and a lone alphanumeric character is
// valid. Dots are deliberately excluded so filename-like segments
// ("file.ts") never pass as owner/repo candidates.
var tokenRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)

func isValidToken(s string) bool {
	return tokenRegex.MatchString(s)
}
