// Package parse turns human-typed template location strings into structured
// remote references, and classifies arbitrary input as remote or local.
//
// Two spellings are accepted for the same reference: the provider-prefixed
// form "gh:owner/repo/sub/dir#ref" and the legacy form
// "https://github.com/owner/repo/sub/dir@ref". Parsing is pure and does no
// I/O, so it is safe to call from any number of goroutines.
package parse

import (
	"strings"

	"tget/model"
)

// Parse interprets a location string as a remote template reference.
// The second return value is false for any input that does not conform to
// the grammar; a partially populated reference is never returned.
func Parse(raw string) (model.RemoteReference, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.RemoteReference{}, false
	}

	if after, ok := strings.CutPrefix(s, "https://"); ok {
		s = after
	} else if after, ok := strings.CutPrefix(s, "http://"); ok {
		s = after
	}

	provider, rest := resolveProvider(s)

	// The ref delimiter is located on the whole remaining string, not per
	// segment, so a ref containing "/" (feature/x) stays intact instead of
	// being mistaken for a subpath. When both "#" and "@" appear, the first
	// one encountered wins.
	pathPart := rest
	ref := model.DefaultRef
	if idx := strings.IndexAny(rest, "#@"); idx >= 0 {
		pathPart = rest[:idx]
		ref = rest[idx+1:]
		if ref == "" {
			return model.RemoteReference{}, false
		}
	}

	pathPart = strings.TrimSuffix(pathPart, ".git")

	segments := strings.Split(pathPart, "/")
	if len(segments) < 2 {
		return model.RemoteReference{}, false
	}
	for _, segment := range segments {
		if segment == "" {
			return model.RemoteReference{}, false
		}
	}

	owner, repo := segments[0], segments[1]
	if !isValidToken(owner) || !isValidToken(repo) {
		return model.RemoteReference{}, false
	}

	reference := model.RemoteReference{
		Provider: provider,
		Owner:    owner,
		Repo:     repo,
		Ref:      ref,
	}
	if len(segments) > 2 {
		reference.Subpath = strings.Join(segments[2:], "/")
	}

	return reference, true
}
