package model

import "fmt"

// Provider identifies a supported template hosting service.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderBitbucket Provider = "bitbucket"
	ProviderSourcehut Provider = "sourcehut"
)

// DefaultRef is the ref assumed when a location string does not name one.
const DefaultRef = "main"

// RemoteReference holds the parsed components of a remote template location.
// Owner and Repo are always valid name tokens, Ref is never empty, and
// Subpath is empty unless the location named a directory inside the
// repository (no leading or trailing slash when set).
type RemoteReference struct {
	Provider Provider
	Owner    string
	Repo     string
	Ref      string
	Subpath  string
}

// String renders the reference in the provider-prefixed form accepted by the
// parser, e.g. "gitlab:owner/repo/sub/dir#v1.2".
func (r RemoteReference) String() string {
	s := fmt.Sprintf("%s:%s/%s", r.Provider, r.Owner, r.Repo)
	if r.Subpath != "" {
		s += "/" + r.Subpath
	}
	if r.Ref != "" && r.Ref != DefaultRef {
		s += "#" + r.Ref
	}
	return s
}
