package parse

import (
	"strings"

	"tget/model"
)

// aliasProviders maps "<alias>:" location prefixes to providers. An alias
// prefix is the only way to select a non-github provider.
var aliasProviders = map[string]model.Provider{
	"gh":        model.ProviderGitHub,
	"github":    model.ProviderGitHub,
	"gitlab":    model.ProviderGitLab,
	"bitbucket": model.ProviderBitbucket,
	"sourcehut": model.ProviderSourcehut,
}

// knownHosts maps hostnames that may prefix a bare owner/repo path after the
// URL scheme has been stripped.
var knownHosts = map[string]model.Provider{
	"github.com": model.ProviderGitHub,
}

// resolveProvider determines the provider named by s and returns the
// remainder with any recognized alias or hostname prefix consumed. An
// unrecognized prefix is left in place; it fails token validation later
// rather than being guessed at here.
func resolveProvider(s string) (model.Provider, string) {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		if provider, ok := aliasProviders[s[:idx]]; ok {
			return provider, s[idx+1:]
		}
	}

	for host, provider := range knownHosts {
		if rest, ok := strings.CutPrefix(s, host+"/"); ok {
			return provider, rest
		}
	}

	return model.ProviderGitHub, s
}
