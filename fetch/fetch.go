// Package fetch downloads and unpacks template archives for parsed remote
// references. Retrieval is keyed by (provider, owner, repo, ref); the
// optional subpath never changes what is downloaded, it only filters what
// gets extracted.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"

	"tget/model"
	"tget/util"
)

var (
	ErrNotFound          = errors.New("repository or ref not found")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInvalidToken      = errors.New("invalid token")
)

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// Options control a single archive download.
type Options struct {
	Token    string // bearer token for private repositories
	Force    bool   // bypass the local archive cache
	Progress bool   // render a progress bar while downloading
}

// ArchiveURL returns the tarball download URL for ref on its provider.
func ArchiveURL(ref model.RemoteReference) string {
	switch ref.Provider {
	case model.ProviderGitLab:
		return fmt.Sprintf("https://gitlab.com/%s/%s/-/archive/%s.tar.gz", ref.Owner, ref.Repo, ref.Ref)
	case model.ProviderBitbucket:
		return fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz", ref.Owner, ref.Repo, ref.Ref)
	case model.ProviderSourcehut:
		return fmt.Sprintf("https://git.sr.ht/~%s/%s/archive/%s.tar.gz", ref.Owner, ref.Repo, ref.Ref)
	default:
		return fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/%s", ref.Owner, ref.Repo, ref.Ref)
	}
}

// DownloadArchive fetches the tarball for ref and returns the path of a
// local file holding it. Cached archives are reused unless opts.Force is
// set; fresh downloads are stored back into the cache on a best-effort
// basis.
func DownloadArchive(ctx context.Context, ref model.RemoteReference, opts Options) (string, error) {
	log := util.GetLogger()
	cache := GetCache()

	if !opts.Force {
		if path, ok := cache.Get(ref); ok {
			log.V(1).Info("using cached archive", "ref", ref.String(), "path", path)
			return path, nil
		}
	}

	archiveURL := ArchiveURL(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", err
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", opts.Token))
	}

	resp, err := doRequestWithRetry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", archiveURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref.String())
	case http.StatusUnauthorized:
		return "", ErrInvalidToken
	case http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return "", ErrRateLimitExceeded
		}
		return "", fmt.Errorf("HTTP 403 Forbidden for %s - check repository access", ref.String())
	default:
		return "", fmt.Errorf("HTTP %s for %s", resp.Status, archiveURL)
	}

	tmp, err := os.CreateTemp("", "tget-*.tar.gz")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	var body io.Reader = resp.Body
	if opts.Progress && resp.ContentLength > 0 {
		bar := pb.Full.Start64(resp.ContentLength)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	if _, err := io.Copy(tmp, body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing archive for %s: %w", ref.String(), err)
	}

	if err := cache.Put(ref, tmp.Name()); err != nil {
		log.V(1).Info("could not cache archive", "ref", ref.String(), "reason", err.Error())
	}

	return tmp.Name(), nil
}
