package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"tget/model"
)

// ArchiveCache stores downloaded tarballs under the user cache directory,
// keyed by (provider, owner, repo, ref). A cache that cannot set up its
// directory is disabled rather than fatal: every operation becomes a no-op.
type ArchiveCache struct {
	dir     string
	enabled bool
}

func NewArchiveCache() *ArchiveCache {
	dir, err := archiveCacheDir()
	if err != nil {
		return &ArchiveCache{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ArchiveCache{}
	}
	return &ArchiveCache{dir: dir, enabled: true}
}

func archiveCacheDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Caches")
	case "windows":
		baseDir = os.Getenv("LOCALAPPDATA")
		if baseDir == "" {
			return "", fmt.Errorf("LOCALAPPDATA not set")
		}
	default:
		baseDir = os.Getenv("XDG_CACHE_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".cache")
		}
	}

	return filepath.Join(baseDir, "tget", "archives"), nil
}

// entryPath maps a reference to its tarball location inside the cache.
// Slashes in the ref (branch names like feature/x) are flattened so the
// ref always names a single file.
func (c *ArchiveCache) entryPath(ref model.RemoteReference) string {
	safeRef := strings.ReplaceAll(ref.Ref, "/", "-")
	return filepath.Join(c.dir, string(ref.Provider), ref.Owner, ref.Repo, safeRef+".tar.gz")
}

// Get returns the cached tarball path for ref, if one exists.
func (c *ArchiveCache) Get(ref model.RemoteReference) (string, bool) {
	if !c.enabled {
		return "", false
	}

	path := c.entryPath(ref)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Put stores the tarball at sourcePath in the cache, preferring a hard link
// and falling back to a copy across filesystems.
func (c *ArchiveCache) Put(ref model.RemoteReference, sourcePath string) error {
	if !c.enabled {
		return nil
	}

	path := c.entryPath(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	os.Remove(path)
	if err := os.Link(sourcePath, path); err == nil {
		return nil
	}
	return copyFile(sourcePath, path)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

var globalCache *ArchiveCache

func init() {
	globalCache = NewArchiveCache()
}

// GetCache returns the process-wide archive cache.
func GetCache() *ArchiveCache {
	return globalCache
}
