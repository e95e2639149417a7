package fetch

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tget/helpers"
)

// walkArchive streams the gzip'd tarball at archivePath, calling fn for each
// entry with its path relative to the archive's top-level directory. The
// top-level directory itself (codeload and friends wrap everything in
// "<repo>-<ref>/") is stripped; entries that escape it are rejected.
func walkArchive(archivePath string, fn func(hdr *tar.Header, rel string, r io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive %s: %w", archivePath, err)
		}

		rel := stripArchiveRoot(hdr.Name)
		if rel == "" {
			continue
		}
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("archive entry escapes extraction root: %s", hdr.Name)
		}

		if err := fn(hdr, rel, tr); err != nil {
			return err
		}
	}
}

// stripArchiveRoot drops the archive's single top-level directory from an
// entry name and returns the cleaned remainder, or "" for the root itself.
func stripArchiveRoot(name string) string {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	_, rest, found := strings.Cut(name, "/")
	if !found {
		return ""
	}
	return rest
}

// applySubpath rewrites rel to be relative to subpath, returning ok=false
// for entries outside it. An empty subpath keeps everything.
func applySubpath(rel, subpath string) (string, bool) {
	if subpath == "" {
		return rel, true
	}
	if rel == subpath {
		return "", false
	}
	rest, found := strings.CutPrefix(rel, subpath+"/")
	if !found {
		return "", false
	}
	return rest, true
}

// List returns the unique top-level entry names of the archive, in archive
// order, after root stripping and subpath filtering. It is what the
// interactive selector presents to the user.
func List(archivePath, subpath string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	err := walkArchive(archivePath, func(hdr *tar.Header, rel string, _ io.Reader) error {
		rel, ok := applySubpath(rel, subpath)
		if !ok || rel == "" {
			return nil
		}
		top, _, _ := strings.Cut(rel, "/")
		if !seen[top] {
			seen[top] = true
			names = append(names, top)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Extract unpacks the archive into destDir, keeping only entries under
// subpath when it is set. When only is non-nil, entries whose top-level name
// is not in it are skipped as well. Returns the number of files written.
func Extract(archivePath, destDir, subpath string, only map[string]bool) (int, error) {
	written := 0

	err := walkArchive(archivePath, func(hdr *tar.Header, rel string, r io.Reader) error {
		rel, ok := applySubpath(rel, subpath)
		if !ok || rel == "" {
			return nil
		}
		if only != nil {
			top, _, _ := strings.Cut(rel, "/")
			if !only[top] {
				return nil
			}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			return os.MkdirAll(filepath.Join(destDir, filepath.FromSlash(rel)), 0o755)
		case tar.TypeReg:
			if err := helpers.SaveFile(destDir, rel, r); err != nil {
				return err
			}
			written++
		}
		// Symlinks and other entry types are not materialized.
		return nil
	})
	if err != nil {
		return written, err
	}

	return written, nil
}
