package fetch

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeArchive builds a gzip'd tarball with the given entry names. Names
// ending in "/" become directories, everything else a file whose content is
// its own name.
func makeArchive(t *testing.T, names ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "template.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, name := range names {
		if name[len(name)-1] == '/' {
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name:     name,
				Typeflag: tar.TypeDir,
				Mode:     0o755,
			}))
			continue
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(name)),
		}))
		_, err := tw.Write([]byte(name))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return path
}

func TestExtractStripsArchiveRoot(t *testing.T) {
	archive := makeArchive(t,
		"repo-main/",
		"repo-main/README.md",
		"repo-main/src/",
		"repo-main/src/app.go",
	)
	dest := t.TempDir()

	count, err := Extract(archive, dest, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(dest, "README.md"))
	assert.FileExists(t, filepath.Join(dest, "src", "app.go"))
	assert.NoFileExists(t, filepath.Join(dest, "repo-main", "README.md"))
}

func TestExtractSubpathFilter(t *testing.T) {
	archive := makeArchive(t,
		"repo-main/README.md",
		"repo-main/examples/basic/main.go",
		"repo-main/examples/basic/go.mod",
		"repo-main/examples/advanced/main.go",
	)
	dest := t.TempDir()

	count, err := Extract(archive, dest, "examples/basic", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(dest, "main.go"))
	assert.FileExists(t, filepath.Join(dest, "go.mod"))
	assert.NoFileExists(t, filepath.Join(dest, "README.md"))
	assert.NoFileExists(t, filepath.Join(dest, "examples", "basic", "main.go"))
}

func TestExtractOnlyFilter(t *testing.T) {
	archive := makeArchive(t,
		"repo-main/keep/a.txt",
		"repo-main/keep/b.txt",
		"repo-main/drop/c.txt",
		"repo-main/drop.txt",
	)
	dest := t.TempDir()

	count, err := Extract(archive, dest, "", map[string]bool{"keep": true})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(dest, "keep", "a.txt"))
	assert.NoFileExists(t, filepath.Join(dest, "drop", "c.txt"))
	assert.NoFileExists(t, filepath.Join(dest, "drop.txt"))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	archive := makeArchive(t, "x/../../../evil")
	dest := t.TempDir()

	_, err := Extract(archive, dest, "", nil)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil"))
}

func TestList(t *testing.T) {
	archive := makeArchive(t,
		"repo-main/README.md",
		"repo-main/src/a.go",
		"repo-main/src/b.go",
		"repo-main/docs/guide.md",
	)

	names, err := List(archive, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src", "docs"}, names)

	names, err = List(archive, "src")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, names)
}

func TestStripArchiveRoot(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"repo-main/", ""},
		{"repo-main/file.txt", "file.txt"},
		{"repo-main/a/b", "a/b"},
		{"./repo-main/file.txt", "file.txt"},
		{"pax_global_header", ""},
	}

	for _, tt := range tests {
		if got := stripArchiveRoot(tt.name); got != tt.want {
			t.Errorf("stripArchiveRoot(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
