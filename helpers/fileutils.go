// Package helpers holds small filesystem and formatting utilities shared by
// the fetch layer and the CLI.
package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveFile writes content to relPath underneath destDir, creating parent
// directories as needed. relPath uses forward slashes.
func SaveFile(destDir, relPath string, content io.Reader) error {
	fullPath := filepath.Join(destDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("error creating output folder for %s: %w", fullPath, err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", fullPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return fmt.Errorf("error saving file %s: %w", fullPath, err)
	}

	return nil
}

// DirIsEmpty reports whether path does not exist or is a directory with no
// entries. A non-directory path counts as non-empty.
func DirIsEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
