package adapters

import (
	"os"
	"path/filepath"

	"layered-views/internal/ports"
)

// FileCheckerAdapter answers existence questions against the local
// filesystem.  Directories and other non-regular files do not count.
type FileCheckerAdapter struct{}

func NewFileCheckerAdapter() FileCheckerAdapter {
	return FileCheckerAdapter{}
}

func (a FileCheckerAdapter) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (a FileCheckerAdapter) Canonical(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

var _ ports.FileCheckerPort = FileCheckerAdapter{}
