package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no vault indicator exists.
var ErrRootNotFound = errors.New("vault root not found")

// rootIndicators mark the top directory of a notes vault.
var rootIndicators = []string{".obsidian", ".git"}

// FindRoot looks upwards from startDir for a vault root, the closest
// directory holding .obsidian or .git, and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range rootIndicators {
			if exists(filepath.Join(dir, name)) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
