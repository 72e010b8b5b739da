package fs

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolve returns the documents to process. A non-empty pattern replaces
// files and is expanded with doublestar syntax, keeping regular files only.
func Resolve(files []string, pattern string) ([]string, error) {
	if pattern == "" {
		return files, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
