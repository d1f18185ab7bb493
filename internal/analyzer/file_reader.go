package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanPaths expands the source globs relative to root.
// Patterns starting with "!" exclude matches of the earlier patterns.
// The result is de-duplicated and ordered by lower-cased path.
func ScanPaths(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	var excludes []string

	fsys := os.DirFS(root)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if strings.HasPrefix(pattern, "!") {
			excludes = append(excludes, strings.TrimPrefix(strings.TrimPrefix(pattern, "!"), "./"))
			continue
		}

		var matches []string
		var err error
		if filepath.IsAbs(pattern) {
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			for i, m := range matches {
				if rel, relErr := filepath.Rel(root, m); relErr == nil {
					matches[i] = filepath.ToSlash(rel)
				}
			}
		} else {
			matches, err = doublestar.Glob(fsys, strings.TrimPrefix(pattern, "./"), doublestar.WithFilesOnly())
		}
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			if !seen[m] && IsTypeScriptFile(m) {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	kept := files[:0]
	for _, f := range files {
		if !matchesAny(f, excludes) {
			kept = append(kept, f)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		li, lj := strings.ToLower(kept[i]), strings.ToLower(kept[j])
		if li != lj {
			return li < lj
		}
		return kept[i] < kept[j]
	})
	return kept, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}
