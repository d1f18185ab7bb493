package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// TSConfig holds the module resolution settings of a tsconfig.json
type TSConfig struct {
	File    string
	BaseURL string              // absolute directory, empty when unset
	Paths   map[string][]string // alias pattern -> target patterns, relative to BaseURL
}

type tsconfigDocument struct {
	Extends         string `json:"extends"`
	CompilerOptions struct {
		BaseURL *string             `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// ReadTSConfig loads a tsconfig.json, following relative "extends" chains.
// Comments and trailing commas are accepted.
func ReadTSConfig(path string) (*TSConfig, error) {
	return readTSConfig(path, map[string]bool{})
}

func readTSConfig(path string, visited map[string]bool) (*TSConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if visited[absPath] {
		return nil, fmt.Errorf("tsconfig extends cycle at %s", absPath)
	}
	visited[absPath] = true

	content, err := ReadFile(absPath, nil)
	if err != nil {
		return nil, err
	}
	// tsconfig is JSONC: comments and trailing commas are allowed
	data, err := hujson.Standardize([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", absPath, err)
	}

	var doc tsconfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", absPath, err)
	}

	cfg := &TSConfig{File: absPath}
	dir := filepath.Dir(absPath)

	if doc.Extends != "" && strings.HasPrefix(doc.Extends, ".") {
		parentPath := filepath.Join(dir, doc.Extends)
		if !strings.HasSuffix(parentPath, ".json") {
			parentPath += ".json"
		}
		parent, err := readTSConfig(parentPath, visited)
		if err != nil {
			return nil, err
		}
		cfg.BaseURL = parent.BaseURL
		cfg.Paths = parent.Paths
	}

	if doc.CompilerOptions.BaseURL != nil {
		cfg.BaseURL = filepath.Join(dir, *doc.CompilerOptions.BaseURL)
	}
	if doc.CompilerOptions.Paths != nil {
		cfg.Paths = doc.CompilerOptions.Paths
		if cfg.BaseURL == "" {
			// paths without baseUrl resolve against the declaring file
			cfg.BaseURL = dir
		}
	}

	return cfg, nil
}

// ResolveAlias maps a non-relative module specifier through "paths".
// It returns the absolute target without extension, and false when no alias
// applies. The longest matching prefix wins; targets are tried in order and
// the first existing one is preferred.
func (c *TSConfig) ResolveAlias(specifier string) (string, bool) {
	if c == nil || len(c.Paths) == 0 {
		return "", false
	}

	patterns := make([]string, 0, len(c.Paths))
	for p := range c.Paths {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		pi, pj := aliasPrefix(patterns[i]), aliasPrefix(patterns[j])
		if len(pi) != len(pj) {
			return len(pi) > len(pj)
		}
		return patterns[i] < patterns[j]
	})

	for _, pattern := range patterns {
		captured, ok := matchAlias(pattern, specifier)
		if !ok {
			continue
		}

		var candidates []string
		for _, target := range c.Paths[pattern] {
			resolved := filepath.Join(c.BaseURL, strings.Replace(target, "*", captured, 1))
			candidates = append(candidates, strings.TrimSuffix(resolved, ".ts"))
		}
		for _, cand := range candidates {
			if sourceExists(cand) {
				return cand, true
			}
		}
		if len(candidates) > 0 {
			return candidates[0], true
		}
	}
	return "", false
}

func aliasPrefix(pattern string) string {
	prefix, _, _ := strings.Cut(pattern, "*")
	return prefix
}

// matchAlias matches "@app/*" against "@app/users/user.dto"
func matchAlias(pattern, specifier string) (string, bool) {
	prefix, suffix, wildcard := strings.Cut(pattern, "*")
	if !wildcard {
		return "", pattern == specifier
	}
	if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) ||
		len(specifier) < len(prefix)+len(suffix) {
		return "", false
	}
	return specifier[len(prefix) : len(specifier)-len(suffix)], true
}

// sourceExists checks for a module file or directory index
func sourceExists(base string) bool {
	for _, candidate := range []string{base + ".ts", filepath.Join(base, "index.ts"), base} {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}
