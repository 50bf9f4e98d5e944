package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ResolveFiles expands the source patterns, applies the exclude patterns and
// returns the sorted Solidity file list for the project.
func (c *Config) ResolveFiles(rootPath string) ([]string, error) {
	fileSet := make(map[string]bool)
	for _, pattern := range c.Sources {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootPath, pattern)
		}

		matches, err := expandGlob(pattern)
		if err != nil {
			// Silently skip invalid patterns
			continue
		}

		for _, match := range matches {
			if strings.EqualFold(filepath.Ext(match), ".sol") {
				fileSet[match] = true
			}
		}
	}

	for path := range fileSet {
		if c.ShouldExcludeFile(path, rootPath) {
			delete(fileSet, path)
		}
	}

	result := make([]string, 0, len(fileSet))
	for f := range fileSet {
		result = append(result, f)
	}
	sort.Strings(result)

	return result, nil
}

// ThirdPartySet returns the subset of files matching the third-party
// patterns, keyed for O(1) lookup during fact building.
func (c *Config) ThirdPartySet(files []string, rootPath string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range files {
		if c.IsThirdPartyFile(f, rootPath) {
			set[f] = true
		}
	}
	return set
}

// expandGlob expands a glob pattern, handling ** for recursive matching
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return expandDoubleStarGlob(pattern)
	}

	// Simple glob
	return filepath.Glob(pattern)
}

// expandDoubleStarGlob handles ** patterns by walking the directory tree
func expandDoubleStarGlob(pattern string) ([]string, error) {
	var results []string

	parts := strings.SplitN(pattern, "**", 2)
	if len(parts) != 2 {
		return filepath.Glob(pattern)
	}

	baseDir := filepath.Clean(parts[0])
	if baseDir == "" {
		baseDir = "."
	}
	suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))
	suffix = strings.ReplaceAll(suffix, string(filepath.Separator), "/")

	var matchers []glob.Glob
	if suffix != "" {
		// The suffix may start at any depth below the base directory.
		// Inside a brace group ** loses its cross-separator meaning, so
		// the two alternatives compile as separate matchers.
		for _, alt := range []string{suffix, "**/" + suffix} {
			g, err := glob.Compile(alt, '/')
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, g)
		}
	}

	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}

		if info.IsDir() {
			return nil
		}

		if len(matchers) == 0 {
			results = append(results, path)
			return nil
		}

		relPath, err := filepath.Rel(baseDir, path)
		if err != nil {
			return nil
		}
		rel := filepath.ToSlash(relPath)
		for _, m := range matchers {
			if m.Match(rel) {
				results = append(results, path)
				break
			}
		}

		return nil
	})

	return results, err
}
