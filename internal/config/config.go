package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Config is the top-level configuration for regast
type Config struct {
	// Sources is a list of glob patterns for Solidity files to index
	Sources []string `json:"sources,omitempty"`

	// Exclude is a list of glob patterns to drop from the source set
	Exclude []string `json:"exclude,omitempty"`

	// ThirdParty is a list of glob patterns marking vendored code
	// (node_modules, forge lib directories and the like)
	ThirdParty []string `json:"thirdParty,omitempty"`

	// Analysis contains analysis options
	Analysis AnalysisConfig `json:"analysis,omitempty"`
}

// CacheConfig controls incremental indexing cache behavior
type CacheConfig struct {
	// Enabled turns on incremental cache usage
	Enabled *bool `json:"enabled,omitempty"`

	// Dir is the cache directory (relative to project root if not absolute)
	Dir string `json:"dir,omitempty"`
}

// AnalysisConfig contains analysis options
type AnalysisConfig struct {
	// MaxParallelFiles limits concurrent file processing (0 = auto)
	MaxParallelFiles int `json:"maxParallelFiles,omitempty"`

	// Cache controls incremental indexing cache behavior
	Cache CacheConfig `json:"cache,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Sources:    []string{"*.sol", "**/*.sol"},
		Exclude:    []string{},
		ThirdParty: []string{"node_modules/**", "lib/**"},
		Analysis: AnalysisConfig{
			MaxParallelFiles: 0, // auto
			Cache: CacheConfig{
				Enabled: boolPtr(true),
				Dir:     ".regast_cache",
			},
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. ./regast.json (current working directory)
//  2. ./.regast.json (current working directory)
//  3. <rootPath>/regast.json (if different from cwd)
//  4. ~/.config/regast/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "regast.json"),
		filepath.Join(cwd, ".regast.json"),
	}

	// If rootPath is a directory and different from cwd, also check there
	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "regast.json"),
				filepath.Join(rootPath, ".regast.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "regast", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	// No config found, return defaults
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Sources == nil {
		c.Sources = []string{"*.sol", "**/*.sol"}
	}
	if c.ThirdParty == nil {
		c.ThirdParty = []string{"node_modules/**", "lib/**"}
	}

	if c.Analysis.Cache.Dir == "" {
		c.Analysis.Cache.Dir = ".regast_cache"
	}
	if c.Analysis.Cache.Enabled == nil {
		c.Analysis.Cache.Enabled = boolPtr(true)
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// IsThirdPartyFile checks if a file matches one of the third-party patterns.
// Patterns are matched against the full path and against the path relative to
// the project root so that "node_modules/**" works either way.
func (c *Config) IsThirdPartyFile(filePath, rootPath string) bool {
	return matchAny(c.ThirdParty, filePath, rootPath)
}

// ShouldExcludeFile checks if a file should be skipped entirely
func (c *Config) ShouldExcludeFile(filePath, rootPath string) bool {
	return matchAny(c.Exclude, filePath, rootPath)
}

func matchAny(patterns []string, filePath, rootPath string) bool {
	candidates := []string{filePath, filepath.Base(filePath)}
	if rel, err := filepath.Rel(rootPath, filePath); err == nil {
		candidates = append(candidates, rel)
	}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			// Invalid patterns match nothing.
			continue
		}
		for _, candidate := range candidates {
			if g.Match(filepath.ToSlash(candidate)) {
				return true
			}
		}
	}
	return false
}
