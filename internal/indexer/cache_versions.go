package indexer

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/giovannarevitoroz/regast/internal/config"
)

func cacheEnabled(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}
	if cfg.Analysis.Cache.Enabled == nil {
		return false
	}
	return *cfg.Analysis.Cache.Enabled
}

func resolveCacheDir(rootPath string, cfg *config.Config) string {
	baseDir := rootPath
	if info, err := os.Stat(rootPath); err == nil && !info.IsDir() {
		baseDir = filepath.Dir(rootPath)
	}
	cacheDir := cfg.Analysis.Cache.Dir
	if cacheDir == "" {
		cacheDir = ".regast_cache"
	}
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(baseDir, cacheDir)
	}
	return cacheDir
}

// loweringVersion keys cached fragments to the lowering implementation, so a
// dispatch table change invalidates stale fragments.
func (idx *Indexer) loweringVersion() string {
	if idx.loweringVersionOverride != "" {
		return idx.loweringVersionOverride
	}
	return computeLoweringVersion()
}

func computeLoweringVersion() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "unknown"
	}
	loweringDir := filepath.Join(filepath.Dir(file), "..", "lowering")
	version := hashFileIfExists(filepath.Join(loweringDir, "declarations.go"))
	if version == "" {
		return "unknown"
	}
	return version
}

func hashFileIfExists(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	h, err := hashFile(path)
	if err != nil {
		return ""
	}
	return h
}

func defaultParallelism() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
