package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/giovannarevitoroz/regast/internal/facts"
)

const cacheIndexVersion = 1

type cacheEntry struct {
	ContentHash     string `json:"content_hash"`
	TablesPath      string `json:"tables_path"`
	ParserVersion   string `json:"parser_version"`
	LoweringVersion string `json:"lowering_version"`
}

type cacheIndex struct {
	Version int                   `json:"version"`
	Entries map[string]cacheEntry `json:"entries"`
}

// factsCache stores the per-file fact table fragment keyed by content hash.
// A parser or lowering version change invalidates every entry.
type factsCache struct {
	dir             string
	parserVersion   string
	loweringVersion string
	mu              sync.Mutex
	index           cacheIndex
}

func newFactsCache(dir, parserVersion, loweringVersion string) *factsCache {
	return &factsCache{
		dir:             dir,
		parserVersion:   parserVersion,
		loweringVersion: loweringVersion,
		index: cacheIndex{
			Version: cacheIndexVersion,
			Entries: make(map[string]cacheEntry),
		},
	}
}

func (c *factsCache) indexPath() string {
	return filepath.Join(c.dir, "index.json")
}

func (c *factsCache) tablesDir() string {
	return filepath.Join(c.dir, "tables")
}

func (c *factsCache) tablesPathForFile(filePath string) string {
	h := sha256.Sum256([]byte(filePath))
	return filepath.Join(c.tablesDir(), hex.EncodeToString(h[:])+".json")
}

func (c *factsCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("cache mkdir: %w", err)
	}
	path := c.indexPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cache index: %w", err)
	}
	var idx cacheIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("parse cache index: %w", err)
	}
	if idx.Version != cacheIndexVersion {
		// Reset on version mismatch
		c.index = cacheIndex{Version: cacheIndexVersion, Entries: make(map[string]cacheEntry)}
		return nil
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]cacheEntry)
	}
	c.index = idx
	return nil
}

func (c *factsCache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeJSONAtomic(c.indexPath(), c.index)
}

func (c *factsCache) Get(filePath, contentHash string) (facts.Tables, bool, error) {
	c.mu.Lock()
	entry, ok := c.index.Entries[filePath]
	c.mu.Unlock()
	if !ok {
		return facts.Tables{}, false, nil
	}
	if entry.ContentHash != contentHash {
		return facts.Tables{}, false, nil
	}
	if entry.ParserVersion != c.parserVersion || entry.LoweringVersion != c.loweringVersion {
		return facts.Tables{}, false, nil
	}

	data, err := os.ReadFile(entry.TablesPath)
	if err != nil {
		return facts.Tables{}, false, fmt.Errorf("read cached tables: %w", err)
	}
	var tables facts.Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		return facts.Tables{}, false, fmt.Errorf("parse cached tables: %w", err)
	}
	return tables, true, nil
}

func (c *factsCache) Put(filePath, contentHash string, tables facts.Tables) error {
	tablesPath := c.tablesPathForFile(filePath)
	if err := os.MkdirAll(filepath.Dir(tablesPath), 0o755); err != nil {
		return fmt.Errorf("cache tables dir: %w", err)
	}
	if err := writeJSONAtomic(tablesPath, tables); err != nil {
		return err
	}

	c.mu.Lock()
	c.index.Entries[filePath] = cacheEntry{
		ContentHash:     contentHash,
		TablesPath:      tablesPath,
		ParserVersion:   c.parserVersion,
		LoweringVersion: c.loweringVersion,
	}
	c.mu.Unlock()
	return nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache json: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
