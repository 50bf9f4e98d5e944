package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giovannarevitoroz/regast/internal/facts"
)

// The snapshot is the previous run's merged fact tables. Deltas are computed
// against it, so it persists separately from the per-file fragment cache.

const snapshotVersion = 1

type snapshot struct {
	Version int          `json:"version"`
	Tables  facts.Tables `json:"tables"`
}

func loadSnapshot(dir string) (facts.Tables, bool, error) {
	path := filepath.Join(dir, "snapshot.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return facts.Tables{}, false, nil
		}
		return facts.Tables{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return facts.Tables{}, false, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return facts.Tables{}, false, nil
	}
	return snap.Tables, true, nil
}

func saveSnapshot(dir string, tables facts.Tables) error {
	snap := snapshot{
		Version: snapshotVersion,
		Tables:  tables,
	}
	if err := writeJSONAtomic(filepath.Join(dir, "snapshot.json"), snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
