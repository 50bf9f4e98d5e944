package indexer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// timingEvent is one JSONL line. Scope is "run" for pipeline stages (scan,
// index, merge, validate, delta) and "file" for per-file work inside the
// index stage, where Outcome records whether the file was indexed or served
// from the cache.
type timingEvent struct {
	Stage     string  `json:"stage"`
	Scope     string  `json:"scope"`
	File      string  `json:"file,omitempty"`
	Outcome   string  `json:"outcome,omitempty"`
	StartedMS float64 `json:"started_ms"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// timingRecorder streams pipeline timings as JSONL when enabled.
type timingRecorder struct {
	enabled bool
	start   time.Time
	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	err     error
}

func newTimingRecorder(start time.Time, path string) *timingRecorder {
	tr := &timingRecorder{start: start}
	if path == "" {
		return tr
	}
	f, err := os.Create(path)
	if err != nil {
		tr.err = err
		return tr
	}
	tr.enabled = true
	tr.file = f
	tr.enc = json.NewEncoder(f)
	return tr
}

func (tr *timingRecorder) Err() error {
	if tr == nil {
		return nil
	}
	return tr.err
}

func (tr *timingRecorder) Close() {
	if tr == nil || tr.file == nil {
		return
	}
	_ = tr.file.Close()
}

func (tr *timingRecorder) record(stage, scope, file, outcome string, start time.Time) {
	if tr == nil || !tr.enabled {
		return
	}
	event := timingEvent{
		Stage:     stage,
		Scope:     scope,
		File:      file,
		Outcome:   outcome,
		StartedMS: durationToMS(start.Sub(tr.start)),
		ElapsedMS: durationToMS(time.Since(start)),
	}
	tr.mu.Lock()
	_ = tr.enc.Encode(event)
	tr.mu.Unlock()
}

// StageDone records a finished pipeline stage measured from start.
func (tr *timingRecorder) StageDone(stage string, start time.Time) {
	tr.record(stage, "run", "", "", start)
}

// FileDone records one file's work inside a stage.
func (tr *timingRecorder) FileDone(stage, file, outcome string, start time.Time) {
	tr.record(stage, "file", file, outcome, start)
}

func durationToMS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000_000.0
}

func (idx *Indexer) resolveTimingPath(rootPath string) string {
	if idx == nil {
		return ""
	}
	if envPath := os.Getenv("REGAST_TIMING_JSONL"); envPath != "" {
		return envPath
	}
	if idx.Timing {
		if idx.TimingPath != "" {
			return idx.TimingPath
		}
		if rootPath == "" {
			return "timing.jsonl"
		}
		return filepath.Join(rootPath, "timing.jsonl")
	}
	if envBool("REGAST_TIMING") {
		if rootPath == "" {
			return "timing.jsonl"
		}
		return filepath.Join(rootPath, "timing.jsonl")
	}
	return ""
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	}
	return false
}
