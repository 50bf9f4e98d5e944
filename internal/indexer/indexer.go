// Package indexer drives the whole-project pipeline: discover Solidity files
// from configuration, parse and lower each one in parallel, flatten the
// results into relational fact tables and validate them against the schema
// contract before anything downstream sees them.
//
// The indexer does not work around lowering bugs. If aggregated data needs
// "fixing up" here, the defect is in the grammar or in the lowering dispatch
// tables and must be fixed there; the CUE validator exists to make that kind
// of drift loud.
package indexer

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/config"
	"github.com/giovannarevitoroz/regast/internal/cst"
	"github.com/giovannarevitoroz/regast/internal/facts"
	"github.com/giovannarevitoroz/regast/internal/lowering"
	"github.com/giovannarevitoroz/regast/internal/validator"
)

// Parser turns one file into a CST root. Implementations must be safe for
// concurrent use; cst.SitterParser satisfies this.
type Parser interface {
	Parse(path string) (cst.Node, error)
	Version() string
}

// Indexer aggregates per-file lowering results into a project-wide fact
// snapshot.
type Indexer struct {
	// Configuration loaded from regast.json
	Config *config.Config

	// Lowered source units from the last Run
	Units []*ast.SourceUnit

	// Third-party files (suppresses diagnostics downstream)
	ThirdPartyFiles map[string]bool

	// Progress output (lightweight, streaming)
	Progress bool

	// JSON output mode suppresses all progress text
	JSONOutput bool

	// Timing output (JSONL)
	Timing     bool
	TimingPath string

	parser Parser

	// Optional lowering version override (for tests)
	loweringVersionOverride string
}

// Result is the structured outcome of one Run.
type Result struct {
	// Tables is the validated project-wide fact snapshot
	Tables facts.Tables `json:"tables"`

	// Delta against the previous cached snapshot, present only when the
	// cache is enabled and a previous snapshot existed
	Delta *facts.Delta `json:"delta,omitempty"`

	// Summary counts
	Stats Stats `json:"stats"`

	// Files that failed to parse or lower
	FileErrors []FileError `json:"file_errors,omitempty"`
}

// Stats provides aggregate counts of indexed elements.
type Stats struct {
	Files     int `json:"files"`
	Contracts int `json:"contracts"`
	Functions int `json:"functions"`
	Events    int `json:"events"`
	Errors    int `json:"errors"`
	Structs   int `json:"structs"`
	Enums     int `json:"enums"`
}

// FileError records a file the pipeline had to drop.
type FileError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// New creates an Indexer over the given parser with default configuration.
func New(parser Parser) *Indexer {
	return &Indexer{
		Config:          config.DefaultConfig(),
		ThirdPartyFiles: make(map[string]bool),
		parser:          parser,
	}
}

// NewWithConfig creates an Indexer with an explicit configuration.
func NewWithConfig(parser Parser, cfg *config.Config) *Indexer {
	idx := New(parser)
	idx.Config = cfg
	return idx
}

type fileOutcome struct {
	file   string
	unit   *ast.SourceUnit
	tables facts.Tables
	cached bool
}

// Run indexes the project under rootPath.
//
// Pipeline: discover files, then in parallel parse, lower and flatten each
// file (serving unchanged files from the cache), merge the fragments, validate
// the merged snapshot, and diff it against the previous cached snapshot.
func (idx *Indexer) Run(rootPath string) (*Result, error) {
	runStart := time.Now()
	pipelineErrs := make([]error, 0)
	recordPipelineErr := func(err error) {
		pipelineErrs = append(pipelineErrs, err)
	}
	timing := newTimingRecorder(runStart, idx.resolveTimingPath(rootPath))
	if err := timing.Err(); err != nil {
		recordPipelineErr(fmt.Errorf("timing output disabled: %w", err))
	}
	defer timing.Close()

	// 0. Load configuration if not already loaded
	if idx.Config == nil {
		cfg, err := config.Load(rootPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		idx.Config = cfg
	}

	// Reset per-run state
	idx.Units = nil
	idx.ThirdPartyFiles = make(map[string]bool)

	// 1. Discover files
	stepStart := time.Now()
	files, err := idx.Config.ResolveFiles(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve files: %w", err)
	}
	idx.ThirdPartyFiles = idx.Config.ThirdPartySet(files, rootPath)
	if idx.progressEnabled() {
		fmt.Printf("Found %d Solidity files\n", len(files))
	}
	timing.StageDone("scan", stepStart)

	// 2. Parallel parse + lower + flatten, with optional cache
	stepStart = time.Now()
	var cache *factsCache
	var cacheDir string
	if cacheEnabled(idx.Config) {
		cacheDir = resolveCacheDir(rootPath, idx.Config)
		cache = newFactsCache(cacheDir, idx.parser.Version(), idx.loweringVersion())
		if err := cache.Load(); err != nil {
			recordPipelineErr(fmt.Errorf("cache disabled: %w", err))
			cache = nil
		}
	}

	var wg sync.WaitGroup
	outcomeChan := make(chan fileOutcome, len(files))
	errChan := make(chan FileError, len(files))
	pipelineErrChan := make(chan error, len(files)*2)

	sem := make(chan struct{}, idx.parallelism())
	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fileStart := time.Now()
			var contentHash string
			if cache != nil {
				h, err := hashFile(f)
				if err != nil {
					errChan <- FileError{File: f, Message: err.Error()}
					return
				}
				contentHash = h
				if tables, ok, err := cache.Get(f, contentHash); err == nil && ok {
					outcomeChan <- fileOutcome{file: f, tables: tables, cached: true}
					timing.FileDone("index", f, "cache_hit", fileStart)
					return
				} else if err != nil {
					pipelineErrChan <- fmt.Errorf("cache read failed for %s: %w", f, err)
				}
			}

			unit, err := idx.indexFile(f)
			if err != nil {
				errChan <- FileError{File: f, Message: err.Error()}
				return
			}
			tables := facts.BuildTables([]*ast.SourceUnit{unit}, idx.ThirdPartyFiles)
			if cache != nil && contentHash != "" {
				if err := cache.Put(f, contentHash, tables); err != nil {
					pipelineErrChan <- fmt.Errorf("cache write failed for %s: %w", f, err)
				}
			}
			timing.FileDone("index", f, "indexed", fileStart)
			outcomeChan <- fileOutcome{file: f, unit: unit, tables: tables}
		}(file)
	}

	wg.Wait()
	close(outcomeChan)
	close(errChan)
	close(pipelineErrChan)

	var fileErrors []FileError
	for fe := range errChan {
		fileErrors = append(fileErrors, fe)
	}
	for err := range pipelineErrChan {
		recordPipelineErr(err)
	}

	outcomes := make([]fileOutcome, 0, len(files))
	changedFiles := make(map[string]bool)
	for outcome := range outcomeChan {
		outcomes = append(outcomes, outcome)
		if outcome.unit != nil {
			idx.Units = append(idx.Units, outcome.unit)
		}
		if cache != nil && !outcome.cached {
			changedFiles[outcome.file] = true
		}
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].file < outcomes[j].file })
	sort.Slice(idx.Units, func(i, j int) bool { return idx.Units[i].FileName() < idx.Units[j].FileName() })
	if cache != nil {
		if err := cache.Save(); err != nil {
			recordPipelineErr(fmt.Errorf("cache save failed: %w", err))
		}
	}
	timing.StageDone("index", stepStart)

	// 3. Merge fragments into the project snapshot
	stepStart = time.Now()
	fragments := make([]facts.Tables, 0, len(outcomes))
	for _, outcome := range outcomes {
		fragments = append(fragments, outcome.tables)
	}
	tables := facts.Merge(fragments)
	timing.StageDone("merge", stepStart)

	// 4. Validate the snapshot against the schema contract
	stepStart = time.Now()
	factsValidator, err := validator.NewFactsValidator()
	if err != nil {
		return nil, fmt.Errorf("initializing facts validator: %w", err)
	}
	if err := factsValidator.Validate(tables); err != nil {
		return nil, fmt.Errorf("fact table contract violation: %w", err)
	}
	timing.StageDone("validate", stepStart)

	result := &Result{
		Tables:     tables,
		Stats:      computeStats(tables),
		FileErrors: fileErrors,
	}

	// 5. Delta against the previous snapshot
	if cache != nil {
		stepStart = time.Now()
		if prev, ok, err := loadSnapshot(cacheDir); err != nil {
			recordPipelineErr(fmt.Errorf("snapshot read failed: %w", err))
		} else if ok {
			delta := facts.ComputeDelta(prev, tables)
			result.Delta = &delta
		}
		if err := saveSnapshot(cacheDir, tables); err != nil {
			recordPipelineErr(fmt.Errorf("snapshot write failed: %w", err))
		}
		timing.StageDone("delta", stepStart)

		if idx.progressEnabled() && len(changedFiles) > 0 {
			idx.printImpact(tables, changedFiles)
		}
	}

	if len(pipelineErrs) > 0 && idx.progressEnabled() {
		fmt.Printf("\n=== Pipeline Warnings ===\n")
		for _, err := range pipelineErrs {
			fmt.Printf("  %v\n", err)
		}
	}

	return result, nil
}

// indexFile runs the per-file half of the pipeline.
func (idx *Indexer) indexFile(path string) (*ast.SourceUnit, error) {
	root, err := idx.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	unit, err := lowering.New().LowerSourceUnit(root, path)
	if err != nil {
		return nil, fmt.Errorf("lowering %s: %w", path, err)
	}
	return unit, nil
}

func (idx *Indexer) parallelism() int {
	if idx.Config != nil && idx.Config.Analysis.MaxParallelFiles > 0 {
		return idx.Config.Analysis.MaxParallelFiles
	}
	return defaultParallelism()
}

func (idx *Indexer) progressEnabled() bool {
	return idx.Progress && !idx.JSONOutput
}

func (idx *Indexer) printImpact(tables facts.Tables, changedFiles map[string]bool) {
	fmt.Printf("\n=== Cache Impact ===\n")
	dependents := buildDependentsGraph(tables)
	changedList := make([]string, 0, len(changedFiles))
	for f := range changedFiles {
		changedList = append(changedList, f)
	}
	sort.Strings(changedList)
	for _, f := range changedList {
		report := computeImpact(f, dependents)
		fmt.Print(formatImpactReport(report))
	}
}

func computeStats(tables facts.Tables) Stats {
	return Stats{
		Files:     len(tables.Files),
		Contracts: len(tables.Contracts),
		Functions: len(tables.Functions),
		Events:    len(tables.Events),
		Errors:    len(tables.Errors),
		Structs:   len(tables.Structs),
		Enums:     len(tables.Enums),
	}
}
