package indexer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/giovannarevitoroz/regast/internal/facts"
)

type dependentsGraph map[string]map[string]bool

// buildDependentsGraph inverts the import relation: for each indexed file,
// the set of files that import it, directly or via a remapped path.
func buildDependentsGraph(tables facts.Tables) dependentsGraph {
	indexed := make(map[string]bool, len(tables.Files))
	for _, row := range tables.Files {
		indexed[row.Path] = true
	}

	graph := make(dependentsGraph)
	for _, row := range tables.Imports {
		target := resolveImportTarget(row.File, row.Path, indexed)
		if target == "" || target == row.File {
			continue
		}
		if graph[target] == nil {
			graph[target] = make(map[string]bool)
		}
		graph[target][row.File] = true
	}
	return graph
}

// resolveImportTarget maps an import path to an indexed file. Relative paths
// resolve against the importing file's directory; remapped paths
// ("@openzeppelin/...") fall back to a unique suffix match.
func resolveImportTarget(fromFile, importPath string, indexed map[string]bool) string {
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		candidate := filepath.Clean(filepath.Join(filepath.Dir(fromFile), importPath))
		if indexed[candidate] {
			return candidate
		}
		return ""
	}

	suffix := "/" + strings.TrimPrefix(importPath, "/")
	match := ""
	for path := range indexed {
		if strings.HasSuffix(filepath.ToSlash(path), suffix) {
			if match != "" {
				// Ambiguous remapping; leave it unresolved.
				return ""
			}
			match = path
		}
	}
	return match
}

type impactReport struct {
	Root   string
	Levels [][]string
}

// computeImpact walks the dependents graph breadth-first from a changed file.
func computeImpact(root string, dependents dependentsGraph) impactReport {
	visited := map[string]bool{root: true}
	frontier := []string{root}
	var levels [][]string

	for len(frontier) > 0 {
		var next []string
		for _, f := range frontier {
			for dep := range dependents[f] {
				if visited[dep] {
					continue
				}
				visited[dep] = true
				next = append(next, dep)
			}
		}
		if len(next) == 0 {
			break
		}
		sort.Strings(next)
		levels = append(levels, next)
		frontier = next
	}

	return impactReport{Root: root, Levels: levels}
}

func formatImpactReport(report impactReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s\n", report.Root))
	for i, level := range report.Levels {
		b.WriteString(fmt.Sprintf("    level %d (%d): %s\n", i+1, len(level), strings.Join(level, ", ")))
	}
	return b.String()
}
