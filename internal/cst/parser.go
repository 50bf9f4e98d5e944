package cst

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// SitterParser parses Solidity files with a tree-sitter grammar. The grammar
// is injected so the front-end does not pin one binding; the version string
// identifies the grammar build for cache keying.
type SitterParser struct {
	language *sitter.Language
	version  string
}

// NewSitterParser wraps a tree-sitter language.
func NewSitterParser(language *sitter.Language, version string) *SitterParser {
	return &SitterParser{language: language, version: version}
}

// Version identifies the grammar build.
func (p *SitterParser) Version() string {
	return p.version
}

// Parse reads and parses one file, returning the root node.
func (p *SitterParser) Parse(path string) (Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ParseSource(source)
}

// ParseSource parses an in-memory buffer.
func (p *SitterParser) ParseSource(source []byte) (Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.language)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	return FromTreeSitter(tree.RootNode(), source), nil
}
