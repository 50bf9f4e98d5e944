// Package ast is the typed entity model produced by lowering a Solidity
// concrete syntax tree. Entities are constructed through checked builders
// during a single traversal of their CST node and are frozen once built;
// accessors hand out copies of internal slices so a finished entity can be
// shared read-only with downstream analyses.
package ast

import (
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// Core is the shared base of every AST entity: a write-once reference to the
// CST node the entity was lowered from. It exists for diagnostics and source
// locations only; equality between entities is structural and never considers
// node identity.
type Core struct {
	node cst.Node
}

// NewCore records the originating CST node.
func NewCore(node cst.Node) Core {
	return Core{node: node}
}

// Syntax returns the CST node this entity was lowered from.
func (c Core) Syntax() cst.Node {
	return c.node
}

// Position returns the source position of the originating node.
func (c Core) Position() cst.Position {
	if c.node == nil {
		return cst.Position{}
	}
	return c.node.Position()
}

// cloneSlice shields internal entity state from callers.
func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
