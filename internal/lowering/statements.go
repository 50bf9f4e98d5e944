package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// StatementLowerer is the default StatementResolver. Bodies are opaque to the
// declaration front-end; the handle keeps the CST subtree reachable for
// analyses that lower statements themselves.
type StatementLowerer struct{}

func (StatementLowerer) ResolveBody(node cst.Node) (ast.Body, error) {
	return ast.NewBody(node), nil
}
