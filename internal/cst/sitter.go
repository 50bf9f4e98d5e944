package cst

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// sitterNode adapts a tree-sitter node to the Node interface. The wrapped
// tree and source buffer are shared by every node of one parse and are never
// written to.
type sitterNode struct {
	node   *sitter.Node
	source []byte
}

// FromTreeSitter wraps a parsed tree-sitter node for lowering. The source
// buffer must be the exact input the tree was parsed from.
func FromTreeSitter(node *sitter.Node, source []byte) Node {
	return &sitterNode{node: node, source: source}
}

func (n *sitterNode) Kind() string {
	return n.node.Type()
}

func (n *sitterNode) Text() string {
	return n.node.Content(n.source)
}

func (n *sitterNode) Children() []Node {
	count := int(n.node.ChildCount())
	if count == 0 {
		return nil
	}
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, &sitterNode{node: n.node.Child(i), source: n.source})
	}
	return children
}

func (n *sitterNode) Position() Position {
	point := n.node.StartPoint()
	return Position{Line: int(point.Row) + 1, Column: int(point.Column)}
}
