package cst

// Raw is a literal Node implementation. It backs parse trees that arrive
// from producers other than tree-sitter, and synthetic trees in tests.
type Raw struct {
	NodeKind string
	NodeText string
	Kids     []Node
	Pos      Position
}

// NewNode builds an interior Raw node.
func NewNode(kind string, children ...Node) *Raw {
	return &Raw{NodeKind: kind, Kids: children}
}

// NewLeaf builds a leaf Raw node whose text doubles as its content. For
// anonymous tokens (keywords, punctuation) kind and text are the same string.
func NewLeaf(kind, text string) *Raw {
	return &Raw{NodeKind: kind, NodeText: text}
}

// NewToken builds an anonymous token leaf, e.g. "{" or "is".
func NewToken(text string) *Raw {
	return &Raw{NodeKind: text, NodeText: text}
}

func (r *Raw) Kind() string { return r.NodeKind }

// Text returns the node's own text, or the concatenation of its children's
// text when none was set on an interior node.
func (r *Raw) Text() string {
	if r.NodeText != "" || len(r.Kids) == 0 {
		return r.NodeText
	}
	var out string
	for i, child := range r.Kids {
		if i > 0 {
			out += " "
		}
		out += child.Text()
	}
	return out
}

func (r *Raw) Children() []Node { return r.Kids }

func (r *Raw) Position() Position { return r.Pos }
