package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// handler lowers one child node within an enclosing construct.
type handler func(node cst.Node) error

// dispatchTable maps child tags to handlers for one enclosing context.
// Every other component of the front-end funnels its traversal through
// apply, which is what makes the fail-closed property structural: a grammar
// production without a handler and without an ignore entry cannot be walked
// past.
type dispatchTable struct {
	context  string
	handlers map[string]handler
	ignore   map[string]bool
	// skip lists tags that are dropped without being an error; only the
	// grammar's own "ERROR" recovery tag at source-unit level uses this.
	skip map[string]bool
}

// apply dispatches every child of node in order. Unknown tags abort with an
// UnrecognizedNodeError naming the tag and the context.
func (t dispatchTable) apply(node cst.Node) error {
	for _, child := range node.Children() {
		tag := child.Kind()
		if h, ok := t.handlers[tag]; ok {
			if err := h(child); err != nil {
				return err
			}
			continue
		}
		if t.ignore[tag] || t.skip[tag] {
			continue
		}
		return &UnrecognizedNodeError{Tag: tag, Context: t.context}
	}
	return nil
}

// ignoreSet builds an ignore set from pure-syntax tags. Comments ride along
// in every context: tree-sitter attaches them as ordinary children.
func ignoreSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags)+1)
	set["comment"] = true
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}
