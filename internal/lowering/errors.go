// Package lowering walks Solidity concrete syntax trees and builds the typed
// entity model of the ast package. Dispatch over node tags is exhaustive and
// fail-closed: a tag outside the recognized set for its context aborts the
// whole source unit. A construct that is silently dropped here is invisible
// to every downstream security analysis, so lowering never guesses and never
// skips.
package lowering

import "fmt"

// UnrecognizedNodeError reports a child tag outside the recognized set for
// its enclosing construct.
type UnrecognizedNodeError struct {
	Tag     string // offending CST tag
	Context string // enclosing construct, e.g. "contract body"
}

func (e *UnrecognizedNodeError) Error() string {
	return fmt.Sprintf("unrecognized node %q in %s", e.Tag, e.Context)
}

// UnsupportedConstructError reports a recognized construct whose lowering is
// intentionally not implemented. It is raised explicitly instead of producing
// an empty entity.
type UnsupportedConstructError struct {
	Construct string
	Context   string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %q in %s", e.Construct, e.Context)
}

// MalformedDirectiveError reports an import, pragma or using directive whose
// child shape matches no known grammar form.
type MalformedDirectiveError struct {
	Directive string
	Reason    string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed %s directive: %s", e.Directive, e.Reason)
}
