package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates a document format that cannot be read.
	ErrUnknownFormat = errors.New("layout: unknown document format")

	// ErrNotNode indicates a value where a node table was expected.
	ErrNotNode = errors.New("layout: not a node table")

	// ErrMissingClass indicates a node without a class.
	ErrMissingClass = errors.New("layout: node has no class")

	// ErrUnknownClass indicates a class naming no toolkit type.
	ErrUnknownClass = errors.New("layout: unknown class")

	// ErrDuplicateID indicates two nodes sharing an id.
	ErrDuplicateID = errors.New("layout: duplicate id")

	// ErrUnknownID indicates an id no node carries.
	ErrUnknownID = errors.New("layout: unknown id")

	// ErrNoCallbacks indicates a named callback in a layout built without scripts.
	ErrNoCallbacks = errors.New("layout: callback named but no script loaded")
)

// NodeError locates a failure inside a document.
type NodeError struct {
	// Path is the node path, e.g. "root.child.children[1]".
	Path string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("layout: %s: %v", e.Path, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
