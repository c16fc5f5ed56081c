package toolkit

import "errors"

// Toolkit errors.
var (
	// ErrUnknownSignal indicates a signal not declared on the instance's chain.
	ErrUnknownSignal = errors.New("toolkit: unknown signal")

	// ErrNilCallback indicates Connect was called without a callback.
	ErrNilCallback = errors.New("toolkit: nil callback")

	// ErrNotWidget indicates a child that is not a widget.
	ErrNotWidget = errors.New("toolkit: child is not a widget")

	// ErrHasParent indicates a child already attached to a container.
	ErrHasParent = errors.New("toolkit: child already has a parent")

	// ErrNotChild indicates a widget that is not a child of the container.
	ErrNotChild = errors.New("toolkit: widget is not a child")

	// ErrBinOccupied indicates a second child added to a single-child container.
	ErrBinOccupied = errors.New("toolkit: container already holds a child")

	// ErrColumnCount indicates a row whose width differs from the model's.
	ErrColumnCount = errors.New("toolkit: column count mismatch")

	// ErrNoColumn indicates a column index outside the model.
	ErrNoColumn = errors.New("toolkit: no such column")

	// ErrNotSortable indicates a view whose model cannot be sorted.
	ErrNotSortable = errors.New("toolkit: model is not sortable")

	// ErrDestroyed indicates an operation on a destroyed widget.
	ErrDestroyed = errors.New("toolkit: widget destroyed")
)

// ErrCycle indicates a container added to itself or to one of its descendants.
var ErrCycle = errors.New("toolkit: container cycle")
