package handlers

import (
	"fmt"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// SortableHandler serves every type providing toolkit.Sortable. It runs
// after the lineage handlers, so a model set in the same dispatch is
// sorted.
type SortableHandler struct {
	handler.Base
}

// OnActionSortColumnID sorts by a column index, or by a (column, order)
// pair where order is "ascending" or "descending".
func (h *SortableHandler) OnActionSortColumnID(ctx *handler.Context, arg any) error {
	column, order, err := sortColumn(arg)
	if err != nil {
		return err
	}
	return ctx.Widget.(toolkit.Sortable).SetSortColumnID(column, order)
}

func sortColumn(arg any) (int, toolkit.SortType, error) {
	pair, err := action.List(arg)
	if err != nil {
		column, ierr := action.Int(arg)
		if ierr != nil {
			return 0, 0, err
		}
		return column, toolkit.SortAscending, nil
	}
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("%w: want (column, order), got %d values", action.ErrInvalidArgument, len(pair))
	}
	column, err := action.Int(pair[0])
	if err != nil {
		return 0, 0, err
	}
	if order, ok := pair[1].(toolkit.SortType); ok {
		return column, order, nil
	}
	name, err := action.String(pair[1])
	if err != nil {
		return 0, 0, err
	}
	order, err := toolkit.ParseSortType(name)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", action.ErrInvalidArgument, err)
	}
	return column, order, nil
}

func sortableDefinition() *handler.Definition {
	return handler.Define(toolkit.SortableCapability, func() *SortableHandler { return &SortableHandler{} }).
		Callback("sort_column_id", (*SortableHandler).OnActionSortColumnID).
		Definition()
}
