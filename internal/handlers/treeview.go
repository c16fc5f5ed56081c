package handlers

import (
	"fmt"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// TreeViewHandler serves TreeView.
type TreeViewHandler struct {
	handler.Base
}

func treeView(ctx *handler.Context) *toolkit.TreeView {
	return ctx.Widget.(*toolkit.TreeView)
}

// OnActionSelectionMode sets the selection mode from a mode or its name.
func (h *TreeViewHandler) OnActionSelectionMode(ctx *handler.Context, arg any) error {
	mode, ok := arg.(toolkit.SelectionMode)
	if !ok {
		name, err := action.String(arg)
		if err != nil {
			return err
		}
		if mode, err = toolkit.ParseSelectionMode(name); err != nil {
			return fmt.Errorf("%w: %w", action.ErrInvalidArgument, err)
		}
	}
	treeView(ctx).Selection().SetMode(mode)
	return nil
}

// OnActionSelectionConnect connects signals on the selection object.
func (h *TreeViewHandler) OnActionSelectionConnect(ctx *handler.Context, arg any) error {
	return connectSignals(treeView(ctx).Selection(), arg)
}

// OnActionColumns appends columns. Configure replaces the current ones.
func (h *TreeViewHandler) OnActionColumns(ctx *handler.Context, arg any) error {
	items, err := action.List(arg)
	if err != nil {
		return err
	}
	cols := make([]*toolkit.TreeViewColumn, len(items))
	for i, item := range items {
		if cols[i], err = column(item); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}

	tv := treeView(ctx)
	if ctx.IsConfigure() {
		for _, col := range tv.Columns() {
			tv.RemoveColumn(col)
		}
	}
	for _, col := range cols {
		tv.AppendColumn(col)
	}
	return nil
}

// OnActionTextColumn adds one text column described by a table with
// "title", "text" and an optional "position".
func (h *TreeViewHandler) OnActionTextColumn(ctx *handler.Context, arg any) error {
	t, err := action.Table(arg)
	if err != nil {
		return err
	}
	col, err := textColumn(t)
	if err != nil {
		return err
	}
	tv := treeView(ctx)
	if v, ok := t["position"]; ok {
		pos, err := action.Int(v)
		if err != nil {
			return fmt.Errorf("position: %w", err)
		}
		tv.InsertColumn(col, pos)
		return nil
	}
	tv.AppendColumn(col)
	return nil
}

// OnActionRows sets a list store built from rows of strings as the model.
func (h *TreeViewHandler) OnActionRows(ctx *handler.Context, arg any) error {
	rows, err := action.List(arg)
	if err != nil {
		return err
	}
	var store *toolkit.ListStore
	for i, r := range rows {
		cells, err := action.List(r)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		values := make([]string, len(cells))
		for j, c := range cells {
			if values[j], err = action.String(c); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		if store == nil {
			store = toolkit.NewListStore(len(values))
		}
		if err := store.Append(values...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	if store == nil {
		store = toolkit.NewListStore(0)
	}
	treeView(ctx).SetModel(store)
	return nil
}

func column(item any) (*toolkit.TreeViewColumn, error) {
	if col, ok := item.(*toolkit.TreeViewColumn); ok && col != nil {
		return col, nil
	}
	t, err := action.Table(item)
	if err != nil {
		return nil, err
	}
	return textColumn(t)
}

func textColumn(t map[string]any) (*toolkit.TreeViewColumn, error) {
	title, err := action.String(t["title"])
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	text, err := action.Int(t["text"])
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	return toolkit.NewTextColumn(title, text), nil
}

func treeViewDefinition() *handler.Definition {
	return handler.Define(toolkit.TreeViewType, func() *TreeViewHandler { return &TreeViewHandler{} }).
		Set("model", "headers_visible", "headers_clickable").
		Callback("selection_mode", (*TreeViewHandler).OnActionSelectionMode).
		Callback("selection_connect", (*TreeViewHandler).OnActionSelectionConnect).
		Callback("columns", (*TreeViewHandler).OnActionColumns).
		Callback("text_column", (*TreeViewHandler).OnActionTextColumn).
		Callback("rows", (*TreeViewHandler).OnActionRows).
		Definition()
}
