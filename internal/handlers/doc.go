// Package handlers provides the standard action handlers for the toolkit
// types.
//
// Each file covers one widget family. Register adds every definition to
// a dispatcher.Registry:
//
//	reg := dispatcher.NewRegistry()
//	if err := handlers.Register(reg); err != nil {
//	    return err
//	}
//	engine := dispatcher.New(reg.MustSeal())
//
// Actions per type (ancestors contribute theirs):
//
//	Object          connect
//	Widget          name, sensitive, tooltip_text, show, hide
//	Container       border_width, child
//	Window          type*, default_width, default_height, title, border, resize
//	Label           text, selectable
//	Entry           max, text
//	Button          label
//	Box             homogeneous, spacing, children, expand*, fill*, padding*, order*
//	TreeView        model, rows, headers_visible, headers_clickable,
//	                selection_mode, selection_connect, columns, text_column
//	ScrolledWindow  hadjustment*, vadjustment*, policy
//	Adjustment      lower, upper, step_increment, page_increment, page_size, value
//	StatusIcon      tooltip_text, icon_name, visible
//
// Capability handlers run after the lineage of any type providing them:
//
//	TreeSortable    sort_column_id
//
// Actions marked with * are popped by the Create or Before hook.
package handlers
