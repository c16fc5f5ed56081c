// Package script runs Lua signal callbacks for layout documents.
//
// A script defines global functions; a layout connects a signal to one by
// name:
//
//	[window.connect]
//	destroy = "on_quit"
//
// The function is called as name(widget_id, signal, ...) where the extra
// arguments are those emitted with the signal. Inside a callback the ui
// module reaches back into the layout:
//
//	function on_click(id, signal)
//	    ui.set("status", { text = "clicked " .. id })
//	    ui.add("list", { children = { ... } })
//	    ui.log("clicked")
//	    ui.quit()
//	end
//
// Lua functions found in action tables passed to ui.set and ui.add become
// signal callbacks themselves.
//
// Scripts run in a sandboxed state with only the base, table, string and
// math libraries. A Runtime is not safe for concurrent use; callbacks run
// on the goroutine that emits the signal.
package script
