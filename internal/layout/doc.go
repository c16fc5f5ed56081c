// Package layout builds widget trees from declarative documents.
//
// A document is one node table. A node names its toolkit type in "class",
// may carry an "id", and every other key is an action for that type:
//
//	class = "Window"
//	id = "main"
//	title = "Hi"
//	default_width = 200
//
//	[connect]
//	destroy = "on_quit"
//
//	[child]
//	class = "VBox"
//	children = [
//	    { class = "Label", id = "status", text = "ready" },
//	    [{ class = "Button", label = "OK" }, { expand = false }],
//	]
//
// Node tables, the table arguments with a "class" key such as "child" or
// "hadjustment", and the entries of "children" are built first and
// replaced by the objects they produce. String values of "connect" and
// "selection_connect" tables name script callbacks.
//
// Documents are read from TOML, YAML or JSON, chosen by file extension.
package layout
