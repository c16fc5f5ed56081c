// Package toolkit is a small in-memory widget toolkit.
//
// It models the three capabilities the dispatch engine consumes from a
// real toolkit: an enumerable ancestor chain per type, default
// construction, and single-argument method invocation on instances.
//
// # Lineage
//
// Types form a single-inheritance tree rooted at Root. The Go structs
// mirror that tree through embedding, so a *Window exposes every method
// declared on *Bin, *Container, *Widget and ObjectBase:
//
//	root
//	└── Object
//	    ├── Widget
//	    │   ├── Container
//	    │   │   ├── Bin
//	    │   │   │   ├── Window
//	    │   │   │   └── Button
//	    │   │   ├── Box
//	    │   │   │   ├── VBox
//	    │   │   │   └── HBox
//	    │   │   └── TreeView
//	    │   ├── Label
//	    │   └── Entry
//	    ├── StatusIcon
//	    └── TreeSelection
//
// # Signals
//
// Every type declares the signals it can emit. Connect rejects signals
// not declared anywhere on the instance's chain. Emit invokes handlers
// synchronously in connection order.
package toolkit
