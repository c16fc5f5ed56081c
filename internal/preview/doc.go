// Package preview draws widget trees on a terminal.
//
// Windows are framed and titled, boxes stack their children along their
// axis, and leaf widgets render as single lines. Hidden widgets are
// skipped. Keys:
//
//	Tab / Shift-Tab   move focus between buttons
//	Enter             click the focused button
//	Esc / q           close the root window
//
// The preview is a development aid; pixel sizes and packing padding are
// not represented.
package preview
