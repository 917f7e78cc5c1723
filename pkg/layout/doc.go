// Package layout arranges a tree of items inside table containers.
//
// A Table assigns sizes to its rows and columns from the sizes its children
// request, then hands every child a rectangle inside the cells it spans.
// Children talk to their container through the Item capability: they report
// the area they want, optionally how tall they would be at a given width,
// and finally accept the area they were given. Tables implement Item
// themselves, so nesting recurses through the same protocol.
//
// Layout is synchronous and single threaded. A pass fully resolves a
// container and its descendants before returning.
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tabula.layout'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.layout")
}
