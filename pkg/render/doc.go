// Package render paints laid out scenes with gg and finds the items under
// a point.
package render

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tabula.render'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.render")
}
