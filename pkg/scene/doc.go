/*
Package scene loads declarative scene files written in HCL.

A scene file has optional canvas attributes and exactly one top-level
table. Tables contain rect, text, image and nested table blocks, painted in
the order they appear:

	width      = 320
	height     = 200
	background = "white"

	table "root" {
	  column_spacing = 5
	  border_width   = 2

	  rect {
	    column   = 0
	    width    = 50
	    height   = 20
	    fill     = "red"
	    x_expand = true
	  }
	  text {
	    row     = 1
	    columns = 2
	    text    = "hello world"
	    wrap    = true
	  }
	  table "inner" {
	    row       = 2
	    transform = rotate(15)
	  }
	}

Attribute names are item property names with '_' in place of '-'.
Placement attributes (row, columns, x_expand, left_padding, ...) apply to
the item's cell in its parent table; all others configure the item.

Expressions may call min, max, format, upper, lower and concat, rgb(r, g, b)
and the transform builders translate, scale, rotate (degrees), shear and
compose.
*/
package scene

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tabula.scene'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.scene")
}
