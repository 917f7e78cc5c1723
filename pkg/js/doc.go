// Package js runs scene scripts: JavaScript that builds a tree of tables
// and leaf items.
//
// Scripts create items with the global factories table, rect, text and
// image, each taking an optional object of properties. Tables have methods
// add, setChild, childProperty, move and remove; every item has set, get
// and the transform helpers rotate, scale, translate and shear. Properties
// can also be read and assigned directly, in kebab-case, snake_case or
// camelCase:
//
//	var root = table({column_spacing: 5});
//	root.add(rect({width: 50, height: 20, fill: "red"}), {column: 0, xExpand: true});
//	root.borderWidth = 2;
//	setRoot(root);
//
// Without setRoot, the first table created is the root.
package js

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tabula.js'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.js")
}
