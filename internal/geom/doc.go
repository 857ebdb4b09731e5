// Package geom holds the geometry rules used by the widget tree.
//
// A [Value] is either a percentage of the parent's resolved size plus a pixel
// offset ("50%", "100% - 21", "15") or an edge of an already placed sibling
// plus an offset ("right(functions) + 108"). Values are resolved at layout
// time and never stored back into the tree.
package geom
