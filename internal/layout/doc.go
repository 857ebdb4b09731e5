// Package layout turns a declarative layout description into a widget tree.
//
// A description is a YAML data table: named styles plus an ordered list of
// widget entries (kind, parent, position rule, size rule, origin, style).
// Parents must be declared before their children and sibling bindings may
// only look backwards, so a description is built in a single pass.
package layout
