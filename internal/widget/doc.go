// Package widget contains the owned widget tree.
//
// Allowed here:
// - widget kinds and per-widget rendering state (style, value, hover)
// - parenting rules, geometry resolution, hit testing
//
// Not allowed here:
// - drawing, terminal I/O, or layout description parsing
package widget
