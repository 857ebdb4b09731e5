package widget

import "github.com/meaty/meatymidi/internal/geom"

// HitTest returns the topmost interactive widget under p, or nil. Later
// siblings are painted over earlier ones, so they win.
func HitTest(root *Widget, geo Geometry, p geom.Point) *Widget {
	var hit *Widget
	root.Walk(func(n *Widget, _ int) bool {
		r, ok := geo[n]
		if !ok || !r.Contains(p) {
			return false
		}
		if n.Kind.IsInteractive() {
			hit = n
		}
		return true
	})
	return hit
}

// Hover moves the hover state to the enabled widget under p. Disabled
// widgets never hover. It reports whether any widget changed state.
func Hover(root *Widget, geo Geometry, p geom.Point) bool {
	target := HitTest(root, geo, p)
	if target != nil && !target.enabled {
		target = nil
	}
	changed := false
	root.Walk(func(n *Widget, _ int) bool {
		want := n == target
		if n.hovered != want {
			n.hovered = want
			changed = true
		}
		return true
	})
	return changed
}

// ClearHover removes the hover state from every widget.
func ClearHover(root *Widget) bool {
	changed := false
	root.Walk(func(n *Widget, _ int) bool {
		if n.hovered {
			n.hovered = false
			changed = true
		}
		return true
	})
	return changed
}
