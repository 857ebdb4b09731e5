package widget

import (
	"fmt"

	"github.com/meaty/meatymidi/internal/geom"
)

// Geometry maps each widget to its resolved rectangle in window pixels.
type Geometry map[*Widget]geom.Rect

// Resolve lays out the tree rooted at root inside a window of the given
// size. It is a pure function of the tree and the size. Every child is
// clamped into its parent's rectangle.
func Resolve(root *Widget, window geom.Size) (Geometry, error) {
	geo := Geometry{}
	rootRect := geom.NewRect(0, 0, window.W, window.H).ClampInto(window)
	geo[root] = rootRect
	if err := resolveChildren(root, rootRect, geo); err != nil {
		return nil, err
	}
	return geo, nil
}

func resolveChildren(parent *Widget, abs geom.Rect, geo Geometry) error {
	if len(parent.children) == 0 {
		return nil
	}
	var locals []geom.Rect
	if parent.Kind == KindHorizontalLayout {
		locals = distribute(parent.children, abs.Size())
	} else {
		var err error
		locals, err = placeFree(parent, abs.Size())
		if err != nil {
			return err
		}
	}
	for i, c := range parent.children {
		r := locals[i].Offset(geom.Point{X: abs.X, Y: abs.Y})
		geo[c] = r
		if err := resolveChildren(c, r, geo); err != nil {
			return err
		}
	}
	return nil
}

// placeFree positions children from their own rules. Bindings see only
// siblings placed before them, in the parent's local coordinates.
func placeFree(parent *Widget, size geom.Size) ([]geom.Rect, error) {
	out := make([]geom.Rect, len(parent.children))
	placed := make(map[string]geom.Rect, len(parent.children))
	lookup := func(name string) (geom.Rect, bool) {
		r, ok := placed[name]
		return r, ok
	}
	for i, c := range parent.children {
		w, err := c.W.Resolve(size.W, lookup)
		if err != nil {
			return nil, fmt.Errorf("%q width: %w", c.Name, err)
		}
		h, err := c.H.Resolve(size.H, lookup)
		if err != nil {
			return nil, fmt.Errorf("%q height: %w", c.Name, err)
		}
		x, err := c.X.Resolve(size.W, lookup)
		if err != nil {
			return nil, fmt.Errorf("%q x: %w", c.Name, err)
		}
		y, err := c.Y.Resolve(size.H, lookup)
		if err != nil {
			return nil, fmt.Errorf("%q y: %w", c.Name, err)
		}
		r := geom.NewRect(x-c.Origin.X*w, y-c.Origin.Y*h, w, h).ClampInto(size)
		out[i] = r
		if c.Name != "" {
			placed[c.Name] = r
		}
	}
	return out, nil
}

// distribute splits the layout's width between its children by ratio. Every
// child takes the full height.
func distribute(children []*Widget, size geom.Size) []geom.Rect {
	ratios := make([]float64, len(children))
	for i, c := range children {
		ratios[i] = c.Ratio
	}
	widths := splitWidths(size.W, ratios)
	out := make([]geom.Rect, len(children))
	x := 0.0
	for i, w := range widths {
		out[i] = geom.NewRect(x, 0, w, size.H).ClampInto(size)
		x += w
	}
	return out
}

// splitWidths divides total proportionally to ratios; non-positive ratios
// count as 1.
func splitWidths(total float64, ratios []float64) []float64 {
	if len(ratios) == 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}
	sum := 0.0
	norm := make([]float64, len(ratios))
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		norm[i] = r
		sum += r
	}
	out := make([]float64, len(ratios))
	for i, r := range norm {
		out[i] = total * r / sum
	}
	return out
}

// Contained reports whether every child rectangle lies inside its parent's.
// It returns the first offending widget otherwise.
func (g Geometry) Contained(root *Widget) (*Widget, bool) {
	const eps = 1e-6
	var bad *Widget
	root.Walk(func(n *Widget, _ int) bool {
		if bad != nil {
			return false
		}
		pr := g[n]
		for _, c := range n.children {
			if !pr.ContainsRect(g[c], eps) {
				bad = c
				return false
			}
		}
		return true
	})
	return bad, bad == nil
}
