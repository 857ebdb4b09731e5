package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotContainer     = errors.New("widget: not a container")
	ErrAlreadyParented  = errors.New("widget: already has a parent")
	ErrDuplicateSibling = errors.New("widget: duplicate sibling name")
	ErrSealed           = errors.New("widget: tree is sealed")
	ErrCycle            = errors.New("widget: child is an ancestor of its parent")
)

// idSpace namespaces the deterministic widget ids.
var idSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("meatymidi.widget"))

// Add appends child to w. A widget can be parented exactly once and sealed
// trees never change.
func (w *Widget) Add(child *Widget) error {
	switch {
	case child == nil:
		return fmt.Errorf("add to %q: nil child", w.Name)
	case w.sealed:
		return fmt.Errorf("add %q to %q: %w", child.Name, w.Name, ErrSealed)
	case !w.Kind.IsContainer():
		return fmt.Errorf("add %q to %s %q: %w", child.Name, w.Kind, w.Name, ErrNotContainer)
	case child.attached || child == w:
		return fmt.Errorf("add %q to %q: %w", child.Name, w.Name, ErrAlreadyParented)
	case child.contains(w):
		return fmt.Errorf("add %q to its descendant %q: %w", child.Name, w.Name, ErrCycle)
	}
	if child.Name != "" {
		for _, c := range w.children {
			if c.Name == child.Name {
				return fmt.Errorf("add %q to %q: %w", child.Name, w.Name, ErrDuplicateSibling)
			}
		}
	}
	child.attached = true
	w.children = append(w.children, child)
	return nil
}

// contains reports whether n is w or one of its descendants.
func (w *Widget) contains(n *Widget) bool {
	found := false
	w.Walk(func(c *Widget, _ int) bool {
		if c == n {
			found = true
		}
		return !found
	})
	return found
}

// Seal assigns ids from tree paths and freezes the structure below w.
func (w *Widget) Seal() {
	var seal func(n *Widget, path string)
	seal = func(n *Widget, path string) {
		n.ID = uuid.NewSHA1(idSpace, []byte(path)).String()
		n.sealed = true
		for i, c := range n.children {
			seal(c, path+"/"+childKey(c, i))
		}
	}
	seal(w, "/"+childKey(w, 0))
}

// Sealed reports whether Seal has been called on the tree containing w.
func (w *Widget) Sealed() bool { return w.sealed }

func childKey(w *Widget, index int) string {
	if w.Name != "" {
		return w.Name
	}
	return fmt.Sprintf("%s#%d", w.Kind, index)
}

// Walk visits w and its descendants depth first, parents before children.
// Returning false from fn skips the node's children.
func (w *Widget) Walk(fn func(n *Widget, depth int) bool) {
	var walk func(n *Widget, depth int)
	walk = func(n *Widget, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(w, 0)
}

// Find returns the first widget named name, or nil.
func (w *Widget) Find(name string) *Widget {
	var found *Widget
	w.Walk(func(n *Widget, _ int) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns the number of widgets below and including w matching keep.
func (w *Widget) Count(keep func(n *Widget) bool) int {
	total := 0
	w.Walk(func(n *Widget, _ int) bool {
		if keep(n) {
			total++
		}
		return true
	})
	return total
}

// CountKind returns the number of widgets of kind k.
func (w *Widget) CountKind(k Kind) int {
	return w.Count(func(n *Widget) bool { return n.Kind == k })
}

// Fingerprint renders the structure and fixed styling of the tree as a
// canonical string. Two trees with equal fingerprints render identically.
func (w *Widget) Fingerprint() string {
	var b strings.Builder
	w.Walk(func(n *Widget, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s %q id=%s pos=(%s, %s) size=(%s, %s) origin=(%g, %g) ratio=%g",
			n.Kind, n.Name, n.ID, n.X, n.Y, n.W, n.H, n.Origin.X, n.Origin.Y, n.Ratio)
		fmt.Fprintf(&b, " class=%q style=%v rounded=%t enabled=%t", n.Class, n.Style, n.Rounded, n.enabled)
		if n.Text != "" {
			fmt.Fprintf(&b, " text=%q", n.Text)
		}
		switch n.Kind {
		case KindSlider, KindKnob:
			fmt.Fprintf(&b, " value=%g range=[%g, %g] start=%g %s", n.Value, n.Min, n.Max, n.StartAngle, n.Orientation)
		case KindPicture:
			fmt.Fprintf(&b, " image=%q", n.ImagePath)
			if n.Image != nil {
				fmt.Fprintf(&b, " bounds=%v", n.Image.Bounds())
			}
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
