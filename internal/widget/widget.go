package widget

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meaty/meatymidi/internal/geom"
)

type Kind uint8

const (
	KindGroup Kind = iota
	KindPanel
	KindHorizontalLayout
	KindSpace
	KindButton
	KindSlider
	KindKnob
	KindPicture
)

var kindNames = []string{
	KindGroup:            "group",
	KindPanel:            "panel",
	KindHorizontalLayout: "horizontal_layout",
	KindSpace:            "space",
	KindButton:           "button",
	KindSlider:           "slider",
	KindKnob:             "knob",
	KindPicture:          "picture",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds returns every kind name in declaration order.
func Kinds() []string {
	out := make([]string, len(kindNames))
	copy(out, kindNames)
	return out
}

// IsContainer reports whether widgets of kind k own children.
func (k Kind) IsContainer() bool {
	return k == KindGroup || k == KindPanel || k == KindHorizontalLayout
}

// IsInteractive reports whether widgets of kind k take part in input
// dispatch.
func (k Kind) IsInteractive() bool {
	return k == KindButton || k == KindSlider || k == KindKnob
}

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Style is the renderer state of a widget. Empty colours are not painted.
type Style struct {
	Background      lipgloss.Color
	BackgroundHover lipgloss.Color
	Text            lipgloss.Color
	TextHover       lipgloss.Color
	Border          lipgloss.Color
	Thumb           lipgloss.Color
}

// Widget is a node of the tree. Containers own their children exclusively;
// a widget never points back at its parent.
type Widget struct {
	ID   string
	Name string
	Kind Kind

	// Position and size rules, resolved against the parent at layout time.
	// Ignored for children of a horizontal layout, which are placed by Ratio.
	X, Y, W, H geom.Value
	Origin     geom.Point
	Ratio      float64

	Class   string // name of the shared style, if any
	Style   Style
	Rounded bool
	Text    string

	Value, Min, Max float64
	StartAngle      float64 // knobs, degrees counter-clockwise from 3 o'clock
	Orientation     Orientation

	Image     image.Image
	ImagePath string

	enabled  bool
	hovered  bool
	attached bool
	sealed   bool
	children []*Widget
}

// New creates an enabled, unattached widget.
func New(kind Kind, name string) *Widget {
	return &Widget{Kind: kind, Name: name, enabled: true}
}

func (w *Widget) Enabled() bool     { return w.enabled }
func (w *Widget) SetEnabled(v bool) { w.enabled = v; w.hovered = w.hovered && v }
func (w *Widget) Hovered() bool     { return w.hovered }
func (w *Widget) Attached() bool    { return w.attached }

// Children returns the widget's children in insertion order.
func (w *Widget) Children() []*Widget {
	return w.children
}

// SetPosition sets the position rules.
func (w *Widget) SetPosition(x, y geom.Value) {
	w.X, w.Y = x, y
}

// SetSize sets the size rules.
func (w *Widget) SetSize(width, height geom.Value) {
	w.W, w.H = width, height
}

// ValueFraction returns Value mapped into 0..1 over Min..Max.
func (w *Widget) ValueFraction() float64 {
	span := w.Max - w.Min
	if span <= 0 {
		return 0
	}
	f := (w.Value - w.Min) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
