package layout

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/meaty/meatymidi/internal/assets"
	"github.com/meaty/meatymidi/internal/geom"
	"github.com/meaty/meatymidi/internal/render"
	"github.com/meaty/meatymidi/internal/widget"
)

var (
	ErrUnknownKind      = errors.New("unknown widget kind")
	ErrUnknownWidget    = errors.New("unknown widget")
	ErrUnknownStyle     = errors.New("unknown style")
	ErrDuplicateName    = errors.New("duplicate widget name")
	ErrNotContainer     = errors.New("parent is not a container")
	ErrForwardReference = errors.New("binding must reference an earlier sibling")
	ErrEnabledControl   = errors.New("sliders and knobs are always disabled")
	ErrInvalid          = errors.New("invalid layout")
)

// Description is a parsed and validated layout.
type Description struct {
	Name    string               `yaml:"name"`
	Spacing float64              `yaml:"inter_button_spacing"`
	Styles  map[string]StyleSpec `yaml:"styles"`
	Widgets []Entry              `yaml:"widgets"`

	open   imageOpener
	styles map[string]widget.Style
}

// StyleSpec is a named set of colours shared by several widgets.
type StyleSpec struct {
	Background      string `yaml:"background"`
	BackgroundHover string `yaml:"background_hover"`
	Text            string `yaml:"text"`
	TextHover       string `yaml:"text_hover"`
	Border          string `yaml:"border"`
	Thumb           string `yaml:"thumb"`
}

// Entry describes one widget.
type Entry struct {
	Name        string    `yaml:"name"`
	Kind        string    `yaml:"kind"`
	Parent      string    `yaml:"parent"`
	Position    Pair      `yaml:"position"`
	Size        Pair      `yaml:"size"`
	Origin      []float64 `yaml:"origin"`
	Style       string    `yaml:"style"`
	Background  string    `yaml:"background"`
	Rounded     bool      `yaml:"rounded"`
	Text        string    `yaml:"text"`
	Value       float64   `yaml:"value"`
	Min         float64   `yaml:"min"`
	Max         *float64  `yaml:"max"`
	StartAngle  *float64  `yaml:"start_angle"`
	Orientation string    `yaml:"orientation"`
	Enabled     *bool     `yaml:"enabled"`
	Image       string    `yaml:"image"`
	ItemStyle   string    `yaml:"item_style"`
	Items       []string  `yaml:"items"`

	kind       widget.Kind
	background lipgloss.Color
}

// Pair is an (x, y) or (width, height) pair of geometry rules.
type Pair struct {
	X, Y geom.Value
	Set  bool
}

// UnmarshalYAML reads a two element sequence of geometry expressions.
func (p *Pair) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return fmt.Errorf("line %d: want a [x, y] pair", n.Line)
	}
	x, err := geom.Parse(n.Content[0].Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	y, err := geom.Parse(n.Content[1].Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*p = Pair{X: x, Y: y, Set: true}
	return nil
}

// ItemKind distinguishes the entries of a horizontal layout's item list.
type ItemKind uint8

const (
	ItemButton ItemKind = iota
	ItemSpace
)

// Item is one parsed horizontal layout item.
type Item struct {
	Kind  ItemKind
	Label string
	Ratio float64
}

// ParseItem reads "gap", "space <ratio>" or a button label. "gap" and
// "space" followed by whitespace are reserved; any other text is a label.
func ParseItem(s string, spacing float64) (Item, error) {
	v := strings.TrimSpace(s)
	fields := strings.Fields(v)
	switch {
	case v == "":
		return Item{}, fmt.Errorf("%w: empty item", ErrInvalid)
	case v == "gap":
		return Item{Kind: ItemSpace, Ratio: spacing}, nil
	case v == "space" || (fields[0] == "space" && len(fields) > 1):
		if len(fields) != 2 {
			return Item{}, fmt.Errorf("%w: bad space item %q, want \"space <ratio>\"", ErrInvalid, s)
		}
		ratio, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || ratio <= 0 {
			return Item{}, fmt.Errorf("%w: bad space item %q", ErrInvalid, s)
		}
		return Item{Kind: ItemSpace, Ratio: ratio}, nil
	default:
		return Item{Kind: ItemButton, Label: v}, nil
	}
}

// Default returns the built-in controller layout.
func Default() (*Description, error) {
	data, err := fs.ReadFile(assets.FS(), assets.DefaultLayout)
	if err != nil {
		return nil, fmt.Errorf("read default layout: %w", err)
	}
	return Parse(data, assets.FS())
}

// Load reads a description from disk. Image paths resolve relative to the
// description's directory and may leave it ("../images/steak.png").
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	d, err := decode(data)
	if err != nil {
		return nil, err
	}
	d.open = dirOpener(filepath.Dir(path))
	return d, nil
}

// Parse decodes and validates a description. Images are looked up in
// assetFS.
func Parse(data []byte, assetFS fs.FS) (*Description, error) {
	d, err := decode(data)
	if err != nil {
		return nil, err
	}
	d.open = fsOpener(assetFS)
	return d, nil
}

func decode(data []byte) (*Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// imageOpener opens a picture asset named in a description.
type imageOpener func(name string) (io.ReadCloser, error)

func fsOpener(fsys fs.FS) imageOpener {
	return func(name string) (io.ReadCloser, error) {
		if fsys == nil {
			return nil, fmt.Errorf("open %s: no asset source", name)
		}
		return fsys.Open(name)
	}
}

func dirOpener(dir string) imageOpener {
	return func(name string) (io.ReadCloser, error) {
		p := filepath.FromSlash(name)
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		return os.Open(p)
	}
}

func (d *Description) validate() error {
	if d.Spacing < 0 {
		return fmt.Errorf("%w: inter_button_spacing must not be negative", ErrInvalid)
	}
	if len(d.Widgets) == 0 {
		return fmt.Errorf("%w: no widgets", ErrInvalid)
	}

	d.styles = make(map[string]widget.Style, len(d.Styles))
	styleNames := make([]string, 0, len(d.Styles))
	for name, spec := range d.Styles {
		st, err := spec.resolve()
		if err != nil {
			return fmt.Errorf("style %q: %w", name, err)
		}
		d.styles[name] = st
		styleNames = append(styleNames, name)
	}
	sort.Strings(styleNames)

	kinds := map[string]widget.Kind{}
	parents := map[string]string{}
	names := make([]string, 0, len(d.Widgets))
	for i := range d.Widgets {
		e := &d.Widgets[i]
		if err := d.validateEntry(e, kinds, parents, names, styleNames); err != nil {
			if e.Name == "" {
				return fmt.Errorf("widget #%d: %w", i+1, err)
			}
			return fmt.Errorf("widget %q: %w", e.Name, err)
		}
		kinds[e.Name] = e.kind
		parents[e.Name] = e.Parent
		names = append(names, e.Name)
	}
	return nil
}

func (d *Description) validateEntry(e *Entry, kinds map[string]widget.Kind, parents map[string]string, names, styleNames []string) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if _, dup := kinds[e.Name]; dup {
		return ErrDuplicateName
	}
	kind, ok := widget.ParseKind(e.Kind)
	if !ok {
		return fmt.Errorf("%w %q%s", ErrUnknownKind, e.Kind, suggest(e.Kind, widget.Kinds()))
	}
	e.kind = kind

	if e.Parent != "" {
		pk, ok := kinds[e.Parent]
		if !ok {
			return fmt.Errorf("parent: %w %q%s", ErrUnknownWidget, e.Parent, suggest(e.Parent, names))
		}
		if !pk.IsContainer() {
			return fmt.Errorf("parent %q: %w", e.Parent, ErrNotContainer)
		}
	}

	// Sibling bindings: earlier entries with the same parent.
	for _, v := range []geom.Value{e.Position.X, e.Position.Y, e.Size.X, e.Size.Y} {
		if !v.IsBound() {
			continue
		}
		parent, ok := parents[v.Ref]
		if !ok {
			return fmt.Errorf("%w: %s(%s)%s", ErrForwardReference, v.Edge, v.Ref, suggest(v.Ref, names))
		}
		if parent != e.Parent {
			return fmt.Errorf("%w: %q is not a sibling", ErrForwardReference, v.Ref)
		}
	}

	if len(e.Origin) != 0 && len(e.Origin) != 2 {
		return fmt.Errorf("%w: origin wants two values", ErrInvalid)
	}
	for _, o := range e.Origin {
		if o < 0 || o > 1 {
			return fmt.Errorf("%w: origin %v outside 0..1", ErrInvalid, e.Origin)
		}
	}
	if e.Style != "" {
		if _, ok := d.styles[e.Style]; !ok {
			return fmt.Errorf("%w %q%s", ErrUnknownStyle, e.Style, suggest(e.Style, styleNames))
		}
	}
	bg, err := render.ParseColor(e.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	e.background = bg

	switch e.Orientation {
	case "", "horizontal", "vertical":
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalid, e.Orientation)
	}
	if (kind == widget.KindSlider || kind == widget.KindKnob) && e.Enabled != nil && *e.Enabled {
		return ErrEnabledControl
	}
	if e.Max != nil && *e.Max < e.Min {
		return fmt.Errorf("%w: max %v below min %v", ErrInvalid, *e.Max, e.Min)
	}
	if kind == widget.KindPicture && e.Image == "" {
		return fmt.Errorf("%w: picture without image", ErrInvalid)
	}

	if len(e.Items) > 0 || e.ItemStyle != "" {
		if kind != widget.KindHorizontalLayout {
			return fmt.Errorf("%w: items on a %s", ErrInvalid, kind)
		}
		if e.ItemStyle != "" {
			if _, ok := d.styles[e.ItemStyle]; !ok {
				return fmt.Errorf("item_style: %w %q%s", ErrUnknownStyle, e.ItemStyle, suggest(e.ItemStyle, styleNames))
			}
		}
		seen := map[string]bool{}
		for _, raw := range e.Items {
			it, err := ParseItem(raw, d.Spacing)
			if err != nil {
				return err
			}
			if it.Kind == ItemButton {
				if seen[it.Label] {
					return fmt.Errorf("%w: item %q", ErrDuplicateName, it.Label)
				}
				seen[it.Label] = true
			}
		}
	}
	return nil
}

func (s StyleSpec) resolve() (widget.Style, error) {
	var out widget.Style
	fields := []struct {
		name string
		in   string
		out  *lipgloss.Color
	}{
		{"background", s.Background, &out.Background},
		{"background_hover", s.BackgroundHover, &out.BackgroundHover},
		{"text", s.Text, &out.Text},
		{"text_hover", s.TextHover, &out.TextHover},
		{"border", s.Border, &out.Border},
		{"thumb", s.Thumb, &out.Thumb},
	}
	for _, f := range fields {
		c, err := render.ParseColor(f.in)
		if err != nil {
			return widget.Style{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.out = c
	}
	return out, nil
}

// suggest returns a " (did you mean ...)" hint for the closest candidate.
func suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" || bestDist > max(2, len(name)/3) {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
