package layout

import (
	"fmt"
	"image"
	_ "image/png" // image formats for picture assets

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/meaty/meatymidi/internal/geom"
	"github.com/meaty/meatymidi/internal/widget"
)

// RootName is the name of the group every description is built into.
const RootName = "root"

// Slider and knob defaults when a description leaves them out.
const (
	defaultSliderMax = 10
	defaultKnobMax   = 360
	defaultKnobAngle = 270
)

// Builder constructs widget trees from descriptions.
type Builder struct {
	log *zap.Logger
}

// NewBuilder returns a Builder logging to log. A nil logger is silent.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// Build creates a fresh, sealed tree for d. Every call returns a new tree
// with the same structure. Picture assets are decoded here; a missing or
// unreadable asset fails the build.
func (b *Builder) Build(d *Description) (*widget.Widget, error) {
	root := widget.New(widget.KindGroup, RootName)
	root.SetSize(geom.Percent(100), geom.Percent(100))

	byName := map[string]*widget.Widget{RootName: root}
	for i := range d.Widgets {
		e := &d.Widgets[i]
		w, err := b.newWidget(d, e)
		if err != nil {
			return nil, fmt.Errorf("widget %q: %w", e.Name, err)
		}
		parent := root
		if e.Parent != "" {
			parent = byName[e.Parent]
		}
		if err := parent.Add(w); err != nil {
			return nil, err
		}
		byName[e.Name] = w
		if e.kind == widget.KindHorizontalLayout {
			if err := addItems(d, e, w); err != nil {
				return nil, fmt.Errorf("widget %q: %w", e.Name, err)
			}
		}
	}
	root.Seal()

	b.log.Debug("layout built",
		zap.String("layout", d.Name),
		zap.Int("widgets", root.Count(func(*widget.Widget) bool { return true })),
		zap.Int("buttons", root.CountKind(widget.KindButton)),
		zap.Int("knobs", root.CountKind(widget.KindKnob)),
		zap.Int("sliders", root.CountKind(widget.KindSlider)),
	)
	return root, nil
}

func (b *Builder) newWidget(d *Description, e *Entry) (*widget.Widget, error) {
	w := widget.New(e.kind, e.Name)
	w.X, w.Y = e.Position.X, e.Position.Y
	if e.Size.Set {
		w.W, w.H = e.Size.X, e.Size.Y
	} else {
		w.W, w.H = geom.Percent(100), geom.Percent(100)
	}
	if len(e.Origin) == 2 {
		w.Origin = geom.Point{X: e.Origin[0], Y: e.Origin[1]}
	}
	if e.Style != "" {
		w.Class = e.Style
		w.Style = d.styles[e.Style]
	}
	if e.background != "" {
		w.Style.Background = e.background
	}
	w.Rounded = e.Rounded
	w.Text = e.Text
	w.Value, w.Min = e.Value, e.Min
	if e.Orientation == "vertical" {
		w.Orientation = widget.Vertical
	}
	if e.Enabled != nil {
		w.SetEnabled(*e.Enabled)
	}

	switch e.kind {
	case widget.KindSlider:
		w.Max = valueOr(e.Max, defaultSliderMax)
		w.SetEnabled(false)
	case widget.KindKnob:
		w.Max = valueOr(e.Max, defaultKnobMax)
		w.StartAngle = valueOr(e.StartAngle, defaultKnobAngle)
		w.SetEnabled(false)
	case widget.KindPicture:
		img, err := loadImage(d.open, e.Image)
		if err != nil {
			return nil, err
		}
		w.Image = img
		w.ImagePath = e.Image
		b.log.Debug("picture loaded", zap.String("widget", e.Name), zap.String("image", e.Image),
			zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	default:
		w.Max = valueOr(e.Max, 0)
	}
	return w, nil
}

// addItems fills a horizontal layout with buttons and spaces.
func addItems(d *Description, e *Entry, row *widget.Widget) error {
	style := d.styles[e.ItemStyle]
	for _, raw := range e.Items {
		it, err := ParseItem(raw, d.Spacing)
		if err != nil {
			return err
		}
		var w *widget.Widget
		switch it.Kind {
		case ItemSpace:
			if it.Ratio == 0 {
				continue
			}
			w = widget.New(widget.KindSpace, "")
			w.Ratio = it.Ratio
		default:
			w = widget.New(widget.KindButton, it.Label)
			w.Text = it.Label
			w.Class = e.ItemStyle
			w.Style = style
			w.Ratio = 1
		}
		if err := row.Add(w); err != nil {
			return err
		}
	}
	return nil
}

func loadImage(open imageOpener, name string) (image.Image, error) {
	if open == nil {
		return nil, fmt.Errorf("load image %q: no asset source", name)
	}
	f, err := open(name)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return img, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
