package render

import (
	"image"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/meaty/meatymidi/internal/widget"
)

// Painter draws a resolved widget tree onto a canvas.
type Painter struct {
	scale  Scale
	images map[imageKey][][]halfBlock
}

type imageKey struct {
	w          *widget.Widget
	cols, rows int
}

// NewPainter creates a painter for the given pixel-to-cell scale.
func NewPainter(scale Scale) *Painter {
	return &Painter{scale: scale.valid(), images: map[imageKey][][]halfBlock{}}
}

// Scale returns the painter's pixel-to-cell scale.
func (p *Painter) Scale() Scale { return p.scale }

// Paint draws root and its descendants, parents first.
func (p *Painter) Paint(c *Canvas, root *widget.Widget, geo widget.Geometry) {
	root.Walk(func(n *widget.Widget, _ int) bool {
		r, ok := geo[n]
		if !ok {
			return false
		}
		p.paintWidget(c, n, p.scale.Cells(r))
		return true
	})
}

func (p *Painter) paintWidget(c *Canvas, w *widget.Widget, at image.Rectangle) {
	if at.Empty() {
		return
	}
	switch w.Kind {
	case widget.KindPanel:
		paintPanel(c, w, at)
	case widget.KindButton:
		paintButton(c, w, at)
	case widget.KindKnob:
		paintKnob(c, w, at)
	case widget.KindSlider:
		paintSlider(c, w, at)
	case widget.KindPicture:
		p.paintPicture(c, w, at)
	}
}

func paintPanel(c *Canvas, w *widget.Widget, at image.Rectangle) {
	if w.Style.Background == "" {
		return
	}
	type corner struct {
		x, y int
		r    rune
		bg   lipgloss.Color
	}
	var corners []corner
	if w.Rounded && at.Dx() >= 3 && at.Dy() >= 2 {
		corners = []corner{
			{x: at.Min.X, y: at.Min.Y, r: '▗'},
			{x: at.Max.X - 1, y: at.Min.Y, r: '▖'},
			{x: at.Min.X, y: at.Max.Y - 1, r: '▝'},
			{x: at.Max.X - 1, y: at.Max.Y - 1, r: '▘'},
		}
		for i := range corners {
			corners[i].bg = c.At(corners[i].x, corners[i].y).BG
		}
	}
	c.Fill(at, w.Style.Background)
	// Corners keep the colour underneath; a quarter block softens the edge.
	for _, k := range corners {
		c.Set(k.x, k.y, k.r, w.Style.Background, k.bg)
	}
}

func paintButton(c *Canvas, w *widget.Widget, at image.Rectangle) {
	bg, fg := w.Style.Background, w.Style.Text
	if w.Hovered() {
		if w.Style.BackgroundHover != "" {
			bg = w.Style.BackgroundHover
		}
		if w.Style.TextHover != "" {
			fg = w.Style.TextHover
		}
	}
	c.Fill(at, bg)
	inner := at
	if w.Style.Border != "" && at.Dx() >= 3 && at.Dy() >= 3 {
		drawBorder(c, at, w.Style.Border)
		inner = at.Inset(1)
	}
	c.CenterText(inner, w.Text, fg)
}

func drawBorder(c *Canvas, at image.Rectangle, fg lipgloss.Color) {
	b := lipgloss.NormalBorder()
	x0, y0, x1, y1 := at.Min.X, at.Min.Y, at.Max.X-1, at.Max.Y-1
	for x := x0 + 1; x < x1; x++ {
		c.Set(x, y0, firstRune(b.Top), fg, "")
		c.Set(x, y1, firstRune(b.Bottom), fg, "")
	}
	for y := y0 + 1; y < y1; y++ {
		c.Set(x0, y, firstRune(b.Left), fg, "")
		c.Set(x1, y, firstRune(b.Right), fg, "")
	}
	c.Set(x0, y0, firstRune(b.TopLeft), fg, "")
	c.Set(x1, y0, firstRune(b.TopRight), fg, "")
	c.Set(x0, y1, firstRune(b.BottomLeft), fg, "")
	c.Set(x1, y1, firstRune(b.BottomRight), fg, "")
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// paintKnob fills the ellipse inscribed in at and marks the thumb at the
// knob's current angle.
func paintKnob(c *Canvas, w *widget.Widget, at image.Rectangle) {
	face := w.Style.Background
	if face == "" {
		face = colorKnobFace
	}
	thumb := w.Style.Thumb
	if thumb == "" {
		thumb = colorKnobThumb
	}
	cx := float64(at.Min.X+at.Max.X) / 2
	cy := float64(at.Min.Y+at.Max.Y) / 2
	rx := float64(at.Dx()) / 2
	ry := float64(at.Dy()) / 2
	for y := at.Min.Y; y < at.Max.Y; y++ {
		for x := at.Min.X; x < at.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1.0 {
				c.Set(x, y, ' ', "", face)
			}
		}
	}

	// Value runs clockwise from the start angle over a full turn.
	angle := (w.StartAngle - w.ValueFraction()*360) * math.Pi / 180
	tx := int(math.Floor(cx + 0.6*rx*math.Cos(angle)))
	ty := int(math.Floor(cy - 0.6*ry*math.Sin(angle)))
	tx = clampInt(tx, at.Min.X, at.Max.X-1)
	ty = clampInt(ty, at.Min.Y, at.Max.Y-1)
	c.Set(tx, ty, '●', thumb, face)
}

// paintSlider draws the track and a thumb at the slider's value. Vertical
// sliders grow upwards.
func paintSlider(c *Canvas, w *widget.Widget, at image.Rectangle) {
	track := w.Style.Background
	if track == "" {
		track = ColorTrack
	}
	bar := w.Style.Border
	if bar == "" {
		bar = colorSliderBar
	}
	thumb := w.Style.Thumb
	if thumb == "" {
		thumb = ColorGrey
	}
	c.Fill(at, track)
	f := w.ValueFraction()
	if w.Orientation == widget.Vertical {
		mid := at.Min.X + at.Dx()/2
		for y := at.Min.Y; y < at.Max.Y; y++ {
			c.Set(mid, y, '│', bar, "")
		}
		ty := at.Max.Y - 1 - int(math.Round(f*float64(at.Dy()-1)))
		for x := at.Min.X; x < at.Max.X; x++ {
			c.Set(x, ty, '█', thumb, "")
		}
		return
	}
	mid := at.Min.Y + at.Dy()/2
	for x := at.Min.X; x < at.Max.X; x++ {
		c.Set(x, mid, '─', bar, "")
	}
	tx := at.Min.X + int(math.Round(f*float64(at.Dx()-1)))
	for y := at.Min.Y; y < at.Max.Y; y++ {
		c.Set(tx, y, '█', thumb, "")
	}
}

func (p *Painter) paintPicture(c *Canvas, w *widget.Widget, at image.Rectangle) {
	if w.Image == nil {
		c.CenterText(at, w.Text, ColorWhite)
		return
	}
	key := imageKey{w: w, cols: at.Dx(), rows: at.Dy()}
	cells, ok := p.images[key]
	if !ok {
		cells = rasterize(w.Image, at.Dx(), at.Dy())
		p.images[key] = cells
	}
	c.drawImage(at, cells)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
