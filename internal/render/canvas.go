package render

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Cell is one terminal character with its colours.
type Cell struct {
	Rune rune
	FG   lipgloss.Color
	BG   lipgloss.Color
}

// Canvas is a fixed grid of cells, the frame buffer of the window.
type Canvas struct {
	cols, rows int
	cells      []Cell
}

// NewCanvas creates a canvas of cols x rows blank cells.
func NewCanvas(cols, rows int) *Canvas {
	cols = max(0, cols)
	rows = max(0, rows)
	c := &Canvas{cols: cols, rows: rows, cells: make([]Cell, cols*rows)}
	c.Clear("")
	return c
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// Bounds returns the canvas rectangle in cells.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.cols, c.rows)
}

// Clear resets every cell to a blank on bg.
func (c *Canvas) Clear(bg lipgloss.Color) {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', BG: bg}
	}
}

// At returns the cell at (x, y); out of range reads are blank.
func (c *Canvas) At(x, y int) Cell {
	if !image.Pt(x, y).In(c.Bounds()) {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.cols+x]
}

// Set writes a cell; out of range writes are dropped. An empty bg keeps the
// colour underneath.
func (c *Canvas) Set(x, y int, r rune, fg, bg lipgloss.Color) {
	if !image.Pt(x, y).In(c.Bounds()) {
		return
	}
	cell := &c.cells[y*c.cols+x]
	cell.Rune = r
	cell.FG = fg
	if bg != "" {
		cell.BG = bg
	}
}

// Fill paints r with blanks on bg.
func (c *Canvas) Fill(r image.Rectangle, bg lipgloss.Color) {
	r = r.Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Set(x, y, ' ', "", bg)
		}
	}
}

// Text writes s starting at (x, y), truncated to width cells, keeping the
// background underneath.
func (c *Canvas) Text(x, y, width int, s string, fg lipgloss.Color) {
	if width <= 0 {
		return
	}
	s = ansi.Truncate(s, width, "")
	for _, r := range s {
		c.Set(x, y, r, fg, "")
		x++
	}
}

// CenterText writes s centred within r on its middle row.
func (c *Canvas) CenterText(r image.Rectangle, s string, fg lipgloss.Color) {
	if r.Empty() {
		return
	}
	s = ansi.Truncate(s, r.Dx(), "")
	w := ansi.StringWidth(s)
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-1)/2
	c.Text(x, y, r.Dx(), s, fg)
}

// Plain returns the canvas runes without colour, one line per row.
func (c *Canvas) Plain() string {
	lines := make([]string, c.rows)
	for y := 0; y < c.rows; y++ {
		var b strings.Builder
		for x := 0; x < c.cols; x++ {
			b.WriteRune(c.cells[y*c.cols+x].Rune)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the canvas with colours. Runs of cells sharing colours are
// styled together.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for y := 0; y < c.rows; y++ {
		var (
			line  strings.Builder
			run   strings.Builder
			style Cell
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if style.FG != "" {
				st = st.Foreground(style.FG)
			}
			if style.BG != "" {
				st = st.Background(style.BG)
			}
			line.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.cols; x++ {
			cell := c.cells[y*c.cols+x]
			if x == 0 || cell.FG != style.FG || cell.BG != style.BG {
				flush()
				style = cell
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
