package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// alphaCutoff is the alpha below which a pixel counts as transparent.
const alphaCutoff = 0x8000

// halfBlock is one cell of a rasterised image: two vertically stacked
// pixels. Empty colours are transparent.
type halfBlock struct {
	top, bottom lipgloss.Color
}

// rasterize scales img to cols x rows cells, two pixels per cell vertically.
func rasterize(img image.Image, cols, rows int) [][]halfBlock {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	out := make([][]halfBlock, rows)
	for y := 0; y < rows; y++ {
		out[y] = make([]halfBlock, cols)
		for x := 0; x < cols; x++ {
			out[y][x] = halfBlock{
				top:    hexOf(dst.At(x, y*2)),
				bottom: hexOf(dst.At(x, y*2+1)),
			}
		}
	}
	return out
}

// hexOf converts c to a lipgloss colour, or "" when mostly transparent.
func hexOf(c color.Color) lipgloss.Color {
	r, g, b, a := c.RGBA()
	if a < alphaCutoff {
		return ""
	}
	// un-premultiply
	r = r * 0xffff / a
	g = g * 0xffff / a
	b = b * 0xffff / a
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// drawImage paints a rasterised image into the cell rectangle at.
func (c *Canvas) drawImage(at image.Rectangle, cells [][]halfBlock) {
	for y, row := range cells {
		for x, hb := range row {
			cx, cy := at.Min.X+x, at.Min.Y+y
			switch {
			case hb.top == "" && hb.bottom == "":
				continue
			case hb.bottom == "":
				c.Set(cx, cy, '▀', hb.top, "")
			case hb.top == "":
				c.Set(cx, cy, '▄', hb.bottom, "")
			default:
				c.Set(cx, cy, '▀', hb.top, hb.bottom)
			}
		}
	}
}
