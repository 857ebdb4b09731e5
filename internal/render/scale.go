package render

import (
	"image"
	"math"

	"github.com/meaty/meatymidi/internal/geom"
)

// Scale maps window pixels to terminal cells.
type Scale struct {
	CellW, CellH float64
}

// DefaultScale is a typical terminal cell, 10 x 20 pixels.
var DefaultScale = Scale{CellW: 10, CellH: 20}

func (s Scale) valid() Scale {
	if s.CellW <= 0 || s.CellH <= 0 {
		return DefaultScale
	}
	return s
}

// Cells converts a pixel rectangle to the cells it covers. Edges are rounded
// independently so adjacent rectangles never overlap.
func (s Scale) Cells(r geom.Rect) image.Rectangle {
	s = s.valid()
	return image.Rect(
		int(math.Round(r.Left()/s.CellW)),
		int(math.Round(r.Top()/s.CellH)),
		int(math.Round(r.Right()/s.CellW)),
		int(math.Round(r.Bottom()/s.CellH)),
	)
}

// GridSize returns the canvas dimensions for a window of the given size.
func (s Scale) GridSize(window geom.Size) (cols, rows int) {
	r := s.Cells(geom.NewRect(0, 0, window.W, window.H))
	return r.Dx(), r.Dy()
}

// Center returns the pixel at the centre of cell (col, row).
func (s Scale) Center(col, row int) geom.Point {
	s = s.valid()
	return geom.Point{
		X: (float64(col) + 0.5) * s.CellW,
		Y: (float64(row) + 0.5) * s.CellH,
	}
}
