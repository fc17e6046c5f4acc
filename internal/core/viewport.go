package core

import "math"

// Viewport maps field coordinates onto a character grid.
// The grid may be any size; each axis is scaled independently.
type Viewport struct {
	FieldW, FieldH float64
	Cols, Rows     int
}

// NewViewport creates a viewport for a field drawn into cols x rows cells.
func NewViewport(fieldW, fieldH float64, cols, rows int) Viewport {
	return Viewport{FieldW: fieldW, FieldH: fieldH, Cols: cols, Rows: rows}
}

// Col converts a field x coordinate to a column index.
func (v Viewport) Col(x float64) int {
	if v.FieldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.Cols) / v.FieldW))
}

// Row converts a field y coordinate to a row index.
func (v Viewport) Row(y float64) int {
	if v.FieldH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.Rows) / v.FieldH))
}

// Cells converts a rectangle to the half-open cell range it covers.
// Any rectangle with positive area covers at least one cell.
func (v Viewport) Cells(r Rect) (x0, y0, x1, y1 int) {
	x0, y0 = v.Col(r.X), v.Row(r.Y)
	x1 = int(math.Ceil(r.Right() * float64(v.Cols) / v.FieldW))
	y1 = int(math.Ceil(r.Bottom() * float64(v.Rows) / v.FieldH))
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}
