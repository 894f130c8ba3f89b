package vterm

import "math"

const (
	// MinCols and MinRows bound sizes computed by FitSize
	MinCols = 20
	MinRows = 8

	fallbackCellWidth  = 8
	fallbackCellHeight = 16
)

// FitSize returns the grid that fits an area of width x height pixels with
// cells of cellWidth x cellHeight pixels. Unknown (non-positive) cell
// metrics fall back to 8x16; the result is at least MinCols x MinRows.
func FitSize(width, height, cellWidth, cellHeight float64) Size {
	if cellWidth <= 0 || math.IsNaN(cellWidth) {
		cellWidth = fallbackCellWidth
	}
	if cellHeight <= 0 || math.IsNaN(cellHeight) {
		cellHeight = fallbackCellHeight
	}
	return Size{
		Cols: max(MinCols, floorInt(width/cellWidth)),
		Rows: max(MinRows, floorInt(height/cellHeight)),
	}
}

func floorInt(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// ClampSize raises a size to at least minCols x minRows
func ClampSize(s Size, minCols, minRows int) Size {
	return Size{Cols: max(s.Cols, minCols, 1), Rows: max(s.Rows, minRows, 1)}
}
