package pagination

import "math"

// Fixed page margins, in the same unit as the page size (millimetres)
const (
	MarginX      = 5.0
	MarginTop    = 10.0
	MarginBottom = 5.0
)

// Geometry holds the derived printable area and the uniform image side
type Geometry struct {
	PageWidth       float64 `yaml:"page_width"`
	PageHeight      float64 `yaml:"page_height"`
	AvailableWidth  float64 `yaml:"available_width"`
	AvailableHeight float64 `yaml:"available_height"`
	Side            float64 `yaml:"side"`
}

// ComputeGeometry derives the printable area and the largest square side that
// fits columns x rows cells into it. No rounding is applied.
func ComputeGeometry(pageWidth, pageHeight float64, rows, columns int) (Geometry, error) {
	g := Geometry{
		PageWidth:       pageWidth,
		PageHeight:      pageHeight,
		AvailableWidth:  pageWidth - 2*MarginX,
		AvailableHeight: pageHeight - MarginTop - MarginBottom,
	}

	if g.AvailableWidth <= 0 {
		return g, &LayoutError{
			Reason:          "margins exceed page width",
			AvailableWidth:  g.AvailableWidth,
			AvailableHeight: g.AvailableHeight,
		}
	}
	if g.AvailableHeight <= 0 {
		return g, &LayoutError{
			Reason:          "margins exceed page height",
			AvailableWidth:  g.AvailableWidth,
			AvailableHeight: g.AvailableHeight,
		}
	}

	g.Side = math.Min(g.AvailableWidth/float64(columns), g.AvailableHeight/float64(rows))
	// Also catches NaN
	if !(g.Side > 0) {
		return g, &LayoutError{
			Reason:          "image side is not positive",
			AvailableWidth:  g.AvailableWidth,
			AvailableHeight: g.AvailableHeight,
			Side:            g.Side,
		}
	}

	return g, nil
}

// ColumnPositions returns the X origin of every column. The outermost columns
// touch the left and right margins; interior columns share the leftover width.
// A single column is centred. The interior spacing may be negative when the
// side was bounded by the page height.
func ColumnPositions(g Geometry, columns int) []float64 {
	switch {
	case columns <= 0:
		return nil
	case columns == 1:
		return []float64{MarginX + (g.AvailableWidth-g.Side)/2}
	case columns == 2:
		return []float64{MarginX, g.PageWidth - MarginX - g.Side}
	}

	spacing := (g.AvailableWidth - g.Side*float64(columns)) / float64(columns-1)

	positions := make([]float64, 0, columns)
	positions = append(positions, MarginX)
	for c := 1; c < columns-1; c++ {
		positions = append(positions, MarginX+float64(c)*(g.Side+spacing))
	}
	positions = append(positions, g.PageWidth-MarginX-g.Side)

	return positions
}

// RowPositions returns the Y origin of every row. Several rows are spread over
// the full printable height; a single row is centred vertically.
func RowPositions(g Geometry, rows int) []float64 {
	switch {
	case rows <= 0:
		return nil
	case rows == 1:
		return []float64{MarginTop + (g.AvailableHeight-g.Side)/2}
	}

	spacing := (g.AvailableHeight - g.Side*float64(rows)) / float64(rows-1)

	positions := make([]float64, rows)
	for r := range positions {
		positions[r] = MarginTop + float64(r)*(g.Side+spacing)
	}

	return positions
}
