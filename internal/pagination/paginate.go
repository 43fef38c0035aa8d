package pagination

import (
	"fmt"
)

// Placement is one image drawn at an absolute position on a page
type Placement struct {
	ImageIndex int     `yaml:"image"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Side       float64 `yaml:"side"`
}

// Page represents a single page in the document
type Page struct {
	Width      float64     `yaml:"width"`
	Height     float64     `yaml:"height"`
	Placements []Placement `yaml:"placements"`
}

// Result is the complete layout of an image sequence
type Result struct {
	Geometry Geometry  `yaml:"geometry"`
	Columns  []float64 `yaml:"columns"`
	Rows     []float64 `yaml:"rows"`
	Pages    []*Page   `yaml:"pages"`
	// PageCount is the number of pages allocated while placing images
	PageCount int `yaml:"page_count"`
}

// Side returns the uniform image side of the layout
func (r *Result) Side() float64 {
	return r.Geometry.Side
}

// Placements returns the total number of placed images across all pages
func (r *Result) Placements() int {
	n := 0
	for _, page := range r.Pages {
		n += len(page.Placements)
	}
	return n
}

// Paginator handles breaking an image sequence into grid pages
type Paginator struct {
	PageWidth  float64
	PageHeight float64
	Rows       int
	Columns    int
}

// NewPaginator creates a new paginator
func NewPaginator(options Options) *Paginator {
	return &Paginator{
		PageWidth:  options.PageWidth,
		PageHeight: options.PageHeight,
		Rows:       options.Rows,
		Columns:    options.Columns,
	}
}

// Layout lays out count images with the given page size and grid shape
func Layout(count int, pageWidth, pageHeight float64, rows, columns int) (*Result, error) {
	return NewPaginator(Options{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Rows:       rows,
		Columns:    columns,
	}).Paginate(count)
}

// validate rejects input the geometry cannot be derived from at all
func (p *Paginator) validate(count int) error {
	if count <= 0 {
		return &ValidationError{Field: "images", Reason: "sequence is empty", Err: ErrNoImages}
	}
	if p.Rows <= 0 {
		return &ValidationError{Field: "rows", Reason: fmt.Sprintf("must be positive, got %d", p.Rows)}
	}
	if p.Columns <= 0 {
		return &ValidationError{Field: "columns", Reason: fmt.Sprintf("must be positive, got %d", p.Columns)}
	}
	if !(p.PageWidth > 0) {
		return &ValidationError{Field: "page width", Reason: fmt.Sprintf("must be positive, got %g", p.PageWidth)}
	}
	if !(p.PageHeight > 0) {
		return &ValidationError{Field: "page height", Reason: fmt.Sprintf("must be positive, got %g", p.PageHeight)}
	}
	return nil
}

// Paginate assigns count images, in order, to grid cells row by row and left
// to right, starting a new page whenever the grid is full. The last page may
// be partially filled. Geometry errors are returned before anything is placed.
func (p *Paginator) Paginate(count int) (*Result, error) {
	if err := p.validate(count); err != nil {
		return nil, err
	}

	geometry, err := ComputeGeometry(p.PageWidth, p.PageHeight, p.Rows, p.Columns)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Geometry: geometry,
		Columns:  ColumnPositions(geometry, p.Columns),
		Rows:     RowPositions(geometry, p.Rows),
		Pages:    make([]*Page, 0, pageCapacity(count, p.Rows*p.Columns)),
	}

	var current *Page
	newPage := func() {
		current = &Page{
			Width:      p.PageWidth,
			Height:     p.PageHeight,
			Placements: make([]Placement, 0, p.Rows*p.Columns),
		}
		result.Pages = append(result.Pages, current)
		result.PageCount++
	}

	newPage()
	row, col := 0, 0
	for i := 0; i < count; i++ {
		if row == p.Rows {
			newPage()
			row, col = 0, 0
		}

		current.Placements = append(current.Placements, Placement{
			ImageIndex: i,
			X:          result.Columns[col],
			Y:          result.Rows[row],
			Side:       geometry.Side,
		})

		col++
		if col == p.Columns {
			col = 0
			row++
		}
	}

	return result, nil
}

// pageCapacity is only a slice size hint
func pageCapacity(count, perPage int) int {
	return (count + perPage - 1) / perPage
}
