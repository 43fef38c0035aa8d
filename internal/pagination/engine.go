package pagination

// Options represents options for the pagination engine
type Options struct {
	PageWidth  float64
	PageHeight float64
	Rows       int
	Columns    int
}

// Engine handles the pagination process
type Engine struct {
	options Options
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			PageWidth:  75,  // Default label width in mm
			PageHeight: 120, // Default label height in mm
			Rows:       5,
			Columns:    1,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// Paginate lays out count images into pages
func (e *Engine) Paginate(count int) (*Result, error) {
	return NewPaginator(e.options).Paginate(count)
}

// Document receives a layout one page at a time
type Document interface {
	AddPage()
	PlaceImage(index int, x, y, side float64) error
}

// Emit replays a layout into doc: one AddPage per page followed by that
// page's placements in row-major order. The first PlaceImage error stops it.
func Emit(result *Result, doc Document) error {
	for _, page := range result.Pages {
		doc.AddPage()
		for _, pl := range page.Placements {
			if err := doc.PlaceImage(pl.ImageIndex, pl.X, pl.Y, pl.Side); err != nil {
				return err
			}
		}
	}
	return nil
}
