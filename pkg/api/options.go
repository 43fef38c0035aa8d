package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gompdf/qrgrid/internal/pagination"
)

// Options represents configuration options for composing image sheets
type Options struct {
	// Page dimensions in millimetres
	PageWidth  float64 `validate:"gt=0,lte=1000"`
	PageHeight float64 `validate:"gt=0,lte=1000"`

	// Grid shape
	Rows    int `validate:"min=1,max=50"`
	Columns int `validate:"min=1,max=10"`

	// DPI used when rasterising vector images
	DPI float64 `validate:"gt=0,lte=2400"`

	// Largest accepted image in bytes, per image
	MaxImageBytes int64 `validate:"min=1,max=104857600"`

	// Resource paths
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options
type Option func(*Options)

// Default layout: a 75 x 120 mm label holding one column of five codes
const (
	DefaultPageWidth  = 75.0
	DefaultPageHeight = 120.0
	DefaultRows       = 5
	DefaultColumns    = 1
	DefaultDPI        = 300.0

	DefaultMaxImageBytes int64 = 20 << 20
)

// Limits accepted by Validate
const (
	MaxPageSize = 1000.0
	MaxRows     = 50
	MaxColumns  = 10
	MaxDPI      = 2400.0

	MaxImageBytesLimit int64 = 100 << 20
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageWidth:  DefaultPageWidth,
		PageHeight: DefaultPageHeight,
		Rows:       DefaultRows,
		Columns:    DefaultColumns,
		DPI:        DefaultDPI,

		MaxImageBytes: DefaultMaxImageBytes,
		ResourcePaths: []string{},
	}
}

var validate = validator.New()

// fieldNames maps struct fields to the names used in error messages
var fieldNames = map[string]string{
	"PageWidth":     "page width",
	"PageHeight":    "page height",
	"Rows":          "rows",
	"Columns":       "columns",
	"DPI":           "dpi",
	"MaxImageBytes": "max image size",
}

// Validate checks the page size and grid shape ranges. It returns a
// *pagination.ValidationError describing the first offending field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &pagination.ValidationError{Reason: err.Error(), Err: err}
	}

	fe := fieldErrs[0]
	name, ok := fieldNames[fe.StructField()]
	if !ok {
		name = strings.ToLower(fe.StructField())
	}
	return &pagination.ValidationError{
		Field:  name,
		Reason: describeRule(fe),
		Err:    err,
	}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q check, got %v", fe.Tag(), fe.Value())
	}
}

// WithPageSize sets the page size in millimetres
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithGrid sets the number of rows and columns per page
func WithGrid(rows, columns int) Option {
	return func(o *Options) {
		o.Rows = rows
		o.Columns = columns
	}
}

// WithDPI sets the DPI
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		o.DPI = dpi
	}
}

// WithMaxImageSize sets the largest accepted image in bytes
func WithMaxImageSize(bytes int64) Option {
	return func(o *Options) {
		o.MaxImageBytes = bytes
	}
}

// WithResourcePath adds a path to search for images
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}
