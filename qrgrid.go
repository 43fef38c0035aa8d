package qrgrid

import (
	"github.com/gompdf/qrgrid/pkg/api"
)

type Composer = api.Composer
type Options = api.Options
type Option = api.Option
type Image = api.Image
type Result = api.Result
type Page = api.Page
type Placement = api.Placement
type ValidationError = api.ValidationError
type LayoutError = api.LayoutError
type ImageTooLargeError = api.ImageTooLargeError

func New() *Composer                           { return api.New() }
func NewWithOptions(options Options) *Composer { return api.NewWithOptions(options) }
func DefaultOptions() Options                  { return api.DefaultOptions() }
func SanitizeFilename(name string) string      { return api.SanitizeFilename(name) }

var ErrNoImages = api.ErrNoImages

var (
	WithPageSize     = api.WithPageSize
	WithGrid         = api.WithGrid
	WithDPI          = api.WithDPI
	WithMaxImageSize = api.WithMaxImageSize
	WithResourcePath = api.WithResourcePath
	WithTitle        = api.WithTitle
	WithAuthor       = api.WithAuthor
	WithSubject      = api.WithSubject
	WithKeywords     = api.WithKeywords
)

const (
	DefaultPageWidth  = api.DefaultPageWidth
	DefaultPageHeight = api.DefaultPageHeight
	DefaultRows       = api.DefaultRows
	DefaultColumns    = api.DefaultColumns
	DefaultDPI        = api.DefaultDPI

	DefaultMaxImageBytes = api.DefaultMaxImageBytes

	MaxPageSize = api.MaxPageSize
	MaxRows     = api.MaxRows
	MaxColumns  = api.MaxColumns
	MaxDPI      = api.MaxDPI

	MaxImageBytesLimit = api.MaxImageBytesLimit
)
