package api

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gompdf/qrgrid/internal/pagination"
	"github.com/gompdf/qrgrid/internal/parser/html"
	"github.com/gompdf/qrgrid/internal/render/pdf"
	"github.com/gompdf/qrgrid/internal/res"
)

// Image is an encoded image handed to the composer
type Image = pdf.Image

// Layout types produced by Plan
type (
	Result    = pagination.Result
	Page      = pagination.Page
	Placement = pagination.Placement
	Geometry  = pagination.Geometry
)

// Errors returned by Plan and the Compose family
type (
	ValidationError    = pagination.ValidationError
	LayoutError        = pagination.LayoutError
	ImageTooLargeError = res.TooLargeError
)

// ErrNoImages is wrapped by the ValidationError returned for an empty input
var ErrNoImages = pagination.ErrNoImages

// Producer is written into the PDF metadata
const Producer = "qrgrid"

// Composer is the main API for laying out images on PDF pages
type Composer struct {
	options Options
	logger  zerolog.Logger
}

// New creates a new composer with default options
func New() *Composer {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new composer with the specified options
func NewWithOptions(options Options) *Composer {
	return &Composer{
		options: options,
		logger:  zerolog.Nop(),
	}
}

// Options returns a copy of the composer options
func (c *Composer) Options() Options {
	return c.options
}

// Plan validates the options and lays out count images without rendering
func (c *Composer) Plan(count int) (*Result, error) {
	if err := c.options.Validate(); err != nil {
		return nil, err
	}

	engine := pagination.NewEngine()
	engine.SetOptions(pagination.Options{
		PageWidth:  c.options.PageWidth,
		PageHeight: c.options.PageHeight,
		Rows:       c.options.Rows,
		Columns:    c.options.Columns,
	})

	result, err := engine.Paginate(count)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Float64("available_width", result.Geometry.AvailableWidth).
		Float64("available_height", result.Geometry.AvailableHeight).
		Float64("side", result.Side()).
		Floats64("columns", result.Columns).
		Floats64("rows", result.Rows).
		Msg("computed grid geometry")

	return result, nil
}

// Compose lays out images and writes the PDF to output. Nothing is written
// when validation, layout or rendering fails.
func (c *Composer) Compose(ctx context.Context, images []Image, output io.Writer) error {
	result, renderer, err := c.prepare(ctx, images)
	if err != nil {
		return err
	}

	if err := renderer.Render(result, images, output, c.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	c.logResult(result, len(images))
	return nil
}

// ComposeBytes lays out images and returns the PDF bytes
func (c *Composer) ComposeBytes(ctx context.Context, images []Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Compose(ctx, images, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ComposeSources loads images from file paths, URLs or data URIs and writes the PDF to output
func (c *Composer) ComposeSources(ctx context.Context, refs []string, output io.Writer) error {
	images, err := c.LoadImages(ctx, "", refs)
	if err != nil {
		return err
	}
	return c.Compose(ctx, images, output)
}

// ComposeToFile loads images from refs and writes the PDF to outputPath.
// The file is only created once the document rendered successfully.
func (c *Composer) ComposeToFile(ctx context.Context, refs []string, outputPath string) error {
	images, err := c.LoadImages(ctx, "", refs)
	if err != nil {
		return err
	}
	return c.ComposeImagesToFile(ctx, images, outputPath)
}

// ComposeImagesToFile lays out images and writes the PDF to outputPath
func (c *Composer) ComposeImagesToFile(ctx context.Context, images []Image, outputPath string) error {
	result, renderer, err := c.prepare(ctx, images)
	if err != nil {
		return err
	}

	if err := renderer.RenderFile(result, images, outputPath, c.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	c.logResult(result, len(images))
	c.logger.Info().Str("path", outputPath).Msg("wrote PDF")
	return nil
}

// ComposeHTML lays out every <img> of the HTML page at htmlRef, in document
// order, and writes the PDF to output. Relative image sources resolve
// against the page location.
func (c *Composer) ComposeHTML(ctx context.Context, htmlRef string, output io.Writer) error {
	refs, err := c.HTMLImageSources(ctx, htmlRef)
	if err != nil {
		return err
	}

	images, err := c.LoadImages(ctx, htmlRef, refs)
	if err != nil {
		return err
	}
	return c.Compose(ctx, images, output)
}

// HTMLImageSources returns the image references of the HTML page at htmlRef
func (c *Composer) HTMLImageSources(ctx context.Context, htmlRef string) ([]string, error) {
	loader := c.newLoader(htmlRef)
	page, err := loader.LoadHTML(ctx, htmlRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load HTML: %w", err)
	}

	refs, err := html.ImageSources(page.GetReader())
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	c.logger.Debug().Str("page", htmlRef).Int("images", len(refs)).Msg("collected image sources")
	return refs, nil
}

// LoadImages loads refs in order. Relative references resolve against base
// and then the configured resource paths. Options and the input length are
// validated before anything is fetched.
func (c *Composer) LoadImages(ctx context.Context, base string, refs []string) ([]Image, error) {
	if err := c.options.Validate(); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, &ValidationError{Field: "images", Reason: "sequence is empty", Err: ErrNoImages}
	}

	loader := c.newLoader(base)
	images := make([]Image, 0, len(refs))
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resource, err := loader.LoadImage(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load image %d (%s): %w", i, ref, err)
		}
		images = append(images, Image{
			Name:     ref,
			MimeType: resource.MimeType,
			Data:     resource.Data,
		})
	}

	c.logger.Debug().Int("images", len(images)).Msg("loaded images")
	return images, nil
}

func (c *Composer) prepare(ctx context.Context, images []Image) (*Result, *pdf.Renderer, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	result, err := c.Plan(len(images))
	if err != nil {
		return nil, nil, err
	}
	for _, img := range images {
		if size := int64(len(img.Data)); size > c.options.MaxImageBytes {
			return nil, nil, &ImageTooLargeError{URL: img.Name, Size: size, Limit: c.options.MaxImageBytes}
		}
	}

	renderer := pdf.NewRenderer()
	renderer.DPI = c.options.DPI
	renderer.Logger = c.logger
	return result, renderer, nil
}

func (c *Composer) newLoader(base string) *res.Loader {
	loader := res.NewLoader(base)
	loader.SetMaxSize(c.options.MaxImageBytes)
	for _, path := range c.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return loader
}

func (c *Composer) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    c.options.Title,
		Author:   c.options.Author,
		Subject:  c.options.Subject,
		Keywords: c.options.Keywords,
		Creator:  Producer,
		Producer: Producer,
	}
}

func (c *Composer) logResult(result *Result, images int) {
	c.logger.Info().
		Int("images", images).
		Int("pages", result.PageCount).
		Str("grid", fmt.Sprintf("%dx%d", c.options.Rows, c.options.Columns)).
		Float64("side_mm", result.Side()).
		Msg("composed image sheet")
}

// WithOptions returns a new composer with the specified options
func (c *Composer) WithOptions(options Options) *Composer {
	return NewWithOptions(options).WithLogger(c.logger)
}

// WithOption returns a new composer with the specified option set
func (c *Composer) WithOption(option Option) *Composer {
	newOptions := c.options
	newOptions.ResourcePaths = append([]string(nil), c.options.ResourcePaths...)
	option(&newOptions)
	return c.WithOptions(newOptions)
}

// WithLogger returns a new composer logging to logger
func (c *Composer) WithLogger(logger zerolog.Logger) *Composer {
	return &Composer{
		options: c.options,
		logger:  logger,
	}
}

// SetPageSize sets the page size
func (c *Composer) SetPageSize(width, height float64) *Composer {
	return c.WithOption(WithPageSize(width, height))
}

// SetGrid sets the rows and columns per page
func (c *Composer) SetGrid(rows, columns int) *Composer {
	return c.WithOption(WithGrid(rows, columns))
}

// SetTitle sets the document title
func (c *Composer) SetTitle(title string) *Composer {
	return c.WithOption(WithTitle(title))
}
