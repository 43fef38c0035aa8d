package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/gompdf/qrgrid/internal/pagination"
)

// Image is one encoded raster (or SVG) image to be placed in the document
type Image struct {
	Name     string
	MimeType string
	Data     []byte
}

// Renderer handles rendering to PDF
type Renderer struct {
	// DPI controls the resolution SVG images are rasterised at
	DPI float64
	// Logger receives per-image diagnostics
	Logger zerolog.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// CreationDate pins the document timestamp; zero means now
	CreationDate time.Time
	// NoCompression writes page content streams as plain text
	NoCompression bool
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{
		DPI:    300,
		Logger: zerolog.Nop(),
	}
}

// Render draws a finished layout into a PDF and writes it to w. Nothing is
// written unless the whole document was produced.
func (r *Renderer) Render(result *pagination.Result, images []Image, w io.Writer, options RenderOptions) error {
	data, err := r.render(result, images, options)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile renders to outputPath, creating its directory if needed
func (r *Renderer) RenderFile(result *pagination.Result, images []Image, outputPath string, options RenderOptions) error {
	data, err := r.render(result, images, options)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}

func (r *Renderer) render(result *pagination.Result, images []Image, options RenderOptions) ([]byte, error) {
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("nothing to render: layout has no pages")
	}
	if n := result.Placements(); n != len(images) {
		return nil, fmt.Errorf("layout places %d images but %d were supplied", n, len(images))
	}

	g := result.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetCompression(!options.NoCompression)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	if !options.CreationDate.IsZero() {
		pdf.SetCreationDate(options.CreationDate)
		pdf.SetModificationDate(options.CreationDate)
	}

	doc := &document{
		pdf:        pdf,
		images:     images,
		registered: make(map[int]preparedImage, len(images)),
		renderer:   r,
	}
	if err := pagination.Emit(result, doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize PDF: %w", err)
	}

	r.Logger.Debug().
		Int("pages", pdf.PageCount()).
		Int("images", len(images)).
		Int("bytes", buf.Len()).
		Msg("rendered PDF")

	return buf.Bytes(), nil
}

// document adapts an fpdf document to pagination.Document
type document struct {
	pdf        *fpdf.Fpdf
	images     []Image
	registered map[int]preparedImage
	renderer   *Renderer
}

type preparedImage struct {
	name      string
	imageType string
}

func (d *document) AddPage() {
	d.pdf.AddPage()
}

func (d *document) PlaceImage(index int, x, y, side float64) error {
	if index < 0 || index >= len(d.images) {
		return fmt.Errorf("image index %d out of range (%d images)", index, len(d.images))
	}

	prepared, ok := d.registered[index]
	if !ok {
		img := d.images[index]
		data, imageType, err := prepareImage(img, side, d.renderer.DPI, d.renderer.Logger)
		if err != nil {
			return fmt.Errorf("failed to prepare image %d (%s): %w", index, img.Name, err)
		}

		prepared = preparedImage{name: fmt.Sprintf("image-%d", index), imageType: imageType}
		d.pdf.RegisterImageOptionsReader(prepared.name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
		if d.pdf.Err() {
			return fmt.Errorf("failed to register image %d (%s): %w", index, img.Name, d.pdf.Error())
		}
		d.registered[index] = prepared
	}

	d.pdf.ImageOptions(prepared.name, x, y, side, side, false, fpdf.ImageOptions{ImageType: prepared.imageType}, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("failed to place image %d: %w", index, d.pdf.Error())
	}

	d.renderer.Logger.Trace().
		Int("image", index).
		Float64("x", x).
		Float64("y", y).
		Float64("side", side).
		Msg("placed image")

	return nil
}
