package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	// decoders for image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
)

const (
	mmPerInch = 25.4
	// maxRasterSide caps SVG rasterisation regardless of DPI
	maxRasterSide = 8192
)

// fpdf embeds these directly; everything else is re-encoded as PNG
var passThrough = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// prepareImage returns image bytes fpdf can embed together with their fpdf type
func prepareImage(img Image, side, dpi float64, logger zerolog.Logger) ([]byte, string, error) {
	if len(img.Data) == 0 {
		return nil, "", fmt.Errorf("image is empty")
	}

	if isSVG(img) {
		raster, err := rasterizeSVG(img.Data, rasterSide(side, dpi), img.Name, logger)
		if err != nil {
			return nil, "", err
		}
		return encodePNG(raster)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, "", fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width != cfg.Height {
		logger.Warn().
			Str("image", img.Name).
			Int("width", cfg.Width).
			Int("height", cfg.Height).
			Msg("image is not square, it will be stretched to a square cell")
	}

	if imageType, ok := passThrough[format]; ok {
		return img.Data, imageType, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return encodePNG(decoded)
}

func encodePNG(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), "PNG", nil
}

func isSVG(img Image) bool {
	if strings.HasPrefix(img.MimeType, "image/svg") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(img.Name), ".svg") {
		return true
	}
	head := img.Data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// rasterSide converts a side in millimetres to pixels at dpi
func rasterSide(side, dpi float64) int {
	px := int(math.Ceil(side / mmPerInch * dpi))
	if px < 1 {
		px = 1
	}
	if px > maxRasterSide {
		px = maxRasterSide
	}
	return px
}

// rasterizeSVG draws an SVG icon onto a white square of px pixels
func rasterizeSVG(data []byte, px int, name string, logger zerolog.Logger) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	if icon.ViewBox.W != icon.ViewBox.H {
		logger.Warn().
			Str("image", name).
			Float64("width", icon.ViewBox.W).
			Float64("height", icon.ViewBox.H).
			Msg("SVG view box is not square, it will be stretched to a square cell")
	}

	icon.SetTarget(0, 0, float64(px), float64(px))
	rgba := image.NewRGBA(image.Rect(0, 0, px, px))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(px, px, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(px, px, scanner), 1.0)

	return rgba, nil
}
