package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gompdf/qrgrid/pkg/api"
)

func newComposeCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [image...]",
		Short: "Render images onto grid pages and write a PDF",
		Long: `Render images onto grid pages and write a PDF.

Images are file paths, http(s) URLs or data: URIs and are placed in the
order given, row by row and left to right. PNG, JPEG, GIF, BMP, TIFF, WEBP
and SVG are accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runCompose(cmd, args)
		},
	}

	addLayoutFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output PDF path (default derived from --title)")
	cmd.Flags().String("html", "", "HTML page whose <img> elements are laid out")
	cmd.Flags().Float64("dpi", api.DefaultDPI, "resolution for rasterising SVG images")
	cmd.Flags().Int("max-image-mb", int(api.DefaultMaxImageBytes>>20), "largest accepted image in MiB, [1, 100]")
	cmd.Flags().String("title", "", "document title")
	cmd.Flags().String("author", "", "document author")
	cmd.Flags().String("subject", "", "document subject")
	cmd.Flags().String("keywords", "", "document keywords")
	cmd.Flags().StringSlice("resource-path", nil, "directories searched for relative image paths")

	return cmd
}

func (st *state) runCompose(cmd *cobra.Command, args []string) error {
	opts, err := st.layoutOptions(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dpi") {
		opts.DPI, _ = flags.GetFloat64("dpi")
	}
	if flags.Changed("max-image-mb") {
		mb, _ := flags.GetInt("max-image-mb")
		opts.MaxImageBytes = int64(mb) << 20
		if err := opts.Validate(); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
	}
	for flag, field := range map[string]*string{
		"title":    &opts.Title,
		"author":   &opts.Author,
		"subject":  &opts.Subject,
		"keywords": &opts.Keywords,
	} {
		if flags.Changed(flag) {
			*field, _ = flags.GetString(flag)
		}
	}
	paths, _ := flags.GetStringSlice("resource-path")
	opts.ResourcePaths = append(opts.ResourcePaths, paths...)

	htmlRef, _ := flags.GetString("html")
	switch {
	case htmlRef == "" && len(args) == 0:
		return errors.New("no images given: pass image paths or --html")
	case htmlRef != "" && len(args) > 0:
		return errors.New("pass either image paths or --html, not both")
	}

	output, _ := flags.GetString("output")
	if output == "" {
		output = defaultOutputName(opts.Title)
	}

	composer := api.NewWithOptions(opts).WithLogger(st.logger)
	ctx := cmd.Context()

	refs := args
	if htmlRef != "" {
		if refs, err = composer.HTMLImageSources(ctx, htmlRef); err != nil {
			return err
		}
	}

	images, err := composer.LoadImages(ctx, htmlRef, refs)
	if err != nil {
		return err
	}
	return composer.ComposeImagesToFile(ctx, images, output)
}

func defaultOutputName(title string) string {
	if title == "" {
		title = "qrcodes"
	}
	return api.SanitizeFilename(title + ".pdf")
}
