package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/qrgrid/pkg/api"
)

func newPlanCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print where images would be placed without rendering",
		Long: `Print the computed geometry, the column table and every placement for
--count images. Coordinates are in millimetres from the top-left corner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.runPlan(cmd)
		},
	}

	addLayoutFlags(cmd)
	cmd.Flags().IntP("count", "n", 0, "number of images to lay out")
	cmd.Flags().String("format", "yaml", "output format: yaml or table")

	return cmd
}

func (st *state) runPlan(cmd *cobra.Command) error {
	opts, err := st.layoutOptions(cmd)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "table" {
		return fmt.Errorf("unknown format %q: use yaml or table", format)
	}

	result, err := api.NewWithOptions(opts).WithLogger(st.logger).Plan(count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "table" {
		return writePlanTable(out, result)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}

func writePlanTable(w io.Writer, result *api.Result) error {
	g := result.Geometry
	if _, err := fmt.Fprintf(w, "page %gx%g mm, printable %gx%g mm, side %.3f mm, %d page(s)\n",
		g.PageWidth, g.PageHeight, g.AvailableWidth, g.AvailableHeight, g.Side, result.PageCount); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PAGE\tIMAGE\tX\tY\t")
	for p, page := range result.Pages {
		for _, pl := range page.Placements {
			fmt.Fprintf(tw, "%d\t%d\t%.3f\t%.3f\t\n", p+1, pl.ImageIndex, pl.X, pl.Y)
		}
	}
	return tw.Flush()
}
