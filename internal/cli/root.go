package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gompdf/qrgrid/internal/config"
	"github.com/gompdf/qrgrid/internal/logging"
	"github.com/gompdf/qrgrid/pkg/api"
)

// state is shared by the root command and its subcommands
type state struct {
	logger zerolog.Logger
	cfg    *config.Config
}

// NewRootCmd creates the root Cobra command for the qrgrid CLI
func NewRootCmd(ver string) *cobra.Command {
	st := &state{logger: zerolog.Nop(), cfg: config.Default()}

	cmd := &cobra.Command{
		Use:           "qrgrid",
		Short:         "Lay out square images on a grid of PDF pages",
		Long:          "qrgrid arranges square images such as QR codes into evenly spaced rows and columns on fixed-size PDF pages.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg

			level := cfg.Logging.Level
			if cmd.Flags().Changed("log-level") {
				level, _ = cmd.Flags().GetString("log-level")
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			}
			format := cfg.Logging.Format
			if cmd.Flags().Changed("log-format") {
				format, _ = cmd.Flags().GetString("log-format")
			}
			logger, err := logging.NewWithFormat(format, level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			st.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	cmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", logging.FormatConsole, "log format: console or json")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newComposeCmd(st), newPlanCmd(st))

	return cmd
}

const rootCmdExample = `  # Five codes per 75x120 mm label (the defaults)
  qrgrid compose codes/*.png -o labels.pdf

  # A4 sheet with a 8x4 grid
  qrgrid compose codes/*.svg --width 210 --height 297 --rows 8 --columns 4

  # Every <img> of an HTML page, in document order
  qrgrid compose --html batch/index.html -o batch.pdf

  # Show where 12 codes would land without rendering
  qrgrid plan --count 12 --rows 3 --columns 2`

// addLayoutFlags registers the page and grid flags shared by compose and plan
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("width", api.DefaultPageWidth, "page width in mm, (0, 1000]")
	cmd.Flags().Float64("height", api.DefaultPageHeight, "page height in mm, (0, 1000]")
	cmd.Flags().Int("rows", api.DefaultRows, "rows per page, [1, 50]")
	cmd.Flags().Int("columns", api.DefaultColumns, "columns per page, [1, 10]")
}

// layoutOptions returns the config file options overridden by explicitly set flags
func (st *state) layoutOptions(cmd *cobra.Command) (api.Options, error) {
	opts := st.cfg.ToOptions()
	flags := cmd.Flags()

	var err error
	if flags.Changed("width") {
		if opts.PageWidth, err = flags.GetFloat64("width"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("height") {
		if opts.PageHeight, err = flags.GetFloat64("height"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("rows") {
		if opts.Rows, err = flags.GetInt("rows"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("columns") {
		if opts.Columns, err = flags.GetInt("columns"); err != nil {
			return opts, err
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid settings: %w", err)
	}
	return opts, nil
}
