// Package config loads qrgrid settings from a YAML file.
//
// Values absent from the file keep their defaults, so a file may set only
// the fields it cares about:
//
//	page:
//	  width: 100
//	  height: 150
//	grid:
//	  rows: 4
//	  columns: 3
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/qrgrid/pkg/api"
)

// EnvConfigPath names the environment variable holding a default config file path
const EnvConfigPath = "QRGRID_CONFIG"

// Config is the on-disk configuration
type Config struct {
	Page      PageConfig      `yaml:"page"`
	Grid      GridConfig      `yaml:"grid"`
	Render    RenderConfig    `yaml:"render"`
	Document  DocumentConfig  `yaml:"document"`
	Resources ResourcesConfig `yaml:"resources"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PageConfig holds the page size in millimetres
type PageConfig struct {
	Width  float64 `yaml:"width" validate:"gt=0,lte=1000"`
	Height float64 `yaml:"height" validate:"gt=0,lte=1000"`
}

// GridConfig holds the number of images per page
type GridConfig struct {
	Rows    int `yaml:"rows" validate:"min=1,max=50"`
	Columns int `yaml:"columns" validate:"min=1,max=10"`
}

// RenderConfig holds rasterisation and input size settings
type RenderConfig struct {
	DPI float64 `yaml:"dpi" validate:"gt=0,lte=2400"`
	// MaxImageMB caps every loaded image, in MiB
	MaxImageMB int `yaml:"max_image_mb" validate:"min=1,max=100"`
}

// DocumentConfig holds PDF metadata
type DocumentConfig struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Subject  string `yaml:"subject"`
	Keywords string `yaml:"keywords"`
}

// ResourcesConfig lists directories searched for relative image paths
type ResourcesConfig struct {
	Paths []string `yaml:"paths"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := api.DefaultOptions()
	return &Config{
		Page:   PageConfig{Width: opts.PageWidth, Height: opts.PageHeight},
		Grid:   GridConfig{Rows: opts.Rows, Columns: opts.Columns},
		Render: RenderConfig{DPI: opts.DPI, MaxImageMB: int(opts.MaxImageBytes >> 20)},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// falls back to $QRGRID_CONFIG; when that is unset too the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its allowed range
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: failed %q check (%s), got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return errors.Join(errs...)
}

// ToOptions converts the configuration into composer options
func (c *Config) ToOptions() api.Options {
	opts := api.DefaultOptions()
	opts.PageWidth = c.Page.Width
	opts.PageHeight = c.Page.Height
	opts.Rows = c.Grid.Rows
	opts.Columns = c.Grid.Columns
	opts.DPI = c.Render.DPI
	opts.MaxImageBytes = int64(c.Render.MaxImageMB) << 20
	opts.Title = c.Document.Title
	opts.Author = c.Document.Author
	opts.Subject = c.Document.Subject
	opts.Keywords = c.Document.Keywords
	opts.ResourcePaths = append(opts.ResourcePaths, c.Resources.Paths...)
	return opts
}
