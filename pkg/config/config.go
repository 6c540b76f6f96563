// Package config handles report engine configuration loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// Config is the root configuration structure.
type Config struct {
	Page       PageConfig       `yaml:"page"`
	Layout     LayoutConfig     `yaml:"layout"`
	Palette    PaletteConfig    `yaml:"palette"`
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Share        ShareConfig        `yaml:"share"`
	Distribution DistributionConfig `yaml:"distribution"`
}

// PageConfig holds the page geometry in millimetres.
type PageConfig struct {
	WidthMM        float64 `yaml:"width_mm"`
	HeightMM       float64 `yaml:"height_mm"`
	MarginMM       float64 `yaml:"margin_mm"`
	BottomMarginMM float64 `yaml:"bottom_margin_mm"`
}

// LayoutConfig holds the tunable template constants.
type LayoutConfig struct {
	BarMaxScale     float64 `yaml:"bar_max_scale"`
	BarMaxWidthMM   float64 `yaml:"bar_max_width_mm"`
	SummaryWidthMM  float64 `yaml:"summary_width_mm"`
	SummaryFontSize float64 `yaml:"summary_font_size"`
	SummaryMaxLines int     `yaml:"summary_max_lines"`
	CellSpacingMM   float64 `yaml:"cell_spacing_mm"`
	RowHeightMM     float64 `yaml:"row_height_mm"`
	LineHeightMM    float64 `yaml:"line_height_mm"`
}

// PaletteConfig holds region colors as "#rrggbb".
type PaletteConfig struct {
	Header    string `yaml:"header"`
	Panel     string `yaml:"panel"`
	Footer    string `yaml:"footer"`
	BodyText  string `yaml:"body_text"`
	MutedText string `yaml:"muted_text"`
}

// GenerationConfig controls the deferred generation task.
type GenerationConfig struct {
	// Delay before the document is produced, as a Go duration string.
	Delay string `yaml:"delay"`
	// Strict turns render defects into errors; nothing is saved.
	Strict bool `yaml:"strict"`
	// Compress enables FlateDecode on PDF content streams.
	Compress bool `yaml:"compress"`
}

// OutputConfig controls where documents are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // pdf or html
}

// ShareConfig controls share links.
type ShareConfig struct {
	Origin string `yaml:"origin"`
}

// DistributionConfig is the list of addresses reports are sent to.
type DistributionConfig struct {
	Recipients []string `yaml:"recipients"`
}

// Default returns the default configuration.
func Default() *Config {
	p := layout.DefaultPalette()
	t := layout.DefaultTemplate()
	return &Config{
		Page: PageConfig{
			WidthMM:        t.PageWidth,
			HeightMM:       t.PageHeight,
			MarginMM:       t.Margin,
			BottomMarginMM: t.BottomMargin,
		},
		Layout: LayoutConfig{
			BarMaxScale:     t.BarMaxScale,
			BarMaxWidthMM:   t.BarMaxWidth,
			SummaryWidthMM:  t.SummaryWidth,
			SummaryFontSize: t.SummaryFontSize,
			SummaryMaxLines: t.SummaryMaxLines,
			CellSpacingMM:   t.CellSpacing,
			RowHeightMM:     t.RowHeight,
			LineHeightMM:    t.LineHeight,
		},
		Palette: PaletteConfig{
			Header:    p.Header.Hex(),
			Panel:     p.Panel.Hex(),
			Footer:    p.Footer.Hex(),
			BodyText:  p.BodyText.Hex(),
			MutedText: p.MutedText.Hex(),
		},
		Generation: GenerationConfig{
			Delay:    "2s",
			Strict:   false,
			Compress: true,
		},
		Output: OutputConfig{
			Dir:    "./reports",
			Format: "pdf",
		},
		Share: ShareConfig{
			Origin: "http://localhost:8080",
		},
		Distribution: DistributionConfig{
			Recipients: metrics.DefaultRecipients(),
		},
	}
}

// Load loads configuration from a file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rerrors.WrapConfig(err, rerrors.ErrConfigNotFound, "configuration file not found").
				WithContext("path", path).
				WithSuggestion("Run 'carboniq init' to create a default configuration")
		}
		return nil, rerrors.WrapIO(err, rerrors.ErrConfigNotFound, "failed to read configuration file").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, rerrors.WrapConfig(err, rerrors.ErrConfigParseFailed, "failed to parse configuration file").
			WithContext("path", path).
			WithSuggestion("Check the YAML indentation and key names")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return rerrors.WrapConfig(err, rerrors.ErrConfigWriteFailed, "failed to create config directory").
			WithContext("dir", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return rerrors.WrapConfig(err, rerrors.ErrConfigWriteFailed, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerrors.WrapConfig(err, rerrors.ErrConfigWriteFailed, "failed to write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if _, err := os.Stat("carboniq.yaml"); err == nil {
		return "carboniq.yaml"
	}
	if _, err := os.Stat("config/carboniq.yaml"); err == nil {
		return "config/carboniq.yaml"
	}
	return "carboniq.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}
	return Default().Save(path)
}

// Environment variables that override file values.
const (
	EnvShareOrigin = "CARBONIQ_SHARE_ORIGIN"
	EnvOutputDir   = "CARBONIQ_OUTPUT_DIR"
	EnvFormat      = "CARBONIQ_FORMAT"
	EnvDelay       = "CARBONIQ_DELAY"
	EnvStrict      = "CARBONIQ_STRICT"
	EnvRecipients  = "CARBONIQ_RECIPIENTS" // comma separated
)

// ApplyEnv overrides configuration values from CARBONIQ_* variables.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvShareOrigin)); v != "" {
		c.Share.Origin = v
	}
	if v := strings.TrimSpace(getenv(EnvOutputDir)); v != "" {
		c.Output.Dir = v
	}
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvDelay)); v != "" {
		c.Generation.Delay = v
	}
	if v := strings.TrimSpace(getenv(EnvRecipients)); v != "" {
		var list []string
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				list = append(list, r)
			}
		}
		c.Distribution.Recipients = list
	}
	if v := strings.TrimSpace(getenv(EnvStrict)); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return rerrors.WrapConfig(err, rerrors.ErrConfigInvalid, "invalid boolean in environment").
				WithContext("variable", EnvStrict).
				WithContext("value", v)
		}
		c.Generation.Strict = strict
	}
	return c.Validate()
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	invalid := func(field, format string, args ...any) *rerrors.ReportError {
		return rerrors.ConfigError(rerrors.ErrConfigInvalid, fmt.Sprintf(format, args...)).
			WithContext("field", field)
	}

	if c.Page.WidthMM <= 0 || c.Page.HeightMM <= 0 {
		return invalid("page", "page size must be positive, got %.1fx%.1f mm", c.Page.WidthMM, c.Page.HeightMM)
	}
	if c.Layout.BarMaxScale <= 0 {
		return invalid("layout.bar_max_scale", "bar scale must be positive")
	}
	if _, err := c.DelayDuration(); err != nil {
		return invalid("generation.delay", "invalid delay %q", c.Generation.Delay)
	}
	switch c.Output.Format {
	case "pdf", "html":
	default:
		return invalid("output.format", "unsupported output format %q", c.Output.Format).
			WithSuggestion("Use 'pdf' or 'html'")
	}
	if _, err := c.Palette.Resolve(); err != nil {
		return invalid("palette", "%v", err)
	}
	if err := metrics.ValidateRecipients(c.Distribution.Recipients); err != nil {
		return invalid("distribution.recipients", "invalid distribution list").WithCause(err)
	}
	return nil
}

// DelayDuration parses the generation delay. An empty delay is zero.
func (c *Config) DelayDuration() (time.Duration, error) {
	if c.Generation.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Generation.Delay)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %s", d)
	}
	return d, nil
}

// Resolve parses every palette entry.
func (p PaletteConfig) Resolve() (layout.Palette, error) {
	var out layout.Palette
	entries := []struct {
		name string
		hex  string
		dst  *layout.RGB
	}{
		{"header", p.Header, &out.Header},
		{"panel", p.Panel, &out.Panel},
		{"footer", p.Footer, &out.Footer},
		{"body_text", p.BodyText, &out.BodyText},
		{"muted_text", p.MutedText, &out.MutedText},
	}
	for _, e := range entries {
		c, err := layout.ParseHex(e.hex)
		if err != nil {
			return layout.Palette{}, fmt.Errorf("palette.%s: %w", e.name, err)
		}
		*e.dst = c
	}
	return out, nil
}

// footerBandMM is the height of the footer band at the bottom of page 2.
const footerBandMM = 35.0

// Template builds the layout template from the configuration.
func (c *Config) Template() (layout.Template, error) {
	palette, err := c.Palette.Resolve()
	if err != nil {
		return layout.Template{}, rerrors.ConfigError(rerrors.ErrConfigInvalid, err.Error())
	}
	t := layout.DefaultTemplate()
	t.PageWidth = c.Page.WidthMM
	t.PageHeight = c.Page.HeightMM
	t.Margin = c.Page.MarginMM
	t.BottomMargin = c.Page.BottomMarginMM
	t.FooterTop = c.Page.HeightMM - footerBandMM
	t.BarMaxScale = c.Layout.BarMaxScale
	t.BarMaxWidth = c.Layout.BarMaxWidthMM
	t.SummaryWidth = c.Layout.SummaryWidthMM
	t.SummaryFontSize = c.Layout.SummaryFontSize
	t.SummaryMaxLines = c.Layout.SummaryMaxLines
	t.CellSpacing = c.Layout.CellSpacingMM
	t.RowHeight = c.Layout.RowHeightMM
	t.LineHeight = c.Layout.LineHeightMM
	t.Palette = palette
	return t, nil
}
