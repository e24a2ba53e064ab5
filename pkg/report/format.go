// Package report renders density analysis results in the supported output
// formats and validates serialized results against the segment schema.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
	"github.com/Sumatoshi-tech/lyagushka/pkg/report/plotpage"
)

const (
	// FormatJSON is the pretty-printed JSON array of segment records.
	FormatJSON = "json"

	// FormatYAML is the YAML sequence of segment records.
	FormatYAML = "yaml"

	// FormatYMLAlias is a short CLI alias for YAML output.
	FormatYMLAlias = "yml"

	// FormatText is the human-readable table for terminal display.
	FormatText = "text"

	// FormatPlot is a standalone HTML page with interactive charts.
	FormatPlot = "plot"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Renderer writes an analysis result to w.
type Renderer interface {
	Render(w io.Writer, result *density.Result) error
}

// Options tunes the renderers that support styling.
type Options struct {
	// Color enables ANSI colors in text output.
	Color bool
	// Theme selects the plot color theme.
	Theme plotpage.Theme
}

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == FormatYMLAlias {
		return FormatYAML
	}

	return normalized
}

// Formats returns the canonical output formats.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatText, FormatPlot}
}

// ValidateFormat checks whether a format is supported and returns its canonical name.
func ValidateFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(Formats(), normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string, opts Options) (Renderer, error) {
	normalized, err := ValidateFormat(format)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case FormatYAML:
		return YAMLRenderer{}, nil
	case FormatText:
		return NewTextRenderer(opts.Color), nil
	case FormatPlot:
		return PlotRenderer{Theme: opts.Theme}, nil
	default:
		return JSONRenderer{}, nil
	}
}
