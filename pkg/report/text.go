package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
)

// Z-score magnitudes for severity coloring.
const (
	zScoreHigh   = 2.0
	zScoreMedium = 1.0
)

const msgNoSegments = "No segments detected"

// TextRenderer writes a summary line and go-pretty tables.
type TextRenderer struct {
	high   *color.Color
	medium *color.Color
	low    *color.Color
	muted  *color.Color
	warn   *color.Color
}

// NewTextRenderer creates a text renderer; colorize toggles ANSI output.
func NewTextRenderer(colorize bool) *TextRenderer {
	r := &TextRenderer{
		high:   color.New(color.FgRed, color.Bold),
		medium: color.New(color.FgYellow),
		low:    color.New(color.FgGreen),
		muted:  color.New(color.FgHiBlack),
		warn:   color.New(color.FgYellow, color.Bold),
	}

	for _, c := range []*color.Color{r.high, r.medium, r.low, r.muted, r.warn} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Render writes the summary, the segment table and, when present, the point labels.
func (r *TextRenderer) Render(w io.Writer, result *density.Result) error {
	parts := []string{r.formatSummary(result.Summary)}

	if result.Summary.ThresholdsOverlap {
		parts = append(parts, r.warn.Sprint("Warning: cluster threshold exceeds gap threshold; distances between them are clustered, not gaps"))
	}

	if len(result.Segments) == 0 {
		parts = append(parts, msgNoSegments)
	} else {
		parts = append(parts, r.formatSegments(result.Segments))
	}

	if len(result.Labels) > 0 {
		parts = append(parts, r.formatLabels(result.Labels))
	}

	_, err := fmt.Fprintln(w, strings.Join(parts, "\n\n"))
	if err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

func (r *TextRenderer) formatSummary(s density.Summary) string {
	counts := []string{
		"Observations: " + humanize.Comma(int64(s.Observations)),
		"Clusters: " + humanize.Comma(int64(s.Clusters)),
		"Gaps: " + humanize.Comma(int64(s.Gaps)),
		"Clustered: " + humanize.Comma(int64(s.ClusteredPoints)),
		"Dropped: " + humanize.Comma(int64(s.DroppedPoints)),
	}

	thresholds := []string{
		fmt.Sprintf("Mean distance: %.2f", s.MeanDistance),
		fmt.Sprintf("Cluster threshold: %.2f", s.ClusterThreshold),
		fmt.Sprintf("Gap threshold: %.2f", s.GapThreshold),
		"Strategy: " + string(s.Strategy),
	}

	return strings.Join(counts, " | ") + "\n" + strings.Join(thresholds, " | ")
}

func (r *TextRenderer) formatSegments(segments []density.Segment) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "Kind", "Start", "End", "Span", "Elements", "Centroid", "Z-Score"})

	for i, seg := range segments {
		tbl.AppendRow(table.Row{
			i + 1,
			string(seg.Kind()),
			humanize.Comma(seg.Start()),
			humanize.Comma(seg.End()),
			formatFloat(seg.SpanLength()),
			humanize.Comma(int64(seg.NumElements())),
			formatFloat(seg.Centroid()),
			r.formatZScore(seg.ZScore()),
		})
	}

	return tbl.Render()
}

func (r *TextRenderer) formatLabels(labels []density.PointLabel) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Value", "Nearest", "Z-Score", "Role"})

	for _, label := range labels {
		if label.Role == density.RoleNeutral {
			continue
		}

		tbl.AppendRow(table.Row{
			humanize.Comma(label.Value),
			formatFloat(label.NearestDistance),
			r.formatZScore(label.ZScore, true),
			string(label.Role),
		})
	}

	if tbl.Length() == 0 {
		return "No attractors or repellers"
	}

	return tbl.Render()
}

func (r *TextRenderer) formatZScore(z float64, ok bool) string {
	if !ok {
		return r.muted.Sprint("n/a")
	}

	text := strconv.FormatFloat(z, 'f', 3, 64)

	switch magnitude := math.Abs(z); {
	case magnitude >= zScoreHigh:
		return r.high.Sprint(text)
	case magnitude >= zScoreMedium:
		return r.medium.Sprint(text)
	default:
		return r.low.Sprint(text)
	}
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
