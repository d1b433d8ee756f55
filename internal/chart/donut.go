// Package chart renders a trait distribution as a donut chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"holland-test/internal/domain"
)

const Title = "Aptitude Based Personality Type Distribution"

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

var ErrUnsupportedFormat = errors.New("unsupported chart format")

// ParseFormat accepts "svg" or "png" in any case, or a file name ending in either.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == string(FormatSVG) || strings.HasSuffix(s, ".svg"):
		return FormatSVG, nil
	case s == string(FormatPNG) || strings.HasSuffix(s, ".png"):
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the rendered output.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// SliceLabel is the text drawn on a slice, e.g. "Realistic 34.5%".
func SliceLabel(s domain.Slice) string {
	return fmt.Sprintf("%s %.1f%%", s.Name, s.Percentage)
}

// RenderDonut writes the distribution as a ring chart in the given format.
func RenderDonut(w io.Writer, dist domain.Distribution, format Format) error {
	if len(dist.Slices) == 0 || dist.Total <= 0 {
		return errors.New("distribution has no scored traits")
	}
	values := make([]gochart.Value, 0, len(dist.Slices))
	for _, s := range dist.Slices {
		if s.Percentage <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: SliceLabel(s),
			Value: s.Percentage,
		})
	}

	title := Title
	if dist.Partial {
		title += " (partial)"
	}
	donut := gochart.DonutChart{
		Title:  title,
		Width:  640,
		Height: 640,
		Values: values,
	}

	var provider gochart.RendererProvider
	switch format {
	case FormatSVG:
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := donut.Render(provider, w); err != nil {
		return fmt.Errorf("render donut: %w", err)
	}
	return nil
}

// TextRing renders the distribution for a terminal, one bar per slice.
func TextRing(dist domain.Distribution, width int) string {
	if width <= 0 {
		width = 40
	}
	nameWidth := 0
	for _, s := range dist.Slices {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}

	var b strings.Builder
	b.WriteString(Title)
	if dist.Partial {
		b.WriteString(" (partial)")
	}
	b.WriteString("\n")
	for _, s := range dist.Slices {
		filled := int(math.Round(s.Percentage / 100 * float64(width)))
		b.WriteString(fmt.Sprintf("%-*s %s%s %5.1f%%\n",
			nameWidth, s.Name,
			strings.Repeat("#", filled), strings.Repeat(".", width-filled),
			s.Percentage,
		))
	}
	return b.String()
}
