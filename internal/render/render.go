// Package render paints a laid-out figure as SVG, PNG or PDF. All three
// formats are cropped to the figure's tight bounds.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/layout"
)

// Format is an output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// DefaultDPI is the raster resolution used when none is given.
const DefaultDPI = 300

// Formats lists the supported formats in the order they are documented.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: expected svg, png or pdf", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// Write renders fig to w. dpi only affects PNG output.
func Write(w io.Writer, fig *layout.Figure, format Format, dpi int) error {
	switch format {
	case FormatSVG:
		_, err := w.Write(SVG(fig))
		return err
	case FormatPNG:
		return PNG(w, fig, dpi)
	case FormatPDF:
		return PDF(w, fig)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Save renders fig into a new file at path.
func Save(path string, fig *layout.Figure, format Format, dpi int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, fig, format, dpi); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// canvas converts figure inches to output units relative to the crop box.
type canvas struct {
	box   layout.Box
	scale float64 // output units per inch
}

func (c canvas) x(v float64) float64 { return (v - c.box.MinX) * c.scale }
func (c canvas) y(v float64) float64 { return (v - c.box.MinY) * c.scale }
func (c canvas) d(v float64) float64 { return v * c.scale }

// pt converts a length in points to output units.
func (c canvas) pt(v float64) float64 { return v / layout.PointsPerInch * c.scale }

func (c canvas) width() float64  { return c.d(c.box.W()) }
func (c canvas) height() float64 { return c.d(c.box.H()) }

func channel(v float64) int {
	return int(math.Round(min(max(v, 0), 1) * 255))
}

func hexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}
