// Package layout places the scaled features of a transcript on a figure:
// feature boxes, dashed intron connectors and labels, with the canvas size
// optionally derived from the data extent.
package layout

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/fonts"
	"github.com/inodb/txplot/internal/transcript"
)

const (
	// XPadding is added on both sides of the data extent, in plot units.
	XPadding = 10
	// MaxWidth caps dynamically resized figures, in inches.
	MaxWidth = 20.0

	fullScaleUnitsPerInch  = 1000.0
	compressedUnitsPerInch = 1.0
)

// Data-space geometry. The y axis spans [0, dataYMax].
const (
	dataYMax         = 2.0
	rectY            = 0.5
	rectHeight       = 0.3
	summaryOffset    = 0.40
	endpointOffset   = 0.05
	endpointFontSize = 10.0
	edgeWidth        = 1.0
	connectorWidth   = 1.5
)

// Axes box as fractions of the figure, measured from the bottom-left.
const (
	axesLeft   = 0.08
	axesRight  = 0.98
	axesBottom = 0.12
	axesTop    = 0.60
)

var connectorDash = []float64{1.5, 1.5}

// ErrNoFeatures is returned when there is nothing to draw.
var ErrNoFeatures = errors.New("no features to draw")

// Options controls figure geometry and decoration.
type Options struct {
	Mode           transcript.Mode
	Width          float64 // inches
	Height         float64 // inches
	DynamicResize  bool
	SummaryLabel   bool
	EndpointLabels bool
	FontSize       float64 // summary label size in points
	Color          gg.RGBA // feature fill
}

// DefaultOptions returns a 10x8 inch compressed-mode figure with the
// summary label shown.
func DefaultOptions() Options {
	return Options{
		Mode:         transcript.ModeCompressed,
		Width:        10,
		Height:       8,
		SummaryLabel: true,
		FontSize:     18,
		Color:        gg.Hex(DefaultExonColor),
	}
}

// DynamicWidth converts a data extent to a figure width in inches:
// 1000 plot units per inch in full-scale mode, 1 per inch when compressed.
// The result is never below requested and never above MaxWidth.
func DynamicWidth(xmin, xmax, requested float64, mode transcript.Mode) float64 {
	conv := compressedUnitsPerInch
	if mode == transcript.ModeFullScale {
		conv = fullScaleUnitsPerInch
	}
	w := (xmax - xmin + 2*XPadding) / conv
	return min(max(w, requested), MaxWidth)
}

// Plot scales the features of view and lays them out.
func Plot(t *transcript.Transcript, view transcript.View, opts Options) (*Figure, error) {
	features := t.Features(view)
	if len(features) == 0 {
		return nil, fmt.Errorf("%s %s: %w", t.ID, view.Noun(), ErrNoFeatures)
	}
	scaled := transcript.Scale(features, opts.Mode)
	label := transcript.SummaryLabel(t.GeneName, t.ID, view, features)
	return Build(view, scaled, label, opts)
}

// axes maps data coordinates into figure inches.
type axes struct {
	left, top, width, height float64
	xmin, xmax               float64
}

func (a axes) x(v float64) float64 {
	return a.left + (v-a.xmin)/(a.xmax-a.xmin)*a.width
}

func (a axes) y(v float64) float64 {
	return a.top + (1-v/dataYMax)*a.height
}

// Build lays out already scaled features. label is drawn above the first
// feature when opts.SummaryLabel is set.
func Build(view transcript.View, features []transcript.ScaledFeature, label string, opts Options) (*Figure, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}

	xmin, xmax := transcript.Extent(features)

	fig := &Figure{Width: opts.Width, Height: opts.Height}
	if opts.DynamicResize {
		fig.Width = DynamicWidth(xmin, xmax, opts.Width, opts.Mode)
	}

	ax := axes{
		left:   fig.Width * axesLeft,
		top:    fig.Height * (1 - axesTop),
		width:  fig.Width * (axesRight - axesLeft),
		height: fig.Height * (axesTop - axesBottom),
		xmin:   xmin - XPadding,
		xmax:   xmax + XPadding,
	}

	n := len(features)
	for _, f := range features {
		x0, x1 := ax.x(f.ScaledStart), ax.x(f.ScaledEnd)
		top, bottom := ax.y(rectY+rectHeight), ax.y(rectY)
		fig.Rects = append(fig.Rects, Rect{
			X: x0, Y: top, W: x1 - x0, H: bottom - top,
			Fill:      opts.Color,
			Edge:      edgeColor,
			EdgeWidth: edgeWidth,
		})
	}

	midline := ax.y(rectY + rectHeight/2)
	for i := 1; i < n; i++ {
		fig.Lines = append(fig.Lines, Line{
			X1: ax.x(features[i-1].ScaledEnd), Y1: midline,
			X2: ax.x(features[i].ScaledStart), Y2: midline,
			Color: connectorColor,
			Width: connectorWidth,
			Dash:  connectorDash,
		})
	}

	if opts.EndpointLabels {
		for i, f := range features {
			s := transcript.EndpointLabel(view, i, n)
			if s == "" {
				continue
			}
			center := (f.ScaledStart + f.ScaledEnd) / 2
			txt, err := newText(s, ax.x(center), ax.y(rectY+rectHeight+endpointOffset), endpointFontSize, false, AnchorMiddle)
			if err != nil {
				return nil, err
			}
			fig.Texts = append(fig.Texts, txt)
		}
	}

	if opts.SummaryLabel && label != "" {
		txt, err := newText(label, ax.x(features[0].ScaledStart), ax.y(rectY+rectHeight+summaryOffset), opts.FontSize, true, AnchorStart)
		if err != nil {
			return nil, err
		}
		fig.Texts = append(fig.Texts, txt)
	}

	return fig, nil
}

// newText measures s and places it so that its lowest extent sits on bottom.
func newText(s string, x, bottom, size float64, bold bool, anchor Anchor) (Text, error) {
	ext, err := fonts.Measure(s, size, bold)
	if err != nil {
		return Text{}, fmt.Errorf("measure text: %w", err)
	}
	descent := ext.Descent / PointsPerInch
	return Text{
		X:       x,
		Y:       bottom - descent,
		S:       s,
		Size:    size,
		Bold:    bold,
		Anchor:  anchor,
		Color:   labelColor,
		Width:   ext.Width / PointsPerInch,
		Ascent:  ext.Ascent / PointsPerInch,
		Descent: descent,
	}, nil
}
