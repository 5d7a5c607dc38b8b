package layout

import (
	"math"

	"github.com/gogpu/gg"
)

// PointsPerInch converts figure inches to PostScript points.
const PointsPerInch = 72.0

// TrimPad is the margin kept around the drawn content, in inches.
const TrimPad = 0.05

// Figure is a drawing in figure coordinates: inches, origin at the top-left
// corner, y growing downwards. Sinks paint Rects, then Lines, then Texts.
type Figure struct {
	Width  float64
	Height float64
	Rects  []Rect
	Lines  []Line
	Texts  []Text
}

// Rect is a filled feature box with an outline.
type Rect struct {
	X, Y, W, H float64
	Fill       gg.RGBA
	Edge       gg.RGBA
	EdgeWidth  float64 // points
}

// Line is a stroked segment, dashed when Dash is non-empty.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          gg.RGBA
	Width          float64   // points
	Dash           []float64 // on/off lengths in points
}

// Anchor is the horizontal alignment of a Text relative to its X.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
)

// Text is a single line of text. Y is the baseline.
// Width, Ascent and Descent are measured in inches at layout time.
type Text struct {
	X, Y    float64
	S       string
	Size    float64 // points
	Bold    bool
	Anchor  Anchor
	Color   gg.RGBA
	Width   float64
	Ascent  float64
	Descent float64
}

// Left returns the x coordinate of the start of the text.
func (t Text) Left() float64 {
	if t.Anchor == AnchorMiddle {
		return t.X - t.Width/2
	}
	return t.X
}

// Box is an axis-aligned rectangle in figure inches.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// W returns the box width.
func (b Box) W() float64 { return b.MaxX - b.MinX }

// H returns the box height.
func (b Box) H() float64 { return b.MaxY - b.MinY }

type bounds struct {
	box   Box
	isSet bool
}

func (b *bounds) add(minX, minY, maxX, maxY float64) {
	if !b.isSet {
		b.box = Box{minX, minY, maxX, maxY}
		b.isSet = true
		return
	}
	b.box.MinX = math.Min(b.box.MinX, minX)
	b.box.MinY = math.Min(b.box.MinY, minY)
	b.box.MaxX = math.Max(b.box.MaxX, maxX)
	b.box.MaxY = math.Max(b.box.MaxY, maxY)
}

// Bounds returns the tight bounding box of everything drawn, padded by
// TrimPad on each side. It may extend past the nominal figure size when a
// label is wider than the figure. An empty figure yields the full figure.
func (f *Figure) Bounds() Box {
	var b bounds
	for _, r := range f.Rects {
		half := r.EdgeWidth / PointsPerInch / 2
		b.add(r.X-half, r.Y-half, r.X+r.W+half, r.Y+r.H+half)
	}
	for _, l := range f.Lines {
		half := l.Width / PointsPerInch / 2
		b.add(math.Min(l.X1, l.X2), math.Min(l.Y1, l.Y2)-half,
			math.Max(l.X1, l.X2), math.Max(l.Y1, l.Y2)+half)
	}
	for _, t := range f.Texts {
		left := t.Left()
		b.add(left, t.Y-t.Ascent, left+t.Width, t.Y+t.Descent)
	}

	if !b.isSet {
		return Box{MaxX: f.Width, MaxY: f.Height}
	}
	return Box{
		MinX: b.box.MinX - TrimPad,
		MinY: b.box.MinY - TrimPad,
		MaxX: b.box.MaxX + TrimPad,
		MaxY: b.box.MaxY + TrimPad,
	}
}
