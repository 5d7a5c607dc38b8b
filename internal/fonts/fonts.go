// Package fonts provides the embedded Go fonts used for every output format,
// so that text measured during layout matches the text that is painted.
package fonts

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the font family name used in SVG and PDF output.
const Family = "Go"

// FallbackFamily lists fonts used by SVG viewers that lack the Go fonts.
const FallbackFamily = `'Go', 'DejaVu Sans', 'Helvetica', 'Arial', sans-serif`

var (
	sourcesOnce sync.Once
	regular     *text.FontSource
	bold        *text.FontSource
	sourcesErr  error
)

func loadSources() {
	regular, sourcesErr = text.NewFontSource(goregular.TTF)
	if sourcesErr != nil {
		sourcesErr = fmt.Errorf("load Go Regular: %w", sourcesErr)
		return
	}
	bold, sourcesErr = text.NewFontSource(gobold.TTF)
	if sourcesErr != nil {
		sourcesErr = fmt.Errorf("load Go Bold: %w", sourcesErr)
	}
}

// TTF returns the raw TrueType data for the regular or bold face.
func TTF(isBold bool) []byte {
	if isBold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Face returns a face of the given size in points (pixels at 72 dpi).
func Face(size float64, isBold bool) (text.Face, error) {
	sourcesOnce.Do(loadSources)
	if sourcesErr != nil {
		return nil, sourcesErr
	}
	if isBold {
		return bold.Face(size), nil
	}
	return regular.Face(size), nil
}

// Extent is the measured size of a line of text, in points.
type Extent struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Measure returns the extent of s set at size points.
func Measure(s string, size float64, isBold bool) (Extent, error) {
	face, err := Face(size, isBold)
	if err != nil {
		return Extent{}, err
	}
	m := face.Metrics()
	return Extent{
		Width:   face.Advance(s),
		Ascent:  m.Ascent,
		Descent: m.Descent,
	}, nil
}
