package batch

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/layout"
	"github.com/inodb/txplot/internal/render"
	"github.com/inodb/txplot/internal/transcript"
)

// Selection picks which feature views are plotted per transcript.
type Selection int

const (
	SelectExons Selection = iota
	SelectCDS
	SelectBoth
)

var selectionNames = map[string]Selection{
	"exons": SelectExons,
	"cds":   SelectCDS,
	"both":  SelectBoth,
}

// ParseSelection accepts "exons", "CDS" or "both", case-insensitively.
func ParseSelection(s string) (Selection, error) {
	sel, ok := selectionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown selection %q: expected exons, CDS or both", s)
	}
	return sel, nil
}

func (s Selection) String() string {
	switch s {
	case SelectCDS:
		return "CDS"
	case SelectBoth:
		return "both"
	default:
		return "exons"
	}
}

// Views returns the views to draw, exons first.
func (s Selection) Views() []transcript.View {
	switch s {
	case SelectCDS:
		return []transcript.View{transcript.ViewCDS}
	case SelectBoth:
		return []transcript.View{transcript.ViewExons, transcript.ViewCDS}
	default:
		return []transcript.View{transcript.ViewExons}
	}
}

// Options configures a batch run.
type Options struct {
	Select    Selection
	Layout    layout.Options // Layout.Color is replaced per view
	ExonColor gg.RGBA
	CDSColor  gg.RGBA
	Format    render.Format
	DPI       int
	OutputDir string // base name; empty selects Transcripts_Plots_dir_RunNN
}

// DefaultOptions mirrors the command-line defaults.
func DefaultOptions() Options {
	return Options{
		Select:    SelectExons,
		Layout:    layout.DefaultOptions(),
		ExonColor: gg.Hex(layout.DefaultExonColor),
		CDSColor:  gg.Hex(layout.DefaultCDSColor),
		Format:    render.FormatPDF,
		DPI:       render.DefaultDPI,
	}
}

func (o Options) color(v transcript.View) gg.RGBA {
	if v == transcript.ViewCDS {
		return o.CDSColor
	}
	return o.ExonColor
}
