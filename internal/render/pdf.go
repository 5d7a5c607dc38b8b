package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/fonts"
	"github.com/inodb/txplot/internal/layout"
)

// PDF writes fig as a single-page vector PDF sized to its bounds, with the
// Go fonts embedded.
func PDF(w io.Writer, fig *layout.Figure) error {
	c := canvas{box: fig.Bounds(), scale: layout.PointsPerInch}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: c.width(), Ht: c.height()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(fonts.Family, "", fonts.TTF(false))
	pdf.AddUTF8FontFromBytes(fonts.Family, "B", fonts.TTF(true))
	pdf.AddPage()

	for _, r := range fig.Rects {
		pdf.SetFillColor(rgb(r.Fill))
		pdf.SetDrawColor(rgb(r.Edge))
		pdf.SetLineWidth(r.EdgeWidth)
		pdf.Rect(c.x(r.X), c.y(r.Y), c.d(r.W), c.d(r.H), "FD")
	}

	for _, l := range fig.Lines {
		pdf.SetDrawColor(rgb(l.Color))
		pdf.SetLineWidth(l.Width)
		pdf.SetDashPattern(l.Dash, 0)
		pdf.Line(c.x(l.X1), c.y(l.Y1), c.x(l.X2), c.y(l.Y2))
	}
	pdf.SetDashPattern([]float64{}, 0)

	for _, t := range fig.Texts {
		style := ""
		if t.Bold {
			style = "B"
		}
		pdf.SetFont(fonts.Family, style, t.Size)
		pdf.SetTextColor(rgb(t.Color))
		x := c.x(t.X)
		if t.Anchor == layout.AnchorMiddle {
			x -= pdf.GetStringWidth(t.S) / 2
		}
		pdf.Text(x, c.y(t.Y), t.S)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

func rgb(c gg.RGBA) (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}
