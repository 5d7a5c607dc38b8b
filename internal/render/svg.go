package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/fonts"
	"github.com/inodb/txplot/internal/layout"
)

// SVG returns fig as a standalone SVG document in points.
func SVG(fig *layout.Figure) []byte {
	c := canvas{box: fig.Bounds(), scale: layout.PointsPerInch}
	w, h := c.width(), c.height()

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2fpt" height="%.2fpt">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="#ffffff"/>`+"\n", w, h)

	for _, r := range fig.Rects {
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s stroke="%s" stroke-width="%.2f"/>`+"\n",
			c.x(r.X), c.y(r.Y), c.d(r.W), c.d(r.H),
			hexColor(r.Fill), opacityAttr("fill-opacity", r.Fill),
			hexColor(r.Edge), c.pt(r.EdgeWidth))
	}

	for _, l := range fig.Lines {
		fmt.Fprintf(&buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
			c.x(l.X1), c.y(l.Y1), c.x(l.X2), c.y(l.Y2),
			hexColor(l.Color), c.pt(l.Width), dashAttr(c, l.Dash))
	}

	for _, t := range fig.Texts {
		anchor := "start"
		if t.Anchor == layout.AnchorMiddle {
			anchor = "middle"
		}
		weight := ""
		if t.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f"%s text-anchor="%s" fill="%s">%s</text>`+"\n",
			c.x(t.X), c.y(t.Y), fonts.FallbackFamily, t.Size, weight, anchor,
			hexColor(t.Color), escapeXML(t.S))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func opacityAttr(name string, c gg.RGBA) string {
	if c.A >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, name, c.A)
}

func dashAttr(c canvas, dash []float64) string {
	if len(dash) == 0 {
		return ""
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = strconv.FormatFloat(c.pt(d), 'f', 2, 64)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
