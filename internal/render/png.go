package render

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/inodb/txplot/internal/fonts"
	"github.com/inodb/txplot/internal/layout"
)

// PNG rasterises fig at dpi pixels per inch on a white background.
func PNG(w io.Writer, fig *layout.Figure, dpi int) error {
	if dpi <= 0 {
		return fmt.Errorf("invalid dpi %d", dpi)
	}
	c := canvas{box: fig.Bounds(), scale: float64(dpi)}
	width := int(math.Ceil(c.width()))
	height := int(math.Ceil(c.height()))

	ctx := gg.NewContext(width, height)
	defer ctx.Close()
	ctx.ClearWithColor(gg.White)

	for _, r := range fig.Rects {
		ctx.DrawRectangle(c.x(r.X), c.y(r.Y), c.d(r.W), c.d(r.H))
		setColor(ctx, r.Fill)
		if err := ctx.FillPreserve(); err != nil {
			return fmt.Errorf("fill feature: %w", err)
		}
		setColor(ctx, r.Edge)
		ctx.SetLineWidth(c.pt(r.EdgeWidth))
		if err := ctx.Stroke(); err != nil {
			return fmt.Errorf("stroke feature: %w", err)
		}
	}

	for _, l := range fig.Lines {
		setColor(ctx, l.Color)
		ctx.SetLineWidth(c.pt(l.Width))
		if len(l.Dash) > 0 {
			dash := make([]float64, len(l.Dash))
			for i, d := range l.Dash {
				dash[i] = c.pt(d)
			}
			ctx.SetDash(dash...)
		}
		ctx.DrawLine(c.x(l.X1), c.y(l.Y1), c.x(l.X2), c.y(l.Y2))
		err := ctx.Stroke()
		ctx.ClearDash()
		if err != nil {
			return fmt.Errorf("stroke connector: %w", err)
		}
	}

	for _, t := range fig.Texts {
		face, err := fonts.Face(c.pt(t.Size), t.Bold)
		if err != nil {
			return err
		}
		ctx.SetFont(face)
		setColor(ctx, t.Color)
		x := c.x(t.X)
		if t.Anchor == layout.AnchorMiddle {
			x -= face.Advance(t.S) / 2
		}
		ctx.DrawString(t.S, x, c.y(t.Y))
	}

	return ctx.EncodePNG(w)
}

func setColor(ctx *gg.Context, col gg.RGBA) {
	ctx.SetRGBA(col.R, col.G, col.B, col.A)
}
