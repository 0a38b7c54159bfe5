package sink

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/geom"
)

// RenderPNG rasterizes d with fogleman/gg.
func RenderPNG(d Drawable, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	frame := o.frame(d)

	w, h := int(frame.W*o.scale+0.5), int(frame.H*o.scale+0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty frame %.0fx%.0f", frame.W, frame.H)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(o.scale, o.scale)
	dc.Translate(-frame.Min.X, -frame.Min.Y)

	t := &pngTarget{dc: dc}
	if o.background != nil {
		t.FillRect(frame, o.background)
	}
	d.Render(t)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// pngTarget draws onto a gg context.
type pngTarget struct {
	dc *gg.Context
}

func (t *pngTarget) FillRect(r geom.Rect, c color.Color) {
	t.dc.DrawRectangle(r.Min.X, r.Min.Y, r.W, r.H)
	t.dc.SetColor(c)
	t.dc.Fill()
}

func (t *pngTarget) FillCircle(center geom.Point, radius float64, c color.Color) {
	t.dc.DrawCircle(center.X, center.Y, radius)
	t.dc.SetColor(c)
	t.dc.Fill()
}

func (t *pngTarget) Line(a, b geom.Point, width float64, c color.Color) {
	t.dc.SetLineWidth(width)
	t.dc.SetColor(c)
	t.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	t.dc.Stroke()
}

func (t *pngTarget) Cubic(c geom.Cubic, width float64, col color.Color) {
	t.dc.SetLineWidth(width)
	t.dc.SetColor(col)
	t.dc.MoveTo(c.P0.X, c.P0.Y)
	t.dc.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	t.dc.Stroke()
}

// Text anchors at the top-left like the other targets; gg draws from the
// baseline.
func (t *pngTarget) Text(p geom.Point, s string, c color.Color) {
	t.dc.SetColor(c)
	t.dc.DrawString(s, p.X, p.Y+t.dc.FontHeight())
}
