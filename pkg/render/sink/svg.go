package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockone/pkg/geom"
)

// Text metrics for <text> elements.
const (
	svgFontSize = 12.0
	svgFont     = "monospace"
)

// RenderSVG renders d as a standalone SVG document.
func RenderSVG(d Drawable, opts ...Option) []byte {
	o := newOptions(opts)
	frame := o.frame(d)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.Min.X, frame.Min.Y, frame.W, frame.H, frame.W, frame.H)

	t := &svgTarget{buf: &buf}
	if o.background != nil {
		t.FillRect(frame, o.background)
	}
	d.Render(t)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// svgTarget writes one element per primitive.
type svgTarget struct {
	buf *bytes.Buffer
}

func (t *svgTarget) FillRect(r geom.Rect, c color.Color) {
	fmt.Fprintf(t.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n",
		r.Min.X, r.Min.Y, r.W, r.H, paint("fill", c))
}

func (t *svgTarget) FillCircle(center geom.Point, radius float64, c color.Color) {
	fmt.Fprintf(t.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n",
		center.X, center.Y, radius, paint("fill", c))
}

func (t *svgTarget) Line(a, b geom.Point, width float64, c color.Color) {
	fmt.Fprintf(t.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="%.2f" %s/>`+"\n",
		a.X, a.Y, b.X, b.Y, width, paint("stroke", c))
}

func (t *svgTarget) Cubic(c geom.Cubic, width float64, col color.Color) {
	fmt.Fprintf(t.buf, `  <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke-width="%.2f" %s/>`+"\n",
		c.P0.X, c.P0.Y, c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y, width, paint("stroke", col))
}

func (t *svgTarget) Text(p geom.Point, s string, c color.Color) {
	fmt.Fprintf(t.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" dominant-baseline="hanging" xml:space="preserve" %s>`,
		p.X, p.Y, svgFont, svgFontSize, paint("fill", c))
	_ = xml.EscapeText(t.buf, []byte(s))
	t.buf.WriteString("</text>\n")
}

// paint formats a fill or stroke attribute, adding an opacity attribute for
// translucent colors.
func paint(attr string, c color.Color) string {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return fmt.Sprintf(`%s="none"`, attr)
	}
	col, _ := colorful.MakeColor(c)
	if a == 0xffff {
		return fmt.Sprintf(`%s="%s"`, attr, col.Hex())
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%.3f"`, attr, col.Hex(), attr, float64(a)/0xffff)
}
