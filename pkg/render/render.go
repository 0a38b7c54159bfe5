package render

import (
	"image/color"

	"github.com/matzehuels/blockone/pkg/geom"
)

// Target is a drawing surface. Implementations must not retain the values
// they are given beyond the call.
type Target interface {
	// FillRect fills r with c.
	FillRect(r geom.Rect, c color.Color)
	// FillCircle fills a disc of the given radius around center.
	FillCircle(center geom.Point, radius float64, c color.Color)
	// Line strokes the segment a-b with the given width.
	Line(a, b geom.Point, width float64, c color.Color)
	// Cubic strokes the Bezier curve with the given width.
	Cubic(curve geom.Cubic, width float64, c color.Color)
	// Text draws s with its top-left corner at p.
	Text(p geom.Point, s string, c color.Color)
}

// RoundedRect fills r with rounded corners by composing four corner discs and
// two overlapping rectangles. A radius larger than half the shorter side is
// clamped; a non-positive radius draws a plain rectangle.
func RoundedRect(t Target, r geom.Rect, radius float64, c color.Color) {
	radius = min(radius, r.W/2, r.H/2)
	if radius <= 0 {
		t.FillRect(r, c)
		return
	}
	x, y, w, h := r.Min.X, r.Min.Y, r.W, r.H
	t.FillCircle(geom.Pt(x+radius, y+radius), radius, c)
	t.FillCircle(geom.Pt(x+w-radius, y+radius), radius, c)
	t.FillCircle(geom.Pt(x+radius, y+h-radius), radius, c)
	t.FillCircle(geom.Pt(x+w-radius, y+h-radius), radius, c)
	t.FillRect(geom.R(x+radius, y, w-2*radius, h), c)
	t.FillRect(geom.R(x, y+radius, w, h-2*radius), c)
}

// RoundedRectWithBorder draws the border as a larger rounded rectangle and the
// body on top of it, so the border shows as a ring of width border.
func RoundedRectWithBorder(t Target, r geom.Rect, radius, border float64, fill, stroke color.Color) {
	RoundedRect(t, r.Inset(-border), radius+border, stroke)
	RoundedRect(t, r, radius, fill)
}

// RectBorder strokes the four edges of r.
func RectBorder(t Target, r geom.Rect, width float64, c color.Color) {
	tl := r.Min
	tr := geom.Pt(r.Min.X+r.W, r.Min.Y)
	br := r.Max()
	bl := geom.Pt(r.Min.X, r.Min.Y+r.H)
	t.Line(tl, tr, width, c)
	t.Line(tr, br, width, c)
	t.Line(br, bl, width, c)
	t.Line(bl, tl, width, c)
}
