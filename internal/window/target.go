package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/matzehuels/blockone/pkg/geom"
)

// Debug font cell size.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// curveSegments is the number of line segments per link curve.
const curveSegments = 32

// target draws render primitives onto the screen image.
type target struct {
	dst *ebiten.Image

	// Debug text is always white; strings are rendered once and tinted
	// at draw time.
	text map[string]*ebiten.Image
}

func newTarget() *target {
	return &target{text: make(map[string]*ebiten.Image)}
}

func (t *target) FillRect(r geom.Rect, c color.Color) {
	vector.DrawFilledRect(t.dst, float32(r.Min.X), float32(r.Min.Y), float32(r.W), float32(r.H), c, true)
}

func (t *target) FillCircle(center geom.Point, radius float64, c color.Color) {
	vector.DrawFilledCircle(t.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (t *target) Line(a, b geom.Point, width float64, c color.Color) {
	vector.StrokeLine(t.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

func (t *target) Cubic(curve geom.Cubic, width float64, c color.Color) {
	pts := curve.Flatten(curveSegments)
	for i := 1; i < len(pts); i++ {
		t.Line(pts[i-1], pts[i], width, c)
	}
}

func (t *target) Text(p geom.Point, s string, c color.Color) {
	img, ok := t.text[s]
	if !ok {
		img = ebiten.NewImage(max(len(s), 1)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrintAt(img, s, 0, 0)
		t.text[s] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleWithColor(c)
	t.dst.DrawImage(img, op)
}
