package render

import (
	"image/color"

	"github.com/matzehuels/blockone/pkg/geom"
)

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillCircle
	OpLine
	OpCubic
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "rect"
	case OpFillCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpCubic:
		return "cubic"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Rect   geom.Rect  // OpFillRect
	Center geom.Point // OpFillCircle
	Radius float64    // OpFillCircle
	A, B   geom.Point // OpLine; A is also the anchor for OpText
	Curve  geom.Cubic // OpCubic
	Width  float64    // OpLine, OpCubic
	Text   string     // OpText
	Color  color.Color
}

// Recorder is a Target that keeps every draw call in order.
// The zero value is ready to use.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) FillCircle(center geom.Point, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: c})
}

func (r *Recorder) Line(a, b geom.Point, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, A: a, B: b, Width: width, Color: c})
}

func (r *Recorder) Cubic(curve geom.Cubic, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCubic, Curve: curve, Width: width, Color: c})
}

func (r *Recorder) Text(p geom.Point, s string, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, A: p, Text: s, Color: c})
}

// Filter returns the recorded ops of the given kind, in draw order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
