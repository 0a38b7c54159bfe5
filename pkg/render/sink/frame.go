package sink

import (
	"image/color"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
)

// Minimum frame, matching the default window.
const (
	MinWidth       = 600.0
	MinHeight      = 400.0
	DefaultPadding = 20.0
)

// Drawable is anything that can draw itself and report its extent.
type Drawable interface {
	Render(t render.Target)
	Bounds() geom.Rect
}

// Option configures a sink.
type Option func(*options)

type options struct {
	size       *geom.Size
	padding    float64
	background color.Color
	scale      float64
}

// WithSize fixes the frame to (0, 0, w, h).
func WithSize(w, h float64) Option {
	return func(o *options) { o.size = &geom.Size{W: w, H: h} }
}

// WithPadding sets the margin kept around the blocks.
func WithPadding(p float64) Option { return func(o *options) { o.padding = max(p, 0) } }

// WithBackground sets the background fill. Nil leaves it transparent.
func WithBackground(c color.Color) Option { return func(o *options) { o.background = c } }

// WithScale sets the PNG pixel density (default 1). Other sinks ignore it.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

func newOptions(opts []Option) options {
	o := options{padding: DefaultPadding, background: color.White, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Frame returns the area a sink exports for d.
func Frame(d Drawable, opts ...Option) geom.Rect {
	return newOptions(opts).frame(d)
}

func (o options) frame(d Drawable) geom.Rect {
	if o.size != nil {
		return geom.Rect{W: o.size.W, H: o.size.H}
	}
	frame := geom.R(0, 0, MinWidth, MinHeight)
	if b := d.Bounds(); b != (geom.Rect{}) {
		frame = frame.Union(b.Inset(-o.padding))
	}
	return frame
}
