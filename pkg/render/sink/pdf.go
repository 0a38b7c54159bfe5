package sink

import "github.com/matzehuels/blockone/pkg/render"

// RenderPDF renders d as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d Drawable, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(d, opts...))
}
