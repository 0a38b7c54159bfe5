// Package sink renders a scene to image files.
//
// # Overview
//
// A "sink" draws a [Drawable] (normally a [scene.Scene]) through a
// [render.Target] that produces a file format instead of pixels on screen:
//
//   - SVG: vector output written directly
//   - PNG: raster output drawn with fogleman/gg
//   - PDF: the SVG output converted by rsvg-convert
//   - DOT: Graphviz source with nodes pinned at the block positions
//   - Graphviz SVG: the DOT source laid out in-process by go-graphviz
//
// # Frame
//
// The exported frame covers the default 600×400 window area and grows to
// include every block plus padding, so an export shows blocks where they sat
// on screen. [WithSize] fixes the frame to an explicit size at the origin.
//
//	svg := sink.RenderSVG(s, sink.WithPadding(40))
//	png, err := sink.RenderPNG(s, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(s)
//	dot := sink.RenderDOT(s)
//	gv, err := sink.RenderGraphviz(ctx, s)
//
// [scene.Scene]: github.com/matzehuels/blockone/pkg/scene.Scene
package sink
