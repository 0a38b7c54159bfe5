// Package render defines the drawing contract between the scene and the
// platform backends.
//
// # Overview
//
// The scene decides what geometry to draw; a [Target] decides how to put it
// on screen. Targets only have to implement five primitives:
//
//   - FillRect: axis-aligned filled rectangle
//   - FillCircle: filled disc
//   - Line: straight segment with a stroke width
//   - Cubic: cubic Bezier segment with a stroke width
//   - Text: a single line of text anchored at its top-left corner
//
// Composite shapes are built on top of those primitives by this package, so
// every backend renders them the same way:
//
//	render.RoundedRectWithBorder(t, rect, 5, 0.5, fill, border)
//
// # Backends
//
// Backends live next to the platform they talk to:
//   - [sink]: SVG, PNG (fogleman/gg) and PDF exports
//   - internal/window: ebiten desktop window
//   - internal/term: bubbletea terminal canvas
//
// [Recorder] is an in-memory backend that captures draw calls; tests use it to
// assert on what the scene asked for without rasterizing anything.
//
// # Format Conversion
//
// [ToPDF] converts an SVG document to PDF using the external rsvg-convert
// tool (from librsvg).
//
// [sink]: github.com/matzehuels/blockone/pkg/render/sink
package render
