// Package pkg provides the core libraries for the blockone diagram editor.
//
// # Overview
//
// Blockone places rectangular blocks on a canvas and joins them with curved
// links. The pkg directory is organized into these areas:
//
//  1. [geom] - Points, rectangles and cubic Bezier segments
//  2. [scene] - Blocks, links, keymaps and the interaction state machine
//  3. [editor] - Input focus between the canvas and the help overlay
//  4. [render] - The drawing contract shared by every backend, plus sinks
//     that write SVG, PNG, PDF and DOT files
//  5. [config] - TOML/YAML settings, validation and hot reload
//  6. [script] - Headless event scripts with expectations
//  7. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// Input flows one way and drawing the other:
//
//	window (ebiten) / terminal (bubbletea) / script
//	         ↓  text, keys, mouse, ticks
//	    [editor] package (help overlay or canvas)
//	         ↓
//	    [scene] package (blocks + links)
//	         ↓  FillRect, FillCircle, Line, Cubic, Text
//	    [render].Target (screen, cell grid, SVG, PNG)
//
// # Quick Start
//
// Build a scene by hand and export it:
//
//	import (
//	    "github.com/matzehuels/blockone/pkg/geom"
//	    "github.com/matzehuels/blockone/pkg/render/sink"
//	    "github.com/matzehuels/blockone/pkg/scene"
//	)
//
//	s := scene.New()
//	s.OnMouseMove(geom.Pt(10, 10))
//	s.OnTextInput("n")
//	svg := sink.RenderSVG(s)
//
// The platform adapters live under internal/ and are wired together by
// cmd/blockone.
package pkg
