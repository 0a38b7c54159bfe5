package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockone/pkg/scene"
)

// pointsPerInch converts canvas units to the inches Graphviz uses for node
// sizes. Positions stay in points via the inputscale graph attribute.
const pointsPerInch = 72.0

// Graph is a diagram whose blocks and links can be listed.
type Graph interface {
	Blocks() []scene.Block
	Links() []scene.Link
	Style() scene.Style
}

// RenderDOT writes g as Graphviz DOT source with every node pinned where the
// user placed it. Blocks are labelled B1, B2, ... in creation order; pending
// links are left out. The graph selects the neato engine with positions in
// points, so any Graphviz command ("dot -Tsvg") keeps the placement.
// [RenderGraphviz] does the same in-process.
func RenderDOT(g Graph) []byte {
	st := g.Style()

	var buf bytes.Buffer
	buf.WriteString("digraph blockone {\n")
	buf.WriteString("  graph [layout=neato, inputscale=72, bgcolor=\"transparent\", splines=true];\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, fillcolor=%q, color=%q, penwidth=%.2f];\n",
		hex(st.Fill), hex(st.Border), st.BorderWidth)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=%.2f, arrowhead=none];\n", hex(st.Link), st.LinkWidth)
	buf.WriteString("\n")

	for i, b := range g.Blocks() {
		center := b.Bounds().Center()
		attrs := fmt.Sprintf("label=\"B%d\", pos=\"%.2f,%.2f!\", width=%.3f, height=%.3f",
			i+1, center.X, -center.Y, b.Width/pointsPerInch, b.Height/pointsPerInch)
		if b.Focused {
			attrs += fmt.Sprintf(", color=%q", hex(st.BorderFocused))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID.String(), attrs)
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		if !l.Completed() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.From.String(), l.To.String())
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

func hex(c color.Color) string {
	if c == nil {
		return "transparent"
	}
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
