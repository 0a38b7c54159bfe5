package term

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockone/pkg/geom"
)

// Glyphs used for strokes.
const (
	glyphLine  = '·'
	glyphCurve = '•'
	glyphDot   = '●'
)

// curveSegments is the number of line segments per link curve.
const curveSegments = 32

type cell struct {
	ch rune
	fg color.Color
	bg color.Color
}

// Grid is a render.Target that rasterizes primitives onto terminal cells.
// A cell covers CellW×CellH world units; fills color every cell they
// overlap, strokes and text set glyphs.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float64
	cells        []cell
}

// NewGrid creates a blank grid.
func NewGrid(cols, rows int, cellW, cellH float64) *Grid {
	g := &Grid{CellW: cellW, CellH: cellH}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid dimensions and clears it.
func (g *Grid) Resize(cols, rows int) {
	g.Cols, g.Rows = max(cols, 0), max(rows, 0)
	g.cells = make([]cell, g.Cols*g.Rows)
	g.Clear()
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cell{ch: ' '}
	}
}

// At returns the glyph and colors of a cell. Out-of-range cells are blank.
func (g *Grid) At(col, row int) (ch rune, fg, bg color.Color) {
	c := g.cell(col, row)
	if c == nil {
		return ' ', nil, nil
	}
	return c.ch, c.fg, c.bg
}

// CellOf maps a world point to the cell containing it.
func (g *Grid) CellOf(p geom.Point) (col, row int) {
	return int(math.Floor(p.X / g.CellW)), int(math.Floor(p.Y / g.CellH))
}

// PointOf maps a cell to the world point at its top-left corner.
func (g *Grid) PointOf(col, row int) geom.Point {
	return geom.Pt(float64(col)*g.CellW, float64(row)*g.CellH)
}

func (g *Grid) cell(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return nil
	}
	return &g.cells[row*g.Cols+col]
}

func (g *Grid) FillRect(r geom.Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c0, r0 := g.CellOf(r.Min)
	c1 := int(math.Ceil((r.Min.X+r.W)/g.CellW)) - 1
	r1 := int(math.Ceil((r.Min.Y+r.H)/g.CellH)) - 1
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.fill(col, row, c)
		}
	}
}

func (g *Grid) FillCircle(center geom.Point, radius float64, c color.Color) {
	// Circles smaller than a cell would vanish under the overlap rule;
	// mark the cell under the center instead.
	if radius < math.Min(g.CellW, g.CellH)/2 {
		if cl := g.cell(g.CellOf(center)); cl != nil && radius > 0 {
			cl.ch, cl.fg = glyphDot, c
		}
		return
	}
	c0, r0 := g.CellOf(center.Sub(geom.Pt(radius, radius)))
	c1, r1 := g.CellOf(center.Add(geom.Pt(radius, radius)))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			mid := g.PointOf(col, row).Add(geom.Pt(g.CellW/2, g.CellH/2))
			if math.Hypot(mid.X-center.X, mid.Y-center.Y) <= radius {
				g.fill(col, row, c)
			}
		}
	}
}

func (g *Grid) Line(a, b geom.Point, _ float64, c color.Color) {
	g.stroke(a, b, glyphLine, c)
}

func (g *Grid) Cubic(curve geom.Cubic, _ float64, c color.Color) {
	pts := curve.Flatten(curveSegments)
	for i := 1; i < len(pts); i++ {
		g.stroke(pts[i-1], pts[i], glyphCurve, c)
	}
}

func (g *Grid) Text(p geom.Point, s string, c color.Color) {
	col, row := g.CellOf(p)
	for _, r := range s {
		if cl := g.cell(col, row); cl != nil {
			cl.ch, cl.fg = r, c
		}
		col++
	}
}

func (g *Grid) fill(col, row int, c color.Color) {
	if cl := g.cell(col, row); cl != nil {
		*cl = cell{ch: ' ', bg: c}
	}
}

// stroke marks every cell the segment passes through, sampling at half a
// cell.
func (g *Grid) stroke(a, b geom.Point, glyph rune, c color.Color) {
	step := math.Min(g.CellW, g.CellH) / 2
	n := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y) / step))
	for i := 0; i <= n; i++ {
		t := 1.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		if cl := g.cell(g.CellOf(a.Lerp(b, t))); cl != nil {
			cl.ch, cl.fg = glyph, c
		}
	}
}

// View renders the grid as styled text, one line per row. Runs of cells
// with the same colors share one lipgloss style.
func (g *Grid) View() string {
	var b strings.Builder
	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= g.Cols; col++ {
			if col < g.Cols && sameColors(g.cells[row*g.Cols+col], g.cells[row*g.Cols+start]) {
				continue
			}
			b.WriteString(g.renderRun(row, start, col))
			start = col
		}
	}
	return b.String()
}

func (g *Grid) renderRun(row, from, to int) string {
	runes := make([]rune, 0, to-from)
	for col := from; col < to; col++ {
		runes = append(runes, g.cells[row*g.Cols+col].ch)
	}
	first := g.cells[row*g.Cols+from]
	if first.fg == nil && first.bg == nil {
		return string(runes)
	}
	st := lipgloss.NewStyle()
	if first.fg != nil {
		st = st.Foreground(lipgloss.Color(hex(first.fg)))
	}
	if first.bg != nil {
		st = st.Background(lipgloss.Color(hex(first.bg)))
	}
	return st.Render(string(runes))
}

func sameColors(a, b cell) bool {
	return colorKey(a.fg) == colorKey(b.fg) && colorKey(a.bg) == colorKey(b.bg)
}

func colorKey(c color.Color) string {
	if c == nil {
		return ""
	}
	return hex(c)
}

func hex(c color.Color) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
