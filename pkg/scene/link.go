package scene

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
)

// controlFactor scales the horizontal pull of the curve's control points.
const controlFactor = 0.8

// Debug marker radii.
const (
	debugAnchorRadius  = 5.0
	debugControlRadius = 2.0
)

// Link is a directed edge from one block to another. While the user is still
// drawing it, To is uuid.Nil and the link follows the cursor.
type Link struct {
	From BlockID
	To   BlockID
}

// NewLink creates an incomplete link starting at from.
func NewLink(from BlockID) *Link {
	return &Link{From: from}
}

// Complete sets the link's target. Connecting a block to itself (or to the
// nil handle) is rejected and leaves the link unchanged.
func (l *Link) Complete(to BlockID) bool {
	if to == uuid.Nil || to == l.From {
		return false
	}
	l.To = to
	return true
}

// Completed reports whether the link has a target.
func (l *Link) Completed() bool {
	return l.To != uuid.Nil
}

// References reports whether either endpoint is id.
func (l *Link) References(id BlockID) bool {
	return l.From == id || (l.Completed() && l.To == id)
}

// Curve computes the link's Bezier segment between two endpoint boxes.
//
// The curve always runs left to right: the box further left is the start and
// the curve leaves it from the middle of its right edge, entering the other
// box at the middle of its left edge. When both boxes share an x position,
// to is the start. Control points sit on the anchors' horizontal lines,
// pulled toward each other by 0.8 of half the horizontal distance.
func Curve(from, to geom.Rect) geom.Cubic {
	dist := from.Min.X - to.Min.X
	pull := math.Abs(dist) / 2 * controlFactor

	start, end := from, to
	if dist >= 0 {
		start, end = to, from
	}

	p0 := start.MidRight()
	p3 := end.MidLeft()
	return geom.Cubic{
		P0: p0,
		P1: p0.Add(geom.Pt(pull, 0)),
		P2: p3.Sub(geom.Pt(pull, 0)),
		P3: p3,
	}
}

// Render strokes the link between from and to. For an incomplete link the
// caller passes the virtual cursor box as to. With debug set, the start
// box's origin and the four curve points are marked.
func (l *Link) Render(from, to geom.Rect, t render.Target, st Style, debug bool) {
	c := Curve(from, to)
	if debug {
		start := from
		if from.Min.X-to.Min.X >= 0 {
			start = to
		}
		t.FillCircle(start.Min, debugAnchorRadius, st.DebugAnchor)
		for _, p := range []geom.Point{c.P0, c.P1, c.P2, c.P3} {
			t.FillCircle(p, debugControlRadius, st.DebugControl)
		}
	}
	t.Cubic(c, st.LinkWidth, st.Link)
}
