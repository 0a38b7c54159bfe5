// Package geom provides the small set of 2D value types shared by the scene
// and the render backends.
//
// All coordinates are in canvas units with the origin at the top-left corner
// and y growing downward, matching window and image conventions. Values are
// plain structs passed by value; nothing here allocates or holds references.
package geom

import "math"

// Point is a position (or a displacement) on the canvas.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p with both components multiplied by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
//
// Rect uses half-open bounds: a point is inside when
// Min.X <= x < Min.X+W and Min.Y <= y < Min.Y+H.
type Rect struct {
	Min  Point
	W, H float64
}

// R builds a Rect from its top-left corner and size.
func R(x, y, w, h float64) Rect { return Rect{Min: Point{X: x, Y: y}, W: w, H: h} }

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() Point { return Point{X: r.Min.X + r.W, Y: r.Min.Y + r.H} }

// Contains reports whether p lies within r using half-open bounds.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Min.X+r.W &&
		r.Min.Y <= p.Y && p.Y < r.Min.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() Point { return Point{X: r.Min.X + r.W/2, Y: r.Min.Y + r.H/2} }

// MidLeft returns the middle of the left edge.
func (r Rect) MidLeft() Point { return Point{X: r.Min.X, Y: r.Min.Y + r.H/2} }

// MidRight returns the middle of the right edge.
func (r Rect) MidRight() Point { return Point{X: r.Min.X + r.W, Y: r.Min.Y + r.H/2} }

// Inset shrinks r by d on every side. Negative d grows it.
// The resulting size never goes below zero.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		W:   math.Max(0, r.W-2*d),
		H:   math.Max(0, r.H-2*d),
	}
}

// Union returns the smallest rectangle containing both r and s.
// An empty (zero-size, zero-origin) receiver is treated as absent.
func (r Rect) Union(s Rect) Rect {
	if r == (Rect{}) {
		return s
	}
	minX := math.Min(r.Min.X, s.Min.X)
	minY := math.Min(r.Min.Y, s.Min.Y)
	maxX := math.Max(r.Min.X+r.W, s.Min.X+s.W)
	maxY := math.Max(r.Min.Y+r.H, s.Min.Y+s.H)
	return Rect{Min: Point{X: minX, Y: minY}, W: maxX - minX, H: maxY - minY}
}

// Cubic is a cubic Bezier segment: P0 and P3 are the anchors, P1 and P2 the
// control points.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// At evaluates the curve at parameter t in [0, 1].
func (c Cubic) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Flatten samples the curve into n+1 points including both anchors.
// n below 1 is treated as 1.
func (c Cubic) Flatten(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.At(float64(i)/float64(n)))
	}
	pts[n] = c.P3
	return pts
}
