// Package geom provides float64 geometry primitives for viewport math.
package geom

import "math"

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Min is the top-left corner,
// Max the bottom-right.
type Rect struct {
	Min, Max Point
}

// XYWH creates a rectangle from an origin and a size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + w, Y: y + h},
	}
}

// Width returns the rectangle width.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the rectangle height.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Area returns the rectangle area, zero for empty rectangles.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether the rectangle has no interior.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Intersect returns the overlap of r and other. An empty overlap is
// returned as the zero Rect.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + dx, Y: r.Min.Y + dy},
		Max: Point{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// Shrink returns r inset on each side. Sides that cross are clamped so
// the result is empty rather than inverted.
func (r Rect) Shrink(in Insets) Rect {
	out := Rect{
		Min: Point{X: r.Min.X + in.Left, Y: r.Min.Y + in.Top},
		Max: Point{X: r.Max.X - in.Right, Y: r.Max.Y - in.Bottom},
	}
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}

// Center returns the rectangle midpoint.
func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) / 2,
		Y: (r.Min.Y + r.Max.Y) / 2,
	}
}

// Insets describes per-side spacing in pixels.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Axis identifies the main scroll direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// MainStart returns the rectangle's leading edge along the axis.
func (a Axis) MainStart(r Rect) float64 {
	if a == Horizontal {
		return r.Min.X
	}
	return r.Min.Y
}

// MainEnd returns the rectangle's trailing edge along the axis.
func (a Axis) MainEnd(r Rect) float64 {
	if a == Horizontal {
		return r.Max.X
	}
	return r.Max.Y
}

// MainExtent returns the rectangle's length along the axis.
func (a Axis) MainExtent(r Rect) float64 {
	return a.MainEnd(r) - a.MainStart(r)
}

// MainCenter returns the rectangle's midpoint along the axis.
func (a Axis) MainCenter(r Rect) float64 {
	return (a.MainStart(r) + a.MainEnd(r)) / 2
}

// Band returns a rectangle spanning [start, end] along the axis and the
// full cross-axis span of within.
func (a Axis) Band(within Rect, start, end float64) Rect {
	if a == Horizontal {
		return Rect{
			Min: Point{X: start, Y: within.Min.Y},
			Max: Point{X: end, Y: within.Max.Y},
		}
	}
	return Rect{
		Min: Point{X: within.Min.X, Y: start},
		Max: Point{X: within.Max.X, Y: end},
	}
}
