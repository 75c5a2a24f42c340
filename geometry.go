package main

import "math"

// Vec is a 2D point or displacement. Whether it is in screen or world space
// depends on where it came from.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{v.X * f, v.Y * f}
}

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle. Top is the smaller Y.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func RectFromSize(pos Vec, width, height float64) Rect {
	return Rect{Left: pos.X, Top: pos.Y, Right: pos.X + width, Bottom: pos.Y + height}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports a rectangle with zero or negative area.
func (r Rect) Empty() bool {
	return !(r.Width() > 0) || !(r.Height() > 0)
}

// Contains is half-open: the left and top edges are inside, the right and
// bottom edges are not.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

func (r Rect) Center() Vec {
	return Vec{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Size is a viewport size in screen units (terminal cells or pixels).
type Size struct {
	Width, Height int
}

// Segment is an axis-aligned line segment in world space.
type Segment struct {
	From, To Vec
}
