// Package model contains domain models passed between layers.
package model

import "math"

// Box is a detector bounding box normalized to [0,1]x[0,1] with its origin at
// the lower-left corner of the source image.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (b Box) MinX() float64 { return b.X }
func (b Box) MaxX() float64 { return b.X + b.W }
func (b Box) MinY() float64 { return b.Y }
func (b Box) MaxY() float64 { return b.Y + b.H }

// Valid reports whether every coordinate is finite and the size is non-negative.
func (b Box) Valid() bool {
	return finite(b.X, b.Y, b.W, b.H) && b.W >= 0 && b.H >= 0
}

// Rect is an axis-aligned rectangle in display pixels, origin top-left.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Valid reports whether every coordinate is finite and the size is non-negative.
func (r Rect) Valid() bool {
	return finite(r.X, r.Y, r.W, r.H) && r.W >= 0 && r.H >= 0
}

// overlapEpsilon is the minimum overlap, in pixels, along each axis for two
// rectangles to count as intersecting. Edges that merely touch (up to float
// rounding) do not intersect.
const overlapEpsilon = 1e-6

// Intersects reports whether r and o share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	dx := math.Min(r.MaxX(), o.MaxX()) - math.Max(r.X, o.X)
	dy := math.Min(r.MaxY(), o.MaxY()) - math.Max(r.Y, o.Y)
	return dx > overlapEpsilon && dy > overlapEpsilon
}

// Size is a display surface in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return finite(s.Width, s.Height) && s.Width > 0 && s.Height > 0
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
