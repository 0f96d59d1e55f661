// Package geometry holds the small value types shared by the model, the
// mutation protocol and the compositor. One unit is one terminal cell.
package geometry

import "math"

// Point is an x/y position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Rect is an origin plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Integral expands the rectangle outward to whole units, the way a layout
// pass snaps frames to the cell grid.
func (r Rect) Integral() Rect {
	minX, minY := math.Floor(r.Origin.X), math.Floor(r.Origin.Y)
	maxX := math.Ceil(r.Origin.X + r.Size.Width)
	maxY := math.Ceil(r.Origin.Y + r.Size.Height)
	return Rect{
		Origin: Point{X: minX, Y: minY},
		Size:   Size{Width: maxX - minX, Height: maxY - minY},
	}
}

// Rows converts a height to a whole number of terminal rows.
func Rows(h float64) int {
	if h <= 0 {
		return 0
	}
	return int(math.Ceil(h))
}
