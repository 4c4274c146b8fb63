package component

import (
	"image"

	"github.com/jakecoffman/cp"
)

const (
	DefaultBodyWidth  = 33
	DefaultBodyHeight = 35
)

// Body is the axis-aligned pixel footprint of an entity.
type Body struct {
	Width  int
	Height int
}

var BodyComponent = NewComponent[Body]()

// Size returns the footprint, falling back to the default body.
func (b Body) Size() image.Point {
	w, h := b.Width, b.Height
	if w <= 0 {
		w = DefaultBodyWidth
	}
	if h <= 0 {
		h = DefaultBodyHeight
	}
	return image.Pt(w, h)
}

// Rect returns the body's rectangle when its top-left sits at pos.
func (b Body) Rect(pos cp.Vector) image.Rectangle {
	min := image.Pt(int(pos.X), int(pos.Y))
	return image.Rectangle{Min: min, Max: min.Add(b.Size())}
}

// Center returns the centre of the body when its top-left sits at pos.
func (b Body) Center(pos cp.Vector) cp.Vector {
	s := b.Size()
	return pos.Add(cp.Vector{X: float64(s.X / 2), Y: float64(s.Y / 2)})
}
