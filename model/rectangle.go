package model

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Rectangle は幅と長さを持つ長方形です。
type Rectangle struct {
	base
	width  float64
	length float64
}

// NewRectangle creates a rectangle anchored at position.
// If either dimension is not positive, both default to 1.
func NewRectangle(position Coordinate, width, length float64) *Rectangle {
	if width <= 0 || length <= 0 {
		warn("rectangle.new", logrus.Fields{"width": width, "length": length},
			"width and length must be positive, defaulting to 1")
		width, length = 1, 1
	}
	return &Rectangle{base: newBase(4, position), width: width, length: length}
}

func (r *Rectangle) Kind() Kind {
	return KindRectangle
}

// Width returns the width.
func (r *Rectangle) Width() float64 {
	return r.width
}

// Length returns the length.
func (r *Rectangle) Length() float64 {
	return r.length
}

func (r *Rectangle) Area() float64 {
	return r.width * r.length
}

func (r *Rectangle) Perimeter() float64 {
	return 2 * (r.width + r.length)
}

// Scale scales the anchor and both dimensions.
// Unlike Square and Circle, the dimensions are not floored after a division.
func (r *Rectangle) Scale(factor int, multiply bool) {
	if !validFactor(KindRectangle, factor) {
		return
	}
	r.scalePosition(factor, multiply)
	r.width = scaleDimension(r.width, factor, multiply)
	r.length = scaleDimension(r.length, factor, multiply)
}

func (r *Rectangle) Display() string {
	return fmt.Sprintf("Rectangle at %s, Width = %f, Length = %f, %s",
		r.position.Display(), r.width, r.length, metrics(r))
}
