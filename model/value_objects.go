// Package model provides value objects for API parameter validation.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ShapeIndex represents a zero-based position in a shape collection.
type ShapeIndex struct {
	value int
}

// ParseShapeIndex creates a shape index value object from a path segment.
func ParseShapeIndex(s string) (*ShapeIndex, error) {
	if s == "" {
		return nil, NewValidationError("index is required")
	}
	v, err := parseInt(s)
	if err != nil {
		return nil, NewValidationError("invalid index: must be a non-negative integer")
	}
	if v < 0 {
		return nil, NewValidationError("index must be non-negative")
	}
	return &ShapeIndex{value: v}, nil
}

// Int returns the index value.
func (i *ShapeIndex) Int() int {
	return i.value
}

// ScaleFactor represents a positive integer scaling factor value object.
type ScaleFactor struct {
	value    int
	multiply bool
}

// NewScaleFactor creates a new scale factor value object.
// A nil multiply defaults to true.
func NewScaleFactor(factor *int, multiply *bool) (*ScaleFactor, error) {
	if factor == nil {
		return nil, NewValidationError("factor is required")
	}
	if *factor < 1 {
		return nil, NewValidationError("factor must be a positive integer greater than 0")
	}
	m := true
	if multiply != nil {
		m = *multiply
	}
	return &ScaleFactor{value: *factor, multiply: m}, nil
}

// Int returns the factor.
func (f *ScaleFactor) Int() int {
	return f.value
}

// Multiply reports whether the factor multiplies (true) or divides (false).
func (f *ScaleFactor) Multiply() bool {
	return f.multiply
}

// Offset represents a translation vector value object.
type Offset struct {
	dx int
	dy int
}

// NewOffset creates a new offset. Missing components default to 0.
func NewOffset(dx, dy *int) (*Offset, error) {
	if dx == nil && dy == nil {
		return nil, NewValidationError("dx or dy is required")
	}
	o := &Offset{}
	if dx != nil {
		o.dx = *dx
	}
	if dy != nil {
		o.dy = *dy
	}
	return o, nil
}

// DX returns the x offset.
func (o *Offset) DX() int {
	return o.dx
}

// DY returns the y offset.
func (o *Offset) DY() int {
	return o.dy
}

// Point is a plain integer pair used to describe vertices before validation.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ShapeSpec describes a shape to be built. Only the fields relevant to Kind are read.
type ShapeSpec struct {
	Kind     Kind
	X        int
	Y        int
	Width    float64
	Length   float64
	Side     float64
	Radius   float64
	Vertices []Point
}

// Build constructs the shape. Invalid dimensions and coordinates fall back to
// the constructors' defaults; only structural problems are returned as errors.
func (s ShapeSpec) Build() (Shape, error) {
	pos := NewCoordinate(s.X, s.Y)
	switch s.Kind {
	case KindRectangle:
		return NewRectangle(pos, s.Width, s.Length), nil
	case KindSquare:
		return NewSquare(pos, s.Side), nil
	case KindCircle:
		return NewCircle(pos, s.Radius), nil
	case KindTriangle:
		if len(s.Vertices) != 3 {
			return nil, NewValidationError(fmt.Sprintf("triangle requires exactly 3 vertices, got %d", len(s.Vertices)))
		}
		v := s.Vertices
		return NewTriangle(
			NewCoordinate(v[0].X, v[0].Y),
			NewCoordinate(v[1].X, v[1].Y),
			NewCoordinate(v[2].X, v[2].Y),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// parseInt converts a string to an integer and handles errors.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
