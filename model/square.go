package model

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Square は一辺の長さを持つ正方形です。
type Square struct {
	base
	side float64
}

// NewSquare creates a square anchored at position. A non-positive side defaults to 1.
func NewSquare(position Coordinate, side float64) *Square {
	if side <= 0 {
		warn("square.new", logrus.Fields{"side": side}, "side must be positive, defaulting to 1.0")
		side = 1.0
	}
	return &Square{base: newBase(4, position), side: side}
}

func (s *Square) Kind() Kind {
	return KindSquare
}

// Side returns the side length.
func (s *Square) Side() float64 {
	return s.side
}

func (s *Square) Area() float64 {
	return s.side * s.side
}

func (s *Square) Perimeter() float64 {
	return 4 * s.side
}

func (s *Square) Scale(factor int, multiply bool) {
	if !validFactor(KindSquare, factor) {
		return
	}
	s.scalePosition(factor, multiply)
	s.side = scaleDimension(s.side, factor, multiply)
	if s.side <= 0 {
		warn("square.scale", logrus.Fields{"side": s.side},
			"scaling resulted in invalid side length, resetting to 1.0")
		s.side = 1.0
	}
}

func (s *Square) Display() string {
	return fmt.Sprintf("Square at %s, Side = %f, %s", s.position.Display(), s.side, metrics(s))
}
