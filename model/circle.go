package model

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Circle は中心座標と半径を持つ円です。辺の数は 0 です。
type Circle struct {
	base
	radius float64
}

// NewCircle creates a circle centred at position. A non-positive radius defaults to 1.
func NewCircle(position Coordinate, radius float64) *Circle {
	if radius <= 0 {
		warn("circle.new", logrus.Fields{"radius": radius}, "radius must be positive, defaulting to 1.0")
		radius = 1.0
	}
	return &Circle{base: newBase(0, position), radius: radius}
}

func (c *Circle) Kind() Kind {
	return KindCircle
}

// Radius returns the radius.
func (c *Circle) Radius() float64 {
	return c.radius
}

func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

func (c *Circle) Perimeter() float64 {
	return 2 * math.Pi * c.radius
}

func (c *Circle) Scale(factor int, multiply bool) {
	if !validFactor(KindCircle, factor) {
		return
	}
	c.scalePosition(factor, multiply)
	c.radius = scaleDimension(c.radius, factor, multiply)
	if c.radius <= 0 {
		warn("circle.scale", logrus.Fields{"radius": c.radius},
			"radius became non-positive after scaling, resetting to 1.0")
		c.radius = 1.0
	}
}

func (c *Circle) Display() string {
	return fmt.Sprintf("Circle at %s, Radius = %f, %s", c.position.Display(), c.radius, metrics(c))
}
