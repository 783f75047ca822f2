package model

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Coordinate は非負の整数座標を表す値オブジェクトです。
// x, y は常に 0 以上に保たれます。
type Coordinate struct {
	x int
	y int
}

// NewCoordinate creates a coordinate. Negative components fall back to (0, 0).
func NewCoordinate(x, y int) Coordinate {
	if x < 0 || y < 0 {
		warn("coordinate.new", logrus.Fields{"x": x, "y": y},
			"coordinates must be non-negative, defaulting to (0, 0)")
		return Coordinate{}
	}
	return Coordinate{x: x, y: y}
}

// X returns the x component.
func (c Coordinate) X() int {
	return c.x
}

// Y returns the y component.
func (c Coordinate) Y() int {
	return c.y
}

// Distance returns the Euclidean distance to other.
func (c Coordinate) Distance(other Coordinate) float64 {
	dx := float64(other.x - c.x)
	dy := float64(other.y - c.y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Translate moves the point by (dx, dy). Both components move or neither does.
func (c *Coordinate) Translate(dx, dy int) {
	if addOverflows(c.x, dx) || addOverflows(c.y, dy) {
		warn("coordinate.translate", logrus.Fields{"x": c.x, "y": c.y, "dx": dx, "dy": dy},
			"translation would overflow, operation skipped")
		return
	}
	if c.x+dx < 0 || c.y+dy < 0 {
		warn("coordinate.translate", logrus.Fields{"x": c.x, "y": c.y, "dx": dx, "dy": dy},
			"translation would result in negative coordinates, operation skipped")
		return
	}
	c.x += dx
	c.y += dy
}

// Scale multiplies both components by factor, or divides them with integer
// division when multiply is false. factor must be positive.
func (c *Coordinate) Scale(factor int, multiply bool) {
	if factor <= 0 {
		warn("coordinate.scale", logrus.Fields{"factor": factor},
			"scaling factor must be greater than 0, operation skipped")
		return
	}
	if multiply && (c.x > math.MaxInt/factor || c.y > math.MaxInt/factor) {
		warn("coordinate.scale", logrus.Fields{"x": c.x, "y": c.y, "factor": factor},
			"scaling would overflow, operation skipped")
		return
	}
	if multiply {
		c.x *= factor
		c.y *= factor
	} else {
		c.x /= factor
		c.y /= factor
	}
}

// addOverflows reports whether v+d exceeds math.MaxInt. v is never negative.
func addOverflows(v, d int) bool {
	return d > 0 && v > math.MaxInt-d
}

// Display returns the textual form "X = x, Y = y".
func (c Coordinate) Display() string {
	return fmt.Sprintf("X = %d, Y = %d", c.x, c.y)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return c.Display()
}
