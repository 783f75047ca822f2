package model

import (
	"fmt"
	"math"
)

// Triangle は3つの頂点で定義される三角形です。
// 基準座標は第1頂点で、移動・拡縮は頂点ごとに独立して適用されます。
// そのため一部の頂点だけが動き、形が変わることがあります。
type Triangle struct {
	base
	v2 Coordinate
	v3 Coordinate
}

// NewTriangle creates a triangle from three vertices. Degenerate triangles are accepted.
func NewTriangle(v1, v2, v3 Coordinate) *Triangle {
	return &Triangle{base: newBase(3, v1), v2: v2, v3: v3}
}

func (t *Triangle) Kind() Kind {
	return KindTriangle
}

// Vertices returns the three vertices in construction order.
func (t *Triangle) Vertices() [3]Coordinate {
	return [3]Coordinate{t.position, t.v2, t.v3}
}

// sideLengths returns |v1v2|, |v1v3| and |v2v3|.
func (t *Triangle) sideLengths() (a, b, c float64) {
	return t.position.Distance(t.v2), t.position.Distance(t.v3), t.v2.Distance(t.v3)
}

func (t *Triangle) Perimeter() float64 {
	a, b, c := t.sideLengths()
	return a + b + c
}

// Area uses Heron's formula. Near-degenerate triangles may yield 0 or NaN.
func (t *Triangle) Area() float64 {
	a, b, c := t.sideLengths()
	s := (a + b + c) / 2
	return math.Sqrt(s * (s - a) * (s - b) * (s - c))
}

func (t *Triangle) Translate(dx, dy int) {
	t.position.Translate(dx, dy)
	t.v2.Translate(dx, dy)
	t.v3.Translate(dx, dy)
}

func (t *Triangle) Scale(factor int, multiply bool) {
	if !validFactor(KindTriangle, factor) {
		return
	}
	t.scalePosition(factor, multiply)
	t.v2.Scale(factor, multiply)
	t.v3.Scale(factor, multiply)
}

func (t *Triangle) Display() string {
	return fmt.Sprintf("Triangle with vertices (%s), (%s), (%s), %s",
		t.position.Display(), t.v2.Display(), t.v3.Display(), metrics(t))
}
