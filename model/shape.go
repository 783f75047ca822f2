package model

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Kind は図形の種類を表します。
type Kind string

// 図形の種類（閉じた集合）
const (
	KindRectangle Kind = "rectangle"
	KindSquare    Kind = "square"
	KindCircle    Kind = "circle"
	KindTriangle  Kind = "triangle"
)

// ParseKind parses a shape kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRectangle, KindSquare, KindCircle, KindTriangle:
		return k, nil
	case "":
		return "", NewValidationError("kind is required")
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Shape は全ての図形が提供する操作の集合です。
type Shape interface {
	// Kind は図形の種類を返します。
	Kind() Kind
	// Sides は辺の数を返します（面積・周長の計算には使われません）。
	Sides() int
	// Position は基準座標を返します。三角形の場合は第1頂点です。
	Position() Coordinate
	// SetPosition は基準座標を置き換えます。
	SetPosition(c Coordinate)
	// Area は面積を返します。
	Area() float64
	// Perimeter は周長を返します。
	Perimeter() float64
	// Translate は図形を (dx, dy) だけ移動します。
	Translate(dx, dy int)
	// Scale は図形を factor 倍（multiply=false の場合は 1/factor 倍）に拡縮します。
	Scale(factor int, multiply bool)
	// Display は人間向けの説明文を返します。
	Display() string
}

// base holds the state shared by every shape variant.
type base struct {
	position Coordinate
	sides    int
}

func newBase(sides int, position Coordinate) base {
	if sides < 0 {
		warn("shape.new", logrus.Fields{"sides": sides}, "shape sides cannot be negative, defaulting to 0")
		sides = 0
	}
	return base{position: position, sides: sides}
}

func (b *base) Sides() int {
	return b.sides
}

func (b *base) Position() Coordinate {
	return b.position
}

func (b *base) SetPosition(c Coordinate) {
	b.position = c
}

func (b *base) Translate(dx, dy int) {
	b.position.Translate(dx, dy)
}

// scalePosition scales the anchor. The caller has already rejected factor <= 0.
func (b *base) scalePosition(factor int, multiply bool) {
	b.position.Scale(factor, multiply)
}

// validFactor reports whether factor can be used for scaling, logging a warning otherwise.
func validFactor(kind Kind, factor int) bool {
	if factor <= 0 {
		warn(string(kind)+".scale", logrus.Fields{"factor": factor},
			"scaling factor must be greater than 0, operation skipped")
		return false
	}
	return true
}

// scaleDimension multiplies or divides v by factor.
func scaleDimension(v float64, factor int, multiply bool) float64 {
	if multiply {
		return v * float64(factor)
	}
	return v / float64(factor)
}

// metrics formats the trailing "Area = …, Perimeter = …" part of a display string.
func metrics(s Shape) string {
	return fmt.Sprintf("Area = %f, Perimeter = %f", s.Area(), s.Perimeter())
}
