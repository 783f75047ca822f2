package api

import (
	"math"

	"github.com/google/uuid"
	"github.com/stsysd/shapekit/collection"
	"github.com/stsysd/shapekit/model"
)

// Position は座標のJSON表現です。
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func newPosition(c model.Coordinate) Position {
	return Position{X: c.X(), Y: c.Y()}
}

// ShapeView は図形のJSON表現です。寸法は種類に応じたものだけが設定されます。
// 面積・周長が NaN になる場合は null になります。
type ShapeView struct {
	Index     int        `json:"index"`
	ID        uuid.UUID  `json:"id"`
	Kind      model.Kind `json:"kind"`
	Sides     int        `json:"sides"`
	Position  Position   `json:"position"`
	Width     *float64   `json:"width,omitempty"`
	Length    *float64   `json:"length,omitempty"`
	Side      *float64   `json:"side,omitempty"`
	Radius    *float64   `json:"radius,omitempty"`
	Vertices  []Position `json:"vertices,omitempty"`
	Area      *float64   `json:"area"`
	Perimeter *float64   `json:"perimeter"`
	Display   string     `json:"display"`
}

// newShapeView はコレクションの要素からビューを生成します。
func newShapeView(index int, e collection.Entry) ShapeView {
	s := e.Shape
	v := ShapeView{
		Index:     index,
		ID:        e.ID,
		Kind:      s.Kind(),
		Sides:     s.Sides(),
		Position:  newPosition(s.Position()),
		Area:      finite(s.Area()),
		Perimeter: finite(s.Perimeter()),
		Display:   s.Display(),
	}

	switch shape := s.(type) {
	case *model.Rectangle:
		v.Width = finite(shape.Width())
		v.Length = finite(shape.Length())
	case *model.Square:
		v.Side = finite(shape.Side())
	case *model.Circle:
		v.Radius = finite(shape.Radius())
	case *model.Triangle:
		for _, vt := range shape.Vertices() {
			v.Vertices = append(v.Vertices, newPosition(vt))
		}
	}
	return v
}

// finite returns nil for values JSON cannot represent.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
