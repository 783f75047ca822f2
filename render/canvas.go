// canvas.go
// Generates an SVG drawing of a shape collection.
package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/stsysd/shapekit/model"
)

// bounds is an axis-aligned box in coordinate units.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func (b *bounds) extend(x0, y0, x1, y1 float64) {
	b.minX = math.Min(b.minX, x0)
	b.minY = math.Min(b.minY, y0)
	b.maxX = math.Max(b.maxX, x1)
	b.maxY = math.Max(b.maxY, y1)
}

func (b bounds) finite() bool {
	for _, v := range []float64{b.minX, b.minY, b.maxX, b.maxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// maxCanvasSize caps the SVG width and height (px).
const maxCanvasSize = 1 << 20

// pixels converts an extent in coordinate units to a pixel size in [0, maxCanvasSize].
func pixels(extent, unit float64) int {
	px := math.Ceil(extent * unit)
	if math.IsNaN(px) || px < 0 {
		return 0
	}
	if px > maxCanvasSize {
		return maxCanvasSize
	}
	return int(px)
}

// shapeBounds returns the box covering s. Rectangles and squares are anchored
// at their top-left corner, circles at their centre.
func shapeBounds(s model.Shape) bounds {
	p := s.Position()
	x, y := float64(p.X()), float64(p.Y())
	switch v := s.(type) {
	case *model.Rectangle:
		return bounds{x, y, x + v.Width(), y + v.Length()}
	case *model.Square:
		return bounds{x, y, x + v.Side(), y + v.Side()}
	case *model.Circle:
		r := v.Radius()
		return bounds{x - r, y - r, x + r, y + r}
	case *model.Triangle:
		b := bounds{x, y, x, y}
		for _, vt := range v.Vertices() {
			vx, vy := float64(vt.X()), float64(vt.Y())
			b.extend(vx, vy, vx, vy)
		}
		return b
	default:
		return bounds{x, y, x, y}
	}
}

// GenerateCanvasSVG returns an SVG string drawing every shape in order.
// Each element carries a <title> with the shape's display text and a 1-based index label.
func GenerateCanvasSVG(shapes []model.Shape, opts *Options) string {
	// default options
	if opts == nil {
		opts = DefaultOptions()
	}
	unit := opts.UnitSize
	if unit <= 0 {
		unit = 1
	}

	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8 // title text + padding
	}

	// compute drawing bounds; shapes with non-finite extents are not drawn
	var box bounds
	empty := true
	for _, s := range shapes {
		b := shapeBounds(s)
		if !b.finite() {
			continue
		}
		if empty {
			box = b
			empty = false
			continue
		}
		box.extend(b.minX, b.minY, b.maxX, b.maxY)
	}

	width := pixels(box.maxX-box.minX, unit) + 2*opts.Padding
	height := pixels(box.maxY-box.minY, unit) + 2*opts.Padding + titleHeight

	// coordinate units to pixels
	px := func(x float64) string { return num((x-box.minX)*unit + float64(opts.Padding)) }
	py := func(y float64) string {
		return num((y-box.minY)*unit + float64(opts.Padding+titleHeight))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:#333}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			opts.Padding, opts.FontSize+2, html.EscapeString(opts.Title)))
	}

	for i, s := range shapes {
		if !shapeBounds(s).finite() {
			continue
		}
		color := opts.color(s.Kind())
		style := fmt.Sprintf(`fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="%d" data-index="%d" data-kind="%s"`,
			color, color, opts.StrokeWidth, i+1, s.Kind())
		p := s.Position()
		x, y := float64(p.X()), float64(p.Y())

		switch v := s.(type) {
		case *model.Rectangle:
			sb.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" %s>`+"\n",
				px(x), py(y), num(v.Width()*unit), num(v.Length()*unit), style))
			writeTitle(&sb, s)
			sb.WriteString(`  </rect>` + "\n")
		case *model.Square:
			sb.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" %s>`+"\n",
				px(x), py(y), num(v.Side()*unit), num(v.Side()*unit), style))
			writeTitle(&sb, s)
			sb.WriteString(`  </rect>` + "\n")
		case *model.Circle:
			sb.WriteString(fmt.Sprintf(`  <circle cx="%s" cy="%s" r="%s" %s>`+"\n",
				px(x), py(y), num(v.Radius()*unit), style))
			writeTitle(&sb, s)
			sb.WriteString(`  </circle>` + "\n")
		case *model.Triangle:
			points := make([]string, 0, 3)
			for _, vt := range v.Vertices() {
				points = append(points, px(float64(vt.X()))+","+py(float64(vt.Y())))
			}
			sb.WriteString(fmt.Sprintf(`  <polygon points="%s" %s>`+"\n", strings.Join(points, " "), style))
			writeTitle(&sb, s)
			sb.WriteString(`  </polygon>` + "\n")
		default:
			continue
		}

		// index label at the anchor
		sb.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" class="label">%d</text>`+"\n", px(x), py(y), i+1))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// writeTitle adds the tooltip element for s.
func writeTitle(sb *strings.Builder, s model.Shape) {
	sb.WriteString(fmt.Sprintf(`    <title>%s</title>`+"\n", html.EscapeString(s.Display())))
}

// num formats a pixel value without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
