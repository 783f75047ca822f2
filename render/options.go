package render

import "github.com/stsysd/shapekit/model"

// Options configures rendering parameters.
type Options struct {
	Padding     int                   // padding around the drawing (px)
	UnitSize    float64               // pixels per coordinate unit
	StrokeWidth int                   // outline width (px)
	Colors      map[model.Kind]string // CSS color per shape kind
	FontSize    int                   // font size for index labels (px)
	FontFamily  string                // font family for labels
	Title       string                // optional title drawn above the shapes
}

// DefaultOptions returns the options used when nil is passed to GenerateCanvasSVG.
func DefaultOptions() *Options {
	return &Options{
		Padding:     10,
		UnitSize:    4,
		StrokeWidth: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Colors: map[model.Kind]string{
			model.KindRectangle: "#40c463",
			model.KindSquare:    "#216e39",
			model.KindCircle:    "#1f6feb",
			model.KindTriangle:  "#d29922",
		},
	}
}

// color returns the configured color for kind, falling back to the defaults.
func (o *Options) color(kind model.Kind) string {
	if c, ok := o.Colors[kind]; ok && c != "" {
		return c
	}
	return DefaultOptions().Colors[kind]
}
