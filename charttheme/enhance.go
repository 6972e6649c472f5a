package charttheme

import (
	"slices"

	"office-dashboard/shared"
)

// Palette is the ordered colour list assigned to series or categories that
// carry no explicit colour. Position i always maps to Palette[i%len(Palette)].
var Palette = []string{
	"#4f46e5", // indigo
	"#db2777", // pink
	"#16a34a", // green
	"#f59e0b", // amber
	"#0ea5e9", // sky
	"#f43f5e", // rose
	"#8b5cf6", // violet
	"#d946ef", // fuchsia
}

const (
	// fillAlpha is appended to a palette hex colour to get the translucent fill.
	fillAlpha = "33"

	sliceBorderColor = "#ffffff"
	sliceBorderWidth = 3
	lineBorderWidth  = 2
	barBorderRadius  = 4
	lineTension      = 0.4
)

// PaletteColor returns the palette colour for position i.
func PaletteColor(i int) string {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

// Translucent returns the fill variant of a palette colour.
func Translucent(color string) string {
	return color + fillAlpha
}

// Enhance returns a styled copy of ds for the given kind. Fields the caller
// already set, either on the series itself or in explicit[i], are kept; every
// other field is filled from the palette and the kind defaults. Unknown kinds
// are styled as bar and reported as a diagnostic. ds is never modified.
func Enhance(ds Dataset, kind Kind, explicit []Style) (Dataset, []shared.Diagnostic) {
	resolved, diags := resolveKind(kind)

	out := Dataset{
		Labels: slices.Clone(ds.Labels),
		Series: make([]Series, len(ds.Series)),
	}
	for i, series := range ds.Series {
		caller := series.overrides()
		if i < len(explicit) {
			caller = caller.overlay(explicit[i])
		}
		style := defaultStyle(resolved, i, len(ds.Labels)).overlay(caller)
		out.Series[i] = Series{
			Name:   series.Name,
			Values: slices.Clone(series.Values),
			Style:  &style,
		}
	}
	return out, diags
}

// defaultStyle is the palette style for series i of a chart with n categories.
func defaultStyle(kind Kind, i, n int) Style {
	switch kind {
	case KindPie, KindDoughnut:
		colors := categoryColors(n)
		return Style{
			BackgroundColor:      colors,
			BorderColor:          Colors{sliceBorderColor},
			HoverBackgroundColor: slices.Clone(colors),
			BorderWidth:          ptr(sliceBorderWidth),
		}
	case KindLine:
		style := seriesStyle(i)
		style.Tension = ptr(lineTension)
		return style
	case KindBar:
		style := seriesStyle(i)
		style.BorderRadius = ptr(barBorderRadius)
		return style
	default:
		return seriesStyle(i)
	}
}

func seriesStyle(i int) Style {
	base := PaletteColor(i)
	return Style{
		BackgroundColor:      Colors{Translucent(base)},
		BorderColor:          Colors{base},
		HoverBackgroundColor: Colors{base},
		BorderWidth:          ptr(lineBorderWidth),
	}
}

func categoryColors(n int) Colors {
	if n == 0 {
		return nil
	}
	colors := make(Colors, n)
	for i := range colors {
		colors[i] = PaletteColor(i)
	}
	return colors
}
