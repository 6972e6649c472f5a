package charttheme

// Options is a chart.js presentation-options tree. Nested objects are
// map[string]any; any key may be partially overridden through Merge.
type Options map[string]any

const (
	fontBody    = "'Inter', sans-serif"
	fontHeading = "'Poppins', sans-serif"
	slate100    = "#f1f5f9"
	slate200    = "#e2e8f0"
	slate300    = "#cbd5e1"
	slate500    = "#64748b"
	slate800    = "#1e293b"
)

// DefaultOptions builds a fresh defaults tree. The title plugin is only
// displayed when title is non-empty.
func DefaultOptions(title string) Options {
	return Options{
		"responsive":          true,
		"maintainAspectRatio": false,
		"animation": map[string]any{
			"duration": 800,
			"easing":   "easeInOutCubic",
		},
		"plugins": map[string]any{
			"legend": map[string]any{
				"position": "top",
				"labels": map[string]any{
					"color":    slate500,
					"font":     map[string]any{"family": fontBody, "size": 12, "weight": "500"},
					"boxWidth": 12,
					"padding":  15,
				},
			},
			"title": map[string]any{
				"display": title != "",
				"text":    title,
				"font":    map[string]any{"size": 16},
			},
			"tooltip": map[string]any{
				"enabled":         true,
				"backgroundColor": slate800,
				"titleColor":      slate100,
				"bodyColor":       slate300,
				"padding":         10,
				"cornerRadius":    6,
				"titleFont":       map[string]any{"size": 14, "weight": "600", "family": fontHeading},
				"bodyFont":        map[string]any{"size": 12, "family": fontBody},
			},
		},
		"scales": map[string]any{
			"x": map[string]any{
				"grid":  map[string]any{"drawOnChartArea": false},
				"ticks": map[string]any{"color": slate500, "font": map[string]any{"family": fontBody}},
			},
			"y": map[string]any{
				"border": map[string]any{"dash": []any{4, 4}},
				"grid":   map[string]any{"color": slate200},
				"ticks":  map[string]any{"color": slate500, "font": map[string]any{"family": fontBody}},
			},
		},
	}
}

// OptionsFor returns the defaults for kind. Pie and doughnut charts have no axes,
// so their defaults carry no scales. Unknown kinds get the bar defaults.
func OptionsFor(kind Kind, title string) Options {
	opts := DefaultOptions(title)
	if resolved, _ := resolveKind(kind); resolved.categorical() {
		delete(opts, "scales")
	}
	return opts
}

// Merge returns defaults with overrides applied key by key. When both sides
// hold a nested object for a key the two are merged recursively; otherwise the
// override replaces the default wholesale, arrays included. Neither input is
// modified and the result shares no nested maps or slices with them.
func Merge(defaults, overrides Options) Options {
	merged := cloneMap(defaults)
	for key, override := range overrides {
		if overrideMap, ok := asMap(override); ok {
			if baseMap, ok := asMap(merged[key]); ok {
				merged[key] = map[string]any(Merge(baseMap, overrideMap))
				continue
			}
		}
		merged[key] = cloneValue(override)
	}
	return merged
}

// Lookup walks a key path through nested objects.
func (o Options) Lookup(path ...string) (any, bool) {
	var current any = map[string]any(o)
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) Options {
	out := make(Options, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return map[string]any(cloneMap(m))
	}
	switch s := v.(type) {
	case []any:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), s...)
	case []float64:
		return append([]float64(nil), s...)
	case []int:
		return append([]int(nil), s...)
	default:
		return v
	}
}
