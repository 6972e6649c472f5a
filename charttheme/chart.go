package charttheme

import "office-dashboard/shared"

// Chart is a render-ready chart: styled data plus merged presentation options.
type Chart struct {
	Kind        Kind                `json:"kind"`
	Data        Dataset             `json:"data"`
	Options     Options             `json:"options"`
	Diagnostics []shared.Diagnostic `json:"diagnostics,omitempty"`
}

// Build styles ds for kind and merges overrides into the kind's defaults.
// It is a pure function of its arguments; call it again whenever the
// underlying snapshot changes.
func Build(ds Dataset, kind Kind, title string, overrides Options, explicit []Style) Chart {
	resolved, diags := resolveKind(kind)
	data, _ := Enhance(ds, resolved, explicit)
	return Chart{
		Kind:        resolved,
		Data:        data,
		Options:     Merge(OptionsFor(resolved, title), overrides),
		Diagnostics: diags,
	}
}
