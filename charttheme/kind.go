package charttheme

import (
	"fmt"
	"strings"

	"office-dashboard/shared"
)

// Kind selects how a dataset is rendered.
type Kind string

const (
	// KindBar renders one bar group per category.
	KindBar Kind = "bar"
	// KindLine renders one curve per series.
	KindLine Kind = "line"
	// KindPie renders one slice per category.
	KindPie Kind = "pie"
	// KindDoughnut is a pie with a hollow centre.
	KindDoughnut Kind = "doughnut"
)

// Kinds lists every supported chart kind in display order.
var Kinds = []Kind{KindBar, KindLine, KindPie, KindDoughnut}

// ParseKind normalises s and reports whether it names a supported kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBar, KindLine, KindPie, KindDoughnut:
		return true
	default:
		return false
	}
}

// categorical reports whether colours are assigned per category instead of per series.
func (k Kind) categorical() bool {
	return k == KindPie || k == KindDoughnut
}

// resolveKind maps unknown kinds onto bar and describes the fallback.
func resolveKind(kind Kind) (Kind, []shared.Diagnostic) {
	normalized, ok := ParseKind(string(kind))
	if ok {
		return normalized, nil
	}
	return KindBar, []shared.Diagnostic{{
		Class:   shared.ValidationWarning,
		Message: fmt.Sprintf("unknown chart kind %q, defaulting to %s", kind, KindBar),
	}}
}
