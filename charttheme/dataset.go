package charttheme

import (
	"encoding/json"
	"slices"
)

// Colors is either one colour for the whole series or one colour per category.
// It marshals as a bare string when it holds a single colour.
type Colors []string

// MarshalJSON implements json.Marshaler.
func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// UnmarshalJSON accepts a single colour string or an array of colours.
func (c *Colors) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Colors{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many
	return nil
}

// Style is a partial set of per-series drawing attributes. Zero fields are unset.
type Style struct {
	BackgroundColor      Colors   `json:"backgroundColor,omitempty"`
	BorderColor          Colors   `json:"borderColor,omitempty"`
	HoverBackgroundColor Colors   `json:"hoverBackgroundColor,omitempty"`
	BorderWidth          *int     `json:"borderWidth,omitempty"`
	BorderRadius         *int     `json:"borderRadius,omitempty"`
	Tension              *float64 `json:"tension,omitempty"`
}

// overlay returns s with every field set in over replacing the one in s.
func (s Style) overlay(over Style) Style {
	out := s.clone()
	if len(over.BackgroundColor) > 0 {
		out.BackgroundColor = slices.Clone(over.BackgroundColor)
	}
	if len(over.BorderColor) > 0 {
		out.BorderColor = slices.Clone(over.BorderColor)
	}
	if len(over.HoverBackgroundColor) > 0 {
		out.HoverBackgroundColor = slices.Clone(over.HoverBackgroundColor)
	}
	if over.BorderWidth != nil {
		out.BorderWidth = ptr(*over.BorderWidth)
	}
	if over.BorderRadius != nil {
		out.BorderRadius = ptr(*over.BorderRadius)
	}
	if over.Tension != nil {
		out.Tension = ptr(*over.Tension)
	}
	return out
}

func (s Style) clone() Style {
	out := Style{
		BackgroundColor:      slices.Clone(s.BackgroundColor),
		BorderColor:          slices.Clone(s.BorderColor),
		HoverBackgroundColor: slices.Clone(s.HoverBackgroundColor),
	}
	if s.BorderWidth != nil {
		out.BorderWidth = ptr(*s.BorderWidth)
	}
	if s.BorderRadius != nil {
		out.BorderRadius = ptr(*s.BorderRadius)
	}
	if s.Tension != nil {
		out.Tension = ptr(*s.Tension)
	}
	return out
}

// Series is one named run of values. The embedded Style holds caller overrides
// and, after Enhance, the full resolved style.
type Series struct {
	Name   string    `json:"label"`
	Values []float64 `json:"data"`
	*Style
}

// overrides returns the caller's style, or the zero style when none was given.
func (s Series) overrides() Style {
	if s.Style == nil {
		return Style{}
	}
	return *s.Style
}

// Dataset is category-labelled numeric data in the shape chart.js consumes.
type Dataset struct {
	Labels []string `json:"labels"`
	Series []Series `json:"datasets"`
}

func ptr[T any](v T) *T {
	return &v
}
