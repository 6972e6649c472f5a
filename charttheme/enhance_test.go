package charttheme

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-dashboard/shared"
)

func sampleDataset(seriesCount int) Dataset {
	ds := Dataset{Labels: []string{"ON", "ECO", "OFF"}}
	for i := 0; i < seriesCount; i++ {
		ds.Series = append(ds.Series, Series{
			Name:   "series",
			Values: []float64{float64(i), 2, 3},
		})
	}
	return ds
}

func TestEnhanceAssignsPaletteBySeriesPosition(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(len(Palette) + 3)
	got, diags := Enhance(ds, KindLine, nil)
	require.Empty(t, diags)
	require.Len(t, got.Series, len(ds.Series))

	for i, series := range got.Series {
		want := Palette[i%len(Palette)]
		require.NotNil(t, series.Style, "series %d", i)
		assert.Equal(t, Colors{want}, series.BorderColor, "series %d border", i)
		assert.Equal(t, Colors{want + "33"}, series.BackgroundColor, "series %d fill", i)
		require.NotNil(t, series.Tension)
		assert.Equal(t, 0.4, *series.Tension)
		assert.Nil(t, series.BorderRadius)
	}

	again, _ := Enhance(ds, KindLine, nil)
	assert.Equal(t, got, again)
}

func TestEnhanceIsOrderDependent(t *testing.T) {
	t.Parallel()

	ds := Dataset{
		Labels: []string{"a"},
		Series: []Series{{Name: "first", Values: []float64{1}}, {Name: "second", Values: []float64{2}}},
	}
	reversed := Dataset{
		Labels: ds.Labels,
		Series: []Series{ds.Series[1], ds.Series[0]},
	}

	got, _ := Enhance(ds, KindBar, nil)
	gotReversed, _ := Enhance(reversed, KindBar, nil)

	assert.Equal(t, "first", got.Series[0].Name)
	assert.Equal(t, "second", gotReversed.Series[0].Name)
	assert.Equal(t, got.Series[0].BorderColor, gotReversed.Series[0].BorderColor)
	assert.NotEqual(t, got.Series[1].BorderColor, gotReversed.Series[0].BorderColor)
}

func TestEnhanceBarDefaults(t *testing.T) {
	t.Parallel()

	got, diags := Enhance(sampleDataset(1), KindBar, nil)
	require.Empty(t, diags)

	series := got.Series[0]
	require.NotNil(t, series.BorderRadius)
	assert.Equal(t, 4, *series.BorderRadius)
	require.NotNil(t, series.BorderWidth)
	assert.Equal(t, 2, *series.BorderWidth)
	assert.Nil(t, series.Tension)
}

func TestEnhanceColoursCategoriesForPieAndDoughnut(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindPie, KindDoughnut} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			got, diags := Enhance(sampleDataset(2), kind, nil)
			require.Empty(t, diags)

			for _, series := range got.Series {
				assert.Equal(t, Colors{Palette[0], Palette[1], Palette[2]}, series.BackgroundColor)
				assert.Equal(t, Colors{"#ffffff"}, series.BorderColor)
				require.NotNil(t, series.BorderWidth)
				assert.Equal(t, 3, *series.BorderWidth)
				assert.Nil(t, series.BorderRadius)
				assert.Nil(t, series.Tension)
			}
		})
	}
}

func TestEnhanceKeepsCallerColours(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(2)
	ds.Series[0].Style = &Style{BackgroundColor: Colors{"rgba(255, 206, 86, 0.5)"}}

	got, _ := Enhance(ds, KindBar, []Style{{}, {BorderColor: Colors{"#000000"}}})

	assert.Equal(t, Colors{"rgba(255, 206, 86, 0.5)"}, got.Series[0].BackgroundColor)
	assert.Equal(t, Colors{Palette[0]}, got.Series[0].BorderColor)
	assert.Equal(t, Colors{Translucent(Palette[1])}, got.Series[1].BackgroundColor)
	assert.Equal(t, Colors{"#000000"}, got.Series[1].BorderColor)
}

func TestEnhanceExplicitStyleBeatsSeriesOverride(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(1)
	ds.Series[0].Style = &Style{BorderColor: Colors{"#111111"}}

	got, _ := Enhance(ds, KindLine, []Style{{BorderColor: Colors{"#222222"}}})
	assert.Equal(t, Colors{"#222222"}, got.Series[0].BorderColor)
}

func TestEnhanceDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(2)
	ds.Series[1].Style = &Style{BackgroundColor: Colors{"#abcdef"}}
	before, err := json.Marshal(ds)
	require.NoError(t, err)

	got, _ := Enhance(ds, KindPie, nil)
	got.Labels[0] = "changed"
	got.Series[0].Values[0] = 99
	got.Series[1].BackgroundColor[0] = "#000000"

	after, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Nil(t, ds.Series[0].Style)
}

func TestEnhanceUnknownKindFallsBackToBar(t *testing.T) {
	t.Parallel()

	got, diags := Enhance(sampleDataset(1), Kind("radar"), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, shared.ValidationWarning, diags[0].Class)
	assert.Contains(t, diags[0].Message, "radar")

	want, _ := Enhance(sampleDataset(1), KindBar, nil)
	assert.Equal(t, want, got)
}

func TestEnhanceAcceptsMixedCaseKind(t *testing.T) {
	t.Parallel()

	got, diags := Enhance(sampleDataset(1), Kind("Doughnut"), nil)
	require.Empty(t, diags)
	assert.Equal(t, Colors{"#ffffff"}, got.Series[0].BorderColor)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{input: "bar", want: KindBar, ok: true},
		{input: " LINE ", want: KindLine, ok: true},
		{input: "Pie", want: KindPie, ok: true},
		{input: "doughnut", want: KindDoughnut, ok: true},
		{input: "scatter", want: Kind("scatter"), ok: false},
		{input: "", want: Kind(""), ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestStyledDatasetJSONShape(t *testing.T) {
	t.Parallel()

	ds := Dataset{
		Labels: []string{"Lights ON", "Lights OFF"},
		Series: []Series{{Name: "Lighting Status", Values: []float64{3, 2}}},
	}
	got, _ := Enhance(ds, KindDoughnut, nil)

	encoded, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"labels": ["Lights ON", "Lights OFF"],
		"datasets": [{
			"label": "Lighting Status",
			"data": [3, 2],
			"backgroundColor": ["#4f46e5", "#db2777"],
			"borderColor": "#ffffff",
			"hoverBackgroundColor": ["#4f46e5", "#db2777"],
			"borderWidth": 3
		}]
	}`, string(encoded))
}

func TestDatasetDecodesInlineStyle(t *testing.T) {
	t.Parallel()

	payload := `{
		"labels": ["Light Mode", "Dark Mode"],
		"datasets": [
			{"label": "Laptop Mode Distribution", "data": [4, 6], "backgroundColor": ["#fff000", "#000fff"]},
			{"label": "plain", "data": [1, 2]}
		]
	}`

	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(payload), &ds))
	require.Len(t, ds.Series, 2)
	require.NotNil(t, ds.Series[0].Style)
	assert.Equal(t, Colors{"#fff000", "#000fff"}, ds.Series[0].BackgroundColor)
	assert.Nil(t, ds.Series[1].Style)
}

func TestPaletteColorWrapsAnyIndex(t *testing.T) {
	t.Parallel()

	n := len(Palette)
	assert.Equal(t, Palette[0], PaletteColor(0))
	assert.Equal(t, Palette[1], PaletteColor(n+1))
	assert.Equal(t, Palette[n-1], PaletteColor(-1))
	assert.NotPanics(t, func() { PaletteColor(math.MinInt) })
	assert.NotPanics(t, func() { PaletteColor(math.MaxInt) })
}
