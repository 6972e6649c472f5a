package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestedMoveUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SuggestedMove
		wantErr bool
	}{
		{
			name:  "triple",
			input: `["emp001", "ZoneA-R1C2", 1.5]`,
			want:  SuggestedMove{EmployeeID: "emp001", SeatID: "ZoneA-R1C2", SavingsKWh: 1.5},
		},
		{
			name:  "pair without savings",
			input: `["emp002", "ZoneB-R3C4"]`,
			want:  SuggestedMove{EmployeeID: "emp002", SeatID: "ZoneB-R3C4"},
		},
		{
			name:  "null savings",
			input: `["emp003", "ZoneC-R1C1", null]`,
			want:  SuggestedMove{EmployeeID: "emp003", SeatID: "ZoneC-R1C1"},
		},
		{
			name:    "single element",
			input:   `["emp004"]`,
			wantErr: true,
		},
		{
			name:    "object form",
			input:   `{"employee_id": "emp005"}`,
			wantErr: true,
		},
		{
			name:    "numeric seat id",
			input:   `["emp006", 12, 1.0]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got SuggestedMove
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeatingSuggestionDecodesMoveList(t *testing.T) {
	t.Parallel()

	payload := `{
		"message": "Consolidate ZoneC into ZoneA",
		"suggested_moves": [["emp010", "ZoneA-R1C1", 2.25], ["emp011", "ZoneA-R1C2", 0.75]],
		"estimated_energy_saving_kwh": 3.0
	}`

	var got SeatingSuggestion
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	require.Len(t, got.SuggestedMoves, 2)
	assert.Equal(t, "emp011", got.SuggestedMoves[1].EmployeeID)
	assert.Equal(t, 2.25, got.SuggestedMoves[0].SavingsKWh)
	require.NotNil(t, got.EstimatedEnergySavingKWh)
	assert.Equal(t, 3.0, *got.EstimatedEnergySavingKWh)

	encoded, err := json.Marshal(got.SuggestedMoves[0])
	require.NoError(t, err)
	assert.JSONEq(t, `["emp010", "ZoneA-R1C1", 2.25]`, string(encoded))
}

func TestSeatWithoutEmployeeOmitsField(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(Seat{SeatID: "ZoneA-R1C1", Status: SeatUnoccupied})
	require.NoError(t, err)
	assert.JSONEq(t, `{"seat_id": "ZoneA-R1C1", "status": "unoccupied"}`, string(encoded))
}
