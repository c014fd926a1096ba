package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PaddedHeaderMapsToOD(t *testing.T) {
	raw := NewTable(
		[]string{" Original Duration (Days) ", "Actual Duration(d)", "Activity Status", "Resp Discipline", "Resp6"},
		[][]string{
			{"10", "8", "Completed", "", "CON"},
			{"5", "6", "Completed", "  ", "ENG"},
		},
	)

	got, mapping, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{FieldOD, FieldACDur, FieldStatus, FieldGroup}, got.Columns)
	assert.Equal(t, []string{"Resp Discipline"}, mapping.Dropped)
	assert.Contains(t, mapping.Renamed, ColumnRename{From: "Original Duration (Days)", To: FieldOD})
	assert.Contains(t, mapping.Renamed, ColumnRename{From: "Resp6", To: FieldGroup})
	assert.Equal(t, []string{"10", "8", "Completed", "CON"}, got.Rows[0])
}

func TestNormalize_EmptyRespCandidateIsNotAdopted(t *testing.T) {
	raw := NewTable(
		[]string{"Original Duration", "Actual Duration", "Activity Status", "Resp Discipline"},
		[][]string{
			{"10", "8", "Completed", ""},
			{"5", "6", "Completed", ""},
		},
	)

	_, mapping, err := Normalize(raw, NormalizeOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnusableDataset))
	assert.Equal(t, []string{"Resp Discipline"}, mapping.Dropped)
}

func TestNormalize_PlaceholderGroupColumnDropped(t *testing.T) {
	raw := NewTable(
		[]string{"G - Resp", "Original Duration", "Actual Duration", "Activity Status", "Resp6"},
		[][]string{
			{"", "10", "8", "Completed", "CON"},
			{"", "5", "6", "Completed", "ENG"},
		},
	)

	got, mapping, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{FieldOD, FieldACDur, FieldStatus, FieldGroup}, got.Columns)
	assert.Equal(t, []string{FieldGroup}, mapping.Dropped)
	assert.Equal(t, "CON", got.Rows[0][3])
}

func TestNormalize_PopulatedGroupColumnWins(t *testing.T) {
	raw := NewTable(
		[]string{"Resp6", "Original Duration", "Actual Duration", "Activity Status", "G - Resp"},
		[][]string{
			{"X", "10", "8", "Completed", "CON"},
		},
	)

	got, _, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)

	// Resp6 keeps its name because a populated G - Resp already exists.
	assert.Equal(t, []string{"Resp6", FieldOD, FieldACDur, FieldStatus, FieldGroup}, got.Columns)
	assert.Equal(t, "CON", got.Rows[0][got.Index(FieldGroup)])
}

func TestNormalize_FirstNonEmptyCandidateWins(t *testing.T) {
	raw := NewTable(
		[]string{"Original Duration", "Actual Duration", "Activity Status", "Resp1", "RESP2", "Resp3"},
		[][]string{
			{"10", "8", "Completed", "", "ENG", "CON"},
		},
	)

	got, mapping, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{FieldOD, FieldACDur, FieldStatus, FieldGroup, "Resp3"}, got.Columns)
	assert.Equal(t, []string{"Resp1"}, mapping.Dropped)
	assert.Equal(t, "ENG", got.Rows[0][3])
}

func TestNormalize_DuplicateDurationColumnConflicts(t *testing.T) {
	raw := NewTable(
		[]string{"Original Duration", "BL Original Duration", "Actual Duration", "Activity Status", "Resp"},
		[][]string{
			{"10", "12", "8", "Completed", "CON"},
		},
	)

	got, mapping, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"BL Original Duration"}, mapping.Conflicts)
	assert.Equal(t, "10", got.Rows[0][got.Index(FieldOD)])
}

func TestNormalize_MissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		opts    NormalizeOptions
	}{
		{"NoStatus", []string{"Original Duration", "Actual Duration", "Resp"}, NormalizeOptions{}},
		{"NoActual", []string{"Original Duration", "Activity Status", "Resp"}, NormalizeOptions{}},
		{"NoGroup", []string{"Original Duration", "Actual Duration", "Activity Status"}, NormalizeOptions{}},
		{"NoLocation", []string{"Original Duration", "Actual Duration", "Activity Status", "Resp", "Region", "Division"}, NormalizeOptions{ByLocation: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]string, len(tt.columns))
			for i := range row {
				row[i] = "1"
			}
			_, _, err := Normalize(NewTable(tt.columns, [][]string{row}), tt.opts)
			assert.ErrorIs(t, err, ErrUnusableDataset)
		})
	}
}

func TestNormalize_LocationColumnsAccepted(t *testing.T) {
	raw := NewTable(
		[]string{"Original Duration", "Actual Duration", "Activity Status", "Resp", " Region", "Division ", "Location"},
		[][]string{{"10", "8", "Completed", "CON", "North", "Civil", "Site A"}},
	)

	got, _, err := Normalize(raw, NormalizeOptions{ByLocation: true})
	require.NoError(t, err)
	assert.True(t, got.Has(FieldRegion))
	assert.True(t, got.Has(FieldDivision))
	assert.True(t, got.Has(FieldLocation))
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := NewTable(
		[]string{" Original Duration ", "Actual Duration", "Activity Status", "Resp"},
		[][]string{{"10", "8", "Completed", "CON"}},
	)

	_, _, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, " Original Duration ", raw.Columns[0])
	assert.Equal(t, "Resp", raw.Columns[3])
}
