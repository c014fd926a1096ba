package schedule

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, rows [][]string) *Table {
	t.Helper()
	raw := NewTable([]string{"Original Duration", "Actual Duration", "Activity Status", "Resp"}, rows)
	n, _, err := Normalize(raw, NormalizeOptions{})
	require.NoError(t, err)
	return n
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		od, ac   float64
		expected float64
	}{
		{"Early", 10, 8, 8},
		{"OnTime", 10, 10, 10},
		{"LateWithinCap", 10, 19, 19},
		{"AtCap", 10, 20, 20},
		{"BeyondCap", 10, 45, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Record{OriginalDuration: tt.od, ActualDuration: tt.ac}
			got := Clamp(in)
			assert.Equal(t, tt.expected, got.ActualDuration)
			assert.Equal(t, tt.ac, in.ActualDuration, "Clamp must not modify its argument")
		})
	}
}

func TestClean_StepsInOrder(t *testing.T) {
	tbl := normalized(t, [][]string{
		{"10", "8", "Completed", "CON"},      // kept
		{"", "8", "Completed", "CON"},        // missing OD
		{"10", "n/a", "Completed", "CON"},    // non-numeric ACDur
		{"10", "8", "In Progress", "CON"},    // status
		{"10", "8", "completed", "CON"},      // status is case-sensitive
		{"0", "3", "Completed", "CON"},       // zero OD
		{"4", "30", "Completed", "ENG"},      // clamped to 8
		{"6", "6", "Completed", ""},          // missing group
		{"1,000", "900", "Completed", "CON"}, // thousands separator
	})

	records, st := Clean(tbl)

	require.Len(t, records, 3)
	assert.Equal(t, 9, st.Input)
	assert.Equal(t, 2, st.MissingNumbers)
	assert.Equal(t, 2, st.NotCompleted)
	assert.Equal(t, 1, st.ZeroDuration)
	assert.Equal(t, 1, st.Clamped)
	assert.Equal(t, 1, st.MissingGroup)
	assert.Equal(t, 3, st.Output)

	assert.Equal(t, Record{OriginalDuration: 10, ActualDuration: 8, Status: StatusCompleted, Group: "CON"}, records[0])
	assert.Equal(t, 8.0, records[1].ActualDuration)
	assert.Equal(t, 1000.0, records[2].OriginalDuration)
}

func TestClean_ClampInvariant(t *testing.T) {
	rows := make([][]string, 0, 50)
	for i := 1; i <= 50; i++ {
		od := float64(i % 7)
		ac := float64(i * 3 % 31)
		rows = append(rows, []string{strconv.FormatFloat(od, 'f', -1, 64), strconv.FormatFloat(ac, 'f', -1, 64), StatusCompleted, "R1"})
	}

	records, st := Clean(normalized(t, rows))
	assert.LessOrEqual(t, st.Output, st.Input)
	for _, r := range records {
		assert.NotZero(t, r.OriginalDuration)
		assert.LessOrEqual(t, r.ActualDuration, 2*r.OriginalDuration)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{" 12.5 ", 12.5, true},
		{"1,250", 1250, true},
		{"-3", -3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"10d", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseNumber(%q)", tt.in)
	}
}
