package stats

import (
	"encoding/json"
	"testing"
)

func TestRatio_JSON(t *testing.T) {
	s := Summary{
		GroupKey:   GroupKey{Group: "R1"},
		Activities: 3,
		Min:        Known(0.8),
		MostLikely: Unknown,
		Max:        Known(1.25),
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"G - Resp":"R1","activities":3,"Min":0.8,"Most Likely":null,"Max":1.25}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	var back Summary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != s {
		t.Errorf("Expected %+v, got %+v", s, back)
	}
}

func TestWeightedRatio(t *testing.T) {
	if r := WeightedRatio(5, 0); r.Valid {
		t.Errorf("Expected undefined ratio for zero denominator, got %v", r)
	}
	if r := WeightedRatio(2, 3); r != Known(0.6667) {
		t.Errorf("Expected 0.6667, got %v", r)
	}
	if r := WeightedRatio(0, 3); r != Known(0) {
		t.Errorf("Expected 0, got %v", r)
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23456, 1.2346},
		{0.8, 0.8},
		{2.0, 2.0},
		{1.0 / 3, 0.3333},
	}
	for _, tt := range tests {
		if got := Round4(tt.in); got != tt.want {
			t.Errorf("Round4(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestRatio_Ptr(t *testing.T) {
	if Unknown.Ptr() != nil {
		t.Error("Expected nil pointer for undefined ratio")
	}
	if p := Known(1.5).Ptr(); p == nil || *p != 1.5 {
		t.Errorf("Expected 1.5, got %v", p)
	}
	if FromPtr(nil).Valid {
		t.Error("Expected nil to map to an undefined ratio")
	}
	if Unknown.String() != "-" {
		t.Errorf("Expected '-', got %q", Unknown.String())
	}
}
