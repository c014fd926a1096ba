package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

// Ratio is a dimensionless figure that may be undefined.
// Invalid ratios serialize as JSON null.
type Ratio struct {
	Value float64
	Valid bool
}

// Known wraps a defined ratio.
func Known(v float64) Ratio {
	return Ratio{Value: v, Valid: true}
}

// Unknown is the undefined ratio.
var Unknown = Ratio{}

// Ptr returns nil for an undefined ratio.
func (r Ratio) Ptr() *float64 {
	if !r.Valid {
		return nil
	}
	v := r.Value
	return &v
}

// FromPtr is the inverse of Ptr.
func FromPtr(p *float64) Ratio {
	if p == nil || math.IsNaN(*p) {
		return Unknown
	}
	return Known(*p)
}

func (r Ratio) String() string {
	if !r.Valid {
		return "-"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var p *float64
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = FromPtr(p)
	return nil
}

// Round4 rounds half-to-even at four decimal places.
func Round4(v float64) float64 {
	return math.RoundToEven(v*1e4) / 1e4
}

// WeightedRatio returns sum(actual) / sum(planned), undefined when the denominator is zero.
func WeightedRatio(actual, planned float64) Ratio {
	if planned == 0 {
		return Unknown
	}
	r := actual / planned
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Unknown
	}
	return Known(Round4(r))
}
