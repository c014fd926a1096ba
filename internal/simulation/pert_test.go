package simulation

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewPERT_Shape(t *testing.T) {
	p, err := NewPERT(0.8, 1.0, 1.3, 4, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatalf("NewPERT failed: %v", err)
	}

	// alpha = 1 + 4*0.2/0.5, beta = 1 + 4*0.3/0.5
	if math.Abs(p.Alpha()-2.6) > 1e-9 {
		t.Errorf("Expected alpha 2.6, got %f", p.Alpha())
	}
	if math.Abs(p.Beta()-3.4) > 1e-9 {
		t.Errorf("Expected beta 3.4, got %f", p.Beta())
	}
	if math.Abs(p.Mean()-(0.8+4+1.3)/6) > 1e-9 {
		t.Errorf("Expected mean %f, got %f", (0.8+4+1.3)/6, p.Mean())
	}
}

func TestNewPERT_Invalid(t *testing.T) {
	tests := []struct {
		name                   string
		min, mode, max, lambda float64
	}{
		{"EqualBounds", 1, 1, 1, 4},
		{"Inverted", 1.5, 1, 0.5, 4},
		{"ModeBelow", 1.1, 1, 1.5, 4},
		{"ModeAbove", 0.5, 1, 0.9, 4},
		{"ZeroLambda", 0.8, 1, 1.3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPERT(tt.min, tt.mode, tt.max, tt.lambda, rand.NewPCG(1, 1)); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestPERT_SamplesWithinBounds(t *testing.T) {
	p, err := NewPERT(0.5, 1.0, 2.0, 4, rand.NewPCG(7, 7))
	if err != nil {
		t.Fatalf("NewPERT failed: %v", err)
	}

	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		x := p.Rand()
		if x < 0.5 || x > 2.0 {
			t.Fatalf("Sample %f outside [0.5, 2.0]", x)
		}
		sum += x
	}
	if mean := sum / n; math.Abs(mean-p.Mean()) > 0.01 {
		t.Errorf("Expected sample mean near %f, got %f", p.Mean(), mean)
	}
}

func TestPERT_CDF(t *testing.T) {
	p, err := NewPERT(0.8, 1.0, 1.3, 4, nil)
	if err != nil {
		t.Fatalf("NewPERT failed: %v", err)
	}

	if p.CDF(0.5) != 0 {
		t.Errorf("Expected CDF 0 below min, got %f", p.CDF(0.5))
	}
	if p.CDF(1.3) != 1 {
		t.Errorf("Expected CDF 1 at max, got %f", p.CDF(1.3))
	}
	c := p.CDF(1.0)
	if c <= 0.3 || c >= 0.7 {
		t.Errorf("Expected CDF at the mode to be central, got %f", c)
	}
	if p.CDF(0.9) >= c || p.CDF(1.1) <= c {
		t.Error("Expected CDF to be increasing")
	}
}
