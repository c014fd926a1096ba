package simulation

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// PERT is a four-parameter Beta-PERT distribution on [Min, Max].
type PERT struct {
	Min    float64
	Mode   float64
	Max    float64
	Lambda float64

	beta distuv.Beta
}

// NewPERT fits a Beta-PERT distribution with the classic shape translation
//
//	alpha = 1 + lambda*(mode-min)/(max-min)
//	beta  = 1 + lambda*(max-mode)/(max-min)
//
// The mode must lie within [min, max] and the bounds must differ.
func NewPERT(min, mode, max, lambda float64, src rand.Source) (*PERT, error) {
	if !(max > min) {
		return nil, fmt.Errorf("invalid bounds: min %.4f must be below max %.4f", min, max)
	}
	if mode < min || mode > max {
		return nil, fmt.Errorf("mode %.4f outside [%.4f, %.4f]", mode, min, max)
	}
	if lambda <= 0 {
		return nil, fmt.Errorf("lambda must be positive, got %.4f", lambda)
	}

	span := max - min
	return &PERT{
		Min:    min,
		Mode:   mode,
		Max:    max,
		Lambda: lambda,
		beta: distuv.Beta{
			Alpha: 1 + lambda*(mode-min)/span,
			Beta:  1 + lambda*(max-mode)/span,
			Src:   src,
		},
	}, nil
}

// Alpha returns the first shape parameter of the underlying Beta distribution.
func (p *PERT) Alpha() float64 { return p.beta.Alpha }

// Beta returns the second shape parameter of the underlying Beta distribution.
func (p *PERT) Beta() float64 { return p.beta.Beta }

// Rand draws one sample scaled onto [Min, Max].
func (p *PERT) Rand() float64 {
	return p.Min + (p.Max-p.Min)*p.beta.Rand()
}

// CDF returns P(X <= x).
func (p *PERT) CDF(x float64) float64 {
	switch {
	case x <= p.Min:
		return 0
	case x >= p.Max:
		return 1
	}
	return p.beta.CDF((x - p.Min) / (p.Max - p.Min))
}

// Mean returns the expected value (min + lambda*mode + max) / (lambda + 2).
func (p *PERT) Mean() float64 {
	return (p.Min + p.Lambda*p.Mode + p.Max) / (p.Lambda + 2)
}
