// SPDX-License-Identifier: MIT

package plots

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Prefix is an SI prefix and the factor it stands for.
type Prefix struct {
	Symbol string
	Factor float64
}

var prefixes = []Prefix{
	{"T", 1e12}, {"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"", 1},
	{"m", 1e-3}, {"μ", 1e-6}, {"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15},
}

// MetricPrefix picks the prefix for data shown on one axis: the largest one
// not exceeding the midpoint between max(min, 0) and max. Empty data and a
// zero midpoint use no prefix.
func MetricPrefix(values ...float64) Prefix {
	vals := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Prefix{"", 1}
	}
	ma := floats.Max(vals)
	mi := math.Max(floats.Min(vals), 0)
	mean := (mi + ma) / 2
	for _, p := range prefixes {
		if p.Factor <= mean {
			return p
		}
	}
	if mean == 0 {
		return Prefix{"", 1}
	}

	return prefixes[len(prefixes)-1]
}

// Scale divides values by the prefix factor.
func (p Prefix) Scale(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / p.Factor
	}

	return out
}
