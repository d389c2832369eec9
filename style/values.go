// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot/vg"
)

// toFloat accepts the numeric kinds produced by Go literals and YAML.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}

	return 0, false
}

func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(x) {
		case "true", "yes", "on":
			return true, true
		case "false", "no", "off":
			return false, true
		}
	}

	return false, false
}

func toList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	}

	return nil, false
}

func toFloats(v any) ([]float64, bool) {
	list, ok := toList(v)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(list))
	for i, x := range list {
		f, ok := toFloat(x)
		if !ok {
			return nil, false
		}
		out[i] = f
	}

	return out, true
}

// Dash patterns of the named line styles, in multiples of the line width.
var namedDashes = map[string][]float64{
	"solid":   nil,
	"-":       nil,
	"dashed":  {3.7, 1.6},
	"--":      {3.7, 1.6},
	"dotted":  {1, 1.65},
	":":       {1, 1.65},
	"dashdot": {6.4, 1.6, 1, 1.6},
	"-.":      {6.4, 1.6, 1, 1.6},
}

// dashSpec is a parsed line style.
type dashSpec struct {
	none    bool
	offset  float64
	pattern []float64
}

// parseDashSpec accepts a named style, "" or "none" (no line), or an
// [offset, [on, off, ...]] pair.
func parseDashSpec(v any) (dashSpec, error) {
	if s, ok := v.(string); ok {
		low := strings.ToLower(strings.TrimSpace(s))
		if low == "" || low == "none" {
			return dashSpec{none: true}, nil
		}
		p, ok := namedDashes[low]
		if !ok {
			return dashSpec{}, fmt.Errorf("line style %q: %w", s, ErrStyle)
		}
		return dashSpec{pattern: p}, nil
	}
	list, ok := toList(v)
	if !ok || len(list) != 2 {
		return dashSpec{}, fmt.Errorf("line style %v: %w", v, ErrStyle)
	}
	off, ok := toFloat(list[0])
	if !ok {
		return dashSpec{}, fmt.Errorf("line style offset %v: %w", list[0], ErrStyle)
	}
	pattern, ok := toFloats(list[1])
	if !ok || len(pattern)%2 != 0 {
		return dashSpec{}, fmt.Errorf("line style pattern %v: %w", list[1], ErrStyle)
	}

	return dashSpec{offset: off, pattern: pattern}, nil
}

// scaled returns the dash pattern and offset for a line of the given width.
func (d dashSpec) scaled(width vg.Length) ([]vg.Length, vg.Length) {
	if len(d.pattern) == 0 {
		return nil, 0
	}
	out := make([]vg.Length, len(d.pattern))
	for i, p := range d.pattern {
		out[i] = vg.Length(p) * width
	}

	return out, vg.Length(d.offset) * width
}
