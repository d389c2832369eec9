// SPDX-License-Identifier: MIT

// Package style configures the look of plots.
//
// A Style is a set of "selector:attribute" or "selector:sub:attribute" keys.
// Leaving out the sub selector sets the attribute for every sub selector:
//
//	s, err := style.New(map[string]any{
//		"face:color":      "#F1F1F1",
//		"grid:linestyle":  []any{0.5, []any{1, 4}}, // offset, on/off pattern
//		"spine:top:color": "white",
//		"line:color":      "palette:tango",
//	})
//
// Keys and values are validated when they are set, so Apply never fails.
// Apply styles the axes of a gonum plot before series are added; Overlay
// adds what is drawn on top (a grid above the data, the top and right
// spines). LineStyle(i) returns the line and marker style of the i-th series,
// cycling through the line palette.
//
// Predefined styles (ggplot_like, vega_lite, bordered, ...) are available by
// name; LoadFile registers more from a YAML style sheet.
package style
