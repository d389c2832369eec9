// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"sort"
	"strings"
)

// Selector describes one top-level selector with its sub selectors and
// attributes. Subs is empty for selectors without sub selectors.
type Selector struct {
	Name  string
	Subs  []string
	Attrs []string
}

var selectorTable = map[string]Selector{
	"spine":      {Name: "spine", Subs: []string{"top", "bottom", "right", "left"}, Attrs: []string{"color"}},
	"figure":     {Name: "figure", Attrs: []string{"size"}},
	"label":      {Name: "label", Subs: []string{"x", "y"}, Attrs: []string{"color", "fontsize", "fontfamily"}},
	"ticklabels": {Name: "ticklabels", Subs: []string{"x", "y"}, Attrs: []string{"color", "fontsize", "fontfamily"}},
	"ticks":      {Name: "ticks", Subs: []string{"x", "y"}, Attrs: []string{"color", "below", "direction"}},
	"grid":       {Name: "grid", Attrs: []string{"color", "alpha", "linewidth", "dashes", "linestyle", "visible", "style"}},
	"face":       {Name: "face", Attrs: []string{"color"}},
	"legend":     {Name: "legend", Attrs: []string{"fontfamily", "fontsize", "color"}},
	"marker":     {Name: "marker", Attrs: []string{"type", "edgecolor", "facecolor", "size"}},
	"line":       {Name: "line", Attrs: []string{"style", "color", "width"}},
}

// aliases map an attribute onto another of the same selector.
var aliases = map[string]string{"grid:style": "linestyle"}

// Selectors lists every selector, sorted by name.
func Selectors() []Selector {
	out := make([]Selector, 0, len(selectorTable))
	for _, s := range selectorTable {
		out = append(out, Selector{
			Name:  s.Name,
			Subs:  append([]string(nil), s.Subs...),
			Attrs: append([]string(nil), s.Attrs...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// key is a parsed style key. subs holds every sub selector the key applies
// to; explicit is true when the key named one.
type key struct {
	sel      string
	subs     []string
	attr     string
	explicit bool
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}

	return false
}

// splitKey validates and parses "sel:attr", "sel::attr" or "sel:sub:attr".
func splitKey(k string) (key, error) {
	parts := strings.Split(k, ":")
	var sel, sub, attr string
	switch len(parts) {
	case 2:
		sel, attr = parts[0], parts[1]
	case 3:
		sel, sub, attr = parts[0], parts[1], parts[2]
	default:
		return key{}, fmt.Errorf("%q: not enough specifiers: %w", k, ErrStyle)
	}
	desc, ok := selectorTable[sel]
	if !ok {
		return key{}, fmt.Errorf("unknown specifier: %s: %w", sel, ErrStyle)
	}
	out := key{sel: sel, attr: attr}
	if sub == "" {
		out.subs = desc.Subs
	} else {
		if !contains(desc.Subs, sub) {
			return key{}, fmt.Errorf("unknown sub specifier: %s: %w", sub, ErrStyle)
		}
		out.subs, out.explicit = []string{sub}, true
	}
	if !contains(desc.Attrs, attr) {
		return key{}, fmt.Errorf("unknown attribute: %s: %w", attr, ErrStyle)
	}
	if target, ok := aliases[sel+":"+attr]; ok {
		out.attr = target
	}

	return out, nil
}
