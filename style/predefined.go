// SPDX-License-Identifier: MIT

package style

import (
	"fmt"
	"maps"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// ggplotDots is the dotted grid pattern: offset 0.5, 1 on, 4 off.
var ggplotDots = []any{0.5, []any{1, 4}}

func inverseGGPlot() map[string]any {
	return map[string]any{
		"face:color": "#F1F1F1", "grid:color": "#C3C3C3", "grid:linestyle": ggplotDots,
		"grid:linewidth": 0.8, "label:color": "black", "spine:color": "#D5D5D5",
		"ticklabels:color": "black", "ticks:color": "#555555", "ticks:direction": "out",
		"grid:visible": true,
	}
}

func vegaLite() map[string]any {
	return map[string]any{
		"face:color": "white", "grid:visible": true, "grid:color": "#DFDFDF",
		"grid:style": "solid", "label:color": "black", "spine:top:color": "white",
		"spine:right:color": "white", "spine:bottom:color": "black", "spine:left:color": "black",
		"ticklabels:color": "black", "ticks:color": "black", "ticks:direction": "out",
	}
}

func with(base map[string]any, extra map[string]any) map[string]any {
	maps.Copy(base, extra)
	return base
}

func builtinStyles() map[string]map[string]any {
	s := make(map[string]map[string]any)
	s["ggplot_like"] = map[string]any{
		"face:color": "#E5E5E5", "grid:color": "white", "grid:linestyle": ggplotDots,
		"grid:linewidth": 1.3, "label:color": "#555555", "spine:color": "#D5D5D5",
		"ticklabels:color": "#555555", "ticks:color": "#555555",
		"ticks:direction": "out", "grid:visible": true,
	}
	s["inverse_ggplot"] = with(inverseGGPlot(), map[string]any{"marker:type": "."})
	s["inverse_ggplot-sized"] = with(inverseGGPlot(), map[string]any{"marker:type": ".", "figure:size": []any{16, 9}})
	s["inverse_ggplot-straight"] = with(inverseGGPlot(), map[string]any{"grid:linestyle": "solid"})
	s["inverse_ggplot-straight_solid_border"] = with(inverseGGPlot(), map[string]any{
		"grid:linestyle": "solid", "spine:color": "black",
	})
	s["vega_lite"] = vegaLite()
	s["vega_lite-dotted"] = with(vegaLite(), map[string]any{"marker:type": ".", "line:style": ""})
	s["bordered"] = map[string]any{
		"face:color": "white", "grid:visible": true, "grid:color": "#A1A1A1",
		"grid:style": []any{0.4, []any{1, 4}}, "grid:alpha": 1, "label:color": "black",
		"spine:color": "black", "ticklabels:color": "black", "ticks:color": "black",
		"ticks:direction": "out", "line:color": "palette:tango",
	}
	s["inverse_ggplot-dotted"] = with(inverseGGPlot(), map[string]any{"marker:type": ".", "line:style": ""})
	s["inverse_ggplot-dotted-tango"] = with(inverseGGPlot(), map[string]any{
		"marker:type": ".", "line:style": "", "line:color": "palette:tango",
	})
	s["adefault"] = map[string]any{
		"face:color": "white", "grid:visible": false, "label:color": "black",
		"spine:color": "black", "ticklabels:color": "black", "ticks:color": "black",
		"ticks:direction": "out",
	}

	return s
}

var (
	registryMu sync.RWMutex
	registry   = builtinStyles()
)

// Names lists the registered style names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// lookupNamed returns a copy of the named style's values.
func lookupNamed(name string) (map[string]any, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	v, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("style does not exist: %s: %w", name, ErrStyle)
	}

	return maps.Clone(v), nil
}

// Register validates values and stores them under name, replacing any style
// of that name.
func Register(name string, values map[string]any) error {
	if name == "" {
		return fmt.Errorf("empty style name: %w", ErrStyle)
	}
	for k, v := range values {
		if err := validate(k, v); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = maps.Clone(values)

	return nil
}

// LoadFile registers every style of a YAML style sheet:
//
//	paper:
//	  face:color: white
//	  grid:visible: true
//	  line:color: [black, "#a40000"]
//
// It returns the registered names, sorted. Nothing is registered when any
// style is invalid.
func LoadFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile(%s): %w", path, err)
	}
	var sheet map[string]map[string]any
	if err := yaml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("LoadFile(%s): %v: %w", path, err, ErrStyle)
	}
	names := make([]string, 0, len(sheet))
	for name, values := range sheet {
		for k, v := range values {
			if err := validate(k, v); err != nil {
				return nil, fmt.Errorf("LoadFile(%s): style %s: %w", path, name, err)
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := Register(name, sheet[name]); err != nil {
			return nil, err
		}
	}

	return names, nil
}
