// SPDX-License-Identifier: MIT

package inovesa

import (
	"fmt"
	"strings"
)

// Axis selects one element of a data group.
type Axis string

const (
	Time      Axis = "timeaxis"
	Space     Axis = "spaceaxis"
	Energy    Axis = "energyaxis"
	Frequency Axis = "frequencyaxis"
	Data      Axis = "data"
	Real      Axis = "real"
	Imag      Axis = "imag"
	XData     Axis = "xdata"
	YData     Axis = "ydata"
	// DataGroup is the data group itself; it carries attributes only.
	DataGroup Axis = "datagroup"
)

// IsAxisValues reports whether a is one of the shared /Info/AxisValues_* axes.
func (a Axis) IsAxisValues() bool {
	_, ok := axisDatasets[a]
	return ok
}

// IsData reports whether a addresses per-group payload (data, real, imag, x, y).
func (a Axis) IsData() bool {
	switch a {
	case Data, Real, Imag, XData, YData:
		return true
	}

	return false
}

// Group names a data group the way users address it.
type Group string

const (
	EnergySpread    Group = "energy_spread"
	BunchLength     Group = "bunch_length"
	BunchPosition   Group = "bunch_position"
	BunchPopulation Group = "bunch_population"
	BunchProfile    Group = "bunch_profile"
	CSRIntensity    Group = "csr_intensity"
	CSRSpectrum     Group = "csr_spectrum"
	EnergyProfile   Group = "energy_profile"
	Impedance       Group = "impedance"
	Particles       Group = "particles"
	PhaseSpace      Group = "phase_space"
	WakePotential   Group = "wake_potential"
	SourceMap       Group = "source_map"
	Parameters      Group = "parameters"
)

// groupOrder fixes iteration order for Groups().
var groupOrder = []Group{
	EnergySpread, BunchLength, BunchPosition, BunchPopulation, BunchProfile,
	CSRIntensity, CSRSpectrum, EnergyProfile, Impedance, Particles,
	PhaseSpace, WakePotential, SourceMap, Parameters,
}

var axisDatasets = map[Axis]string{
	Time:      "/Info/AxisValues_t",
	Space:     "/Info/AxisValues_z",
	Energy:    "/Info/AxisValues_E",
	Frequency: "/Info/AxisValues_f",
}

var dataDatasets = map[Axis]string{
	Data:      "data",
	Real:      "data/real",
	Imag:      "data/imag",
	XData:     "data/x",
	YData:     "data/y",
	DataGroup: "data",
}

// ParametersPath is the group holding the simulation parameters as attributes.
const ParametersPath = "Info/Parameters"

// Layout maps groups to HDF5 paths and axis lists for one Inovesa version.
// It is immutable after NewLayout.
type Layout struct {
	version Version
	paths   map[Group]string
	specs   map[Group][]Axis
}

// NewLayout returns the file layout written by version v.
func NewLayout(v Version) *Layout {
	specs := map[Group][]Axis{
		BunchLength:     {Time, Data},
		BunchPopulation: {Time, Data},
		BunchPosition:   {Time, Data},
		BunchProfile:    {Time, Space, Data},
		CSRIntensity:    {Time, Data},
		CSRSpectrum:     {Time, Frequency, Data},
		EnergyProfile:   {Time, Energy, Data},
		EnergySpread:    {Time, Data},
		Impedance:       {Frequency, Real, Imag, DataGroup},
		Particles:       {Time, Data},
		WakePotential:   {Time, Space, Data},
		PhaseSpace:      {Time, Space, Energy, Data},
	}
	paths := map[Group]string{
		EnergySpread:    "EnergySpread",
		BunchLength:     "BunchLength",
		BunchPosition:   "BunchPosition",
		BunchPopulation: "BunchPopulation",
		BunchProfile:    "BunchProfile",
		CSRIntensity:    "CSR/Intensity",
		CSRSpectrum:     "CSR/Spectrum",
		EnergyProfile:   "EnergyProfile",
		Impedance:       "Impedance",
		Particles:       "Particles",
		PhaseSpace:      "PhaseSpace",
		WakePotential:   "WakePotential",
		Parameters:      ParametersPath,
	}
	if v.After(V13_0) {
		specs[SourceMap] = []Axis{Space, Energy, XData, YData}
		paths[SourceMap] = "SourceMap"
	}
	if v.Equal(V9_1) {
		paths[CSRIntensity] = "CSRPower"
		paths[CSRSpectrum] = "CSRSpectrum"
		paths[BunchPopulation] = "BunchCurrent"
		delete(paths, Particles)
		delete(paths, Parameters)
		delete(paths, EnergyProfile)
	}

	return &Layout{version: v, paths: paths, specs: specs}
}

// Version returns the version the layout was built for.
func (l *Layout) Version() Version { return l.version }

// Legacy reports the 0.9.1 layout, whose time series carry a leading
// initial-state row and whose axes are stored per time step.
func (l *Layout) Legacy() bool { return l.version.Equal(V9_1) }

// Groups returns the groups present in this layout, in a stable order.
func (l *Layout) Groups() []Group {
	out := make([]Group, 0, len(l.paths))
	for _, g := range groupOrder {
		if _, ok := l.paths[g]; ok {
			out = append(out, g)
		}
	}

	return out
}

// Has reports whether g exists in this layout.
func (l *Layout) Has(g Group) bool {
	_, ok := l.paths[g]
	return ok
}

// Lookup resolves a user supplied name: either a group name (bunch_profile)
// or the HDF5 path of a group (BunchProfile, CSR/Intensity).
func (l *Layout) Lookup(name string) (Group, error) {
	g := Group(name)
	if _, ok := l.paths[g]; ok {
		return g, nil
	}
	for _, g := range groupOrder {
		if p, ok := l.paths[g]; ok && p == name {
			return g, nil
		}
	}

	return "", fmt.Errorf("%q does not exist in file: %w", name, ErrDataNotInFile)
}

// Path returns the HDF5 path of g.
func (l *Layout) Path(g Group) (string, error) {
	p, ok := l.paths[g]
	if !ok {
		return "", fmt.Errorf("%q does not exist in file: %w", g, ErrDataNotInFile)
	}

	return p, nil
}

// AxesFor returns the ordered axes of g (a copy).
func (l *Layout) AxesFor(g Group) ([]Axis, error) {
	spec, ok := l.specs[g]
	if !ok {
		return nil, fmt.Errorf("%q is not a valid dataset: %w", g, ErrDataNotInFile)
	}

	return append([]Axis(nil), spec...), nil
}

// HasAxis reports whether g carries axis a.
func (l *Layout) HasAxis(g Group, a Axis) bool {
	for _, x := range l.specs[g] {
		if x == a {
			return true
		}
	}

	return false
}

// AxisPath returns the dataset path of a relative to g's group: absolute for
// the shared axis values, relative ("data", "data/real") otherwise.
func (l *Layout) AxisPath(a Axis, g Group) (string, error) {
	if _, ok := l.specs[g]; !ok {
		return "", fmt.Errorf("%q is not a valid dataset: %w", g, ErrDataNotInFile)
	}
	if !l.HasAxis(g, a) {
		return "", fmt.Errorf("%q is not in group %q: %w", a, g, ErrDataNotInFile)
	}
	if p, ok := axisDatasets[a]; ok {
		return p, nil
	}

	return dataDatasets[a], nil
}

// DatasetPath returns the absolute HDF5 path of axis a of group g.
func (l *Layout) DatasetPath(g Group, a Axis) (string, error) {
	gp, err := l.Path(g)
	if err != nil {
		return "", err
	}
	ap, err := l.AxisPath(a, g)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(ap, "/") {
		return ap, nil
	}

	return "/" + gp + "/" + ap, nil
}
