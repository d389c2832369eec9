// SPDX-License-Identifier: MIT

package inovesa

import (
	"fmt"
	"strings"
)

// Unit is a normalised (lower-case, alias-resolved) unit spec.
type Unit string

// Canonical units. Raw and SyncPeriods ("ts") are stored values and need
// no conversion factor.
const (
	Raw          Unit = "raw"
	SyncPeriods  Unit = "ts"
	Second       Unit = "s"
	Meter        Unit = "m"
	ElectronVolt Unit = "ev"
	Watt         Unit = "w"
	Hertz        Unit = "hz"
	Ohm          Unit = "ohm"
	Ampere       Unit = "a"
	Coulomb      Unit = "c"
	Volt         Unit = "v"
	WattPerHertz Unit = "wphz"

	AmperePerNES        Unit = "apnes"
	CoulombPerNES       Unit = "cpnes"
	AmperePerNBL        Unit = "apnbl"
	CoulombPerNBL       Unit = "cpnbl"
	AmperePerNBLPerNES  Unit = "apnblpnes"
	CoulombPerNBLPerNES Unit = "cpnblpnes"
)

var unitAliases = map[string]Unit{
	"raw": Raw, "ts": SyncPeriods,
	"s": Second, "sec": Second, "second": Second, "seconds": Second,
	"m": Meter, "meter": Meter, "meters": Meter, "metre": Meter, "metres": Meter,
	"ev": ElectronVolt, "electronvolt": ElectronVolt, "electronvolts": ElectronVolt,
	"w": Watt, "watt": Watt, "watts": Watt,
	"hz": Hertz, "hertz": Hertz,
	"ohm": Ohm, "ohms": Ohm,
	"a": Ampere, "amp": Ampere, "ampere": Ampere, "amperes": Ampere,
	"c": Coulomb, "coulomb": Coulomb, "coulombs": Coulomb,
	"v": Volt, "volt": Volt, "volts": Volt,
	"wphz": WattPerHertz, "w/hz": WattPerHertz,
	"apnes": AmperePerNES, "a/nes": AmperePerNES,
	"cpnes": CoulombPerNES, "c/nes": CoulombPerNES,
	"apnbl": AmperePerNBL, "a/nbl": AmperePerNBL,
	"cpnbl": CoulombPerNBL, "c/nbl": CoulombPerNBL,
	"apnblpnes": AmperePerNBLPerNES, "a/nbl/nes": AmperePerNBLPerNES,
	"cpnblpnes": CoulombPerNBLPerNES, "c/nbl/nes": CoulombPerNBLPerNES,
}

// legacyAttrs name the factor attributes up to 0.13.
var legacyAttrs = map[Unit]string{
	Second:              "Second",
	Meter:               "Meter",
	ElectronVolt:        "ElectronVolt",
	Watt:                "Watt",
	Hertz:               "Hertz",
	Ohm:                 "Ohm",
	Ampere:              "Ampere",
	Coulomb:             "Coulomb",
	Volt:                "Volt",
	WattPerHertz:        "WattPerHertz",
	AmperePerNES:        "AmperePerNES",
	CoulombPerNES:       "CoulombPerNES",
	AmperePerNBL:        "AmperePerNBL",
	CoulombPerNBL:       "CoulombPerNBL",
	AmperePerNBLPerNES:  "AmperePerNBLPerNES",
	CoulombPerNBLPerNES: "CoulombPerNBLPerNES",
}

// factor4Attrs override the "Factor4"+legacy rule for simple SI units.
var factor4Attrs = map[Unit]string{
	Second:       "Factor4Seconds",
	Meter:        "Factor4Meters",
	ElectronVolt: "Factor4ElectronVolts",
	Watt:         "Factor4Watts",
	Hertz:        "Factor4Hertz",
	Ohm:          "Factor4Ohms",
	Ampere:       "Factor4Amperes",
	Coulomb:      "Factor4Coulombs",
	Volt:         "Factor4Volts",
}

var unitLabels = map[Unit]string{
	Raw:                 "a.u.",
	SyncPeriods:         "Ts",
	Second:              "s",
	Meter:               "m",
	ElectronVolt:        "eV",
	Watt:                "W",
	Hertz:               "Hz",
	Ohm:                 "Ω",
	Ampere:              "A",
	Coulomb:             "C",
	Volt:                "V",
	WattPerHertz:        "W/Hz",
	AmperePerNES:        "A/nES",
	CoulombPerNES:       "C/nES",
	AmperePerNBL:        "A/nBL",
	CoulombPerNBL:       "C/nBL",
	AmperePerNBLPerNES:  "A/nBL/nES",
	CoulombPerNBLPerNES: "C/nBL/nES",
}

// Composite classifies units converted with two or three factors.
type Composite int

const (
	NotComposite Composite = iota
	// PerSpace is charge or current per second: data[X/nBL] / space[s].
	PerSpace
	// PerEnergy is charge or current per eV: data[X/nES] / energy[eV].
	PerEnergy
	// PerSpaceEnergy is charge or current per second per eV.
	PerSpaceEnergy
)

var compositeSpecs = map[string]Composite{
	"cps": PerSpace, "c/s": PerSpace, "aps": PerSpace, "a/s": PerSpace,
	"c/ev": PerEnergy, "cpev": PerEnergy, "a/ev": PerEnergy, "apev": PerEnergy,
	"cpspev": PerSpaceEnergy, "c/s/ev": PerSpaceEnergy,
	"apspev": PerSpaceEnergy, "a/s/ev": PerSpaceEnergy,
	"cpevps": PerSpaceEnergy, "c/ev/s": PerSpaceEnergy,
	"apevps": PerSpaceEnergy, "a/ev/s": PerSpaceEnergy,
}

var compositeLabels = map[Composite]string{
	PerSpace:       "/s",
	PerEnergy:      "/eV",
	PerSpaceEnergy: "/s/eV",
}

// ClassifyComposite reports the composite kind of spec together with the
// numerator unit it is built on (charge or current per normalised bunch
// length, energy spread, or both).
func ClassifyComposite(spec string) (Composite, Unit) {
	s := strings.ToLower(strings.TrimSpace(spec))
	kind, ok := compositeSpecs[s]
	if !ok {
		return NotComposite, ""
	}
	base := s[:1]
	switch kind {
	case PerSpace:
		return kind, Unit(base + "pnbl")
	case PerEnergy:
		return kind, Unit(base + "pnes")
	default:
		return kind, Unit(base + "pnblpnes")
	}
}

// NormalizeUnit resolves aliases ("seconds", "Coulomb", "W/Hz") to the
// canonical Unit. The empty spec and unknown specs are ErrUnit.
func NormalizeUnit(spec string) (Unit, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return "", fmt.Errorf("no unit given: %w", ErrUnit)
	}
	u, ok := unitAliases[s]
	if !ok {
		return "", fmt.Errorf("%q is not a known unit: %w", spec, ErrUnit)
	}

	return u, nil
}

// NeedsConversion is false for stored-as-is units (raw, ts).
func (u Unit) NeedsConversion() bool {
	return u != Raw && u != SyncPeriods
}

// AttrFromUnit returns the name of the attribute holding the conversion
// factor for spec in files written by version v. ok is false for units that
// need no conversion.
func AttrFromUnit(spec string, v Version) (attr string, ok bool, err error) {
	u, err := NormalizeUnit(spec)
	if err != nil {
		return "", false, err
	}
	if !u.NeedsConversion() {
		return "", false, nil
	}
	legacy := legacyAttrs[u]
	if v.Less(factor4Since) {
		return legacy, true, nil
	}
	if f4, found := factor4Attrs[u]; found {
		return f4, true, nil
	}

	return "Factor4" + legacy, true, nil
}

// LegacyAttrCandidates lists the fallbacks tried when a Factor4 attribute is
// absent: the name without the prefix, then also without a trailing "s".
// Some 0.14.1 builds wrote those older names.
func LegacyAttrCandidates(attr string) []string {
	rest, found := strings.CutPrefix(attr, "Factor4")
	if !found || rest == "" {
		return nil
	}
	out := []string{rest}
	if trimmed := strings.TrimSuffix(rest, "s"); trimmed != rest && trimmed != "" {
		out = append(out, trimmed)
	}

	return out
}

// UnitLabel returns the printable form of spec for axis labels. Unknown specs
// are returned unchanged.
func UnitLabel(spec string) string {
	if kind, base := ClassifyComposite(spec); kind != NotComposite {
		return strings.ToUpper(string(base[:1])) + compositeLabels[kind]
	}
	u, err := NormalizeUnit(spec)
	if err != nil {
		return spec
	}

	return unitLabels[u]
}
