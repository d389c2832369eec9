// SPDX-License-Identifier: MIT

// Package data reads Inovesa results in physical units.
//
// Inovesa stores values in normalised units and records the conversion factor
// as an attribute of every dataset. Data looks the factor up for the unit the
// caller asks for and returns converted copies:
//
//	d, err := data.Open("run.h5")
//	z, err := d.Get(inovesa.BunchProfile, inovesa.Space, "s")     // seconds
//	q, err := d.Get(inovesa.BunchProfile, inovesa.Data, "c/s")    // C/s, composite
//	t, err := d.Get(inovesa.BunchProfile, inovesa.Time, "ts")     // as stored
//	p, err := d.Get(inovesa.PhaseSpace, inovesa.Data, "cpnblpnes", data.WithIndex(10))
//
// Composite units divide a per-normalised-length or per-normalised-spread
// factor by the factor of the matching axis:
//
//	c/s    = data[C/nBL]     / space[s]
//	c/ev   = data[C/nES]     / energy[eV]
//	c/s/ev = data[C/nBL/nES] / energy[eV] / space[s]
//
// The same holds for currents (a/s, a/ev, a/s/ev).
package data
