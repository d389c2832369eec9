// SPDX-License-Identifier: MIT

// Package inovesa describes the layout of Inovesa result files.
//
// Inovesa (a Vlasov-Fokker-Planck solver for electron storage rings) writes
// HDF5 files whose structure changed over releases. This package is the
// single source of truth for that structure and holds no I/O:
//
//   - Version: the program version stored in /Info/Inovesa_v.
//   - Group and Axis: the data groups (bunch_profile, phase_space, ...) and the
//     axes each one carries, in a fixed order.
//   - Layout: the per-version mapping from groups to HDF5 paths, including the
//     renamed and missing groups of 0.9.1 and the source map of >0.13.
//   - Units: normalisation of user unit specs, the attribute holding the
//     conversion factor for a unit, and printable unit labels.
//
// Errors are package sentinels (ErrDataNotInFile, ErrUnit, ErrData, ErrVersion)
// wrapped with context; match them with errors.Is.
package inovesa
