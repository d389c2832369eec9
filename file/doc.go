// SPDX-License-Identifier: MIT

// Package file gives version-aware access to Inovesa result files.
//
// A File wraps a Store (HDF5 on disk, or an in-memory MemStore) and resolves
// data groups through the inovesa.Layout of the file's version:
//
//	f, err := file.Open("run.h5")
//	c, err := f.Get(inovesa.BunchProfile)               // time, space, data
//	ds, err := f.Dataset(inovesa.BunchProfile, inovesa.Data)
//	arr, err := ds.Array()                              // loaded once, cached
//
// Datasets are resolved once per group and loaded lazily; Preload reads a
// whole group eagerly. Files written by Inovesa 0.9.1 are normalised on load:
// their time series drop the leading initial-state row and their per-step axes
// are reduced to the first step.
//
// Parameters reads /Info/Parameters, falling back to the ".cfg" side file
// that older Inovesa runs leave next to the result. MultiFile collects the
// results of a directory and orders them by bunch current.
package file
