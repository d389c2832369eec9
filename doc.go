// SPDX-License-Identifier: MIT

// Package lisa reads the HDF5 result files of the Inovesa Vlasov-Fokker-Planck
// solver and turns them into plots and movies.
//
// 🚀 What is lisa?
//
//	A toolkit over Inovesa output that brings together:
//		• Version-aware file access: every file layout from 0.9.1 up
//		• Unit conversion: stored Factor4* attributes, legacy names and composites
//		• Simple plots: line and mesh plots of one file, FFTs, periods, means
//		• Multi plots: the same quantity of many files in one figure
//		• Phase space movies: snapshots, microstructure, CSR and profile panels
//		• Multi-file movies: one movie over a current scan, sorted by current
//
// Everything is organized under these subpackages:
//
//	inovesa/    groups, axes, units and versions of the Inovesa format
//	file/       stores (HDF5 and in-memory), lazy datasets, parameters, file sets
//	data/       unit-converted access on top of file
//	matrix/     the dense n-d arrays every dataset is read into
//	plots/      figures, simple plots, multi plots, phase space movies
//	animation/  frame rendering and GIF, PNG sequence and ffmpeg encoding
//	style/      named plot styles and YAML style sheets
//	config/     runtime options from flags, lisa.yaml and the environment
//	logging/    the Logger interface all packages accept
//	cmd/lisa    the command line
//
// Quick example:
//
//	sp, err := plots.OpenSimplePlotter("run.h5")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sp.Close()
//	fig, err := sp.BunchLength(plots.FFT(plots.FFTReal), plots.Abs())
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = fig.Save("bunch_length.png")
//
// Reading real files needs libhdf5 (cgo); tests run on file.MemStore.
package lisa
