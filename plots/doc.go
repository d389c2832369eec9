// SPDX-License-Identifier: MIT

// Package plots draws Inovesa results.
//
// A Figure is a grid of panels, each holding line series, an optional heat
// map with its colour bar, and text. Figures render through gonum/plot to
// images (Render) or files (Save, format by extension).
//
// SimplePlotter draws the standard quantities of one file with sensible
// units and labels:
//
//	sp, err := plots.OpenSimplePlotter("run.h5")
//	fig, err := sp.BunchLength()
//	fig, err = sp.BunchLength(plots.OnFigure(fig), plots.FFT(plots.FFTReal), plots.Abs())
//	fig, err = sp.BunchProfile(plots.Period(-1))   // last synchrotron period
//	err = fig.Save("profile.png")
//
// MultiPlot repeats a plot over several files on one figure. PhaseSpace
// renders phase space and microstructure movies with optional CSR intensity
// and bunch profile side panels; MultiPhaseSpaceMovie joins the phase space
// movies of a directory of runs, ordered by bunch current.
package plots
