// SPDX-License-Identifier: MIT

package inovesa

// Parameter names Inovesa writes as attributes of /Info/Parameters.
// HDF5 readers cannot always enumerate attributes, so listing all parameters
// looks these names up.
const (
	ParamBunchCurrent        = "BunchCurrent"
	ParamRevolutionFrequency = "RevolutionFrequency"
	ParamSyncFrequency       = "SyncFreq"
	ParamBeamEnergy          = "BeamEnergy"
	ParamEnergySpread        = "EnergySpread"
	ParamBendingRadius       = "BendingRadius"
	ParamHarmonicNumber      = "HarmonicNumber"
	ParamRFVoltage           = "RFVoltage"
	ParamVacuumGap           = "VacuumGap"
	ParamDampingTime         = "DampingTime"
	ParamGridSize            = "GridSize"
	ParamPhaseSpaceSize      = "PhaseSpaceSize"
	ParamSteps               = "steps"
	ParamRotations           = "rotations"
	ParamOutstep             = "outstep"
	ParamPadding             = "padding"
	ParamCutoffFreq          = "CutoffFreq"
	ParamCollimatorRadius    = "CollimatorRadius"
	ParamWallConductivity    = "WallConductivity"
	ParamWallSusceptibility  = "WallSusceptibility"
	ParamSyncPhase           = "SyncPhase"
	ParamAlpha0              = "alpha0"
	ParamAlpha1              = "alpha1"
	ParamAlpha2              = "alpha2"
	ParamBunchSpacing        = "BunchSpacing"
	ParamHaissinskiIter      = "HaissinskiIterations"
)

// KnownParameters is the lookup list, in display order.
var KnownParameters = []string{
	ParamBunchCurrent, ParamRevolutionFrequency, ParamSyncFrequency,
	ParamBeamEnergy, ParamEnergySpread, ParamBendingRadius,
	ParamHarmonicNumber, ParamRFVoltage, ParamVacuumGap, ParamDampingTime,
	ParamGridSize, ParamPhaseSpaceSize, ParamSteps, ParamRotations,
	ParamOutstep, ParamPadding, ParamCutoffFreq, ParamCollimatorRadius,
	ParamWallConductivity, ParamWallSusceptibility, ParamSyncPhase,
	ParamAlpha0, ParamAlpha1, ParamAlpha2, ParamBunchSpacing,
	ParamHaissinskiIter,
}
