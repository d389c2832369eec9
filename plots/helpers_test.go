package plots_test

import (
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/matrix"
	"github.com/katalvlaran/lisa/plots"
	"github.com/stretchr/testify/require"
)

// resultStore builds a 0.15.1 result file with 4 turns, 5 space bins and 3
// energy bins. The bunch profile peaks at space bin 2 and the energy profile
// at energy bin 1 in every turn.
func resultStore(t *testing.T) *file.MemStore {
	t.Helper()

	profile := make([]float64, 0, 4*5)
	energy := make([]float64, 0, 4*3)
	for k := 1; k <= 4; k++ {
		s := float64(k)
		profile = append(profile, 0, s, 2*s, s, 0)
		energy = append(energy, 0, s, 0)
	}
	bp, err := matrix.NewArray([]int{4, 5}, profile)
	require.NoError(t, err)
	ep, err := matrix.NewArray([]int{4, 3}, energy)
	require.NoError(t, err)

	// phase space value at (turn, x, E) is 100*turn + 10*x + E
	ps := make([]float64, 0, 4*5*3)
	for turn := 0; turn < 4; turn++ {
		for x := 0; x < 5; x++ {
			for e := 0; e < 3; e++ {
				ps = append(ps, float64(100*turn+10*x+e))
			}
		}
	}
	pa, err := matrix.NewArray([]int{4, 5, 3}, ps)
	require.NoError(t, err)

	st := file.NewMemStore().
		PutInts("/Info/Inovesa_v", 0, 15, 1).
		PutVector("/Info/AxisValues_t", 0, 0.5, 1, 1.5).
		PutVector("/Info/AxisValues_z", -2, -1, 0, 1, 2).
		PutVector("/Info/AxisValues_E", -1, 0, 1).
		PutVector("/Info/AxisValues_f", 1, 2, 3).
		PutVector("/BunchLength/data", 1, 2, 3, 4).
		PutVector("/BunchPosition/data", 0, 1, 2, 3).
		PutVector("/CSR/Intensity/data", 4, 3, 2, 1).
		PutArray("/BunchProfile/data", bp).
		PutArray("/EnergyProfile/data", ep).
		PutArray("/PhaseSpace/data", pa).
		PutVector("/Impedance/data/real", 1, 2, 3).
		PutVector("/Impedance/data/imag", 0, 0, 0)

	st.SetAttr("/Info/Parameters", "BunchCurrent", 1e-3)
	st.SetAttr("/Info/AxisValues_z", "Factor4Seconds", 1e-12)
	st.SetAttr("/Info/AxisValues_E", "Factor4ElectronVolts", 1e3)
	st.SetAttr("/Info/AxisValues_f", "Factor4Hertz", 0)
	st.SetAttr("/BunchLength/data", "Factor4Meters", 1e-3)
	st.SetAttr("/BunchPosition/data", "Factor4Meters", 1e-3)
	st.SetAttr("/CSR/Intensity/data", "Factor4Watts", 1)
	st.SetAttr("/BunchProfile/data", "Factor4CoulombPerNBL", 1)
	st.SetAttr("/EnergyProfile/data", "Factor4CoulombPerNES", 1)
	st.SetAttr("/PhaseSpace/data", "Factor4CoulombPerNBLPerNES", 1)
	st.SetAttr("/Impedance/data", "Factor4Ohms", 1)

	return st
}

func openFile(t *testing.T, st file.Store, name string) *file.File {
	t.Helper()
	f, err := file.New(st, name)
	require.NoError(t, err)

	return f
}

func newPlotter(t *testing.T, opts ...plots.Option) *plots.SimplePlotter {
	t.Helper()
	return plots.NewSimplePlotter(openFile(t, resultStore(t), "run.h5"), opts...)
}

func newPhaseSpace(t *testing.T) *plots.PhaseSpace {
	t.Helper()
	return plots.NewPhaseSpace(openFile(t, resultStore(t), "run.h5"))
}
