package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/matrix"
	"github.com/stretchr/testify/require"
)

// modernStore builds a small 0.15.1 result file: 3 turns, 4 space bins, 2
// energy bins, one bunch profile and the parameter group.
func modernStore(t *testing.T) *file.MemStore {
	t.Helper()
	profile, err := matrix.NewArray([]int{3, 4}, []float64{
		0, 1, 2, 3,
		10, 11, 12, 13,
		20, 21, 22, 23,
	})
	require.NoError(t, err)

	st := file.NewMemStore().
		PutInts("/Info/Inovesa_v", 0, 15, 1).
		PutVector("/Info/AxisValues_t", 0, 0.5, 1).
		PutVector("/Info/AxisValues_z", -1, 0, 1, 2).
		PutVector("/Info/AxisValues_E", -1, 1).
		PutArray("/BunchProfile/data", profile).
		PutVector("/BunchLength/data", 4, 5, 6)
	st.SetAttr("/Info/Parameters", "BunchCurrent", 1e-3)
	st.SetAttr("/Info/Parameters", "RevolutionFrequency", 2.7e6)
	st.SetAttr("/BunchProfile/data", "Factor4Coulombs", 2)

	return st
}

// legacyStore builds a 0.9.1 file: every time series starts with the
// initial-state row and axes are stored per step.
func legacyStore(t *testing.T) *file.MemStore {
	t.Helper()
	z, err := matrix.NewArray([]int{2, 3}, []float64{-1, 0, 1, 7, 7, 7})
	require.NoError(t, err)

	return file.NewMemStore().
		PutInts("/Info/INOVESA_v", 0, 9, 1).
		PutVector("/Info/AxisValues_t", -1, 0, 1, 2).
		PutArray("/Info/AxisValues_z", z).
		PutVector("/BunchLength/data", 99, 1, 2, 3).
		PutVector("/BunchCurrent/data", 0.5, 0.4, 0.3, 0.2)
}

func writeCfg(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	return p
}
