package file_test

import (
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCfgCandidates(t *testing.T) {
	assert.Equal(t, []string{"/r/run.cfg", "/r/run.h5.cfg"}, file.CfgCandidates("/r/run.h5"))
	assert.Equal(t, []string{"/r/run.cfg"}, file.CfgCandidates("/r/run"))
}

func TestReadCfgValue(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run.cfg")
	writeCfg(t, p, "# inovesa run\nBunchCurrent = 0.0015\nPhaseSpaceSize=256\nName=test\n")

	v, err := file.ReadCfgValue(p, "BunchCurrent")
	require.NoError(t, err)
	assert.Equal(t, 0.0015, v)

	v, err = file.ReadCfgValue(p, "PhaseSpaceSize")
	require.NoError(t, err)
	assert.Equal(t, 256.0, v)

	_, err = file.ReadCfgValue(p, "Name") // not a number
	require.ErrorIs(t, err, file.ErrCfg)

	_, err = file.ReadCfgValue(p, "Missing")
	require.ErrorIs(t, err, file.ErrCfg)

	_, err = file.ReadCfgValue(p+".nope", "BunchCurrent")
	require.ErrorIs(t, err, file.ErrCfg)
}

func TestReadSideCfgValueSecondCandidate(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, filepath.Join(dir, "run.h5.cfg"), "BunchCurrent=3e-4\n")

	v, err := file.ReadSideCfgValue(filepath.Join(dir, "run.h5"), "BunchCurrent")
	require.NoError(t, err)
	assert.Equal(t, 3e-4, v)

	_, err = file.ReadSideCfgValue(filepath.Join(dir, "other.h5"), "BunchCurrent")
	require.ErrorIs(t, err, file.ErrCfg)
}
