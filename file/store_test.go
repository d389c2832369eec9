package file_test

import (
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGroupsAndDatasets(t *testing.T) {
	st := file.NewMemStore().PutVector("/CSR/Intensity/data", 1, 2)

	assert.True(t, st.Exists("/CSR"))           // parent groups are implied
	assert.True(t, st.Exists("CSR/Intensity")) // leading slash optional
	assert.True(t, st.Exists("/CSR/Intensity/data"))
	assert.False(t, st.Exists("/CSR/Spectrum"))
	assert.Equal(t, []string{"/CSR/Intensity/data"}, st.Paths())

	a, err := st.ReadArray("/CSR/Intensity/data")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, a.Values())

	_, err = st.ReadArray("/CSR/Spectrum/data")
	require.ErrorIs(t, err, file.ErrNotFound)
}

func TestMemStoreIntsAndAttrs(t *testing.T) {
	st := file.NewMemStore().PutInts("/Info/Inovesa_v", 0, 15, 1)
	st.SetAttr("/Info/Parameters", "BunchCurrent", 1e-3)

	iv, err := st.ReadInts("/Info/Inovesa_v")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 15, 1}, iv)

	arr, err := st.ReadArray("/Info/Inovesa_v") // integer datasets read as float too
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 15, 1}, arr.Values())

	assert.True(t, st.Exists("/Info/Parameters"))
	v, err := st.Attr("/Info/Parameters", "BunchCurrent")
	require.NoError(t, err)
	assert.Equal(t, 1e-3, v)

	_, err = st.Attr("/Info/Parameters", "BeamEnergy")
	require.ErrorIs(t, err, file.ErrNotFound)

	require.NoError(t, st.Close())
	_, err = st.ReadInts("/Info/Inovesa_v")
	require.ErrorIs(t, err, file.ErrClosed)
	_, err = st.Attr("/Info/Parameters", "BunchCurrent")
	require.ErrorIs(t, err, file.ErrClosed)
}
