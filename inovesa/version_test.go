package inovesa_test

import (
	"testing"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := inovesa.ParseVersion([]int{0, 15, 1})
	require.NoError(t, err)
	assert.Equal(t, inovesa.V15_1, v)
	assert.Equal(t, "0.15.1", v.String())

	short, err := inovesa.ParseVersion([]int{1})
	require.NoError(t, err)
	assert.Equal(t, inovesa.Version{Major: 1}, short)

	_, err = inovesa.ParseVersion(nil)
	assert.ErrorIs(t, err, inovesa.ErrVersion)
	_, err = inovesa.ParseVersion([]int{0, 1, 2, 3})
	assert.ErrorIs(t, err, inovesa.ErrVersion)
	_, err = inovesa.ParseVersion([]int{0, -1})
	assert.ErrorIs(t, err, inovesa.ErrVersion)
}

func TestParseVersionString(t *testing.T) {
	v, err := inovesa.ParseVersionString("v0.14.1")
	require.NoError(t, err)
	assert.Equal(t, inovesa.V14_1, v)

	_, err = inovesa.ParseVersionString("0.x")
	assert.ErrorIs(t, err, inovesa.ErrVersion)
}

func TestVersionOrdering(t *testing.T) {
	ordered := []inovesa.Version{inovesa.V9_1, inovesa.V13_0, inovesa.V14_1, inovesa.V15_1, {Major: 1}}
	for i := 0; i+1 < len(ordered); i++ {
		a, b := ordered[i], ordered[i+1]
		assert.True(t, a.Less(b), "%s < %s", a, b)
		assert.True(t, b.After(a), "%s > %s", b, a)
		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 1, b.Compare(a))
	}
	assert.True(t, inovesa.V13_0.Equal(inovesa.Version{Major: 0, Minor: 13}))
	assert.Equal(t, 0, inovesa.V13_0.Compare(inovesa.V13_0))
}
