package inovesa_test

import (
	"testing"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxesForFollowsGroupOrder(t *testing.T) {
	l := inovesa.NewLayout(inovesa.V15_1)

	tests := []struct {
		group inovesa.Group
		want  []inovesa.Axis
	}{
		{inovesa.BunchLength, []inovesa.Axis{inovesa.Time, inovesa.Data}},
		{inovesa.BunchProfile, []inovesa.Axis{inovesa.Time, inovesa.Space, inovesa.Data}},
		{inovesa.CSRSpectrum, []inovesa.Axis{inovesa.Time, inovesa.Frequency, inovesa.Data}},
		{inovesa.EnergyProfile, []inovesa.Axis{inovesa.Time, inovesa.Energy, inovesa.Data}},
		{inovesa.Impedance, []inovesa.Axis{inovesa.Frequency, inovesa.Real, inovesa.Imag, inovesa.DataGroup}},
		{inovesa.PhaseSpace, []inovesa.Axis{inovesa.Time, inovesa.Space, inovesa.Energy, inovesa.Data}},
		{inovesa.SourceMap, []inovesa.Axis{inovesa.Space, inovesa.Energy, inovesa.XData, inovesa.YData}},
	}
	for _, tc := range tests {
		t.Run(string(tc.group), func(t *testing.T) {
			got, err := l.AxesFor(tc.group)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := l.AxesFor(inovesa.Parameters)
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestAxisPath(t *testing.T) {
	l := inovesa.NewLayout(inovesa.V14_1)

	p, err := l.AxisPath(inovesa.Time, inovesa.BunchProfile)
	require.NoError(t, err)
	assert.Equal(t, "/Info/AxisValues_t", p)

	p, err = l.AxisPath(inovesa.Real, inovesa.Impedance)
	require.NoError(t, err)
	assert.Equal(t, "data/real", p)

	p, err = l.DatasetPath(inovesa.CSRIntensity, inovesa.Data)
	require.NoError(t, err)
	assert.Equal(t, "/CSR/Intensity/data", p)

	p, err = l.DatasetPath(inovesa.PhaseSpace, inovesa.Energy)
	require.NoError(t, err)
	assert.Equal(t, "/Info/AxisValues_E", p)

	_, err = l.AxisPath(inovesa.Energy, inovesa.BunchProfile)
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
	_, err = l.AxisPath(inovesa.Data, inovesa.Group("nonsense"))
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestSourceMapOnlyAfter0_13(t *testing.T) {
	assert.False(t, inovesa.NewLayout(inovesa.V13_0).Has(inovesa.SourceMap))
	assert.True(t, inovesa.NewLayout(inovesa.V14_1).Has(inovesa.SourceMap))

	_, err := inovesa.NewLayout(inovesa.V13_0).AxesFor(inovesa.SourceMap)
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestLegacyLayout(t *testing.T) {
	l := inovesa.NewLayout(inovesa.V9_1)
	assert.True(t, l.Legacy())

	p, err := l.Path(inovesa.CSRIntensity)
	require.NoError(t, err)
	assert.Equal(t, "CSRPower", p)
	p, err = l.Path(inovesa.BunchPopulation)
	require.NoError(t, err)
	assert.Equal(t, "BunchCurrent", p)

	for _, g := range []inovesa.Group{inovesa.Particles, inovesa.Parameters, inovesa.EnergyProfile} {
		assert.False(t, l.Has(g), g)
		_, err := l.Path(g)
		assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
	}
	assert.NotContains(t, l.Groups(), inovesa.SourceMap)
}

func TestLookupAcceptsGroupPaths(t *testing.T) {
	l := inovesa.NewLayout(inovesa.V15_1)

	g, err := l.Lookup("CSR/Spectrum")
	require.NoError(t, err)
	assert.Equal(t, inovesa.CSRSpectrum, g)

	g, err = l.Lookup("bunch_profile")
	require.NoError(t, err)
	assert.Equal(t, inovesa.BunchProfile, g)

	_, err = l.Lookup("nothing")
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)

	groups := l.Groups()
	assert.Equal(t, inovesa.EnergySpread, groups[0])
	assert.Contains(t, groups, inovesa.SourceMap)
	assert.Equal(t, inovesa.Parameters, groups[len(groups)-1])
}

func TestAxisKinds(t *testing.T) {
	assert.True(t, inovesa.Frequency.IsAxisValues())
	assert.False(t, inovesa.Data.IsAxisValues())
	assert.True(t, inovesa.Imag.IsData())
	assert.False(t, inovesa.DataGroup.IsData())
}
