package inovesa_test

import (
	"testing"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]inovesa.Unit{
		"Seconds":   inovesa.Second,
		" eV ":      inovesa.ElectronVolt,
		"W/Hz":      inovesa.WattPerHertz,
		"coulomb":   inovesa.Coulomb,
		"TS":        inovesa.SyncPeriods,
		"cpnblpnes": inovesa.CoulombPerNBLPerNES,
	}
	for in, want := range tests {
		got, err := inovesa.NormalizeUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := inovesa.NormalizeUnit("")
	assert.ErrorIs(t, err, inovesa.ErrUnit)
	_, err = inovesa.NormalizeUnit("furlong")
	assert.ErrorIs(t, err, inovesa.ErrUnit)
}

func TestAttrFromUnit(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		version inovesa.Version
		want    string
	}{
		{"legacy second", "s", inovesa.V13_0, "Second"},
		{"legacy compound", "cpnes", inovesa.V9_1, "CoulombPerNES"},
		{"factor4 meters", "meters", inovesa.V14_1, "Factor4Meters"},
		{"factor4 hertz", "Hz", inovesa.V15_1, "Factor4Hertz"},
		{"factor4 compound", "cpnblpnes", inovesa.V15_1, "Factor4CoulombPerNBLPerNES"},
		{"factor4 wphz", "wphz", inovesa.V15_1, "Factor4WattPerHertz"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attr, ok, err := inovesa.AttrFromUnit(tc.unit, tc.version)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tc.want, attr)
		})
	}

	for _, u := range []string{"ts", "raw", "RAW"} {
		_, ok, err := inovesa.AttrFromUnit(u, inovesa.V15_1)
		require.NoError(t, err)
		assert.False(t, ok, u)
	}

	_, _, err := inovesa.AttrFromUnit("", inovesa.V15_1)
	assert.ErrorIs(t, err, inovesa.ErrUnit)
}

func TestLegacyAttrCandidates(t *testing.T) {
	assert.Equal(t, []string{"Seconds", "Second"}, inovesa.LegacyAttrCandidates("Factor4Seconds"))
	assert.Equal(t, []string{"Hertz"}, inovesa.LegacyAttrCandidates("Factor4Hertz"))
	assert.Nil(t, inovesa.LegacyAttrCandidates("Second"))
}

func TestClassifyComposite(t *testing.T) {
	kind, base := inovesa.ClassifyComposite("C/s")
	assert.Equal(t, inovesa.PerSpace, kind)
	assert.Equal(t, inovesa.CoulombPerNBL, base)

	kind, base = inovesa.ClassifyComposite("apev")
	assert.Equal(t, inovesa.PerEnergy, kind)
	assert.Equal(t, inovesa.AmperePerNES, base)

	kind, base = inovesa.ClassifyComposite("c/ev/s")
	assert.Equal(t, inovesa.PerSpaceEnergy, kind)
	assert.Equal(t, inovesa.CoulombPerNBLPerNES, base)

	kind, _ = inovesa.ClassifyComposite("cpnes")
	assert.Equal(t, inovesa.NotComposite, kind)
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "eV", inovesa.UnitLabel("ev"))
	assert.Equal(t, "C/s", inovesa.UnitLabel("c/s"))
	assert.Equal(t, "A/s/eV", inovesa.UnitLabel("apspev"))
	assert.Equal(t, "W/Hz", inovesa.UnitLabel("wphz"))
	assert.Equal(t, "Ts", inovesa.UnitLabel("ts"))
	assert.Equal(t, "parsec", inovesa.UnitLabel("parsec"))
}
