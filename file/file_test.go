package file_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsVersion(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)
	assert.Equal(t, inovesa.V15_1, f.Version())
	assert.Equal(t, "run.h5", f.Name())
	assert.True(t, f.Has(inovesa.SourceMap)) // newer than 0.13.0

	lf, err := file.New(legacyStore(t), "old.h5")
	require.NoError(t, err)
	assert.Equal(t, inovesa.V9_1, lf.Version()) // upper-case dataset name
	assert.False(t, lf.Has(inovesa.Particles))
}

func TestNewWithoutVersion(t *testing.T) {
	_, err := file.New(file.NewMemStore(), "empty.h5")
	require.ErrorIs(t, err, file.ErrNoVersion)
}

func TestGetAllAxesInLayoutOrder(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)

	c, err := f.Get(inovesa.BunchProfile)
	require.NoError(t, err)
	assert.Equal(t, inovesa.BunchProfile, c.Group())
	assert.Equal(t, []inovesa.Axis{inovesa.Time, inovesa.Space, inovesa.Data}, c.Axes())
	assert.Equal(t, 3, c.Len())

	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "/Info/AxisValues_t", first.Name())

	_, err = c.At(3)
	require.ErrorIs(t, err, inovesa.ErrData)
}

func TestGetKeepsRequestedOrder(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)

	c, err := f.Get(inovesa.BunchProfile, inovesa.Data, inovesa.Time)
	require.NoError(t, err)
	assert.Equal(t, []inovesa.Axis{inovesa.Data, inovesa.Time}, c.Axes())
	assert.False(t, c.Has(inovesa.Space))

	_, err = c.Get(inovesa.Space)
	require.ErrorIs(t, err, inovesa.ErrData)

	ds, err := c.Get(inovesa.Data)
	require.NoError(t, err)
	assert.Equal(t, "/BunchProfile/data", ds.Name())
	assert.Equal(t, inovesa.Data, ds.Axis())
}

func TestContainerUnaffectedByLaterGets(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)
	c, err := f.Get(inovesa.BunchProfile, inovesa.Time)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, a := range []inovesa.Axis{inovesa.Space, inovesa.Data, inovesa.Space, inovesa.Data} {
		wg.Add(2)
		go func(a inovesa.Axis) {
			defer wg.Done()
			_, err := f.Get(inovesa.BunchProfile, a)
			assert.NoError(t, err)
		}(a)
		go func() {
			defer wg.Done()
			ds, err := c.Get(inovesa.Time)
			assert.NoError(t, err)
			assert.Equal(t, "/Info/AxisValues_t", ds.Name())
		}()
	}
	wg.Wait()

	visited := 0
	c.Each(func(inovesa.Axis, *file.Dataset) bool {
		visited++
		return true
	})
	assert.Equal(t, 1, visited)
	_, err = c.Get(inovesa.Data)
	assert.ErrorIs(t, err, inovesa.ErrData)
}

func TestGetErrors(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)

	_, err = f.Get(inovesa.BunchProfile, inovesa.Energy) // not an axis of the group
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)

	_, err = f.Get(inovesa.CSRIntensity) // in the layout, absent from the file
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)

	_, err = f.Get(inovesa.Group("nonsense"))
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestSourceMapAbsentBefore013(t *testing.T) {
	st := modernStore(t).PutInts("/Info/Inovesa_v", 0, 13, 0)
	f, err := file.New(st, "run.h5")
	require.NoError(t, err)

	assert.False(t, f.Has(inovesa.SourceMap))
	_, err = f.Get(inovesa.SourceMap)
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestDatasetIsCached(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)

	ds, err := f.Dataset(inovesa.BunchProfile, inovesa.Data)
	require.NoError(t, err)
	assert.False(t, ds.Loaded())

	a1, err := ds.Array()
	require.NoError(t, err)
	a2, err := f.Array(inovesa.BunchProfile, inovesa.Data)
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	assert.Equal(t, []int{3, 4}, a1.Shape())
}

func TestPreload(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)

	require.NoError(t, f.Preload(inovesa.BunchProfile))
	c, err := f.Get(inovesa.BunchProfile)
	require.NoError(t, err)
	c.Each(func(_ inovesa.Axis, ds *file.Dataset) bool {
		assert.True(t, ds.Loaded(), ds.Name())
		return true
	})

	require.Error(t, f.Preload(inovesa.CSRSpectrum))
}

func TestDataGroupHasAttributesOnly(t *testing.T) {
	st := modernStore(t).
		PutVector("/Info/AxisValues_f", 1, 2).
		PutVector("/Impedance/data/real", 1, 2).
		PutVector("/Impedance/data/imag", 3, 4)
	st.SetAttr("/Impedance/data", "Factor4Ohms", 50)
	f, err := file.New(st, "run.h5")
	require.NoError(t, err)

	dg, err := f.Dataset(inovesa.Impedance, inovesa.DataGroup)
	require.NoError(t, err)
	assert.True(t, dg.IsGroup())
	_, err = dg.Array()
	require.ErrorIs(t, err, inovesa.ErrData)

	v, err := dg.Attrs().Get("Factor4Ohms")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	name, v, ok := dg.Attrs().Lookup("Factor4Ohm", "Factor4Ohms")
	assert.True(t, ok)
	assert.Equal(t, "Factor4Ohms", name)
	assert.Equal(t, 50.0, v)
	assert.False(t, dg.Attrs().Has("Ohm"))
}

func TestLegacyTransforms(t *testing.T) {
	f, err := file.New(legacyStore(t), "old.h5")
	require.NoError(t, err)

	ts, err := f.Array(inovesa.BunchLength, inovesa.Time)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, ts.Values())

	d, err := f.Array(inovesa.BunchLength, inovesa.Data)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, d.Values())

	pop, err := f.Array(inovesa.BunchPopulation, inovesa.Data)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.3, 0.2}, pop.Values())
}

func TestLegacySpaceAxisTakesFirstStep(t *testing.T) {
	st := legacyStore(t).PutVector("/BunchProfile/data", 0, 0, 0)
	f, err := file.New(st, "old.h5")
	require.NoError(t, err)

	z, err := f.Array(inovesa.BunchProfile, inovesa.Space)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, z.Values())
}

func TestClosedStore(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)
	ds, err := f.Dataset(inovesa.BunchLength, inovesa.Data)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	_, err = ds.Array()
	require.ErrorIs(t, err, file.ErrClosed)
}

func TestParameters(t *testing.T) {
	f, err := file.New(modernStore(t), "run.h5")
	require.NoError(t, err)
	p := f.Parameters()

	v, err := p.Get(inovesa.ParamBunchCurrent)
	require.NoError(t, err)
	assert.Equal(t, 1e-3, v)

	_, err = p.Get(inovesa.ParamBeamEnergy)
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)

	sel, err := p.Select(inovesa.ParamBunchCurrent, inovesa.ParamRevolutionFrequency)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"BunchCurrent": 1e-3, "RevolutionFrequency": 2.7e6}, sel)

	_, err = p.Select(inovesa.ParamBunchCurrent, inovesa.ParamBeamEnergy)
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)

	assert.Equal(t, sel, p.All())
}

func TestLegacyParametersFromSideFile(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, filepath.Join(dir, "old.cfg"), "BunchCurrent=0.002\nRevolutionFrequency=2.7e6\n")
	f, err := file.New(legacyStore(t), filepath.Join(dir, "old.h5"))
	require.NoError(t, err)

	v, err := f.Parameters().Get(inovesa.ParamBunchCurrent)
	require.NoError(t, err)
	assert.Equal(t, 0.002, v)

	v, err = f.Parameters().Get(inovesa.ParamRevolutionFrequency)
	require.NoError(t, err)
	assert.Equal(t, 2.7e6, v)

	_, err = f.Parameters().Get(inovesa.ParamBeamEnergy)
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}

func TestLegacyBunchCurrentFallback(t *testing.T) {
	f, err := file.New(legacyStore(t), filepath.Join(t.TempDir(), "old.h5"))
	require.NoError(t, err)

	v, err := f.Parameters().Get(inovesa.ParamBunchCurrent)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v) // first stored sample, initial state included

	_, err = f.Parameters().Get(inovesa.ParamRevolutionFrequency)
	require.ErrorIs(t, err, inovesa.ErrDataNotInFile)
}
