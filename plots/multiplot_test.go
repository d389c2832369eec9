package plots_test

import (
	"testing"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/plots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiPlotWithoutFiles(t *testing.T) {
	m := plots.NewMultiPlot()
	_, err := m.Plot(inovesa.BunchLength)
	assert.ErrorIs(t, err, plots.ErrNoFiles)
}

func TestMultiPlot(t *testing.T) {
	m := plots.NewMultiPlot()
	m.AddOpenFile(openFile(t, resultStore(t), "a.h5"), "low")
	m.AddOpenFile(openFile(t, resultStore(t), "b.h5"), "")
	require.Equal(t, 2, m.Len())

	fig, err := m.Plot(inovesa.BunchLength, plots.WithLabel("run"))
	require.NoError(t, err)
	p := fig.Main()
	require.Len(t, p.Lines, 2)
	assert.Equal(t, "low", p.Lines[0].Label)
	assert.Equal(t, "run", p.Lines[1].Label)
	assert.Equal(t, 1.0, p.Lines[0].Alpha)
	assert.Equal(t, 0.8, p.Lines[1].Alpha)
	assert.Equal(t, 2, fig.NumPlots())

	_, err = m.Plot(inovesa.EnergySpread)
	require.Error(t, err)
	assert.ErrorIs(t, err, inovesa.ErrDataNotInFile)
	assert.Contains(t, err.Error(), "a.h5")

	assert.Equal(t, plots.PossiblePlots(), m.PossiblePlots())
}

func TestMultiPlotOnFigure(t *testing.T) {
	m := plots.NewMultiPlot()
	m.AddOpenFile(openFile(t, resultStore(t), "a.h5"), "a")

	fig := plots.NewFigure()
	got, err := m.Plot(inovesa.BunchProfile, plots.OnFigure(fig), plots.MeanRange(0, 4))
	require.NoError(t, err)
	assert.Same(t, fig, got)
	assert.Len(t, fig.Main().Lines, 1)
}

func TestMultiPlotCloneAndReset(t *testing.T) {
	m := plots.NewMultiPlot()
	m.Add(newPlotter(t), "a")
	m.Add(newPlotter(t), "b")

	c := m.Clone()
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}
