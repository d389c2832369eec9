package file_test

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/katalvlaran/lisa/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// currentsDir writes empty result files with side files carrying the given
// bunch currents.
func currentsDir(t *testing.T, currents map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, cur := range currents {
		touch(t, dir, name+".h5")
		writeCfg(t, filepath.Join(dir, name+".cfg"), "BunchCurrent="+cur+"\n")
	}

	return dir
}

func TestMultiFileSortsByCurrentDescending(t *testing.T) {
	dir := currentsDir(t, map[string]string{"a": "0.001", "b": "0.003", "c": "0.002"})
	mf, err := file.NewMultiFile(dir, "*.h5")
	require.NoError(t, err)

	raw, err := mf.Paths(false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.h5"), filepath.Join(dir, "b.h5"), filepath.Join(dir, "c.h5"),
	}, raw)

	sorted, err := mf.Paths(true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.h5"), filepath.Join(dir, "c.h5"), filepath.Join(dir, "a.h5"),
	}, sorted)
}

func TestMultiFileEqualCurrentsOrderedByPath(t *testing.T) {
	dir := currentsDir(t, map[string]string{"x": "1e-3", "y": "1e-3", "z": "2e-3"})
	mf, err := file.NewMultiFile(dir, "*.h5")
	require.NoError(t, err)

	sorted, err := mf.Paths(true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "z.h5"), filepath.Join(dir, "x.h5"), filepath.Join(dir, "y.h5"),
	}, sorted)
}

func TestMultiFileSetSorter(t *testing.T) {
	dir := currentsDir(t, map[string]string{"a": "1", "b": "2"})
	mf, err := file.NewMultiFile(dir, "*.h5")
	require.NoError(t, err)

	byName := func(paths []string) ([]string, error) {
		sort.Strings(paths)
		return paths, nil
	}
	mf.SetSorter(byName)
	sorted, err := mf.Paths(true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.h5"), sorted[0])

	mf.SetSorter(nil) // back to bunch current
	sorted, err = mf.Paths(true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.h5"), sorted[0])
}

func TestMultiFileSorterError(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "nocfg.h5")
	mf, err := file.NewMultiFile(dir, "*.h5")
	require.NoError(t, err)

	_, err = mf.Paths(true)
	require.ErrorIs(t, err, file.ErrCfg)

	boom := errors.New("boom")
	mf.SetSorter(func([]string) ([]string, error) { return nil, boom })
	_, err = mf.Files(true)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mf.Close())
}

func TestMultiFileDefaultPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "one.h5")
	touch(t, dir, "two.txt")
	mf, err := file.NewMultiFile(dir, "")
	require.NoError(t, err)

	paths, err := mf.Paths(false)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}
