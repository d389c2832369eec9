// SPDX-License-Identifier: MIT

package file

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/btree"

	"github.com/katalvlaran/lisa/inovesa"
)

// Sorter orders result file paths.
type Sorter func(paths []string) ([]string, error)

// currentItem orders files by descending bunch current, then by path.
type currentItem struct {
	current float64
	path    string
}

func (c *currentItem) Less(than btree.Item) bool {
	other := than.(*currentItem)
	if c.current != other.current {
		return c.current > other.current
	}

	return c.path < other.path
}

// ByBunchCurrent is the default Sorter: descending BunchCurrent read from
// each file's .cfg side file.
func ByBunchCurrent(paths []string) ([]string, error) {
	idx := btree.New(8)
	for _, p := range paths {
		cur, err := ReadSideCfgValue(p, inovesa.ParamBunchCurrent)
		if err != nil {
			return nil, fmt.Errorf("ByBunchCurrent: %w", err)
		}
		idx.ReplaceOrInsert(&currentItem{current: cur, path: p})
	}
	out := make([]string, 0, idx.Len())
	idx.Ascend(func(i btree.Item) bool {
		out = append(out, i.(*currentItem).path)
		return true
	})

	return out, nil
}

// MultiFile is the set of result files matching a glob in one directory.
type MultiFile struct {
	dir     string
	pattern string
	opts    []Option

	mu          sync.Mutex
	sorter      Sorter
	paths       []string
	sorted      []string
	sortChanged bool
	files       map[string]*File
}

// NewMultiFile globs dir/pattern ("*" when pattern is empty).
func NewMultiFile(dir, pattern string, opts ...Option) (*MultiFile, error) {
	if pattern == "" {
		pattern = "*"
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("NewMultiFile(%s, %s): %w", dir, pattern, err)
	}

	return &MultiFile{
		dir:         dir,
		pattern:     pattern,
		opts:        opts,
		sorter:      ByBunchCurrent,
		paths:       paths,
		sorted:      paths,
		sortChanged: true,
		files:       make(map[string]*File),
	}, nil
}

// SetSorter replaces the ordering; nil restores ByBunchCurrent.
func (m *MultiFile) SetSorter(s Sorter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		s = ByBunchCurrent
	}
	m.sorter = s
	m.sortChanged = true
}

// Paths returns the matched paths, sorted by the current Sorter or in glob
// order.
func (m *MultiFile) Paths(sorted bool) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !sorted {
		return append([]string(nil), m.paths...), nil
	}
	if m.sortChanged {
		s, err := m.sorter(append([]string(nil), m.paths...))
		if err != nil {
			return nil, err
		}
		m.sorted, m.sortChanged = s, false
	}

	return append([]string(nil), m.sorted...), nil
}

// Files opens (once) and returns the files in the order of Paths(sorted).
func (m *MultiFile) Files(sorted bool) ([]*File, error) {
	paths, err := m.Paths(sorted)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, ok := m.files[p]
		if !ok {
			if f, err = Open(p, m.opts...); err != nil {
				return nil, err
			}
			m.files[p] = f
		}
		out = append(out, f)
	}

	return out, nil
}

// Close closes every opened file and returns the first error.
func (m *MultiFile) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first error
	for p, f := range m.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(m.files, p)
	}

	return first
}
