// SPDX-License-Identifier: MIT

package file

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/katalvlaran/lisa/matrix"
)

// Store is the minimal read interface over an HDF5-like container.
// Object paths are absolute ("/BunchProfile/data").
type Store interface {
	// ReadArray reads a numeric dataset as float64 with its shape.
	ReadArray(objPath string) (*matrix.Array, error)
	// ReadInts reads a small integer dataset (the version triple).
	ReadInts(objPath string) ([]int, error)
	// Attr reads a scalar numeric attribute of a dataset or group.
	Attr(objPath, name string) (float64, error)
	// Exists reports whether a dataset or group lives at objPath.
	Exists(objPath string) bool
	Close() error
}

func cleanPath(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// MemStore is an in-memory Store. It backs tests and synthetic files and is
// safe for concurrent use.
type MemStore struct {
	mu       sync.RWMutex
	datasets map[string]*matrix.Array
	ints     map[string][]int
	attrs    map[string]map[string]float64
	groups   map[string]bool
	closed   bool
}

// NewMemStore returns an empty store containing only the root group.
func NewMemStore() *MemStore {
	return &MemStore{
		datasets: make(map[string]*matrix.Array),
		ints:     make(map[string][]int),
		attrs:    make(map[string]map[string]float64),
		groups:   map[string]bool{"/": true},
	}
}

func (m *MemStore) addParents(p string) {
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		m.groups[dir] = true
		if dir == "/" {
			return
		}
	}
}

// PutArray stores a copy of a under objPath, creating parent groups.
func (m *MemStore) PutArray(objPath string, a *matrix.Array) *MemStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := cleanPath(objPath)
	m.datasets[p] = a.Clone()
	m.addParents(p)

	return m
}

// PutVector stores a rank-1 dataset.
func (m *MemStore) PutVector(objPath string, values ...float64) *MemStore {
	return m.PutArray(objPath, matrix.NewVector(values))
}

// PutInts stores an integer dataset.
func (m *MemStore) PutInts(objPath string, values ...int) *MemStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := cleanPath(objPath)
	m.ints[p] = append([]int(nil), values...)
	m.addParents(p)

	return m
}

// PutGroup creates an (empty) group.
func (m *MemStore) PutGroup(objPath string) *MemStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := cleanPath(objPath)
	m.groups[p] = true
	m.addParents(p)

	return m
}

// SetAttr sets a numeric attribute, creating the object as a group when it
// does not exist yet.
func (m *MemStore) SetAttr(objPath, name string, v float64) *MemStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := cleanPath(objPath)
	if _, ok := m.datasets[p]; !ok {
		if _, ok := m.ints[p]; !ok {
			m.groups[p] = true
			if p != "/" {
				m.addParents(p)
			}
		}
	}
	if m.attrs[p] == nil {
		m.attrs[p] = make(map[string]float64)
	}
	m.attrs[p][name] = v

	return m
}

// Paths lists every dataset path, sorted.
func (m *MemStore) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.datasets)+len(m.ints))
	for p := range m.datasets {
		out = append(out, p)
	}
	for p := range m.ints {
		out = append(out, p)
	}
	sort.Strings(out)

	return out
}

func (m *MemStore) ReadArray(objPath string) (*matrix.Array, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	p := cleanPath(objPath)
	if a, ok := m.datasets[p]; ok {
		return a.Clone(), nil
	}
	if iv, ok := m.ints[p]; ok {
		vals := make([]float64, len(iv))
		for i, v := range iv {
			vals[i] = float64(v)
		}
		return matrix.NewVector(vals), nil
	}

	return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
}

func (m *MemStore) ReadInts(objPath string) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	p := cleanPath(objPath)
	if iv, ok := m.ints[p]; ok {
		return append([]int(nil), iv...), nil
	}
	if a, ok := m.datasets[p]; ok {
		vals := a.Values()
		out := make([]int, len(vals))
		for i, v := range vals {
			out[i] = int(v)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
}

func (m *MemStore) Attr(objPath, name string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrClosed
	}
	p := cleanPath(objPath)
	v, ok := m.attrs[p][name]
	if !ok {
		return 0, fmt.Errorf("%s@%s: %w", p, name, ErrNotFound)
	}

	return v, nil
}

func (m *MemStore) Exists(objPath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := cleanPath(objPath)
	_, ds := m.datasets[p]
	_, iv := m.ints[p]

	return ds || iv || m.groups[p]
}

// Close marks the store closed; later reads fail with ErrClosed.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}
