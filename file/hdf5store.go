// SPDX-License-Identifier: MIT

package file

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/hdf5"

	"github.com/katalvlaran/lisa/matrix"
)

// HDF5Store reads an HDF5 file through the HDF5 C library.
// Calls are serialised; the library is not re-entrant for one handle.
type HDF5Store struct {
	mu   sync.Mutex
	path string
	f    *hdf5.File
}

var _ Store = (*HDF5Store)(nil)

// OpenHDF5 opens path read-only.
func OpenHDF5(path string) (*HDF5Store, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("OpenHDF5(%s): %w", path, err)
	}

	return &HDF5Store{path: path, f: f}, nil
}

func (s *HDF5Store) openDataset(objPath string) (*hdf5.Dataset, error) {
	if s.f == nil {
		return nil, ErrClosed
	}
	if !s.exists(objPath) {
		return nil, fmt.Errorf("%s: %w", objPath, ErrNotFound)
	}
	ds, err := s.f.OpenDataset(cleanPath(objPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", objPath, err)
	}

	return ds, nil
}

// readRaw reads the full dataset as float64, converting from the stored
// integer or float type.
func readRaw(ds *hdf5.Dataset) ([]int, []float64, error) {
	space := ds.Space()
	defer space.Close()
	udims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, nil, err
	}
	shape := make([]int, len(udims))
	for i, d := range udims {
		shape[i] = int(d)
	}
	n := space.SimpleExtentNPoints()

	dtype, err := ds.Datatype()
	if err != nil {
		return nil, nil, err
	}
	defer dtype.Close()

	out := make([]float64, n)
	switch {
	case dtype.Class() == hdf5.T_FLOAT && dtype.Size() == 4:
		buf := make([]float32, n)
		if err := ds.Read(&buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			out[i] = float64(v)
		}
	case dtype.Class() == hdf5.T_FLOAT:
		if err := ds.Read(&out); err != nil {
			return nil, nil, err
		}
	case dtype.Class() == hdf5.T_INTEGER && dtype.Size() == 8:
		buf := make([]int64, n)
		if err := ds.Read(&buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			out[i] = float64(v)
		}
	case dtype.Class() == hdf5.T_INTEGER && dtype.Size() == 4:
		buf := make([]int32, n)
		if err := ds.Read(&buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			out[i] = float64(v)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported datatype class %v size %d", dtype.Class(), dtype.Size())
	}

	return shape, out, nil
}

func (s *HDF5Store) ReadArray(objPath string) (*matrix.Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.openDataset(objPath)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	shape, values, err := readRaw(ds)
	if err != nil {
		return nil, fmt.Errorf("ReadArray(%s): %w", objPath, err)
	}

	return matrix.NewArray(shape, values)
}

func (s *HDF5Store) ReadInts(objPath string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.openDataset(objPath)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	_, values, err := readRaw(ds)
	if err != nil {
		return nil, fmt.Errorf("ReadInts(%s): %w", objPath, err)
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}

	return out, nil
}

func (s *HDF5Store) Attr(objPath, name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return 0, ErrClosed
	}
	p := cleanPath(objPath)
	if !s.exists(p) {
		return 0, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	var (
		attr *hdf5.Attribute
		err  error
	)
	if ds, derr := s.f.OpenDataset(p); derr == nil {
		defer ds.Close()
		attr, err = ds.OpenAttribute(name)
	} else {
		g, gerr := s.f.OpenGroup(p)
		if gerr != nil {
			return 0, fmt.Errorf("%s: %w", p, gerr)
		}
		defer g.Close()
		attr, err = g.OpenAttribute(name)
	}
	if err != nil {
		return 0, fmt.Errorf("%s@%s: %w", p, name, ErrNotFound)
	}
	defer attr.Close()
	var v float64
	if err := attr.Read(&v, hdf5.T_NATIVE_DOUBLE); err != nil {
		return 0, fmt.Errorf("%s@%s: %w", p, name, err)
	}

	return v, nil
}

// exists walks the path one link at a time; H5Lexists fails on a missing
// intermediate group.
func (s *HDF5Store) exists(objPath string) bool {
	p := cleanPath(objPath)
	if p == "/" {
		return true
	}
	cur := ""
	for _, part := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
		cur += "/" + part
		if !s.f.LinkExists(cur) {
			return false
		}
	}

	return true
}

func (s *HDF5Store) Exists(objPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return false
	}

	return s.exists(objPath)
}

func (s *HDF5Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil

	return err
}
