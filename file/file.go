// SPDX-License-Identifier: MIT

package file

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/matrix"
)

// Version datasets, newest spelling first.
var versionPaths = []string{"/Info/Inovesa_v", "/Info/INOVESA_v"}

// Option configures File construction.
type Option func(*options)

type options struct {
	log logging.Logger
}

// WithLogger routes debug output (dataset resolution, preload) to l.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func gatherOptions(opts ...Option) options {
	o := options{log: logging.NoOp{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.log = logging.OrNoOp(o.log)

	return o
}

// File is a version-aware Inovesa result file.
type File struct {
	name    string
	store   Store
	version inovesa.Version
	layout  *inovesa.Layout
	log     logging.Logger

	mu    sync.Mutex
	cache map[inovesa.Group]map[inovesa.Axis]*Dataset
	cfg   *cfgFile
	cfgOK bool
}

// Open opens an HDF5 result file.
func Open(path string, opts ...Option) (*File, error) {
	st, err := OpenHDF5(path)
	if err != nil {
		return nil, err
	}
	f, err := New(st, path, opts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return f, nil
}

// New wraps an open store. name is the file name used to locate .cfg side
// files and for messages.
func New(store Store, name string, opts ...Option) (*File, error) {
	o := gatherOptions(opts...)
	var (
		parts []int
		err   error
	)
	for _, p := range versionPaths {
		if parts, err = store.ReadInts(p); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoVersion)
	}
	v, err := inovesa.ParseVersion(parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	o.log.Debug("opened inovesa file", "file", name, "version", v.String())

	return &File{
		name:    name,
		store:   store,
		version: v,
		layout:  inovesa.NewLayout(v),
		log:     o.log,
		cache:   make(map[inovesa.Group]map[inovesa.Axis]*Dataset),
	}, nil
}

func (f *File) Name() string             { return f.name }
func (f *File) Version() inovesa.Version { return f.version }
func (f *File) Layout() *inovesa.Layout  { return f.layout }
func (f *File) Groups() []inovesa.Group  { return f.layout.Groups() }
func (f *File) Has(g inovesa.Group) bool { return f.layout.Has(g) }
func (f *File) Logger() logging.Logger   { return f.log }
func (f *File) Parameters() *Parameters  { return &Parameters{f: f} }
func (f *File) Close() error             { return f.store.Close() }

// Get returns the selected axes of g in the order given, or all axes of g in
// layout order when none are given.
//
// Errors:
//   - inovesa.ErrDataNotInFile for an unknown group or an axis g lacks.
func (f *File) Get(g inovesa.Group, axes ...inovesa.Axis) (*Container, error) {
	if _, err := f.layout.Path(g); err != nil {
		return nil, err
	}
	if len(axes) == 0 {
		all, err := f.layout.AxesFor(g)
		if err != nil {
			return nil, err
		}
		axes = all
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	dg := f.cache[g]
	if dg == nil {
		dg = make(map[inovesa.Axis]*Dataset)
		f.cache[g] = dg
	}
	for _, a := range axes {
		if _, ok := dg[a]; ok {
			continue
		}
		ds, err := f.resolve(g, a)
		if err != nil {
			return nil, err
		}
		dg[a] = ds
	}

	return newContainer(g, axes, dg)
}

// Dataset returns a single element of g.
func (f *File) Dataset(g inovesa.Group, a inovesa.Axis) (*Dataset, error) {
	c, err := f.Get(g, a)
	if err != nil {
		return nil, err
	}

	return c.Get(a)
}

// Array is shorthand for Dataset(g, a) followed by Array().
func (f *File) Array(g inovesa.Group, a inovesa.Axis) (*matrix.Array, error) {
	ds, err := f.Dataset(g, a)
	if err != nil {
		return nil, err
	}

	return ds.Array()
}

// Preload reads the selected axes of g (all when none are given) into memory.
func (f *File) Preload(g inovesa.Group, axes ...inovesa.Axis) error {
	c, err := f.Get(g, axes...)
	if err != nil {
		f.log.Warn("error preloading data", "group", string(g), "err", err)
		return err
	}
	var firstErr error
	c.Each(func(a inovesa.Axis, ds *Dataset) bool {
		if ds.IsGroup() {
			return true
		}
		if _, err := ds.Array(); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	if firstErr != nil {
		f.log.Warn("error preloading data", "group", string(g), "err", firstErr)
		return firstErr
	}
	f.log.Debug("preloaded group", "group", string(g), "axes", len(c.axes))

	return nil
}

// resolve maps (g, a) to a Dataset; callers hold f.mu.
func (f *File) resolve(g inovesa.Group, a inovesa.Axis) (*Dataset, error) {
	p, err := f.layout.DatasetPath(g, a)
	if err != nil {
		return nil, err
	}
	if !f.store.Exists(p) {
		return nil, fmt.Errorf("%s (%s of %s): %w", p, a, g, inovesa.ErrDataNotInFile)
	}
	f.log.Debug("resolved dataset", "group", string(g), "axis", string(a), "path", p)
	ds := &Dataset{name: p, axis: a, isGroup: a == inovesa.DataGroup, store: f.store}
	if f.layout.Legacy() {
		ds.tf = f.legacyTransform(g, a)
	}

	return ds, nil
}

// legacyTransform drops the initial-state row of 0.9.1 time series and keeps
// the first step of per-step axes.
func (f *File) legacyTransform(g inovesa.Group, a inovesa.Axis) transform {
	dropFirst := func(x *matrix.Array) (*matrix.Array, error) { return x.Slice(1, x.Len()), nil }
	switch {
	case a == inovesa.Time:
		return dropFirst
	case a == inovesa.Data && f.layout.HasAxis(g, inovesa.Time):
		return dropFirst
	case a == inovesa.Space, a == inovesa.Energy, a == inovesa.Frequency:
		return func(x *matrix.Array) (*matrix.Array, error) {
			if x.Dims() < 2 {
				return x, nil
			}
			return x.Index(0)
		}
	}

	return nil
}

// sideCfg returns the parsed side file, reading it once.
func (f *File) sideCfg() (*cfgFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cfgOK {
		return f.cfg, nil
	}
	var lastErr error = ErrCfg
	for _, p := range CfgCandidates(f.name) {
		c, err := readCfg(p)
		if err == nil {
			f.cfg, f.cfgOK = c, true
			return c, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// Parameters reads simulation parameters.
type Parameters struct {
	f *File
}

// Get returns one parameter.
//
// Files from 0.9.1 carry no /Info/Parameters: BunchCurrent comes from the
// .cfg side file (falling back to the first stored BunchCurrent sample) and
// RevolutionFrequency from the side file only.
func (p *Parameters) Get(name string) (float64, error) {
	f := p.f
	if f.layout.Legacy() {
		switch name {
		case inovesa.ParamBunchCurrent:
			if c, err := f.sideCfg(); err == nil {
				if v, err := c.Float(name); err == nil {
					return v, nil
				}
			}
			dp, err := f.layout.DatasetPath(inovesa.BunchPopulation, inovesa.Data)
			if err != nil {
				return 0, fmt.Errorf("parameter %s: %w", name, inovesa.ErrDataNotInFile)
			}
			a, err := f.store.ReadArray(dp)
			if err != nil {
				return 0, fmt.Errorf("parameter %s: %w", name, inovesa.ErrDataNotInFile)
			}
			vals := a.Values()
			if len(vals) == 0 {
				return 0, fmt.Errorf("parameter %s: %w", name, inovesa.ErrDataNotInFile)
			}
			return vals[0], nil
		case inovesa.ParamRevolutionFrequency:
			c, err := f.sideCfg()
			if err != nil {
				return 0, fmt.Errorf("parameter %s: %v: %w", name, err, inovesa.ErrDataNotInFile)
			}
			v, err := c.Float(name)
			if err != nil {
				return 0, fmt.Errorf("parameter %s: %v: %w", name, err, inovesa.ErrDataNotInFile)
			}
			return v, nil
		}
		return 0, fmt.Errorf("parameter %s (no parameters in %s files): %w", name, f.version, inovesa.ErrDataNotInFile)
	}
	v, err := f.store.Attr("/"+inovesa.ParametersPath, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("parameter %s: %w", name, inovesa.ErrDataNotInFile)
		}
		return 0, err
	}

	return v, nil
}

// Select returns the named parameters; any missing one is an error.
func (p *Parameters) Select(names ...string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, n := range names {
		v, err := p.Get(n)
		if err != nil {
			return nil, fmt.Errorf("one of the parameters is not saved in the file: %w", err)
		}
		out[n] = v
	}

	return out, nil
}

// All returns every known parameter present in the file.
func (p *Parameters) All() map[string]float64 {
	out := make(map[string]float64)
	for _, n := range inovesa.KnownParameters {
		if v, err := p.Get(n); err == nil {
			out[n] = v
		}
	}

	return out
}
