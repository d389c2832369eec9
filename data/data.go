// SPDX-License-Identifier: MIT

package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/logging"
	"github.com/katalvlaran/lisa/matrix"
)

// Option configures a Data accessor.
type Option func(*options)

type options struct {
	log logging.Logger
}

// WithLogger routes unit resolution messages to l. Open also hands l to the
// underlying file.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func gatherOptions(opts ...Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// GetOption tunes a single Get call.
type GetOption func(*getOptions)

type getOptions struct {
	index    int
	hasIndex bool
}

// WithIndex selects sub-array i along axis 0 before conversion (one turn of a
// time series, one frame of the phase space). Negative i counts from the end.
func WithIndex(i int) GetOption {
	return func(o *getOptions) { o.index, o.hasIndex = i, true }
}

// Data converts the contents of a File to physical units.
type Data struct {
	f   *file.File
	log logging.Logger
}

// New wraps an open file. Without WithLogger the file's logger is used.
func New(f *file.File, opts ...Option) *Data {
	o := gatherOptions(opts...)
	log := o.log
	if log == nil {
		log = f.Logger()
	}

	return &Data{f: f, log: logging.OrNoOp(log)}
}

// Open opens path and wraps it.
func Open(path string, opts ...Option) (*Data, error) {
	o := gatherOptions(opts...)
	var fopts []file.Option
	if o.log != nil {
		fopts = append(fopts, file.WithLogger(o.log))
	}
	f, err := file.Open(path, fopts...)
	if err != nil {
		return nil, err
	}

	return New(f, opts...), nil
}

func (d *Data) File() *file.File         { return d.f }
func (d *Data) Version() inovesa.Version { return d.f.Version() }
func (d *Data) Close() error             { return d.f.Close() }

// Raw returns the unconverted datasets of g.
func (d *Data) Raw(g inovesa.Group, axes ...inovesa.Axis) (*file.Container, error) {
	return d.f.Get(g, axes...)
}

// Get returns axis a of group g in unit. Units that need no conversion
// ("raw", "ts") yield an unscaled copy.
//
// Errors:
//   - inovesa.ErrUnit for an empty, unknown or illegal unit, or a missing
//     conversion attribute.
//   - inovesa.ErrDataNotInFile when g or a is absent.
func (d *Data) Get(g inovesa.Group, a inovesa.Axis, unit string, opts ...GetOption) (*matrix.Array, error) {
	var o getOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	unit = strings.ToLower(strings.TrimSpace(unit))
	d.log.Debug("using unit specification", "group", string(g), "axis", string(a), "unit", unit)
	if unit == "" {
		return nil, fmt.Errorf("no unit given: %w", inovesa.ErrUnit)
	}
	ds, err := d.f.Dataset(g, a)
	if err != nil {
		return nil, err
	}
	arr, err := ds.Array()
	if err != nil {
		return nil, err
	}
	factor, convert, err := d.conversionFactor(g, ds, unit)
	if err != nil {
		return nil, err
	}
	if o.hasIndex {
		if arr, err = arr.Index(o.index); err != nil {
			return nil, fmt.Errorf("%s %s[%d]: %w", g, a, o.index, err)
		}
	}
	if !convert {
		return arr.Clone(), nil
	}

	return arr.Scale(factor), nil
}

// UnitFactor returns the factor converting axis a of g to unit
// (physical = stored * factor). convert is false for units stored as is.
func (d *Data) UnitFactor(g inovesa.Group, a inovesa.Axis, unit string) (factor float64, convert bool, err error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	if unit == "" {
		return 0, false, fmt.Errorf("no unit given: %w", inovesa.ErrUnit)
	}
	ds, err := d.f.Dataset(g, a)
	if err != nil {
		return 0, false, err
	}

	return d.conversionFactor(g, ds, unit)
}

// Parameter returns one simulation parameter.
func (d *Data) Parameter(name string) (float64, error) {
	return d.f.Parameters().Get(name)
}

// Parameters returns every parameter present in the file.
func (d *Data) Parameters() map[string]float64 {
	return d.f.Parameters().All()
}

// lookupFactor tries attr, then the names older writers used for it.
func lookupFactor(attrs file.Attrs, attr string) (float64, bool) {
	_, v, ok := attrs.Lookup(append([]string{attr}, inovesa.LegacyAttrCandidates(attr)...)...)
	return v, ok
}

func (d *Data) conversionFactor(g inovesa.Group, ds *file.Dataset, unit string) (float64, bool, error) {
	if kind, base := inovesa.ClassifyComposite(unit); kind != inovesa.NotComposite {
		f, err := d.compositeFactor(g, kind, base)
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	}

	attr, convert, err := inovesa.AttrFromUnit(unit, d.f.Version())
	if err != nil {
		return 0, false, fmt.Errorf("%s is not a valid unit for this data: %w", unit, inovesa.ErrUnit)
	}
	if !convert {
		return 0, false, nil
	}
	attrs := ds.Attrs()
	if g == inovesa.Impedance {
		if _, ok := lookupFactor(attrs, attr); !ok {
			dg, err := d.f.Dataset(inovesa.Impedance, inovesa.DataGroup)
			if err == nil {
				attrs = dg.Attrs()
			}
		}
	}
	if v, ok := lookupFactor(attrs, attr); ok {
		return v, true, nil
	}
	d.log.Debug("no conversion attribute", "object", attrs.Object(), "attr", attr)

	return 0, false, fmt.Errorf("%s is not a valid unit for this data: %w", unit, inovesa.ErrUnit)
}

// compositeFactor divides the numerator factor of the data by the factors of
// the axes named in the unit's denominator.
func (d *Data) compositeFactor(g inovesa.Group, kind inovesa.Composite, base inovesa.Unit) (float64, error) {
	layout := d.f.Layout()
	var axes []inovesa.Axis
	switch kind {
	case inovesa.PerSpace:
		if layout.HasAxis(g, inovesa.Energy) {
			return 0, fmt.Errorf("illegal conversion for %s: %w", g, inovesa.ErrUnit)
		}
		axes = []inovesa.Axis{inovesa.Space}
	case inovesa.PerEnergy:
		if layout.HasAxis(g, inovesa.Space) {
			return 0, fmt.Errorf("illegal conversion for %s: %w", g, inovesa.ErrUnit)
		}
		axes = []inovesa.Axis{inovesa.Energy}
	default:
		axes = []inovesa.Axis{inovesa.Energy, inovesa.Space}
	}

	factor, err := d.attrFactor(g, inovesa.Data, string(base))
	if err != nil {
		return 0, err
	}
	for _, a := range axes {
		unit := "s"
		if a == inovesa.Energy {
			unit = "ev"
		}
		f, err := d.attrFactor(g, a, unit)
		if err != nil {
			return 0, err
		}
		factor /= f
	}

	return factor, nil
}

func (d *Data) attrFactor(g inovesa.Group, a inovesa.Axis, unit string) (float64, error) {
	attr, _, err := inovesa.AttrFromUnit(unit, d.f.Version())
	if err != nil {
		return 0, err
	}
	ds, err := d.f.Dataset(g, a)
	if err != nil {
		if errors.Is(err, inovesa.ErrDataNotInFile) {
			return 0, fmt.Errorf("illegal conversion, corresponding data objects not found: %v: %w", err, inovesa.ErrUnit)
		}
		return 0, err
	}
	v, ok := lookupFactor(ds.Attrs(), attr)
	if !ok {
		return 0, fmt.Errorf("conversion failure, cannot find attribute for %s: %w", attr, inovesa.ErrUnit)
	}

	return v, nil
}
