// SPDX-License-Identifier: MIT

package file

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/lisa/inovesa"
	"github.com/katalvlaran/lisa/matrix"
)

// Attrs is a read-only view of an object's attributes.
type Attrs struct {
	store Store
	obj   string
}

// Object returns the HDF5 path the attributes belong to.
func (a Attrs) Object() string { return a.obj }

// Get returns the numeric attribute name, or ErrNotFound.
func (a Attrs) Get(name string) (float64, error) {
	if a.store == nil {
		return 0, fmt.Errorf("%s@%s: %w", a.obj, name, ErrNotFound)
	}

	return a.store.Attr(a.obj, name)
}

// Has reports whether the attribute exists.
func (a Attrs) Has(name string) bool {
	_, err := a.Get(name)
	return err == nil
}

// Lookup returns the first of names that exists, with its value.
func (a Attrs) Lookup(names ...string) (string, float64, bool) {
	for _, n := range names {
		if v, err := a.Get(n); err == nil {
			return n, v, true
		}
	}

	return "", 0, false
}

// transform reshapes a freshly loaded array (0.9.1 normalisation).
type transform func(*matrix.Array) (*matrix.Array, error)

// Dataset is one element of a data group: an axis, the payload, or the data
// group itself (attributes only). The array is read on first use and cached.
type Dataset struct {
	name    string
	axis    inovesa.Axis
	isGroup bool
	store   Store
	tf      transform

	mu  sync.Mutex
	arr *matrix.Array
}

// Name is the absolute HDF5 path.
func (d *Dataset) Name() string { return d.name }

// Axis is the element this dataset was resolved for.
func (d *Dataset) Axis() inovesa.Axis { return d.axis }

// IsGroup is true for the attributes-only data group.
func (d *Dataset) IsGroup() bool { return d.isGroup }

// Attrs returns the attributes of the underlying HDF5 object.
func (d *Dataset) Attrs() Attrs { return Attrs{store: d.store, obj: d.name} }

// Loaded reports whether the array is in memory.
func (d *Dataset) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.arr != nil
}

// Array returns the dataset values (shared, read-only by convention: the
// matrix.Array operations all return copies).
func (d *Dataset) Array() (*matrix.Array, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.arr != nil {
		return d.arr, nil
	}
	if d.isGroup {
		return nil, fmt.Errorf("%s is a group with attributes only: %w", d.name, inovesa.ErrData)
	}
	a, err := d.store.ReadArray(d.name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%s: %v: %w", d.name, err, inovesa.ErrDataNotInFile)
		}
		return nil, err
	}
	if d.tf != nil {
		if a, err = d.tf(a); err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
	}
	d.arr = a

	return a, nil
}

// Container is an ordered selection of datasets from one group.
type Container struct {
	group inovesa.Group
	axes  []inovesa.Axis
	items map[inovesa.Axis]*Dataset
}

// newContainer copies the selected entries of items; the caller holds the
// lock guarding items.
func newContainer(g inovesa.Group, axes []inovesa.Axis, items map[inovesa.Axis]*Dataset) (*Container, error) {
	own := make(map[inovesa.Axis]*Dataset, len(axes))
	for _, a := range axes {
		ds, ok := items[a]
		if !ok {
			return nil, fmt.Errorf("tried to access unavailable element %q: %w", a, inovesa.ErrData)
		}
		own[a] = ds
	}

	return &Container{group: g, axes: append([]inovesa.Axis(nil), axes...), items: own}, nil
}

// Group returns the data group the container was built from.
func (c *Container) Group() inovesa.Group { return c.group }

// Len returns the number of selected axes.
func (c *Container) Len() int { return len(c.axes) }

// Axes returns the selected axes in order.
func (c *Container) Axes() []inovesa.Axis { return append([]inovesa.Axis(nil), c.axes...) }

// Has reports whether a was selected.
func (c *Container) Has(a inovesa.Axis) bool {
	for _, x := range c.axes {
		if x == a {
			return true
		}
	}

	return false
}

// At returns the i-th selected dataset.
func (c *Container) At(i int) (*Dataset, error) {
	if i < 0 || i >= len(c.axes) {
		return nil, fmt.Errorf("Container.At(%d): %w", i, inovesa.ErrData)
	}

	return c.items[c.axes[i]], nil
}

// Get returns the dataset for a, or ErrData when a was not selected.
func (c *Container) Get(a inovesa.Axis) (*Dataset, error) {
	if !c.Has(a) {
		return nil, fmt.Errorf("%q not in this container: %w", a, inovesa.ErrData)
	}

	return c.items[a], nil
}

// Each visits the datasets in order until fn returns false.
func (c *Container) Each(fn func(inovesa.Axis, *Dataset) bool) {
	for _, a := range c.axes {
		if !fn(a, c.items[a]) {
			return
		}
	}
}
