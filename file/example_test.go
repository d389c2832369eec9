package file_test

import (
	"fmt"

	"github.com/katalvlaran/lisa/file"
	"github.com/katalvlaran/lisa/inovesa"
)

// ExampleFile_Get reads one group of a synthetic result file.
func ExampleFile_Get() {
	st := file.NewMemStore().
		PutInts("/Info/Inovesa_v", 0, 15, 1).
		PutVector("/Info/AxisValues_t", 0, 1, 2).
		PutVector("/BunchLength/data", 1e-3, 2e-3, 3e-3)

	f, err := file.New(st, "run.h5")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	c, err := f.Get(inovesa.BunchLength)
	if err != nil {
		fmt.Println(err)
		return
	}
	c.Each(func(a inovesa.Axis, ds *file.Dataset) bool {
		arr, _ := ds.Array()
		fmt.Println(a, ds.Name(), arr.Values())
		return true
	})
	// Output:
	// timeaxis /Info/AxisValues_t [0 1 2]
	// data /BunchLength/data [0.001 0.002 0.003]
}
