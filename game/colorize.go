package game

import (
	"fmt"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/physarum/systems"
)

// colorizeParallel maps the field into dst, split into row bands with at most
// GOMAXPROCS bands in flight.
func colorizeParallel(f *systems.Field, dst []color.RGBA, bands int) error {
	w, h := f.GridSize()
	if len(dst) < w*h {
		return fmt.Errorf("display buffer holds %d pixels, field has %d", len(dst), w*h)
	}
	bands = max(min(bands, h), 1)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	rows := (h + bands - 1) / bands
	for y0 := 0; y0 < h; y0 += rows {
		y1 := min(y0+rows, h)
		eg.Go(func() error {
			f.ColorizeRows(dst, y0, y1)
			return nil
		})
	}
	return eg.Wait()
}
