package l3grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// DefaultExploredThreshold is the confidence a cell's most likely class must
// exceed for the cell to count as observed.
const DefaultExploredThreshold = 0.5

// ExploredMask derives a (1, H, W) binary mask per grid: 1 where the maximum
// channel value is strictly greater than thresh, 0 otherwise.
func ExploredMask(ctx semmap.ExecContext, grids []*Grid, thresh float64) ([]*Grid, error) {
	out := make([]*Grid, len(grids))
	for t, g := range grids {
		if err := ctx.Check(g.Device); err != nil {
			return nil, fmt.Errorf("step %d: %w", t, err)
		}
		mask, err := NewGrid(ctx, 1, g.H, g.W)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", t, err)
		}
		mask.Fill(1)

		maxes := append([]float64(nil), g.Plane(0)...)
		for c := 1; c < g.C; c++ {
			plane := g.Plane(c)
			for i, v := range plane {
				if v > maxes[i] {
					maxes[i] = v
				}
			}
		}
		for i, m := range maxes {
			if m <= thresh {
				mask.Data[i] = 0
			}
		}
		out[t] = mask
		semmap.Tracef("explored mask step=%d explored=%g of %d", t, floats.Sum(mask.Data), len(mask.Data))
	}
	return out, nil
}
