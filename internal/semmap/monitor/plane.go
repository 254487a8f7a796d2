package monitor

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
)

// Plane is a single H x W layer of values ready for rendering. Min and Max
// fix the colour scale so that frames of one run are comparable.
type Plane struct {
	Title  string
	H, W   int
	Values []float64
	Min    float64
	Max    float64
}

// At returns the value at (row, col). Row 0 is the top of the image.
func (p Plane) At(row, col int) float64 {
	return p.Values[row*p.W+col]
}

func (p Plane) validate() error {
	if p.H <= 0 || p.W <= 0 {
		return fmt.Errorf("%w: plane %dx%d", semmap.ErrInvalidDim, p.H, p.W)
	}
	if len(p.Values) != p.H*p.W {
		return fmt.Errorf("%w: plane %dx%d has %d values", semmap.ErrShapeMismatch, p.H, p.W, len(p.Values))
	}
	return nil
}

// scale returns a non-degenerate colour range.
func (p Plane) scale() (lo, hi float64) {
	lo, hi = p.Min, p.Max
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// ChannelPlane extracts channel c of a probability grid on a [0, 1] scale.
func ChannelPlane(g *l3grid.Grid, c int, title string) (Plane, error) {
	if c < 0 || c >= g.C {
		return Plane{}, fmt.Errorf("channel %d out of range for %s", c, g)
	}
	vals := make([]float64, g.H*g.W)
	copy(vals, g.Plane(c))
	return Plane{Title: title, H: g.H, W: g.W, Values: vals, Min: 0, Max: 1}, nil
}

// ArgmaxPlane maps every cell to the index of its dominant channel. Ties
// go to the lower channel.
func ArgmaxPlane(g *l3grid.Grid, title string) Plane {
	n := g.H * g.W
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		best := 0
		for c := 1; c < g.C; c++ {
			if g.Data[c*n+i] > g.Data[best*n+i] {
				best = c
			}
		}
		vals[i] = float64(best)
	}
	return Plane{Title: title, H: g.H, W: g.W, Values: vals, Min: 0, Max: float64(g.C - 1)}
}

// LabelPlane converts channel 0 of a label grid. The scale spans the
// labels present.
func LabelPlane(lg *l3grid.LabelGrid, title string) Plane {
	n := lg.H * lg.W
	vals := make([]float64, n)
	var hi int64
	for i, v := range lg.Data[:n] {
		vals[i] = float64(v)
		if v > hi {
			hi = v
		}
	}
	return Plane{Title: title, H: lg.H, W: lg.W, Values: vals, Min: 0, Max: float64(hi)}
}
