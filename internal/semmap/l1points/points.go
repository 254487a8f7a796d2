package l1points

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// PointSet is an ordered set of camera-frame points captured at one
// timestep. Y is vertical and -Z is the forward depth.
type PointSet struct {
	Points []semmap.Point
	Device semmap.Device
}

// NewPointSet wraps points on the context device.
func NewPointSet(ctx semmap.ExecContext, pts []semmap.Point) PointSet {
	return PointSet{Points: pts, Device: ctx.Resolve()}
}

// Len returns the number of points in the set.
func (s PointSet) Len() int { return len(s.Points) }

// XZ splits the set into its planar coordinate columns.
func (s PointSet) XZ() (x, z []float64) {
	x = make([]float64, len(s.Points))
	z = make([]float64, len(s.Points))
	for i, p := range s.Points {
		x[i] = p.X
		z[i] = p.Z
	}
	return x, z
}

// LabeledScene is a full-scene point cloud held as parallel arrays with one
// integer class id per point. Scene clouds use Z as the vertical axis and
// (X, Y) as the ground plane.
type LabeledScene struct {
	X, Y, Z []float64
	Labels  []int64
	Device  semmap.Device
}

// Len returns the number of points in the scene.
func (s *LabeledScene) Len() int { return len(s.X) }

// Validate checks that all parallel arrays have the same length.
func (s *LabeledScene) Validate() error {
	n := len(s.X)
	if len(s.Y) != n || len(s.Z) != n || len(s.Labels) != n {
		return fmt.Errorf("%w: x=%d y=%d z=%d labels=%d",
			semmap.ErrLengthMismatch, len(s.X), len(s.Y), len(s.Z), len(s.Labels))
	}
	return nil
}
