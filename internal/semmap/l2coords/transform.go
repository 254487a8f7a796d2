package l2coords

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// PoseTranslation returns the translation subtracted from scene points
// before rotation. Scene planar axes are swapped and the first is negated
// relative to the pose: (-pose.Z, pose.X). Ground-truth alignment depends on
// this exact ordering.
func PoseTranslation(pose semmap.Pose) (tx, ty float64) {
	return -pose.Z, pose.X
}

// RotationMatrix returns the 2x2 rotation by -yaw.
func RotationMatrix(yaw float64) *mat.Dense {
	c, s := math.Cos(-yaw), math.Sin(-yaw)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}

// TransformPlanar moves scene ground-plane points (x, y) into the agent's
// absolute frame: subtract PoseTranslation, then rotate by -yaw.
func TransformPlanar(x, y []float64, pose semmap.Pose) (xr, yr []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: x=%d y=%d", semmap.ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n == 0 {
		return []float64{}, []float64{}, nil
	}

	tx, ty := PoseTranslation(pose)
	pts := mat.NewDense(2, n, nil)
	for i := 0; i < n; i++ {
		pts.Set(0, i, x[i]-tx)
		pts.Set(1, i, y[i]-ty)
	}

	var rot mat.Dense
	rot.Mul(RotationMatrix(pose.Yaw), pts)

	return mat.Row(nil, 0, &rot), mat.Row(nil, 1, &rot), nil
}
