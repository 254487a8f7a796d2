package l2coords

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/semgrid/internal/semmap"
)

const tol = 1e-9

func TestTransformPlanar_IdentityPose(t *testing.T) {
	x := []float64{1.5, -2, 0}
	y := []float64{0.25, 3, -7}
	xr, yr, err := TransformPlanar(x, y, semmap.Pose{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, x, xr, tol)
	assert.InDeltaSlice(t, y, yr, tol)
}

// The translation uses (-pose.Z, pose.X), not (pose.X, pose.Z). This pins the
// exact convention the ground-truth alignment relies on.
func TestTransformPlanar_AxisSwappedTranslation(t *testing.T) {
	pose := semmap.Pose{X: 2, Z: 5, Yaw: 0}
	tx, ty := PoseTranslation(pose)
	assert.Equal(t, -5.0, tx)
	assert.Equal(t, 2.0, ty)

	xr, yr, err := TransformPlanar([]float64{-5, 0}, []float64{2, 0}, pose)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5}, xr, tol)
	assert.InDeltaSlice(t, []float64{0, -2}, yr, tol)
}

func TestTransformPlanar_RotatesByNegativeYaw(t *testing.T) {
	// Yaw of +90 degrees rotates points by -90: (1, 0) -> (0, -1).
	xr, yr, err := TransformPlanar([]float64{1}, []float64{0}, semmap.Pose{Yaw: math.Pi / 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, xr[0], tol)
	assert.InDelta(t, -1.0, yr[0], tol)
}

func TestTransformPlanar_TranslateThenRotate(t *testing.T) {
	pose := semmap.Pose{X: 1, Z: 1, Yaw: math.Pi}
	// Translation (-1, 1): point (0, 2) -> (1, 1) -> rotate by -pi -> (-1, -1).
	xr, yr, err := TransformPlanar([]float64{0}, []float64{2}, pose)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, xr[0], tol)
	assert.InDelta(t, -1.0, yr[0], tol)
}

func TestTransformPlanar_EmptyAndMismatch(t *testing.T) {
	xr, yr, err := TransformPlanar(nil, nil, semmap.Pose{Yaw: 1})
	require.NoError(t, err)
	assert.Empty(t, xr)
	assert.Empty(t, yr)

	_, _, err = TransformPlanar([]float64{1}, nil, semmap.Pose{})
	assert.ErrorIs(t, err, semmap.ErrLengthMismatch)
}

func TestRotationMatrix(t *testing.T) {
	r := RotationMatrix(math.Pi / 6)
	c, s := math.Cos(-math.Pi/6), math.Sin(-math.Pi/6)
	assert.InDelta(t, c, r.At(0, 0), tol)
	assert.InDelta(t, -s, r.At(0, 1), tol)
	assert.InDelta(t, s, r.At(1, 0), tol)
	assert.InDelta(t, c, r.At(1, 1), tol)
}
