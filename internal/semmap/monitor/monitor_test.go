package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func occupancyGrid(t *testing.T) *l3grid.Grid {
	t.Helper()
	g, err := l3grid.NewGrid(semmap.CPU(), 3, 2, 3)
	require.NoError(t, err)
	g.Fill(1.0 / 3)
	g.Set(l3grid.Occupied, 0, 1, 0.8)
	g.Set(l3grid.Free, 1, 2, 0.9)
	return g
}

func TestPlanes(t *testing.T) {
	g := occupancyGrid(t)

	p, err := ChannelPlane(g, l3grid.Occupied, "occupied")
	require.NoError(t, err)
	assert.Equal(t, 2, p.H)
	assert.Equal(t, 3, p.W)
	assert.InDelta(t, 0.8, p.At(0, 1), 1e-12)
	assert.Equal(t, 1.0, p.Max)

	_, err = ChannelPlane(g, 3, "nope")
	assert.Error(t, err)

	am := ArgmaxPlane(g, "classes")
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 2}, am.Values)
	assert.Equal(t, 2.0, am.Max)

	lg, err := l3grid.NewLabelGrid(semmap.CPU(), 1, 2, 2)
	require.NoError(t, err)
	lg.Set(0, 1, 0, 17)
	lp := LabelPlane(lg, "labels")
	assert.Equal(t, []float64{0, 0, 17, 0}, lp.Values)
	assert.Equal(t, 17.0, lp.Max)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	require.NoError(t, WritePNG(ArgmaxPlane(occupancyGrid(t), "classes"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])

	// A flat plane must still render with a usable colour scale.
	flat := Plane{Title: "flat", H: 2, W: 2, Values: make([]float64, 4)}
	require.NoError(t, WritePNG(flat, filepath.Join(t.TempDir(), "flat.png")))

	bad := Plane{H: 2, W: 2, Values: make([]float64, 3)}
	assert.ErrorIs(t, WritePNG(bad, filepath.Join(t.TempDir(), "bad.png")), semmap.ErrShapeMismatch)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	p, err := ChannelPlane(occupancyGrid(t), l3grid.Free, "free space")
	require.NoError(t, err)
	require.NoError(t, WriteHTML(&buf, p))

	out := buf.String()
	assert.Contains(t, out, "free space")
	assert.Contains(t, out, "heatmap")

	assert.ErrorIs(t, WriteHTML(&buf, Plane{}), semmap.ErrInvalidDim)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("gt")
	_, err := r.Generate()
	assert.Error(t, err, "generate before start")

	r.Record(ArgmaxPlane(occupancyGrid(t), "dropped"))

	dir := filepath.Join(t.TempDir(), "nested", "frames")
	require.NoError(t, r.Start(dir))
	assert.True(t, r.IsEnabled())

	r.Record(ArgmaxPlane(occupancyGrid(t), "step 0"))
	r.Record(ArgmaxPlane(occupancyGrid(t), "step 1"))
	r.Stop()
	r.Record(ArgmaxPlane(occupancyGrid(t), "after stop"))
	assert.False(t, r.IsEnabled())

	n, err := r.Generate()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, name := range []string{"gt_000.png", "gt_000.html", "gt_001.png", "gt_001.html"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(dir, "gt_002.png"))
	assert.True(t, os.IsNotExist(err))
}
