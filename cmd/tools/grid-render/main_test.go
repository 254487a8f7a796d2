package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/testutil"
)

const smallConfig = `{
  "grid_dim": [11, 11],
  "crop_size": [5, 5],
  "cell_size": 0.5
}`

const scenePoints = `# x y z label
0.0 0.0 0.1 3
1.0 0.5 0.0 4
-1.0 -0.5 0.3 5
0.2 0.4 2.9 9
`

func testOptions(t *testing.T, mode string) options {
	t.Helper()
	return options{
		in:         testutil.WriteTempFile(t, "scene.asc", scenePoints),
		configPath: testutil.WriteTempFile(t, "projection.json", smallConfig),
		mode:       mode,
		outDir:     filepath.Join(t.TempDir(), "out"),
	}
}

func TestPoseList_Set(t *testing.T) {
	var p poseList
	require.NoError(t, p.Set("1.5, -2,0.25"))
	assert.Equal(t, poseList{{X: 1.5, Z: -2, Yaw: 0.25}}, p)

	assert.Error(t, p.Set("1,2"))
	assert.Error(t, p.Set("a,b,c"))
	assert.Len(t, p, 1)

	var f floatList
	require.NoError(t, f.Set("0.75"))
	assert.Error(t, f.Set("high"))
	assert.Equal(t, floatList{0.75}, f)
}

func TestRun_GroundTruth(t *testing.T) {
	opts := testOptions(t, modeGroundTruth)
	opts.poses = poseList{{}, {X: 0.5, Z: 0, Yaw: 0}}
	opts.heights = floatList{0, 0}

	n, err := run(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, name := range []string{"gt_000.png", "gt_000.html", "gt_001.png", "gt_001.html"} {
		_, err := os.Stat(filepath.Join(opts.outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_GroundTruthDefaultsToOrigin(t *testing.T) {
	n, err := run(testOptions(t, modeGroundTruth))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_Occupancy(t *testing.T) {
	for _, mode := range []string{modeDepth, modePointCloud} {
		t.Run(mode, func(t *testing.T) {
			opts := testOptions(t, mode)
			n, err := run(opts)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			opts.explored = true
			n, err = run(opts)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			_, err = os.Stat(filepath.Join(opts.outDir, mode+"_000.html"))
			assert.NoError(t, err)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	opts := testOptions(t, "lidar")
	_, err := run(opts)
	assert.ErrorContains(t, err, "unknown mode")

	opts = testOptions(t, modeGroundTruth)
	opts.in = ""
	_, err = run(opts)
	assert.ErrorContains(t, err, "-in is required")

	opts = testOptions(t, modeGroundTruth)
	opts.in = filepath.Join(t.TempDir(), "missing.asc")
	_, err = run(opts)
	assert.Error(t, err)

	opts = testOptions(t, modeGroundTruth)
	opts.poses = poseList{{}}
	_, err = run(opts)
	assert.Error(t, err, "one pose without a height")

	opts = testOptions(t, modeGroundTruth)
	opts.configPath = testutil.WriteTempFile(t, "bad.yaml", smallConfig)
	_, err = run(opts)
	assert.Error(t, err)
}

func TestMain(m *testing.M) {
	semmap.SetLogWriters(semmap.LogWriters{})
	os.Exit(m.Run())
}
