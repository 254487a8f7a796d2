// Command grid-render projects a point file onto a semantic grid and writes
// PNG and HTML heat maps of the result.
//
//	grid-render -in scene.asc -mode gt -pose 0,0,0 -height 0.0 -out plots/
//	grid-render -in cloud.asc -mode pcd -explored -out plots/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/semgrid/internal/config"
	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l1points"
	"github.com/banshee-data/semgrid/internal/semmap/l2coords"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
	"github.com/banshee-data/semgrid/internal/semmap/l4truth"
	"github.com/banshee-data/semgrid/internal/semmap/monitor"
	"github.com/banshee-data/semgrid/internal/version"
)

// Modes accepted by -mode.
const (
	modeGroundTruth = "gt"
	modeDepth       = "depth"
	modePointCloud  = "pcd"
)

// poseList collects repeated -pose x,z,yaw flags.
type poseList []semmap.Pose

func (p *poseList) String() string { return fmt.Sprint(*p) }

func (p *poseList) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("pose %q: want x,z,yaw", s)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("pose %q: %w", s, err)
		}
		v[i] = f
	}
	*p = append(*p, semmap.Pose{X: v[0], Z: v[1], Yaw: v[2]})
	return nil
}

// floatList collects repeated numeric flags.
type floatList []float64

func (f *floatList) String() string { return fmt.Sprint(*f) }

func (f *floatList) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = append(*f, v)
	return nil
}

type options struct {
	in         string
	configPath string
	mode       string
	outDir     string
	explored   bool
	verbose    bool
	poses      poseList
	heights    floatList
}

func main() {
	var opts options
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.StringVar(&opts.in, "in", "", "input .asc point file (required)")
	flag.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "projection config JSON")
	flag.StringVar(&opts.mode, "mode", modeGroundTruth, "projection: gt, depth or pcd")
	flag.StringVar(&opts.outDir, "out", "grid-plots", "output directory")
	flag.BoolVar(&opts.explored, "explored", false, "render the explored mask (depth and pcd modes)")
	flag.BoolVar(&opts.verbose, "v", false, "enable diagnostic and trace logging")
	flag.Var(&opts.poses, "pose", "agent pose x,z,yaw; repeat once per timestep (gt mode)")
	flag.Var(&opts.heights, "height", "agent height; repeat once per timestep (gt mode)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("grid-render"))
		return
	}

	logs := semmap.LogWriters{Ops: os.Stderr}
	if opts.verbose {
		logs.Diag, logs.Trace = os.Stderr, os.Stderr
	}
	semmap.SetLogWriters(logs)

	n, err := run(opts)
	if err != nil {
		log.Fatalf("grid-render: %v", err)
	}
	log.Printf("✓ Wrote %d frame(s) to %s", n, opts.outDir)
}

// run executes one render and returns the number of frames written.
func run(opts options) (int, error) {
	if opts.in == "" {
		return 0, errors.New("-in is required")
	}
	cfg, err := config.LoadProjectionConfig(opts.configPath)
	if err != nil {
		return 0, err
	}

	ctx := semmap.CPU()
	scene, err := readScene(ctx, opts.in)
	if err != nil {
		return 0, err
	}
	semmap.Opsf("loaded %d points from %s", scene.Len(), opts.in)

	rec := monitor.NewRecorder(opts.mode)
	if err := rec.Start(opts.outDir); err != nil {
		return 0, err
	}

	switch opts.mode {
	case modeGroundTruth:
		err = renderGroundTruth(ctx, cfg, scene, opts, rec)
	case modeDepth, modePointCloud:
		err = renderOccupancy(ctx, cfg, scene, opts, rec)
	default:
		err = fmt.Errorf("unknown mode %q", opts.mode)
	}
	rec.Stop()
	if err != nil {
		return 0, err
	}
	return rec.Generate()
}

func readScene(ctx semmap.ExecContext, path string) (*l1points.LabeledScene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open points: %w", err)
	}
	defer f.Close()
	return l1points.ReadASC(ctx, io.LimitReader(f, 1<<30))
}

func renderGroundTruth(ctx semmap.ExecContext, cfg *config.ProjectionConfig, scene *l1points.LabeledScene, opts options, rec *monitor.Recorder) error {
	b, err := l4truth.NewBuilderFromProjection(cfg)
	if err != nil {
		return err
	}
	poses, heights := opts.poses, opts.heights
	if len(poses) == 0 && len(heights) == 0 {
		poses, heights = poseList{{}}, floatList{0}
	}
	grids, err := b.Build(ctx, scene, poses, heights)
	if err != nil {
		return err
	}
	for t, g := range grids {
		rec.Record(monitor.LabelPlane(g, fmt.Sprintf("ground truth t=%d (%s)", t, b.Policy)))
	}
	return nil
}

func renderOccupancy(ctx semmap.ExecContext, cfg *config.ProjectionConfig, scene *l1points.LabeledScene, opts options, rec *monitor.Recorder) error {
	d := cfg.GetGridDim()
	dim := l2coords.Dim{H: d[0], W: d[1]}
	pts := scene.Points()

	var (
		g   *l3grid.Grid
		err error
	)
	if opts.mode == modeDepth {
		g, err = l3grid.EstimateFromDepth(ctx, []l1points.PointSet{pts}, dim, cfg.GetCellSize(), l3grid.OccupancyConfigFromProjection(cfg))
	} else {
		g, err = l3grid.EstimateFromPointCloud(ctx, pts, dim, cfg.GetCellSize(), cfg.GetPCDLowerHeight(), cfg.GetPCDUpperHeight(), cfg.GetPoolEpsilon())
	}
	if err != nil {
		return err
	}

	if opts.explored {
		masks, err := l3grid.ExploredMask(ctx, []*l3grid.Grid{g}, cfg.GetExploredThresh())
		if err != nil {
			return err
		}
		p, err := monitor.ChannelPlane(masks[0], 0, opts.mode+" explored")
		if err != nil {
			return err
		}
		rec.Record(p)
		return nil
	}

	rec.Record(monitor.ArgmaxPlane(g, opts.mode+" occupancy (0 unknown, 1 occupied, 2 free)"))
	return nil
}
