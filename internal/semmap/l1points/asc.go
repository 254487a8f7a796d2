package l1points

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// ReadASC parses a CloudCompare-style .asc point file. Each non-comment line
// holds "X Y Z [Label ...]"; lines starting with '#' are skipped. A missing
// label column yields label 0. Columns past the fourth are ignored.
func ReadASC(ctx semmap.ExecContext, r io.Reader) (*LabeledScene, error) {
	scene := &LabeledScene{Device: ctx.Resolve()}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 columns, got %d", lineNo, len(fields))
		}
		var xyz [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", lineNo, i+1, err)
			}
			xyz[i] = v
		}
		var label int64
		if len(fields) > 3 {
			v, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d label: %w", lineNo, err)
			}
			label = v
		}
		scene.X = append(scene.X, xyz[0])
		scene.Y = append(scene.Y, xyz[1])
		scene.Z = append(scene.Z, xyz[2])
		scene.Labels = append(scene.Labels, label)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return scene, nil
}

// Points returns the scene as camera-frame points, ignoring labels.
func (s *LabeledScene) Points() PointSet {
	pts := make([]semmap.Point, s.Len())
	for i := range pts {
		pts[i] = semmap.Point{X: s.X[i], Y: s.Y[i], Z: s.Z[i]}
	}
	return PointSet{Points: pts, Device: s.Device}
}
