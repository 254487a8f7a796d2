package monitor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// planeXYZ adapts a Plane to plotter.GridXYZ. Columns map to X and rows
// to Y with row 0 drawn at the top.
type planeXYZ struct {
	p Plane
}

func (g planeXYZ) Dims() (c, r int)   { return g.p.W, g.p.H }
func (g planeXYZ) Z(c, r int) float64 { return g.p.At(g.p.H-1-r, c) }
func (g planeXYZ) X(c int) float64    { return float64(c) }
func (g planeXYZ) Y(r int) float64    { return float64(r) }

// WritePNG renders the plane as a heat map image. The format follows the
// file extension accepted by plot.Save.
func WritePNG(p Plane, path string) error {
	if err := p.validate(); err != nil {
		return err
	}

	hm := plotter.NewHeatMap(planeXYZ{p: p}, palette.Heat(len(viridis), 1))
	hm.Min, hm.Max = p.scale()

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "col"
	pl.Y.Label.Text = "row (flipped)"
	pl.Add(hm)

	side := 6 * vg.Inch
	if err := pl.Save(side, side*vg.Length(p.H)/vg.Length(p.W), path); err != nil {
		return fmt.Errorf("save heat map: %w", err)
	}
	return nil
}

// WriteHTML renders the plane as an interactive go-echarts heat map.
func WriteHTML(w io.Writer, p Plane) error {
	if err := p.validate(); err != nil {
		return err
	}

	cols := make([]string, p.W)
	for c := range cols {
		cols[c] = strconv.Itoa(c)
	}
	rows := make([]string, p.H)
	for r := range rows {
		rows[r] = strconv.Itoa(p.H - 1 - r)
	}

	data := make([]opts.HeatMapData, 0, len(p.Values))
	for r := 0; r < p.H; r++ {
		for c := 0; c < p.W; c++ {
			// echarts counts category rows from the bottom.
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, p.H - 1 - r, p.At(r, c)}})
		}
	}

	lo, hi := p.scale()
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: p.Title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: p.Title, Subtitle: fmt.Sprintf("%dx%d", p.H, p.W)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "col"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.AddSeries(p.Title, data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render heat map: %w", err)
	}
	return nil
}
