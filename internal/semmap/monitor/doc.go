// Package monitor renders projection grids for inspection.
//
// PNG output goes through gonum/plot heat maps, HTML output through
// go-echarts. Grids are first reduced to a single Plane (one channel, the
// dominant class per cell, or a label channel).
//
// Dependency rule: monitor may depend on any semmap layer; no layer may
// depend on monitor.
package monitor
