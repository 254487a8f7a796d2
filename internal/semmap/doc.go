// Package semmap projects 3D sensor observations and labelled scene point
// clouds onto fixed-resolution 2D occupancy and semantic grids.
//
// The work is split into layers, mirroring the data flow:
//
//	l1points  point sets, height slicing, reliable-cone filtering
//	l2coords  coordinate discretization and planar rigid transforms
//	l3grid    grid tensors, label pooling, occupancy estimation, crops, explored masks
//	l4truth   ground-truth semantic grids from labelled scenes
//	l5fusion  per-episode egocentric accumulation through an external accumulator
//
// Dependency rule: a layer may depend on lower layers and on this package,
// never on a higher layer. This package depends on no layer.
package semmap
