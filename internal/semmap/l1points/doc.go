// Package l1points owns Layer 1 (Points) of the semantic mapping model.
//
// Responsibilities: point set containers, height slicing of labelled scene
// clouds, reliable observation cone filtering, and ASC point file input.
// Key types: PointSet, LabeledScene, HeightSlicer, ReliableCone.
//
// Dependency rule: L1 depends only on the semmap root package.
package l1points
